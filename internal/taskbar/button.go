package taskbar

import (
	"image"

	"github.com/ItsNotGoodName/waterline/internal/geom"
	"github.com/ItsNotGoodName/waterline/internal/icongrid"
)

// ButtonState is everything needed to draw a task button.
type ButtonState struct {
	Label     string
	Tooltip   string
	Icon      image.Image
	IconSize  int
	Focused   bool
	Iconified bool
	Flash     bool
	Entered   bool
	// Count is the number of windows behind a collapsed class button.
	Count     int
	ShowIcon  bool
	ShowLabel bool
	Flat      bool
}

type InputKind int

const (
	InputPress InputKind = iota
	InputScrollUp
	InputScrollDown
	InputEnter
	InputLeave
	// InputMenuItem is a click on an item of the menu shown by the button.
	InputMenuItem
)

type Input struct {
	Kind   InputKind
	Button int
	Shift  bool
	Item   string
}

// Button is the on screen widget of one task. A nil Icon in its state means
// the fallback icon.
type Button interface {
	icongrid.Widget
	Render(state ButtonState)
	ShowMenu(menu Menu)
	Destroy()
}

type ButtonFactory interface {
	NewButton(onInput func(Input)) Button
}

// taskWidget is what the grid places. It forwards to the button and reloads
// the icon when the allocated size changes.
type taskWidget struct {
	task *Task
}

func (w *taskWidget) Show() {
	w.task.button.Show()
}

func (w *taskWidget) Hide() {
	w.task.button.Hide()
}

func (w *taskWidget) Allocate(r geom.Rect) {
	w.task.button.Allocate(r)
	w.task.taskbar.iconAllocated(w.task, r)
}
