package taskbar

import (
	"image"
	"time"

	"github.com/ItsNotGoodName/waterline/internal/loop"
)

// Task is one tracked top level window.
type Task struct {
	taskbar *Taskbar
	window  Window

	// timestamp orders tasks by creation, focusTimestamp by last focus.
	timestamp      uint64
	focusTimestamp uint64

	name       string
	nameSource NameSource
	instance   string
	className  string

	icon          image.Image
	iconSource    IconSource
	iconSize      int
	iconAllocSize int
	iconHandle    loop.Handle

	desktop   int
	focused   bool
	iconified bool
	maximized bool
	urgency   bool
	entered   bool
	flash     flasher

	// classKey is only meaningful while grouped is set. overrideClass is a
	// manual class that replaces the computed key.
	classKey      string
	grouped       bool
	overrideClass string

	button   Button
	widget   *taskWidget
	rendered ButtonState
	drawn    bool
	present  bool
}

func (t *Task) Window() Window {
	return t.window
}

func (t *Task) Name() string {
	return t.name
}

// title is the name with a placeholder for windows that never set one.
func (t *Task) title() string {
	switch {
	case t.name != "":
		return t.name
	case t.className != "":
		return t.className
	case t.instance != "":
		return t.instance
	default:
		return "(untitled)"
	}
}

// label is the button text, iconified windows are shown in brackets.
func (t *Task) label() string {
	if t.iconified {
		return "[" + t.title() + "]"
	}
	return t.title()
}

// resourceClass is the class hint used for grouping by class.
func (t *Task) resourceClass() string {
	if t.className != "" {
		return t.className
	}
	return t.instance
}

// flasher is a blink timer. Its phase survives handing it over to another
// task.
type flasher struct {
	handle loop.Handle
	phase  bool
}

func (f *flasher) running() bool {
	return f.handle != nil
}

func (f *flasher) start(sched loop.Scheduler, interval time.Duration, tick func()) {
	if f.handle != nil {
		return
	}
	var arm func()
	arm = func() {
		f.handle = sched.After(interval, func() {
			f.phase = !f.phase
			arm()
			tick()
		})
	}
	arm()
}

func (f *flasher) stop() {
	if f.handle != nil {
		f.handle.Cancel()
		f.handle = nil
	}
	f.phase = false
}
