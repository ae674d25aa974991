package xwm

import (
	"github.com/ItsNotGoodName/waterline/internal/geom"
	"github.com/ItsNotGoodName/waterline/internal/taskbar"
	"github.com/jezek/xgb/xproto"
)

// button is the sub window of one task button.
type button struct {
	panel   *Panel
	win     xproto.Window
	rect    geom.Rect
	state   taskbar.ButtonState
	onInput func(taskbar.Input)
}

func (b *button) Show() {
	if b.win != 0 {
		xproto.MapWindow(b.panel.conn(), b.win)
	}
}

func (b *button) Hide() {
	if b.win != 0 {
		xproto.UnmapWindow(b.panel.conn(), b.win)
	}
}

func (b *button) Allocate(r geom.Rect) {
	if r == b.rect || b.win == 0 {
		return
	}
	resized := r.W != b.rect.W || r.H != b.rect.H
	b.rect = r
	moveResize(b.panel.conn(), b.win, r)
	if resized {
		b.paint()
	}
}

func (b *button) Render(state taskbar.ButtonState) {
	b.state = state
	b.paint()
}

func (b *button) ShowMenu(menu taskbar.Menu) {
	b.panel.showMenu(b, menu)
}

func (b *button) Destroy() {
	b.panel.removeButton(b)
}

func (b *button) press(detail xproto.Button, state uint16) {
	switch detail {
	case 4:
		b.onInput(taskbar.Input{Kind: taskbar.InputScrollUp})
	case 5:
		b.onInput(taskbar.Input{Kind: taskbar.InputScrollDown})
	default:
		b.onInput(taskbar.Input{
			Kind:   taskbar.InputPress,
			Button: int(detail),
			Shift:  state&xproto.ModMaskShift != 0,
		})
	}
}

func (b *button) paint() {
	if b.win == 0 || b.rect.Empty() {
		return
	}

	img := renderButton(b.panel.X, b.rect.W, b.rect.H, b.state, b.panel.font)
	defer img.Destroy()

	if err := img.XSurfaceSet(b.win); err != nil {
		b.panel.slog.Debug("Failed to set surface", "window", b.win, "error", err)
		return
	}
	img.XDraw()
	img.XPaint(b.win)
}
