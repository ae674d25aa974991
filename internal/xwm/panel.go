package xwm

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/freetype-go/freetype/truetype"
	"github.com/ItsNotGoodName/waterline/internal/geom"
	"github.com/ItsNotGoodName/waterline/internal/panel"
	"github.com/ItsNotGoodName/waterline/internal/taskbar"
	"github.com/ItsNotGoodName/waterline/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/xwindow"
)

// Panel is the dock window on a screen edge. It hosts one sub window per task
// button and must only be used from the loop goroutine.
type Panel struct {
	X        *xgbutil.XUtil
	win      *xwindow.Window
	font     *truetype.Font
	settings panel.Settings
	screen   geom.Rect
	rect     geom.Rect
	buttons  map[xproto.Window]*button
	menu     *popup
	allocate func(geom.Rect)
	slog     *slog.Logger
}

func NewPanel(X *xgbutil.XUtil, settings panel.Settings, font *truetype.Font) (*Panel, error) {
	screen := X.Screen()
	p := &Panel{
		X:        X,
		font:     font,
		settings: settings,
		screen:   geom.Rect{W: int(screen.WidthInPixels), H: int(screen.HeightInPixels)},
		buttons:  make(map[xproto.Window]*button),
		allocate: func(geom.Rect) {},
		slog:     slog.With("package", "xwm", "func", "xwm.Panel"),
	}
	p.rect = panelRect(settings, p.screen)

	cursor, err := xcursor.CreateCursor(X.Conn(), xcursor.LeftPtr)
	if err != nil {
		return nil, err
	}

	win, err := xwindow.Generate(X)
	if err != nil {
		return nil, err
	}
	if err := win.CreateChecked(X.RootWin(), p.rect.X, p.rect.Y, p.rect.W, p.rect.H,
		xproto.CwBackPixel|xproto.CwEventMask|xproto.CwCursor, // 1, 2, 3
		pixel(colorPanel), // 1
		xproto.EventMaskStructureNotify|xproto.EventMaskExposure, // 2
		uint32(cursor), // 3
	); err != nil {
		return nil, fmt.Errorf("create panel window: %w", err)
	}
	p.win = win

	if err := ewmh.WmWindowTypeSet(X, win.Id, []string{"_NET_WM_WINDOW_TYPE_DOCK"}); err != nil {
		p.slog.Warn("Failed to set window type", "error", err)
	}
	if err := ewmh.WmStateSet(X, win.Id, []string{"_NET_WM_STATE_STICKY", "_NET_WM_STATE_ABOVE"}); err != nil {
		p.slog.Warn("Failed to set window state", "error", err)
	}
	if err := ewmh.WmDesktopSet(X, win.Id, stickyDesktop); err != nil {
		p.slog.Warn("Failed to set window desktop", "error", err)
	}
	ewmh.WmNameSet(X, win.Id, "waterline")
	icccm.WmClassSet(X, win.Id, &icccm.WmClass{Instance: "waterline", Class: "Waterline"})
	p.setStrut()

	win.Map()

	return p, nil
}

func (p *Panel) conn() *xgb.Conn {
	return p.X.Conn()
}

// Rect is the panel in root window coordinates.
func (p *Panel) Rect() geom.Rect {
	return p.rect
}

func (p *Panel) Window() xproto.Window {
	return p.win.Id
}

// OnAllocate sets the function that lays plugins out inside the panel.
func (p *Panel) OnAllocate(fn func(geom.Rect)) {
	p.allocate = fn
}

// Allocate lays plugins out over the whole panel.
func (p *Panel) Allocate() {
	p.allocate(geom.Rect{W: p.rect.W, H: p.rect.H})
}

// SetSettings moves the panel to a new edge or thickness.
func (p *Panel) SetSettings(settings panel.Settings) {
	p.settings = settings
	p.relayout()
}

func (p *Panel) screenChanged(width, height int) {
	screen := geom.Rect{W: width, H: height}
	if screen == p.screen {
		return
	}
	p.slog.Debug("Screen changed", "screen", screen)
	p.screen = screen
	p.relayout()
}

func (p *Panel) relayout() {
	rect := panelRect(p.settings, p.screen)
	if rect == p.rect {
		return
	}
	p.closeMenu()
	p.rect = rect
	moveResize(p.conn(), p.win.Id, rect)
	p.setStrut()
	p.Allocate()
}

func (p *Panel) setStrut() {
	strut := panelStrut(p.settings.Edge, p.rect)
	if err := ewmh.WmStrutPartialSet(p.X, p.win.Id, &strut); err != nil {
		p.slog.Warn("Failed to set strut", "error", err)
	}
	if err := ewmh.WmStrutSet(p.X, p.win.Id, &ewmh.WmStrut{
		Left:   strut.Left,
		Right:  strut.Right,
		Top:    strut.Top,
		Bottom: strut.Bottom,
	}); err != nil {
		p.slog.Warn("Failed to set strut", "error", err)
	}
}

// NewButton creates an unmapped button window inside the panel.
func (p *Panel) NewButton(onInput func(taskbar.Input)) taskbar.Button {
	b := &button{panel: p, onInput: onInput}
	wid, err := createSubWindow(p.conn(), p.win.Id, geom.Rect{W: 1, H: 1},
		xproto.EventMaskButtonPress|xproto.EventMaskEnterWindow|xproto.EventMaskLeaveWindow|xproto.EventMaskExposure)
	if err != nil {
		// The taskbar keeps working with a button that draws nothing.
		p.slog.Error("Failed to create button window", "error", err)
		return b
	}
	b.win = wid
	p.buttons[wid] = b
	return b
}

func (p *Panel) removeButton(b *button) {
	if p.menu != nil && p.menu.owner == b {
		p.closeMenu()
	}
	if b.win == 0 {
		return
	}
	delete(p.buttons, b.win)
	xproto.DestroyWindow(p.conn(), b.win)
	b.win = 0
}

// HandleEvent handles input and exposure of the panel windows.
func (p *Panel) HandleEvent(ev xgb.Event) {
	switch ev := ev.(type) {
	case xproto.ButtonPressEvent:
		if p.menu != nil && ev.Event == p.menu.win {
			p.menu.press(int(ev.EventY))
			return
		}
		p.closeMenu()
		if b := p.buttons[ev.Event]; b != nil {
			b.press(ev.Detail, ev.State)
		}
	case xproto.EnterNotifyEvent:
		if b := p.buttons[ev.Event]; b != nil {
			b.onInput(taskbar.Input{Kind: taskbar.InputEnter})
		}
	case xproto.LeaveNotifyEvent:
		if p.menu != nil && ev.Event == p.menu.win {
			p.closeMenu()
			return
		}
		if b := p.buttons[ev.Event]; b != nil {
			b.onInput(taskbar.Input{Kind: taskbar.InputLeave})
		}
	case xproto.ExposeEvent:
		if ev.Count != 0 {
			return
		}
		if p.menu != nil && ev.Window == p.menu.win {
			p.menu.paint()
		} else if b := p.buttons[ev.Window]; b != nil {
			b.paint()
		}
	case xproto.ConfigureNotifyEvent:
		if ev.Window == p.X.RootWin() {
			p.screenChanged(int(ev.Width), int(ev.Height))
		}
	}
}

func (p *Panel) closeMenu() {
	if p.menu == nil {
		return
	}
	xproto.DestroyWindow(p.conn(), p.menu.win)
	p.menu = nil
}

// Destroy removes the panel window and everything still inside it.
func (p *Panel) Destroy() {
	p.closeMenu()
	clear(p.buttons)
	p.win.Destroy()
}
