package xwm

import (
	"fmt"
	"image"
	"slices"

	"github.com/ItsNotGoodName/waterline/internal/taskbar"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
)

const stickyDesktop = 0xFFFFFFFF

// Display implements taskbar.Display on an X connection.
type Display struct {
	X *xgbutil.XUtil
}

func NewDisplay(X *xgbutil.XUtil) Display {
	return Display{X: X}
}

func (d Display) ClientList() ([]taskbar.Window, error) {
	clients, err := ewmh.ClientListGet(d.X)
	if err != nil {
		return nil, err
	}
	windows := make([]taskbar.Window, 0, len(clients))
	for _, c := range clients {
		windows = append(windows, taskbar.Window(c))
	}
	return windows, nil
}

func (d Display) ActiveWindow() (taskbar.Window, error) {
	w, err := ewmh.ActiveWindowGet(d.X)
	return taskbar.Window(w), err
}

func (d Display) CurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(d.X)
	return int(desktop), err
}

func (d Display) DesktopCount() (int, error) {
	count, err := ewmh.NumberOfDesktopsGet(d.X)
	return int(count), err
}

func (d Display) DesktopNames() ([]string, error) {
	return ewmh.DesktopNamesGet(d.X)
}

func (d Display) WindowDesktop(w taskbar.Window) (int, error) {
	desktop, err := ewmh.WmDesktopGet(d.X, xproto.Window(w))
	if err != nil {
		return 0, err
	}
	if desktop == stickyDesktop {
		return taskbar.AllDesktops, nil
	}
	return int(desktop), nil
}

func (d Display) NetState(w taskbar.Window) (taskbar.NetState, error) {
	states, err := ewmh.WmStateGet(d.X, xproto.Window(w))
	if err != nil {
		return taskbar.NetState{}, err
	}
	return taskbar.NetState{
		SkipTaskbar:   slices.Contains(states, "_NET_WM_STATE_SKIP_TASKBAR"),
		MaximizedVert: slices.Contains(states, "_NET_WM_STATE_MAXIMIZED_VERT"),
		MaximizedHorz: slices.Contains(states, "_NET_WM_STATE_MAXIMIZED_HORZ"),
		Hidden:        slices.Contains(states, "_NET_WM_STATE_HIDDEN"),
	}, nil
}

func (d Display) WindowType(w taskbar.Window) (taskbar.WindowType, error) {
	types, err := ewmh.WmWindowTypeGet(d.X, xproto.Window(w))
	if err != nil {
		return taskbar.WindowType{}, err
	}
	return taskbar.WindowType{
		Desktop: slices.Contains(types, "_NET_WM_WINDOW_TYPE_DESKTOP"),
		Dock:    slices.Contains(types, "_NET_WM_WINDOW_TYPE_DOCK"),
		Splash:  slices.Contains(types, "_NET_WM_WINDOW_TYPE_SPLASH"),
	}, nil
}

func (d Display) Iconified(w taskbar.Window) (bool, error) {
	state, err := icccm.WmStateGet(d.X, xproto.Window(w))
	if err != nil {
		return false, err
	}
	return state.State == icccm.StateIconic, nil
}

func (d Display) Hints(w taskbar.Window) (taskbar.Hints, error) {
	hints, err := icccm.WmHintsGet(d.X, xproto.Window(w))
	if err != nil {
		return taskbar.Hints{}, err
	}
	return taskbar.Hints{Urgent: hints.Flags&icccm.HintUrgency != 0}, nil
}

func (d Display) Name(w taskbar.Window, source taskbar.NameSource) (string, error) {
	switch source {
	case taskbar.NameVisible:
		return ewmh.WmVisibleNameGet(d.X, xproto.Window(w))
	case taskbar.NameNet:
		return ewmh.WmNameGet(d.X, xproto.Window(w))
	case taskbar.NameLegacy:
		return icccm.WmNameGet(d.X, xproto.Window(w))
	default:
		return "", fmt.Errorf("name source %d: %w", source, taskbar.ErrNotFound)
	}
}

func (d Display) Class(w taskbar.Window) (string, string, error) {
	class, err := icccm.WmClassGet(d.X, xproto.Window(w))
	if err != nil {
		return "", "", err
	}
	return class.Instance, class.Class, nil
}

func (d Display) Icon(w taskbar.Window, source taskbar.IconSource, size int) (image.Image, error) {
	return loadIcon(d.X, xproto.Window(w), source, size)
}

func (d Display) Watch(w taskbar.Window) error {
	return xproto.ChangeWindowAttributesChecked(d.X.Conn(), xproto.Window(w), xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check()
}

func (d Display) Activate(w taskbar.Window) error {
	return ewmh.ActiveWindowReq(d.X, xproto.Window(w))
}

func (d Display) Iconify(w taskbar.Window) error {
	return ewmh.ClientEvent(d.X, xproto.Window(w), "WM_CHANGE_STATE", int(icccm.StateIconic))
}

func (d Display) SetMaximized(w taskbar.Window, maximized bool) error {
	action := ewmh.StateRemove
	if maximized {
		action = ewmh.StateAdd
	}
	if err := ewmh.WmStateReq(d.X, xproto.Window(w), action, "_NET_WM_STATE_MAXIMIZED_VERT"); err != nil {
		return err
	}
	return ewmh.WmStateReq(d.X, xproto.Window(w), action, "_NET_WM_STATE_MAXIMIZED_HORZ")
}

func (d Display) MoveToDesktop(w taskbar.Window, desktop int) error {
	if desktop == taskbar.AllDesktops {
		return ewmh.ClientEvent(d.X, xproto.Window(w), "_NET_WM_DESKTOP", int(stickyDesktop), int(2))
	}
	return ewmh.ClientEvent(d.X, xproto.Window(w), "_NET_WM_DESKTOP", desktop, int(2))
}

func (d Display) Close(w taskbar.Window) error {
	return ewmh.CloseWindow(d.X, xproto.Window(w))
}

func (d Display) SetCurrentDesktop(desktop int) error {
	return ewmh.ClientEvent(d.X, d.X.RootWin(), "_NET_CURRENT_DESKTOP", desktop, int(0))
}
