package taskbar

import (
	"image"
	"strconv"
)

// Window is a top level X window id.
type Window uint32

func (w Window) String() string {
	return "0x" + strconv.FormatUint(uint64(w), 16)
}

// AllDesktops is the desktop of windows pinned to every desktop.
const AllDesktops = -1

// Property names the window system property a notification is about.
type Property int

const (
	PropClientList Property = iota
	PropActiveWindow
	PropCurrentDesktop
	PropDesktopCount
	PropDesktopNames
	PropWindowDesktop
	PropVisibleName
	PropName
	PropLegacyName
	PropClass
	PropWMState
	PropHints
	PropNetState
	PropIcon
	PropLegacyIcon
	PropWindowType
)

var propertyNames = [...]string{
	PropClientList:     "client_list",
	PropActiveWindow:   "active_window",
	PropCurrentDesktop: "current_desktop",
	PropDesktopCount:   "desktop_count",
	PropDesktopNames:   "desktop_names",
	PropWindowDesktop:  "window_desktop",
	PropVisibleName:    "visible_name",
	PropName:           "name",
	PropLegacyName:     "legacy_name",
	PropClass:          "class",
	PropWMState:        "wm_state",
	PropHints:          "hints",
	PropNetState:       "net_state",
	PropIcon:           "icon",
	PropLegacyIcon:     "legacy_icon",
	PropWindowType:     "window_type",
}

func (p Property) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return "unknown"
	}
	return propertyNames[p]
}

// NameSource orders the title properties, higher wins.
type NameSource int

const (
	NameNone NameSource = iota
	NameLegacy
	NameNet
	NameVisible
)

// IconSource is where an icon image was read from.
type IconSource int

const (
	IconNone IconSource = iota
	IconNetWM
	IconWMHints
	IconLegacy
)

func (s IconSource) String() string {
	switch s {
	case IconNetWM:
		return "net_wm_icon"
	case IconWMHints:
		return "wm_hints"
	case IconLegacy:
		return "kwm_win_icon"
	default:
		return "none"
	}
}

// NetState is the subset of _NET_WM_STATE the taskbar cares about.
type NetState struct {
	SkipTaskbar   bool
	MaximizedVert bool
	MaximizedHorz bool
	Hidden        bool
}

func (s NetState) Maximized() bool {
	return s.MaximizedVert || s.MaximizedHorz
}

// WindowType is the subset of _NET_WM_WINDOW_TYPE that excludes a window.
type WindowType struct {
	Desktop bool
	Dock    bool
	Splash  bool
}

type Hints struct {
	Urgent bool
}

// Display reads and changes window system state. Every call is best effort,
// an error means the value is not available right now.
type Display interface {
	ClientList() ([]Window, error)
	ActiveWindow() (Window, error)
	CurrentDesktop() (int, error)
	DesktopCount() (int, error)
	DesktopNames() ([]string, error)

	// WindowDesktop returns AllDesktops for sticky windows.
	WindowDesktop(w Window) (int, error)
	NetState(w Window) (NetState, error)
	WindowType(w Window) (WindowType, error)
	Iconified(w Window) (bool, error)
	Hints(w Window) (Hints, error)
	Name(w Window, source NameSource) (string, error)
	Class(w Window) (instance string, class string, err error)
	Icon(w Window, source IconSource, size int) (image.Image, error)

	// Watch subscribes to property changes of w.
	Watch(w Window) error

	Activate(w Window) error
	Iconify(w Window) error
	SetMaximized(w Window, maximized bool) error
	MoveToDesktop(w Window, desktop int) error
	Close(w Window) error
	SetCurrentDesktop(desktop int) error
}
