package xwm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ItsNotGoodName/waterline/internal/loop"
	"github.com/ItsNotGoodName/waterline/internal/taskbar"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xprop"
	"github.com/thejerf/suture/v4"
)

// properties maps the atoms the taskbar listens to.
var properties = map[string]taskbar.Property{
	"_NET_CLIENT_LIST":        taskbar.PropClientList,
	"_NET_ACTIVE_WINDOW":      taskbar.PropActiveWindow,
	"_NET_CURRENT_DESKTOP":    taskbar.PropCurrentDesktop,
	"_NET_NUMBER_OF_DESKTOPS": taskbar.PropDesktopCount,
	"_NET_DESKTOP_NAMES":      taskbar.PropDesktopNames,
	"_NET_WM_DESKTOP":         taskbar.PropWindowDesktop,
	"_NET_WM_VISIBLE_NAME":    taskbar.PropVisibleName,
	"_NET_WM_NAME":            taskbar.PropName,
	"WM_NAME":                 taskbar.PropLegacyName,
	"WM_CLASS":                taskbar.PropClass,
	"WM_STATE":                taskbar.PropWMState,
	"WM_HINTS":                taskbar.PropHints,
	"_NET_WM_STATE":           taskbar.PropNetState,
	"_NET_WM_ICON":            taskbar.PropIcon,
	"KWM_WIN_ICON":            taskbar.PropLegacyIcon,
	"_NET_WM_WINDOW_TYPE":     taskbar.PropWindowType,
}

// Dispatcher routes X events on the loop goroutine.
type Dispatcher struct {
	X        *xgbutil.XUtil
	Registry *taskbar.Registry
	Panel    *Panel
}

func (d Dispatcher) Dispatch(ev xgb.Event) {
	switch ev := ev.(type) {
	case xproto.PropertyNotifyEvent:
		name, err := xprop.AtomName(d.X, ev.Atom)
		if err != nil {
			slog.Debug("Unknown atom", "package", "xwm", "atom", ev.Atom, "error", err)
			return
		}
		p, ok := properties[name]
		if !ok {
			return
		}
		if ev.Window == d.X.RootWin() {
			d.Registry.HandleRootProperty(p)
		} else {
			d.Registry.HandleWindowProperty(taskbar.Window(ev.Window), p, ev.State == xproto.PropertyDelete)
		}
	default:
		if d.Panel != nil {
			d.Panel.HandleEvent(ev)
		}
	}
}

// Pump reads X events and runs them on the loop. The reader is started once
// because an xgb connection only has one event queue.
type Pump struct {
	conn     *xgb.Conn
	loop     *loop.Loop
	dispatch func(xgb.Event)

	once   sync.Once
	eventC chan xgb.Event
}

func NewPump(conn *xgb.Conn, lp *loop.Loop, dispatch func(xgb.Event)) *Pump {
	return &Pump{
		conn:     conn,
		loop:     lp,
		dispatch: dispatch,
		eventC:   make(chan xgb.Event),
	}
}

func (p *Pump) String() string {
	return "xwm.Pump"
}

func (p *Pump) Serve(ctx context.Context) error {
	p.once.Do(func() {
		go ReceiveEvents(context.Background(), p.conn, p.eventC)
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-p.eventC:
			if !ok {
				return fmt.Errorf("%w: %w", ErrClosed, suture.ErrDoNotRestart)
			}
			if err := p.loop.Post(ctx, func() { p.dispatch(ev) }); err != nil {
				return err
			}
		}
	}
}
