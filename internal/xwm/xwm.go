// Package xwm is the X11 side of the panel. It reads and changes window
// properties through EWMH and ICCCM, pumps X events onto the loop and owns the
// windows the panel draws into.
package xwm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
)

var ErrClosed = errors.New("x connection closed")

// Connect opens the display and selects the root window events the taskbar
// and the panel depend on.
func Connect() (*xgbutil.XUtil, error) {
	X, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X: %w", err)
	}

	if err := xproto.ChangeWindowAttributesChecked(X.Conn(), X.RootWin(), xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify}).Check(); err != nil {
		X.Conn().Close()
		return nil, fmt.Errorf("select root events: %w", err)
	}

	return X, nil
}

// ReceiveEvents forwards events until the connection is closed.
func ReceiveEvents(ctx context.Context, conn *xgb.Conn, eventC chan<- xgb.Event) {
	defer close(eventC)
	slog := slog.With("func", "xwm.ReceiveEvents")

	for {
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			slog.Debug("exit: no event or error")
			return
		}

		if err != nil {
			if IsBenign(err) {
				slog.Debug("Ignoring X error", "error", err)
			} else {
				slog.Error("failed to read event", "error", err)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		case eventC <- ev:
		}
	}
}

// IsBenign reports errors caused by windows that went away while a request
// about them was in flight.
func IsBenign(err error) bool {
	switch err.(type) {
	case xproto.WindowError, xproto.DrawableError, xproto.MatchError, xproto.PixmapError:
		return true
	default:
		return false
	}
}
