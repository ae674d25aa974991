package xwm

import (
	"github.com/ItsNotGoodName/waterline/internal/geom"
	"github.com/ItsNotGoodName/waterline/internal/panel"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/ewmh"
)

// createSubWindow creates an unmapped child of parent that reports eventMask.
func createSubWindow(conn *xgb.Conn, parent xproto.Window, r geom.Rect, eventMask uint32) (xproto.Window, error) {
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	if err := xproto.CreateWindowChecked(conn, xproto.WindowClassCopyFromParent,
		wid, parent,
		int16(r.X), int16(r.Y), uint16(max(r.W, 1)), uint16(max(r.H, 1)), 0,
		xproto.WindowClassInputOutput, xproto.WindowClassCopyFromParent,
		xproto.CwEventMask, []uint32{eventMask}).Check(); err != nil {
		return 0, err
	}

	return wid, nil
}

// createPopupWindow creates an override redirect window on the root that the
// window manager leaves alone.
func createPopupWindow(conn *xgb.Conn, screen *xproto.ScreenInfo, r geom.Rect) (xproto.Window, error) {
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	if err := xproto.CreateWindowChecked(conn, screen.RootDepth,
		wid, screen.Root,
		int16(r.X), int16(r.Y), uint16(max(r.W, 1)), uint16(max(r.H, 1)), 1,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwOverrideRedirect|xproto.CwEventMask, // 1, 2, 3, 4
		[]uint32{
			pixel(colorMenu),   // 1
			pixel(colorBorder), // 2
			1,                  // 3
			xproto.EventMaskButtonPress | xproto.EventMaskLeaveWindow | xproto.EventMaskExposure, // 4
		}).Check(); err != nil {
		return 0, err
	}

	return wid, nil
}

func moveResize(conn *xgb.Conn, wid xproto.Window, r geom.Rect) {
	xproto.ConfigureWindow(conn, wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(r.X)), uint32(int32(r.Y)), uint32(max(r.W, 1)), uint32(max(r.H, 1))})
}

// panelRect places a panel of settings on a screen.
func panelRect(settings panel.Settings, screen geom.Rect) geom.Rect {
	t := settings.Height
	switch settings.Edge {
	case geom.EdgeTop:
		return geom.Rect{X: screen.X, Y: screen.Y, W: screen.W, H: t}
	case geom.EdgeLeft:
		return geom.Rect{X: screen.X, Y: screen.Y, W: t, H: screen.H}
	case geom.EdgeRight:
		return geom.Rect{X: screen.X + screen.W - t, Y: screen.Y, W: t, H: screen.H}
	default:
		return geom.Rect{X: screen.X, Y: screen.Y + screen.H - t, W: screen.W, H: t}
	}
}

// panelStrut reserves r on edge so maximized windows do not cover the panel.
func panelStrut(edge geom.Edge, r geom.Rect) ewmh.WmStrutPartial {
	var s ewmh.WmStrutPartial
	switch edge {
	case geom.EdgeTop:
		s.Top = uint(r.H)
		s.TopStartX, s.TopEndX = uint(r.X), uint(r.X+r.W-1)
	case geom.EdgeLeft:
		s.Left = uint(r.W)
		s.LeftStartY, s.LeftEndY = uint(r.Y), uint(r.Y+r.H-1)
	case geom.EdgeRight:
		s.Right = uint(r.W)
		s.RightStartY, s.RightEndY = uint(r.Y), uint(r.Y+r.H-1)
	default:
		s.Bottom = uint(r.H)
		s.BottomStartX, s.BottomEndX = uint(r.X), uint(r.X+r.W-1)
	}
	return s
}

// menuRect places a popup of size w x h next to the button at b, which is
// relative to the panel at p, and keeps it on screen.
func menuRect(edge geom.Edge, p, b geom.Rect, w, h int, screen geom.Rect) geom.Rect {
	r := geom.Rect{X: p.X + b.X, Y: p.Y + b.Y, W: w, H: h}
	switch edge {
	case geom.EdgeTop:
		r.Y = p.Y + p.H
	case geom.EdgeLeft:
		r.X = p.X + p.W
	case geom.EdgeRight:
		r.X = p.X - w
	default:
		r.Y = p.Y - h
	}
	r.X = max(screen.X, min(r.X, screen.X+screen.W-w))
	r.Y = max(screen.Y, min(r.Y, screen.Y+screen.H-h))
	return r
}
