package xwm

import (
	"errors"
	"fmt"
	"image"

	"github.com/ItsNotGoodName/waterline/internal/taskbar"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/xgraphics"
	"github.com/jezek/xgbutil/xprop"
)

var errNoIcon = errors.New("no icon")

// loadIcon reads one icon source of win and scales it to size.
func loadIcon(X *xgbutil.XUtil, win xproto.Window, source taskbar.IconSource, size int) (image.Image, error) {
	var (
		img *xgraphics.Image
		err error
	)
	switch source {
	case taskbar.IconNetWM:
		img, err = netWMIcon(X, win, size)
	case taskbar.IconWMHints:
		img, err = hintsIcon(X, win)
	case taskbar.IconLegacy:
		img, err = legacyIcon(X, win)
	default:
		err = fmt.Errorf("icon source %s: %w", source, errNoIcon)
	}
	if err != nil {
		return nil, err
	}

	if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
		img = img.Scale(size, size)
	}
	return img, nil
}

func netWMIcon(X *xgbutil.XUtil, win xproto.Window, size int) (*xgraphics.Image, error) {
	icons, err := ewmh.WmIconGet(X, win)
	if err != nil {
		return nil, err
	}
	icon, ok := bestIcon(icons, size)
	if !ok {
		return nil, errNoIcon
	}
	return xgraphics.NewEwmhIcon(X, &icon), nil
}

// bestIcon picks the smallest icon at least size wide, else the largest.
func bestIcon(icons []ewmh.WmIcon, size int) (ewmh.WmIcon, bool) {
	var (
		best  ewmh.WmIcon
		found bool
	)
	for _, icon := range icons {
		if icon.Width == 0 || icon.Height == 0 || len(icon.Data) < int(icon.Width*icon.Height) {
			continue
		}
		if !found {
			best, found = icon, true
			continue
		}
		bigEnough := int(icon.Width) >= size
		bestBigEnough := int(best.Width) >= size
		switch {
		case bigEnough && (!bestBigEnough || icon.Width < best.Width):
			best = icon
		case !bigEnough && !bestBigEnough && icon.Width > best.Width:
			best = icon
		}
	}
	return best, found
}

func hintsIcon(X *xgbutil.XUtil, win xproto.Window) (*xgraphics.Image, error) {
	hints, err := icccm.WmHintsGet(X, win)
	if err != nil {
		return nil, err
	}
	if hints.Flags&icccm.HintIconPixmap == 0 || hints.IconPixmap == 0 {
		return nil, errNoIcon
	}
	mask := xproto.Pixmap(0)
	if hints.Flags&icccm.HintIconMask != 0 {
		mask = hints.IconMask
	}
	return xgraphics.NewIcccmIcon(X, hints.IconPixmap, mask)
}

// legacyIcon reads KWM_WIN_ICON, a pixmap and mask pair.
func legacyIcon(X *xgbutil.XUtil, win xproto.Window) (*xgraphics.Image, error) {
	nums, err := xprop.PropValNums(xprop.GetProperty(X, win, "KWM_WIN_ICON"))
	if err != nil {
		return nil, err
	}
	if len(nums) < 2 || nums[0] == 0 {
		return nil, errNoIcon
	}
	return xgraphics.NewIcccmIcon(X, xproto.Pixmap(nums[0]), xproto.Pixmap(nums[1]))
}
