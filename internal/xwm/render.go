package xwm

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/BurntSushi/freetype-go/freetype/truetype"
	"github.com/ItsNotGoodName/waterline/internal/taskbar"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xgraphics"
)

var (
	colorPanel     = xgraphics.BGRA{B: 0x2b, G: 0x2b, R: 0x2b, A: 0xff}
	colorButton    = xgraphics.BGRA{B: 0x3a, G: 0x3a, R: 0x3a, A: 0xff}
	colorEntered   = xgraphics.BGRA{B: 0x4c, G: 0x4c, R: 0x4c, A: 0xff}
	colorFocused   = xgraphics.BGRA{B: 0x78, G: 0x5a, R: 0x38, A: 0xff}
	colorFlash     = xgraphics.BGRA{B: 0x20, G: 0x68, R: 0xc8, A: 0xff}
	colorBorder    = xgraphics.BGRA{B: 0x5c, G: 0x5c, R: 0x5c, A: 0xff}
	colorMenu      = xgraphics.BGRA{B: 0x33, G: 0x33, R: 0x33, A: 0xff}
	colorText      = xgraphics.BGRA{B: 0xee, G: 0xee, R: 0xee, A: 0xff}
	colorDimText   = xgraphics.BGRA{B: 0x99, G: 0x99, R: 0x99, A: 0xff}
	colorFallback  = xgraphics.BGRA{B: 0x90, G: 0x90, R: 0x90, A: 0xff}
	colorSeparator = xgraphics.BGRA{B: 0x55, G: 0x55, R: 0x55, A: 0xff}
)

const (
	buttonPadding = 3
	iconSpacing   = 4
	ellipsis      = "…"
)

// pixel is c on a 24 bit true color visual.
func pixel(c xgraphics.BGRA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func fontSize(height int) float64 {
	return min(float64(height)*0.45, 11)
}

func buttonColor(state taskbar.ButtonState) xgraphics.BGRA {
	switch {
	case state.Flash:
		return colorFlash
	case state.Focused:
		return colorFocused
	case state.Entered:
		return colorEntered
	case state.Flat:
		return colorPanel
	default:
		return colorButton
	}
}

// renderButton draws a task button. The caller owns the returned image.
func renderButton(X *xgbutil.XUtil, w, h int, state taskbar.ButtonState, font *truetype.Font) *xgraphics.Image {
	img := xgraphics.New(X, image.Rect(0, 0, w, h))
	bg := buttonColor(state)
	border := !state.Flat || state.Focused || state.Entered
	img.For(func(x, y int) xgraphics.BGRA {
		if border && (x == 0 || y == 0 || x == w-1 || y == h-1) {
			return colorBorder
		}
		return bg
	})

	x := buttonPadding
	if state.ShowIcon {
		size := state.IconSize
		if size <= 0 || size > h-2 {
			size = max(h-2*buttonPadding, 1)
		}
		icon := state.Icon
		if icon == nil {
			icon = fallbackIcon(size)
		} else if b := icon.Bounds(); b.Dx() != size || b.Dy() != size {
			icon = xgraphics.Scale(icon, size, size)
		}

		if !state.ShowLabel || font == nil {
			x = max((w-size)/2, 0)
		}
		y := (h - size) / 2
		if sub, ok := img.SubImage(image.Rect(x, y, x+size, y+size)).(*xgraphics.Image); ok {
			xgraphics.Blend(sub, icon, image.Point{})
		}
		x += size + iconSpacing
	}

	if state.ShowLabel && font != nil {
		clr := colorText
		if state.Iconified {
			clr = colorDimText
		}
		drawText(img, font, fontSize(h), clr, state.Label, x, w-buttonPadding)
	}

	return img
}

// drawText writes label centered vertically in img between x and right.
func drawText(img *xgraphics.Image, font *truetype.Font, size float64, clr color.Color, label string, x, right int) {
	text := fitText(font, size, label, right-x)
	if text == "" {
		return
	}
	_, th := xgraphics.Extents(font, size, text)
	b := img.Bounds()
	y := b.Min.Y + (b.Dy()-th)/2
	if _, _, err := img.Text(x, y, clr, size, font, text); err != nil {
		slog.Debug("Failed to draw text", "package", "xwm", "error", err)
	}
}

// fitText shortens text with an ellipsis until it is at most width wide.
func fitText(font *truetype.Font, size float64, text string, width int) string {
	if width <= 0 {
		return ""
	}
	if tw, _ := xgraphics.Extents(font, size, text); tw <= width {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		short := string(runes[:n]) + ellipsis
		if tw, _ := xgraphics.Extents(font, size, short); tw <= width {
			return short
		}
	}
	return ""
}

// fallbackIcon is a framed square for windows without an icon.
func fallbackIcon(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	inset := max(size/6, 1)
	for y := inset; y < size-inset; y++ {
		for x := inset; x < size-inset; x++ {
			edge := x == inset || y == inset || x == size-inset-1 || y == size-inset-1 || y == inset+1
			if edge {
				img.Set(x, y, colorFallback)
			} else {
				img.Set(x, y, colorPanel)
			}
		}
	}
	return img
}
