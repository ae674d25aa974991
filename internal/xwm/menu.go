package xwm

import (
	"image"

	"github.com/ItsNotGoodName/waterline/internal/geom"
	"github.com/ItsNotGoodName/waterline/internal/taskbar"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/xgraphics"
)

const (
	menuPadding    = 6
	menuIndent     = 12
	menuMinWidth   = 140
	separatorSpace = 7
)

// menuRow is one line of a flattened menu. Submenus become a disabled header
// followed by their items, indented.
type menuRow struct {
	id        string
	label     string
	enabled   bool
	separator bool
	indent    int
}

func menuRows(items []taskbar.MenuItem, indent int) []menuRow {
	var rows []menuRow
	for _, item := range items {
		if !item.Visible {
			continue
		}
		switch item.Kind {
		case taskbar.MenuSeparator:
			rows = append(rows, menuRow{separator: true, indent: indent})
		case taskbar.MenuSubmenu:
			children := menuRows(item.Items, indent+1)
			if len(children) == 0 {
				continue
			}
			rows = append(rows, menuRow{label: item.Label, indent: indent})
			rows = append(rows, children...)
		default:
			rows = append(rows, menuRow{id: item.ID, label: item.Label, enabled: item.Enabled, indent: indent})
		}
	}
	return rows
}

func rowHeight(row menuRow, textHeight int) int {
	if row.separator {
		return separatorSpace
	}
	return textHeight
}

// rowAt returns the index of the row at y, or -1.
func rowAt(rows []menuRow, textHeight, y int) int {
	top := menuPadding
	for i, row := range rows {
		h := rowHeight(row, textHeight)
		if y >= top && y < top+h {
			return i
		}
		top += h
	}
	return -1
}

type popup struct {
	panel      *Panel
	owner      *button
	win        xproto.Window
	rows       []menuRow
	rect       geom.Rect
	textHeight int
}

func (p *Panel) showMenu(b *button, menu taskbar.Menu) {
	p.closeMenu()

	rows := menuRows(menu.Items, 0)
	if len(rows) == 0 {
		return
	}
	if p.font == nil {
		labels := make([]string, 0, len(rows))
		for _, row := range rows {
			if row.id != "" {
				labels = append(labels, row.id)
			}
		}
		p.slog.Info("Menu needs a font to be shown", "window", menu.Window, "items", labels)
		return
	}

	size := fontSize(p.settings.Height)
	_, th := xgraphics.Extents(p.font, size, "Xg")
	textHeight := th + 6
	width, height := menuMinWidth, 2*menuPadding
	for _, row := range rows {
		height += rowHeight(row, textHeight)
		if row.separator {
			continue
		}
		tw, _ := xgraphics.Extents(p.font, size, row.label)
		width = max(width, tw+row.indent*menuIndent+2*menuPadding)
	}
	width = min(width, p.screen.W)

	rect := menuRect(p.settings.Edge, p.rect, b.rect, width, height, p.screen)
	wid, err := createPopupWindow(p.conn(), p.X.Screen(), rect)
	if err != nil {
		p.slog.Error("Failed to create menu window", "error", err)
		return
	}

	p.menu = &popup{
		panel:      p,
		owner:      b,
		win:        wid,
		rows:       rows,
		rect:       rect,
		textHeight: textHeight,
	}
	xproto.MapWindow(p.conn(), wid)
	p.menu.paint()
}

func (m *popup) press(y int) {
	i := rowAt(m.rows, m.textHeight, y)
	if i < 0 {
		return
	}
	row := m.rows[i]
	if row.id == "" || !row.enabled {
		return
	}
	owner := m.owner
	m.panel.closeMenu()
	owner.onInput(taskbar.Input{Kind: taskbar.InputMenuItem, Item: row.id})
}

func (m *popup) paint() {
	w, h := m.rect.W, m.rect.H
	img := xgraphics.New(m.panel.X, image.Rect(0, 0, w, h))
	defer img.Destroy()
	img.For(func(x, y int) xgraphics.BGRA {
		return colorMenu
	})

	size := fontSize(m.panel.settings.Height)
	top := menuPadding
	for _, row := range m.rows {
		rh := rowHeight(row, m.textHeight)
		x := menuPadding + row.indent*menuIndent
		if row.separator {
			line := image.Rect(x, top+rh/2, w-menuPadding, top+rh/2+1)
			if sub, ok := img.SubImage(line).(*xgraphics.Image); ok {
				sub.For(func(x, y int) xgraphics.BGRA { return colorSeparator })
			}
		} else {
			clr := colorText
			if row.id == "" || !row.enabled {
				clr = colorDimText
			}
			if sub, ok := img.SubImage(image.Rect(0, top, w, top+rh)).(*xgraphics.Image); ok {
				drawText(sub, m.panel.font, size, clr, row.label, x, w-menuPadding)
			}
		}
		top += rh
	}

	if err := img.XSurfaceSet(m.win); err != nil {
		m.panel.slog.Debug("Failed to set surface", "window", m.win, "error", err)
		return
	}
	img.XDraw()
	img.XPaint(m.win)
}
