package taskbar

import (
	"github.com/ItsNotGoodName/waterline/internal/geom"
)

// iconAllocated is called when the grid places the button of t. The icon is
// only reloaded when the size it would be drawn at changes, and only once
// per loop iteration.
func (tb *Taskbar) iconAllocated(t *Task, r geom.Rect) {
	size := min(r.W, r.H) - 2*buttonPadding
	if tb.panel != nil {
		size = min(size, tb.panel.IconSize())
	}
	size = max(size, 1)
	if size == t.iconAllocSize {
		return
	}
	t.iconAllocSize = size

	if t.iconHandle != nil {
		return
	}
	t.iconHandle = tb.sched.Idle(func() {
		t.iconHandle = nil
		if tb.tasks[t.window] != t {
			return
		}
		tb.begin()
		tb.loadIcon(t, IconNone)
		tb.end()
	})
}

// loadIcon tries requested, then the source that worked last, then the rest
// in priority order. Without an allocation there is nothing to load yet.
func (tb *Taskbar) loadIcon(t *Task, requested IconSource) {
	size := t.iconAllocSize
	if size <= 0 {
		return
	}

	tried := make(map[IconSource]bool, 4)
	for _, source := range []IconSource{requested, t.iconSource, IconNetWM, IconWMHints, IconLegacy} {
		if source == IconNone || tried[source] {
			continue
		}
		tried[source] = true

		img, err := tb.display.Icon(t.window, source, size)
		if err != nil || img == nil {
			continue
		}
		t.icon, t.iconSource, t.iconSize = img, source, size
		tb.render(t)
		return
	}

	tb.slog.Debug("No icon, using fallback", "window", t.window)
	t.icon, t.iconSource, t.iconSize = nil, IconNone, size
	tb.render(t)
}
