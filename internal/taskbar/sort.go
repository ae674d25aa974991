package taskbar

import (
	"cmp"
	"slices"
)

// statePriority orders tasks when sorting by state.
func statePriority(t *Task) int {
	switch {
	case t.urgency:
		return 0
	case !t.iconified:
		return 1
	default:
		return 2
	}
}

// classTimestamp is the registration order of the class of t. Ungrouped
// tasks stand in for a class of their own.
func (tb *Taskbar) classTimestamp(t *Task) uint64 {
	if c := tb.classOf(t); c != nil {
		return c.timestamp
	}
	return t.timestamp
}

// compareTasks is the display order. Every sort except timestamp falls back
// to newest first.
func (tb *Taskbar) compareTasks(a, b *Task) int {
	var c int
	switch tb.cfg.SortBy {
	case SortTimestamp:
		return cmp.Compare(a.timestamp, b.timestamp)
	case SortWorkspace:
		c = cmp.Compare(a.desktop, b.desktop)
	case SortState:
		c = cmp.Compare(statePriority(a), statePriority(b))
	case SortClass:
		c = cmp.Compare(tb.classTimestamp(a), tb.classTimestamp(b))
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(b.timestamp, a.timestamp)
}

// reposition moves t to its sorted place and its button with it.
func (tb *Taskbar) reposition(t *Task) {
	idx := slices.Index(tb.order, t)
	if idx == -1 {
		return
	}
	tb.order = slices.Delete(tb.order, idx, idx+1)

	to := len(tb.order)
	for i, x := range tb.order {
		if tb.compareTasks(t, x) < 0 {
			to = i
			break
		}
	}
	tb.order = slices.Insert(tb.order, to, t)
	if to == idx {
		return
	}

	tb.placeButton(to)
	tb.markDirty()
}

func (tb *Taskbar) placeButton(i int) {
	var after *taskWidget
	if i > 0 {
		after = tb.order[i-1].widget
	}
	if after == nil {
		tb.grid.PlaceAfter(tb.order[i].widget, nil)
		return
	}
	tb.grid.PlaceAfter(tb.order[i].widget, after)
}

// resort sorts every task, used after the sort order changed.
func (tb *Taskbar) resort() {
	slices.SortStableFunc(tb.order, tb.compareTasks)
	for i := range tb.order {
		tb.placeButton(i)
	}
	tb.markDirty()
}
