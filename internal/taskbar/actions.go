package taskbar

import "slices"

func (tb *Taskbar) handleInput(t *Task, in Input) {
	if tb.tasks[t.window] != t {
		return
	}
	if in.Kind == InputMenuItem {
		if err := tb.ActivateMenuItem(t.window, in.Item); err != nil {
			tb.slog.Debug("Ignoring stale menu item", "item", in.Item, "error", err)
		}
		return
	}

	tb.begin()
	defer tb.end()

	switch in.Kind {
	case InputEnter, InputLeave:
		entered := in.Kind == InputEnter
		if t.entered != entered {
			t.entered = entered
			tb.render(t)
		}
	case InputPress:
		tb.runAction(t, tb.cfg.buttonAction(in.Button, in.Shift))
	case InputScrollUp:
		if tb.cfg.UseMouseWheel {
			tb.runAction(t, tb.cfg.ScrollUpAction)
		}
	case InputScrollDown:
		if tb.cfg.UseMouseWheel {
			tb.runAction(t, tb.cfg.ScrollDownAction)
		}
	}
}

// RunAction runs a as if it was bound to the button of w.
func (tb *Taskbar) RunAction(w Window, a Action) {
	t := tb.tasks[w]
	if t == nil {
		return
	}
	tb.begin()
	defer tb.end()
	tb.runAction(t, a)
}

func (tb *Taskbar) runAction(t *Task, a Action) {
	c := tb.classOf(t)
	collapsed := c != nil && tb.collapsed(c)

	var err error
	switch a {
	case ActionNone:
	case ActionShowMenu:
		t.button.ShowMenu(tb.buildMenu(t))
	case ActionClose:
		err = tb.display.Close(t.window)
	case ActionRaiseIconify:
		if collapsed {
			err = tb.cycleClass(c)
		} else if t.focused && !t.iconified {
			err = tb.display.Iconify(t.window)
		} else {
			err = tb.raise(t)
		}
	case ActionIconify:
		err = tb.display.Iconify(t.window)
	case ActionMaximize:
		err = tb.display.SetMaximized(t.window, !t.maximized)
	case ActionNextWindow:
		err = tb.cycle(1)
	case ActionPrevWindow:
		err = tb.cycle(-1)
	case ActionToggleGroup:
		if c != nil && len(c.members) > 1 {
			tb.setManualCollapse(c, !collapsed)
		}
	}
	if err != nil {
		tb.slog.Debug("Action failed", "action", a, "window", t.window, "error", err)
	}
}

// raise activates t and drops its urgency. A task on another desktop, shown
// because of ShowAllDesks, switches to its desktop first.
func (tb *Taskbar) raise(t *Task) error {
	tb.setUrgency(t, false)
	if t.desktop != AllDesktops && t.desktop != tb.currentDesktop {
		if err := tb.display.SetCurrentDesktop(t.desktop); err != nil {
			tb.slog.Debug("Failed to switch desktop", "desktop", t.desktop, "error", err)
		}
	}
	return tb.display.Activate(t.window)
}

// cycleClass activates the member of c after the focused one.
func (tb *Taskbar) cycleClass(c *TaskClass) error {
	var members []*Task
	for _, t := range c.members {
		if tb.desktopVisible(t) {
			members = append(members, t)
		}
	}
	if len(members) == 0 {
		return nil
	}

	next := members[0]
	if idx := slices.Index(members, tb.focused); idx != -1 {
		next = members[(idx+1)%len(members)]
	}
	return tb.raise(next)
}

// cycle activates the next or previous visible button relative to the
// focused task.
func (tb *Taskbar) cycle(step int) error {
	var visible []*Task
	for _, t := range tb.order {
		if tb.grid.Visible(t.widget) {
			visible = append(visible, t)
		}
	}
	if len(visible) == 0 {
		return nil
	}

	idx := slices.IndexFunc(visible, func(t *Task) bool {
		if t == tb.focused {
			return true
		}
		c := tb.classOf(t)
		return c != nil && tb.focused != nil && tb.collapsed(c) && tb.focused.grouped && tb.focused.classKey == c.key
	})

	var next *Task
	switch {
	case idx == -1 && step > 0:
		next = visible[0]
	case idx == -1:
		next = visible[len(visible)-1]
	default:
		next = visible[(idx+step+len(visible))%len(visible)]
	}
	return tb.raise(next)
}
