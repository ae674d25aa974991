package taskbar

// updateFlash keeps the blink timers of c in line with its members. A
// collapsed class owns one timer that draws on its representative, so the
// phase carries over when the representative changes. Members of an expanded
// class blink on their own.
func (tb *Taskbar) updateFlash(c *TaskClass) {
	if !tb.collapsed(c) {
		phase, inherit := c.flash.phase, c.flash.running()
		c.flash.stop()
		c.flashingTask = nil
		for _, t := range c.members {
			tb.setTaskFlash(t, t.urgency, phase, inherit)
		}
		return
	}

	var flashing *Task
	if c.visible != nil && c.urgent() {
		flashing = c.visible
	}

	phase, inherit := true, false
	for _, t := range c.members {
		if t.flash.running() && !inherit {
			phase, inherit = t.flash.phase, true
		}
		t.flash.stop()
	}

	if flashing == nil {
		c.flash.stop()
		c.flashingTask = nil
		return
	}

	if !c.flash.running() {
		c.flash.phase = phase
		c.flash.start(tb.sched, tb.blinkTime, func() {
			tb.begin()
			if c.flashingTask != nil {
				tb.render(c.flashingTask)
			}
			tb.end()
		})
	}
	c.flashingTask = flashing
}

// updateSoloFlash handles tasks that are not in a class.
func (tb *Taskbar) updateSoloFlash(t *Task) {
	tb.setTaskFlash(t, t.urgency, true, false)
}

func (tb *Taskbar) setTaskFlash(t *Task, on bool, phase bool, inherit bool) {
	if !on {
		t.flash.stop()
		return
	}
	if t.flash.running() {
		return
	}
	t.flash.phase = true
	if inherit {
		t.flash.phase = phase
	}
	t.flash.start(tb.sched, tb.blinkTime, func() {
		tb.begin()
		tb.render(t)
		tb.end()
	})
}

// setUrgency changes the urgency flag of t and restarts flashing.
func (tb *Taskbar) setUrgency(t *Task, urgency bool) {
	if t.urgency == urgency {
		return
	}
	t.urgency = urgency
	if tb.cfg.GroupBy == GroupState {
		tb.reclassify(t)
	}
	if tb.cfg.SortBy == SortState {
		tb.reposition(t)
	}
	tb.refreshTaskAndClass(t)
}

// ClearUrgency drops the urgency of w until the hint is set again.
func (tb *Taskbar) ClearUrgency(w Window) {
	t := tb.tasks[w]
	if t == nil {
		return
	}
	tb.begin()
	defer tb.end()
	tb.setUrgency(t, false)
}
