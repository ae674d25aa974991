package taskbar

import (
	"fmt"
	"slices"
)

// Reconcile syncs the tasks with the client list.
func (tb *Taskbar) Reconcile() {
	tb.begin()
	defer tb.end()
	tb.reconcile()
}

func (tb *Taskbar) reconcile() {
	windows, err := tb.display.ClientList()
	if err != nil {
		tb.slog.Debug("Failed to read client list", "error", err)
		return
	}

	for _, t := range tb.tasks {
		t.present = false
	}
	listed := make(map[Window]bool, len(windows))

	for _, w := range windows {
		listed[w] = true
		if t, ok := tb.tasks[w]; ok {
			t.present = true
			continue
		}

		if !tb.watched[w] {
			if err := tb.display.Watch(w); err != nil {
				tb.slog.Debug("Failed to watch window", "window", w, "error", err)
			}
			tb.watched[w] = true
		}

		if !tb.accept(w) {
			continue
		}
		tb.addTask(w).present = true
	}

	for _, t := range slices.Clone(tb.order) {
		if !t.present {
			tb.deleteTask(t)
		}
	}
	for w := range tb.watched {
		if !listed[w] {
			delete(tb.watched, w)
		}
	}
}

func (tb *Taskbar) addTask(w Window) *Task {
	t := &Task{
		taskbar:   tb,
		window:    w,
		timestamp: tb.nextTimestamp(),
		desktop:   tb.currentDesktop,
	}
	t.widget = &taskWidget{task: t}

	if d, err := tb.display.WindowDesktop(w); err == nil {
		t.desktop = d
	}
	if state, err := tb.display.NetState(w); err == nil {
		t.maximized = state.Maximized()
	}
	if iconified, err := tb.display.Iconified(w); err == nil {
		t.iconified = iconified
	}
	if tb.cfg.UseUrgencyHint {
		if hints, err := tb.display.Hints(w); err == nil {
			t.urgency = hints.Urgent
		}
	}
	tb.fetchName(t)
	tb.fetchClass(t)

	t.button = tb.buttons.NewButton(func(in Input) { tb.handleInput(t, in) })

	tb.tasks[w] = t
	tb.order = append(tb.order, t)
	tb.grid.Add(t.widget, false)
	tb.assignClass(t)
	tb.reposition(t)

	if w == tb.activeWindow {
		t.focused = true
		t.focusTimestamp = tb.nextFocusTimestamp()
		tb.focused = t
	}

	tb.refreshTaskAndClass(t)
	tb.markDirty()
	tb.slog.Debug("Added task", "window", w, "name", t.name, "class", t.classKey)
	return t
}

func (tb *Taskbar) deleteTask(t *Task) {
	t.flash.stop()
	if t.iconHandle != nil {
		t.iconHandle.Cancel()
		t.iconHandle = nil
	}
	if tb.focused == t {
		tb.focused = nil
	}

	old := tb.unlinkClass(t)

	delete(tb.tasks, t.window)
	tb.order = slices.DeleteFunc(tb.order, func(x *Task) bool { return x == t })
	tb.grid.Remove(t.widget)
	t.button.Destroy()

	if old != nil {
		tb.refreshClass(old)
	}
	tb.markDirty()
	tb.slog.Debug("Deleted task", "window", t.window)
}

func (tb *Taskbar) nextFocusTimestamp() uint64 {
	tb.focusTimestamp++
	return tb.focusTimestamp
}

// desktopName is the label of desktop d when grouping by workspace.
func (tb *Taskbar) desktopName(d int) string {
	if d == AllDesktops {
		return allDesktopsLabel
	}
	if d >= 0 && d < len(tb.desktopNames) && tb.desktopNames[d] != "" {
		return tb.desktopNames[d]
	}
	return fmt.Sprintf("Workspace %d", d+1)
}

const (
	stateUrgency   = "Urgency"
	stateIconified = "Iconified"
	stateMapped    = "Mapped"
)

// classKey classifies t. ok is false when t is not grouped.
func (tb *Taskbar) classKey(t *Task) (string, bool) {
	if !tb.grouping() {
		return "", false
	}
	if t.overrideClass != "" {
		return t.overrideClass, true
	}

	switch tb.cfg.GroupBy {
	case GroupClass:
		return t.resourceClass(), true
	case GroupWorkspace:
		return tb.desktopName(t.desktop), true
	case GroupState:
		switch {
		case t.urgency:
			return stateUrgency, true
		case t.iconified:
			return stateIconified, true
		default:
			return stateMapped, true
		}
	}
	return "", false
}

// unlinkClass removes t from its class and deletes the class when it is
// left empty. It returns the class if it survived.
func (tb *Taskbar) unlinkClass(t *Task) *TaskClass {
	c := tb.classOf(t)
	t.grouped, t.classKey = false, ""
	if c == nil {
		return nil
	}

	if idx := c.indexOf(t); idx != -1 {
		c.members = slices.Delete(c.members, idx, idx+1)
	}
	if c.flashingTask == t {
		c.flashingTask = nil
	}
	if len(c.members) == 0 {
		c.flash.stop()
		tb.classes.remove(c)
		tb.slog.Debug("Deleted class", "class", c.key)
		return nil
	}
	return c
}

// assignClass links t into the class of its key without refreshing.
func (tb *Taskbar) assignClass(t *Task) {
	key, ok := tb.classKey(t)
	if !ok {
		return
	}
	c := tb.classes.getOrCreate(key, t.timestamp)
	c.members = append(c.members, t)
	t.grouped, t.classKey = true, key
}

// reclassify moves t to the class of its current key. Nothing happens when
// the key did not change.
func (tb *Taskbar) reclassify(t *Task) {
	key, ok := tb.classKey(t)
	if ok == t.grouped && key == t.classKey {
		return
	}

	old := tb.unlinkClass(t)
	tb.assignClass(t)
	if tb.cfg.SortBy == SortClass {
		tb.reposition(t)
	}

	if old != nil {
		tb.refreshClass(old)
	}
	tb.refreshTaskAndClass(t)
	tb.markDirty()
}

// regroup reclassifies every task, used after the grouping changed.
func (tb *Taskbar) regroup() {
	for _, t := range slices.Clone(tb.order) {
		tb.reclassify(t)
	}
}

// HandleRootProperty handles a change of a root window property.
func (tb *Taskbar) HandleRootProperty(p Property) {
	if !tb.constructed {
		return
	}

	tb.begin()
	defer tb.end()

	switch p {
	case PropClientList:
		tb.reconcile()
	case PropActiveWindow:
		tb.activeWindowChanged()
	case PropCurrentDesktop:
		tb.currentDesktopChanged()
	case PropDesktopCount:
		if n, err := tb.display.DesktopCount(); err == nil {
			tb.desktopCount = n
			tb.markDirty()
		}
	case PropDesktopNames:
		tb.desktopNamesChanged()
	}
}

func (tb *Taskbar) desktopNamesChanged() {
	names, err := tb.display.DesktopNames()
	if err != nil {
		tb.slog.Debug("Failed to read desktop names", "error", err)
		return
	}
	tb.desktopNames = names
	if tb.cfg.GroupBy == GroupWorkspace {
		tb.regroup()
	}
	tb.markDirty()
}

// HandleWindowProperty handles a change of a property on w. deleted is set
// when the property was removed.
func (tb *Taskbar) HandleWindowProperty(w Window, p Property, deleted bool) {
	if !tb.constructed {
		return
	}

	tb.begin()
	defer tb.end()

	t := tb.tasks[w]
	if t == nil {
		// A window that was rejected may qualify after a state change.
		if tb.watched[w] && (p == PropNetState || p == PropWindowType) && tb.accept(w) {
			tb.addTask(w)
		}
		return
	}

	switch p {
	case PropWindowDesktop:
		d, err := tb.display.WindowDesktop(w)
		if err != nil || d == t.desktop {
			return
		}
		t.desktop = d
		if tb.cfg.GroupBy == GroupWorkspace {
			tb.reclassify(t)
		}
		if tb.cfg.SortBy == SortWorkspace {
			tb.reposition(t)
		}
		tb.refreshTaskAndClass(t)
	case PropVisibleName:
		tb.nameChanged(t, NameVisible, deleted)
	case PropName:
		tb.nameChanged(t, NameNet, deleted)
	case PropLegacyName:
		tb.nameChanged(t, NameLegacy, deleted)
	case PropClass:
		tb.fetchClass(t)
		if tb.cfg.GroupBy == GroupClass {
			tb.reclassify(t)
		}
		tb.render(t)
	case PropWMState:
		iconified, err := tb.display.Iconified(w)
		if err != nil || iconified == t.iconified {
			return
		}
		t.iconified = iconified
		if tb.cfg.GroupBy == GroupState {
			tb.reclassify(t)
		}
		if tb.cfg.SortBy == SortState {
			tb.reposition(t)
		}
		tb.refreshTaskAndClass(t)
	case PropHints:
		if t.iconSource != IconNetWM {
			tb.loadIcon(t, IconWMHints)
		}
		if tb.cfg.UseUrgencyHint {
			if hints, err := tb.display.Hints(w); err == nil {
				tb.setUrgency(t, hints.Urgent)
			}
		}
	case PropNetState:
		if !tb.accept(w) {
			tb.deleteTask(t)
			return
		}
		if state, err := tb.display.NetState(w); err == nil && state.Maximized() != t.maximized {
			t.maximized = state.Maximized()
			tb.markDirty()
		}
	case PropIcon:
		tb.loadIcon(t, IconNetWM)
	case PropLegacyIcon:
		if t.iconSource == IconNone || t.iconSource == IconLegacy {
			tb.loadIcon(t, IconLegacy)
		}
	case PropWindowType:
		if !tb.accept(w) {
			tb.deleteTask(t)
		}
	}
}

func (tb *Taskbar) fetchClass(t *Task) {
	instance, class, err := tb.display.Class(t.window)
	if err != nil {
		tb.slog.Debug("Failed to read class", "window", t.window, "error", err)
		return
	}
	t.instance, t.className = instance, class
}

// fetchName reads the title from the highest source that has one.
func (tb *Taskbar) fetchName(t *Task) {
	for _, source := range []NameSource{NameVisible, NameNet, NameLegacy} {
		name, err := tb.display.Name(t.window, source)
		if err == nil && name != "" {
			t.name, t.nameSource = name, source
			return
		}
	}
	t.nameSource = NameNone
}

// nameChanged applies the title precedence. A lower source never replaces
// a higher one unless the higher one was deleted.
func (tb *Taskbar) nameChanged(t *Task, source NameSource, deleted bool) {
	if source < t.nameSource {
		return
	}

	if deleted {
		tb.fetchName(t)
	} else {
		name, err := tb.display.Name(t.window, source)
		if err != nil || name == "" {
			if source != t.nameSource {
				return
			}
			tb.fetchName(t)
		} else {
			t.name, t.nameSource = name, source
		}
	}

	tb.refreshTaskAndClass(t)
}

// activeWindowChanged is held back while a desktop switch is pending. A real
// window flushes the switch right away.
func (tb *Taskbar) activeWindowChanged() {
	w, err := tb.display.ActiveWindow()
	if err != nil {
		tb.slog.Debug("Failed to read active window", "error", err)
		w = 0
	}

	if tb.desktopPending {
		tb.deferredActive, tb.hasDeferredActive = w, true
		if w != 0 {
			tb.flushDesktop()
		}
		return
	}

	tb.applyActive(w)
}

func (tb *Taskbar) applyActive(w Window) {
	tb.activeWindow = w

	t := tb.tasks[w]
	if t == tb.focused {
		return
	}

	old := tb.focused
	tb.focused = t
	if old != nil {
		old.focused = false
	}
	if t != nil {
		t.focused = true
		t.focusTimestamp = tb.nextFocusTimestamp()
	}

	switch {
	case tb.cfg.Mode == ModeActiveWindow || tb.cfg.ExpandFocusedGroup:
		tb.refreshAll()
	default:
		if old != nil {
			tb.refreshTaskAndClass(old)
		}
		if t != nil {
			tb.refreshTaskAndClass(t)
		}
	}
	tb.markDirty()
}

// currentDesktopChanged debounces a switch to a desktop that has tasks.
func (tb *Taskbar) currentDesktopChanged() {
	d, err := tb.display.CurrentDesktop()
	if err != nil {
		tb.slog.Debug("Failed to read current desktop", "error", err)
		return
	}

	if tb.desktopPending {
		tb.deferredDesktop = d
		return
	}
	if d == tb.currentDesktop {
		return
	}

	if tb.visibleOnDesktop(d) > 0 {
		tb.desktopPending = true
		tb.deferredDesktop = d
		tb.hasDeferredActive = false
		tb.desktopHandle = tb.sched.After(DesktopSwitchDelay, func() {
			tb.desktopHandle = nil
			tb.begin()
			tb.flushDesktop()
			tb.end()
		})
		return
	}

	tb.applyDesktop(d)
}

// visibleOnDesktop counts the tasks the desktop rule shows on d, sticky
// tasks included.
func (tb *Taskbar) visibleOnDesktop(d int) int {
	n := 0
	for _, t := range tb.order {
		if tb.desktopVisibleOn(t, d) {
			n++
		}
	}
	return n
}

// flushDesktop applies a pending desktop switch and then the active window
// that arrived with it.
func (tb *Taskbar) flushDesktop() {
	if !tb.desktopPending {
		return
	}
	tb.desktopPending = false
	if tb.desktopHandle != nil {
		tb.desktopHandle.Cancel()
		tb.desktopHandle = nil
	}

	tb.begin()
	defer tb.end()

	tb.applyDesktop(tb.deferredDesktop)
	if tb.hasDeferredActive {
		tb.hasDeferredActive = false
		tb.applyActive(tb.deferredActive)
	}
}

func (tb *Taskbar) applyDesktop(d int) {
	if d == tb.currentDesktop {
		return
	}
	tb.currentDesktop = d
	tb.refreshAll()
}

// DesktopSwitchPending reports whether a desktop switch is held back.
func (tb *Taskbar) DesktopSwitchPending() bool {
	return tb.desktopPending
}
