package taskbar

import (
	"slices"
	"testing"

	"github.com/ItsNotGoodName/waterline/internal/config"
	"github.com/ItsNotGoodName/waterline/internal/geom"
)

func kv(key, value string) config.Entry {
	return config.Entry{Key: key, Value: value}
}

func assertWindows(t *testing.T, name string, got []Window, want ...Window) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestCollapseByClass(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Firefox", "Page A", 0)
	d.add(2, "Firefox", "Page B", 0)
	h := newHarness(t, d)

	assertWindows(t, "visible", h.visible(), 1)
	if got := h.button(1).state.Label; got != "Firefox (2)" {
		t.Errorf("label = %q, want %q", got, "Firefox (2)")
	}
	if got := h.button(1).state.Count; got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	h.checkInvariants()

	h.focus(2)
	assertWindows(t, "visible after focus", h.visible(), 2)
	if !h.button(2).state.Focused {
		t.Error("collapsed button should show focus")
	}

	d.add(3, "Firefox", "Page C", 0)
	h.root(PropClientList)
	assertWindows(t, "visible after add", h.visible(), 2)
	if got := h.button(2).state.Label; got != "Firefox (3)" {
		t.Errorf("label = %q, want %q", got, "Firefox (3)")
	}
	h.checkInvariants()
}

func TestCollapsedClassSharedTitle(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "XTerm", "shell", 0)
	d.add(2, "XTerm", "shell", 0)
	h := newHarness(t, d)

	if got := h.button(1).state.Label; got != "shell (2)" {
		t.Errorf("label = %q, want %q", got, "shell (2)")
	}
}

func TestSkipTaskbarDeletesTask(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Gimp", "Image", 0)
	h := newHarness(t, d)
	button := h.button(1)

	d.windows[1].state.SkipTaskbar = true
	h.property(1, PropNetState)

	if h.taskbar.Task(1) != nil {
		t.Fatal("task should be deleted")
	}
	if h.taskbar.Class("Gimp") != nil {
		t.Error("empty class should be deleted")
	}
	if !button.destroyed {
		t.Error("button should be destroyed")
	}
	h.checkInvariants()
}

func TestRejectedWindowAddedLater(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Panel", "dock", 0).typ.Dock = true
	h := newHarness(t, d)

	if h.taskbar.Task(1) != nil {
		t.Fatal("dock should be rejected")
	}
	if d.watched[1] != 1 {
		t.Errorf("watched %d times, want 1", d.watched[1])
	}

	d.windows[1].typ.Dock = false
	h.property(1, PropWindowType)
	if h.taskbar.Task(1) == nil {
		t.Fatal("window should be added once acceptable")
	}
}

func TestDesktopSwitchDebounce(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", 1)
	d.active = 1
	h := newHarness(t, d)

	assertWindows(t, "visible", h.visible(), 1)

	d.current = 1
	h.root(PropCurrentDesktop)
	if !h.taskbar.DesktopSwitchPending() {
		t.Fatal("switch should be pending")
	}
	if h.sched.Pending() != 1 {
		t.Fatalf("pending timers = %d, want 1", h.sched.Pending())
	}

	h.root(PropCurrentDesktop)
	if h.sched.Pending() != 1 {
		t.Errorf("repeated switch rearmed timer, pending = %d", h.sched.Pending())
	}

	d.active = 0
	h.root(PropActiveWindow)
	if h.taskbar.CurrentDesktop() != 0 {
		t.Fatal("desktop applied too early")
	}
	if h.taskbar.Focused() == nil || h.taskbar.Focused().Window() != 1 {
		t.Fatal("focus applied too early")
	}

	h.sched.Advance(DesktopSwitchDelay)
	if h.taskbar.DesktopSwitchPending() {
		t.Error("switch still pending")
	}
	if h.taskbar.CurrentDesktop() != 1 {
		t.Errorf("current desktop = %d, want 1", h.taskbar.CurrentDesktop())
	}
	if h.taskbar.Focused() != nil {
		t.Error("deferred focus change not applied")
	}
	assertWindows(t, "visible", h.visible(), 2)
	h.checkInvariants()
}

func TestDesktopSwitchFlushedByActiveWindow(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", 1)
	h := newHarness(t, d)

	d.current = 1
	h.root(PropCurrentDesktop)
	d.active = 2
	h.root(PropActiveWindow)

	if h.taskbar.DesktopSwitchPending() {
		t.Error("switch should be flushed")
	}
	if h.sched.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", h.sched.Pending())
	}
	if h.taskbar.CurrentDesktop() != 1 {
		t.Errorf("current desktop = %d, want 1", h.taskbar.CurrentDesktop())
	}
	if f := h.taskbar.Focused(); f == nil || f.Window() != 2 {
		t.Error("window 2 should be focused")
	}
}

func TestDesktopSwitchToEmptyDesktop(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	h := newHarness(t, d)

	d.current = 1
	h.root(PropCurrentDesktop)

	if h.taskbar.DesktopSwitchPending() {
		t.Error("switch to an empty desktop should apply at once")
	}
	if h.taskbar.CurrentDesktop() != 1 {
		t.Errorf("current desktop = %d, want 1", h.taskbar.CurrentDesktop())
	}
	assertWindows(t, "visible", h.visible())
}

func TestDesktopSwitchCountsStickyTasks(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", AllDesktops)
	h := newHarness(t, d)

	d.current = 1
	h.root(PropCurrentDesktop)
	if !h.taskbar.DesktopSwitchPending() {
		t.Fatal("switch to a desktop with a sticky task should be debounced")
	}

	h.sched.Advance(DesktopSwitchDelay)
	if h.taskbar.CurrentDesktop() != 1 {
		t.Errorf("current desktop = %d, want 1", h.taskbar.CurrentDesktop())
	}
	assertWindows(t, "visible", h.visible(), 2)
}

func TestDesktopSwitchShowAllDesks(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	h := newHarness(t, d, kv("ShowAllDesks", "1"))

	d.current = 1
	h.root(PropCurrentDesktop)
	if !h.taskbar.DesktopSwitchPending() {
		t.Error("every task is visible, so the switch should be debounced")
	}
}

func TestUrgentFlashFollowsRepresentative(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Firefox", "Page A", 0)
	d.add(2, "Firefox", "Page B", 0)
	h := newHarness(t, d)

	d.windows[2].urgent = true
	h.property(2, PropHints)

	c := h.taskbar.Class("Firefox")
	if c.flashingTask != h.task(1) {
		t.Fatal("representative should flash")
	}
	if !h.button(1).state.Flash {
		t.Error("flash should start on")
	}
	if h.sched.Pending() != 1 {
		t.Fatalf("pending timers = %d, want 1", h.sched.Pending())
	}

	h.sched.Advance(DefaultBlinkTime)
	if h.button(1).state.Flash {
		t.Error("flash should toggle off")
	}

	h.focus(2)
	if c.flashingTask != h.task(2) {
		t.Fatal("flash should move to the new representative")
	}
	if h.sched.Pending() != 1 {
		t.Errorf("pending timers = %d, want 1", h.sched.Pending())
	}
	if h.button(2).state.Flash {
		t.Error("phase should carry over")
	}

	h.sched.Advance(DefaultBlinkTime)
	if !h.button(2).state.Flash {
		t.Error("flash should toggle on")
	}

	h.taskbar.ClearUrgency(2)
	h.sched.Flush()
	if h.sched.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", h.sched.Pending())
	}
	if h.button(2).state.Flash {
		t.Error("flash should stop")
	}
}

func TestUrgentUngroupedTaskFlashes(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0).urgent = true
	h := newHarness(t, d, kv("GroupBy", "none"))

	if !h.button(1).state.Flash {
		t.Error("urgent task should flash")
	}
	h.sched.Advance(DefaultBlinkTime)
	if h.button(1).state.Flash {
		t.Error("flash should toggle")
	}

	h.press(1, 1, false)
	if h.task(1).urgency {
		t.Error("raising should clear urgency")
	}
	if h.sched.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", h.sched.Pending())
	}
}

func TestReconcileIdempotent(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Firefox", "Page A", 0)
	d.add(2, "Firefox", "Page B", 0)
	d.add(3, "XTerm", "shell", 1)
	h := newHarness(t, d)

	type counts struct{ renders, events int }
	before := make(map[*fakeButton]counts)
	for _, b := range h.factory.buttons {
		before[b] = counts{b.renders, b.events}
	}
	passes := h.taskbar.Grid().LayoutPasses()
	order := h.order()
	changed, unsubscribe := h.registry.Changed().Subscribe(4)
	defer unsubscribe()

	h.root(PropClientList)

	if len(h.factory.buttons) != len(before) {
		t.Errorf("buttons = %d, want %d", len(h.factory.buttons), len(before))
	}
	for b, c := range before {
		if got := (counts{b.renders, b.events}); got != c {
			t.Errorf("button touched: %+v, want %+v", got, c)
		}
	}
	if got := h.taskbar.Grid().LayoutPasses(); got != passes {
		t.Errorf("layout passes = %d, want %d", got, passes)
	}
	assertWindows(t, "order", h.order(), order...)
	if len(changed) != 0 {
		t.Error("no change should be broadcast")
	}
	for w := range d.windows {
		if d.watched[w] != 1 {
			t.Errorf("window %d watched %d times", w, d.watched[w])
		}
	}
}

func TestReconcileBroadcastsChange(t *testing.T) {
	d := newFakeDisplay()
	h := newHarness(t, d)
	changed, unsubscribe := h.registry.Changed().Subscribe(4)
	defer unsubscribe()

	d.add(1, "A", "one", 0)
	h.root(PropClientList)

	select {
	case c := <-changed:
		if c.TaskbarID != "test" {
			t.Errorf("taskbar id = %q", c.TaskbarID)
		}
	default:
		t.Error("change should be broadcast")
	}

	d.remove(1)
	h.root(PropClientList)
	if h.taskbar.Task(1) != nil {
		t.Error("removed window still tracked")
	}
	h.checkInvariants()
}

func TestReclassifySameKeyIsNoop(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Firefox", "Page A", 0)
	d.add(2, "Firefox", "Page B", 0)
	h := newHarness(t, d)

	c := h.taskbar.Class("Firefox")
	renders := h.button(1).renders
	members := slices.Clone(c.members)

	h.property(1, PropClass)
	h.taskbar.reclassify(h.task(2))

	if h.taskbar.Class("Firefox") != c {
		t.Error("class was recreated")
	}
	if !slices.Equal(c.members, members) {
		t.Error("members changed")
	}
	if h.button(1).renders != renders {
		t.Error("button was redrawn")
	}
}

func TestClassChangeMovesTask(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Firefox", "Page A", 0)
	d.add(2, "Firefox", "Page B", 0)
	h := newHarness(t, d)

	d.windows[2].class = "Navigator"
	h.property(2, PropClass)

	if c := h.taskbar.Class("Firefox"); c == nil || len(c.members) != 1 {
		t.Fatal("Firefox should keep one member")
	}
	if h.taskbar.Class("Navigator") == nil {
		t.Fatal("Navigator class missing")
	}
	assertWindows(t, "visible", h.visible(), 1, 2)
	h.checkInvariants()
}

func TestGroupThreshold(t *testing.T) {
	tests := []struct {
		threshold string
		windows   int
		collapsed bool
	}{
		{"0", 3, false},
		{"1", 1, true},
		{"2", 1, false},
		{"2", 2, true},
		{"3", 2, false},
	}

	for _, tt := range tests {
		d := newFakeDisplay()
		for i := 1; i <= tt.windows; i++ {
			d.add(Window(i), "Firefox", "Page", 0)
		}
		h := newHarness(t, d, kv("GroupThreshold", tt.threshold))

		c := h.taskbar.Class("Firefox")
		if got := h.taskbar.collapsed(c); got != tt.collapsed {
			t.Errorf("threshold %s with %d windows: collapsed = %v, want %v", tt.threshold, tt.windows, got, tt.collapsed)
		}
		want := tt.windows
		if tt.collapsed {
			want = 1
		}
		if got := len(h.visible()); got != want {
			t.Errorf("threshold %s with %d windows: %d visible, want %d", tt.threshold, tt.windows, got, want)
		}
	}
}

func TestLegacyGroupedTasks(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Firefox", "Page", 0)
	h := newHarness(t, d, kv("GroupedTasks", "1"))

	if !h.taskbar.collapsed(h.taskbar.Class("Firefox")) {
		t.Error("a single window class should collapse")
	}
	if got := h.button(1).state.Count; got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestNamePrecedence(t *testing.T) {
	d := newFakeDisplay()
	w := d.add(1, "A", "net", 0)
	w.names[NameVisible] = "visible"
	h := newHarness(t, d)

	if got := h.task(1).Name(); got != "visible" {
		t.Fatalf("name = %q, want %q", got, "visible")
	}

	w.names[NameNet] = "net 2"
	h.property(1, PropName)
	if got := h.task(1).Name(); got != "visible" {
		t.Errorf("lower source replaced name: %q", got)
	}

	delete(w.names, NameVisible)
	h.deleted(1, PropVisibleName)
	if got := h.task(1).Name(); got != "net 2" {
		t.Errorf("name = %q, want %q", got, "net 2")
	}

	w.names[NameLegacy] = "legacy"
	h.property(1, PropLegacyName)
	if got := h.task(1).Name(); got != "net 2" {
		t.Errorf("legacy replaced name: %q", got)
	}
	if got := h.button(1).state.Label; got != "net 2" {
		t.Errorf("label = %q, want %q", got, "net 2")
	}
}

func TestUntitledWindow(t *testing.T) {
	d := newFakeDisplay()
	w := d.add(1, "", "", 0)
	delete(w.names, NameNet)
	h := newHarness(t, d, kv("GroupBy", "none"))

	if got := h.button(1).state.Label; got != "(untitled)" {
		t.Errorf("label = %q", got)
	}
}

func TestIconifiedLabel(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	h := newHarness(t, d)

	d.windows[1].iconified = true
	h.property(1, PropWMState)
	if got := h.button(1).state.Label; got != "[one]" {
		t.Errorf("label = %q, want %q", got, "[one]")
	}
	if !h.button(1).state.Iconified {
		t.Error("state should be iconified")
	}
}

func TestIconSources(t *testing.T) {
	hints, net := newFakeImage("hints"), newFakeImage("net")

	d := newFakeDisplay()
	d.add(1, "A", "one", 0).icons[IconWMHints] = hints
	d.add(2, "B", "two", 0)
	h := newHarness(t, d)

	if h.task(1).iconSource != IconWMHints || h.button(1).state.Icon != hints {
		t.Errorf("icon source = %v, want %v", h.task(1).iconSource, IconWMHints)
	}
	if got := h.button(1).state.IconSize; got != 22 {
		t.Errorf("icon size = %d, want 22", got)
	}
	if h.button(2).state.Icon != nil || h.task(2).iconSource != IconNone {
		t.Error("window without icon should use the fallback")
	}

	d.windows[1].icons[IconNetWM] = net
	h.property(1, PropIcon)
	if h.button(1).state.Icon != net {
		t.Error("net icon should win")
	}

	calls := d.iconCalls
	h.property(1, PropHints)
	if d.iconCalls != calls {
		t.Error("hints should not reload a net icon")
	}
}

func TestIconReloadOnlyOnResize(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0).icons[IconNetWM] = newFakeImage("net")
	h := newHarness(t, d)

	calls := d.iconCalls
	h.taskbar.Allocate(geom.Rect{W: 1000, H: 26})
	h.sched.Flush()
	if d.iconCalls != calls {
		t.Error("same size should not reload")
	}

	h.taskbar.Allocate(geom.Rect{W: 1000, H: 20})
	h.sched.Flush()
	if d.iconCalls != calls+1 {
		t.Errorf("icon calls = %d, want %d", d.iconCalls, calls+1)
	}
	if got := h.button(1).state.IconSize; got != 16 {
		t.Errorf("icon size = %d, want 16", got)
	}
}

func TestDesktopVisibility(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", 1)
	d.add(3, "C", "three", AllDesktops)
	h := newHarness(t, d)

	assertWindows(t, "visible", h.visible(), 1, 3)

	h2 := newHarness(t, d, kv("ShowAllDesks", "1"))
	assertWindows(t, "visible with all desks", h2.visible(), 1, 2, 3)
}

func TestShowMappedIconified(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", 0).iconified = true

	h := newHarness(t, d, kv("ShowIconified", "0"))
	assertWindows(t, "visible", h.visible(), 1)

	h2 := newHarness(t, d, kv("ShowMapped", "false"))
	assertWindows(t, "visible", h2.visible(), 2)
}

func TestActiveWindowMode(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", 0)
	h := newHarness(t, d, kv("Mode", "active_window"))

	assertWindows(t, "visible", h.visible())
	h.focus(2)
	assertWindows(t, "visible", h.visible(), 2)
	h.focus(1)
	assertWindows(t, "visible", h.visible(), 1)
}

func TestExpandFocusedGroup(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Firefox", "Page A", 0)
	d.add(2, "Firefox", "Page B", 0)
	d.add(3, "XTerm", "shell", 0)
	h := newHarness(t, d, kv("ExpandFocusedGroup", "1"))

	assertWindows(t, "visible", h.visible(), 1, 3)
	h.focus(2)
	assertWindows(t, "visible", h.visible(), 1, 2, 3)
	h.focus(3)
	assertWindows(t, "visible", h.visible(), 2, 3)
}

func TestSortByWorkspace(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 1)
	d.add(2, "B", "two", 0)
	d.add(3, "C", "three", 1)
	d.add(4, "D", "four", 0)
	h := newHarness(t, d, kv("GroupBy", "none"), kv("SortBy", "workspace"), kv("ShowAllDesks", "1"))

	assertWindows(t, "order", h.order(), 4, 2, 3, 1)

	d.windows[1].desktop = 0
	h.property(1, PropWindowDesktop)
	assertWindows(t, "order", h.order(), 4, 2, 1, 3)

	var widgets []Window
	for _, w := range h.taskbar.Grid().Widgets() {
		widgets = append(widgets, w.(*taskWidget).task.window)
	}
	assertWindows(t, "grid order", widgets, 4, 2, 1, 3)
}

func TestSortByState(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", 0).iconified = true
	d.add(3, "C", "three", 0)
	h := newHarness(t, d, kv("GroupBy", "none"), kv("SortBy", "state"))

	assertWindows(t, "order", h.order(), 3, 1, 2)

	d.windows[2].urgent = true
	h.property(2, PropHints)
	assertWindows(t, "order", h.order(), 2, 3, 1)
}

func TestGroupByWorkspace(t *testing.T) {
	d := newFakeDisplay()
	d.names = []string{"Web"}
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", 0)
	d.add(3, "C", "three", 1)
	d.add(4, "D", "four", AllDesktops)
	h := newHarness(t, d, kv("GroupBy", "workspace"), kv("ShowAllDesks", "1"))

	for _, key := range []string{"Web", "Workspace 2", allDesktopsLabel} {
		if h.taskbar.Class(key) == nil {
			t.Errorf("class %q missing", key)
		}
	}

	d.names = []string{"Mail"}
	h.root(PropDesktopNames)
	if h.taskbar.Class("Web") != nil || h.taskbar.Class("Mail") == nil {
		t.Error("classes should follow desktop names")
	}
	h.checkInvariants()
}

func TestGroupByState(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", 0).iconified = true
	h := newHarness(t, d, kv("GroupBy", "state"))

	if h.task(1).classKey != stateMapped || h.task(2).classKey != stateIconified {
		t.Fatalf("keys = %q %q", h.task(1).classKey, h.task(2).classKey)
	}

	d.windows[1].urgent = true
	h.property(1, PropHints)
	if h.task(1).classKey != stateUrgency {
		t.Errorf("key = %q, want %q", h.task(1).classKey, stateUrgency)
	}
	if h.taskbar.Class(stateMapped) != nil {
		t.Error("empty class should be deleted")
	}
	h.checkInvariants()
}

func TestApplyConfigurationRegroups(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Firefox", "Page A", 0)
	d.add(2, "Firefox", "Page B", 0)
	h := newHarness(t, d)

	cfg := h.taskbar.Config()
	cfg.GroupBy = GroupNone
	h.taskbar.SetConfig(cfg)
	h.sched.Flush()

	if len(h.taskbar.Classes()) != 0 {
		t.Error("classes should be gone")
	}
	assertWindows(t, "visible", h.visible(), 1, 2)

	cfg.GroupBy = GroupClass
	h.taskbar.SetConfig(cfg)
	h.sched.Flush()
	assertWindows(t, "visible", h.visible(), 1)
	h.checkInvariants()
}

func TestDestroy(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0).urgent = true
	d.add(2, "B", "two", 1)
	h := newHarness(t, d)

	d.current = 1
	h.root(PropCurrentDesktop)
	h.taskbar.Destroy()

	for _, b := range h.factory.buttons {
		if !b.destroyed {
			t.Error("button not destroyed")
		}
	}
	if h.sched.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", h.sched.Pending())
	}
	if len(h.registry.Taskbars()) != 0 {
		t.Error("taskbar still registered")
	}

	h.root(PropClientList)
	if len(h.taskbar.Tasks()) != 0 {
		t.Error("destroyed taskbar handled an event")
	}
}

func TestSnapshot(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Firefox", "Page A", 0)
	d.add(2, "Firefox", "Page B", 0)
	d.active = 2
	h := newHarness(t, d)

	s := h.taskbar.Snapshot()
	if s.ID != "test" || s.Focused != 2 || len(s.Tasks) != 2 || len(s.Classes) != 1 {
		t.Fatalf("snapshot = %+v", s)
	}
	c := s.Classes[0]
	if !c.Collapsed || c.Visible != 2 || c.VisibleCount != 2 {
		t.Errorf("class = %+v", c)
	}
	if s.Grid.Rows != 1 || s.Grid.Columns != 1 {
		t.Errorf("grid = %+v", s.Grid)
	}
}

func TestExpandFillsTaskbar(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	h := newHarness(t, d)

	if w := h.button(1).rect.W; w >= 1000 {
		t.Fatalf("button width = %d, want max task width", w)
	}

	h.taskbar.SetExpand(true)
	h.sched.Flush()
	if w := h.button(1).rect.W; w != 1000 {
		t.Errorf("button width = %d, want 1000", w)
	}
}
