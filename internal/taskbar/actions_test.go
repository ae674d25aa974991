package taskbar

import "testing"

func TestButtonActions(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", 0)
	h := newHarness(t, d, kv("GroupBy", "none"))

	h.press(1, 1, false)
	if got := d.lastCall(); got != "activate 1" {
		t.Errorf("call = %q, want activate", got)
	}

	h.focus(1)
	h.press(1, 1, false)
	if got := d.lastCall(); got != "iconify 1" {
		t.Errorf("call = %q, want iconify", got)
	}

	h.press(1, 2, false)
	if got := d.lastCall(); got != "close 1" {
		t.Errorf("call = %q, want close", got)
	}

	h.press(2, 2, true)
	if got := d.lastCall(); got != "maximize 2 true" {
		t.Errorf("call = %q, want maximize", got)
	}

	h.press(2, 3, false)
	if menus := h.button(2).menus; len(menus) != 1 || menus[0].Window != 2 {
		t.Errorf("menus = %+v", menus)
	}

	calls := len(d.calls)
	h.press(2, 3, true)
	h.press(2, 9, false)
	if len(d.calls) != calls {
		t.Error("unbound buttons should do nothing")
	}
}

func TestScrollCyclesWindows(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", 0)
	d.add(3, "C", "three", 0)
	d.active = 1
	h := newHarness(t, d, kv("GroupBy", "none"))

	h.input(1, Input{Kind: InputScrollDown})
	if got := d.lastCall(); got != "activate 2" {
		t.Errorf("call = %q, want activate 2", got)
	}

	h.input(1, Input{Kind: InputScrollUp})
	if got := d.lastCall(); got != "activate 3" {
		t.Errorf("call = %q, want activate 3", got)
	}

	h2 := newHarness(t, d, kv("GroupBy", "none"), kv("UseMouseWheel", "0"))
	calls := len(d.calls)
	h2.input(1, Input{Kind: InputScrollDown})
	if len(d.calls) != calls {
		t.Error("wheel should be ignored")
	}
}

func TestRaiseIconifyCyclesCollapsedClass(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Firefox", "Page A", 0)
	d.add(2, "Firefox", "Page B", 0)
	h := newHarness(t, d)

	h.press(1, 1, false)
	if got := d.lastCall(); got != "activate 1" {
		t.Errorf("call = %q, want activate 1", got)
	}

	h.focus(1)
	h.press(1, 1, false)
	if got := d.lastCall(); got != "activate 2" {
		t.Errorf("call = %q, want activate 2", got)
	}
}

func TestToggleGroup(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "Firefox", "Page A", 0)
	d.add(2, "Firefox", "Page B", 0)
	h := newHarness(t, d, kv("Button2Action", "toggle_group"))

	h.press(1, 2, false)
	assertWindows(t, "visible", h.visible(), 1, 2)

	h.press(2, 2, false)
	assertWindows(t, "visible", h.visible(), 1)
}

func TestEnterLeave(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	h := newHarness(t, d)

	h.input(1, Input{Kind: InputEnter})
	if !h.button(1).state.Entered {
		t.Error("button should be entered")
	}
	renders := h.button(1).renders
	h.input(1, Input{Kind: InputEnter})
	if h.button(1).renders != renders {
		t.Error("repeated enter redrew")
	}
	h.input(1, Input{Kind: InputLeave})
	if h.button(1).state.Entered {
		t.Error("button should be left")
	}
}

func TestRunActionUnknownWindow(t *testing.T) {
	d := newFakeDisplay()
	h := newHarness(t, d)

	h.taskbar.RunAction(42, ActionClose)
	if len(d.calls) != 0 {
		t.Errorf("calls = %v", d.calls)
	}
}

func TestMenuItemInput(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	h := newHarness(t, d)

	h.input(1, Input{Kind: InputMenuItem, Item: MenuClose})
	if got := d.lastCall(); got != "close 1" {
		t.Errorf("call = %q, want close 1", got)
	}

	calls := len(d.calls)
	h.input(1, Input{Kind: InputMenuItem, Item: "bogus"})
	if len(d.calls) != calls {
		t.Error("unknown item should do nothing")
	}
}

func TestRaiseSwitchesDesktop(t *testing.T) {
	d := newFakeDisplay()
	d.add(1, "A", "one", 0)
	d.add(2, "B", "two", 1)
	d.add(3, "C", "three", AllDesktops)
	h := newHarness(t, d, kv("GroupBy", "none"), kv("ShowAllDesks", "1"))

	h.press(2, 1, false)
	n := len(d.calls)
	if n < 2 || d.calls[n-2] != "current 1" || d.calls[n-1] != "activate 2" {
		t.Errorf("calls = %v, want current 1 then activate 2", d.calls)
	}

	calls := len(d.calls)
	h.press(1, 1, false)
	h.press(3, 1, false)
	if got := d.calls[calls:]; len(got) != 2 || got[0] != "activate 1" || got[1] != "activate 3" {
		t.Errorf("calls = %v, want activations only", got)
	}
}
