package taskbar

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/ItsNotGoodName/waterline/internal/config"
	"github.com/ItsNotGoodName/waterline/internal/geom"
	"github.com/ItsNotGoodName/waterline/internal/loop"
	"github.com/ItsNotGoodName/waterline/internal/panel"
)

var errNoValue = errors.New("no value")

type fakeWindow struct {
	desktop   int
	state     NetState
	typ       WindowType
	iconified bool
	urgent    bool
	names     map[NameSource]string
	instance  string
	class     string
	icons     map[IconSource]image.Image
}

type fakeDisplay struct {
	windows   map[Window]*fakeWindow
	clients   []Window
	active    Window
	current   int
	count     int
	names     []string
	calls     []string
	watched   map[Window]int
	iconCalls int
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		windows: make(map[Window]*fakeWindow),
		count:   2,
		watched: make(map[Window]int),
	}
}

// add creates a window and appends it to the client list.
func (d *fakeDisplay) add(w Window, class, name string, desktop int) *fakeWindow {
	fw := &fakeWindow{
		desktop:  desktop,
		names:    map[NameSource]string{NameNet: name},
		instance: class,
		class:    class,
		icons:    make(map[IconSource]image.Image),
	}
	d.windows[w] = fw
	d.clients = append(d.clients, w)
	return fw
}

func (d *fakeDisplay) remove(w Window) {
	delete(d.windows, w)
	for i, c := range d.clients {
		if c == w {
			d.clients = append(d.clients[:i], d.clients[i+1:]...)
			break
		}
	}
}

func (d *fakeDisplay) window(w Window) (*fakeWindow, error) {
	fw, ok := d.windows[w]
	if !ok {
		return nil, errNoValue
	}
	return fw, nil
}

func (d *fakeDisplay) ClientList() ([]Window, error) {
	return append([]Window(nil), d.clients...), nil
}

func (d *fakeDisplay) ActiveWindow() (Window, error) {
	return d.active, nil
}

func (d *fakeDisplay) CurrentDesktop() (int, error) {
	return d.current, nil
}

func (d *fakeDisplay) DesktopCount() (int, error) {
	return d.count, nil
}

func (d *fakeDisplay) DesktopNames() ([]string, error) {
	return d.names, nil
}

func (d *fakeDisplay) WindowDesktop(w Window) (int, error) {
	fw, err := d.window(w)
	if err != nil {
		return 0, err
	}
	return fw.desktop, nil
}

func (d *fakeDisplay) NetState(w Window) (NetState, error) {
	fw, err := d.window(w)
	if err != nil {
		return NetState{}, err
	}
	return fw.state, nil
}

func (d *fakeDisplay) WindowType(w Window) (WindowType, error) {
	fw, err := d.window(w)
	if err != nil {
		return WindowType{}, err
	}
	return fw.typ, nil
}

func (d *fakeDisplay) Iconified(w Window) (bool, error) {
	fw, err := d.window(w)
	if err != nil {
		return false, err
	}
	return fw.iconified, nil
}

func (d *fakeDisplay) Hints(w Window) (Hints, error) {
	fw, err := d.window(w)
	if err != nil {
		return Hints{}, err
	}
	return Hints{Urgent: fw.urgent}, nil
}

func (d *fakeDisplay) Name(w Window, source NameSource) (string, error) {
	fw, err := d.window(w)
	if err != nil {
		return "", err
	}
	name, ok := fw.names[source]
	if !ok {
		return "", errNoValue
	}
	return name, nil
}

func (d *fakeDisplay) Class(w Window) (string, string, error) {
	fw, err := d.window(w)
	if err != nil {
		return "", "", err
	}
	return fw.instance, fw.class, nil
}

func (d *fakeDisplay) Icon(w Window, source IconSource, size int) (image.Image, error) {
	d.iconCalls++
	fw, err := d.window(w)
	if err != nil {
		return nil, err
	}
	img, ok := fw.icons[source]
	if !ok {
		return nil, errNoValue
	}
	return img, nil
}

func (d *fakeDisplay) Watch(w Window) error {
	d.watched[w]++
	return nil
}

func (d *fakeDisplay) record(format string, args ...any) error {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
	return nil
}

func (d *fakeDisplay) Activate(w Window) error {
	return d.record("activate %d", w)
}

func (d *fakeDisplay) Iconify(w Window) error {
	return d.record("iconify %d", w)
}

func (d *fakeDisplay) SetMaximized(w Window, maximized bool) error {
	return d.record("maximize %d %v", w, maximized)
}

func (d *fakeDisplay) MoveToDesktop(w Window, desktop int) error {
	return d.record("desktop %d %d", w, desktop)
}

func (d *fakeDisplay) Close(w Window) error {
	return d.record("close %d", w)
}

func (d *fakeDisplay) SetCurrentDesktop(desktop int) error {
	return d.record("current %d", desktop)
}

func (d *fakeDisplay) lastCall() string {
	if len(d.calls) == 0 {
		return ""
	}
	return d.calls[len(d.calls)-1]
}

type fakeButton struct {
	shown     bool
	rect      geom.Rect
	state     ButtonState
	renders   int
	events    int
	menus     []Menu
	destroyed bool
	onInput   func(Input)
}

func (b *fakeButton) Show() {
	b.shown = true
	b.events++
}

func (b *fakeButton) Hide() {
	b.shown = false
	b.events++
}

func (b *fakeButton) Allocate(r geom.Rect) {
	b.rect = r
	b.events++
}

func (b *fakeButton) Render(state ButtonState) {
	b.state = state
	b.renders++
}

func (b *fakeButton) ShowMenu(menu Menu) {
	b.menus = append(b.menus, menu)
}

func (b *fakeButton) Destroy() {
	b.destroyed = true
}

type fakeFactory struct {
	buttons []*fakeButton
}

func (f *fakeFactory) NewButton(onInput func(Input)) Button {
	b := &fakeButton{onInput: onInput}
	f.buttons = append(f.buttons, b)
	return b
}

// fakeImage is a distinct comparable image.
type fakeImage struct {
	image.Image
	name string
}

func newFakeImage(name string) *fakeImage {
	return &fakeImage{Image: image.NewRGBA(image.Rect(0, 0, 1, 1)), name: name}
}

type harness struct {
	t        *testing.T
	display  *fakeDisplay
	sched    *loop.Manual
	factory  *fakeFactory
	registry *Registry
	taskbar  *Taskbar
}

func newHarness(t *testing.T, d *fakeDisplay, entries ...config.Entry) *harness {
	t.Helper()

	h := &harness{
		t:        t,
		display:  d,
		sched:    loop.NewManual(),
		factory:  &fakeFactory{},
		registry: NewRegistry(),
	}
	h.taskbar = New(Options{
		ID:        "test",
		Display:   d,
		Scheduler: h.sched,
		Buttons:   h.factory,
		Panel:     panel.NewHost(),
		Registry:  h.registry,
	})
	if err := h.taskbar.Construct(config.NewSection(entries...)); err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	h.taskbar.Allocate(geom.Rect{W: 1000, H: 26})
	h.sched.Flush()
	return h
}

func (h *harness) task(w Window) *Task {
	h.t.Helper()
	task := h.taskbar.Task(w)
	if task == nil {
		h.t.Fatalf("window %d is not tracked", w)
	}
	return task
}

func (h *harness) button(w Window) *fakeButton {
	return h.task(w).button.(*fakeButton)
}

// visible lists windows with a visible button in display order.
func (h *harness) visible() []Window {
	var windows []Window
	for _, task := range h.taskbar.Tasks() {
		if h.taskbar.grid.Visible(task.widget) {
			windows = append(windows, task.window)
		}
	}
	return windows
}

func (h *harness) order() []Window {
	var windows []Window
	for _, task := range h.taskbar.Tasks() {
		windows = append(windows, task.window)
	}
	return windows
}

func (h *harness) root(p Property) {
	h.taskbar.HandleRootProperty(p)
	h.sched.Flush()
}

func (h *harness) property(w Window, p Property) {
	h.taskbar.HandleWindowProperty(w, p, false)
	h.sched.Flush()
}

func (h *harness) deleted(w Window, p Property) {
	h.taskbar.HandleWindowProperty(w, p, true)
	h.sched.Flush()
}

func (h *harness) focus(w Window) {
	h.display.active = w
	h.root(PropActiveWindow)
}

// checkInvariants verifies the model against itself.
func (h *harness) checkInvariants() {
	h.t.Helper()
	tb := h.taskbar

	seen := make(map[Window]bool)
	for _, task := range tb.order {
		if seen[task.window] {
			h.t.Errorf("window %d tracked twice", task.window)
		}
		seen[task.window] = true
		if tb.tasks[task.window] != task {
			h.t.Errorf("window %d missing from lookup", task.window)
		}

		if !task.grouped {
			continue
		}
		c := tb.classes.get(task.classKey)
		if c == nil {
			h.t.Errorf("window %d points at missing class %q", task.window, task.classKey)
			continue
		}
		n := 0
		for _, m := range c.members {
			if m == task {
				n++
			}
		}
		if n != 1 {
			h.t.Errorf("window %d is %d times in class %q", task.window, n, c.key)
		}
	}
	if len(seen) != len(tb.tasks) {
		h.t.Errorf("order has %d tasks, lookup has %d", len(seen), len(tb.tasks))
	}

	for _, c := range tb.classes.all() {
		if len(c.members) == 0 {
			h.t.Errorf("class %q is empty", c.key)
		}
		count := 0
		for _, m := range c.members {
			if tb.desktopVisible(m) {
				count++
			}
		}
		if count != c.visibleCount {
			h.t.Errorf("class %q visible count %d, want %d", c.key, c.visibleCount, count)
		}
		if c.visible != nil && (c.indexOf(c.visible) == -1 || !tb.desktopVisible(c.visible)) {
			h.t.Errorf("class %q representative %d is stale", c.key, c.visible.window)
		}
	}
}

func (h *harness) input(w Window, in Input) {
	h.button(w).onInput(in)
	h.sched.Flush()
}

func (h *harness) press(w Window, button int, shift bool) {
	h.input(w, Input{Kind: InputPress, Button: button, Shift: shift})
}
