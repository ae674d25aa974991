// Package taskbar tracks top level windows and shows them as grouped task
// buttons.
//
// Everything in this package runs on one loop. Window system notifications,
// timers, idle callbacks and button input all enter through the same
// scheduler, so nothing here is locked.
package taskbar

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/ItsNotGoodName/waterline/internal/icongrid"
	"github.com/ItsNotGoodName/waterline/internal/loop"
	"github.com/ItsNotGoodName/waterline/internal/panel"
)

var ErrNotFound = errors.New("not found")

const (
	// DesktopSwitchDelay holds back a desktop switch so the burst of
	// notifications around it is applied at once.
	DesktopSwitchDelay = 350 * time.Millisecond
	DefaultBlinkTime   = 500 * time.Millisecond

	allDesktopsLabel = "_All workspaces_"
	buttonPadding    = 2
)

type Options struct {
	ID        string
	Display   Display
	Scheduler loop.Scheduler
	Buttons   ButtonFactory
	Panel     panel.Panel
	Registry  *Registry
	// BlinkTime is the flash interval of urgent tasks.
	BlinkTime time.Duration
}

type Taskbar struct {
	id        string
	display   Display
	sched     loop.Scheduler
	buttons   ButtonFactory
	panel     panel.Panel
	registry  *Registry
	blinkTime time.Duration
	slog      *slog.Logger

	cfg    Config
	grid   *icongrid.Grid
	expand bool

	tasks   map[Window]*Task
	order   []*Task
	classes classRegistry
	watched map[Window]bool

	timestamp      uint64
	focusTimestamp uint64

	currentDesktop int
	desktopCount   int
	desktopNames   []string
	activeWindow   Window
	focused        *Task

	desktopPending    bool
	desktopHandle     loop.Handle
	deferredDesktop   int
	deferredActive    Window
	hasDeferredActive bool

	constructed bool
	batch       int
	dirty       bool
}

func New(opts Options) *Taskbar {
	if opts.BlinkTime <= 0 {
		opts.BlinkTime = DefaultBlinkTime
	}
	return &Taskbar{
		id:        opts.ID,
		display:   opts.Display,
		sched:     opts.Scheduler,
		buttons:   opts.Buttons,
		panel:     opts.Panel,
		registry:  opts.Registry,
		blinkTime: opts.BlinkTime,
		slog:      slog.With("package", "taskbar", "taskbar-id", opts.ID),
		cfg:       DefaultConfig(),
		tasks:     make(map[Window]*Task),
		classes:   newClassRegistry(),
		watched:   make(map[Window]bool),
	}
}

func (tb *Taskbar) ID() string {
	return tb.id
}

func (tb *Taskbar) Config() Config {
	return tb.cfg
}

// Grid is the layout the task buttons are placed in.
func (tb *Taskbar) Grid() *icongrid.Grid {
	return tb.grid
}

// Task returns the task of w, nil if w is not tracked.
func (tb *Taskbar) Task(w Window) *Task {
	return tb.tasks[w]
}

// Tasks returns the tasks in display order.
func (tb *Taskbar) Tasks() []*Task {
	return slices.Clone(tb.order)
}

// Classes returns the classes sorted by key.
func (tb *Taskbar) Classes() []*TaskClass {
	return slices.Clone(tb.classes.all())
}

func (tb *Taskbar) Class(key string) *TaskClass {
	return tb.classes.get(key)
}

func (tb *Taskbar) CurrentDesktop() int {
	return tb.currentDesktop
}

func (tb *Taskbar) Focused() *Task {
	return tb.focused
}

// begin and end bracket a model change. The grid is deferred while one is
// open and listeners are told once the outermost bracket closes.
func (tb *Taskbar) begin() {
	tb.batch++
	tb.grid.DeferUpdates()
}

func (tb *Taskbar) end() {
	tb.grid.ResumeUpdates()
	tb.batch--
	if tb.batch == 0 && tb.dirty {
		tb.dirty = false
		if tb.registry != nil {
			tb.registry.changed.Broadcast(Changed{TaskbarID: tb.id})
		}
	}
}

func (tb *Taskbar) markDirty() {
	tb.dirty = true
}

func (tb *Taskbar) nextTimestamp() uint64 {
	tb.timestamp++
	return tb.timestamp
}

// desktopVisible is the desktop part of the visibility policy.
func (tb *Taskbar) desktopVisible(t *Task) bool {
	return tb.desktopVisibleOn(t, tb.currentDesktop)
}

// desktopVisibleOn reports whether t would be shown while d is current.
func (tb *Taskbar) desktopVisibleOn(t *Task, d int) bool {
	return tb.cfg.ShowAllDesks || t.desktop == AllDesktops || t.desktop == d
}

func (tb *Taskbar) grouping() bool {
	return tb.cfg.GroupBy != GroupNone
}

func (tb *Taskbar) classOf(t *Task) *TaskClass {
	if !t.grouped {
		return nil
	}
	return tb.classes.get(t.classKey)
}

// collapsed reports whether c is drawn as one button.
func (tb *Taskbar) collapsed(c *TaskClass) bool {
	if c == nil || !tb.grouping() {
		return false
	}
	if c.manual {
		return c.manualCollapsed
	}
	if tb.cfg.ExpandFocusedGroup && tb.focused != nil && tb.focused.grouped && tb.focused.classKey == c.key {
		return false
	}
	return tb.cfg.GroupThreshold > 0 && c.visibleCount >= tb.cfg.GroupThreshold
}

// buttonVisible is the full visibility policy of a task button.
func (tb *Taskbar) buttonVisible(t *Task) bool {
	if c := tb.classOf(t); c != nil && tb.collapsed(c) && c.visible != t {
		return false
	}
	if tb.cfg.Mode == ModeActiveWindow && t != tb.focused {
		return false
	}
	if t.iconified && !tb.cfg.ShowIconified {
		return false
	}
	if !t.iconified && !tb.cfg.ShowMapped {
		return false
	}
	return tb.desktopVisible(t)
}

// accept is the window acceptance policy. Values that cannot be read count
// as not excluding the window.
func (tb *Taskbar) accept(w Window) bool {
	if state, err := tb.display.NetState(w); err == nil && state.SkipTaskbar {
		return false
	}
	if typ, err := tb.display.WindowType(w); err == nil && (typ.Desktop || typ.Dock || typ.Splash) {
		return false
	}
	return true
}

// updateClass recomputes the cached state of c from its members.
func (tb *Taskbar) updateClass(c *TaskClass) {
	c.visibleCount = 0
	c.visible = nil
	for _, t := range c.members {
		if !tb.desktopVisible(t) {
			continue
		}
		c.visibleCount++
		if c.visible == nil || t.focusTimestamp > c.visible.focusTimestamp {
			c.visible = t
		}
	}

	c.displayName = c.key
	name, same := "", true
	for _, t := range c.members {
		if !tb.desktopVisible(t) {
			continue
		}
		if name == "" {
			name = t.title()
		} else if name != t.title() {
			same = false
			break
		}
	}
	if c.visibleCount > 0 && same {
		c.displayName = name
	}

	tb.updateFlash(c)
}

// refreshTask applies visibility and redraws t if anything changed.
func (tb *Taskbar) refreshTask(t *Task) {
	visible := tb.buttonVisible(t)
	if visible != tb.grid.Visible(t.widget) {
		tb.grid.SetVisible(t.widget, visible)
		tb.markDirty()
	}
	tb.render(t)
}

func (tb *Taskbar) refreshClass(c *TaskClass) {
	if c == nil {
		return
	}
	tb.updateClass(c)
	for _, t := range c.members {
		tb.refreshTask(t)
	}
}

// refreshTaskAndClass refreshes t and everything sharing its class.
func (tb *Taskbar) refreshTaskAndClass(t *Task) {
	if c := tb.classOf(t); c != nil {
		tb.refreshClass(c)
		return
	}
	tb.updateSoloFlash(t)
	tb.refreshTask(t)
}

func (tb *Taskbar) refreshAll() {
	tb.begin()
	defer tb.end()

	for _, c := range tb.classes.all() {
		tb.updateClass(c)
	}
	for _, t := range tb.order {
		if !t.grouped {
			tb.updateSoloFlash(t)
		}
		tb.refreshTask(t)
	}
	tb.markDirty()
}

func (tb *Taskbar) buttonState(t *Task) ButtonState {
	s := ButtonState{
		Label:     t.label(),
		Icon:      t.icon,
		IconSize:  t.iconSize,
		Focused:   t.focused,
		Iconified: t.iconified,
		Flash:     t.flash.phase,
		Entered:   t.entered,
		ShowIcon:  tb.cfg.ShowIconsTitles != ShowTitles,
		ShowLabel: tb.cfg.ShowIconsTitles != ShowIcons,
		Flat:      tb.cfg.FlatButton,
	}

	if c := tb.classOf(t); c != nil && tb.collapsed(c) {
		s.Count = c.visibleCount
		s.Label = c.displayName
		if c.visibleCount > 1 {
			s.Label = c.displayName + " (" + strconv.Itoa(c.visibleCount) + ")"
		}
		s.Flash = c.flashingTask == t && c.flash.phase
		s.Focused = tb.focused != nil && tb.focused.grouped && tb.focused.classKey == c.key
	}

	if tb.cfg.Tooltips {
		s.Tooltip = t.title()
	}
	return s
}

// render pushes the button state of t when it differs from the last one.
func (tb *Taskbar) render(t *Task) {
	s := tb.buttonState(t)
	if t.drawn && s == t.rendered {
		return
	}
	t.rendered, t.drawn = s, true
	t.button.Render(s)
	tb.markDirty()
}
