package taskbar

import (
	"github.com/ItsNotGoodName/waterline/internal/config"
	"github.com/ItsNotGoodName/waterline/internal/geom"
	"github.com/ItsNotGoodName/waterline/internal/icongrid"
	"github.com/ItsNotGoodName/waterline/internal/panel"
)

// PluginType is the plugin type in the panel configuration.
const PluginType = "taskbar"

var (
	_ panel.Plugin    = (*Taskbar)(nil)
	_ panel.Allocator = (*Taskbar)(nil)
	_ panel.Expander  = (*Taskbar)(nil)
)

// Construct reads cfg, builds the grid and loads the current windows.
func (tb *Taskbar) Construct(cfg config.Section) error {
	tb.cfg = LoadConfig(cfg)
	tb.grid = icongrid.New(tb.sched, tb.gridGeometry())
	tb.grid.SetExpand(tb.expand)

	if tb.registry != nil {
		tb.registry.add(tb)
	}
	tb.constructed = true

	tb.begin()
	defer tb.end()

	if n, err := tb.display.DesktopCount(); err == nil {
		tb.desktopCount = n
	}
	if names, err := tb.display.DesktopNames(); err == nil {
		tb.desktopNames = names
	}
	if d, err := tb.display.CurrentDesktop(); err == nil {
		tb.currentDesktop = d
	}
	if w, err := tb.display.ActiveWindow(); err == nil {
		tb.activeWindow = w
	}
	tb.reconcile()
	tb.markDirty()

	tb.slog.Debug("Constructed", "tasks", len(tb.order), "group_by", tb.cfg.GroupBy, "sort_by", tb.cfg.SortBy)
	return nil
}

// Destroy deletes every task and cancels pending work.
func (tb *Taskbar) Destroy() {
	if !tb.constructed {
		return
	}
	tb.constructed = false

	if tb.desktopHandle != nil {
		tb.desktopHandle.Cancel()
		tb.desktopHandle = nil
	}
	tb.desktopPending = false

	tb.grid.Destroy()
	for _, t := range tb.order {
		t.flash.stop()
		if t.iconHandle != nil {
			t.iconHandle.Cancel()
			t.iconHandle = nil
		}
		t.button.Destroy()
	}
	for _, c := range tb.classes.all() {
		c.flash.stop()
	}
	tb.order = nil
	tb.tasks = make(map[Window]*Task)
	tb.classes = newClassRegistry()
	tb.focused = nil

	if tb.registry != nil {
		tb.registry.remove(tb)
	}
	tb.slog.Debug("Destroyed")
}

// SetConfig replaces the configuration and applies it.
func (tb *Taskbar) SetConfig(cfg Config) {
	tb.cfg = cfg
	tb.ApplyConfiguration()
}

// ApplyConfiguration regroups, resorts and redraws everything.
func (tb *Taskbar) ApplyConfiguration() {
	if !tb.constructed {
		return
	}

	tb.begin()
	defer tb.end()

	tb.grid.SetGeometry(tb.gridGeometry())
	for _, t := range tb.order {
		t.urgency = false
		if !tb.cfg.UseUrgencyHint {
			continue
		}
		if hints, err := tb.display.Hints(t.window); err == nil {
			t.urgency = hints.Urgent
		}
	}
	for _, c := range tb.classes.all() {
		if !tb.cfg.ManualGrouping {
			c.manual = false
		}
	}
	if !tb.cfg.ManualGrouping {
		for _, t := range tb.order {
			t.overrideClass = ""
		}
	}
	tb.regroup()
	tb.resort()
	tb.refreshAll()
}

func (tb *Taskbar) PanelConfigurationChanged() {
	if !tb.constructed {
		return
	}

	tb.begin()
	defer tb.end()
	tb.grid.SetGeometry(tb.gridGeometry())
	tb.markDirty()
}

func (tb *Taskbar) SaveConfiguration(cfg *config.Section) {
	tb.cfg.Save(cfg)
}

// SetExpand makes buttons grow to fill the taskbar instead of being centered
// at their maximum width.
func (tb *Taskbar) SetExpand(expand bool) {
	tb.expand = expand
	if tb.grid != nil {
		tb.grid.SetExpand(expand)
	}
}

// Allocate gives the grid its area on the panel.
func (tb *Taskbar) Allocate(r geom.Rect) {
	if tb.grid == nil {
		return
	}
	tb.grid.Allocate(r)
}

func (tb *Taskbar) gridGeometry() icongrid.Geometry {
	orientation, iconSize, height := geom.Horizontal, 24, 26
	if tb.panel != nil {
		orientation, iconSize, height = tb.panel.Orientation(), tb.panel.IconSize(), tb.panel.Height()
	}

	button := iconSize + buttonPadding
	geo := icongrid.Geometry{
		Orientation:     orientation,
		ChildWidth:      tb.cfg.MaxTaskWidth,
		ChildHeight:     button,
		Spacing:         tb.cfg.Spacing,
		TargetDimension: height,
	}
	switch {
	case tb.cfg.ShowIconsTitles == ShowIcons:
		geo.ChildWidth = button
	case orientation == geom.Vertical:
		geo.ChildWidth = height
	}
	return geo
}
