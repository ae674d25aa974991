package panel

import (
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/waterline/internal/config"
	"github.com/ItsNotGoodName/waterline/internal/geom"
)

// Factory creates an unconstructed plugin instance for id.
type Factory func(id string, panel Panel) Plugin

type instance struct {
	entry  config.Plugin
	plugin Plugin
}

// Host owns the plugins of one panel. It is not safe for concurrent use.
type Host struct {
	settings  Settings
	factories map[string]Factory
	instances []instance
	global    config.Section
	onChange  func(Settings)
}

func NewHost() *Host {
	return &Host{
		settings:  DefaultSettings(),
		factories: make(map[string]Factory),
		onChange:  func(Settings) {},
	}
}

func (h *Host) Register(typ string, factory Factory) {
	h.factories[typ] = factory
}

func (h *Host) Edge() geom.Edge {
	return h.settings.Edge
}

func (h *Host) Orientation() geom.Orientation {
	return h.settings.Edge.Orientation()
}

func (h *Host) Height() int {
	return h.settings.Height
}

func (h *Host) IconSize() int {
	return h.settings.IconSize
}

func (h *Host) Settings() Settings {
	return h.settings
}

// Load constructs every plugin in cfg. Plugins of an unknown type or that
// fail to construct are kept in the file but not started.
func (h *Host) Load(cfg config.Config) {
	h.global = cfg.Global.Clone()
	h.settings = LoadSettings(cfg.Global)

	for _, entry := range cfg.Plugins {
		inst := instance{entry: entry.Clone()}

		factory, ok := h.factories[entry.Type]
		if !ok {
			slog.Warn("Unknown plugin type", "package", "panel", "type", entry.Type, "id", entry.ID)
			h.instances = append(h.instances, inst)
			continue
		}

		plugin := factory(entry.ID, h)
		if err := plugin.Construct(entry.Config); err != nil {
			slog.Error("Failed to construct plugin", "package", "panel", "type", entry.Type, "id", entry.ID, "error", err)
			h.instances = append(h.instances, inst)
			continue
		}

		if e, ok := plugin.(Expander); ok {
			expand, _ := entry.Options.GetBool("expand")
			e.SetExpand(expand)
		}

		inst.plugin = plugin
		h.instances = append(h.instances, inst)
	}
}

// Plugins returns the running plugins in panel order.
func (h *Host) Plugins() []Plugin {
	var plugins []Plugin
	for _, inst := range h.instances {
		if inst.plugin != nil {
			plugins = append(plugins, inst.plugin)
		}
	}
	return plugins
}

// OnSettingsChanged sets the function that moves the panel window after
// SetSettings. It runs after the plugins were told.
func (h *Host) OnSettingsChanged(fn func(Settings)) {
	h.onChange = fn
}

// SetSettings changes the panel geometry and tells every plugin.
func (h *Host) SetSettings(settings Settings) {
	settings = settings.normalize()
	if settings == h.settings {
		return
	}
	h.settings = settings
	for _, p := range h.Plugins() {
		p.PanelConfigurationChanged()
	}
	h.onChange(settings)
}

// Allocate splits r along the panel between plugins that take up space.
func (h *Host) Allocate(r geom.Rect) {
	var allocators []Allocator
	for _, p := range h.Plugins() {
		if a, ok := p.(Allocator); ok {
			allocators = append(allocators, a)
		}
	}
	if len(allocators) == 0 {
		return
	}

	n := len(allocators)
	for i, a := range allocators {
		part := r
		if h.Orientation() == geom.Horizontal {
			part.W = r.W / n
			part.X = r.X + i*part.W
			if i == n-1 {
				part.W = r.W - i*(r.W/n)
			}
		} else {
			part.H = r.H / n
			part.Y = r.Y + i*part.H
			if i == n-1 {
				part.H = r.H - i*(r.H/n)
			}
		}
		a.Allocate(part)
	}
}

// Save asks every plugin for its configuration.
func (h *Host) Save() config.Config {
	cfg := config.Config{Global: h.global.Clone()}
	h.settings.Save(&cfg.Global)

	for _, inst := range h.instances {
		entry := inst.entry.Clone()
		if inst.plugin != nil {
			inst.plugin.SaveConfiguration(&entry.Config)
		}
		cfg.Plugins = append(cfg.Plugins, entry)
	}
	return cfg
}

// Destroy tears plugins down in reverse order.
func (h *Host) Destroy() {
	for i := len(h.instances) - 1; i >= 0; i-- {
		if p := h.instances[i].plugin; p != nil {
			p.Destroy()
		}
	}
	h.instances = nil
}

func (h *Host) String() string {
	return fmt.Sprintf("panel.Host(%s)", h.settings.Edge)
}
