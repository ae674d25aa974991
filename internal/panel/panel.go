// Package panel is the contract between the panel and its plugins.
package panel

import (
	"log/slog"

	"github.com/ItsNotGoodName/waterline/internal/config"
	"github.com/ItsNotGoodName/waterline/internal/geom"
)

// Panel is the geometry plugins lay themselves out against.
type Panel interface {
	Edge() geom.Edge
	Orientation() geom.Orientation
	// Height is the thickness of the panel perpendicular to its edge.
	Height() int
	IconSize() int
}

// Plugin is an applet hosted by the panel.
type Plugin interface {
	// Construct starts the plugin from its Config block.
	Construct(cfg config.Section) error
	Destroy()
	// ApplyConfiguration is called after the plugin's settings changed.
	ApplyConfiguration()
	// PanelConfigurationChanged is called after the panel geometry changed.
	PanelConfigurationChanged()
	SaveConfiguration(cfg *config.Section)
}

// Allocator is implemented by plugins that take up space on the panel.
type Allocator interface {
	Allocate(r geom.Rect)
}

// Expander is implemented by plugins that can grow into spare room. It is
// driven by the expand option of the plugin entry.
type Expander interface {
	SetExpand(expand bool)
}

type Settings struct {
	Edge     geom.Edge
	Height   int
	IconSize int
}

func DefaultSettings() Settings {
	return Settings{
		Edge:     geom.EdgeBottom,
		Height:   26,
		IconSize: 24,
	}
}

// LoadSettings reads the Global block. Invalid values keep their default.
func LoadSettings(section config.Section) Settings {
	s := DefaultSettings()
	slog := slog.With("package", "panel")

	if v, ok := section.Get("edge"); ok {
		if edge, ok := geom.ParseEdge(v); ok {
			s.Edge = edge
		} else {
			slog.Debug("Ignoring invalid edge", "value", v)
		}
	}
	if v, ok := section.GetInt("height"); ok && v > 0 {
		s.Height = v
	}
	if v, ok := section.GetInt("iconsize"); ok && v > 0 {
		s.IconSize = v
	}

	return s.normalize()
}

// normalize replaces non positive sizes with defaults and fits the icons
// into the panel.
func (s Settings) normalize() Settings {
	def := DefaultSettings()
	if s.Height <= 0 {
		s.Height = def.Height
	}
	if s.IconSize <= 0 {
		s.IconSize = def.IconSize
	}
	if s.IconSize > s.Height {
		s.IconSize = s.Height
	}
	return s
}

func (s Settings) Save(section *config.Section) {
	section.Set("edge", s.Edge.String())
	section.SetInt("height", s.Height)
	section.SetInt("iconsize", s.IconSize)
}
