package config

var defaultConfig = Config{
	Global: NewSection(
		Entry{Key: "edge", Value: "bottom"},
		Entry{Key: "height", Value: "26"},
		Entry{Key: "iconsize", Value: "24"},
	),
	Plugins: []Plugin{
		{Type: "taskbar"},
	},
}

// Default returns a fresh copy of the configuration written for new files.
func Default() Config {
	cfg := Config{Global: defaultConfig.Global.Clone()}
	for _, p := range defaultConfig.Plugins {
		cfg.Plugins = append(cfg.Plugins, p.Clone())
	}
	return cfg
}

type Config struct {
	Global  Section  `json:"global" yaml:"global"`
	Plugins []Plugin `json:"plugins" yaml:"plugins"`
}

type Plugin struct {
	Type string `json:"type" yaml:"type"`
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	// Options are plugin level entries besides type and id.
	Options Section `json:"options,omitempty" yaml:"options,omitempty"`
	// Config is the plugin's own block.
	Config Section `json:"config,omitempty" yaml:"config,omitempty"`
}

func (p Plugin) Clone() Plugin {
	p.Options = p.Options.Clone()
	p.Config = p.Config.Clone()
	return p
}
