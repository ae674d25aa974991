package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// The line format is the block based Key=Value layout panels have always
// used:
//
//	Global {
//	  edge=bottom
//	}
//	Plugin {
//	  type=taskbar
//	  Config {
//	    GroupBy=class
//	  }
//	}

const indent = "  "

type lineParser struct {
	scanner *bufio.Scanner
	line    int
}

func (p *lineParser) next() (string, bool) {
	for p.scanner.Scan() {
		p.line++
		text := strings.TrimSpace(p.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return text, true
	}
	return "", false
}

func (p *lineParser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.line, fmt.Sprintf(format, args...))
}

func blockName(text string) (string, bool) {
	name, ok := strings.CutSuffix(text, "{")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(name), true
}

func splitEntry(text string) (Entry, bool) {
	key, value, ok := strings.Cut(text, "=")
	if !ok {
		return Entry{}, false
	}
	return Entry{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)}, true
}

// section reads entries until the closing brace. Nested blocks are handed to
// nested, which may be nil to reject them.
func (p *lineParser) section(nested func(name string) error) (Section, error) {
	var s Section
	for {
		text, ok := p.next()
		if !ok {
			return s, p.errorf("unexpected end of file, missing }")
		}
		if text == "}" {
			return s, nil
		}
		if name, ok := blockName(text); ok {
			if nested == nil {
				return s, p.errorf("unexpected block %q", name)
			}
			if err := nested(name); err != nil {
				return s, err
			}
			continue
		}
		e, ok := splitEntry(text)
		if !ok {
			return s, p.errorf("expected Key=Value, got %q", text)
		}
		s.entries = append(s.entries, e)
	}
}

func ReadLines(r io.Reader) (Config, error) {
	p := lineParser{scanner: bufio.NewScanner(r)}
	var cfg Config

	for {
		text, ok := p.next()
		if !ok {
			break
		}

		name, ok := blockName(text)
		if !ok {
			return Config{}, p.errorf("expected block, got %q", text)
		}

		switch strings.ToLower(name) {
		case "global":
			s, err := p.section(nil)
			if err != nil {
				return Config{}, err
			}
			cfg.Global = s
		case "plugin":
			var plugin Plugin
			options, err := p.section(func(name string) error {
				if !strings.EqualFold(name, "config") {
					return p.errorf("unexpected block %q in plugin", name)
				}
				s, err := p.section(nil)
				plugin.Config = s
				return err
			})
			if err != nil {
				return Config{}, err
			}
			for _, e := range options.entries {
				switch e.Key {
				case "type":
					plugin.Type = e.Value
				case "id":
					plugin.ID = e.Value
				default:
					plugin.Options.entries = append(plugin.Options.entries, e)
				}
			}
			cfg.Plugins = append(cfg.Plugins, plugin)
		default:
			return Config{}, p.errorf("unknown block %q", name)
		}
	}

	return cfg, p.scanner.Err()
}

func writeSection(w *bufio.Writer, depth int, s Section) {
	prefix := strings.Repeat(indent, depth)
	for _, e := range s.entries {
		fmt.Fprintf(w, "%s%s=%s\n", prefix, e.Key, e.Value)
	}
}

func WriteLines(out io.Writer, cfg Config) error {
	w := bufio.NewWriter(out)

	fmt.Fprintln(w, "# waterline panel configuration")
	fmt.Fprintln(w, "Global {")
	writeSection(w, 1, cfg.Global)
	fmt.Fprintln(w, "}")

	for _, plugin := range cfg.Plugins {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Plugin {")
		fmt.Fprintf(w, "%stype=%s\n", indent, plugin.Type)
		if plugin.ID != "" {
			fmt.Fprintf(w, "%sid=%s\n", indent, plugin.ID)
		}
		writeSection(w, 1, plugin.Options)
		if plugin.Config.Len() > 0 {
			fmt.Fprintf(w, "%sConfig {\n", indent)
			writeSection(w, 2, plugin.Config)
			fmt.Fprintf(w, "%s}\n", indent)
		}
		fmt.Fprintln(w, "}")
	}

	return w.Flush()
}
