package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ItsNotGoodName/waterline/internal/core"
	"gopkg.in/yaml.v3"
)

var ErrUnknownDriver = errors.New("unknown config driver")

// NewDriver picks a driver from the file extension.
func NewDriver(filePath string) (Driver, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case "", ".conf", ".cfg":
		return NewLine(filePath), nil
	case ".yaml", ".yml":
		return NewYAML(filePath), nil
	case ".json":
		return NewJSON(filePath), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, filePath)
	}
}

type file struct {
	filePath string
}

func (f file) Exists() (bool, error) {
	return core.FileExists(f.filePath)
}

func (f file) read(decode func(r io.Reader) (Config, error)) (Config, error) {
	r, err := os.Open(f.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	defer r.Close()

	cfg, err := decode(r)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", f.filePath, err)
	}
	return cfg, nil
}

func (f file) write(encode func(w io.Writer) error) error {
	filePathTmp := f.filePath + ".tmp"
	w, err := os.OpenFile(filePathTmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if err := encode(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return os.Rename(filePathTmp, f.filePath)
}

func NewLine(filePath string) Line {
	return Line{file{filePath: filePath}}
}

// Line stores the panel in the block based Key=Value format.
type Line struct {
	file
}

func (l Line) Read() (Config, error) {
	return l.read(ReadLines)
}

func (l Line) Write(cfg Config) error {
	return l.write(func(w io.Writer) error { return WriteLines(w, cfg) })
}

func NewYAML(filePath string) YAML {
	return YAML{file{filePath: filePath}}
}

type YAML struct {
	file
}

func (y YAML) Read() (Config, error) {
	return y.read(func(r io.Reader) (Config, error) {
		var cfg Config
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, err
		}
		return cfg, nil
	})
}

func (y YAML) Write(cfg Config) error {
	return y.write(func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	})
}

func NewJSON(filePath string) JSON {
	return JSON{file{filePath: filePath}}
}

type JSON struct {
	file
}

func (j JSON) Read() (Config, error) {
	return j.read(func(r io.Reader) (Config, error) {
		var cfg Config
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	})
}

func (j JSON) Write(cfg Config) error {
	return j.write(func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	})
}
