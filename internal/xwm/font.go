package xwm

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/freetype-go/freetype/truetype"
	"github.com/ItsNotGoodName/waterline/internal/core"
	"github.com/jezek/xgbutil/xgraphics"
)

var ErrNoFont = errors.New("no font found")

var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
}

// LoadFont parses the TrueType font at path, or the first common system font
// when path is empty.
func LoadFont(path string) (*truetype.Font, error) {
	if path != "" {
		return parseFont(path)
	}
	for _, path := range fontPaths {
		if ok, err := core.FileExists(path); err == nil && ok {
			return parseFont(path)
		}
	}
	return nil, ErrNoFont
}

func parseFont(path string) (*truetype.Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	font, err := xgraphics.ParseFont(f)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return font, nil
}
