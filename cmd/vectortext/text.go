package main

import (
	"fmt"
	"os"

	"github.com/banshee-data/vectorgfx/internal/geom"
	"github.com/banshee-data/vectorgfx/internal/glyph"
)

// loadShaper returns a shaper for the font in path, or for Go Regular when
// path is empty.
func loadShaper(path string, size float64) (*glyph.Shaper, error) {
	if path == "" {
		return glyph.NewDefaultShaper(size)
	}
	ttf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	s, err := glyph.NewShaper(ttf, size, glyph.DefaultFlatness)
	if err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", path, err)
	}
	return s, nil
}

// layoutText wraps text across the display from the top-left corner and
// shifts it by (x, y), with y measured downward.
func layoutText(text, fontPath string, size, x, y float64) (geom.Scene2D, error) {
	s, err := loadShaper(fontPath, size)
	if err != nil {
		return nil, err
	}
	return glyph.Layout(s, text, glyph.LayoutOptions{X: x, Y: y})
}
