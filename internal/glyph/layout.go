package glyph

import (
	"strings"

	"github.com/banshee-data/vectorgfx/internal/geom"
	"github.com/banshee-data/vectorgfx/internal/protocol"
)

// LayoutOptions positions wrapped text on the display.
type LayoutOptions struct {
	// X and Y offset the block; Y moves it down.
	X, Y float64
	// Width is the exclusive right edge a row must stay left of. Defaults to
	// the full device width.
	Width float64
	// Top is the top edge of the first row. Defaults to the top of the
	// device.
	Top float64
}

// Layout word-wraps text into rows whose outlines stay left of Width, one em
// apart, with the first row's baseline one em below Top. Runs of whitespace
// separate words. A word wider than Width gets a row to itself.
func Layout(s *Shaper, text string, opts LayoutOptions) (geom.Scene2D, error) {
	if opts.Width <= 0 {
		opts.Width = protocol.MaxCoord
	}
	if opts.Top <= 0 {
		opts.Top = protocol.MaxCoord
	}

	var (
		out     geom.Scene2D
		current string
		y       = opts.Top - s.Size()
	)
	emit := func(row string) error {
		lines, err := s.LinesForText(row)
		if err != nil {
			return err
		}
		out = append(out, geom.Scene2D(lines).Translate(0, y)...)
		return nil
	}

	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		lines, err := s.LinesForText(candidate)
		if err != nil {
			return nil, err
		}
		if current == "" || geom.Scene2D(lines).MaxX() < opts.Width {
			current = candidate
			continue
		}
		if err := emit(current); err != nil {
			return nil, err
		}
		current = word
		y -= s.Size()
	}
	if current != "" {
		if err := emit(current); err != nil {
			return nil, err
		}
	}

	return out.Translate(opts.X, -opts.Y), nil
}
