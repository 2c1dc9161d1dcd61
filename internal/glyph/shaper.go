// Package glyph turns text into straight line segments for the vector
// display, using the outlines of a TrueType or OpenType font.
package glyph

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/banshee-data/vectorgfx/internal/geom"
)

// DefaultFlatness is the default curve tolerance as a fraction of the size.
const DefaultFlatness = 0.01

// maxDepth bounds curve subdivision.
const maxDepth = 8

// Shaper produces segments for strings rendered in one font at one size.
// Size is the em height in output units; the baseline is at y=0 and y grows
// upward. A Shaper is safe for concurrent use.
type Shaper struct {
	font     *sfnt.Font
	size     float64
	flatness float64
	scale    float64
	ppem     fixed.Int26_6

	mu  sync.Mutex
	buf sfnt.Buffer
}

// NewShaper parses a TrueType or OpenType font. flatness is the maximum
// distance, in output units, between a curve and the segments that replace
// it; zero or less uses DefaultFlatness*size.
func NewShaper(ttf []byte, size, flatness float64) (*Shaper, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %g", size)
	}
	f, err := sfnt.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	if flatness <= 0 {
		flatness = DefaultFlatness * size
	}
	upem := float64(f.UnitsPerEm())
	return &Shaper{
		font:     f,
		size:     size,
		flatness: flatness,
		// Outlines are loaded at one pixel per font unit and scaled here,
		// so tiny sizes keep full precision.
		scale: size / upem,
		ppem:  fixed.I(int(f.UnitsPerEm())),
	}, nil
}

// NewDefaultShaper returns a Shaper using the Go Regular font.
func NewDefaultShaper(size float64) (*Shaper, error) {
	return NewShaper(goregular.TTF, size, 0)
}

// Size returns the em height in output units.
func (s *Shaper) Size() float64 { return s.size }

// LinesForText returns the outline segments of text laid out on a single
// baseline starting at the origin. Characters the font lacks render as its
// missing-glyph box.
func (s *Shaper) LinesForText(text string) ([]geom.Line2D, error) {
	lines, _, err := s.shape(text)
	return lines, err
}

// Advance returns the width of text in output units.
func (s *Shaper) Advance(text string) (float64, error) {
	_, adv, err := s.shape(text)
	return adv, err
}

func (s *Shaper) shape(text string) ([]geom.Line2D, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		lines []geom.Line2D
		pen   fixed.Int26_6
		prev  sfnt.GlyphIndex
	)
	for i, r := range text {
		gid, err := s.font.GlyphIndex(&s.buf, r)
		if err != nil {
			return nil, 0, fmt.Errorf("glyph index for %q: %w", r, err)
		}
		if i > 0 {
			k, err := s.font.Kern(&s.buf, prev, gid, s.ppem, font.HintingNone)
			if err == nil {
				pen += k
			} else if !errors.Is(err, sfnt.ErrNotFound) {
				return nil, 0, fmt.Errorf("kern %q: %w", r, err)
			}
		}

		segs, err := s.font.LoadGlyph(&s.buf, gid, s.ppem, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("load glyph %q: %w", r, err)
		}
		lines = s.appendOutline(lines, segs, pen)

		adv, err := s.font.GlyphAdvance(&s.buf, gid, s.ppem, font.HintingNone)
		if err != nil {
			return nil, 0, fmt.Errorf("advance for %q: %w", r, err)
		}
		pen += adv
		prev = gid
	}
	return lines, s.units(pen), nil
}

func (s *Shaper) units(v fixed.Int26_6) float64 {
	return float64(v) / 64 * s.scale
}

// point converts a glyph-space point to output space, flipping Y so it grows
// upward.
func (s *Shaper) point(p fixed.Point26_6, pen fixed.Int26_6) geom.Point2D {
	return geom.Pt(s.units(p.X+pen), -s.units(p.Y))
}

func (s *Shaper) appendOutline(lines []geom.Line2D, segs sfnt.Segments, pen fixed.Int26_6) []geom.Line2D {
	var start, cur geom.Point2D
	closeContour := func() {
		if !cur.Equal(start) {
			lines = append(lines, geom.Ln(cur, start))
		}
	}

	for i, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if i > 0 {
				closeContour()
			}
			start = s.point(seg.Args[0], pen)
			cur = start
		case sfnt.SegmentOpLineTo:
			next := s.point(seg.Args[0], pen)
			lines = append(lines, geom.Ln(cur, next))
			cur = next
		case sfnt.SegmentOpQuadTo:
			pts := flattenQuadratic(cur, s.point(seg.Args[0], pen), s.point(seg.Args[1], pen), s.flatness, 0)
			lines = appendPolyline(lines, pts)
			cur = pts[len(pts)-1]
		case sfnt.SegmentOpCubeTo:
			pts := flattenCubic(cur, s.point(seg.Args[0], pen), s.point(seg.Args[1], pen), s.point(seg.Args[2], pen), s.flatness, 0)
			lines = appendPolyline(lines, pts)
			cur = pts[len(pts)-1]
		}
	}
	if len(segs) > 0 {
		closeContour()
	}
	return lines
}

func appendPolyline(lines []geom.Line2D, pts []geom.Point2D) []geom.Line2D {
	for i := 1; i < len(pts); i++ {
		lines = append(lines, geom.Ln(pts[i-1], pts[i]))
	}
	return lines
}
