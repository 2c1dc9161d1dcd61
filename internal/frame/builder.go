// Package frame turns an ordered set of 2D segments into the sequence of
// beam-off (transit) and beam-on (draw) points that the display traces.
package frame

import (
	"github.com/banshee-data/vectorgfx/internal/geom"
)

const (
	// DefaultDrawIntensity is the beam intensity used for visible segments.
	DefaultDrawIntensity uint8 = 24
	// DefaultTransitIntensity turns the beam off while moving.
	DefaultTransitIntensity uint8 = 0
	// DefaultFlag marks a word as a point command. A non-zero flag also keeps
	// the leading byte of every point word non-zero, so point data can never
	// form a run of four zero bytes.
	DefaultFlag uint8 = 2

	flagMask = 0x3
)

// Kind says whether the beam is on while moving to a point.
type Kind uint8

const (
	Transit Kind = iota
	Draw
)

func (k Kind) String() string {
	switch k {
	case Transit:
		return "transit"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// AddressedPoint is one beam target. X and Y are left as computed; the
// encoder truncates and wraps them into device space.
type AddressedPoint struct {
	X, Y      float64
	Intensity uint8
	Flag      uint8
	Kind      Kind
}

// Options controls how a frame is built.
type Options struct {
	DrawIntensity    uint8
	TransitIntensity uint8
	// Flag is the 2-bit command flag of every point. A flag whose low two
	// bits are zero is replaced by DefaultFlag: a zero flag would let a
	// beam-off point near the origin put a run of zero bytes on the wire,
	// which the device reads as a sync and drops the frame.
	Flag uint8

	// AllowDuplicates skips deduplication, drawing repeated segments as
	// many times as they appear.
	AllowDuplicates bool
}

// DefaultOptions returns the intensities and flag the device firmware
// expects.
func DefaultOptions() Options {
	return Options{
		DrawIntensity:    DefaultDrawIntensity,
		TransitIntensity: DefaultTransitIntensity,
		Flag:             DefaultFlag,
	}
}

// Frame is the result of one Build: the segments that survived dedup and
// elision, and the points to send, in order. Segments counts what was left
// after dedup, zero-length segments included.
type Frame struct {
	Lines    []geom.Line2D
	Points   []AddressedPoint
	Segments int
}

// TransitCount returns the number of beam-off moves in the frame.
func (f Frame) TransitCount() int {
	n := 0
	for _, p := range f.Points {
		if p.Kind == Transit {
			n++
		}
	}
	return n
}

// DrawCount returns the number of visible segments traced by the frame.
func (f Frame) DrawCount() int {
	return len(f.Points) - f.TransitCount()
}

// Builder builds frames with a fixed set of options. The zero value is not
// useful; use NewBuilder.
type Builder struct {
	opts Options
}

// NewBuilder returns a Builder using opts.
func NewBuilder(opts Options) *Builder {
	if opts.Flag&flagMask == 0 {
		opts.Flag = DefaultFlag
	}
	return &Builder{opts: opts}
}

// Options returns the builder's options.
func (b *Builder) Options() Options {
	return b.opts
}

// Build deduplicates lines (keeping the first occurrence of each undirected
// segment), drops segments that are zero-length in device space, and emits a
// transit point wherever a segment does not start where the previous one
// ended, followed by a draw point at its end.
func (b *Builder) Build(lines []geom.Line2D) Frame {
	if !b.opts.AllowDuplicates {
		lines = Dedup(lines)
	}

	f := Frame{
		Lines:    make([]geom.Line2D, 0, len(lines)),
		Points:   make([]AddressedPoint, 0, len(lines)*2),
		Segments: len(lines),
	}

	var last geom.Point2D
	haveLast := false
	for _, l := range lines {
		if l.ZeroLength() {
			continue
		}
		if !haveLast || !l.P1.Equal(last) {
			f.Points = append(f.Points, b.point(l.P1, Transit))
		}
		f.Points = append(f.Points, b.point(l.P2, Draw))
		f.Lines = append(f.Lines, l)
		last = l.P2
		haveLast = true
	}
	return f
}

func (b *Builder) point(p geom.Point2D, k Kind) AddressedPoint {
	intensity := b.opts.DrawIntensity
	if k == Transit {
		intensity = b.opts.TransitIntensity
	}
	return AddressedPoint{X: p.X, Y: p.Y, Intensity: intensity, Flag: b.opts.Flag, Kind: k}
}

// Build is a convenience for NewBuilder(DefaultOptions()).Build(lines).
func Build(lines []geom.Line2D) Frame {
	return NewBuilder(DefaultOptions()).Build(lines)
}

// Dedup returns lines with repeated segments removed, comparing segments
// without regard to direction. The first occurrence wins and relative order
// is kept.
func Dedup(lines []geom.Line2D) []geom.Line2D {
	seen := make(map[geom.LineKey2D]struct{}, len(lines))
	out := make([]geom.Line2D, 0, len(lines))
	for _, l := range lines {
		k := l.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, l)
	}
	return out
}
