package frame

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/vectorgfx/internal/geom"
)

func unitSquare() []geom.Line2D {
	a, b, c, d := geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)
	return []geom.Line2D{geom.Ln(a, b), geom.Ln(b, c), geom.Ln(c, d), geom.Ln(d, a)}
}

func TestBuild_ClosedChainHasOneTransit(t *testing.T) {
	f := Build(unitSquare())

	want := []AddressedPoint{
		{X: 0, Y: 0, Intensity: 0, Flag: 2, Kind: Transit},
		{X: 1, Y: 0, Intensity: 24, Flag: 2, Kind: Draw},
		{X: 1, Y: 1, Intensity: 24, Flag: 2, Kind: Draw},
		{X: 0, Y: 1, Intensity: 24, Flag: 2, Kind: Draw},
		{X: 0, Y: 0, Intensity: 24, Flag: 2, Kind: Draw},
	}
	if diff := cmp.Diff(want, f.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, f.TransitCount())
	assert.Equal(t, 4, f.DrawCount())
	assert.Len(t, f.Lines, 4)
	assert.Equal(t, 4, f.Segments)
}

func TestBuild_DisjointSegments(t *testing.T) {
	lines := []geom.Line2D{
		geom.Ln(geom.Pt(0, 0), geom.Pt(10, 0)),
		geom.Ln(geom.Pt(20, 20), geom.Pt(30, 20)),
		geom.Ln(geom.Pt(30, 20), geom.Pt(30, 40)),
	}
	f := Build(lines)

	kinds := make([]Kind, len(f.Points))
	for i, p := range f.Points {
		kinds[i] = p.Kind
	}
	assert.Equal(t, []Kind{Transit, Draw, Transit, Draw, Draw}, kinds)
	assert.Equal(t, 2, f.TransitCount())
}

func TestBuild_ReversedSegmentStillNeedsTransit(t *testing.T) {
	// The second line shares an endpoint with the first but starts at the
	// far end, so the beam must move there first.
	lines := []geom.Line2D{
		geom.Ln(geom.Pt(0, 0), geom.Pt(10, 0)),
		geom.Ln(geom.Pt(10, 10), geom.Pt(10, 0)),
	}
	f := Build(lines)
	assert.Equal(t, 2, f.TransitCount())
}

func TestBuild_Empty(t *testing.T) {
	f := Build(nil)
	assert.Empty(t, f.Points)
	assert.Empty(t, f.Lines)
	assert.Equal(t, 0, f.TransitCount())
}

func TestBuild_DropsZeroLengthSegments(t *testing.T) {
	lines := []geom.Line2D{
		geom.Ln(geom.Pt(5, 5), geom.Pt(5, 5)),
		geom.Ln(geom.Pt(5.1, 5.2), geom.Pt(5.9, 5.7)), // same device cell
		geom.Ln(geom.Pt(0, 0), geom.Pt(3, 0)),
	}
	f := Build(lines)

	require.Len(t, f.Lines, 1)
	assert.Equal(t, lines[2], f.Lines[0])
	assert.Len(t, f.Points, 2)
	assert.Equal(t, 3, f.Segments)
}

func TestBuild_ZeroLengthDoesNotBreakChain(t *testing.T) {
	lines := []geom.Line2D{
		geom.Ln(geom.Pt(0, 0), geom.Pt(10, 0)),
		geom.Ln(geom.Pt(10, 0), geom.Pt(10, 0)),
		geom.Ln(geom.Pt(10, 0), geom.Pt(10, 10)),
	}
	f := Build(lines)
	assert.Equal(t, 1, f.TransitCount())
	assert.Equal(t, 2, f.DrawCount())
}

func TestBuild_DeduplicatesUndirected(t *testing.T) {
	sq := unitSquare()
	lines := append(append([]geom.Line2D{}, sq...), sq[0].Reversed(), sq[2])

	withDup := Build(lines)
	plain := Build(sq)

	if diff := cmp.Diff(plain.Points, withDup.Points); diff != "" {
		t.Errorf("duplicates changed the frame (-plain +dup):\n%s", diff)
	}
}

func TestBuilder_AllowDuplicates(t *testing.T) {
	l := geom.Ln(geom.Pt(0, 0), geom.Pt(10, 0))
	opts := DefaultOptions()
	opts.AllowDuplicates = true

	f := NewBuilder(opts).Build([]geom.Line2D{l, l})

	assert.Len(t, f.Lines, 2)
	// The copy starts at the origin again, so the beam transits back.
	assert.Equal(t, 2, f.TransitCount())
	assert.Equal(t, 2, f.DrawCount())
}

func TestBuilder_CustomIntensities(t *testing.T) {
	b := NewBuilder(Options{DrawIntensity: 63, TransitIntensity: 5, Flag: 1})
	f := b.Build([]geom.Line2D{geom.Ln(geom.Pt(0, 0), geom.Pt(100, 100))})

	require.Len(t, f.Points, 2)
	assert.Equal(t, AddressedPoint{X: 0, Y: 0, Intensity: 5, Flag: 1, Kind: Transit}, f.Points[0])
	assert.Equal(t, AddressedPoint{X: 100, Y: 100, Intensity: 63, Flag: 1, Kind: Draw}, f.Points[1])
	assert.Equal(t, Options{DrawIntensity: 63, TransitIntensity: 5, Flag: 1}, b.Options())
}

func TestDedup(t *testing.T) {
	a := geom.Ln(geom.Pt(0, 0), geom.Pt(1, 0))
	b := geom.Ln(geom.Pt(1, 0), geom.Pt(1, 1))
	c := geom.Ln(geom.Pt(2, 2), geom.Pt(3, 3))

	t.Run("first occurrence wins", func(t *testing.T) {
		got := Dedup([]geom.Line2D{b, a, a.Reversed(), c, b})
		assert.Equal(t, []geom.Line2D{b, a, c}, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := Dedup([]geom.Line2D{a, b, a, c, c.Reversed()})
		assert.Equal(t, once, Dedup(once))
	})

	t.Run("does not modify input", func(t *testing.T) {
		in := []geom.Line2D{a, a, b}
		_ = Dedup(in)
		assert.Equal(t, []geom.Line2D{a, a, b}, in)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Dedup(nil))
	})
}

func TestNewBuilder_ZeroFlagFallsBackToDefault(t *testing.T) {
	tests := []struct {
		flag uint8
		want uint8
	}{
		{0, DefaultFlag},
		{4, DefaultFlag}, // low two bits are zero
		{1, 1},
		{3, 3},
	}
	for _, tc := range tests {
		b := NewBuilder(Options{Flag: tc.flag})
		assert.Equal(t, tc.want, b.Options().Flag, "flag %d", tc.flag)
	}

	f := NewBuilder(Options{}).Build([]geom.Line2D{geom.Ln(geom.Pt(0, 0), geom.Pt(10, 10))})
	for _, p := range f.Points {
		assert.Equal(t, DefaultFlag, p.Flag)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transit", Transit.String())
	assert.Equal(t, "draw", Draw.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
