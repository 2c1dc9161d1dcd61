package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/vectorgfx/internal/frame"
	"github.com/banshee-data/vectorgfx/internal/geom"
)

func TestReceiver_DecodesFrame(t *testing.T) {
	t.Parallel()

	r := NewReceiver()
	assert.Equal(t, Idle, r.State())

	frames := r.Feed(MarshalFrame(frame.Build(unitSquare()).Points))
	require.Len(t, frames, 1)
	got := frames[0]
	require.Len(t, got, 5)
	assert.Equal(t, DecodedPoint{X: 100, Y: 100, Intensity: 0, Flag: 2}, got[0])
	assert.Equal(t, DecodedPoint{X: 100, Y: 100, Intensity: 24, Flag: 2}, got[4])
	assert.Equal(t, Idle, r.State())
	assert.Equal(t, 0, r.Resets())
	assert.Equal(t, 1, r.Frames())
}

func TestReceiver_ByteAtATime(t *testing.T) {
	t.Parallel()

	data := MarshalFrame(frame.Build(unitSquare()).Points)
	r := NewReceiver()
	var frames [][]DecodedPoint
	for i := range data {
		frames = append(frames, r.Feed(data[i:i+1])...)
	}
	require.Len(t, frames, 1)
	assert.Len(t, frames[0], 5)
}

func TestReceiver_ExtraSyncBytesAreIgnored(t *testing.T) {
	t.Parallel()

	var stream bytes.Buffer
	require.NoError(t, Sync(&stream))
	stream.Write(MarshalFrame(frame.Build(unitSquare()).Points))

	r := NewReceiver()
	frames := r.Feed(stream.Bytes())
	require.Len(t, frames, 1)
	assert.Len(t, frames[0], 5)
	assert.Equal(t, 0, r.Resets())
}

func TestReceiver_IgnoresDataBeforeSync(t *testing.T) {
	t.Parallel()

	r := NewReceiver()
	assert.Empty(t, r.Feed([]byte{0x98, 0x12, 0x34, 0x56, 1, 0, 0, 0}))
	assert.Equal(t, Idle, r.State())
}

// Points at the origin are the worst case for zero runs. With the default
// point flag they still never form four zero bytes.
func TestReceiver_DefaultFlagNeverResets(t *testing.T) {
	t.Parallel()

	o := geom.Pt(0, 0)
	lines := []geom.Line2D{
		geom.Ln(geom.Pt(4096, 0), o),
		geom.Ln(o, geom.Pt(0, 4096)),
		geom.Ln(geom.Pt(0, 8192), geom.Pt(8192, 0)),
	}
	data := MarshalFrame(frame.NewBuilder(frame.Options{Flag: frame.DefaultFlag, DrawIntensity: 0}).Build(lines).Points)

	r := NewReceiver()
	frames := r.Feed(data)
	require.Len(t, frames, 1)
	assert.Equal(t, 0, r.Resets())
}

// A zero flag with beam-off at the origin encodes as four zero bytes, which
// the device reads as a new sync.
func TestReceiver_ZeroRunResetsPartialFrame(t *testing.T) {
	t.Parallel()

	points := []frame.AddressedPoint{
		{X: 10, Y: 10, Intensity: 24, Flag: 2, Kind: frame.Draw},
		{X: 0, Y: 0, Intensity: 0, Flag: 0, Kind: frame.Transit},
		{X: 20, Y: 20, Intensity: 24, Flag: 2, Kind: frame.Draw},
	}
	r := NewReceiver()
	frames := r.Feed(MarshalFrame(points))
	assert.Equal(t, 1, r.Resets())
	require.Len(t, frames, 1)
	assert.Equal(t, []DecodedPoint{{X: 20, Y: 20, Intensity: 24, Flag: 2}}, frames[0])
}

func TestReceiver_EmptyFrame(t *testing.T) {
	t.Parallel()

	r := NewReceiver()
	frames := r.Feed(MarshalFrame(nil))
	require.Len(t, frames, 1)
	assert.Empty(t, frames[0])
}
