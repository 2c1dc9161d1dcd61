package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/vectorgfx/internal/frame"
	"github.com/banshee-data/vectorgfx/internal/geom"
	"github.com/banshee-data/vectorgfx/internal/protocol"
)

// longestZeroRun returns the longest run of zero bytes in b.
func longestZeroRun(b []byte) int {
	longest, run := 0, 0
	for _, c := range b {
		if c == 0 {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	return longest
}

// Whatever the options, a built frame must never contain a zero run after
// its sync prefix, or the device would resync and drop it.
func TestBuild_OutputNeverContainsZeroRun(t *testing.T) {
	scenes := map[string][]geom.Line2D{
		"from origin": {geom.Ln(geom.Pt(0, 0), geom.Pt(10, 10))},
		"near origin": {geom.Ln(geom.Pt(0.5, 0.9), geom.Pt(0, 3)), geom.Ln(geom.Pt(0, 3), geom.Pt(0, 0))},
		"wrapped to origin": {
			geom.Ln(geom.Pt(4096, 4096), geom.Pt(100, 0)),
			geom.Ln(geom.Pt(-4096, 0), geom.Pt(0, 8192)),
		},
	}
	options := map[string]frame.Options{
		"zero":            {},
		"zero intensity":  {Flag: 1},
		"flag masked out": {Flag: 4},
		"default":         frame.DefaultOptions(),
	}

	for optName, opts := range options {
		for sceneName, lines := range scenes {
			t.Run(optName+"/"+sceneName, func(t *testing.T) {
				f := frame.NewBuilder(opts).Build(lines)
				data := protocol.MarshalFrame(f.Points)

				body := data[protocol.WordSize:]
				assert.Less(t, longestZeroRun(body), protocol.WordSize, "% x", data)

				rx := protocol.NewReceiver()
				frames := rx.Feed(data)
				require.Len(t, frames, 1, "% x", data)
				assert.Len(t, frames[0], len(f.Points))
				assert.Equal(t, 0, rx.Resets())
			})
		}
	}
}
