package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("frame %d", 1)
	assert.Equal(t, []string{"frame 1"}, got)

	// A nil logger mutes output instead of panicking.
	SetLogger(nil)
	Logf("dropped")
	assert.Equal(t, []string{"frame 1"}, got)
}

func TestPrefixed(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Prefixed("[sink]")("wrote %d bytes", 28)
	assert.Equal(t, "[sink] wrote 28 bytes", got)
}
