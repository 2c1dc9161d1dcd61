package protocol

import (
	"errors"
	"fmt"
	"io"

	"github.com/banshee-data/vectorgfx/internal/frame"
)

// SyncWord and EndWord bracket every frame. The sync prefix must be the only
// run of four or more zero bytes in the stream: the device drops whatever it
// has received and starts over whenever it sees one.
const (
	SyncWord Word = 0x00000000
	EndWord  Word = 0x01000000
)

// ErrShortWrite is returned when a sink accepts fewer bytes than offered.
var ErrShortWrite = errors.New("short write to sink")

// MarshalFrame encodes points and brackets them with the sync prefix and end
// marker. The result is always 4+4*len(points)+4 bytes long.
func MarshalFrame(points []frame.AddressedPoint) []byte {
	buf := make([]byte, 0, FrameSize(len(points)))
	buf = AppendWord(buf, SyncWord)
	for _, p := range points {
		buf = AppendWord(buf, Encode(p.X, p.Y, p.Intensity, p.Flag))
	}
	return AppendWord(buf, EndWord)
}

// FrameSize returns the encoded length of a frame with n points.
func FrameSize(n int) int {
	return WordSize * (n + 2)
}

// EmitFrame writes one complete frame to sink in a single Write call. Errors
// from the sink are returned wrapped and are not retried.
func EmitFrame(points []frame.AddressedPoint, sink io.Writer) (int, error) {
	return Send(sink, MarshalFrame(points))
}

// Sync writes a bare sync prefix, returning the device parser to its initial
// state.
func Sync(sink io.Writer) error {
	_, err := Send(sink, SyncWord.Bytes())
	return err
}

// Send writes already-marshalled data to sink in one call, wrapping sink
// errors and reporting short writes as ErrShortWrite.
func Send(sink io.Writer, data []byte) (int, error) {
	n, err := sink.Write(data)
	if err != nil {
		return n, fmt.Errorf("write %d bytes: %w", len(data), err)
	}
	if n != len(data) {
		return n, fmt.Errorf("wrote %d of %d bytes: %w", n, len(data), ErrShortWrite)
	}
	return n, nil
}
