// Package protocol implements the wire format understood by the vector
// display firmware: 32-bit big-endian point words framed by a four-byte zero
// sync prefix and a 0x01000000 end marker.
//
// Point word layout, most significant bit first:
//
//	[flag:2][intensity:6][x:12][y:12]
package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/banshee-data/vectorgfx/internal/geom"
)

// WordSize is the size in bytes of every word on the wire.
const WordSize = 4

const (
	coordMask     = 0xfff
	intensityMask = 0x3f
	flagMask      = 0x3

	flagShift      = 30
	intensityShift = 24
	xShift         = 12
)

// MaxCoord is the largest addressable device coordinate on either axis.
const MaxCoord = coordMask

// MaxIntensity is the largest beam intensity that fits in a point word.
const MaxIntensity = intensityMask

// Word is one encoded point.
type Word uint32

// Encode packs a point into a word. x and y are truncated toward zero and
// then wrapped to 12 bits, so 4096 encodes like 0 and -1 like 4095. This
// matches how the device treats out-of-range positions. Coordinates that are
// not finite (e.g. from a projection divide by zero) wrap to 0. Intensity
// keeps its low 6 bits and flag its low 2 bits.
func Encode(x, y float64, intensity, flag uint8) Word {
	xi := uint32(geom.Trunc(x) & coordMask)
	yi := uint32(geom.Trunc(y) & coordMask)
	return Word(uint32(flag&flagMask)<<flagShift |
		uint32(intensity&intensityMask)<<intensityShift |
		xi<<xShift |
		yi)
}

// Decode unpacks a word into its fields.
func Decode(w Word) (x, y uint16, intensity, flag uint8) {
	return uint16(w>>xShift) & coordMask,
		uint16(w) & coordMask,
		uint8(w>>intensityShift) & intensityMask,
		uint8(w>>flagShift) & flagMask
}

// Bytes returns the big-endian encoding of w.
func (w Word) Bytes() []byte {
	return AppendWord(make([]byte, 0, WordSize), w)
}

// AppendWord appends the big-endian encoding of w to b.
func AppendWord(b []byte, w Word) []byte {
	return binary.BigEndian.AppendUint32(b, uint32(w))
}

func (w Word) String() string {
	x, y, intensity, flag := Decode(w)
	return fmt.Sprintf("%08x(flag=%d intensity=%d x=%d y=%d)", uint32(w), flag, intensity, x, y)
}
