package protocol

import "encoding/binary"

// State is the parser state of a Receiver.
type State int

const (
	// Idle waits for a sync prefix.
	Idle State = iota
	// Receiving collects point words until the end marker.
	Receiving
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Receiving:
		return "receiving"
	default:
		return "unknown"
	}
}

const syncRun = WordSize

// DecodedPoint is a point word as the device sees it.
type DecodedPoint struct {
	X, Y      uint16
	Intensity uint8
	Flag      uint8
}

// Receiver emulates the device-side stream parser. It is used by the
// emulated sink and by tests to check that emitted streams keep the framing
// rules.
//
// Four consecutive zero bytes synchronise the parser. Once point data has
// started, another run of four zero bytes discards the partial frame and
// counts as a reset; the run itself is a valid sync, so the parser is
// immediately ready for a new frame. Extra zero bytes directly after a sync
// are ignored. The end marker completes a frame and returns the parser to
// Idle.
type Receiver struct {
	state   State
	zeroRun int
	word    [WordSize]byte
	n       int
	points  []DecodedPoint
	resets  int
	frames  int
}

// NewReceiver returns a Receiver in the Idle state.
func NewReceiver() *Receiver {
	return &Receiver{}
}

// State returns the current parser state.
func (r *Receiver) State() State {
	return r.state
}

// Resets returns how many partial frames were discarded because of an
// unexpected zero run.
func (r *Receiver) Resets() int {
	return r.resets
}

// Frames returns how many complete frames have been received.
func (r *Receiver) Frames() int {
	return r.frames
}

// Feed parses data and returns the frames completed within it.
func (r *Receiver) Feed(data []byte) [][]DecodedPoint {
	var done [][]DecodedPoint
	for _, b := range data {
		if f, ok := r.feedByte(b); ok {
			done = append(done, f)
		}
	}
	return done
}

func (r *Receiver) feedByte(b byte) ([]DecodedPoint, bool) {
	if b == 0 {
		r.zeroRun++
	} else {
		r.zeroRun = 0
	}

	switch r.state {
	case Idle:
		if r.zeroRun >= syncRun {
			r.start()
		}
		return nil, false

	case Receiving:
		if r.zeroRun >= syncRun {
			if len(r.points) > 0 || r.n > 0 {
				r.resets++
			}
			r.start()
			return nil, false
		}
		r.word[r.n] = b
		r.n++
		if r.n < WordSize {
			return nil, false
		}
		r.n = 0

		w := Word(binary.BigEndian.Uint32(r.word[:]))
		if w == EndWord {
			f := r.points
			r.points = nil
			r.state = Idle
			r.zeroRun = 0
			r.frames++
			if f == nil {
				f = []DecodedPoint{}
			}
			return f, true
		}
		x, y, intensity, flag := Decode(w)
		r.points = append(r.points, DecodedPoint{X: x, Y: y, Intensity: intensity, Flag: flag})
	}
	return nil, false
}

func (r *Receiver) start() {
	r.state = Receiving
	r.points = nil
	r.n = 0
}
