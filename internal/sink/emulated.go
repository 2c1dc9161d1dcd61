package sink

import (
	"fmt"
	"sync"

	"github.com/banshee-data/vectorgfx/internal/monitoring"
	"github.com/banshee-data/vectorgfx/internal/protocol"
	"github.com/banshee-data/vectorgfx/internal/timeutil"
)

// EmulatedSink parses the stream with a protocol.Receiver, as the display
// firmware would, and keeps the most recent complete frame. It models
// transmission time like SimulatedSink.
type EmulatedSink struct {
	link *SimulatedSink

	mu     sync.Mutex
	rx     *protocol.Receiver
	last   []protocol.DecodedPoint
	resets int
}

// NewEmulatedSink returns an EmulatedSink timed at opts.BaudRate.
func NewEmulatedSink(opts PortOptions, clock timeutil.Clock) *EmulatedSink {
	return &EmulatedSink{
		link: NewSimulatedSink(opts, clock),
		rx:   protocol.NewReceiver(),
	}
}

func (e *EmulatedSink) Write(data []byte) (int, error) {
	n, err := e.link.Write(data)
	if err != nil {
		return n, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	frames := e.rx.Feed(data)
	if len(frames) > 0 {
		e.last = frames[len(frames)-1]
	}
	if r := e.rx.Resets(); r != e.resets {
		monitoring.Logf("emulated device: parser reset by zero run (%d total)", r)
		e.resets = r
	}
	return n, nil
}

// LastFrame returns the points of the most recently completed frame.
func (e *EmulatedSink) LastFrame() []protocol.DecodedPoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]protocol.DecodedPoint, len(e.last))
	copy(out, e.last)
	return out
}

// Frames returns the number of complete frames received.
func (e *EmulatedSink) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rx.Frames()
}

// Resets returns the number of partial frames the parser discarded.
func (e *EmulatedSink) Resets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rx.Resets()
}

func (e *EmulatedSink) Close() error { return nil }

func (e *EmulatedSink) String() string {
	return fmt.Sprintf("emulated device @ %d", e.link.opts.BaudRate)
}
