package sink

import (
	"fmt"

	"github.com/banshee-data/vectorgfx/internal/timeutil"
)

// SimulatedSink stands in for a serial link when no hardware is attached. It
// discards data but blocks for as long as the bytes would take to transmit,
// so frame pacing behaves the same with and without a device.
type SimulatedSink struct {
	clock timeutil.Clock
	opts  PortOptions
	bytes int64
}

// NewSimulatedSink returns a SimulatedSink timed at opts.BaudRate. A nil
// clock uses the real clock.
func NewSimulatedSink(opts PortOptions, clock timeutil.Clock) *SimulatedSink {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if opts.BaudRate <= 0 {
		opts.BaudRate = DefaultBaudRate
	}
	return &SimulatedSink{clock: clock, opts: opts}
}

func (s *SimulatedSink) Write(data []byte) (int, error) {
	s.clock.Sleep(s.opts.TransmitDuration(len(data)))
	s.bytes += int64(len(data))
	return len(data), nil
}

// BytesWritten returns the total number of bytes accepted.
func (s *SimulatedSink) BytesWritten() int64 {
	return s.bytes
}

func (s *SimulatedSink) Close() error { return nil }

func (s *SimulatedSink) String() string {
	return fmt.Sprintf("simulated link @ %d", s.opts.BaudRate)
}
