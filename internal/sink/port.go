// Package sink provides the byte sinks a rendered frame is written to: a real
// serial port, a simulated link that only models transmission time, and an
// emulated device that parses the stream the way the display firmware does.
//
// Every sink is an io.Writer. A sink is not safe for concurrent use; callers
// that share one must serialise their writes.
package sink

import (
	"io"
)

// SerialPorter defines the minimal interface needed for a serial port.
// This abstraction enables unit testing without real serial hardware.
type SerialPorter interface {
	io.Writer
	io.Closer
}

// PortOpener opens a serial port at path with the given options. It is a
// variable on SerialSink construction so tests can replace it.
type PortOpener func(path string, opts PortOptions) (SerialPorter, error)
