package sink

import (
	"errors"
	"fmt"

	"go.bug.st/serial"

	"github.com/banshee-data/vectorgfx/internal/monitoring"
)

// ErrClosed is returned when writing to a sink after Close.
var ErrClosed = errors.New("sink closed")

// OpenSerialPort opens a real serial port using go.bug.st/serial.
func OpenSerialPort(path string, opts PortOptions) (SerialPorter, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}
	return port, nil
}

// SerialSink writes frames to a serial port.
type SerialSink struct {
	path string
	opts PortOptions
	port SerialPorter
}

// NewSerialSink opens path with opts. A nil opener uses OpenSerialPort.
func NewSerialSink(path string, opts PortOptions, opener PortOpener) (*SerialSink, error) {
	normalized, err := opts.Normalize()
	if err != nil {
		return nil, fmt.Errorf("serial options for %s: %w", path, err)
	}
	if opener == nil {
		opener = OpenSerialPort
	}
	port, err := opener(path, normalized)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", path, err)
	}
	monitoring.Logf("opened %s at %d baud %d%s%d", path,
		normalized.BaudRate, normalized.DataBits, normalized.Parity, normalized.StopBits)
	return &SerialSink{path: path, opts: normalized, port: port}, nil
}

// Write sends data to the port. Errors are returned as-is; the protocol has
// no acknowledgement so nothing is retried.
func (s *SerialSink) Write(data []byte) (int, error) {
	if s.port == nil {
		return 0, ErrClosed
	}
	return s.port.Write(data)
}

// Close closes the underlying port. Closing twice is a no-op.
func (s *SerialSink) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

// Options returns the normalized port options in use.
func (s *SerialSink) Options() PortOptions {
	return s.opts
}

func (s *SerialSink) String() string {
	return fmt.Sprintf("serial %s @ %d", s.path, s.opts.BaudRate)
}
