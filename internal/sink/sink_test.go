package sink

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/vectorgfx/internal/frame"
	"github.com/banshee-data/vectorgfx/internal/geom"
	"github.com/banshee-data/vectorgfx/internal/protocol"
	"github.com/banshee-data/vectorgfx/internal/timeutil"
)

var (
	_ io.WriteCloser = (*SerialSink)(nil)
	_ io.WriteCloser = (*SimulatedSink)(nil)
	_ io.WriteCloser = (*EmulatedSink)(nil)
	_ PortOpener     = (*MockPortOpener)(nil).Open
)

func squareFrame() []byte {
	a, b, c, d := geom.Pt(0, 0), geom.Pt(4095, 0), geom.Pt(4095, 4095), geom.Pt(0, 4095)
	f := frame.Build([]geom.Line2D{geom.Ln(a, b), geom.Ln(b, c), geom.Ln(c, d), geom.Ln(d, a)})
	return protocol.MarshalFrame(f.Points)
}

func TestSerialSink_WritesThroughToPort(t *testing.T) {
	port := NewTestableSerialPort()
	opener := NewMockPortOpener(port)

	s, err := NewSerialSink("/dev/ttyUSB0", PortOptions{Parity: "none"}, opener.Open)
	require.NoError(t, err)

	call := opener.LastCall()
	require.NotNil(t, call)
	assert.Equal(t, "/dev/ttyUSB0", call.Path)
	assert.Equal(t, PortOptions{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: "N"}, call.Opts)
	assert.Equal(t, call.Opts, s.Options())

	data := squareFrame()
	n, err := s.Write(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, port.GetWrittenData())

	require.NoError(t, s.Close())
	assert.True(t, port.Closed)
	require.NoError(t, s.Close())

	_, err = s.Write(data)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSerialSink_OpenErrors(t *testing.T) {
	opener := NewMockPortOpener(nil)
	opener.Error = errors.New("no such device")

	_, err := NewSerialSink("/dev/missing", PortOptions{}, opener.Open)
	require.Error(t, err)
	assert.ErrorIs(t, err, opener.Error)

	_, err = NewSerialSink("/dev/ttyUSB0", PortOptions{DataBits: 12}, opener.Open)
	require.Error(t, err)
	assert.Len(t, opener.OpenCalls, 1, "invalid options must not reach the opener")
}

func TestSerialSink_WriteErrorPropagates(t *testing.T) {
	port := NewTestableSerialPort()
	port.WriteError = errors.New("i/o error")
	s, err := NewSerialSink("/dev/ttyUSB0", PortOptions{}, NewMockPortOpener(port).Open)
	require.NoError(t, err)

	_, err = protocol.EmitFrame(nil, s)
	assert.ErrorIs(t, err, port.WriteError)
	assert.Equal(t, 1, port.WriteCalls)
}

func TestSerialSink_ShortWrite(t *testing.T) {
	port := NewTestableSerialPort()
	port.ShortWrite = true
	s, err := NewSerialSink("/dev/ttyUSB0", PortOptions{}, NewMockPortOpener(port).Open)
	require.NoError(t, err)

	_, err = protocol.EmitFrame(nil, s)
	assert.ErrorIs(t, err, protocol.ErrShortWrite)
}

func TestSimulatedSink_SleepsForTransmitTime(t *testing.T) {
	clock := timeutil.NewMockClock(time.Unix(0, 0))
	s := NewSimulatedSink(PortOptions{}, clock)

	data := squareFrame()
	n, err := s.Write(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, int64(len(data)), s.BytesWritten())
	assert.Equal(t, []time.Duration{PortOptions{}.TransmitDuration(len(data))}, clock.Sleeps())

	// Twice the data takes twice as long.
	_, err = s.Write(append(data, data...))
	require.NoError(t, err)
	sleeps := clock.Sleeps()
	require.Len(t, sleeps, 2)
	assert.InDelta(t, float64(2*sleeps[0]), float64(sleeps[1]), 1)
}

func TestEmulatedSink_KeepsLastFrame(t *testing.T) {
	clock := timeutil.NewMockClock(time.Unix(0, 0))
	e := NewEmulatedSink(PortOptions{BaudRate: 921600}, clock)

	_, err := e.Write(squareFrame())
	require.NoError(t, err)

	last := e.LastFrame()
	require.Len(t, last, 5)
	assert.Equal(t, protocol.DecodedPoint{X: 0, Y: 0, Intensity: 0, Flag: 2}, last[0])
	assert.Equal(t, protocol.DecodedPoint{X: 4095, Y: 0, Intensity: 24, Flag: 2}, last[1])
	assert.Equal(t, 1, e.Frames())
	assert.Equal(t, 0, e.Resets())
	assert.Len(t, clock.Sleeps(), 1)
}

func TestEmulatedSink_SplitWrites(t *testing.T) {
	e := NewEmulatedSink(PortOptions{}, timeutil.NewMockClock(time.Unix(0, 0)))

	data := squareFrame()
	_, err := e.Write(data[:7])
	require.NoError(t, err)
	assert.Empty(t, e.LastFrame())

	_, err = e.Write(data[7:])
	require.NoError(t, err)
	assert.Len(t, e.LastFrame(), 5)
}
