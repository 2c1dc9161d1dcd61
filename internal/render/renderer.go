// Package render runs the draw cycle: build a frame from 2D segments, encode
// it, send it to a sink and report timings.
package render

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/banshee-data/vectorgfx/internal/frame"
	"github.com/banshee-data/vectorgfx/internal/geom"
	"github.com/banshee-data/vectorgfx/internal/monitoring"
	"github.com/banshee-data/vectorgfx/internal/protocol"
	"github.com/banshee-data/vectorgfx/internal/timeutil"
)

// DefaultHistorySize is the number of recent Stats kept for the debug pages.
const DefaultHistorySize = 300

var logf = monitoring.Prefixed("render:")

// Presenter shows a built frame somewhere other than the device, e.g. a
// preview image.
type Presenter interface {
	Present(f frame.Frame, stats Stats) error
}

// StatsRecorder persists per-frame statistics.
type StatsRecorder interface {
	RecordFrame(stats Stats) error
}

// HealthReporter is told whether the last frame reached the sink.
type HealthReporter interface {
	SetServing(serving bool)
}

// Options configures a Renderer. Only Frame is required; the zero value of
// the others disables them. A zero Frame.Flag is replaced by
// frame.DefaultFlag.
type Options struct {
	Frame       frame.Options
	Clock       timeutil.Clock
	Presenter   Presenter
	Recorder    StatsRecorder
	Health      HealthReporter
	HistorySize int
}

// Renderer draws frames to a single sink. Draw is not safe for concurrent
// use; the debug snapshot accessors are.
type Renderer struct {
	sink      io.Writer
	builder   *frame.Builder
	clock     timeutil.Clock
	presenter Presenter
	recorder  StatsRecorder
	health    HealthReporter

	mu        sync.Mutex
	frames    int
	last      Stats
	lastData  []byte
	history   []Stats
	maxHist   int
	lastError error
}

// New returns a Renderer writing to sink.
func New(sink io.Writer, opts Options) *Renderer {
	clock := opts.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	hist := opts.HistorySize
	if hist <= 0 {
		hist = DefaultHistorySize
	}
	return &Renderer{
		sink:      sink,
		builder:   frame.NewBuilder(opts.Frame),
		clock:     clock,
		presenter: opts.Presenter,
		recorder:  opts.Recorder,
		health:    opts.Health,
		maxHist:   hist,
	}
}

// Draw builds a frame from lines and sends it. Transport errors are returned
// wrapped; errors from the presenter or recorder are only logged.
func (r *Renderer) Draw(ctx context.Context, lines []geom.Line2D) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	start := r.clock.Now()
	f := r.builder.Build(lines)
	data := protocol.MarshalFrame(f.Points)
	built := r.clock.Now()

	_, err := protocol.Send(r.sink, data)
	end := r.clock.Now()

	stats := Stats{
		At:       start,
		Lines:    f.Segments,
		Points:   len(f.Points),
		Transits: f.TransitCount(),
		Bytes:    len(data),
		DrawTime: built.Sub(start),
		TxTime:   end.Sub(built),
		Total:    end.Sub(start),
	}
	stats.FPS = fps(stats.Total)

	if err != nil {
		r.setError(err)
		if r.health != nil {
			r.health.SetServing(false)
		}
		return stats, fmt.Errorf("emit frame: %w", err)
	}

	r.snapshot(stats, data)
	if r.health != nil {
		r.health.SetServing(true)
	}
	if r.recorder != nil {
		if err := r.recorder.RecordFrame(stats); err != nil {
			logf("record frame: %v", err)
		}
	}
	if r.presenter != nil {
		if err := r.presenter.Present(f, stats); err != nil {
			logf("present frame: %v", err)
		}
	}
	return stats, nil
}

// Sync sends a bare sync prefix so the device discards any partial frame.
func (r *Renderer) Sync() error {
	if err := protocol.Sync(r.sink); err != nil {
		r.setError(err)
		return fmt.Errorf("sync: %w", err)
	}
	return nil
}

func (r *Renderer) setError(err error) {
	r.mu.Lock()
	r.lastError = err
	r.mu.Unlock()
}

func (r *Renderer) snapshot(stats Stats, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	r.last = stats
	r.lastData = data
	r.lastError = nil
	r.history = append(r.history, stats)
	if over := len(r.history) - r.maxHist; over > 0 {
		r.history = append(r.history[:0], r.history[over:]...)
	}
}

// Frames returns the number of frames sent successfully.
func (r *Renderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Last returns the stats and encoded bytes of the most recent successful
// frame. ok is false before the first one.
func (r *Renderer) Last() (stats Stats, data []byte, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frames == 0 {
		return Stats{}, nil, false
	}
	out := make([]byte, len(r.lastData))
	copy(out, r.lastData)
	return r.last, out, true
}

// History returns the stats of recent frames, oldest first.
func (r *Renderer) History() []Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Stats, len(r.history))
	copy(out, r.history)
	return out
}

// LastError returns the most recent transport error, cleared by the next
// successful frame.
func (r *Renderer) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastError
}
