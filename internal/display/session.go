// Package display wires a renderer to its sink and to the optional frame
// log, preview image, debug pages and health service, as configured.
package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/banshee-data/vectorgfx/internal/config"
	"github.com/banshee-data/vectorgfx/internal/db"
	"github.com/banshee-data/vectorgfx/internal/geom"
	"github.com/banshee-data/vectorgfx/internal/health"
	"github.com/banshee-data/vectorgfx/internal/monitoring"
	"github.com/banshee-data/vectorgfx/internal/preview"
	"github.com/banshee-data/vectorgfx/internal/render"
	"github.com/banshee-data/vectorgfx/internal/sink"
	"github.com/banshee-data/vectorgfx/internal/timeutil"
)

// Options configures Open.
type Options struct {
	// Tool names the binary in the frame log's sessions table.
	Tool   string
	Config *config.DisplayConfig
	// Sim draws to an emulated device even when a port is configured.
	Sim bool
	// PreviewEvery is passed to the preview presenter.
	PreviewEvery int
	Clock        timeutil.Clock
	// Opener opens the serial port; nil uses the real device.
	Opener sink.PortOpener
}

type writeCloser interface {
	io.WriteCloser
	fmt.Stringer
}

// Session is an open display: a renderer and everything attached to it.
type Session struct {
	Renderer *render.Renderer
	Camera   geom.Camera

	sink     writeCloser
	clock    timeutil.Clock
	interval time.Duration
	db       *db.DB
	health   *health.Server
	preview  *preview.PlotPresenter

	debug     *http.Server
	debugLis  net.Listener
	healthLis net.Listener
	wg        sync.WaitGroup
}

// Open opens the sink, sends a sync so the device drops any frame left
// half-received by an earlier run, and starts the configured collaborators.
// On error everything opened so far is closed again.
func Open(opts Options) (s *Session, err error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.EmptyConfig()
	}
	clock := opts.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}

	s = &Session{
		Camera:   cfg.GetCamera(),
		clock:    clock,
		interval: cfg.GetFrameInterval(),
		health:   health.New(),
	}
	defer func() {
		if err != nil {
			s.Close()
			s = nil
		}
	}()

	if port := cfg.GetPort(); port != "" && !opts.Sim {
		var serialSink *sink.SerialSink
		if serialSink, err = sink.NewSerialSink(port, cfg.PortOptions(), opts.Opener); err != nil {
			return s, err
		}
		s.sink = serialSink
	} else {
		s.sink = sink.NewEmulatedSink(cfg.PortOptions(), clock)
	}
	monitoring.Logf("drawing to %s", s.sink)

	ropts := render.Options{
		Frame:  cfg.GetFrameOptions(),
		Clock:  clock,
		Health: s.health,
	}

	if path := cfg.GetStatsDB(); path != "" {
		if s.db, err = db.Open(path); err != nil {
			return s, fmt.Errorf("failed to open stats database: %w", err)
		}
		if err = s.db.MigrateUp(); err != nil {
			return s, err
		}
		if err = s.db.StartSession(opts.Tool, s.sink.String(), clock.Now()); err != nil {
			return s, err
		}
		monitoring.Logf("recording frames to %s (session %s)", path, s.db.Session())
		ropts.Recorder = s.db
	}

	if path := cfg.GetPreviewPath(); path != "" {
		if s.preview, err = preview.NewPlotPresenter(path, preview.Options{
			Every:        opts.PreviewEvery,
			ShowTransits: true,
		}); err != nil {
			return s, err
		}
		ropts.Presenter = s.preview
	}

	s.Renderer = render.New(s.sink, ropts)
	if err = s.Renderer.Sync(); err != nil {
		return s, fmt.Errorf("failed to reset display parser: %w", err)
	}

	if addr := cfg.GetHealthListen(); addr != "" {
		if s.healthLis, err = net.Listen("tcp", addr); err != nil {
			return s, fmt.Errorf("failed to listen for health checks: %w", err)
		}
		monitoring.Logf("gRPC health service listening on %s", s.healthLis.Addr())
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.health.Serve(s.healthLis); err != nil {
				monitoring.Logf("health server error: %v", err)
			}
		}()
	}

	if addr := cfg.GetDebugListen(); addr != "" {
		if err = s.startDebug(addr); err != nil {
			return s, err
		}
	}

	return s, nil
}

func (s *Session) startDebug(addr string) error {
	mux := http.NewServeMux()
	s.Renderer.AttachAdminRoutes(mux)
	s.health.AttachAdminRoutes(mux)
	if s.db != nil {
		if err := s.db.AttachAdminRoutes(mux); err != nil {
			return err
		}
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen for debug pages: %w", err)
	}
	s.debugLis = lis
	s.debug = &http.Server{Handler: mux}
	monitoring.Logf("debug pages on http://%s/debug/", lis.Addr())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.debug.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			monitoring.Logf("debug server error: %v", err)
		}
	}()
	return nil
}

// DebugAddr returns the address the debug pages are served on, or "".
func (s *Session) DebugAddr() string {
	if s.debugLis == nil {
		return ""
	}
	return s.debugLis.Addr().String()
}

// HealthAddr returns the address of the gRPC health service, or "".
func (s *Session) HealthAddr() string {
	if s.healthLis == nil {
		return ""
	}
	return s.healthLis.Addr().String()
}

// Interval returns the configured frame interval.
func (s *Session) Interval() time.Duration { return s.interval }

// DB returns the frame log, or nil when none is configured.
func (s *Session) DB() *db.DB { return s.db }

// Health returns the health reporter wired into the renderer.
func (s *Session) Health() *health.Server { return s.health }

// SceneFunc returns the lines to draw for frame n, counting from zero.
type SceneFunc func(n int) []geom.Line2D

// Run draws scene once per frame interval until ctx is done or, when
// frames is positive, that many frames have been attempted. A frame that
// fails to send is logged and the loop carries on; the health service
// reports the link as down until a frame gets through.
func (s *Session) Run(ctx context.Context, scene SceneFunc, frames int) error {
	pacer := render.NewPacer(s.interval, s.clock)
	for n := 0; frames <= 0 || n < frames; n++ {
		if err := pacer.Wait(ctx); err != nil {
			return ignoreCancel(err)
		}
		if _, err := s.Renderer.Draw(ctx, scene(n)); err != nil {
			if ctx.Err() != nil {
				return ignoreCancel(ctx.Err())
			}
			monitoring.Logf("frame %d: %v", n, err)
		}
	}
	return nil
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Close stops the servers and closes the frame log and sink.
func (s *Session) Close() error {
	var errs []error
	if s.debug != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		if err := s.debug.Shutdown(shutdownCtx); err != nil {
			monitoring.Logf("debug server shutdown error: %v", err)
			// Force close the server if graceful shutdown fails
			if err := s.debug.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		cancel()
	}
	if s.healthLis != nil {
		s.health.Stop()
	}
	s.wg.Wait()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close stats database: %w", err))
		}
	}
	if s.sink != nil {
		if err := s.sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sink: %w", err))
		}
	}
	return errors.Join(errs...)
}
