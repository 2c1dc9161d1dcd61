// Package health exposes the standard gRPC health service so supervisors
// can tell whether frames are reaching the display.
package health

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
	"tailscale.com/tsweb"

	"github.com/banshee-data/vectorgfx/internal/httputil"
	"github.com/banshee-data/vectorgfx/internal/monitoring"
)

var logf = monitoring.Prefixed("health:")

// ServiceName is the health service name that tracks the display link. The
// empty service name reports the process itself and is always SERVING.
const ServiceName = "vectorgfx.Display"

// Server reports display health over gRPC. The display service starts as
// NOT_SERVING until the first SetServing(true).
type Server struct {
	grpc   *grpc.Server
	health *grpchealth.Server

	mu      sync.Mutex
	serving bool
}

// New returns a Server with the health service registered.
func New() *Server {
	s := &Server{
		grpc:   grpc.NewServer(),
		health: grpchealth.NewServer(),
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// SetServing records whether the last frame reached the sink. Only changes
// are logged.
func (s *Server) SetServing(serving bool) {
	s.mu.Lock()
	changed := s.serving != serving
	s.serving = serving
	s.mu.Unlock()

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
	if changed {
		logf("%s is now %s", ServiceName, status)
	}
}

// Serving reports the last value passed to SetServing.
func (s *Server) Serving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serving
}

// Check answers a health query without going through gRPC.
func (s *Server) Check(ctx context.Context, service string) (*healthpb.HealthCheckResponse, error) {
	return s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}

// Listen serves on addr until ctx is cancelled, then stops gracefully.
func (s *Server) Listen(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	logf("gRPC health service listening on %s", lis.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(lis) }()

	select {
	case <-ctx.Done():
		s.Stop()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}

// Stop marks every service NOT_SERVING and stops the gRPC server, waiting
// for in-flight calls.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// AttachAdminRoutes adds a /debug/health page showing the display service
// status as JSON.
func (s *Server) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)
	debug.HandleFunc("health", "gRPC health status of the display link", func(w http.ResponseWriter, r *http.Request) {
		resp, err := s.Check(r.Context(), ServiceName)
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("health check failed: %v", err))
			return
		}
		body, err := protojson.Marshal(resp)
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to encode status: %v", err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
}
