// Package testutil provides shared test utilities and fixtures.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/banshee-data/vectorgfx/internal/monitoring"
)

// NewLocalRequest creates a test request that appears to come from
// localhost, which tsweb's debug access check allows.
func NewLocalRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "127.0.0.1:12345"
	return req
}

// ServeLocal sends a local GET request for path to h and returns the
// recorded response.
func ServeLocal(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, NewLocalRequest(http.MethodGet, path))
	return rec
}

// LogCapture collects messages sent to the monitoring logger.
type LogCapture struct {
	mu      sync.Mutex
	formats []string
}

// CaptureLogs redirects the monitoring logger for the duration of the test.
func CaptureLogs(t *testing.T) *LogCapture {
	t.Helper()
	c := &LogCapture{}
	prev := monitoring.Logf
	monitoring.SetLogger(func(format string, v ...interface{}) {
		c.mu.Lock()
		c.formats = append(c.formats, format)
		c.mu.Unlock()
	})
	t.Cleanup(func() { monitoring.Logf = prev })
	return c
}

// Formats returns the format strings logged so far.
func (c *LogCapture) Formats() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.formats...)
}
