package testutil

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/vectorgfx/internal/monitoring"
)

func TestNewLocalRequest(t *testing.T) {
	req := NewLocalRequest(http.MethodGet, "/debug/frame")
	assert.Equal(t, "127.0.0.1:12345", req.RemoteAddr)
	assert.Equal(t, "/debug/frame", req.URL.Path)
}

func TestServeLocal(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(r.RemoteAddr))
	})
	rec := ServeLocal(h, "/x")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "127.0.0.1:12345", rec.Body.String())
}

func TestCaptureLogs(t *testing.T) {
	var c *LogCapture
	t.Run("inner", func(t *testing.T) {
		c = CaptureLogs(t)
		monitoring.Logf("hello %d", 1)
	})
	assert.Equal(t, []string{"hello %d"}, c.Formats())

	// Restored after the subtest.
	monitoring.SetLogger(nil)
	monitoring.Logf("muted")
	assert.Len(t, c.Formats(), 1)
}
