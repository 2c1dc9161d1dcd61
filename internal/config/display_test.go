package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/vectorgfx/internal/frame"
	"github.com/banshee-data/vectorgfx/internal/geom"
	"github.com/banshee-data/vectorgfx/internal/sink"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmptyConfig_Getters(t *testing.T) {
	cfg := EmptyConfig()

	assert.Equal(t, "", cfg.GetPort())
	assert.Equal(t, 115200, cfg.GetBaudRate())
	assert.Equal(t, geom.DefaultCamera(), cfg.GetCamera())
	assert.Equal(t, frame.DefaultOptions(), cfg.GetFrameOptions())
	assert.Equal(t, 16*time.Millisecond, cfg.GetFrameInterval())
	assert.Equal(t, sink.PortOptions{}, cfg.PortOptions())
	assert.Empty(t, cfg.GetStatsDB())
	assert.Empty(t, cfg.GetPreviewPath())
	assert.Empty(t, cfg.GetDebugListen())
	assert.Empty(t, cfg.GetHealthListen())
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_MatchesGetters(t *testing.T) {
	def := DefaultConfig()
	empty := EmptyConfig()

	require.NoError(t, def.Validate())
	assert.Equal(t, empty.GetCamera(), def.GetCamera())
	assert.Equal(t, empty.GetFrameOptions(), def.GetFrameOptions())
	assert.Equal(t, empty.GetFrameInterval(), def.GetFrameInterval())

	normDef, err := def.PortOptions().Normalize()
	require.NoError(t, err)
	normEmpty, err := empty.PortOptions().Normalize()
	require.NoError(t, err)
	assert.Equal(t, normEmpty, normDef)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "display.json", `{
  "port": "/dev/ttyUSB0",
  "baud_rate": 921600,
  "parity": "none",
  "fov": 2048,
  "viewer_distance": 6,
  "draw_intensity": 63,
  "allow_duplicates": true,
  "frame_interval": "33ms",
  "stats_db": "frames.db",
  "debug_listen": ":8080"
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.GetPort())
	assert.Equal(t, 921600, cfg.GetBaudRate())
	assert.Equal(t, sink.PortOptions{BaudRate: 921600, Parity: "none"}, cfg.PortOptions())
	assert.Equal(t, geom.Camera{Width: 4096, Height: 4096, FOV: 2048, Distance: 6}, cfg.GetCamera())

	opts := cfg.GetFrameOptions()
	assert.Equal(t, uint8(63), opts.DrawIntensity)
	assert.Equal(t, frame.DefaultTransitIntensity, opts.TransitIntensity)
	assert.Equal(t, frame.DefaultFlag, opts.Flag)
	assert.True(t, opts.AllowDuplicates)

	assert.Equal(t, 33*time.Millisecond, cfg.GetFrameInterval())
	assert.Equal(t, "frames.db", cfg.GetStatsDB())
	assert.Equal(t, ":8080", cfg.GetDebugListen())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"wrong extension", "display.yaml", `{}`, ".json extension"},
		{"bad json", "display.json", `{"fov": }`, "parse config JSON"},
		{"bad baud", "display.json", `{"baud_rate": 1234}`, "baud rate"},
		{"bad parity", "display.json", `{"parity": "mark"}`, "parity"},
		{"negative fov", "display.json", `{"fov": -1}`, "fov"},
		{"intensity range", "display.json", `{"draw_intensity": 64}`, "draw_intensity"},
		{"zero flag", "display.json", `{"point_flag": 0}`, "point_flag"},
		{"bad interval", "display.json", `{"frame_interval": "soon"}`, "frame_interval"},
		{"negative interval", "display.json", `{"frame_interval": "-1s"}`, "frame_interval"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.file, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat config file")
}

func TestLoad_TooLarge(t *testing.T) {
	big := `{"port": "` + strings.Repeat("x", maxFileSize) + `"}`
	_, err := Load(writeConfig(t, "big.json", big))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, EmptyConfig(), cfg)

	cfg, err = LoadOrDefault(writeConfig(t, "display.json", `{"port": "/dev/ttyACM0"}`))
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", cfg.GetPort())
}

func TestGetFrameInterval_InvalidFallsBack(t *testing.T) {
	cfg := &DisplayConfig{FrameInterval: ptrString("nope")}
	assert.Equal(t, 16*time.Millisecond, cfg.GetFrameInterval())
}
