// Package config loads the display configuration file. Every field is
// optional; the Get* accessors supply defaults for anything left unset, so a
// partial file (or none at all) is valid.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/vectorgfx/internal/frame"
	"github.com/banshee-data/vectorgfx/internal/geom"
	"github.com/banshee-data/vectorgfx/internal/protocol"
	"github.com/banshee-data/vectorgfx/internal/sink"
)

// DefaultConfigPath is where the tools look for a config file when -config
// is not given.
const DefaultConfigPath = "config/display.json"

const maxFileSize = 1 * 1024 * 1024 // 1MB

// DisplayConfig represents the root configuration for a display session.
type DisplayConfig struct {
	// Serial link
	Port     *string `json:"port,omitempty"`
	BaudRate *int    `json:"baud_rate,omitempty"`
	DataBits *int    `json:"data_bits,omitempty"`
	StopBits *int    `json:"stop_bits,omitempty"`
	Parity   *string `json:"parity,omitempty"`

	// Projection
	ViewportWidth  *float64 `json:"viewport_width,omitempty"`
	ViewportHeight *float64 `json:"viewport_height,omitempty"`
	FOV            *float64 `json:"fov,omitempty"`
	ViewerDistance *float64 `json:"viewer_distance,omitempty"`

	// Frame builder
	DrawIntensity    *int  `json:"draw_intensity,omitempty"`
	TransitIntensity *int  `json:"transit_intensity,omitempty"`
	PointFlag        *int  `json:"point_flag,omitempty"`
	AllowDuplicates  *bool `json:"allow_duplicates,omitempty"`

	// Pacing
	FrameInterval *string `json:"frame_interval,omitempty"` // duration string like "16ms"

	// Outputs
	StatsDB      *string `json:"stats_db,omitempty"`
	PreviewPath  *string `json:"preview_path,omitempty"`
	DebugListen  *string `json:"debug_listen,omitempty"`
	HealthListen *string `json:"health_listen,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyConfig returns a DisplayConfig with all fields unset.
func EmptyConfig() *DisplayConfig {
	return &DisplayConfig{}
}

// DefaultConfig returns a DisplayConfig with every field set to its default.
func DefaultConfig() *DisplayConfig {
	c := EmptyConfig()
	return &DisplayConfig{
		Port:             ptrString(c.GetPort()),
		BaudRate:         ptrInt(c.GetBaudRate()),
		DataBits:         ptrInt(8),
		StopBits:         ptrInt(1),
		Parity:           ptrString("N"),
		ViewportWidth:    ptrFloat64(4096),
		ViewportHeight:   ptrFloat64(4096),
		FOV:              ptrFloat64(4096),
		ViewerDistance:   ptrFloat64(4),
		DrawIntensity:    ptrInt(int(frame.DefaultDrawIntensity)),
		TransitIntensity: ptrInt(int(frame.DefaultTransitIntensity)),
		PointFlag:        ptrInt(int(frame.DefaultFlag)),
		AllowDuplicates:  ptrBool(false),
		FrameInterval:    ptrString("16ms"),
	}
}

// Load reads a DisplayConfig from a JSON file. The file must have a .json
// extension and be no larger than 1MB.
func Load(path string) (*DisplayConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path if it exists and otherwise returns an empty
// config, so the tools run without a config file.
func LoadOrDefault(path string) (*DisplayConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return EmptyConfig(), nil
	}
	return Load(path)
}

// Validate checks that the configuration values are valid.
func (c *DisplayConfig) Validate() error {
	if _, err := c.PortOptions().Normalize(); err != nil {
		return err
	}

	if c.FOV != nil && *c.FOV <= 0 {
		return fmt.Errorf("fov must be positive, got %f", *c.FOV)
	}
	if c.ViewportWidth != nil && *c.ViewportWidth <= 0 {
		return fmt.Errorf("viewport_width must be positive, got %f", *c.ViewportWidth)
	}
	if c.ViewportHeight != nil && *c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport_height must be positive, got %f", *c.ViewportHeight)
	}

	for name, v := range map[string]*int{
		"draw_intensity":    c.DrawIntensity,
		"transit_intensity": c.TransitIntensity,
	} {
		if v != nil && (*v < 0 || *v > protocol.MaxIntensity) {
			return fmt.Errorf("%s must be between 0 and %d, got %d", name, protocol.MaxIntensity, *v)
		}
	}
	// Flag 0 would let a beam-off point at the origin encode as four zero
	// bytes, which the device treats as a sync.
	if c.PointFlag != nil && (*c.PointFlag < 1 || *c.PointFlag > 3) {
		return fmt.Errorf("point_flag must be between 1 and 3, got %d", *c.PointFlag)
	}

	if c.FrameInterval != nil && *c.FrameInterval != "" {
		d, err := time.ParseDuration(*c.FrameInterval)
		if err != nil {
			return fmt.Errorf("invalid frame_interval '%s': %w", *c.FrameInterval, err)
		}
		if d < 0 {
			return fmt.Errorf("frame_interval must not be negative, got %s", d)
		}
	}

	return nil
}

// GetPort returns the serial device path. An empty string means no device.
func (c *DisplayConfig) GetPort() string {
	if c.Port == nil {
		return ""
	}
	return *c.Port
}

// GetBaudRate returns the configured baud rate or the default.
func (c *DisplayConfig) GetBaudRate() int {
	if c.BaudRate == nil {
		return sink.DefaultBaudRate
	}
	return *c.BaudRate
}

// PortOptions returns the serial options. Unset fields are left zero and
// filled in by sink.PortOptions.Normalize.
func (c *DisplayConfig) PortOptions() sink.PortOptions {
	var opts sink.PortOptions
	if c.BaudRate != nil {
		opts.BaudRate = *c.BaudRate
	}
	if c.DataBits != nil {
		opts.DataBits = *c.DataBits
	}
	if c.StopBits != nil {
		opts.StopBits = *c.StopBits
	}
	if c.Parity != nil {
		opts.Parity = *c.Parity
	}
	return opts
}

// GetCamera returns the projection parameters.
func (c *DisplayConfig) GetCamera() geom.Camera {
	cam := geom.DefaultCamera()
	if c.ViewportWidth != nil {
		cam.Width = *c.ViewportWidth
	}
	if c.ViewportHeight != nil {
		cam.Height = *c.ViewportHeight
	}
	if c.FOV != nil {
		cam.FOV = *c.FOV
	}
	if c.ViewerDistance != nil {
		cam.Distance = *c.ViewerDistance
	}
	return cam
}

// GetFrameOptions returns the frame builder options.
func (c *DisplayConfig) GetFrameOptions() frame.Options {
	opts := frame.DefaultOptions()
	if c.DrawIntensity != nil {
		opts.DrawIntensity = uint8(*c.DrawIntensity)
	}
	if c.TransitIntensity != nil {
		opts.TransitIntensity = uint8(*c.TransitIntensity)
	}
	if c.PointFlag != nil {
		opts.Flag = uint8(*c.PointFlag)
	}
	if c.AllowDuplicates != nil {
		opts.AllowDuplicates = *c.AllowDuplicates
	}
	return opts
}

// GetFrameInterval parses and returns the FrameInterval as a time.Duration.
func (c *DisplayConfig) GetFrameInterval() time.Duration {
	if c.FrameInterval == nil || *c.FrameInterval == "" {
		return 16 * time.Millisecond // default, ~60 fps
	}
	d, err := time.ParseDuration(*c.FrameInterval)
	if err != nil {
		return 16 * time.Millisecond // default on parse error
	}
	return d
}

// GetStatsDB returns the frame log database path, or "" when disabled.
func (c *DisplayConfig) GetStatsDB() string {
	if c.StatsDB == nil {
		return ""
	}
	return *c.StatsDB
}

// GetPreviewPath returns the preview PNG path, or "" when disabled.
func (c *DisplayConfig) GetPreviewPath() string {
	if c.PreviewPath == nil {
		return ""
	}
	return *c.PreviewPath
}

// GetDebugListen returns the debug HTTP listen address, or "" when disabled.
func (c *DisplayConfig) GetDebugListen() string {
	if c.DebugListen == nil {
		return ""
	}
	return *c.DebugListen
}

// GetHealthListen returns the gRPC health listen address, or "" when
// disabled.
func (c *DisplayConfig) GetHealthListen() string {
	if c.HealthListen == nil {
		return ""
	}
	return *c.HealthListen
}
