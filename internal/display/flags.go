package display

import (
	"flag"
	"fmt"
	"time"

	"github.com/banshee-data/vectorgfx/internal/config"
)

// Flags are the command line options shared by the display tools. Any flag
// given explicitly overrides the matching config file value.
type Flags struct {
	Config       string
	Port         string
	Baud         int
	Sim          bool
	Preview      string
	PreviewEvery int
	StatsDB      string
	DebugListen  string
	HealthListen string
	FPS          float64
	Version      bool
}

// Register defines the shared flags on fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", config.DefaultConfigPath, "Path to the display config JSON (optional)")
	fs.StringVar(&f.Port, "port", "", "Serial port of the display (empty draws to the emulated device)")
	fs.IntVar(&f.Baud, "baud", 0, "Serial baud rate (default 115200)")
	fs.BoolVar(&f.Sim, "sim", false, "Draw to the emulated device even if a port is configured")
	fs.StringVar(&f.Preview, "preview", "", "Write a preview image of each frame to this path (.png, .svg, .pdf, .jpg)")
	fs.IntVar(&f.PreviewEvery, "preview-every", 30, "Only write every Nth frame to the preview image")
	fs.StringVar(&f.StatsDB, "stats-db", "", "Record frame statistics to this SQLite database")
	fs.StringVar(&f.DebugListen, "debug-listen", "", "Serve /debug/ pages on this address (e.g. localhost:8090)")
	fs.StringVar(&f.HealthListen, "health-listen", "", "Serve the gRPC health service on this address")
	fs.Float64Var(&f.FPS, "fps", 0, "Target frame rate (overrides frame_interval)")
	fs.BoolVar(&f.Version, "version", false, "Print version information and exit")
}

// LoadConfig reads the config file named by -config, if it exists, and
// applies the flags fs saw on top of it.
func (f *Flags) LoadConfig(fs *flag.FlagSet) (*config.DisplayConfig, error) {
	cfg, err := config.LoadOrDefault(f.Config)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(fs, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies every flag that was set on fs into cfg and re-validates it.
func (f *Flags) Apply(fs *flag.FlagSet, cfg *config.DisplayConfig) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "port":
			cfg.Port = &f.Port
		case "baud":
			cfg.BaudRate = &f.Baud
		case "preview":
			cfg.PreviewPath = &f.Preview
		case "stats-db":
			cfg.StatsDB = &f.StatsDB
		case "debug-listen":
			cfg.DebugListen = &f.DebugListen
		case "health-listen":
			cfg.HealthListen = &f.HealthListen
		case "fps":
			if f.FPS <= 0 {
				err = fmt.Errorf("-fps must be positive, got %v", f.FPS)
				return
			}
			interval := (time.Duration(float64(time.Second) / f.FPS)).String()
			cfg.FrameInterval = &interval
		}
	})
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
