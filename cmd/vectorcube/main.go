package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/banshee-data/vectorgfx/internal/display"
	"github.com/banshee-data/vectorgfx/internal/version"
)

var (
	common display.Flags

	caption = flag.String("text", "Hello, world!", "Caption drawn on the cube's front face (empty for none)")
	step    = flag.Float64("step", 1, "Rotation per frame in degrees about each axis")
	frames  = flag.Int("frames", 0, "Stop after this many frames (0 runs until interrupted)")
)

func init() {
	common.Register(flag.CommandLine)
}

func main() {
	flag.Parse()

	if common.Version {
		fmt.Println(version.String("vectorcube"))
		return
	}

	cfg, err := common.LoadConfig(flag.CommandLine)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, display.Options{
		Tool:         "vectorcube",
		Config:       cfg,
		Sim:          common.Sim,
		PreviewEvery: common.PreviewEvery,
	}); err != nil {
		log.Fatalf("vectorcube: %v", err)
	}
	log.Printf("Graceful shutdown complete")
}

func run(ctx context.Context, opts display.Options) error {
	s, err := display.Open(opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	scene, err := newCubeScene(*caption, *step, s.Camera)
	if err != nil {
		return err
	}

	if err := s.Run(ctx, scene.Frame, *frames); err != nil {
		return err
	}
	if stats, _, ok := s.Renderer.Last(); ok {
		log.Printf("drew %d frames, last: %s", s.Renderer.Frames(), stats)
	}
	return nil
}
