package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/banshee-data/vectorgfx/internal/display"
	"github.com/banshee-data/vectorgfx/internal/geom"
	"github.com/banshee-data/vectorgfx/internal/version"
)

var (
	common display.Flags

	size     = flag.Float64("size", 500, "Font size (em height) in device units")
	xpos     = flag.Float64("x", 0, "Starting X position")
	ypos     = flag.Float64("y", 0, "Starting Y position, measured down from the top")
	fontFile = flag.String("font-file", "", "Load a TrueType or OpenType font from this file instead of Go Regular")
	loop     = flag.Bool("loop", false, "Keep redrawing the text until interrupted")
)

func init() {
	common.Register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] text...\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if common.Version {
		fmt.Println(version.String("vectortext"))
		return
	}

	text := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(text) == "" {
		flag.Usage()
		log.Fatal("No text!")
	}

	cfg, err := common.LoadConfig(flag.CommandLine)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, text, display.Options{
		Tool:         "vectortext",
		Config:       cfg,
		Sim:          common.Sim,
		PreviewEvery: common.PreviewEvery,
	}); err != nil {
		log.Fatalf("vectortext: %v", err)
	}
}

func run(ctx context.Context, text string, opts display.Options) error {
	lines, err := layoutText(text, *fontFile, *size, *xpos, *ypos)
	if err != nil {
		return err
	}

	s, err := display.Open(opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	stats, err := s.Renderer.Draw(ctx, lines)
	if err != nil {
		return err
	}
	fmt.Println(transmitReport(len(lines), stats.TotalMillis()))

	if !*loop {
		return nil
	}
	return s.Run(ctx, func(int) []geom.Line2D { return lines }, 0)
}

func transmitReport(lines int, ms float64) string {
	return fmt.Sprintf("%d lines transmitted in %.3f ms", lines, ms)
}
