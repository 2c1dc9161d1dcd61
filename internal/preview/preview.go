// Package preview renders frames to image files so a display session can be
// checked without the hardware.
package preview

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/vectorgfx/internal/frame"
	"github.com/banshee-data/vectorgfx/internal/protocol"
	"github.com/banshee-data/vectorgfx/internal/render"
)

var (
	beamColor    = color.RGBA{G: 200, A: 255}
	transitColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

var formats = map[string]bool{".png": true, ".svg": true, ".pdf": true, ".jpg": true, ".jpeg": true}

// Options controls a PlotPresenter.
type Options struct {
	// Every saves one frame in every Every frames. Zero or one saves all.
	Every int
	// ShowTransits draws beam-off moves as dashed grey lines.
	ShowTransits bool
	// Size is the width and height of the image. Defaults to 6 inches.
	Size vg.Length
}

// PlotPresenter writes the most recent frame to an image file, replacing it
// each time. The format follows the file extension.
type PlotPresenter struct {
	path   string
	format string
	opts   Options

	mu    sync.Mutex
	count int
	saved int
}

// NewPlotPresenter returns a presenter writing to path.
func NewPlotPresenter(path string, opts Options) (*PlotPresenter, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !formats[ext] {
		return nil, fmt.Errorf("unsupported preview format %q", ext)
	}
	if opts.Every < 1 {
		opts.Every = 1
	}
	if opts.Size <= 0 {
		opts.Size = 6 * vg.Inch
	}
	return &PlotPresenter{path: path, format: strings.TrimPrefix(ext, "."), opts: opts}, nil
}

// Present renders f and replaces the preview file when the frame is due.
func (p *PlotPresenter) Present(f frame.Frame, stats render.Stats) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.count++
	if (p.count-1)%p.opts.Every != 0 {
		return nil
	}

	plt, err := Plot(f, stats, p.opts.ShowTransits)
	if err != nil {
		return err
	}
	if err := p.save(plt); err != nil {
		return err
	}
	p.saved++
	return nil
}

// Saved returns how many images have been written.
func (p *PlotPresenter) Saved() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saved
}

// Path returns the output file.
func (p *PlotPresenter) Path() string { return p.path }

func (p *PlotPresenter) save(plt *plot.Plot) error {
	wt, err := plt.WriterTo(p.opts.Size, p.opts.Size, p.format)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".preview-*")
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	if _, err := wt.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write preview: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close preview: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace preview: %w", err)
	}
	return nil
}

// Plot draws the frame as the device would trace it, in device coordinates
// after encoding, with stats as the title.
func Plot(f frame.Frame, stats render.Stats, showTransits bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = stats.String()
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.X.Min, p.X.Max = 0, protocol.MaxCoord
	p.Y.Min, p.Y.Max = 0, protocol.MaxCoord

	beams, transits := traces(f)
	for _, run := range beams {
		l, err := plotter.NewLine(run)
		if err != nil {
			return nil, fmt.Errorf("failed to create line: %w", err)
		}
		l.Color = beamColor
		l.Width = vg.Points(1)
		p.Add(l)
	}
	if showTransits {
		for _, move := range transits {
			l, err := plotter.NewLine(move)
			if err != nil {
				return nil, fmt.Errorf("failed to create transit line: %w", err)
			}
			l.Color = transitColor
			l.Width = vg.Points(0.5)
			l.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
			p.Add(l)
		}
	}
	return p, nil
}

// traces splits the frame into beam-on polylines and beam-off moves. The
// first transit of a frame has no known start and is not returned.
func traces(f frame.Frame) (beams, transits []plotter.XYs) {
	var (
		run  plotter.XYs
		prev plotter.XY
		have bool
	)
	flush := func() {
		if len(run) >= 2 {
			beams = append(beams, run)
		}
		run = nil
	}

	for _, pt := range f.Points {
		x, y, _, _ := protocol.Decode(protocol.Encode(pt.X, pt.Y, pt.Intensity, pt.Flag))
		cur := plotter.XY{X: float64(x), Y: float64(y)}

		if pt.Kind == frame.Transit {
			flush()
			if have {
				transits = append(transits, plotter.XYs{prev, cur})
			}
			run = plotter.XYs{cur}
		} else {
			if len(run) == 0 && have {
				run = plotter.XYs{prev}
			}
			run = append(run, cur)
		}
		prev, have = cur, true
	}
	flush()
	return beams, transits
}
