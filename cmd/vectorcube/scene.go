package main

import (
	"github.com/banshee-data/vectorgfx/internal/demo"
	"github.com/banshee-data/vectorgfx/internal/geom"
	"github.com/banshee-data/vectorgfx/internal/glyph"
)

// cubeScene is the spinning cube with its optional caption. It advances the
// rotation by step degrees on every axis each frame.
type cubeScene struct {
	cube    demo.Cube
	caption *demo.TextScene
	cam     geom.Camera
	step    float64
	angles  demo.Angles
}

func newCubeScene(text string, step float64, cam geom.Camera) (*cubeScene, error) {
	c := &cubeScene{cube: demo.NewCube(), cam: cam, step: step}
	if text == "" {
		return c, nil
	}

	shaper, err := glyph.NewDefaultShaper(demo.DefaultCaptionSize)
	if err != nil {
		return nil, err
	}
	ts, err := demo.NewTextScene(shaper, text)
	if err != nil {
		return nil, err
	}
	c.caption = &ts
	return c, nil
}

// Frame returns the lines for the current angles and then steps them.
// Caption lines come first, then the cube faces.
func (c *cubeScene) Frame(int) []geom.Line2D {
	var lines geom.Scene2D
	if c.caption != nil {
		lines = c.caption.Scene(c.angles, c.cam)
	}
	lines = append(lines, c.cube.Scene(c.angles, c.cam)...)
	c.angles = c.angles.Step(c.step)
	return lines
}
