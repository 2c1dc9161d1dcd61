package demo

import (
	"github.com/banshee-data/vectorgfx/internal/geom"
	"github.com/banshee-data/vectorgfx/internal/glyph"
)

// DefaultCaptionSize is the em height of cube captions in world units.
const DefaultCaptionSize = 0.35

// TextScene is a line of text placed in the cube's world space so it can be
// rotated and projected with it.
type TextScene struct {
	lines geom.Scene3D
}

// NewTextScene shapes text and positions it on the cube's front face, just
// inside the top-left corner.
func NewTextScene(s *glyph.Shaper, text string) (TextScene, error) {
	lines, err := s.LinesForText(text)
	if err != nil {
		return TextScene{}, err
	}
	placed := geom.Scene2D(lines).
		Lift(0).
		Translate(0.1, 0.2, 0).
		Translate(-1, 0, -1)
	return TextScene{lines: placed}, nil
}

// Len returns the number of segments in the text.
func (t TextScene) Len() int { return len(t.lines) }

// Scene rotates the text by a and projects it through cam.
func (t TextScene) Scene(a Angles, cam geom.Camera) geom.Scene2D {
	return t.lines.
		RotateX(a.X).
		RotateY(a.Y).
		RotateZ(a.Z).
		Project(cam).
		Flatten()
}
