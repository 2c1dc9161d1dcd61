// Package demo holds the scenes drawn by the command-line tools: a rotating
// wireframe cube and text that turns with it.
package demo

import (
	"math"

	"github.com/banshee-data/vectorgfx/internal/geom"
)

// Angles is a rotation in degrees about each axis, applied X then Y then Z.
// Callers own the animation state and pass it to each Scene call.
type Angles struct {
	X, Y, Z float64
}

// Step returns a advanced by d degrees on every axis, kept in [0, 360).
func (a Angles) Step(d float64) Angles {
	return Angles{X: wrap(a.X + d), Y: wrap(a.Y + d), Z: wrap(a.Z + d)}
}

func wrap(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Rotate applies a to p.
func (a Angles) Rotate(p geom.Point3D) geom.Point3D {
	return p.RotateX(a.X).RotateY(a.Y).RotateZ(a.Z)
}

// Cube is a wireframe cube centred on the origin.
type Cube struct {
	Vertices [8]geom.Point3D
	// Faces index Vertices; each face is traced as a closed quad.
	Faces [6][4]int
}

// NewCube returns the unit cube spanning -1..1 on every axis.
func NewCube() Cube {
	return Cube{
		Vertices: [8]geom.Point3D{
			geom.Pt3(-1, 1, -1),
			geom.Pt3(1, 1, -1),
			geom.Pt3(1, -1, -1),
			geom.Pt3(-1, -1, -1),
			geom.Pt3(-1, 1, 1),
			geom.Pt3(1, 1, 1),
			geom.Pt3(1, -1, 1),
			geom.Pt3(-1, -1, 1),
		},
		Faces: [6][4]int{
			{0, 1, 2, 3}, {1, 5, 6, 2}, {5, 4, 7, 6},
			{4, 0, 3, 7}, {0, 4, 5, 1}, {3, 2, 6, 7},
		},
	}
}

// Scene rotates the cube by a, projects it through cam and returns the face
// outlines. Edges shared by two faces appear twice; the frame builder drops
// the repeats.
func (c Cube) Scene(a Angles, cam geom.Camera) geom.Scene2D {
	var projected [8]geom.Point2D
	for i, v := range c.Vertices {
		projected[i] = a.Rotate(v).Project(cam).XY()
	}

	out := make(geom.Scene2D, 0, len(c.Faces)*4)
	for _, f := range c.Faces {
		for i := range f {
			out = append(out, geom.Ln(projected[f[i]], projected[f[(i+1)%4]]))
		}
	}
	return out
}
