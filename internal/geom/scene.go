package geom

import "gonum.org/v1/gonum/floats"

// Scene2D is an ordered set of segments. Order is significant: the frame
// builder walks it as given, so chained segments cost no transit moves.
type Scene2D []Line2D

func (s Scene2D) Translate(dx, dy float64) Scene2D {
	out := make(Scene2D, len(s))
	for i, l := range s {
		out[i] = l.Translate(dx, dy)
	}
	return out
}

func (s Scene2D) Scale(sx, sy float64) Scene2D {
	out := make(Scene2D, len(s))
	for i, l := range s {
		out[i] = l.Scale(sx, sy)
	}
	return out
}

// MaxX returns the rightmost X coordinate in the scene, or 0 for an empty
// scene.
func (s Scene2D) MaxX() float64 {
	if len(s) == 0 {
		return 0
	}
	xs := make([]float64, len(s))
	for i, l := range s {
		xs[i] = l.MaxX()
	}
	return floats.Max(xs)
}

// Lift places every line of s at depth z.
func (s Scene2D) Lift(z float64) Scene3D {
	out := make(Scene3D, len(s))
	for i, l := range s {
		out[i] = LiftLine(l, z)
	}
	return out
}

// Scene3D is an ordered set of 3D segments.
type Scene3D []Line3D

func (s Scene3D) mapLines(f func(Line3D) Line3D) Scene3D {
	out := make(Scene3D, len(s))
	for i, l := range s {
		out[i] = f(l)
	}
	return out
}

func (s Scene3D) Translate(dx, dy, dz float64) Scene3D {
	return s.mapLines(func(l Line3D) Line3D { return l.Translate(dx, dy, dz) })
}

func (s Scene3D) Scale(sx, sy, sz float64) Scene3D {
	return s.mapLines(func(l Line3D) Line3D { return l.Scale(sx, sy, sz) })
}

func (s Scene3D) RotateX(angle float64) Scene3D {
	return s.mapLines(func(l Line3D) Line3D { return l.RotateX(angle) })
}

func (s Scene3D) RotateY(angle float64) Scene3D {
	return s.mapLines(func(l Line3D) Line3D { return l.RotateY(angle) })
}

func (s Scene3D) RotateZ(angle float64) Scene3D {
	return s.mapLines(func(l Line3D) Line3D { return l.RotateZ(angle) })
}

// Project applies cam to every endpoint. Depth is kept in Z.
func (s Scene3D) Project(cam Camera) Scene3D {
	return s.mapLines(func(l Line3D) Line3D { return l.Project(cam) })
}

// Flatten drops depth, giving the 2D scene the frame builder consumes.
func (s Scene3D) Flatten() Scene2D {
	out := make(Scene2D, len(s))
	for i, l := range s {
		out[i] = l.XY()
	}
	return out
}
