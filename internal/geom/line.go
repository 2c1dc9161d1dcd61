package geom

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Line2D is an undirected segment between two points. Line2D{a, b} and
// Line2D{b, a} are the same line: Equal reports true and Key and Hash agree.
type Line2D struct {
	P1, P2 Point2D
}

// Ln is a shorthand constructor for Line2D.
func Ln(p1, p2 Point2D) Line2D {
	return Line2D{P1: p1, P2: p2}
}

// LineKey2D is the canonical, comparable form of a Line2D: its endpoints
// ordered so that A is not greater than B. It is usable as a map key.
type LineKey2D struct {
	A, B Point2D
}

// Key returns the canonical endpoint ordering of l.
func (l Line2D) Key() LineKey2D {
	if l.P2.Less(l.P1) {
		return LineKey2D{l.P2, l.P1}
	}
	return LineKey2D{l.P1, l.P2}
}

// Equal reports whether l and o join the same two points, in either
// direction.
func (l Line2D) Equal(o Line2D) bool {
	return (l.P1.Equal(o.P1) && l.P2.Equal(o.P2)) ||
		(l.P1.Equal(o.P2) && l.P2.Equal(o.P1))
}

// Hash is computed over Key, so it is independent of endpoint order.
func (l Line2D) Hash() uint64 {
	k := l.Key()
	h := fnv.New64a()
	writeFloats(h, k.A.X, k.A.Y, k.B.X, k.B.Y)
	return h.Sum64()
}

// Reversed returns the same line traversed from P2 to P1.
func (l Line2D) Reversed() Line2D {
	return Line2D{l.P2, l.P1}
}

func (l Line2D) Translate(dx, dy float64) Line2D {
	return Line2D{l.P1.Translate(dx, dy), l.P2.Translate(dx, dy)}
}

func (l Line2D) Scale(sx, sy float64) Line2D {
	return Line2D{l.P1.Scale(sx, sy), l.P2.Scale(sx, sy)}
}

// MaxX returns the larger X coordinate of the two endpoints.
func (l Line2D) MaxX() float64 {
	return math.Max(l.P1.X, l.P2.X)
}

// ZeroLength reports whether both endpoints land on the same integer device
// coordinate.
func (l Line2D) ZeroLength() bool {
	x1, y1 := l.P1.Truncated()
	x2, y2 := l.P2.Truncated()
	return x1 == x2 && y1 == y2
}

func (l Line2D) String() string {
	return fmt.Sprintf("Line2D((%g, %g), (%g, %g))", l.P1.X, l.P1.Y, l.P2.X, l.P2.Y)
}

// Line3D is an undirected segment in 3D space, with the same equality rules
// as Line2D.
type Line3D struct {
	P1, P2 Point3D
}

// Ln3 is a shorthand constructor for Line3D.
func Ln3(p1, p2 Point3D) Line3D {
	return Line3D{P1: p1, P2: p2}
}

// LineKey3D is the canonical, comparable form of a Line3D.
type LineKey3D struct {
	A, B Point3D
}

func (l Line3D) Key() LineKey3D {
	if l.P2.Less(l.P1) {
		return LineKey3D{l.P2, l.P1}
	}
	return LineKey3D{l.P1, l.P2}
}

func (l Line3D) Equal(o Line3D) bool {
	return (l.P1.Equal(o.P1) && l.P2.Equal(o.P2)) ||
		(l.P1.Equal(o.P2) && l.P2.Equal(o.P1))
}

func (l Line3D) Hash() uint64 {
	k := l.Key()
	h := fnv.New64a()
	writeFloats(h, k.A.X, k.A.Y, k.A.Z, k.B.X, k.B.Y, k.B.Z)
	return h.Sum64()
}

func (l Line3D) Translate(dx, dy, dz float64) Line3D {
	return Line3D{l.P1.Translate(dx, dy, dz), l.P2.Translate(dx, dy, dz)}
}

func (l Line3D) Scale(sx, sy, sz float64) Line3D {
	return Line3D{l.P1.Scale(sx, sy, sz), l.P2.Scale(sx, sy, sz)}
}

func (l Line3D) RotateX(angle float64) Line3D {
	return Line3D{l.P1.RotateX(angle), l.P2.RotateX(angle)}
}

func (l Line3D) RotateY(angle float64) Line3D {
	return Line3D{l.P1.RotateY(angle), l.P2.RotateY(angle)}
}

func (l Line3D) RotateZ(angle float64) Line3D {
	return Line3D{l.P1.RotateZ(angle), l.P2.RotateZ(angle)}
}

// XY drops the depth of both endpoints.
func (l Line3D) XY() Line2D {
	return Line2D{l.P1.XY(), l.P2.XY()}
}

// LiftLine places a 2D line at depth z.
func LiftLine(l Line2D, z float64) Line3D {
	return Line3D{Lift(l.P1, z), Lift(l.P2, z)}
}

func (l Line3D) String() string {
	return fmt.Sprintf("Line3D((%g, %g, %g), (%g, %g, %g))",
		l.P1.X, l.P1.Y, l.P1.Z, l.P2.X, l.P2.Y, l.P2.Z)
}
