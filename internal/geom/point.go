// Package geom provides the immutable 2D and 3D value types used to build
// vector scenes: points, undirected line segments, ordered scenes, the
// rigid transforms that act on them, and a simple perspective projection.
//
// Every transform returns a new value. Nothing in this package mutates its
// receiver, so scenes can be rebuilt from caller-owned parameters on every
// render cycle.
package geom

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Point2D is a point in the plane. Device space is 0-4095 on both axes.
type Point2D struct {
	X, Y float64
}

// Pt is a shorthand constructor for Point2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Equal reports whether p and q have identical coordinates.
func (p Point2D) Equal(q Point2D) bool {
	return p.X == q.X && p.Y == q.Y
}

// Less orders points lexicographically by X, then Y.
func (p Point2D) Less(q Point2D) bool {
	return p.X < q.X || (p.X == q.X && p.Y < q.Y)
}

// Hash returns a hash of the exact coordinate values.
func (p Point2D) Hash() uint64 {
	h := fnv.New64a()
	writeFloats(h, p.X, p.Y)
	return h.Sum64()
}

// Translate returns p moved by (dx, dy).
func (p Point2D) Translate(dx, dy float64) Point2D {
	return Point2D{p.X + dx, p.Y + dy}
}

// Scale returns p with each axis multiplied by its factor.
func (p Point2D) Scale(sx, sy float64) Point2D {
	return Point2D{p.X * sx, p.Y * sy}
}

// Truncated returns the integer device coordinates of p, truncating toward
// zero.
func (p Point2D) Truncated() (int64, int64) {
	return Trunc(p.X), Trunc(p.Y)
}

// Point3D is a point in right-handed 3D space.
type Point3D struct {
	X, Y, Z float64
}

// Pt3 is a shorthand constructor for Point3D.
func Pt3(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Equal reports whether p and q have identical coordinates.
func (p Point3D) Equal(q Point3D) bool {
	return p.X == q.X && p.Y == q.Y && p.Z == q.Z
}

// Less orders points lexicographically by X, then Y, then Z.
func (p Point3D) Less(q Point3D) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.Z < q.Z
}

// Hash returns a hash of the exact coordinate values.
func (p Point3D) Hash() uint64 {
	h := fnv.New64a()
	writeFloats(h, p.X, p.Y, p.Z)
	return h.Sum64()
}

func (p Point3D) Translate(dx, dy, dz float64) Point3D {
	return Point3D{p.X + dx, p.Y + dy, p.Z + dz}
}

func (p Point3D) Scale(sx, sy, sz float64) Point3D {
	return Point3D{p.X * sx, p.Y * sy, p.Z * sz}
}

// RotateX rotates p about the X axis by angle degrees.
func (p Point3D) RotateX(angle float64) Point3D {
	sin, cos := math.Sincos(radians(angle))
	return Point3D{
		X: p.X,
		Y: p.Y*cos - p.Z*sin,
		Z: p.Y*sin + p.Z*cos,
	}
}

// RotateY rotates p about the Y axis by angle degrees.
func (p Point3D) RotateY(angle float64) Point3D {
	sin, cos := math.Sincos(radians(angle))
	return Point3D{
		X: p.Z*sin + p.X*cos,
		Y: p.Y,
		Z: p.Z*cos - p.X*sin,
	}
}

// RotateZ rotates p about the Z axis by angle degrees.
func (p Point3D) RotateZ(angle float64) Point3D {
	sin, cos := math.Sincos(radians(angle))
	return Point3D{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
		Z: p.Z,
	}
}

// XY drops the depth component.
func (p Point3D) XY() Point2D {
	return Point2D{p.X, p.Y}
}

// Lift places a 2D point at depth z.
func Lift(p Point2D, z float64) Point3D {
	return Point3D{p.X, p.Y, z}
}

// Trunc converts v to an integer, truncating toward zero. Values that do not
// fit in an int64 (including NaN and the infinities) become math.MinInt64 so
// that the result does not depend on the CPU's float conversion rules.
func Trunc(v float64) int64 {
	if math.IsNaN(v) || v >= math.MaxInt64 || v < math.MinInt64 {
		return math.MinInt64
	}
	return int64(v)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

type byteWriter interface {
	Write([]byte) (int, error)
}

func writeFloats(w byteWriter, vs ...float64) {
	var buf [8]byte
	for _, v := range vs {
		// -0 == +0, so they must hash the same.
		if v == 0 {
			v = 0
		}
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		w.Write(buf[:])
	}
}
