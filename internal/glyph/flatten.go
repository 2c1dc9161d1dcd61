package glyph

import (
	"math"

	"github.com/banshee-data/vectorgfx/internal/geom"
)

// flattenQuadratic subdivides a quadratic Bezier until its control point is
// within flatness of the chord. The result starts at p0 and ends at p2.
func flattenQuadratic(p0, p1, p2 geom.Point2D, flatness float64, depth int) []geom.Point2D {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) <= flatness {
		return []geom.Point2D{p0, p2}
	}

	q0 := midpoint(p0, p1)
	q1 := midpoint(p1, p2)
	r := midpoint(q0, q1)

	left := flattenQuadratic(p0, q0, r, flatness, depth+1)
	right := flattenQuadratic(r, q1, p2, flatness, depth+1)
	return append(left[:len(left)-1], right...)
}

// flattenCubic is flattenQuadratic for cubic curves.
func flattenCubic(p0, p1, p2, p3 geom.Point2D, flatness float64, depth int) []geom.Point2D {
	if depth >= maxDepth ||
		math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3)) <= flatness {
		return []geom.Point2D{p0, p3}
	}

	q0 := midpoint(p0, p1)
	q1 := midpoint(p1, p2)
	q2 := midpoint(p2, p3)
	r0 := midpoint(q0, q1)
	r1 := midpoint(q1, q2)
	s := midpoint(r0, r1)

	left := flattenCubic(p0, q0, r0, s, flatness, depth+1)
	right := flattenCubic(s, r1, q2, p3, flatness, depth+1)
	return append(left[:len(left)-1], right...)
}

// distanceToLine returns the perpendicular distance from p to the line
// through a and b, or the distance to a when a and b coincide.
func distanceToLine(p, a, b geom.Point2D) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	cross := dx*(p.Y-a.Y) - dy*(p.X-a.X)
	return math.Abs(cross) / math.Sqrt(lenSq)
}

func midpoint(a, b geom.Point2D) geom.Point2D {
	return geom.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
}
