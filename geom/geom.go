// Package geom provides the closest-point and ray-intersection kernels
// used by the per-kind BVH query callbacks.
//
// All kernels operate on double-precision r3 vectors, never allocate and
// never mutate their inputs. Degenerate geometry (zero-length segments,
// collapsed triangles, rays parallel to a primitive) yields a "no result"
// return value rather than an error.
package geom

import (
	"github.com/golang/geo/r3"
)

// ClosestPointOnSegment returns the point on segment [a, b] closest to p,
// together with the parametric factor clamped to [0, 1]. A zero-length
// segment collapses to its endpoint with factor 0.
func ClosestPointOnSegment(p, a, b r3.Vector) (r3.Vector, float64) {
	ab := b.Sub(a)
	len2 := ab.Norm2()
	if len2 == 0 {
		return a, 0
	}

	t := p.Sub(a).Dot(ab) / len2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return a.Add(ab.Mul(t)), t
}

// TriangleNormal returns the unit normal of triangle (a, b, c), or the
// zero vector when the triangle is degenerate.
func TriangleNormal(a, b, c r3.Vector) r3.Vector {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Norm2() == 0 {
		return r3.Vector{}
	}
	return n.Normalize()
}

// ClosestPointOnTriangle returns the point on the filled triangle
// (a, b, c) closest to p.
//
// The interior region is resolved analytically: parametrize the triangle
// as q = a + u*e0 + v*e1 and minimize the distance to p. When the
// projection falls outside the triangle (or the triangle is degenerate),
// the closest point lies on one of the edges, so each edge is tested.
func ClosestPointOnTriangle(p, a, b, c r3.Vector) r3.Vector {
	const eps = 1e-12

	e0 := b.Sub(a)
	e1 := c.Sub(a)
	d := p.Sub(a)

	aa := e0.Norm2()
	bb := e0.Dot(e1)
	cc := e1.Norm2()

	// The determinant is zero only when e0 and e1 are parallel.
	if det := aa*cc - bb*bb; det > eps {
		u := (cc*e0.Dot(d) - bb*e1.Dot(d)) / det
		v := (-bb*e0.Dot(d) + aa*e1.Dot(d)) / det
		if u >= 0 && v >= 0 && u+v <= 1 {
			return a.Add(e0.Mul(u)).Add(e1.Mul(v))
		}
	}

	closest, _ := ClosestPointOnSegment(p, a, b)
	best := p.Sub(closest).Norm2()

	if q, _ := ClosestPointOnSegment(p, b, c); p.Sub(q).Norm2() < best {
		closest = q
		best = p.Sub(q).Norm2()
	}
	if q, _ := ClosestPointOnSegment(p, c, a); p.Sub(q).Norm2() < best {
		closest = q
	}

	return closest
}

// pointInTriangle reports whether p, assumed coplanar with (a, b, c),
// lies inside or on the triangle.
func pointInTriangle(p, a, b, c r3.Vector) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	if b.Sub(a).Cross(p.Sub(a)).Dot(n) < 0 {
		return false
	}
	if c.Sub(b).Cross(p.Sub(b)).Dot(n) < 0 {
		return false
	}
	if a.Sub(c).Cross(p.Sub(c)).Dot(n) < 0 {
		return false
	}
	return true
}
