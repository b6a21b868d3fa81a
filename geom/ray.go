package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// rayEpsilon is the tolerance applied to the ray-triangle determinant and
// barycentric bounds. The epsilon-tolerant algorithm is used for every
// triangle path so that rays grazing an edge shared by two triangles see
// consistent results on both sides.
const rayEpsilon = 1e-9

// RayTriangle intersects a ray with triangle (a, b, c) using the
// epsilon-tolerant Möller–Trumbore algorithm. It returns the smallest
// non-negative parametric distance along dir, or false when the ray is
// parallel to the triangle plane, the intersection lies outside the
// triangle, or the triangle is behind the origin.
//
// The returned distance is in units of |dir|; pass a unit direction to
// obtain world-space distance.
func RayTriangle(origin, dir, a, b, c r3.Vector) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)

	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := origin.Sub(a)
	u := s.Dot(p) * inv
	if u < -rayEpsilon || u > 1+rayEpsilon {
		return 0, false
	}

	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < -rayEpsilon || u+v > 1+rayEpsilon {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}

	return t, true
}

// SphereSweepTriangle intersects a sphere of the given radius swept along
// the ray segment [origin, origin + dir*maxDist] with triangle (a, b, c).
// It returns the earliest hit distance in the same units as maxDist, or
// false when the swept sphere never touches the triangle.
//
// The sweep is resolved in three phases: the triangle face, then the three
// vertices, then the three edges, keeping the smallest sweep time.
func SphereSweepTriangle(origin, dir r3.Vector, radius, maxDist float64, a, b, c r3.Vector) (float64, bool) {
	if maxDist <= 0 {
		return 0, false
	}

	n := TriangleNormal(a, b, c)
	if n == (r3.Vector{}) {
		return 0, false
	}

	vel := dir.Mul(maxDist)

	// Signed distance from the sphere center to the triangle plane,
	// with the normal oriented towards the sphere.
	dist0 := n.Dot(origin.Sub(a))
	if dist0 < 0 {
		n = n.Mul(-1)
		dist0 = -dist0
	}
	ndotv := n.Dot(vel)

	embedded := false
	var t0 float64
	if math.Abs(ndotv) < rayEpsilon {
		// Moving parallel to the plane: either always intersecting it
		// or never.
		if dist0 >= radius {
			return 0, false
		}
		embedded = true
	} else {
		t0 = (radius - dist0) / ndotv
		t1 := (-radius - dist0) / ndotv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > 1 || t1 < 0 {
			return 0, false
		}
		if t0 < 0 {
			t0 = 0
		}
	}

	if !embedded {
		// Point where the sphere first touches the plane.
		planePt := origin.Add(vel.Mul(t0)).Sub(n.Mul(radius))
		if pointInTriangle(planePt, a, b, c) {
			return t0 * maxDist, true
		}
	}

	best := math.Inf(1)

	v2 := vel.Norm2()
	if v2 == 0 {
		return 0, false
	}

	for _, v := range [3]r3.Vector{a, b, c} {
		base := origin.Sub(v)
		if t, ok := lowestRoot(v2, 2*vel.Dot(base), base.Norm2()-radius*radius, 1); ok && t < best {
			best = t
		}
	}

	for _, e := range [3][2]r3.Vector{{a, b}, {b, c}, {c, a}} {
		if t, ok := sweepEdge(origin, vel, v2, radius, e[0], e[1]); ok && t < best {
			best = t
		}
	}

	if math.IsInf(best, 1) {
		return 0, false
	}
	return best * maxDist, true
}

// sweepEdge returns the earliest time in [0, 1] at which a sphere moving
// along vel from origin touches segment [va, vb].
func sweepEdge(origin, vel r3.Vector, v2, radius float64, va, vb r3.Vector) (float64, bool) {
	edge := vb.Sub(va)
	base := va.Sub(origin)

	e2 := edge.Norm2()
	if e2 == 0 {
		return 0, false
	}
	edgeDotVel := edge.Dot(vel)
	edgeDotBase := edge.Dot(base)

	qa := e2*(-v2) + edgeDotVel*edgeDotVel
	qb := e2*(2*vel.Dot(base)) - 2*edgeDotVel*edgeDotBase
	qc := e2*(radius*radius-base.Norm2()) + edgeDotBase*edgeDotBase

	t, ok := lowestRoot(qa, qb, qc, 1)
	if !ok {
		return 0, false
	}

	// The touch point must project onto the segment.
	f := (edgeDotVel*t - edgeDotBase) / e2
	if f < 0 || f > 1 {
		return 0, false
	}
	return t, true
}

// lowestRoot returns the smallest root of a*x^2 + b*x + c = 0 within
// (0, max), or false when no such root exists.
func lowestRoot(a, b, c, max float64) (float64, bool) {
	det := b*b - 4*a*c
	if det < 0 || a == 0 {
		return 0, false
	}

	sq := math.Sqrt(det)
	r1 := (-b - sq) / (2 * a)
	r2 := (-b + sq) / (2 * a)
	if r1 > r2 {
		r1, r2 = r2, r1
	}

	if r1 > 0 && r1 < max {
		return r1, true
	}
	if r2 > 0 && r2 < max {
		return r2, true
	}
	return 0, false
}

// RayPoint finds the closest point on the ray to a single point. It
// returns the distance from the origin to that point, the point itself,
// and false when the foot of the perpendicular falls behind the origin.
//
// Perpendicular-distance filtering is left to the tree traversal, whose
// bounding volumes are inflated by the cast radius.
func RayPoint(origin, dir, point r3.Vector) (float64, r3.Vector, bool) {
	d2 := dir.Norm2()
	if d2 == 0 {
		return 0, r3.Vector{}, false
	}

	t := point.Sub(origin).Dot(dir) / d2
	if t < 0 {
		return 0, r3.Vector{}, false
	}

	co := origin.Add(dir.Mul(t))
	return origin.Distance(co), co, true
}

// RaySegment finds the sphere-cast hit of a ray of the given radius
// against segment [v1, v2]: the 3D line-line intersection between the ray
// and the edge's infinite line, with the edge-side parameter clamped to
// the segment. Hits behind the ray origin, and hits whose perpendicular
// distance from the (clamped) edge point exceeds radius, are rejected.
// It returns the distance along the ray and the hit point on the ray.
//
// A zero-length segment degenerates to a point cast.
func RaySegment(origin, dir, v1, v2 r3.Vector, radius float64) (float64, r3.Vector, bool) {
	if v1 == v2 {
		return RayPoint(origin, dir, v1)
	}

	i1, i2, ok := closestLineLine(v1, v2, origin, origin.Add(dir))
	if !ok {
		return 0, r3.Vector{}, false
	}

	// i2 is on the ray line; reject points behind the origin.
	if i2.Sub(origin).Dot(dir) < 0 {
		return 0, r3.Vector{}, false
	}

	dist := origin.Distance(i2)

	// Clamp the edge-side point to the segment.
	f := i1.Sub(v1).Dot(v2.Sub(v1)) / v2.Sub(v1).Norm2()
	if f < 0 {
		i1 = v1
	} else if f > 1 {
		i1 = v2
	}

	// The ray must pass close enough to the edge.
	if i1.Sub(i2).Norm2() > radius*radius {
		return 0, r3.Vector{}, false
	}

	return dist, i2, true
}

// closestLineLine returns the mutually closest points of the infinite
// lines (p1, p2) and (p3, p4): i1 on the first line, i2 on the second.
// Parallel lines yield false.
func closestLineLine(p1, p2, p3, p4 r3.Vector) (i1, i2 r3.Vector, ok bool) {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)
	r := p1.Sub(p3)

	a := d1.Norm2()
	e := d2.Norm2()
	b := d1.Dot(d2)

	denom := a*e - b*b
	if math.Abs(denom) < rayEpsilon {
		return r3.Vector{}, r3.Vector{}, false
	}

	c := d1.Dot(r)
	f := d2.Dot(r)
	s := (b*f - c*e) / denom
	t := (a*f - b*c) / denom

	return p1.Add(d1.Mul(s)), p3.Add(d2.Mul(t)), true
}
