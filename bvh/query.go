package bvh

import (
	"math"

	"github.com/golang/geo/r3"
)

// Nearest accumulates the running best result of a nearest-point query.
// Index stays -1 and DistSq stays +Inf while no primitive has matched.
type Nearest struct {
	// Index is the id of the closest primitive, or -1.
	Index int

	// Co is the closest point found so far.
	Co r3.Vector

	// No is the surface normal at Co, when the primitive kind supplies one.
	No r3.Vector

	// DistSq is the squared distance from the query point to Co.
	DistSq float64
}

// NewNearest returns an accumulator primed with the no-result sentinel.
func NewNearest() Nearest {
	return Nearest{Index: -1, DistSq: math.Inf(1)}
}

// NearestCallback refines the running best for one primitive. It must
// only ever tighten nearest and must not retain co or nearest.
type NearestCallback func(index int, co r3.Vector, nearest *Nearest)

// Ray describes a ray or sphere cast. Direction must be unit length;
// Radius > 0 turns the cast into a sphere sweep.
type Ray struct {
	Origin    r3.Vector
	Direction r3.Vector
	Radius    float64

	inv r3.Vector // reciprocal direction, for slab tests
}

// NewRay returns a ray with its traversal state precomputed.
func NewRay(origin, direction r3.Vector, radius float64) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		Radius:    radius,
		inv: r3.Vector{
			X: safeInv(direction.X),
			Y: safeInv(direction.Y),
			Z: safeInv(direction.Z),
		},
	}
}

func safeInv(v float64) float64 {
	if v == 0 {
		return math.Inf(1)
	}
	return 1 / v
}

// Hit accumulates the running best result of a ray cast. Index stays -1
// while nothing has been hit; Dist starts at the cast's maximum distance
// and only ever shrinks.
type Hit struct {
	// Index is the id of the hit primitive, or -1.
	Index int

	// Dist is the hit distance along the ray.
	Dist float64

	// Co is the hit point.
	Co r3.Vector

	// No is the surface normal at Co, when the primitive kind supplies one.
	No r3.Vector
}

// NewHit returns an accumulator primed with the no-result sentinel and
// the given maximum cast distance.
func NewHit(maxDist float64) Hit {
	return Hit{Index: -1, Dist: maxDist}
}

// RayCastCallback refines the running best hit for one primitive. It must
// only ever tighten hit and must not retain ray or hit.
type RayCastCallback func(index int, ray *Ray, hit *Hit)

// FindNearest walks the tree towards co, pruning nodes that cannot beat
// nearest.DistSq. When callback is nil the primitive's bounding volume
// itself is the refinement: for point primitives the distance to the
// bounding volume equals the distance to the point.
//
// Querying a nil or empty tree is valid and leaves nearest untouched, as
// is querying a tree with insertions not yet covered by Balance: the
// stale hierarchy is never consulted.
func (t *Tree) FindNearest(co r3.Vector, callback NearestCallback, nearest *Nearest) {
	if t == nil || !t.balanced || len(t.nodes) == 0 {
		return
	}
	t.nearestNode(0, co, callback, nearest)
}

func (t *Tree) nearestNode(ni int32, co r3.Vector, callback NearestCallback, nearest *Nearest) {
	n := &t.nodes[ni]

	if n.left < 0 {
		for i := n.start; i < n.end; i++ {
			p := &t.prims[i]
			if callback != nil {
				callback(p.id, co, nearest)
				continue
			}
			q := closestOnBox(co, p.min, p.max)
			if distSq := co.Sub(q).Norm2(); distSq < nearest.DistSq {
				nearest.Index = p.id
				nearest.Co = q
				nearest.No = r3.Vector{}
				nearest.DistSq = distSq
			}
		}
		return
	}

	// Descend into the closer child first for tighter pruning.
	first, second := n.left, n.right
	dFirst := boxDistSq(co, t.nodes[first].min, t.nodes[first].max)
	dSecond := boxDistSq(co, t.nodes[second].min, t.nodes[second].max)
	if dSecond < dFirst {
		first, second = second, first
		dFirst, dSecond = dSecond, dFirst
	}

	if dFirst < nearest.DistSq {
		t.nearestNode(first, co, callback, nearest)
	}
	if dSecond < nearest.DistSq {
		t.nearestNode(second, co, callback, nearest)
	}
}

// RayCast walks the tree along the ray, pruning nodes whose slab entry
// distance cannot beat hit.Dist. Node and leaf bounds are inflated by the
// ray radius, so sphere casts reach every primitive the sphere could
// touch. When callback is nil the slab entry point of the primitive's
// bounding volume is taken as the hit.
//
// Casting against a nil, empty or unbalanced tree is valid and leaves
// hit untouched.
func (t *Tree) RayCast(ray *Ray, callback RayCastCallback, hit *Hit) {
	if t == nil || !t.balanced || len(t.nodes) == 0 {
		return
	}
	t.rayCastNode(0, ray, callback, hit)
}

func (t *Tree) rayCastNode(ni int32, ray *Ray, callback RayCastCallback, hit *Hit) {
	n := &t.nodes[ni]

	if n.left < 0 {
		for i := n.start; i < n.end; i++ {
			p := &t.prims[i]
			dist, ok := raySlab(ray, p.min, p.max)
			if !ok || dist >= hit.Dist {
				continue
			}
			if callback != nil {
				callback(p.id, ray, hit)
				continue
			}
			hit.Index = p.id
			hit.Dist = dist
			hit.Co = ray.Origin.Add(ray.Direction.Mul(dist))
			hit.No = r3.Vector{}
		}
		return
	}

	first, second := n.left, n.right
	dFirst, okFirst := raySlab(ray, t.nodes[first].min, t.nodes[first].max)
	dSecond, okSecond := raySlab(ray, t.nodes[second].min, t.nodes[second].max)
	if okSecond && (!okFirst || dSecond < dFirst) {
		first, second = second, first
		dFirst, dSecond = dSecond, dFirst
		okFirst, okSecond = okSecond, okFirst
	}

	if okFirst && dFirst < hit.Dist {
		t.rayCastNode(first, ray, callback, hit)
	}
	if okSecond && dSecond < hit.Dist {
		t.rayCastNode(second, ray, callback, hit)
	}
}

// raySlab intersects the ray with box [min, max] inflated by the ray
// radius, returning the entry distance clamped to zero.
func raySlab(ray *Ray, min, max r3.Vector) (float64, bool) {
	pad := ray.Radius

	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		lo := axisValue(min, axis) - pad
		hi := axisValue(max, axis) + pad
		o := axisValue(ray.Origin, axis)
		inv := axisValue(ray.inv, axis)

		if math.IsInf(inv, 0) {
			// Ray parallel to this slab: origin must lie inside it.
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		tmin = 0
	}
	return tmin, true
}

// closestOnBox returns the point inside box [min, max] closest to co.
func closestOnBox(co, min, max r3.Vector) r3.Vector {
	return r3.Vector{
		X: clamp(co.X, min.X, max.X),
		Y: clamp(co.Y, min.Y, max.Y),
		Z: clamp(co.Z, min.Z, max.Z),
	}
}

func boxDistSq(co, min, max r3.Vector) float64 {
	return co.Sub(closestOnBox(co, min, max)).Norm2()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
