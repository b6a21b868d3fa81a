package meshbvh

import (
	"time"

	"github.com/golang/geo/r3"

	"github.com/hupe1980/meshbvh/bvh"
	"github.com/hupe1980/meshbvh/mesh"
)

// Lookup binds a tree to the geometry arrays and callback pair of its
// kind. It is immutable and safe for concurrent queries.
//
// A Lookup borrows its geometry from the source object, which must
// outlive it. Lookups from the cached accessors share the cache slot's
// tree; Lookups from the *FromIndices constructors and PointCloudLookup
// reference a tree built exclusively for them.
type Lookup struct {
	tree *bvh.Tree
	kind Kind

	positions   []r3.Vector
	edges       [][2]int
	cornerVerts []int
	cornerTris  [][3]int
	faces       []mesh.Face

	nearest nearestFunc
	raycast raycastFunc

	metrics MetricsCollector
}

// Tree returns the underlying tree handle. It is nil when the kind had
// zero active elements, which is a valid, queryable state.
func (l *Lookup) Tree() *bvh.Tree {
	return l.tree
}

// Kind returns the primitive kind the Lookup was built over.
func (l *Lookup) Kind() Kind {
	return l.kind
}

// NearestPoint finds the closest point on any active primitive to co.
// ok is false when the tree holds no primitives; the returned accumulator
// then carries the sentinel Index -1 and an infinite squared distance.
func (l *Lookup) NearestPoint(co r3.Vector) (bvh.Nearest, bool) {
	start := time.Now()

	nearest := bvh.NewNearest()

	var cb bvh.NearestCallback
	if l.nearest != nil {
		cb = func(index int, co r3.Vector, n *bvh.Nearest) {
			l.nearest(l, index, co, n)
		}
	}
	l.tree.FindNearest(co, cb, &nearest)

	l.metrics.RecordNearest(l.kind, time.Since(start))

	return nearest, nearest.Index != -1
}

// RayCast casts a ray (radius == 0) or sweeps a sphere (radius > 0) from
// origin along dir, reporting the earliest hit within maxDist. dir need
// not be unit length; distances are returned in world units. ok is false
// when nothing was hit within maxDist.
func (l *Lookup) RayCast(origin, dir r3.Vector, radius, maxDist float64) (bvh.Hit, bool) {
	start := time.Now()

	hit := bvh.NewHit(maxDist)

	n := dir.Norm()
	if n == 0 {
		return hit, false
	}
	ray := bvh.NewRay(origin, dir.Mul(1/n), radius)

	var cb bvh.RayCastCallback
	if l.raycast != nil {
		cb = func(index int, ray *bvh.Ray, h *bvh.Hit) {
			l.raycast(l, index, ray, h)
		}
	}
	l.tree.RayCast(&ray, cb, &hit)

	l.metrics.RecordRayCast(l.kind, time.Since(start))

	return hit, hit.Index != -1
}
