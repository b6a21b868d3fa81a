package meshbvh

import (
	"github.com/golang/geo/r3"

	"github.com/hupe1980/meshbvh/bvh"
	"github.com/hupe1980/meshbvh/geom"
)

// nearestFunc and raycastFunc are the per-kind query refinements. They
// interpret an opaque primitive index against the Lookup's geometry
// arrays, never mutate geometry, and only ever tighten the accumulator.
// Distinct indices may be refined concurrently against independent
// accumulators.
type (
	nearestFunc func(l *Lookup, index int, co r3.Vector, nearest *bvh.Nearest)
	raycastFunc func(l *Lookup, index int, ray *bvh.Ray, hit *bvh.Hit)
)

// callbacksForKind resolves the callback pair once per Lookup, at bind
// time. Vert kinds carry no nearest refinement: the distance to a point
// primitive's bounding volume is already the distance to the point.
func callbacksForKind(kind Kind) (nearestFunc, raycastFunc) {
	switch kind {
	case KindVerts, KindLooseVerts, KindLooseVertsVisible:
		return nil, vertsRayCast
	case KindEdges, KindLooseEdges, KindLooseEdgesVisible:
		return edgesNearestPoint, edgesRayCast
	case KindFaces:
		return facesNearestPoint, facesRayCast
	case KindCornerTris, KindCornerTrisVisible:
		return cornerTrisNearestPoint, cornerTrisRayCast
	default:
		return nil, nil
	}
}

func vertsRayCast(l *Lookup, index int, ray *bvh.Ray, hit *bvh.Hit) {
	dist, co, ok := geom.RayPoint(ray.Origin, ray.Direction, l.positions[index])
	if ok && dist < hit.Dist {
		hit.Index = index
		hit.Dist = dist
		hit.Co = co
		hit.No = r3.Vector{}
	}
}

func edgesNearestPoint(l *Lookup, index int, co r3.Vector, nearest *bvh.Nearest) {
	e := l.edges[index]
	a := l.positions[e[0]]
	b := l.positions[e[1]]

	pt, _ := geom.ClosestPointOnSegment(co, a, b)
	distSq := co.Sub(pt).Norm2()
	if distSq >= nearest.DistSq {
		return
	}

	nearest.Index = index
	nearest.DistSq = distSq
	nearest.Co = pt

	no := a.Sub(b)
	if no.Norm2() > 0 {
		no = no.Normalize()
	}
	nearest.No = no
}

func edgesRayCast(l *Lookup, index int, ray *bvh.Ray, hit *bvh.Hit) {
	e := l.edges[index]
	v1 := l.positions[e[0]]
	v2 := l.positions[e[1]]

	dist, co, ok := geom.RaySegment(ray.Origin, ray.Direction, v1, v2, ray.Radius)
	if ok && dist < hit.Dist {
		hit.Index = index
		hit.Dist = dist
		hit.Co = co
		hit.No = r3.Vector{}
	}
}

// nearestTri refines nearest against one triangle, attributing the result
// to primitive index.
func nearestTri(index int, co, a, b, c r3.Vector, nearest *bvh.Nearest) {
	pt := geom.ClosestPointOnTriangle(co, a, b, c)
	distSq := co.Sub(pt).Norm2()
	if distSq >= nearest.DistSq {
		return
	}

	nearest.Index = index
	nearest.DistSq = distSq
	nearest.Co = pt
	nearest.No = geom.TriangleNormal(a, b, c)
}

// rayCastTri refines hit against one triangle: zero-radius rays take the
// ray-triangle path, everything else the sphere sweep. The normal is the
// triangle actually hit.
func rayCastTri(index int, ray *bvh.Ray, a, b, c r3.Vector, hit *bvh.Hit) {
	var (
		dist float64
		ok   bool
	)
	if ray.Radius == 0 {
		dist, ok = geom.RayTriangle(ray.Origin, ray.Direction, a, b, c)
	} else {
		dist, ok = geom.SphereSweepTriangle(ray.Origin, ray.Direction, ray.Radius, hit.Dist, a, b, c)
	}
	if !ok || dist < 0 || dist >= hit.Dist {
		return
	}

	hit.Index = index
	hit.Dist = dist
	hit.Co = ray.Origin.Add(ray.Direction.Mul(dist))
	hit.No = geom.TriangleNormal(a, b, c)
}

// Legacy faces with four vertices decompose into triangles (v1, v2, v3)
// and (v2, v3, v4); both are tested and the accumulator keeps whichever
// is closer, with the normal taken from the winning triangle.

func facesNearestPoint(l *Lookup, index int, co r3.Vector, nearest *bvh.Nearest) {
	f := l.faces[index]
	p := l.positions

	nearestTri(index, co, p[f.V1], p[f.V2], p[f.V3], nearest)
	if f.IsQuad() {
		nearestTri(index, co, p[f.V2], p[f.V3], p[f.V4], nearest)
	}
}

func facesRayCast(l *Lookup, index int, ray *bvh.Ray, hit *bvh.Hit) {
	f := l.faces[index]
	p := l.positions

	rayCastTri(index, ray, p[f.V1], p[f.V2], p[f.V3], hit)
	if f.IsQuad() {
		rayCastTri(index, ray, p[f.V2], p[f.V3], p[f.V4], hit)
	}
}

// triVerts resolves corner-triangle index through the corner-vert
// indirection to its three positions.
func (l *Lookup) triVerts(index int) (a, b, c r3.Vector) {
	tri := l.cornerTris[index]
	a = l.positions[l.cornerVerts[tri[0]]]
	b = l.positions[l.cornerVerts[tri[1]]]
	c = l.positions[l.cornerVerts[tri[2]]]
	return a, b, c
}

func cornerTrisNearestPoint(l *Lookup, index int, co r3.Vector, nearest *bvh.Nearest) {
	a, b, c := l.triVerts(index)
	nearestTri(index, co, a, b, c, nearest)
}

func cornerTrisRayCast(l *Lookup, index int, ray *bvh.Ray, hit *bvh.Hit) {
	a, b, c := l.triVerts(index)
	rayCastTri(index, ray, a, b, c, hit)
}
