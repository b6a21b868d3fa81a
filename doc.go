// Package meshbvh builds and caches bounding-volume hierarchies over the
// primitives of a surface mesh or point cloud and answers nearest-point
// and ray/sphere-cast queries against them.
//
// # Quick Start
//
//	src := &mesh.Mesh{Positions: positions, Edges: edges}
//	b := meshbvh.New(src)
//
//	lookup, _ := b.Edges()                    // lazily built, cached per kind
//	nearest, ok := lookup.NearestPoint(co)    // closest point on any edge
//	hit, ok := lookup.RayCast(origin, dir, 0, math.MaxFloat64)
//
// Trees are built on first access, one per primitive kind, and shared by
// every caller until Invalidate. Ad hoc trees over an explicit index
// subset bypass the cache:
//
//	lookup, _ := b.TrisFromFaces([]int{2, 5, 6})
//
// # Concurrency
//
// Concurrent first access to the same kind results in exactly one build;
// the other callers wait for it. Built trees are immutable and safe for
// unlimited concurrent queries. After any topology or visibility edit the
// caller must Invalidate the affected kinds before querying again.
package meshbvh
