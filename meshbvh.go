package meshbvh

import (
	"time"

	"github.com/hupe1980/meshbvh/bvh"
	"github.com/hupe1980/meshbvh/mask"
	"github.com/hupe1980/meshbvh/mesh"
)

// Builder builds, caches and invalidates the BVH lookups of one source
// mesh. The cached accessors are safe for concurrent use; see the package
// documentation for the lifetime and invalidation contract.
type Builder struct {
	mesh  *mesh.Mesh
	opts  options
	cache treeCache
}

// New creates a Builder over the given source mesh. The mesh is borrowed
// and must outlive the Builder and every Lookup it hands out.
func New(src *mesh.Mesh, optFns ...Option) *Builder {
	return &Builder{
		mesh: src,
		opts: applyOptions(optFns),
	}
}

// buildCached routes a build through the cache slot of its kind, with
// build logging and metrics around the single execution.
func (b *Builder) buildCached(kind Kind, build func() (*bvh.Tree, error)) (*bvh.Tree, error) {
	return b.cache.ensure(kind, func() (*bvh.Tree, error) {
		start := time.Now()
		tree, err := build()
		elapsed := time.Since(start)

		b.opts.logger.LogBuild(kind, tree.Len(), elapsed, err)
		b.opts.metrics.RecordBuild(kind, tree.Len(), elapsed, err)

		return tree, err
	})
}

// bind packages a tree with the geometry arrays and callback pair of its
// kind. The callback pair is resolved here, once per Lookup.
func (b *Builder) bind(kind Kind, tree *bvh.Tree) *Lookup {
	nearest, raycast := callbacksForKind(kind)
	return &Lookup{
		tree:        tree,
		kind:        kind,
		positions:   b.mesh.Positions,
		edges:       b.mesh.Edges,
		cornerVerts: b.mesh.CornerVerts,
		cornerTris:  b.mesh.CornerTris,
		faces:       b.mesh.Faces,
		nearest:     nearest,
		raycast:     raycast,
		metrics:     b.opts.metrics,
	}
}

func (b *Builder) requireEdgeGeometry(kind Kind) error {
	if len(b.mesh.Edges) > 0 && len(b.mesh.Positions) == 0 {
		return &ErrMissingGeometry{Kind: kind, Array: "positions"}
	}
	return nil
}

func (b *Builder) requireCornerTriGeometry(kind Kind) error {
	if len(b.mesh.CornerTris) > 0 && len(b.mesh.CornerVerts) == 0 {
		return &ErrMissingGeometry{Kind: kind, Array: "corner verts"}
	}
	return nil
}

func (b *Builder) requireFaceTopology(kind Kind) error {
	if b.mesh.NumFaces() > 0 && len(b.mesh.CornerEdges) == 0 {
		return &ErrMissingGeometry{Kind: kind, Array: "corner edges"}
	}
	return nil
}

// Verts returns the cached lookup over all vertices.
func (b *Builder) Verts() (*Lookup, error) {
	tree, err := b.buildCached(KindVerts, func() (*bvh.Tree, error) {
		return buildVerts(b.mesh.Positions, mask.All(), -1, b.opts)
	})
	if err != nil {
		return nil, err
	}
	return b.bind(KindVerts, tree), nil
}

// LooseVerts returns the cached lookup over vertices referenced by no
// edge.
func (b *Builder) LooseVerts() (*Lookup, error) {
	tree, err := b.buildCached(KindLooseVerts, func() (*bvh.Tree, error) {
		m, active := looseVertsMask(b.mesh)
		return buildVerts(b.mesh.Positions, m, active, b.opts)
	})
	if err != nil {
		return nil, err
	}
	return b.bind(KindLooseVerts, tree), nil
}

// LooseVertsVisible returns the cached lookup over non-hidden vertices
// referenced by no non-hidden edge.
func (b *Builder) LooseVertsVisible() (*Lookup, error) {
	tree, err := b.buildCached(KindLooseVertsVisible, func() (*bvh.Tree, error) {
		m, active := looseVertsVisibleMask(b.mesh)
		return buildVerts(b.mesh.Positions, m, active, b.opts)
	})
	if err != nil {
		return nil, err
	}
	return b.bind(KindLooseVertsVisible, tree), nil
}

// Edges returns the cached lookup over all edges.
func (b *Builder) Edges() (*Lookup, error) {
	if err := b.requireEdgeGeometry(KindEdges); err != nil {
		return nil, err
	}
	tree, err := b.buildCached(KindEdges, func() (*bvh.Tree, error) {
		return buildEdges(b.mesh.Positions, b.mesh.Edges, mask.All(), -1, b.opts)
	})
	if err != nil {
		return nil, err
	}
	return b.bind(KindEdges, tree), nil
}

// LooseEdges returns the cached lookup over edges referenced by no face.
func (b *Builder) LooseEdges() (*Lookup, error) {
	if err := b.requireEdgeGeometry(KindLooseEdges); err != nil {
		return nil, err
	}
	if err := b.requireFaceTopology(KindLooseEdges); err != nil {
		return nil, err
	}
	tree, err := b.buildCached(KindLooseEdges, func() (*bvh.Tree, error) {
		m, active := looseEdgesMask(b.mesh)
		return buildEdges(b.mesh.Positions, b.mesh.Edges, m, active, b.opts)
	})
	if err != nil {
		return nil, err
	}
	return b.bind(KindLooseEdges, tree), nil
}

// LooseEdgesVisible returns the cached lookup over non-hidden edges
// referenced by no non-hidden face.
func (b *Builder) LooseEdgesVisible() (*Lookup, error) {
	if err := b.requireEdgeGeometry(KindLooseEdgesVisible); err != nil {
		return nil, err
	}
	if err := b.requireFaceTopology(KindLooseEdgesVisible); err != nil {
		return nil, err
	}
	tree, err := b.buildCached(KindLooseEdgesVisible, func() (*bvh.Tree, error) {
		m, active := looseEdgesVisibleMask(b.mesh)
		return buildEdges(b.mesh.Positions, b.mesh.Edges, m, active, b.opts)
	})
	if err != nil {
		return nil, err
	}
	return b.bind(KindLooseEdgesVisible, tree), nil
}

// Faces returns the cached lookup over the legacy tessellated faces.
func (b *Builder) Faces() (*Lookup, error) {
	tree, err := b.buildCached(KindFaces, func() (*bvh.Tree, error) {
		return buildFaces(b.mesh.Positions, b.mesh.Faces, mask.All(), -1, b.opts)
	})
	if err != nil {
		return nil, err
	}
	return b.bind(KindFaces, tree), nil
}

func (b *Builder) cornerTrisBuild() (*bvh.Tree, error) {
	return buildCornerTris(b.mesh.Positions, b.mesh.CornerVerts, b.mesh.CornerTris, mask.All(), -1, b.opts)
}

// CornerTris returns the cached lookup over all corner-triangles.
func (b *Builder) CornerTris() (*Lookup, error) {
	if err := b.requireCornerTriGeometry(KindCornerTris); err != nil {
		return nil, err
	}
	tree, err := b.buildCached(KindCornerTris, b.cornerTrisBuild)
	if err != nil {
		return nil, err
	}
	return b.bind(KindCornerTris, tree), nil
}

// CornerTrisVisible returns the cached lookup over the corner-triangles
// of non-hidden faces. When nothing is hidden the result is identical to
// CornerTris, so the plain slot's tree is shared instead of building a
// second copy.
func (b *Builder) CornerTrisVisible() (*Lookup, error) {
	if err := b.requireCornerTriGeometry(KindCornerTrisVisible); err != nil {
		return nil, err
	}

	if !b.mesh.AnyFaceHidden() {
		tree, err := b.buildCached(KindCornerTris, b.cornerTrisBuild)
		if err != nil {
			return nil, err
		}
		return b.bind(KindCornerTrisVisible, tree), nil
	}

	tree, err := b.buildCached(KindCornerTrisVisible, func() (*bvh.Tree, error) {
		m, active := visibleTrisMask(b.mesh)
		return buildCornerTris(b.mesh.Positions, b.mesh.CornerVerts, b.mesh.CornerTris, m, active, b.opts)
	})
	if err != nil {
		return nil, err
	}
	return b.bind(KindCornerTrisVisible, tree), nil
}

// VertsFromIndices returns an ad hoc lookup over an explicit vertex
// subset. Indices must be unique; a subset covering every vertex routes
// through the cached tree instead.
func (b *Builder) VertsFromIndices(indices []int) (*Lookup, error) {
	if len(indices) == b.mesh.NumVerts() {
		return b.Verts()
	}

	tree, err := buildVertsSubset(b.mesh.Positions, indices, b.opts)
	if err != nil {
		return nil, err
	}
	return b.bind(KindVerts, tree), nil
}

// EdgesFromIndices returns an ad hoc lookup over an explicit edge subset.
// Indices must be unique; a subset covering every edge routes through the
// cached tree instead.
func (b *Builder) EdgesFromIndices(indices []int) (*Lookup, error) {
	if err := b.requireEdgeGeometry(KindEdges); err != nil {
		return nil, err
	}
	if len(indices) == b.mesh.NumEdges() {
		return b.Edges()
	}

	tree, err := buildEdgesSubset(b.mesh.Positions, b.mesh.Edges, indices, b.opts)
	if err != nil {
		return nil, err
	}
	return b.bind(KindEdges, tree), nil
}

// TrisFromFaces returns an ad hoc corner-triangle lookup restricted to
// the triangles of an explicit face subset. Face indices must be unique;
// a subset covering every face routes through the cached tree instead.
func (b *Builder) TrisFromFaces(faceIndices []int) (*Lookup, error) {
	if err := b.requireCornerTriGeometry(KindCornerTris); err != nil {
		return nil, err
	}
	if len(faceIndices) == b.mesh.NumFaces() {
		return b.CornerTris()
	}

	tree, err := buildTrisFromFaces(b.mesh, faceIndices, b.opts)
	if err != nil {
		return nil, err
	}
	return b.bind(KindCornerTris, tree), nil
}

// Invalidate drops the cached tree of one kind. Call it after an edit
// that changes the geometry, topology or visibility the kind depends on.
func (b *Builder) Invalidate(kind Kind) {
	b.cache.invalidate(kind)
	b.opts.logger.LogInvalidate(kind)
	b.opts.metrics.RecordInvalidate(kind)
}

// InvalidateAll drops every cached tree.
func (b *Builder) InvalidateAll() {
	for kind := Kind(0); kind < numKinds; kind++ {
		b.Invalidate(kind)
	}
}

// PointCloudLookup builds an uncached lookup over all points of a point
// cloud, or over the mask's subset. The point cloud is borrowed and must
// outlive the Lookup.
func PointCloudLookup(pc *mesh.PointCloud, m mask.Mask, optFns ...Option) (*Lookup, error) {
	o := applyOptions(optFns)

	start := time.Now()
	tree, err := buildVerts(pc.Positions, m, -1, o)
	elapsed := time.Since(start)

	o.logger.LogBuild(KindVerts, tree.Len(), elapsed, err)
	o.metrics.RecordBuild(KindVerts, tree.Len(), elapsed, err)
	if err != nil {
		return nil, err
	}

	_, raycast := callbacksForKind(KindVerts)
	return &Lookup{
		tree:      tree,
		kind:      KindVerts,
		positions: pc.Positions,
		raycast:   raycast,
		metrics:   o.metrics,
	}, nil
}
