package meshbvh

import (
	"github.com/golang/geo/r3"

	"github.com/hupe1980/meshbvh/bvh"
	"github.com/hupe1980/meshbvh/mask"
	"github.com/hupe1980/meshbvh/mesh"
)

// The masked builders construct a balanced tree over the active subset of
// one primitive kind. Passing active < 0 auto-detects the count from the
// mask. A zero active count yields a nil tree, which is success: queries
// against it simply report no result. Every builder verifies that the
// number of inserted elements matches the declared active count.

func (o options) newTree(active int) *bvh.Tree {
	return bvh.New(active, func(bo *bvh.Options) {
		bo.Epsilon = o.epsilon
		if o.leafSize > 0 {
			bo.LeafSize = o.leafSize
		}
	})
}

func buildVerts(positions []r3.Vector, m mask.Mask, active int, o options) (*bvh.Tree, error) {
	if !m.Fits(len(positions)) {
		return nil, &ErrMaskSizeMismatch{Kind: KindVerts, Elements: len(positions)}
	}
	if active < 0 {
		active = m.Count(len(positions))
	}
	if active == 0 {
		return nil, nil
	}

	tree := o.newTree(active)
	for i := range positions {
		if !m.Contains(i) {
			continue
		}
		tree.Insert(i, positions[i])
	}
	if tree.Len() != active {
		return nil, &ErrActiveCountMismatch{Kind: KindVerts, Expected: active, Inserted: tree.Len()}
	}

	tree.Balance()
	return tree, nil
}

func buildEdges(positions []r3.Vector, edges [][2]int, m mask.Mask, active int, o options) (*bvh.Tree, error) {
	if !m.Fits(len(edges)) {
		return nil, &ErrMaskSizeMismatch{Kind: KindEdges, Elements: len(edges)}
	}
	if active < 0 {
		active = m.Count(len(edges))
	}
	if active == 0 {
		return nil, nil
	}

	tree := o.newTree(active)
	for i, e := range edges {
		if !m.Contains(i) {
			continue
		}
		tree.Insert(i, positions[e[0]], positions[e[1]])
	}
	if tree.Len() != active {
		return nil, &ErrActiveCountMismatch{Kind: KindEdges, Expected: active, Inserted: tree.Len()}
	}

	tree.Balance()
	return tree, nil
}

func buildFaces(positions []r3.Vector, faces []mesh.Face, m mask.Mask, active int, o options) (*bvh.Tree, error) {
	if len(positions) == 0 {
		return nil, nil
	}
	if !m.Fits(len(faces)) {
		return nil, &ErrMaskSizeMismatch{Kind: KindFaces, Elements: len(faces)}
	}
	if active < 0 {
		active = m.Count(len(faces))
	}
	if active == 0 {
		return nil, nil
	}

	tree := o.newTree(active)
	for i, f := range faces {
		if !m.Contains(i) {
			continue
		}
		// Degenerate quads with a zero fourth vertex insert as triangles.
		if f.IsQuad() {
			tree.Insert(i, positions[f.V1], positions[f.V2], positions[f.V3], positions[f.V4])
		} else {
			tree.Insert(i, positions[f.V1], positions[f.V2], positions[f.V3])
		}
	}
	if tree.Len() != active {
		return nil, &ErrActiveCountMismatch{Kind: KindFaces, Expected: active, Inserted: tree.Len()}
	}

	tree.Balance()
	return tree, nil
}

func buildCornerTris(positions []r3.Vector, cornerVerts []int, cornerTris [][3]int, m mask.Mask, active int, o options) (*bvh.Tree, error) {
	if len(positions) == 0 {
		return nil, nil
	}
	if !m.Fits(len(cornerTris)) {
		return nil, &ErrMaskSizeMismatch{Kind: KindCornerTris, Elements: len(cornerTris)}
	}
	if active < 0 {
		active = m.Count(len(cornerTris))
	}
	if active == 0 {
		return nil, nil
	}

	tree := o.newTree(active)
	for i, tri := range cornerTris {
		if !m.Contains(i) {
			continue
		}
		tree.Insert(i,
			positions[cornerVerts[tri[0]]],
			positions[cornerVerts[tri[1]]],
			positions[cornerVerts[tri[2]]],
		)
	}
	if tree.Len() != active {
		return nil, &ErrActiveCountMismatch{Kind: KindCornerTris, Expected: active, Inserted: tree.Len()}
	}

	tree.Balance()
	return tree, nil
}

// The subset builders size the tree exactly to an explicit index subset
// and validate every index. The resulting trees are never cached; the
// Lookup that wraps them is their sole owner.

func buildVertsSubset(positions []r3.Vector, indices []int, o options) (*bvh.Tree, error) {
	if len(indices) == 0 {
		return nil, nil
	}

	tree := o.newTree(len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(positions) {
			return nil, &ErrIndexOutOfRange{Kind: KindVerts, Index: i, Count: len(positions)}
		}
		tree.Insert(i, positions[i])
	}

	tree.Balance()
	return tree, nil
}

func buildEdgesSubset(positions []r3.Vector, edges [][2]int, indices []int, o options) (*bvh.Tree, error) {
	if len(indices) == 0 {
		return nil, nil
	}

	tree := o.newTree(len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(edges) {
			return nil, &ErrIndexOutOfRange{Kind: KindEdges, Index: i, Count: len(edges)}
		}
		e := edges[i]
		tree.Insert(i, positions[e[0]], positions[e[1]])
	}

	tree.Balance()
	return tree, nil
}

// buildTrisFromFaces builds a corner-triangle tree over the triangles of
// an explicit face subset. Face-to-triangle correspondence is positional:
// face i's triangles start at FaceTriStart(i).
func buildTrisFromFaces(src *mesh.Mesh, faceIndices []int, o options) (*bvh.Tree, error) {
	trisNum := 0
	for _, f := range faceIndices {
		if f < 0 || f >= src.NumFaces() {
			return nil, &ErrIndexOutOfRange{Kind: KindCornerTris, Index: f, Count: src.NumFaces()}
		}
		trisNum += mesh.FaceTrisNum(src.FaceCornerCount(f))
	}
	if trisNum == 0 {
		return nil, nil
	}

	tree := o.newTree(trisNum)
	for _, f := range faceIndices {
		start := src.FaceTriStart(f)
		for j := 0; j < mesh.FaceTrisNum(src.FaceCornerCount(f)); j++ {
			ti := start + j
			tri := src.CornerTris[ti]
			tree.Insert(ti,
				src.Positions[src.CornerVerts[tri[0]]],
				src.Positions[src.CornerVerts[tri[1]]],
				src.Positions[src.CornerVerts[tri[2]]],
			)
		}
	}

	tree.Balance()
	return tree, nil
}
