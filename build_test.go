package meshbvh

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshbvh/mask"
)

func TestBuildVerts(t *testing.T) {
	positions := []r3.Vector{{X: 0}, {X: 1}, {X: 2}, {X: 3}}

	t.Run("unmasked", func(t *testing.T) {
		tree, err := buildVerts(positions, mask.All(), -1, applyOptions(nil))
		require.NoError(t, err)
		assert.Equal(t, 4, tree.Len())
	})

	t.Run("masked subset", func(t *testing.T) {
		tree, err := buildVerts(positions, mask.FromIndices(1, 3), -1, applyOptions(nil))
		require.NoError(t, err)
		assert.Equal(t, 2, tree.Len())
	})

	t.Run("zero active is success with a nil tree", func(t *testing.T) {
		tree, err := buildVerts(positions, mask.New(), -1, applyOptions(nil))
		require.NoError(t, err)
		assert.Nil(t, tree)
	})

	t.Run("mask beyond the element range", func(t *testing.T) {
		_, err := buildVerts(positions, mask.FromIndices(0, 7), -1, applyOptions(nil))
		var mismatch *ErrMaskSizeMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 4, mismatch.Elements)
	})

	t.Run("declared count must match insertions", func(t *testing.T) {
		_, err := buildVerts(positions, mask.FromIndices(0), 3, applyOptions(nil))
		var mismatch *ErrActiveCountMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 3, mismatch.Expected)
		assert.Equal(t, 1, mismatch.Inserted)
	})
}

func TestBuildEdgesMasked(t *testing.T) {
	src := quadMesh()

	tree, err := buildEdges(src.Positions, src.Edges, mask.FromIndices(0, 4), -1, applyOptions(nil))
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Len())
}

func TestBuildFaces(t *testing.T) {
	src := quadMesh()

	t.Run("quad inserts all four corners", func(t *testing.T) {
		tree, err := buildFaces(src.Positions, src.Faces, mask.All(), -1, applyOptions(nil))
		require.NoError(t, err)
		assert.Equal(t, 1, tree.Len())
	})

	t.Run("no positions yields a nil tree", func(t *testing.T) {
		tree, err := buildFaces(nil, src.Faces, mask.All(), -1, applyOptions(nil))
		require.NoError(t, err)
		assert.Nil(t, tree)
	})
}

func TestBuildCornerTrisMasked(t *testing.T) {
	src := twoFaceMesh()

	tree, err := buildCornerTris(src.Positions, src.CornerVerts, src.CornerTris, mask.FromIndices(1), -1, applyOptions(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Len())
}

func TestBuildSubsetValidation(t *testing.T) {
	positions := []r3.Vector{{X: 0}, {X: 1}}

	t.Run("negative index", func(t *testing.T) {
		_, err := buildVertsSubset(positions, []int{-1}, applyOptions(nil))
		var oor *ErrIndexOutOfRange
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, -1, oor.Index)
	})

	t.Run("index past the end", func(t *testing.T) {
		_, err := buildVertsSubset(positions, []int{2}, applyOptions(nil))
		var oor *ErrIndexOutOfRange
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, 2, oor.Count)
	})

	t.Run("empty subset", func(t *testing.T) {
		tree, err := buildVertsSubset(positions, nil, applyOptions(nil))
		require.NoError(t, err)
		assert.Nil(t, tree)
	})
}

func TestBuildTrisFromFaces(t *testing.T) {
	src := twoFaceMesh()

	t.Run("face index out of range", func(t *testing.T) {
		_, err := buildTrisFromFaces(src, []int{5}, applyOptions(nil))
		var oor *ErrIndexOutOfRange
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, KindCornerTris, oor.Kind)
	})

	t.Run("triangles follow the positional mapping", func(t *testing.T) {
		tree, err := buildTrisFromFaces(src, []int{1}, applyOptions(nil))
		require.NoError(t, err)
		require.Equal(t, 1, tree.Len())
	})

	t.Run("empty subset", func(t *testing.T) {
		tree, err := buildTrisFromFaces(src, nil, applyOptions(nil))
		require.NoError(t, err)
		assert.Nil(t, tree)
	})
}

func TestEpsilonOption(t *testing.T) {
	// Vertex bounding volumes are degenerate points; a ray passing a hair
	// off the plane only reaches them once the volumes are inflated.
	origin := r3.Vector{X: -1, Y: 0, Z: 1e-5}
	dir := r3.Vector{X: 1, Y: 0, Z: 0}

	exact, err := New(triMesh()).Verts()
	require.NoError(t, err)
	_, ok := exact.RayCast(origin, dir, 0, 100)
	assert.False(t, ok)

	padded, err := New(triMesh(), WithEpsilon(1e-4)).Verts()
	require.NoError(t, err)
	hit, ok := padded.RayCast(origin, dir, 0, 100)
	require.True(t, ok)
	assert.Equal(t, 0, hit.Index)
	assert.InDelta(t, 1.0, hit.Dist, 1e-7)
}

func TestLeafSizeOption(t *testing.T) {
	positions := make([]r3.Vector, 64)
	for i := range positions {
		positions[i] = r3.Vector{X: float64(i)}
	}

	tree, err := buildVerts(positions, mask.All(), -1, applyOptions([]Option{WithLeafSize(1)}))
	require.NoError(t, err)
	assert.Equal(t, 64, tree.Len())
}
