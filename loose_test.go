package meshbvh

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshbvh/mesh"
)

func TestLooseVertsMask(t *testing.T) {
	src := quadMesh()
	src.Positions = append(src.Positions, r3.Vector{X: 5, Y: 5, Z: 5})

	m, active := looseVertsMask(src)
	assert.Equal(t, 1, active)
	assert.True(t, m.Contains(4))
	for v := 0; v < 4; v++ {
		assert.False(t, m.Contains(v), "vertex %d touches an edge", v)
	}
}

func TestLooseVertsVisibleMask(t *testing.T) {
	t.Run("verts touched only by hidden edges stay loose", func(t *testing.T) {
		src := &mesh.Mesh{
			Positions:   []r3.Vector{{X: 0}, {X: 1}, {X: 2}},
			Edges:       [][2]int{{0, 1}},
			HiddenEdges: []bool{true},
		}

		m, active := looseVertsVisibleMask(src)
		assert.Equal(t, 3, active)
		assert.True(t, m.Contains(0))
		assert.True(t, m.Contains(1))
		assert.True(t, m.Contains(2))
	})

	t.Run("hidden verts are excluded", func(t *testing.T) {
		src := &mesh.Mesh{
			Positions:   []r3.Vector{{X: 0}, {X: 1}, {X: 2}},
			Edges:       [][2]int{{0, 1}},
			HiddenEdges: []bool{true},
			HiddenVerts: []bool{true, false, false},
		}

		m, active := looseVertsVisibleMask(src)
		assert.Equal(t, 2, active)
		assert.False(t, m.Contains(0))
		assert.True(t, m.Contains(1))
		assert.True(t, m.Contains(2))
	})

	t.Run("visible edges claim their verts", func(t *testing.T) {
		src := &mesh.Mesh{
			Positions: []r3.Vector{{X: 0}, {X: 1}, {X: 2}},
			Edges:     [][2]int{{0, 1}},
		}

		m, active := looseVertsVisibleMask(src)
		assert.Equal(t, 1, active)
		assert.True(t, m.Contains(2))
	})
}

func TestLooseEdgesMask(t *testing.T) {
	src := quadMesh()

	m, active := looseEdgesMask(src)
	assert.Equal(t, 1, active)
	assert.True(t, m.Contains(4), "the diagonal belongs to no face")
	for e := 0; e < 4; e++ {
		assert.False(t, m.Contains(e), "edge %d is a face boundary", e)
	}
}

func TestLooseEdgesVisibleMask(t *testing.T) {
	t.Run("edges of hidden faces stay loose", func(t *testing.T) {
		src := quadMesh()
		src.HiddenFaces = []bool{true}

		_, active := looseEdgesVisibleMask(src)
		assert.Equal(t, 5, active)
	})

	t.Run("hidden edges are excluded", func(t *testing.T) {
		src := quadMesh()
		src.HiddenFaces = []bool{true}
		src.HiddenEdges = []bool{false, true, false, false, false}

		m, active := looseEdgesVisibleMask(src)
		assert.Equal(t, 4, active)
		assert.False(t, m.Contains(1))
	})
}

func TestVisibleTrisMask(t *testing.T) {
	t.Run("nothing hidden returns the absent mask", func(t *testing.T) {
		src := twoFaceMesh()

		m, active := visibleTrisMask(src)
		assert.True(t, m.IsAll())
		assert.Equal(t, 2, active)
	})

	t.Run("cursor advances over hidden faces", func(t *testing.T) {
		src := twoFaceMesh()
		src.HiddenFaces = []bool{true, false}

		m, active := visibleTrisMask(src)
		require.Equal(t, 1, active)
		assert.False(t, m.Contains(0))
		assert.True(t, m.Contains(1))
	})
}

func TestLooseLookups(t *testing.T) {
	t.Run("loose verts lookup", func(t *testing.T) {
		src := quadMesh()
		src.Positions = append(src.Positions, r3.Vector{X: 5, Y: 5, Z: 5})
		b := New(src)

		lookup, err := b.LooseVerts()
		require.NoError(t, err)
		require.Equal(t, 1, lookup.Tree().Len())

		// Even a query right next to a connected vertex must answer with
		// the lone loose vertex.
		nearest, ok := lookup.NearestPoint(r3.Vector{X: 0.1, Y: 0, Z: 0})
		require.True(t, ok)
		assert.Equal(t, 4, nearest.Index)
	})

	t.Run("no loose verts yields a queryable nil tree", func(t *testing.T) {
		b := New(quadMesh())

		lookup, err := b.LooseVerts()
		require.NoError(t, err)
		assert.Nil(t, lookup.Tree())

		_, ok := lookup.NearestPoint(r3.Vector{})
		assert.False(t, ok)
	})

	t.Run("loose edges lookup", func(t *testing.T) {
		b := New(quadMesh())

		lookup, err := b.LooseEdges()
		require.NoError(t, err)
		require.Equal(t, 1, lookup.Tree().Len())

		nearest, ok := lookup.NearestPoint(r3.Vector{X: 0.5, Y: 0, Z: 0})
		require.True(t, ok)
		assert.Equal(t, 4, nearest.Index)
	})

	t.Run("loose edges visible lookup", func(t *testing.T) {
		src := quadMesh()
		src.HiddenFaces = []bool{true}
		b := New(src)

		lookup, err := b.LooseEdgesVisible()
		require.NoError(t, err)
		assert.Equal(t, 5, lookup.Tree().Len())
	})
}
