package meshbvh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindVerts, "Verts"},
		{KindEdges, "Edges"},
		{KindFaces, "Faces"},
		{KindCornerTris, "CornerTris"},
		{KindCornerTrisVisible, "CornerTrisVisible"},
		{KindLooseVerts, "LooseVerts"},
		{KindLooseVertsVisible, "LooseVertsVisible"},
		{KindLooseEdges, "LooseEdges"},
		{KindLooseEdgesVisible, "LooseEdgesVisible"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}

	assert.Equal(t, "Unknown", Kind(200).String())
}

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t,
		&ErrMaskSizeMismatch{Kind: KindVerts, Elements: 4},
		"Verts: mask exceeds the element range [0, 4)")
	assert.EqualError(t,
		&ErrActiveCountMismatch{Kind: KindEdges, Expected: 3, Inserted: 1},
		"Edges: active count mismatch: expected 3, inserted 1")
	assert.EqualError(t,
		&ErrIndexOutOfRange{Kind: KindVerts, Index: 9, Count: 4},
		"Verts: index 9 out of range [0, 4)")
	assert.EqualError(t,
		&ErrMissingGeometry{Kind: KindCornerTris, Array: "corner verts"},
		"CornerTris: source mesh is missing the corner verts array")
}
