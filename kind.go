package meshbvh

// Kind identifies which primitives of the source mesh a tree is built
// over. It determines the geometry arrays a build reads and the callback
// pair a Lookup is bound to.
type Kind uint8

// Constants representing the tree kinds, one cache slot each.
const (
	// KindVerts covers every vertex.
	KindVerts Kind = iota

	// KindEdges covers every edge.
	KindEdges

	// KindFaces covers the legacy tessellated faces (tris and quads).
	KindFaces

	// KindCornerTris covers every corner-triangle.
	KindCornerTris

	// KindCornerTrisVisible covers corner-triangles of non-hidden faces.
	KindCornerTrisVisible

	// KindLooseVerts covers vertices referenced by no edge.
	KindLooseVerts

	// KindLooseVertsVisible covers non-hidden vertices referenced by no
	// non-hidden edge.
	KindLooseVertsVisible

	// KindLooseEdges covers edges referenced by no face.
	KindLooseEdges

	// KindLooseEdgesVisible covers non-hidden edges referenced by no
	// non-hidden face.
	KindLooseEdgesVisible

	numKinds
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindVerts:
		return "Verts"
	case KindEdges:
		return "Edges"
	case KindFaces:
		return "Faces"
	case KindCornerTris:
		return "CornerTris"
	case KindCornerTrisVisible:
		return "CornerTrisVisible"
	case KindLooseVerts:
		return "LooseVerts"
	case KindLooseVertsVisible:
		return "LooseVertsVisible"
	case KindLooseEdges:
		return "LooseEdges"
	case KindLooseEdgesVisible:
		return "LooseEdgesVisible"
	default:
		return "Unknown"
	}
}
