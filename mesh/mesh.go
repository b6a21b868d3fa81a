// Package mesh defines the read-only geometry source views the BVH
// lookups are built over.
//
// Every slice is borrowed from the owning object: meshbvh never copies or
// mutates it, and the source must outlive any tree or Lookup built from
// it. Mutating topology while queries are in flight is undefined;
// invalidate the affected lookups first.
package mesh

import (
	"github.com/golang/geo/r3"
)

// Face is a legacy tessellated-face record of up to four vertex indices.
// V4 == 0 marks a triangle, matching the legacy face format where vertex
// zero can never be a quad's fourth corner.
type Face struct {
	V1, V2, V3, V4 int
}

// IsQuad reports whether the face carries a fourth vertex.
func (f Face) IsQuad() bool {
	return f.V4 != 0
}

// Mesh bundles borrowed views into a surface mesh's geometry, topology
// and visibility state. Only the arrays a given tree kind reads need to
// be populated.
type Mesh struct {
	// Positions holds one point per vertex.
	Positions []r3.Vector

	// Edges lists unordered vertex-index pairs.
	Edges [][2]int

	// CornerVerts maps face corners to vertex indices.
	CornerVerts []int

	// CornerEdges maps face corners to edge indices.
	CornerEdges []int

	// CornerTris are the fan-triangulated faces, each naming three
	// corners. A face of k corners contributes k-2 consecutive entries.
	CornerTris [][3]int

	// FaceOffsets delimits each face's corner run: face i owns corners
	// [FaceOffsets[i], FaceOffsets[i+1]). Length is NumFaces+1.
	FaceOffsets []int

	// Faces holds the legacy tessellated faces.
	Faces []Face

	// HiddenVerts, HiddenEdges and HiddenFaces flag hidden elements per
	// domain. A nil slice means nothing in that domain is hidden.
	HiddenVerts []bool
	HiddenEdges []bool
	HiddenFaces []bool
}

// NumVerts returns the vertex count.
func (m *Mesh) NumVerts() int {
	return len(m.Positions)
}

// NumEdges returns the edge count.
func (m *Mesh) NumEdges() int {
	return len(m.Edges)
}

// NumFaces returns the polygon count.
func (m *Mesh) NumFaces() int {
	if len(m.FaceOffsets) == 0 {
		return 0
	}
	return len(m.FaceOffsets) - 1
}

// FaceCornerCount returns the number of corners of face i.
func (m *Mesh) FaceCornerCount(i int) int {
	return m.FaceOffsets[i+1] - m.FaceOffsets[i]
}

// FaceTriStart returns the index of the first corner-triangle produced by
// face i. Faces are fan-triangulated in order, so the mapping is
// positional: a face starting at corner c contributes triangles starting
// at c - 2*i.
func (m *Mesh) FaceTriStart(i int) int {
	return m.FaceOffsets[i] - 2*i
}

// VertHidden reports whether vertex i is hidden.
func (m *Mesh) VertHidden(i int) bool {
	return m.HiddenVerts != nil && m.HiddenVerts[i]
}

// EdgeHidden reports whether edge i is hidden.
func (m *Mesh) EdgeHidden(i int) bool {
	return m.HiddenEdges != nil && m.HiddenEdges[i]
}

// FaceHidden reports whether face i is hidden.
func (m *Mesh) FaceHidden(i int) bool {
	return m.HiddenFaces != nil && m.HiddenFaces[i]
}

// AnyFaceHidden reports whether at least one face is hidden. The nil
// fast path allows callers to skip mask allocation entirely.
func (m *Mesh) AnyFaceHidden() bool {
	for _, h := range m.HiddenFaces {
		if h {
			return true
		}
	}
	return false
}

// FaceTrisNum returns the number of triangles a face of the given corner
// count fans out into.
func FaceTrisNum(corners int) int {
	if corners < 3 {
		return 0
	}
	return corners - 2
}

// PointCloud is the borrowed view into a point cloud: positions only.
// The same lifetime contract as Mesh applies.
type PointCloud struct {
	Positions []r3.Vector
}

// NumPoints returns the point count.
func (p *PointCloud) NumPoints() int {
	return len(p.Positions)
}
