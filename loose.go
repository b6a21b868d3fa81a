package meshbvh

import (
	"github.com/hupe1980/meshbvh/mask"
	"github.com/hupe1980/meshbvh/mesh"
)

// The mask providers compute the active subset for the loose and
// hidden-filtered kinds. Active counts are tracked incrementally while
// clearing bits, so no second counting pass is needed.

// looseVertsMask marks vertices referenced by no edge.
func looseVertsMask(src *mesh.Mesh) (mask.Mask, int) {
	count := src.NumVerts()
	m := mask.Full(count)

	for _, e := range src.Edges {
		for _, v := range e {
			if m.Contains(v) {
				m.Clear(v)
				count--
			}
		}
	}

	return m, count
}

// looseVertsVisibleMask marks non-hidden vertices referenced by no
// non-hidden edge. Two passes, in this order: clear every vertex touched
// by a visible edge, then clear the still-active vertices that are
// themselves hidden. A vertex touched only by hidden edges therefore
// stays loose unless it is hidden itself.
func looseVertsVisibleMask(src *mesh.Mesh) (mask.Mask, int) {
	count := src.NumVerts()
	m := mask.Full(count)

	for i, e := range src.Edges {
		if src.EdgeHidden(i) {
			continue
		}
		for _, v := range e {
			if m.Contains(v) {
				m.Clear(v)
				count--
			}
		}
	}

	if count > 0 {
		for v := 0; v < src.NumVerts(); v++ {
			if m.Contains(v) && src.VertHidden(v) {
				m.Clear(v)
				count--
			}
		}
	}

	return m, count
}

// looseEdgesMask marks edges referenced by no face corner.
func looseEdgesMask(src *mesh.Mesh) (mask.Mask, int) {
	count := src.NumEdges()
	m := mask.Full(count)

	for f := 0; f < src.NumFaces(); f++ {
		for c := src.FaceOffsets[f]; c < src.FaceOffsets[f+1]; c++ {
			e := src.CornerEdges[c]
			if m.Contains(e) {
				m.Clear(e)
				count--
			}
		}
	}

	return m, count
}

// looseEdgesVisibleMask is the edge counterpart of
// looseVertsVisibleMask: visible-face-corner pass, then hidden-edge pass.
func looseEdgesVisibleMask(src *mesh.Mesh) (mask.Mask, int) {
	count := src.NumEdges()
	m := mask.Full(count)

	for f := 0; f < src.NumFaces(); f++ {
		if src.FaceHidden(f) {
			continue
		}
		for c := src.FaceOffsets[f]; c < src.FaceOffsets[f+1]; c++ {
			e := src.CornerEdges[c]
			if m.Contains(e) {
				m.Clear(e)
				count--
			}
		}
	}

	if count > 0 {
		for e := 0; e < src.NumEdges(); e++ {
			if m.Contains(e) && src.EdgeHidden(e) {
				m.Clear(e)
				count--
			}
		}
	}

	return m, count
}

// visibleTrisMask marks the corner-triangles of non-hidden faces. When no
// face is hidden it returns the absent mask without allocating. The
// triangle cursor advances for hidden faces too, preserving the
// positional face-to-triangle correspondence.
func visibleTrisMask(src *mesh.Mesh) (mask.Mask, int) {
	if !src.AnyFaceHidden() {
		return mask.All(), len(src.CornerTris)
	}

	m := mask.New()
	active := 0
	tri := 0
	for f := 0; f < src.NumFaces(); f++ {
		n := mesh.FaceTrisNum(src.FaceCornerCount(f))
		if src.FaceHidden(f) {
			tri += n
			continue
		}
		for j := 0; j < n; j++ {
			m.Set(tri)
			tri++
			active++
		}
	}

	return m, active
}
