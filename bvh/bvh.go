// Package bvh implements the generic bounding-volume-hierarchy engine the
// mesh lookups are built on: primitives are inserted as axis-aligned
// bounding volumes, balanced once into a binary hierarchy, and then
// queried read-only for nearest points and ray/sphere casts.
//
// A balanced tree is immutable and safe for unlimited concurrent queries;
// insertion and balancing must happen from a single goroutine.
package bvh

import (
	"math"

	"github.com/golang/geo/r3"
)

// Options contains configuration options for a tree.
type Options struct {
	// Epsilon inflates every inserted bounding volume on all sides.
	// Use it to catch hits on the boundary of thin primitives.
	Epsilon float64

	// LeafSize is the maximum number of primitives stored per leaf node.
	LeafSize int
}

// DefaultOptions contains the default configuration options for a tree.
var DefaultOptions = Options{
	Epsilon:  0,
	LeafSize: 4,
}

// primitive is one inserted element: its id and inflated bounding box.
type primitive struct {
	id       int
	min, max r3.Vector
}

// node is one hierarchy node. Leaves reference a contiguous primitive
// range; internal nodes reference two children.
type node struct {
	min, max    r3.Vector
	left, right int32 // -1 for leaves
	start, end  int32 // primitive range, leaves only
}

// Tree is a BVH over inserted primitives. The zero Tree is not usable;
// create one with New.
type Tree struct {
	opts     Options
	prims    []primitive
	nodes    []node
	balanced bool
}

// New creates a tree sized for the given number of primitives.
func New(capacity int, optFns ...func(o *Options)) *Tree {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.LeafSize < 1 {
		opts.LeafSize = DefaultOptions.LeafSize
	}

	return &Tree{
		opts:  opts,
		prims: make([]primitive, 0, capacity),
	}
}

// Len returns the number of inserted primitives.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.prims)
}

// Insert adds a primitive identified by id, bounded by the given points
// (one for a vertex, two for an edge, three or four for a face). Must not
// be called after Balance.
func (t *Tree) Insert(id int, points ...r3.Vector) {
	if len(points) == 0 {
		return
	}

	min := points[0]
	max := points[0]
	for _, p := range points[1:] {
		min = vecMin(min, p)
		max = vecMax(max, p)
	}

	if eps := t.opts.Epsilon; eps > 0 {
		pad := r3.Vector{X: eps, Y: eps, Z: eps}
		min = min.Sub(pad)
		max = max.Add(pad)
	}

	t.prims = append(t.prims, primitive{id: id, min: min, max: max})
	t.balanced = false
}

// Balance builds the hierarchy over the inserted primitives. It must be
// called once, after all insertions and before any query.
func (t *Tree) Balance() {
	t.nodes = t.nodes[:0]
	if len(t.prims) > 0 {
		t.buildNode(0, len(t.prims))
	}
	t.balanced = true
}

// buildNode partitions prims[start:end] into a subtree and returns the
// index of its root node. Primitives are split at the median of the
// longest axis of their centroid bounds.
func (t *Tree) buildNode(start, end int) int32 {
	n := node{
		min:   r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		max:   r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
		left:  -1,
		right: -1,
	}
	for i := start; i < end; i++ {
		n.min = vecMin(n.min, t.prims[i].min)
		n.max = vecMax(n.max, t.prims[i].max)
	}

	if end-start <= t.opts.LeafSize {
		n.start = int32(start)
		n.end = int32(end)
		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, n)
		return idx
	}

	axis := longestAxis(n.min, n.max)
	mid := medianPartition(t.prims[start:end], axis) + start
	if mid == start || mid == end {
		// All centroids coincide along the split axis; force an even split
		// so the recursion always terminates.
		mid = (start + end) / 2
	}

	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, n)

	left := t.buildNode(start, mid)
	right := t.buildNode(mid, end)
	t.nodes[idx].left = left
	t.nodes[idx].right = right

	return idx
}

// medianPartition reorders prims so that primitives whose centroid lies
// below the median along axis come first, returning the split offset.
func medianPartition(prims []primitive, axis int) int {
	mid := len(prims) / 2
	quickselect(prims, mid, axis)
	return mid
}

// quickselect places the k-th smallest centroid (along axis) at index k,
// partitioning the rest around it.
func quickselect(prims []primitive, k, axis int) {
	lo, hi := 0, len(prims)-1
	for lo < hi {
		pivot := centroid(&prims[(lo+hi)/2], axis)
		i, j := lo, hi
		for i <= j {
			for centroid(&prims[i], axis) < pivot {
				i++
			}
			for centroid(&prims[j], axis) > pivot {
				j--
			}
			if i <= j {
				prims[i], prims[j] = prims[j], prims[i]
				i++
				j--
			}
		}
		if k <= j {
			hi = j
		} else if k >= i {
			lo = i
		} else {
			return
		}
	}
}

func centroid(p *primitive, axis int) float64 {
	return axisValue(p.min, axis) + axisValue(p.max, axis)
}

func axisValue(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func longestAxis(min, max r3.Vector) int {
	side := max.Sub(min)
	if side.X >= side.Y && side.X >= side.Z {
		return 0
	}
	if side.Y >= side.Z {
		return 1
	}
	return 2
}

func vecMin(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func vecMax(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}
