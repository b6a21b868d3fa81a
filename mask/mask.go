// Package mask provides the optional active-subset mask that restricts a
// BVH build to a subset of element indices.
//
// Presence is explicit: the zero value (or All) means every element is
// active, while a present mask activates exactly its set bits. This keeps
// a genuinely empty mesh distinguishable from an unmasked one.
package mask

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Mask restricts a set of element indices. The zero value is the absent
// mask: every element is active.
type Mask struct {
	bm *roaring.Bitmap
}

// All returns the absent mask, under which every element is active.
func All() Mask {
	return Mask{}
}

// New returns a present, empty mask. No element is active until Set.
func New() Mask {
	return Mask{bm: roaring.New()}
}

// Full returns a present mask with indices [0, n) all active.
func Full(n int) Mask {
	bm := roaring.New()
	if n > 0 {
		bm.AddRange(0, uint64(n))
	}
	return Mask{bm: bm}
}

// FromIndices returns a present mask activating exactly the given indices.
func FromIndices(indices ...int) Mask {
	bm := roaring.New()
	for _, i := range indices {
		bm.Add(uint32(i))
	}
	return Mask{bm: bm}
}

// IsAll reports whether the mask is absent (every element active).
func (m Mask) IsAll() bool {
	return m.bm == nil
}

// Contains reports whether element i is active.
func (m Mask) Contains(i int) bool {
	if m.bm == nil {
		return true
	}
	return m.bm.Contains(uint32(i))
}

// Set activates element i. Panics on an absent mask.
func (m Mask) Set(i int) {
	m.bm.Add(uint32(i))
}

// Clear deactivates element i. Panics on an absent mask.
func (m Mask) Clear(i int) {
	m.bm.Remove(uint32(i))
}

// Fits reports whether every active index lies below total. The absent
// mask fits any total.
func (m Mask) Fits(total int) bool {
	if m.bm == nil || m.bm.IsEmpty() {
		return true
	}
	return int(m.bm.Maximum()) < total
}

// Count returns the number of active elements, given the total element
// count the mask applies to.
func (m Mask) Count(total int) int {
	if m.bm == nil {
		return total
	}
	return int(m.bm.GetCardinality())
}

// Indices iterates over the active indices of a present mask in
// ascending order. Panics on an absent mask, whose domain is unknown.
func (m Mask) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := m.bm.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}
