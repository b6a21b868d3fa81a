package meshbvh

import (
	"fmt"
)

// ErrMaskSizeMismatch indicates a mask with active indices beyond the
// element range of its kind. This is a programmer error: the mask was
// computed for different geometry.
type ErrMaskSizeMismatch struct {
	Kind     Kind
	Elements int
}

func (e *ErrMaskSizeMismatch) Error() string {
	return fmt.Sprintf("%s: mask exceeds the element range [0, %d)", e.Kind, e.Elements)
}

// ErrActiveCountMismatch indicates that the number of elements inserted
// into a tree did not match the mask's declared active count. This is a
// programmer error: the mask and the geometry arrays disagree.
type ErrActiveCountMismatch struct {
	Kind     Kind
	Expected int
	Inserted int
}

func (e *ErrActiveCountMismatch) Error() string {
	return fmt.Sprintf("%s: active count mismatch: expected %d, inserted %d", e.Kind, e.Expected, e.Inserted)
}

// ErrIndexOutOfRange indicates an explicit subset index outside the
// element range of its kind.
type ErrIndexOutOfRange struct {
	Kind  Kind
	Index int
	Count int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Kind, e.Index, e.Count)
}

// ErrMissingGeometry indicates a lookup for a kind whose required
// geometry arrays were not supplied on the source mesh.
type ErrMissingGeometry struct {
	Kind  Kind
	Array string
}

func (e *ErrMissingGeometry) Error() string {
	return fmt.Sprintf("%s: source mesh is missing the %s array", e.Kind, e.Array)
}
