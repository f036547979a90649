package value

import (
	"slices"

	"github.com/hupe1980/vecscript/internal/conv"
)

// Dimensions returns a copy of the extents, or nil for a plain vector.
func (v *Value) Dimensions() []int {
	return slices.Clone(v.dims)
}

// IsMatrix reports whether the value has exactly two axes.
func (v *Value) IsMatrix() bool {
	return len(v.dims) == 2
}

// IsArray reports whether the value has dimensions at all.
func (v *Value) IsArray() bool {
	return v.dims != nil
}

// SetDimensions reinterprets the elements as an array with the given extents,
// axis 0 varying fastest. There must be at least two axes, every extent must
// be positive and their product must equal the count.
func (v *Value) SetDimensions(extents []int) error {
	const op = "SetDimensions"
	if err := v.checkMutable(op); err != nil {
		return err
	}
	if len(extents) < 2 {
		return newError(op, ErrShapeMismatch).withCount(len(extents)).withKind(v.kind)
	}

	for axis, e := range extents {
		if e <= 0 {
			return newError(op, ErrShapeMismatch).withIndex(axis).withKind(v.kind)
		}
	}

	// product never exceeds n, so it cannot overflow.
	n := v.Count()
	product := 1
	for _, e := range extents {
		if e > n/product {
			return newError(op, ErrShapeMismatch).withCount(n).withKind(v.kind)
		}
		product *= e
	}
	if product != n {
		return newError(op, ErrShapeMismatch).withCount(n).withKind(v.kind)
	}

	v.dims = slices.Clone(extents)
	return nil
}

// ClearDimensions turns the value back into a plain vector.
func (v *Value) ClearDimensions() error {
	if err := v.checkMutable("ClearDimensions"); err != nil {
		return err
	}
	v.dims = nil
	return nil
}

// CopyDimensionsFrom gives v the shape of src, validated against v's own
// count. A plain src makes v plain.
func (v *Value) CopyDimensionsFrom(src *Value) error {
	if src.dims == nil {
		return v.ClearDimensions()
	}
	return v.SetDimensions(src.dims)
}

// MatchingDimensions reports whether a and b are both plain vectors or have
// identical extents.
func MatchingDimensions(a, b *Value) bool {
	return slices.Equal(a.dims, b.dims)
}

// shape returns the extents, treating a plain vector as one axis.
func (v *Value) shape() []int {
	if v.dims != nil {
		return v.dims
	}
	return []int{v.Count()}
}

func strides(shape []int) []int {
	s := make([]int, len(shape))
	stride := 1
	for axis, e := range shape {
		s[axis] = stride
		stride *= e
	}
	return s
}

// Subset gathers the elements selected by one index list per axis. Index
// lists may repeat and reorder. The result has one axis per index list with
// the list lengths as extents; with drop, axes of extent one are removed, and
// a result with at most one axis left is a plain vector. An empty index list
// yields an empty result of the same kind.
func (v *Value) Subset(indices [][]int, drop bool) (*Value, error) {
	const op = "Subset"
	shape := v.shape()
	if len(indices) != len(shape) {
		return nil, newError(op, ErrShapeMismatch).withCount(len(indices)).withKind(v.kind)
	}

	counts := make([]int, len(shape))
	total := 1
	for axis, idx := range indices {
		for _, i := range idx {
			if i < 0 || i >= shape[axis] {
				return nil, newError(op, ErrOutOfRange).withIndex(i).withCount(shape[axis]).withKind(v.kind)
			}
		}
		counts[axis] = len(idx)
		total *= len(idx)
	}

	r := v.NewMatching()
	if total == 0 {
		return r, nil
	}
	_ = r.Reserve(total)

	stride := strides(shape)
	pos := make([]int, len(shape))
	for range total {
		src := 0
		for axis, p := range pos {
			src += indices[axis][p] * stride[axis]
		}
		r.appendFrom(v, src)

		for axis := range pos {
			pos[axis]++
			if pos[axis] < counts[axis] {
				break
			}
			pos[axis] = 0
		}
	}

	out := counts
	if drop {
		out = slices.DeleteFunc(slices.Clone(counts), func(c int) bool { return c == 1 })
	}
	if len(out) >= 2 {
		r.dims = out
	}
	return r, nil
}

// SubsetByValues is Subset driven by index vectors. A nil or NULL entry
// selects its whole axis. Integer entries are positions, float entries are
// truncated to positions, and a logical entry selects the positions that are
// true and must match the extent of its axis.
func (v *Value) SubsetByValues(indices []*Value, drop bool) (*Value, error) {
	const op = "SubsetByValues"
	shape := v.shape()
	if len(indices) != len(shape) {
		return nil, newError(op, ErrShapeMismatch).withCount(len(indices)).withKind(v.kind)
	}

	lists := make([][]int, len(shape))
	for axis, idx := range indices {
		l, err := axisPositions(op, idx, shape[axis])
		if err != nil {
			return nil, err
		}
		lists[axis] = l
	}
	return v.Subset(lists, drop)
}

func axisPositions(op string, idx *Value, extent int) ([]int, error) {
	if idx == nil || idx.kind == Null {
		l := make([]int, extent)
		for i := range l {
			l[i] = i
		}
		return l, nil
	}

	switch idx.kind {
	case Logical:
		if idx.Count() != extent {
			return nil, newError(op, ErrShapeMismatch).withCount(idx.Count()).withKind(Logical)
		}
		l := make([]int, 0, extent)
		for i := range extent {
			if idx.logicalAt(i) {
				l = append(l, i)
			}
		}
		return l, nil

	case Int, Float:
		l := make([]int, idx.Count())
		for i := range l {
			x, err := idx.CoerceInt(i)
			if err != nil {
				return nil, err
			}
			p, err := conv.Int64ToInt(x)
			if err != nil {
				return nil, newError(op, ErrOutOfRange).withIndex(i).withKind(idx.kind).withCause(err)
			}
			l[i] = p
		}
		return l, nil
	}

	return nil, newError(op, ErrTypeMismatch).withKind(idx.kind)
}
