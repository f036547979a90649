package value

import (
	"strings"

	"github.com/hupe1980/vecscript/internal/parallel"
)

// Sort orders the elements in place. Floats place NaN last in either
// direction. Objects cannot be sorted directly; see SortBy.
func (v *Value) Sort(ascending bool) error {
	const op = "Sort"
	if err := v.checkMutable(op); err != nil {
		return err
	}

	k := settings().Kernel
	switch v.kind {
	case Logical:
		v.sortLogical(ascending)
	case Int:
		parallel.SortOrdered(k, v.ints.items, ascending)
	case Float:
		parallel.SortFloats(k, v.floats.items, ascending)
	case String:
		parallel.SortOrdered(k, v.strs.items, ascending)
	case Object:
		return newError(op, ErrTypeMismatch).withKind(v.kind).withClass(v.class)
	}
	return nil
}

func (v *Value) sortLogical(ascending bool) {
	n := v.nlogical
	if n < 2 {
		return
	}
	t := int(v.logicals.Count())
	v.logicals.ClearAll()

	lo, hi := n-t, n
	if !ascending {
		lo, hi = 0, t
	}
	for i := lo; i < hi; i++ {
		v.logicals.Set(uint(i))
	}
}

func (v *Value) logicalSlice() []bool {
	out := make([]bool, v.nlogical)
	for i := range out {
		out[i] = v.logicalAt(i)
	}
	return out
}

func logicalLess(ascending bool) func(a, b bool) bool {
	if ascending {
		return func(a, b bool) bool { return !a && b }
	}
	return func(a, b bool) bool { return a && !b }
}

// Order returns the permutation that stably sorts v, leaving v untouched.
// NaN is placed last in either direction.
func (v *Value) Order(ascending bool) ([]int, error) {
	k := settings().Kernel
	switch v.kind {
	case Void, Null:
		return []int{}, nil
	case Logical:
		return parallel.Order(k, v.logicalSlice(), logicalLess(ascending)), nil
	case Int:
		return parallel.Order(k, v.ints.items, parallel.OrderedLess[int64](ascending)), nil
	case Float:
		return parallel.Order(k, v.floats.items, parallel.FloatLess[float64](ascending)), nil
	case String:
		return parallel.Order(k, v.strs.items, parallel.OrderedLess[string](ascending)), nil
	default:
		return nil, newError("Order", ErrTypeMismatch).withKind(v.kind).withClass(v.class)
	}
}

// SortBy orders the elements of an object vector by property, which must
// yield one logical, integer, float or string per element. Equal keys keep
// their relative order.
func (v *Value) SortBy(property string, ascending bool) error {
	const op = "SortBy"
	if err := v.checkMutable(op); err != nil {
		return err
	}
	if err := v.checkKind(op, Object); err != nil {
		return err
	}
	n := len(v.objs.items)
	if n < 2 {
		return nil
	}

	keys, err := v.GetPropertyOfElements(property)
	if err != nil {
		return err
	}
	defer keys.Release()

	if keys.Count() != n {
		return newError(op, ErrPropertyArity).withName(property).withClass(v.class).withCount(keys.Count())
	}
	if keys.kind == Object {
		return newError(op, ErrTypeMismatch).withName(property).withKind(keys.kind)
	}

	idx, err := keys.Order(ascending)
	if err != nil {
		return err
	}

	sorted := make([]Element, n)
	for i, j := range idx {
		sorted[i] = v.objs.items[j]
	}
	copy(v.objs.items, sorted)
	return nil
}

func cmp3[T int64 | float64 | string](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Compare compares a[i] with b[j] after promoting both to the higher of
// their kinds (string > float > integer > logical) and returns -1, 0 or 1.
// Objects only compare with objects and only for identity: equal elements
// yield 0, anything else -1. NaN compares equal to everything.
func Compare(a *Value, i int, b *Value, j int) (int, error) {
	const op = "Compare"
	for _, x := range []*Value{a, b} {
		if x.kind == Void || x.kind == Null {
			return 0, newError(op, ErrTypeMismatch).withKind(x.kind)
		}
	}

	if a.kind == Object || b.kind == Object {
		if a.kind != b.kind {
			return 0, newError(op, ErrTypeMismatch).withKind(Object)
		}
		x, err := a.ObjectAt(i)
		if err != nil {
			return 0, err
		}
		y, err := b.ObjectAt(j)
		if err != nil {
			return 0, err
		}
		if x == y {
			return 0, nil
		}
		return -1, nil
	}

	kind := a.kind
	if b.kind.rank() > kind.rank() {
		kind = b.kind
	}

	switch kind {
	case String:
		x, err := a.CoerceString(i)
		if err != nil {
			return 0, err
		}
		y, err := b.CoerceString(j)
		if err != nil {
			return 0, err
		}
		return strings.Compare(x, y), nil
	case Float:
		x, err := a.CoerceFloat(i)
		if err != nil {
			return 0, err
		}
		y, err := b.CoerceFloat(j)
		if err != nil {
			return 0, err
		}
		return cmp3(x, y), nil
	default:
		x, err := a.CoerceInt(i)
		if err != nil {
			return 0, err
		}
		y, err := b.CoerceInt(j)
		if err != nil {
			return 0, err
		}
		return cmp3(x, y), nil
	}
}
