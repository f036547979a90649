package value

import "slices"

// Reserve grows capacity to at least n without changing the count.
func (v *Value) Reserve(n int) error {
	const op = "Reserve"
	if err := v.checkMutable(op); err != nil {
		return err
	}
	switch v.kind {
	case Logical:
		v.reserveLogical(op, n)
	case Int:
		v.ints.reserve(n)
	case Float:
		v.floats.reserve(n)
	case String:
		v.strs.reserve(n)
	case Object:
		v.objs.reserve(n)
	}
	v.account(op)
	return nil
}

// ResizeNoInit sets the count to n, growing capacity as needed. New scalar
// slots hold zero values; new object slots hold no element. Shrinking an
// object vector releases the dropped elements. A count change drops the
// dimensions.
func (v *Value) ResizeNoInit(n int) error {
	const op = "ResizeNoInit"
	if err := v.checkMutable(op); err != nil {
		return err
	}
	if n < 0 {
		return newError(op, ErrOutOfRange).withCount(n).withKind(v.kind)
	}
	if n == v.Count() {
		return nil
	}

	switch v.kind {
	case Logical:
		v.reserveLogical(op, n)
		for i := n; i < v.nlogical; i++ {
			v.logicals.Clear(uint(i))
		}
		v.nlogical = n
	case Int:
		v.ints.resize(n)
	case Float:
		v.floats.resize(n)
	case String:
		v.strs.resize(n)
	case Object:
		if n < len(v.objs.items) {
			v.releaseElements(v.objs.items[n:])
		}
		v.objs.resize(n)
	default:
		return newError(op, ErrTypeMismatch).withKind(v.kind)
	}
	v.account(op)
	v.dims = nil
	return nil
}

// Append pushes element idx of from, which must have the same kind.
func (v *Value) Append(from *Value, idx int) error {
	const op = "Append"
	if err := v.checkMutable(op); err != nil {
		return err
	}
	if from.kind != v.kind {
		return newError(op, ErrTypeMismatch).withKind(from.kind).withClass(from.class)
	}
	if err := from.checkIndex(op, idx); err != nil {
		return err
	}
	if v.kind == Object {
		if err := v.adoptElement(op, from.objs.items[idx]); err != nil {
			return err
		}
	}
	v.appendFrom(from, idx)
	v.dims = nil
	return nil
}

// appendFrom pushes from[idx] without checks. Kinds must match.
func (v *Value) appendFrom(from *Value, idx int) {
	const op = "Append"
	switch v.kind {
	case Logical:
		v.reserveLogical(op, v.nlogical+1)
		v.logicals.SetTo(uint(v.nlogical), from.logicalAt(idx))
		v.nlogical++
		return
	case Int:
		v.ints.push(from.ints.items[idx])
	case Float:
		v.floats.push(from.floats.items[idx])
	case String:
		v.strs.push(from.strs.items[idx])
	case Object:
		if v.class == nil && from.class != nil {
			v.bindClass(from.class)
		}
		e := from.objs.items[idx]
		v.retainElement(e)
		v.objs.push(e)
	}
	v.account(op)
}

// EraseAt removes element i, shifting the tail down. An erased object is
// released first. Dimensions are dropped.
func (v *Value) EraseAt(i int) error {
	const op = "EraseAt"
	if err := v.checkMutable(op); err != nil {
		return err
	}
	if err := v.checkIndex(op, i); err != nil {
		return err
	}

	switch v.kind {
	case Logical:
		for j := i; j < v.nlogical-1; j++ {
			v.logicals.SetTo(uint(j), v.logicals.Test(uint(j+1)))
		}
		v.nlogical--
		v.logicals.Clear(uint(v.nlogical))
	case Int:
		v.ints.erase(i)
	case Float:
		v.floats.erase(i)
	case String:
		v.strs.erase(i)
	case Object:
		v.releaseElement(v.objs.items[i])
		v.objs.items[i] = nil
		v.objs.erase(i)
	}
	v.dims = nil
	return nil
}

// Copy returns an independent value with the same kind, class, elements and
// dimensions. The copy is under construction and visible regardless of v.
func (v *Value) Copy() *Value {
	const op = "Copy"
	r := v.NewMatching()
	n := v.Count()

	switch v.kind {
	case Logical:
		if v.logicals != nil {
			r.logicals = v.logicals.Clone()
			r.lcap = v.lcap
			r.nlogical = n
		}
	case Int:
		r.ints.reserve(n)
		r.ints.items = append(r.ints.items, v.ints.items...)
	case Float:
		r.floats.reserve(n)
		r.floats.items = append(r.floats.items, v.floats.items...)
	case String:
		r.strs.reserve(n)
		r.strs.items = append(r.strs.items, v.strs.items...)
	case Object:
		r.objs.reserve(n)
		for _, e := range v.objs.items {
			r.retainElement(e)
			r.objs.items = append(r.objs.items, e)
		}
	}
	r.account(op)
	r.dims = slices.Clone(v.dims)
	return r
}
