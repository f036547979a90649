package value

import (
	"github.com/hupe1980/vecscript/internal/conv"
)

func (v *Value) checkIndex(op string, i int) error {
	if n := v.Count(); i < 0 || i >= n {
		return newError(op, ErrOutOfRange).withIndex(i).withCount(n).withKind(v.kind)
	}
	return nil
}

func (v *Value) checkKind(op string, k Kind) error {
	if v.kind != k {
		return newError(op, ErrTypeMismatch).withKind(v.kind).withClass(v.class)
	}
	return nil
}

func (v *Value) checkMutable(op string) error {
	if v.state != stateConstructing {
		return newError(op, ErrImmutableValue).withKind(v.kind)
	}
	return nil
}

func (v *Value) checkRead(op string, k Kind, i int) error {
	if err := v.checkKind(op, k); err != nil {
		return err
	}
	return v.checkIndex(op, i)
}

func (v *Value) checkWrite(op string, k Kind, i int) error {
	if err := v.checkMutable(op); err != nil {
		return err
	}
	return v.checkRead(op, k, i)
}

func (v *Value) logicalAt(i int) bool {
	return v.logicals.Test(uint(i))
}

func conversionError(op string, i int, from Kind, cause error) error {
	return newError(op, ErrUnsupportedConversion).withIndex(i).withKind(from).withCause(cause)
}

// LogicalAt returns element i of a logical vector.
func (v *Value) LogicalAt(i int) (bool, error) {
	if err := v.checkRead("LogicalAt", Logical, i); err != nil {
		return false, err
	}
	return v.logicalAt(i), nil
}

// IntAt returns element i of an integer vector.
func (v *Value) IntAt(i int) (int64, error) {
	if err := v.checkRead("IntAt", Int, i); err != nil {
		return 0, err
	}
	return v.ints.items[i], nil
}

// FloatAt returns element i of a float vector.
func (v *Value) FloatAt(i int) (float64, error) {
	if err := v.checkRead("FloatAt", Float, i); err != nil {
		return 0, err
	}
	return v.floats.items[i], nil
}

// StringAt returns element i of a string vector.
func (v *Value) StringAt(i int) (string, error) {
	if err := v.checkRead("StringAt", String, i); err != nil {
		return "", err
	}
	return v.strs.items[i], nil
}

// ObjectAt returns element i of an object vector. The element is borrowed.
func (v *Value) ObjectAt(i int) (Element, error) {
	if err := v.checkRead("ObjectAt", Object, i); err != nil {
		return nil, err
	}
	return v.objs.items[i], nil
}

// Ints returns the backing slice of an integer vector, or nil for other
// kinds. The slice is only valid until the next mutation.
func (v *Value) Ints() []int64 {
	if v.kind != Int {
		return nil
	}
	return v.ints.items
}

// Floats returns the backing slice of a float vector, or nil.
func (v *Value) Floats() []float64 {
	if v.kind != Float {
		return nil
	}
	return v.floats.items
}

// Strings returns the backing slice of a string vector, or nil.
func (v *Value) Strings() []string {
	if v.kind != String {
		return nil
	}
	return v.strs.items
}

// Objects returns the backing slice of an object vector, or nil.
func (v *Value) Objects() []Element {
	if v.kind != Object {
		return nil
	}
	return v.objs.items
}

// CoerceLogical returns element i converted to logical. Zero is false, NaN
// cannot convert, strings accept T/TRUE/true and F/FALSE/false.
func (v *Value) CoerceLogical(i int) (bool, error) {
	const op = "CoerceLogical"
	if err := v.checkIndex(op, i); err != nil {
		return false, err
	}
	switch v.kind {
	case Logical:
		return v.logicalAt(i), nil
	case Int:
		return v.ints.items[i] != 0, nil
	case Float:
		b, err := conv.Float64ToBool(v.floats.items[i])
		if err != nil {
			return false, conversionError(op, i, v.kind, err)
		}
		return b, nil
	case String:
		b, err := conv.ParseBool(v.strs.items[i])
		if err != nil {
			return false, conversionError(op, i, v.kind, err)
		}
		return b, nil
	default:
		return false, conversionError(op, i, v.kind, nil)
	}
}

// CoerceInt returns element i converted to integer. Floats must be finite and
// within int64 range; they are truncated toward zero.
func (v *Value) CoerceInt(i int) (int64, error) {
	const op = "CoerceInt"
	if err := v.checkIndex(op, i); err != nil {
		return 0, err
	}
	switch v.kind {
	case Logical:
		return conv.BoolToInt64(v.logicalAt(i)), nil
	case Int:
		return v.ints.items[i], nil
	case Float:
		x, err := conv.Float64ToInt64(v.floats.items[i])
		if err != nil {
			return 0, conversionError(op, i, v.kind, err)
		}
		return x, nil
	case String:
		x, err := conv.ParseInt(v.strs.items[i])
		if err != nil {
			return 0, conversionError(op, i, v.kind, err)
		}
		return x, nil
	default:
		return 0, conversionError(op, i, v.kind, nil)
	}
}

// CoerceFloat returns element i converted to float.
func (v *Value) CoerceFloat(i int) (float64, error) {
	const op = "CoerceFloat"
	if err := v.checkIndex(op, i); err != nil {
		return 0, err
	}
	switch v.kind {
	case Logical:
		return conv.BoolToFloat64(v.logicalAt(i)), nil
	case Int:
		return float64(v.ints.items[i]), nil
	case Float:
		return v.floats.items[i], nil
	case String:
		f, err := conv.ParseFloat(v.strs.items[i])
		if err != nil {
			return 0, conversionError(op, i, v.kind, err)
		}
		return f, nil
	default:
		return 0, conversionError(op, i, v.kind, nil)
	}
}

// CoerceString returns element i converted to string.
func (v *Value) CoerceString(i int) (string, error) {
	const op = "CoerceString"
	if err := v.checkIndex(op, i); err != nil {
		return "", err
	}
	switch v.kind {
	case Logical:
		return conv.FormatBool(v.logicalAt(i)), nil
	case Int:
		return conv.FormatInt(v.ints.items[i]), nil
	case Float:
		return conv.FormatFloat(v.floats.items[i]), nil
	case String:
		return v.strs.items[i], nil
	default:
		return "", conversionError(op, i, v.kind, nil)
	}
}

// SetLogical writes element i of a logical vector.
func (v *Value) SetLogical(i int, b bool) error {
	if err := v.checkWrite("SetLogical", Logical, i); err != nil {
		return err
	}
	v.logicals.SetTo(uint(i), b)
	return nil
}

// SetInt writes element i of an integer vector.
func (v *Value) SetInt(i int, x int64) error {
	if err := v.checkWrite("SetInt", Int, i); err != nil {
		return err
	}
	v.ints.items[i] = x
	return nil
}

// SetFloat writes element i of a float vector.
func (v *Value) SetFloat(i int, f float64) error {
	if err := v.checkWrite("SetFloat", Float, i); err != nil {
		return err
	}
	v.floats.items[i] = f
	return nil
}

// SetString writes element i of a string vector.
func (v *Value) SetString(i int, s string) error {
	if err := v.checkWrite("SetString", String, i); err != nil {
		return err
	}
	v.strs.items[i] = s
	return nil
}

// SetObject writes element i of an object vector. The new element is
// retained before the previous occupant is released. A nil e empties the
// slot.
func (v *Value) SetObject(i int, e Element) error {
	const op = "SetObject"
	if err := v.checkWrite(op, Object, i); err != nil {
		return err
	}
	if e != nil {
		if err := v.adoptElement(op, e); err != nil {
			return err
		}
	}
	v.retainElement(e)
	old := v.objs.items[i]
	v.objs.items[i] = e
	v.releaseElement(old)
	return nil
}

// SetValueAt writes element 0 of src into element i, converting it to v's
// kind. Objects are never converted.
func (v *Value) SetValueAt(i int, src *Value) error {
	const op = "SetValueAt"
	if err := v.checkMutable(op); err != nil {
		return err
	}
	if err := v.checkIndex(op, i); err != nil {
		return err
	}
	if src.Count() == 0 {
		return newError(op, ErrOutOfRange).withIndex(0).withCount(0).withKind(src.kind)
	}

	switch v.kind {
	case Logical:
		b, err := src.CoerceLogical(0)
		if err != nil {
			return err
		}
		v.logicals.SetTo(uint(i), b)
	case Int:
		x, err := src.CoerceInt(0)
		if err != nil {
			return err
		}
		v.ints.items[i] = x
	case Float:
		f, err := src.CoerceFloat(0)
		if err != nil {
			return err
		}
		v.floats.items[i] = f
	case String:
		s, err := src.CoerceString(0)
		if err != nil {
			return err
		}
		v.strs.items[i] = s
	case Object:
		if src.kind != Object {
			return conversionError(op, 0, src.kind, nil)
		}
		return v.SetObject(i, src.objs.items[0])
	}
	return nil
}

// ValueAt returns element i as a new singleton value of the same kind.
func (v *Value) ValueAt(i int) (*Value, error) {
	if err := v.checkIndex("ValueAt", i); err != nil {
		return nil, err
	}
	r := v.NewMatching()
	r.appendFrom(v, i)
	return r, nil
}

func (v *Value) checkPush(op string, k Kind) error {
	if err := v.checkMutable(op); err != nil {
		return err
	}
	return v.checkKind(op, k)
}

// PushLogical appends to a logical vector.
func (v *Value) PushLogical(vals ...bool) error {
	const op = "PushLogical"
	if err := v.checkPush(op, Logical); err != nil {
		return err
	}
	v.reserveLogical(op, v.nlogical+len(vals))
	for _, b := range vals {
		v.logicals.SetTo(uint(v.nlogical), b)
		v.nlogical++
	}
	v.dims = nil
	return nil
}

// PushInt appends to an integer vector.
func (v *Value) PushInt(vals ...int64) error {
	const op = "PushInt"
	if err := v.checkPush(op, Int); err != nil {
		return err
	}
	v.ints.reserve(len(v.ints.items) + len(vals))
	v.ints.items = append(v.ints.items, vals...)
	v.account(op)
	v.dims = nil
	return nil
}

// PushFloat appends to a float vector.
func (v *Value) PushFloat(vals ...float64) error {
	const op = "PushFloat"
	if err := v.checkPush(op, Float); err != nil {
		return err
	}
	v.floats.reserve(len(v.floats.items) + len(vals))
	v.floats.items = append(v.floats.items, vals...)
	v.account(op)
	v.dims = nil
	return nil
}

// PushString appends to a string vector.
func (v *Value) PushString(vals ...string) error {
	const op = "PushString"
	if err := v.checkPush(op, String); err != nil {
		return err
	}
	v.strs.reserve(len(v.strs.items) + len(vals))
	v.strs.items = append(v.strs.items, vals...)
	v.account(op)
	v.dims = nil
	return nil
}

// PushObject appends to an object vector, retaining each element if the
// class uses retain/release. An object vector without a class adopts the
// class of the first element pushed.
func (v *Value) PushObject(elems ...Element) error {
	const op = "PushObject"
	if err := v.checkPush(op, Object); err != nil {
		return err
	}
	v.objs.reserve(len(v.objs.items) + len(elems))
	v.account(op)
	for _, e := range elems {
		if err := v.pushObject(op, e); err != nil {
			return err
		}
	}
	v.dims = nil
	return nil
}

func (v *Value) pushObject(op string, e Element) error {
	if err := v.adoptElement(op, e); err != nil {
		return err
	}
	v.retainElement(e)
	v.objs.push(e)
	v.account(op)
	return nil
}
