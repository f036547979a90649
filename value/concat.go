package value

// Concatenate joins values in order into a new vector. NULL and void
// operands are skipped. The result takes the highest kind among the operands
// (string > float > integer > logical) and every element is converted to it.
// Objects cannot be mixed with other kinds and must share one class. If
// nothing remains, the result is NULL.
func Concatenate(values ...*Value) (*Value, error) {
	const op = "Concatenate"

	var (
		kind     = Void
		class    Class
		hasObj   bool
		hasOther bool
		total    int
	)
	for _, v := range values {
		if v == nil || v.kind == Void || v.kind == Null {
			continue
		}
		total += v.Count()
		if v.kind == Object {
			hasObj = true
			if v.class != nil {
				if class != nil && class != v.class {
					return nil, newError(op, ErrTypeMismatch).withKind(Object).withClass(v.class)
				}
				class = v.class
			}
			continue
		}
		hasOther = true
		if v.kind.rank() > kind.rank() {
			kind = v.kind
		}
	}

	switch {
	case hasObj && hasOther:
		return nil, newError(op, ErrTypeMismatch).withKind(Object).withClass(class)
	case hasObj:
		kind = Object
	case !hasOther:
		return NewNull(), nil
	}

	r := NewOfKind(kind, class)
	_ = r.Reserve(total)

	for _, v := range values {
		if v == nil || v.kind == Void || v.kind == Null {
			continue
		}
		if v.kind == kind {
			r.appendAll(v)
			continue
		}
		if err := r.appendCoerced(op, v); err != nil {
			r.Release()
			return nil, err
		}
	}
	return r, nil
}

// appendCoerced pushes every element of src converted to v's kind.
func (v *Value) appendCoerced(op string, src *Value) error {
	for i := range src.Count() {
		var err error
		switch v.kind {
		case Int:
			var x int64
			if x, err = src.CoerceInt(i); err == nil {
				v.ints.push(x)
			}
		case Float:
			var f float64
			if f, err = src.CoerceFloat(i); err == nil {
				v.floats.push(f)
			}
		case String:
			var s string
			if s, err = src.CoerceString(i); err == nil {
				v.strs.push(s)
			}
		default:
			err = conversionError(op, i, src.kind, nil)
		}
		if err != nil {
			return err
		}
	}
	v.account(op)
	return nil
}
