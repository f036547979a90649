package value

import (
	"github.com/hupe1980/vecscript/internal/parallel"
)

// Sum returns the sum of a logical, integer or float vector. Logical sums
// count true elements. Integer sums that overflow are computed in float.
func (v *Value) Sum() (*Value, error) {
	k := settings().Kernel
	switch v.kind {
	case Logical:
		if v.nlogical == 0 {
			return NewInt(0), nil
		}
		return NewInt(int64(v.logicals.Count())), nil
	case Int:
		if s, ok := parallel.SumInt64(k, v.ints.items); ok {
			return NewInt(s), nil
		}
		f := make([]float64, len(v.ints.items))
		for i, x := range v.ints.items {
			f[i] = float64(x)
		}
		return NewFloat(parallel.SumFloat64(k, f)), nil
	case Float:
		return NewFloat(parallel.SumFloat64(k, v.floats.items)), nil
	default:
		return nil, newError("Sum", ErrTypeMismatch).withKind(v.kind).withClass(v.class)
	}
}

// Range returns a two-element vector holding the minimum and maximum of an
// integer or float vector, or NULL if v is empty. Any NaN makes both NaN.
func (v *Value) Range() (*Value, error) {
	k := settings().Kernel
	switch v.kind {
	case Int:
		lo, hi, ok := parallel.RangeInt64(k, v.ints.items)
		if !ok {
			return NewNull(), nil
		}
		return NewInt(lo, hi), nil
	case Float:
		lo, hi, ok := parallel.RangeFloat64(k, v.floats.items)
		if !ok {
			return NewNull(), nil
		}
		return NewFloat(lo, hi), nil
	default:
		return nil, newError("Range", ErrTypeMismatch).withKind(v.kind).withClass(v.class)
	}
}
