package conv

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOverflow is returned when a value is outside the target type's range.
	ErrOverflow = errors.New("conv: value out of range")
	// ErrNaN is returned when NaN is converted to a type with no NaN.
	ErrNaN = errors.New("conv: NaN has no integer or logical representation")
)

// Int64ToInt narrows an integer element to an int position. It fails only
// where int is 32 bits wide.
func Int64ToInt(v int64) (int, error) {
	if v > math.MaxInt || v < math.MinInt {
		return 0, fmt.Errorf("%w: %d cannot be converted to int", ErrOverflow, v)
	}
	return int(v), nil
}

// float64 bounds of the int64 range. 2^63 is exactly representable; -2^63 too.
const (
	minInt64AsFloat = -9223372036854775808.0
	maxInt64AsFloat = 9223372036854775808.0
)

// Float64ToInt64 converts a float to an integer, truncating toward zero.
// NaN, infinities and values outside the int64 range are rejected.
func Float64ToInt64(f float64) (int64, error) {
	if math.IsNaN(f) {
		return 0, ErrNaN
	}
	if math.IsInf(f, 0) || f < minInt64AsFloat || f >= maxInt64AsFloat {
		return 0, fmt.Errorf("%w: %v cannot be converted to int64", ErrOverflow, f)
	}
	return int64(f), nil
}

// Float64ToBool converts a float to a logical: zero is false, anything else is
// true. NaN is rejected.
func Float64ToBool(f float64) (bool, error) {
	if math.IsNaN(f) {
		return false, ErrNaN
	}
	return f != 0, nil
}

// BoolToInt64 maps false to 0 and true to 1.
func BoolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// BoolToFloat64 maps false to 0 and true to 1.
func BoolToFloat64(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
