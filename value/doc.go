// Package value implements the dynamically kinded vectors every expression of
// the scripting language evaluates to.
//
// A Value holds elements of exactly one Kind: void, NULL, logical, integer,
// float, string or object. There are no scalars; a scalar is a vector of
// length one, stored inline without a heap buffer.
//
// # Access
//
// Two families of accessors exist. Strict accessors (IntAt, FloatAt, ...)
// require the value's own kind and fail with ErrTypeMismatch otherwise.
// Coercing accessors (CoerceInt, CoerceFloat, ...) convert across kinds:
// logical maps to 0/1 and "T"/"F", floats convert to integers only when
// finite and in range, strings parse as decimal numbers, and objects never
// convert.
//
// # Lifecycle
//
// Values come from a process-wide pool and are reference counted. A new
// value has one reference and is under construction: it may be mutated
// freely. Retain adds a reference and publishes the value; from then on every
// mutation fails with ErrImmutableValue. The last Release destroys the value,
// releasing held object elements whose class uses retain/release.
//
//	v := value.NewFloat(5, math.NaN(), 1, 3)
//	defer v.Release()
//	_ = v.Sort(true) // 1 3 5 NaN
//
// # Shape
//
// SetDimensions attaches two or more extents, axis 0 varying fastest, and
// Subset gathers along every axis at once.
//
// # Objects
//
// Object vectors reference entities defined outside this package through the
// Class and Element interfaces. GetPropertyOfElements, SetPropertyOfElements
// and ExecuteInstanceMethodOfElements dispatch across every element, preferring
// bulk implementations declared on the signature.
//
// # Errors
//
// Every returned error is an *Error wrapping one sentinel. Allocation failure
// against the session memory budget panics with *AllocationError.
package value
