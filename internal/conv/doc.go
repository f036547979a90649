// Package conv provides checked numeric and textual conversions.
//
// Every coercion between value kinds goes through this package. Conversions
// that cannot be represented exactly in the target type fail instead of
// truncating or wrapping:
//
//   - float64 to int64 rejects NaN, ±Inf and magnitudes outside the int64 range
//   - text to number uses strict decimal parsing (strconv semantics)
//   - text to logical accepts only the canonical spellings
//
// Narrowing an int64 element to an int position is bounds-checked the same way.
package conv
