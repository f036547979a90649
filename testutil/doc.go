// Package testutil provides testing utilities for vecscript.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG that generates the element data
// shapes the sort and reduction kernels are sensitive to: uniform ints,
// floats with injected NaNs, heavily duplicated runs, skewed (Zipf) keys and
// random strings.
//
//	rng := testutil.NewRNG(4711)
//	floats := rng.Floats(10000, 0.05) // 5% NaN
//	ints := rng.FewUnique(10000, 3)   // only 3 distinct values
//
// Checkers such as IsSortedFloat64 validate kernel output under the
// NaN-last ordering.
package testutil
