// Package parallel provides the fork-join kernels the value system uses for
// ordering and bulk reductions.
//
// # Sorting
//
// Sort is a threshold-gated parallel quicksort. Each partition step picks the
// median of the first, middle and last elements as pivot, splits the slice
// into "less than pivot" and the rest, then splits the rest into "equal to
// pivot" and "greater". Only the two outer partitions recurse, so heavily
// duplicated input does not go quadratic. The outer partitions run as
// independent tasks on worker slots borrowed from the session's
// resource.Controller; when no slot is free the task runs inline.
//
// Below Config.MinParallel elements, or with a single thread, the kernels fall
// back to the sequential sorts in package slices. Every task recomputes its own
// fallback size from the total length and the number of threads currently
// active, so a saturated pool stops splitting earlier.
//
// Orderings passed to the kernels must be strict weak orderings. FloatLess
// builds one for floating point that places NaN last in both directions.
//
// # Reductions
//
// SumFloat64, SumInt64, RangeFloat64 and RangeInt64 split the input into one
// contiguous range per thread, reduce each range into a private accumulator
// padded to its own cache line, and combine the accumulators at a single
// serial join point. Floating sums may reassociate.
package parallel
