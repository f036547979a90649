package parallel

import (
	"cmp"
	"math"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// FloatLess returns a strict weak ordering over floats for the requested
// direction in which NaN compares greater than everything, so NaNs always end
// up last.
func FloatLess[T ~float32 | ~float64](ascending bool) func(a, b T) bool {
	if ascending {
		return func(a, b T) bool {
			return !isNaN(a) && (isNaN(b) || a < b)
		}
	}
	return func(a, b T) bool {
		return a == a && (b != b || a > b)
	}
}

func isNaN[T ~float32 | ~float64](v T) bool {
	return math.IsNaN(float64(v))
}

// OrderedLess returns < for ascending and > for descending. Do not use it for
// floats that may hold NaN; see FloatLess.
func OrderedLess[T cmp.Ordered](ascending bool) func(a, b T) bool {
	if ascending {
		return func(a, b T) bool { return a < b }
	}
	return func(a, b T) bool { return a > b }
}

func compareFunc[T any](less func(a, b T) bool) func(a, b T) int {
	return func(a, b T) int {
		if less(a, b) {
			return -1
		}
		if less(b, a) {
			return 1
		}
		return 0
	}
}

// Sort sorts data in place by less. It is safe on empty and single-element
// slices. The caller must have exclusive access to data for the duration of
// the call.
func Sort[T any](k *Kernel, data []T, less func(a, b T) bool) {
	n := len(data)
	if n < 2 {
		return
	}
	start := time.Now()

	if !k.parallel(n) {
		slices.SortFunc(data, compareFunc(less))
		k.observe(n, false, start)
		return
	}

	t := &sortTask[T]{k: k, less: less, total: n}
	t.quicksort(data)
	_ = t.g.Wait()

	k.observe(n, true, start)
}

// SortFloats sorts floats in place with NaN last for either direction.
func SortFloats[T ~float32 | ~float64](k *Kernel, data []T, ascending bool) {
	Sort(k, data, FloatLess[T](ascending))
}

// SortOrdered sorts integers or strings in place.
func SortOrdered[T cmp.Ordered](k *Kernel, data []T, ascending bool) {
	Sort(k, data, OrderedLess[T](ascending))
}

type sortTask[T any] struct {
	k     *Kernel
	g     errgroup.Group
	less  func(a, b T) bool
	total int
}

func (t *sortTask[T]) quicksort(data []T) {
	for len(data) > 1 {
		if len(data) <= t.k.fallback(t.total) {
			slices.SortFunc(data, compareFunc(t.less))
			return
		}

		pivot := medianOfThree(data[0], data[len(data)/2], data[len(data)-1], t.less)

		// [ < pivot | == pivot | > pivot ]
		m1 := partition(data, func(x T) bool { return t.less(x, pivot) })
		m2 := m1 + partition(data[m1:], func(x T) bool { return !t.less(pivot, x) })

		t.fork(data[:m1])
		data = data[m2:]
	}
}

// fork runs the partition on a worker slot if one is free, inline otherwise.
func (t *sortTask[T]) fork(data []T) {
	if len(data) < 2 {
		return
	}
	if t.k.tryWorker() {
		t.g.Go(func() error {
			defer t.k.releaseWorker()
			t.quicksort(data)
			return nil
		})
		return
	}
	t.quicksort(data)
}

func medianOfThree[T any](a, b, c T, less func(a, b T) bool) T {
	if less(b, a) {
		a, b = b, a
	}
	if less(c, b) {
		b = c
		if less(b, a) {
			b = a
		}
	}
	return b
}

// partition moves the elements satisfying pred to the front and returns their
// count. The relative order of elements is not preserved.
func partition[T any](data []T, pred func(T) bool) int {
	i := 0
	for j := range data {
		if pred(data[j]) {
			data[i], data[j] = data[j], data[i]
			i++
		}
	}
	return i
}
