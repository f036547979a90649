package parallel

import (
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// Mergesort sorts data stably by less. Halves are sorted as independent tasks
// and merged through a scratch buffer of len(data).
func Mergesort[T any](k *Kernel, data []T, less func(a, b T) bool) {
	n := len(data)
	if n < 2 {
		return
	}
	start := time.Now()

	if !k.parallel(n) {
		slices.SortStableFunc(data, compareFunc(less))
		k.observe(n, false, start)
		return
	}

	t := &mergeTask[T]{k: k, less: less, total: n}
	t.mergesort(data, make([]T, n))

	k.observe(n, true, start)
}

// Order returns the permutation that stably sorts data by less, leaving data
// untouched. Equal elements keep their original relative order.
func Order[T any](k *Kernel, data []T, less func(a, b T) bool) []int {
	idx := make([]int, len(data))
	for i := range idx {
		idx[i] = i
	}
	Mergesort(k, idx, func(i, j int) bool {
		return less(data[i], data[j])
	})
	return idx
}

type mergeTask[T any] struct {
	k     *Kernel
	less  func(a, b T) bool
	total int
}

func (t *mergeTask[T]) mergesort(data, buf []T) {
	if len(data) <= t.k.fallback(t.total) {
		slices.SortStableFunc(data, compareFunc(t.less))
		return
	}

	mid := len(data) / 2

	var g errgroup.Group
	if t.k.tryWorker() {
		g.Go(func() error {
			defer t.k.releaseWorker()
			t.mergesort(data[:mid], buf[:mid])
			return nil
		})
	} else {
		t.mergesort(data[:mid], buf[:mid])
	}
	t.mergesort(data[mid:], buf[mid:])
	_ = g.Wait()

	merge(data[:mid], data[mid:], buf[:len(data)], t.less)
	copy(data, buf[:len(data)])
}

// merge writes the stable merge of a and b into out.
func merge[T any](a, b, out []T, less func(a, b T) bool) {
	i, j, o := 0, 0, 0
	for i < len(a) && j < len(b) {
		if less(b[j], a[i]) {
			out[o] = b[j]
			j++
		} else {
			out[o] = a[i]
			i++
		}
		o++
	}
	o += copy(out[o:], a[i:])
	copy(out[o:], b[j:])
}
