package parallel

import (
	"math"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// padded keeps each thread's accumulator on its own cache line.
type padded[T any] struct {
	_   cpu.CacheLinePad
	val T
	ok  bool
	_   cpu.CacheLinePad
}

// forEachRange splits [0, n) into one contiguous range per available thread
// and calls fn for each. fn receives the range's slot index.
func (k *Kernel) forEachRange(n int, fn func(slot, lo, hi int)) int {
	if !k.parallel(n) {
		fn(0, 0, n)
		return 1
	}

	parts := k.Threads()
	step := (n + parts - 1) / parts

	var g errgroup.Group
	slot := 0
	for lo := 0; lo < n; lo += step {
		hi := min(lo+step, n)
		s := slot
		slot++
		if k.tryWorker() {
			g.Go(func() error {
				defer k.releaseWorker()
				fn(s, lo, hi)
				return nil
			})
			continue
		}
		fn(s, lo, hi)
	}
	_ = g.Wait()
	return slot
}

func (k *Kernel) slots(n int) int {
	if !k.parallel(n) {
		return 1
	}
	return k.Threads()
}

// SumFloat64 returns the sum of data. The result may differ from a sequential
// sum by rounding when the reduction runs in parallel.
func SumFloat64(k *Kernel, data []float64) float64 {
	acc := make([]padded[float64], k.slots(len(data)))
	used := k.forEachRange(len(data), func(slot, lo, hi int) {
		var s float64
		for _, v := range data[lo:hi] {
			s += v
		}
		acc[slot].val = s
	})

	var total float64
	for i := range used {
		total += acc[i].val
	}
	return total
}

// SumInt64 returns the sum of data. ok is false if the sum overflowed int64 at
// any point; callers fall back to a floating sum.
func SumInt64(k *Kernel, data []int64) (sum int64, ok bool) {
	acc := make([]padded[int64], k.slots(len(data)))
	used := k.forEachRange(len(data), func(slot, lo, hi int) {
		var s int64
		for _, v := range data[lo:hi] {
			r, good := addInt64(s, v)
			if !good {
				acc[slot].ok = false
				return
			}
			s = r
		}
		acc[slot].val = s
		acc[slot].ok = true
	})

	for i := range used {
		if !acc[i].ok {
			return 0, false
		}
		r, good := addInt64(sum, acc[i].val)
		if !good {
			return 0, false
		}
		sum = r
	}
	return sum, true
}

func addInt64(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}

type bounds[T int64 | float64] struct {
	lo, hi T
}

// RangeInt64 returns the minimum and maximum of data. ok is false for empty
// input.
func RangeInt64(k *Kernel, data []int64) (lo, hi int64, ok bool) {
	if len(data) == 0 {
		return 0, 0, false
	}
	acc := make([]padded[bounds[int64]], k.slots(len(data)))
	used := k.forEachRange(len(data), func(slot, from, to int) {
		b := bounds[int64]{lo: data[from], hi: data[from]}
		for _, v := range data[from+1 : to] {
			b.lo = min(b.lo, v)
			b.hi = max(b.hi, v)
		}
		acc[slot].val = b
		acc[slot].ok = true
	})

	lo, hi = acc[0].val.lo, acc[0].val.hi
	for i := 1; i < used; i++ {
		lo = min(lo, acc[i].val.lo)
		hi = max(hi, acc[i].val.hi)
	}
	return lo, hi, true
}

// RangeFloat64 returns the minimum and maximum of data. A NaN anywhere makes
// both results NaN. ok is false for empty input.
func RangeFloat64(k *Kernel, data []float64) (lo, hi float64, ok bool) {
	if len(data) == 0 {
		return 0, 0, false
	}
	acc := make([]padded[bounds[float64]], k.slots(len(data)))
	used := k.forEachRange(len(data), func(slot, from, to int) {
		b := bounds[float64]{lo: data[from], hi: data[from]}
		for _, v := range data[from+1 : to] {
			// min and max propagate NaN
			b.lo = min(b.lo, v)
			b.hi = max(b.hi, v)
		}
		acc[slot].val = b
		acc[slot].ok = true
	})

	lo, hi = acc[0].val.lo, acc[0].val.hi
	for i := 1; i < used; i++ {
		lo = min(lo, acc[i].val.lo)
		hi = max(hi, acc[i].val.hi)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return math.NaN(), math.NaN(), true
	}
	return lo, hi, true
}
