package parallel

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecscript/testutil"
)

type keyed struct {
	key int64
	pos int
}

func TestMergesortStable(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, threads := range []int{1, 4} {
		k := newTestKernel(threads)

		keys := rng.FewUnique(20000, 10)
		data := make([]keyed, len(keys))
		for i, key := range keys {
			data[i] = keyed{key: key, pos: i}
		}

		Mergesort(k, data, func(a, b keyed) bool { return a.key < b.key })

		for i := 1; i < len(data); i++ {
			require.LessOrEqual(t, data[i-1].key, data[i].key)
			if data[i-1].key == data[i].key {
				require.Less(t, data[i-1].pos, data[i].pos, "threads=%d", threads)
			}
		}
	}
}

func TestMergesortDescending(t *testing.T) {
	k := newTestKernel(4)
	data := testutil.NewRNG(9).Ints(5000)
	want := slices.Clone(data)
	slices.Sort(want)
	slices.Reverse(want)

	Mergesort(k, data, OrderedLess[int64](false))

	assert.Equal(t, want, data)
}

func TestOrder(t *testing.T) {
	data := []string{"c", "a", "b", "a"}

	idx := Order(nil, data, OrderedLess[string](true))
	assert.Equal(t, []int{1, 3, 2, 0}, idx)
	// input untouched
	assert.Equal(t, []string{"c", "a", "b", "a"}, data)

	idx = Order(nil, data, OrderedLess[string](false))
	assert.Equal(t, []int{0, 2, 1, 3}, idx)
}

func TestOrderParallel(t *testing.T) {
	k := newTestKernel(4)
	data := testutil.NewRNG(11).Floats(8000, 0.02)

	idx := Order(k, data, FloatLess[float64](true))

	sorted := make([]float64, len(idx))
	for i, j := range idx {
		sorted[i] = data[j]
	}
	assert.True(t, testutil.IsSortedFloat64(sorted, true))
	assert.True(t, testutil.SameMultiset(data, sorted))
}

func TestMerge(t *testing.T) {
	out := make([]int, 6)
	merge([]int{1, 3, 5}, []int{2, 3, 6}, out, func(a, b int) bool { return a < b })

	assert.Equal(t, []int{1, 2, 3, 3, 5, 6}, out)
}
