package parallel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecscript/testutil"
)

func TestSumFloat64(t *testing.T) {
	rng := testutil.NewRNG(4711)
	data := rng.Floats(10000, 0)

	var want float64
	for _, v := range data {
		want += v
	}

	for _, threads := range []int{1, 4} {
		got := SumFloat64(newTestKernel(threads), data)
		assert.InDelta(t, want, got, 1e-9)
	}

	assert.Zero(t, SumFloat64(nil, nil))
}

func TestSumInt64(t *testing.T) {
	k := newTestKernel(4)
	data := testutil.NewRNG(4711).IntsRange(10000, -1000, 1000)

	var want int64
	for _, v := range data {
		want += v
	}

	got, ok := SumInt64(k, data)
	require.True(t, ok)
	assert.Equal(t, want, got)

	sum, ok := SumInt64(nil, nil)
	assert.True(t, ok)
	assert.Zero(t, sum)
}

func TestSumInt64Overflow(t *testing.T) {
	_, ok := SumInt64(nil, []int64{math.MaxInt64, 1})
	assert.False(t, ok)

	_, ok = SumInt64(nil, []int64{math.MinInt64, -1})
	assert.False(t, ok)

	big := make([]int64, 4000)
	for i := range big {
		big[i] = math.MaxInt64 / 1000
	}
	_, ok = SumInt64(newTestKernel(4), big)
	assert.False(t, ok)
}

func TestRangeInt64(t *testing.T) {
	k := newTestKernel(4)
	data := testutil.NewRNG(4711).IntsRange(5000, -50, 50)
	data[1234] = -100
	data[4321] = 100

	lo, hi, ok := RangeInt64(k, data)
	require.True(t, ok)
	assert.Equal(t, int64(-100), lo)
	assert.Equal(t, int64(100), hi)

	_, _, ok = RangeInt64(k, nil)
	assert.False(t, ok)
}

func TestRangeFloat64(t *testing.T) {
	k := newTestKernel(4)

	lo, hi, ok := RangeFloat64(k, []float64{3, -1, 2})
	require.True(t, ok)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 3.0, hi)

	data := testutil.NewRNG(1).Floats(5000, 0)
	data[4999] = math.NaN()
	lo, hi, ok = RangeFloat64(k, data)
	require.True(t, ok)
	assert.True(t, math.IsNaN(lo))
	assert.True(t, math.IsNaN(hi))

	_, _, ok = RangeFloat64(k, nil)
	assert.False(t, ok)
}
