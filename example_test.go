package vecscript_test

import (
	"context"
	"fmt"
	"math"

	"github.com/hupe1980/vecscript"
	"github.com/hupe1980/vecscript/value"
)

func Example() {
	ctx := context.Background()

	rt, err := vecscript.Open(ctx, vecscript.WithThreads(4))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer func() { _ = rt.Close(ctx) }()

	v := value.NewFloat(5, math.NaN(), 1, 3)
	defer v.Release()

	if err := v.Sort(true); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v)
	// Output: 1.0 3.0 5.0 NAN
}

func ExampleWithMetricsCollector() {
	ctx := context.Background()
	metrics := &vecscript.BasicMetricsCollector{}

	rt, err := vecscript.Open(ctx, vecscript.WithMetricsCollector(metrics))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer func() { _ = rt.Close(ctx) }()

	v := value.NewString("b", "c", "a")
	defer v.Release()
	_ = v.Sort(true)

	stats := metrics.GetStats()
	fmt.Println(v, stats.SortCount, stats.SortElements)
	// Output: "a" "b" "c" 1 3
}

func ExampleRuntime_Stats() {
	ctx := context.Background()

	rt, err := vecscript.Open(ctx, vecscript.WithThreads(2), vecscript.WithMemoryLimit(1<<20))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer func() { _ = rt.Close(ctx) }()

	v := value.NewInt(1, 2, 3, 4)
	s := rt.Stats()
	fmt.Println(s.Threads, s.LiveValues, s.MemoryUsed)

	v.Release()
	s = rt.Stats()
	fmt.Println(s.LiveValues, s.MemoryUsed)
	// Output:
	// 2 1 32
	// 0 0
}
