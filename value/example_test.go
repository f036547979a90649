package value_test

import (
	"fmt"
	"math"

	"github.com/hupe1980/vecscript/value"
)

func ExampleValue_Sort() {
	v := value.NewFloat(5, math.NaN(), 1, 3)
	defer v.Release()

	_ = v.Sort(true)
	fmt.Println(v)

	_ = v.Sort(false)
	fmt.Println(v)
	// Output:
	// 1.0 3.0 5.0 NAN
	// 5.0 3.0 1.0 NAN
}

func ExampleValue_Subset() {
	v := value.NewInt(1, 2, 3, 4, 5, 6)
	defer v.Release()

	if err := v.SetDimensions([]int{2, 3}); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v)

	row, err := v.Subset([][]int{{1}, {0, 1, 2}}, true)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer row.Release()
	fmt.Println(row)
	// Output:
	//      [,0] [,1] [,2]
	// [0,]    1    3    5
	// [1,]    2    4    6
	// 2 4 6
}

func ExampleConcatenate() {
	a := value.NewLogical(true)
	b := value.NewInt(2)
	c := value.NewFloat(3.5)
	defer a.Release()
	defer b.Release()
	defer c.Release()

	r, err := value.Concatenate(a, b, c)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer r.Release()

	fmt.Println(r.Kind(), r)
	// Output: float 1.0 2.0 3.5
}

func ExampleValue_CoerceInt() {
	v := value.NewString("42", "4.2")
	defer v.Release()

	x, err := v.CoerceInt(0)
	fmt.Println(x, err)

	_, err = v.CoerceInt(1)
	fmt.Println(err != nil)
	// Output:
	// 42 <nil>
	// true
}
