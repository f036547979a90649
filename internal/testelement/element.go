package testelement

import (
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/vecscript/value"
)

// Element is a reference-counted entity with an integer yolk.
//
// Properties:
//
//	yolk   integer$  read-write, bulk get and set
//	tag    string$   read-write
//	weight float$    read-only, yolk/2
//	pair   integer   two elements: yolk, -yolk, bulk get
//	span   integer   yolk copies of yolk
//	self   object$   the element itself
//	faulty integer$  declared singleton but yields two elements
//
// Methods:
//
//	squareYolk()  integer$   yolk*yolk
//	maybe()       integer    yolk, or NULL when yolk is odd
//	mixed()       numeric    integer when yolk is even, float otherwise
//	noop()        void
//	addYolk(x)    integer$   yolk+x, with a bulk path
//	echo(x)       integer$   a copy of x, whatever its length
type Element struct {
	yolk int64
	tag  string
	refs atomic.Int32
}

// ElementClass is the class of every *Element.
var ElementClass = newElementClass()

// ElementCounters counts bulk dispatches on ElementClass.
var ElementCounters Counters

// New returns an element holding one reference for its creator.
func New(yolk int64) *Element {
	e := &Element{yolk: yolk}
	e.refs.Store(1)
	return e
}

// Class implements value.Element.
func (e *Element) Class() value.Class { return ElementClass }

// Retain implements value.RetainReleaser.
func (e *Element) Retain() { e.refs.Add(1) }

// Release implements value.RetainReleaser.
func (e *Element) Release() {
	if e.refs.Add(-1) < 0 {
		panic("testelement: over-release")
	}
}

// Refcount returns the current reference count.
func (e *Element) Refcount() int { return int(e.refs.Load()) }

// Yolk returns the yolk.
func (e *Element) Yolk() int64 { return e.yolk }

// Tag returns the tag.
func (e *Element) Tag() string { return e.tag }

func (e *Element) String() string {
	return fmt.Sprintf("TestElement<%d>", e.yolk)
}

// GetProperty implements value.Element.
func (e *Element) GetProperty(name string) (*value.Value, error) {
	switch name {
	case "yolk":
		return value.NewInt(e.yolk), nil
	case "tag":
		return value.NewString(e.tag), nil
	case "weight":
		return value.NewFloat(float64(e.yolk) / 2), nil
	case "pair":
		return value.NewInt(e.yolk, -e.yolk), nil
	case "span":
		xs := make([]int64, max(e.yolk, 0))
		for i := range xs {
			xs[i] = e.yolk
		}
		return value.NewInt(xs...), nil
	case "self":
		return value.NewObject(ElementClass, e)
	case "faulty":
		return value.NewInt(e.yolk, e.yolk), nil
	default:
		return nil, undeclared(ElementClass, name)
	}
}

// SetProperty implements value.Element.
func (e *Element) SetProperty(name string, v *value.Value) error {
	switch name {
	case "yolk":
		x, err := v.IntAt(0)
		if err != nil {
			return err
		}
		e.yolk = x
		return nil
	case "tag":
		s, err := v.StringAt(0)
		if err != nil {
			return err
		}
		e.tag = s
		return nil
	default:
		return undeclared(ElementClass, name)
	}
}

// ExecuteInstanceMethod implements value.Element.
func (e *Element) ExecuteInstanceMethod(name string, args []*value.Value) (*value.Value, error) {
	switch name {
	case "squareYolk":
		return value.NewInt(e.yolk * e.yolk), nil
	case "maybe":
		if e.yolk%2 != 0 {
			return value.StaticNull, nil
		}
		return value.NewInt(e.yolk), nil
	case "mixed":
		if e.yolk%2 == 0 {
			return value.NewInt(e.yolk), nil
		}
		return value.NewFloat(float64(e.yolk) + 0.5), nil
	case "noop":
		return value.NewVoid(), nil
	case "addYolk":
		x, err := addend(args)
		if err != nil {
			return nil, err
		}
		return value.NewInt(e.yolk + x), nil
	case "echo":
		if len(args) != 1 {
			return nil, fmt.Errorf("echo: want 1 argument, got %d", len(args))
		}
		return args[0].Copy(), nil
	default:
		return nil, undeclared(ElementClass, name)
	}
}

func addend(args []*value.Value) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("addYolk: want 1 argument, got %d", len(args))
	}
	return args[0].CoerceInt(0)
}

func yolks(elems []value.Element) []int64 {
	out := make([]int64, len(elems))
	for i, e := range elems {
		out[i] = e.(*Element).yolk
	}
	return out
}

func newElementClass() *class {
	c := newClass("TestElement", true)

	c.addProperty(&value.PropertySignature{
		Name:  "yolk",
		Kinds: value.MaskInt | value.MaskSingleton,
		GetBulk: func(elems []value.Element) (*value.Value, error) {
			ElementCounters.BulkGets.Add(1)
			return value.NewInt(yolks(elems)...), nil
		},
		SetBulk: func(elems []value.Element, v *value.Value) error {
			ElementCounters.BulkSets.Add(1)
			for i, e := range elems {
				j := i
				if v.Count() == 1 {
					j = 0
				}
				x, err := v.IntAt(j)
				if err != nil {
					return err
				}
				e.(*Element).yolk = x
			}
			return nil
		},
	})
	c.addProperty(&value.PropertySignature{Name: "tag", Kinds: value.MaskString | value.MaskSingleton})
	c.addProperty(&value.PropertySignature{Name: "weight", Kinds: value.MaskFloat | value.MaskSingleton, ReadOnly: true})
	c.addProperty(&value.PropertySignature{
		Name:  "pair",
		Kinds: value.MaskInt,
		GetBulk: func(elems []value.Element) (*value.Value, error) {
			ElementCounters.BulkGets.Add(1)
			out := make([]int64, 0, 2*len(elems))
			for _, y := range yolks(elems) {
				out = append(out, y, -y)
			}
			return value.NewInt(out...), nil
		},
	})
	c.addProperty(&value.PropertySignature{Name: "span", Kinds: value.MaskInt})
	c.addProperty(&value.PropertySignature{Name: "faulty", Kinds: value.MaskInt | value.MaskSingleton})
	c.addProperty(&value.PropertySignature{Name: "self", Kinds: value.MaskObject | value.MaskSingleton, Class: c})

	c.addMethod(&value.MethodSignature{Name: "squareYolk", Returns: value.MaskInt | value.MaskSingleton})
	c.addMethod(&value.MethodSignature{Name: "maybe", Returns: value.MaskInt | value.MaskNull})
	c.addMethod(&value.MethodSignature{Name: "mixed", Returns: value.MaskNumeric})
	c.addMethod(&value.MethodSignature{Name: "noop", Returns: value.MaskVoid})
	c.addMethod(&value.MethodSignature{Name: "echo", Returns: value.MaskInt | value.MaskSingleton})
	c.addMethod(&value.MethodSignature{
		Name:    "addYolk",
		Returns: value.MaskInt | value.MaskSingleton,
		ExecuteBulk: func(elems []value.Element, args []*value.Value) (*value.Value, error) {
			ElementCounters.BulkCalls.Add(1)
			x, err := addend(args)
			if err != nil {
				return nil, err
			}
			out := yolks(elems)
			for i := range out {
				out[i] += x
			}
			return value.NewInt(out...), nil
		},
	})

	return c
}
