package value

import (
	"sync/atomic"
	"unsafe"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/vecscript/internal/pool"
	"github.com/hupe1980/vecscript/internal/resource"
)

type state uint8

const (
	stateConstructing state = iota
	statePublished
	stateConstant
)

// Value is a vector of one kind with optional dimensions. Instances come from
// the process-wide pool and are reference counted: a new value has one
// reference, Retain adds one and publishes the value, Release drops one and
// destroys the value at zero.
//
// A Value is not safe for concurrent mutation.
type Value struct {
	id        uint64
	kind      Kind
	state     state
	static    bool
	invisible bool
	refs      int32

	class    Class
	registry *Registry
	dims     []int

	logicals *bitset.BitSet
	nlogical int
	lcap     int
	ints     buf[int64]
	floats   buf[float64]
	strs     buf[string]
	objs     buf[Element]

	origin  *pool.Pool[Value]
	mem     *resource.Controller
	charged int64
}

// nextID numbers every value ever issued. It is 64 bits wide so ids are never
// reused while a registered vector is alive.
var nextID atomic.Uint64

func newValue(kind Kind) *Value {
	s := settings()
	v := s.Pool.Get()
	v.origin = s.Pool
	v.mem = s.Memory
	v.id = nextID.Add(1)
	v.kind = kind
	v.refs = 1
	return v
}

func newStatic(kind Kind) *Value {
	return &Value{kind: kind, static: true, state: stateConstant, refs: 1}
}

func newStaticLogical(b bool) *Value {
	v := newStatic(Logical)
	v.logicals = bitset.New(1)
	v.logicals.SetTo(0, b)
	v.nlogical = 1
	v.lcap = 1
	return v
}

// Shared constants. They ignore Retain and Release and reject mutation.
var (
	StaticNull          = newStatic(Null)
	StaticNullInvisible = func() *Value {
		v := newStatic(Null)
		v.invisible = true
		return v
	}()
	StaticTrue  = newStaticLogical(true)
	StaticFalse = newStaticLogical(false)
)

// StaticLogical returns StaticTrue or StaticFalse.
func StaticLogical(b bool) *Value {
	if b {
		return StaticTrue
	}
	return StaticFalse
}

// NewVoid returns a void value, the result of calls that produce nothing.
func NewVoid() *Value {
	return newValue(Void)
}

// NewNull returns a NULL value.
func NewNull() *Value {
	return newValue(Null)
}

// NewLogical returns a logical vector holding vals.
func NewLogical(vals ...bool) *Value {
	v := newValue(Logical)
	v.reserveLogical("NewLogical", len(vals))
	for i, b := range vals {
		if b {
			v.logicals.Set(uint(i))
		}
	}
	v.nlogical = len(vals)
	return v
}

// NewInt returns an integer vector holding vals.
func NewInt(vals ...int64) *Value {
	v := newValue(Int)
	v.ints.reserve(len(vals))
	v.ints.items = append(v.ints.items, vals...)
	v.account("NewInt")
	return v
}

// NewFloat returns a float vector holding vals.
func NewFloat(vals ...float64) *Value {
	v := newValue(Float)
	v.floats.reserve(len(vals))
	v.floats.items = append(v.floats.items, vals...)
	v.account("NewFloat")
	return v
}

// NewString returns a string vector holding vals.
func NewString(vals ...string) *Value {
	v := newValue(String)
	v.strs.reserve(len(vals))
	v.strs.items = append(v.strs.items, vals...)
	v.account("NewString")
	return v
}

// NewObject returns an object vector of class holding elems. class may be nil
// if elems is non-empty, in which case the first element's class is used.
// Every element must belong to the same class.
func NewObject(class Class, elems ...Element) (*Value, error) {
	v := newValue(Object)
	if class != nil {
		v.bindClass(class)
	}
	v.objs.reserve(len(elems))
	v.account("NewObject")
	for _, e := range elems {
		if err := v.pushObject("NewObject", e); err != nil {
			v.Release()
			return nil, err
		}
	}
	return v, nil
}

// NewOfKind returns an empty value of kind. class is only used for objects.
func NewOfKind(kind Kind, class Class) *Value {
	v := newValue(kind)
	if kind == Object && class != nil {
		v.bindClass(class)
	}
	return v
}

// NewMatching returns an empty value of v's kind and class.
func (v *Value) NewMatching() *Value {
	return NewOfKind(v.kind, v.class)
}

// bindClass fixes the class of an object vector and registers it with the
// class's relocation registry, if one is tracked.
func (v *Value) bindClass(c Class) {
	v.class = c
	if r := registryFor(c); r != nil {
		r.add(v)
		v.registry = r
	}
}

// Kind returns the kind tag.
func (v *Value) Kind() Kind {
	return v.kind
}

// Class returns the element class of an object vector, or nil.
func (v *Value) Class() Class {
	return v.class
}

// Count returns the number of elements.
func (v *Value) Count() int {
	switch v.kind {
	case Logical:
		return v.nlogical
	case Int:
		return len(v.ints.items)
	case Float:
		return len(v.floats.items)
	case String:
		return len(v.strs.items)
	case Object:
		return len(v.objs.items)
	default:
		return 0
	}
}

// Capacity returns the number of elements the value can hold without growing.
func (v *Value) Capacity() int {
	switch v.kind {
	case Logical:
		return v.lcap
	case Int:
		return cap(v.ints.items)
	case Float:
		return cap(v.floats.items)
	case String:
		return cap(v.strs.items)
	case Object:
		return cap(v.objs.items)
	default:
		return 0
	}
}

// IsSingleton reports whether the value has exactly one element.
func (v *Value) IsSingleton() bool {
	return v.Count() == 1
}

// IsPublished reports whether the value is aliased or constant and so
// rejects mutation.
func (v *Value) IsPublished() bool {
	return v.state != stateConstructing
}

// IsConstant reports whether the value was marked constant.
func (v *Value) IsConstant() bool {
	return v.state == stateConstant
}

// Publish freezes the value. There is no way back.
func (v *Value) Publish() {
	if v.state == stateConstructing {
		v.state = statePublished
	}
}

// MarkConstant freezes the value as a named constant.
func (v *Value) MarkConstant() {
	v.state = stateConstant
}

// IsInvisible reports whether the value is suppressed from auto-printing.
func (v *Value) IsInvisible() bool {
	return v.invisible
}

// SetInvisible sets the transient invisibility flag. Copies never inherit it.
func (v *Value) SetInvisible(invisible bool) {
	if v.static {
		return
	}
	v.invisible = invisible
}

// Refs returns the current reference count.
func (v *Value) Refs() int {
	return int(v.refs)
}

// Retain adds a reference and publishes the value.
func (v *Value) Retain() *Value {
	if v.static {
		return v
	}
	v.refs++
	v.Publish()
	return v
}

// Release drops a reference. The last release destroys the value: held
// elements are released if their class uses retain/release, the value leaves
// its class registry and the instance returns to the pool.
func (v *Value) Release() {
	if v == nil || v.static {
		return
	}
	v.refs--
	switch {
	case v.refs > 0:
		return
	case v.refs < 0:
		panic("value: release of destroyed value")
	}
	v.destroy()
}

func (v *Value) destroy() {
	if v.kind == Object {
		v.releaseElements(v.objs.items)
	}
	if v.registry != nil {
		v.registry.remove(v)
	}
	v.mem.ReleaseMemory(v.charged)

	p := v.origin
	p.Put(v)
}

// capacityBytes is the buffer memory charged to the session.
func (v *Value) capacityBytes() int64 {
	switch v.kind {
	case Logical:
		return int64((v.lcap + 63) / 64 * 8)
	case Int, Float:
		return int64(v.Capacity()) * 8
	case String:
		return int64(v.Capacity()) * int64(unsafe.Sizeof(""))
	case Object:
		var e Element
		return int64(v.Capacity()) * int64(unsafe.Sizeof(e))
	default:
		return 0
	}
}

// account charges capacity growth against the memory budget. Failure panics
// with *AllocationError.
func (v *Value) account(op string) {
	if v.static {
		return
	}
	bytes := v.capacityBytes()
	delta := bytes - v.charged
	switch {
	case delta > 0:
		if err := v.mem.AcquireMemory(delta); err != nil {
			panic(&AllocationError{Op: op, Bytes: delta, Err: err})
		}
	case delta < 0:
		v.mem.ReleaseMemory(-delta)
	}
	v.charged = bytes
}

func (v *Value) reserveLogical(op string, n int) {
	if n <= v.lcap {
		return
	}
	c := max(n, 2*v.lcap)
	b := bitset.New(uint(c))
	if v.logicals != nil {
		b.InPlaceUnion(v.logicals)
	}
	v.logicals = b
	v.lcap = c
	v.account(op)
}
