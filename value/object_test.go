package value_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecscript/internal/arena"
	"github.com/hupe1980/vecscript/internal/testelement"
	"github.com/hupe1980/vecscript/value"
)

func newElements(t *testing.T, yolks ...int64) (*value.Value, []*testelement.Element) {
	t.Helper()
	elems := make([]*testelement.Element, len(yolks))
	vals := make([]value.Element, len(yolks))
	for i, y := range yolks {
		elems[i] = testelement.New(y)
		vals[i] = elems[i]
	}
	v, err := value.NewObject(testelement.ElementClass, vals...)
	require.NoError(t, err)
	return v, elems
}

func TestObjectRefcounts(t *testing.T) {
	e1, e2 := testelement.New(1), testelement.New(2)

	v, err := value.NewObject(nil, e1, e2)
	require.NoError(t, err)
	assert.Equal(t, testelement.ElementClass, v.Class())
	assert.Equal(t, 2, e1.Refcount())
	assert.Equal(t, 2, e2.Refcount())

	v.Release()
	assert.Equal(t, 1, e1.Refcount())
	assert.Equal(t, 1, e2.Refcount())
}

func TestObjectRefcountsThroughMutation(t *testing.T) {
	v, elems := newElements(t, 1, 2, 3)
	e1, e2, e3 := elems[0], elems[1], elems[2]

	t.Run("copy retains", func(t *testing.T) {
		c := v.Copy()
		assert.Equal(t, 3, e1.Refcount())
		c.Release()
		assert.Equal(t, 2, e1.Refcount())
	})

	t.Run("set object swaps references", func(t *testing.T) {
		require.NoError(t, v.SetObject(0, e3))
		assert.Equal(t, 1, e1.Refcount())
		assert.Equal(t, 3, e3.Refcount())

		require.NoError(t, v.SetObject(0, e3))
		assert.Equal(t, 3, e3.Refcount())

		require.NoError(t, v.SetObject(0, e1))
		assert.Equal(t, 2, e1.Refcount())
		assert.Equal(t, 2, e3.Refcount())
	})

	t.Run("erase releases", func(t *testing.T) {
		require.NoError(t, v.EraseAt(1))
		assert.Equal(t, 1, e2.Refcount())
		assert.Equal(t, 2, v.Count())
	})

	t.Run("shrink releases", func(t *testing.T) {
		require.NoError(t, v.ResizeNoInit(1))
		assert.Equal(t, 1, e3.Refcount())
		assert.Equal(t, 2, e1.Refcount())
	})

	t.Run("append retains", func(t *testing.T) {
		w, err := value.NewObject(testelement.ElementClass)
		require.NoError(t, err)
		require.NoError(t, w.Append(v, 0))
		assert.Equal(t, 3, e1.Refcount())
		w.Release()
	})

	v.Release()
	for _, e := range elems {
		assert.Equal(t, 1, e.Refcount())
	}
}

func TestObjectClassChecks(t *testing.T) {
	v, _ := newElements(t, 1)
	defer v.Release()

	assert.ErrorIs(t, v.PushObject(&testelement.Marker{Label: "m"}), value.ErrTypeMismatch)
	assert.ErrorIs(t, v.SetObject(0, &testelement.Marker{}), value.ErrTypeMismatch)
	assert.ErrorIs(t, v.PushObject(nil), value.ErrTypeMismatch)

	_, err := value.NewObject(nil, testelement.New(1), &testelement.Marker{})
	assert.ErrorIs(t, err, value.ErrTypeMismatch)

	empty := value.NewOfKind(value.Object, nil)
	defer empty.Release()
	_, err = empty.GetPropertyOfElements("yolk")
	assert.ErrorIs(t, err, value.ErrUndeclaredCapability)
}

func TestEmptyObjectSlots(t *testing.T) {
	v, elems := newElements(t, 1, 2)
	defer v.Release()

	require.NoError(t, v.SetObject(0, nil))
	assert.Equal(t, 1, elems[0].Refcount())
	assert.Equal(t, 2, v.Count())

	e, err := v.ObjectAt(0)
	require.NoError(t, err)
	assert.Nil(t, e)
	assert.Equal(t, "NULL TestElement<2>", v.String())

	_, err = v.GetPropertyOfElements("yolk")
	require.ErrorIs(t, err, value.ErrTypeMismatch)
	var ve *value.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 0, ve.Index)

	one := value.NewInt(1)
	defer one.Release()
	assert.ErrorIs(t, v.SetPropertyOfElements("yolk", one), value.ErrTypeMismatch)
	_, err = v.ExecuteInstanceMethodOfElements("squareYolk", nil)
	assert.ErrorIs(t, err, value.ErrTypeMismatch)

	require.NoError(t, v.SetObject(0, elems[0]))
	assert.Equal(t, 2, elems[0].Refcount())

	r, err := v.GetPropertyOfElements("yolk")
	require.NoError(t, err)
	defer r.Release()
	assert.Equal(t, []int64{1, 2}, r.Ints())

	t.Run("resized slots", func(t *testing.T) {
		w, err := value.NewObject(testelement.ElementClass)
		require.NoError(t, err)
		defer w.Release()

		require.NoError(t, w.ResizeNoInit(2))
		require.NoError(t, w.SetObject(1, elems[1]))
		assert.Equal(t, 3, elems[1].Refcount())

		require.NoError(t, w.SetObject(1, nil))
		assert.Equal(t, 2, elems[1].Refcount())
	})
}

func TestGetPropertyOfElements(t *testing.T) {
	testelement.ElementCounters.Reset()

	v, elems := newElements(t, 3, 1, 2)
	defer v.Release()

	t.Run("bulk", func(t *testing.T) {
		r, err := v.GetPropertyOfElements("yolk")
		require.NoError(t, err)
		defer r.Release()

		assert.Equal(t, []int64{3, 1, 2}, r.Ints())
		assert.Equal(t, int64(1), testelement.ElementCounters.BulkGets.Load())
	})

	t.Run("accumulate", func(t *testing.T) {
		r, err := v.GetPropertyOfElements("weight")
		require.NoError(t, err)
		defer r.Release()

		assert.Equal(t, []float64{1.5, 0.5, 1}, r.Floats())
	})

	t.Run("non singleton bulk concatenates", func(t *testing.T) {
		r, err := v.GetPropertyOfElements("pair")
		require.NoError(t, err)
		defer r.Release()

		assert.Equal(t, []int64{3, -3, 1, -1, 2, -2}, r.Ints())
	})

	t.Run("single element", func(t *testing.T) {
		one, err := v.ValueAt(2)
		require.NoError(t, err)
		defer one.Release()

		r, err := one.GetPropertyOfElements("yolk")
		require.NoError(t, err)
		defer r.Release()
		assert.Equal(t, []int64{2}, r.Ints())
	})

	t.Run("object valued", func(t *testing.T) {
		before := elems[0].Refcount()

		r, err := v.GetPropertyOfElements("self")
		require.NoError(t, err)
		assert.Equal(t, value.Object, r.Kind())
		assert.Equal(t, 3, r.Count())
		assert.Equal(t, before+1, elems[0].Refcount())

		e, err := r.ObjectAt(0)
		require.NoError(t, err)
		assert.Same(t, elems[0], e)

		r.Release()
		assert.Equal(t, before, elems[0].Refcount())
	})
}

func TestGetPropertyErrors(t *testing.T) {
	v, _ := newElements(t, 1, 2)
	defer v.Release()

	_, err := v.GetPropertyOfElements("faulty")
	assert.ErrorIs(t, err, value.ErrPropertyArity)

	_, err = v.GetPropertyOfElements("nope")
	assert.ErrorIs(t, err, value.ErrUndeclaredCapability)

	var ve *value.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "nope", ve.Name)
	assert.Equal(t, "TestElement", ve.Class)

	one, _ := newElements(t, 5)
	defer one.Release()
	_, err = one.GetPropertyOfElements("faulty")
	assert.ErrorIs(t, err, value.ErrPropertyArity)

	ints := value.NewInt(1)
	defer ints.Release()
	_, err = ints.GetPropertyOfElements("yolk")
	assert.ErrorIs(t, err, value.ErrTypeMismatch)
}

func TestGenericPropertyArity(t *testing.T) {
	tests := []struct {
		name  string
		yolks []int64
		want  []int64
		index int
		count int
	}{
		{"one each", []int64{1, 1, 1}, []int64{1, 1, 1}, 0, 0},
		{"second yields two", []int64{1, 2}, nil, 1, 2},
		{"first yields none", []int64{0, 1}, nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newElements(t, tt.yolks...)
			defer v.Release()

			r, err := v.GetPropertyOfElements("span")
			if tt.want != nil {
				require.NoError(t, err)
				defer r.Release()
				assert.Equal(t, tt.want, r.Ints())
				return
			}

			require.ErrorIs(t, err, value.ErrPropertyArity)
			var ve *value.Error
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "span", ve.Name)
			assert.Equal(t, tt.index, ve.Index)
			assert.Equal(t, tt.count, ve.Count)
		})
	}

	t.Run("single element is unchecked", func(t *testing.T) {
		v, _ := newElements(t, 3)
		defer v.Release()

		r, err := v.GetPropertyOfElements("span")
		require.NoError(t, err)
		defer r.Release()
		assert.Equal(t, []int64{3, 3, 3}, r.Ints())
	})

	t.Run("non singleton drops shape", func(t *testing.T) {
		v, _ := newElements(t, 1, 1, 1, 1)
		defer v.Release()
		require.NoError(t, v.SetDimensions([]int{2, 2}))

		r, err := v.GetPropertyOfElements("span")
		require.NoError(t, err)
		defer r.Release()
		assert.Equal(t, 4, r.Count())
		assert.Nil(t, r.Dimensions())
	})
}

func TestSingletonMethodArity(t *testing.T) {
	one := value.NewInt(7)
	defer one.Release()
	two := value.NewInt(7, 8)
	defer two.Release()

	t.Run("accumulates singletons", func(t *testing.T) {
		v, _ := newElements(t, 1, 2, 3)
		defer v.Release()

		r, err := v.ExecuteInstanceMethodOfElements("echo", []*value.Value{one})
		require.NoError(t, err)
		defer r.Release()
		assert.Equal(t, []int64{7, 7, 7}, r.Ints())
	})

	t.Run("rejects longer results", func(t *testing.T) {
		v, _ := newElements(t, 1, 2, 3)
		defer v.Release()

		_, err := v.ExecuteInstanceMethodOfElements("echo", []*value.Value{two})
		require.ErrorIs(t, err, value.ErrPropertyArity)
		var ve *value.Error
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "echo", ve.Name)
		assert.Equal(t, 0, ve.Index)
		assert.Equal(t, 2, ve.Count)
	})

	t.Run("single element", func(t *testing.T) {
		v, _ := newElements(t, 1)
		defer v.Release()

		_, err := v.ExecuteInstanceMethodOfElements("echo", []*value.Value{two})
		assert.ErrorIs(t, err, value.ErrPropertyArity)
	})
}

func TestPropertyKeepsShape(t *testing.T) {
	v, _ := newElements(t, 1, 2, 3, 4)
	defer v.Release()
	require.NoError(t, v.SetDimensions([]int{2, 2}))

	r, err := v.GetPropertyOfElements("yolk")
	require.NoError(t, err)
	defer r.Release()
	assert.Equal(t, []int{2, 2}, r.Dimensions())

	p, err := v.GetPropertyOfElements("pair")
	require.NoError(t, err)
	defer p.Release()
	assert.Nil(t, p.Dimensions())
}

func TestEmptyObjectDispatch(t *testing.T) {
	v, err := value.NewObject(testelement.ElementClass)
	require.NoError(t, err)
	defer v.Release()

	r, err := v.GetPropertyOfElements("tag")
	require.NoError(t, err)
	assert.Equal(t, value.String, r.Kind())
	assert.Zero(t, r.Count())
	r.Release()

	m, err := v.ExecuteInstanceMethodOfElements("squareYolk", nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int, m.Kind())
	m.Release()

	_, err = v.ExecuteInstanceMethodOfElements("mixed", nil)
	assert.ErrorIs(t, err, value.ErrTypeMismatch)

	x := value.NewInt(1)
	defer x.Release()
	require.NoError(t, v.SetPropertyOfElements("yolk", x))
}

func TestSetPropertyOfElements(t *testing.T) {
	testelement.ElementCounters.Reset()

	v, elems := newElements(t, 1, 2, 3)
	defer v.Release()

	t.Run("bulk broadcast", func(t *testing.T) {
		x := value.NewInt(7)
		defer x.Release()
		require.NoError(t, v.SetPropertyOfElements("yolk", x))
		for _, e := range elems {
			assert.Equal(t, int64(7), e.Yolk())
		}
		assert.Equal(t, int64(1), testelement.ElementCounters.BulkSets.Load())
	})

	t.Run("bulk per element", func(t *testing.T) {
		x := value.NewInt(4, 5, 6)
		defer x.Release()
		require.NoError(t, v.SetPropertyOfElements("yolk", x))
		assert.Equal(t, int64(5), elems[1].Yolk())
	})

	t.Run("generic broadcast", func(t *testing.T) {
		s := value.NewString("all")
		defer s.Release()
		require.NoError(t, v.SetPropertyOfElements("tag", s))
		for _, e := range elems {
			assert.Equal(t, "all", e.Tag())
		}
	})

	t.Run("generic per element", func(t *testing.T) {
		s := value.NewString("a", "b", "c")
		defer s.Release()
		require.NoError(t, v.SetPropertyOfElements("tag", s))
		assert.Equal(t, "c", elems[2].Tag())
	})

	t.Run("broadcast mismatch", func(t *testing.T) {
		s := value.NewString("a", "b")
		defer s.Release()
		assert.ErrorIs(t, v.SetPropertyOfElements("tag", s), value.ErrBroadcastMismatch)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		f := value.NewFloat(1)
		defer f.Release()
		assert.ErrorIs(t, v.SetPropertyOfElements("yolk", f), value.ErrTypeMismatch)
	})

	t.Run("read only", func(t *testing.T) {
		f := value.NewFloat(1)
		defer f.Release()
		assert.ErrorIs(t, v.SetPropertyOfElements("weight", f), value.ErrUndeclaredCapability)
	})
}

func TestExecuteInstanceMethodOfElements(t *testing.T) {
	testelement.ElementCounters.Reset()

	v, _ := newElements(t, 1, 2, 3, 4)
	defer v.Release()

	tests := []struct {
		name   string
		method string
		args   []*value.Value
		kind   value.Kind
		want   string
	}{
		{"accumulate", "squareYolk", nil, value.Int, "1 4 9 16"},
		{"null results dropped", "maybe", nil, value.Int, "2 4"},
		{"mixed kinds promote", "mixed", nil, value.Float, "1.5 2.0 3.5 4.0"},
		{"void", "noop", nil, value.Void, ""},
		{"bulk", "addYolk", []*value.Value{value.StaticTrue}, value.Int, "2 3 4 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := v.ExecuteInstanceMethodOfElements(tt.method, tt.args)
			require.NoError(t, err)
			defer r.Release()

			assert.Equal(t, tt.kind, r.Kind())
			assert.Equal(t, tt.want, r.String())
		})
	}

	assert.Equal(t, int64(1), testelement.ElementCounters.BulkCalls.Load())

	_, err := v.ExecuteInstanceMethodOfElements("fly", nil)
	assert.ErrorIs(t, err, value.ErrUndeclaredCapability)

	_, err = v.ExecuteInstanceMethodOfElements("addYolk", nil)
	assert.Error(t, err)
}

func TestMethodOnSingleElementSkipsBulk(t *testing.T) {
	testelement.ElementCounters.Reset()

	v, _ := newElements(t, 10)
	defer v.Release()

	x := value.NewInt(5)
	defer x.Release()
	r, err := v.ExecuteInstanceMethodOfElements("addYolk", []*value.Value{x})
	require.NoError(t, err)
	defer r.Release()

	assert.Equal(t, []int64{15}, r.Ints())
	assert.Zero(t, testelement.ElementCounters.BulkCalls.Load())
}

func TestNonRetainingClass(t *testing.T) {
	a, b := &testelement.Marker{Label: "a"}, &testelement.Marker{Label: "b"}

	v, err := value.NewObject(nil, a, b)
	require.NoError(t, err)
	defer v.Release()

	labels, err := v.GetPropertyOfElements("label")
	require.NoError(t, err)
	defer labels.Release()
	assert.Equal(t, []string{"a", "b"}, labels.Strings())

	n := value.NewInt(9)
	defer n.Release()
	assert.ErrorIs(t, v.SetPropertyOfElements("label", n), value.ErrTypeMismatch)

	s := value.NewString("z")
	defer s.Release()
	require.NoError(t, v.SetPropertyOfElements("label", s))
	assert.Equal(t, "z", b.Label)

	d, err := v.ExecuteInstanceMethodOfElements("describe", nil)
	require.NoError(t, err)
	defer d.Release()
	assert.Equal(t, []string{"marker z", "marker z"}, d.Strings())
}

func TestRegistryRelocatesHandles(t *testing.T) {
	pop := testelement.NewPopulation("Individual")
	defer pop.Close()

	handles := make([]value.Element, 0, 5)
	for id := range int64(5) {
		handles = append(handles, pop.Add(100+id))
	}

	v, err := value.NewObject(pop.Class(), handles[3], handles[4])
	require.NoError(t, err)
	defer v.Release()
	w, err := value.NewObject(pop.Class(), handles[2])
	require.NoError(t, err)

	reg := pop.Registry()
	assert.Equal(t, pop.Class(), reg.Class())
	assert.True(t, reg.Contains(v))
	assert.Equal(t, 2, reg.Len())

	w.Release()
	assert.Equal(t, 1, reg.Len())

	assert.Equal(t, 2, pop.DropFront(3))
	assert.Equal(t, 2, pop.Len())

	ids, err := v.GetPropertyOfElements("id")
	require.NoError(t, err)
	defer ids.Release()
	assert.Equal(t, []int64{103, 104}, ids.Ints())

	e, err := v.ObjectAt(0)
	require.NoError(t, err)
	assert.Equal(t, 0, e.(testelement.Individual).Index())

	void, err := v.ExecuteInstanceMethodOfElements("birthday", nil)
	require.NoError(t, err)
	assert.Equal(t, value.Void, void.Kind())
	void.Release()
	ages, err := v.GetPropertyOfElements("age")
	require.NoError(t, err)
	defer ages.Release()
	assert.Equal(t, []int64{1, 1}, ages.Ints())
}

func TestRegistryIgnoresUntrackedClasses(t *testing.T) {
	pop := testelement.NewPopulation("Transient")
	reg := pop.Registry()
	pop.Close()

	v, err := value.NewObject(pop.Class(), pop.Add(1))
	require.NoError(t, err)
	defer v.Release()

	assert.False(t, reg.Contains(v))
	assert.Zero(t, reg.Len())
}

func TestColonyStaleHandles(t *testing.T) {
	colony := testelement.NewColony(arena.WithChunkSize(4))
	defer colony.Close()

	a, err := colony.Spawn(1)
	require.NoError(t, err)
	b, err := colony.Spawn(2)
	require.NoError(t, err)

	v, err := value.NewObject(colony.Class(), a, b)
	require.NoError(t, err)
	defer v.Release()

	x := value.NewFloat(0.5)
	defer x.Release()
	fed, err := v.ExecuteInstanceMethodOfElements("feed", []*value.Value{x})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, fed.Floats())
	fed.Release()

	require.NoError(t, colony.Kill(a))
	c, err := colony.Spawn(9)
	require.NoError(t, err)
	assert.Equal(t, a.Ref().Index, c.Ref().Index)

	_, err = v.GetPropertyOfElements("energy")
	assert.ErrorIs(t, err, arena.ErrStaleRef)

	alive, err := value.NewObject(colony.Class(), b, c)
	require.NoError(t, err)
	defer alive.Release()
	energy, err := alive.GetPropertyOfElements("energy")
	require.NoError(t, err)
	defer energy.Release()
	assert.Equal(t, []float64{2.5, 9}, energy.Floats())
}

type dispatchEvent struct {
	op       string
	elements int
	bulk     bool
	err      error
}

type recordingObserver struct {
	mu     sync.Mutex
	events []dispatchEvent
}

func (o *recordingObserver) ObserveDispatch(op string, elements int, bulk bool, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, dispatchEvent{op, elements, bulk, err})
}

func TestDispatchObserver(t *testing.T) {
	obs := &recordingObserver{}
	prev := value.Configure(value.Settings{Observer: obs})
	t.Cleanup(func() { value.Configure(prev) })

	v, _ := newElements(t, 1, 2)
	defer v.Release()

	r, err := v.GetPropertyOfElements("yolk")
	require.NoError(t, err)
	r.Release()
	r, err = v.GetPropertyOfElements("tag")
	require.NoError(t, err)
	r.Release()
	_, err = v.ExecuteInstanceMethodOfElements("nope", nil)
	require.Error(t, err)

	require.Len(t, obs.events, 3)
	assert.Equal(t, dispatchEvent{"GetPropertyOfElements", 2, true, nil}, obs.events[0])
	assert.False(t, obs.events[1].bulk)
	assert.Equal(t, "ExecuteInstanceMethodOfElements", obs.events[2].op)
	assert.ErrorIs(t, obs.events[2].err, value.ErrUndeclaredCapability)
}
