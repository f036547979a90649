package arena

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	name string
	next Ref
}

func TestAllocGet(t *testing.T) {
	a := New[node]()

	r, err := a.Alloc(node{name: "a"})
	require.NoError(t, err)
	assert.False(t, r.IsZero())

	n, err := a.Get(r)
	require.NoError(t, err)
	assert.Equal(t, "a", n.name)
	assert.Equal(t, 1, a.Len())
}

func TestStaleRef(t *testing.T) {
	a := New[node]()

	r, err := a.Alloc(node{name: "a"})
	require.NoError(t, err)
	require.NoError(t, a.Free(r))

	_, err = a.Get(r)
	assert.ErrorIs(t, err, ErrStaleRef)
	assert.False(t, a.Valid(r))

	// the slot is reused under a new generation
	r2, err := a.Alloc(node{name: "b"})
	require.NoError(t, err)
	assert.Equal(t, r.Index, r2.Index)
	assert.NotEqual(t, r.Gen, r2.Gen)

	_, err = a.Get(r)
	assert.ErrorIs(t, err, ErrStaleRef)

	n, err := a.Get(r2)
	require.NoError(t, err)
	assert.Equal(t, "b", n.name)

	assert.ErrorIs(t, a.Free(r), ErrStaleRef)
}

func TestInvalidRef(t *testing.T) {
	a := New[node]()

	_, err := a.Get(Ref{})
	assert.ErrorIs(t, err, ErrInvalidRef)

	_, err = a.Get(Ref{Gen: 1, Index: 99})
	assert.ErrorIs(t, err, ErrInvalidRef)
}

func TestPointersSurviveGrowth(t *testing.T) {
	a := New[node](WithChunkSize(4))

	first, err := a.Alloc(node{name: "first"})
	require.NoError(t, err)
	p, err := a.Get(first)
	require.NoError(t, err)

	prev := first
	for range 100 {
		r, err := a.Alloc(node{next: prev})
		require.NoError(t, err)
		prev = r
	}

	assert.Equal(t, "first", p.name)
	assert.Equal(t, 26, a.Stats().Chunks)

	// follow links back to the head
	steps := 0
	for r := prev; r != first; steps++ {
		n, err := a.Get(r)
		require.NoError(t, err)
		r = n.next
	}
	assert.Equal(t, 100, steps)
}

func TestEach(t *testing.T) {
	a := New[int](WithChunkSize(2))

	refs := make([]Ref, 5)
	for i := range refs {
		r, err := a.Alloc(i)
		require.NoError(t, err)
		refs[i] = r
	}
	require.NoError(t, a.Free(refs[1]))
	require.NoError(t, a.Free(refs[3]))

	var got []int
	a.Each(func(_ Ref, v *int) bool {
		got = append(got, *v)
		return true
	})
	assert.Equal(t, []int{0, 2, 4}, got)

	count := 0
	a.Each(func(Ref, *int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestStats(t *testing.T) {
	a := New[int](WithChunkSize(8))

	r, _ := a.Alloc(1)
	_, _ = a.Alloc(2)
	require.NoError(t, a.Free(r))

	s := a.Stats()
	assert.Equal(t, 1, s.Chunks)
	assert.Equal(t, 1, s.Live)
	assert.Equal(t, 1, s.Free)
	assert.Equal(t, uint64(2), s.TotalAllocs)
	assert.Equal(t, uint64(1), s.TotalFrees)
}

type budget struct {
	limit, used int64
}

func (b *budget) AcquireMemory(n int64) error {
	if b.used+n > b.limit {
		return errors.New("over budget")
	}
	b.used += n
	return nil
}

func (b *budget) ReleaseMemory(n int64) {
	b.used -= n
}

func TestMemoryAcquirer(t *testing.T) {
	b := &budget{limit: 1 << 20}
	a := New[int64](WithChunkSize(16), WithMemoryAcquirer(b))

	_, err := a.Alloc(1)
	require.NoError(t, err)
	assert.Positive(t, b.used)

	a.Close()
	assert.Zero(t, b.used)

	tight := &budget{limit: 1}
	a = New[int64](WithMemoryAcquirer(tight))
	_, err = a.Alloc(1)
	assert.Error(t, err)
}

func TestConcurrentAllocFree(t *testing.T) {
	a := New[int](WithChunkSize(32))

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				r, err := a.Alloc(g*1000 + i)
				if err != nil {
					t.Error(err)
					return
				}
				v, err := a.Get(r)
				if err != nil || *v != g*1000+i {
					t.Errorf("lookup mismatch: %v", err)
					return
				}
				if i%2 == 0 {
					if err := a.Free(r); err != nil {
						t.Error(err)
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*250, a.Len())
}
