package arena

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

var (
	// ErrStaleRef is returned when a Ref outlived the slot it pointed to.
	ErrStaleRef = errors.New("arena: stale reference")
	// ErrInvalidRef is returned for a Ref that was never allocated.
	ErrInvalidRef = errors.New("arena: invalid reference")
	// ErrMaxChunksExceeded is returned when the arena exceeds the maximum number of chunks.
	ErrMaxChunksExceeded = errors.New("arena: max chunks exceeded")
)

const (
	// DefaultChunkSize is the default number of slots per chunk.
	DefaultChunkSize = 1024
	// MaxChunks limits the number of chunks to prevent excessive memory usage.
	MaxChunks = 65536
)

// MemoryAcquirer is an interface for acquiring memory.
type MemoryAcquirer interface {
	AcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

// Ref is a safe reference to an arena slot. The zero Ref is never valid.
type Ref struct {
	Gen   uint32
	Index uint32
}

// IsZero reports whether r is the zero Ref.
func (r Ref) IsZero() bool {
	return r.Gen == 0
}

func (r Ref) String() string {
	return fmt.Sprintf("%d@%d", r.Index, r.Gen)
}

// Stats tracks arena usage.
type Stats struct {
	Chunks      int    // chunks currently held
	Live        int    // slots currently allocated
	Free        int    // slots on the free list
	TotalAllocs uint64 // cumulative allocations
	TotalFrees  uint64 // cumulative frees
}

type slot[T any] struct {
	val  T
	gen  uint32 // odd while live
	next uint32 // free list link, index+1
}

// Arena is a generation-checked store of T values.
type Arena[T any] struct {
	mu        sync.RWMutex
	chunkSize int
	chunks    [][]slot[T]
	used      uint32 // slots handed out at least once
	freeHead  uint32 // index+1 of first free slot, 0 if empty
	free      int
	live      int
	acquirer  MemoryAcquirer

	allocs atomic.Uint64
	frees  atomic.Uint64
}

// Option is a configuration option for Arena.
type Option func(*options)

type options struct {
	chunkSize int
	acquirer  MemoryAcquirer
}

// WithChunkSize sets the number of slots per chunk.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithMemoryAcquirer charges each new chunk against acquirer.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acquirer
	}
}

// New creates an empty Arena.
func New[T any](opts ...Option) *Arena[T] {
	o := options{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.chunkSize <= 0 {
		o.chunkSize = DefaultChunkSize
	}
	return &Arena[T]{
		chunkSize: o.chunkSize,
		acquirer:  o.acquirer,
	}
}

func (a *Arena[T]) chunkBytes() int64 {
	var s slot[T]
	return int64(unsafe.Sizeof(s)) * int64(a.chunkSize)
}

func (a *Arena[T]) slotAt(idx uint32) *slot[T] {
	return &a.chunks[int(idx)/a.chunkSize][int(idx)%a.chunkSize]
}

// Alloc stores v in a fresh slot and returns its Ref.
func (a *Arena[T]) Alloc(v T) (Ref, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var idx uint32
	if a.freeHead != 0 {
		idx = a.freeHead - 1
		a.freeHead = a.slotAt(idx).next
		a.free--
	} else {
		if int(a.used) == len(a.chunks)*a.chunkSize {
			if err := a.grow(); err != nil {
				return Ref{}, err
			}
		}
		idx = a.used
		a.used++
	}

	s := a.slotAt(idx)
	s.val = v
	s.gen++ // even -> odd
	s.next = 0
	a.live++
	a.allocs.Add(1)

	return Ref{Gen: s.gen, Index: idx}, nil
}

// grow appends a chunk. Caller must hold mu.
func (a *Arena[T]) grow() error {
	if len(a.chunks) >= MaxChunks {
		return ErrMaxChunksExceeded
	}
	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(a.chunkBytes()); err != nil {
			return err
		}
	}
	a.chunks = append(a.chunks, make([]slot[T], a.chunkSize))
	return nil
}

func (a *Arena[T]) lookup(r Ref) (*slot[T], error) {
	if r.IsZero() || r.Index >= a.used {
		return nil, ErrInvalidRef
	}
	s := a.slotAt(r.Index)
	if s.gen != r.Gen {
		return nil, ErrStaleRef
	}
	return s, nil
}

// Get returns a pointer to the value stored under r.
func (a *Arena[T]) Get(r Ref) (*T, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s, err := a.lookup(r)
	if err != nil {
		return nil, err
	}
	return &s.val, nil
}

// Valid reports whether r still refers to a live slot.
func (a *Arena[T]) Valid(r Ref) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	_, err := a.lookup(r)
	return err == nil
}

// Free releases the slot under r. Every outstanding copy of r becomes stale.
func (a *Arena[T]) Free(r Ref) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.lookup(r)
	if err != nil {
		return err
	}

	var zero T
	s.val = zero
	s.gen++ // odd -> even
	s.next = a.freeHead
	a.freeHead = r.Index + 1
	a.free++
	a.live--
	a.frees.Add(1)

	return nil
}

// Len returns the number of live slots.
func (a *Arena[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.live
}

// Each calls fn for every live slot in index order until fn returns false.
// fn must not call Alloc or Free.
func (a *Arena[T]) Each(fn func(Ref, *T) bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for i := range a.used {
		s := a.slotAt(i)
		if s.gen%2 == 0 {
			continue
		}
		if !fn(Ref{Gen: s.gen, Index: i}, &s.val) {
			return
		}
	}
}

// Stats returns a snapshot of arena usage.
func (a *Arena[T]) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return Stats{
		Chunks:      len(a.chunks),
		Live:        a.live,
		Free:        a.free,
		TotalAllocs: a.allocs.Load(),
		TotalFrees:  a.frees.Load(),
	}
}

// Close drops every chunk and returns their memory to the acquirer. All
// outstanding Refs and pointers become invalid.
func (a *Arena[T]) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.acquirer != nil {
		a.acquirer.ReleaseMemory(a.chunkBytes() * int64(len(a.chunks)))
	}
	a.chunks = nil
	a.used = 0
	a.freeHead = 0
	a.free = 0
	a.live = 0
}
