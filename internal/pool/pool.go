// Package pool provides a slab allocator for small, frequently allocated
// objects.
//
// A Pool hands out fixed-size chunks (one T each) carved from slabs that double
// in length up to a maximum block length. Returned chunks go onto a free list
// and are reused before any new slab is carved, so steady-state allocation does
// not touch the general heap.
//
// Pool is safe for concurrent use.
package pool

import (
	"sync"
	"unsafe"
)

const (
	// DefaultInitialCapacity is the length of the first slab.
	DefaultInitialCapacity = 1024

	// DefaultMaxBlockLength caps the length of any single slab.
	DefaultMaxBlockLength = 1000000
)

// Pool is a slab free-list allocator of T.
type Pool[T any] struct {
	mu       sync.Mutex
	slabs    [][]T
	current  []T // unused tail of the newest slab
	free     []*T
	maxBlock int
	nextSize int
	inUse    int
	gets     uint64
	reuses   uint64
}

// New creates a Pool whose first slab holds initialCapacity items and whose
// slabs never exceed maxBlockLength items. Non-positive arguments select the
// defaults.
func New[T any](initialCapacity, maxBlockLength int) *Pool[T] {
	if initialCapacity <= 0 {
		initialCapacity = DefaultInitialCapacity
	}
	if maxBlockLength <= 0 {
		maxBlockLength = DefaultMaxBlockLength
	}
	if initialCapacity > maxBlockLength {
		initialCapacity = maxBlockLength
	}
	p := &Pool[T]{
		maxBlock: maxBlockLength,
		nextSize: initialCapacity,
	}
	p.allocateSlab()
	return p
}

func (p *Pool[T]) allocateSlab() {
	size := p.nextSize
	slab := make([]T, size)
	p.slabs = append(p.slabs, slab)
	p.current = slab

	next := size * 2
	if next < size || next > p.maxBlock {
		next = p.maxBlock
	}
	p.nextSize = next
}

// Get returns a zeroed chunk.
func (p *Pool[T]) Get() *T {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gets++
	p.inUse++

	if n := len(p.free); n > 0 {
		x := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.reuses++
		return x
	}

	if len(p.current) == 0 {
		p.allocateSlab()
	}
	x := &p.current[0]
	p.current = p.current[1:]
	return x
}

// Put zeroes x and returns it to the free list. x must have come from Get on
// the same pool and must not be used afterwards.
func (p *Pool[T]) Put(x *T) {
	if x == nil {
		return
	}
	var zero T
	*x = zero

	p.mu.Lock()
	p.free = append(p.free, x)
	p.inUse--
	p.mu.Unlock()
}

// Stats describes a pool's footprint.
type Stats struct {
	Slabs     int    // slabs carved so far
	Capacity  int    // total chunks across all slabs
	InUse     int    // chunks handed out and not yet returned
	Free      int    // chunks waiting on the free list
	Gets      uint64 // cumulative Get calls
	Reuses    uint64 // Get calls served from the free list
	ItemBytes int    // size of one chunk
}

// MemoryUsage returns the bytes reserved by all slabs.
func (s Stats) MemoryUsage() int {
	return s.Capacity * s.ItemBytes
}

// Stats returns current pool statistics.
func (p *Pool[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	capacity := 0
	for _, s := range p.slabs {
		capacity += len(s)
	}
	var zero T
	return Stats{
		Slabs:     len(p.slabs),
		Capacity:  capacity,
		InUse:     p.inUse,
		Free:      len(p.free),
		Gets:      p.gets,
		Reuses:    p.reuses,
		ItemBytes: int(unsafe.Sizeof(zero)),
	}
}
