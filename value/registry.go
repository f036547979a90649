package value

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Relocatable is implemented by elements whose backing storage can move en
// masse. Relocated returns the handle for the same entity after its storage
// was shifted by delta slots.
type Relocatable interface {
	Element
	Relocated(delta int) Element
}

// Registry tracks every live object vector of one class, so that a bulk move
// of the class's storage can rewrite the handles those vectors hold.
//
// Vectors join the registry when their class is bound and leave it when they
// are destroyed. All methods are safe for concurrent use.
type Registry struct {
	class Class

	mu     sync.Mutex
	ids    *roaring64.Bitmap
	values map[uint64]*Value
}

var (
	registriesMu sync.RWMutex
	registries   = make(map[Class]*Registry)
)

// TrackClass starts tracking vectors of class c and returns its registry.
// Calling it again returns the same registry. Vectors bound to c before the
// first call are not tracked. c must be comparable.
func TrackClass(c Class) *Registry {
	registriesMu.Lock()
	defer registriesMu.Unlock()

	if r, ok := registries[c]; ok {
		return r
	}
	r := &Registry{
		class:  c,
		ids:    roaring64.New(),
		values: make(map[uint64]*Value),
	}
	registries[c] = r
	return r
}

// UntrackClass stops tracking c. Vectors already registered stay with the
// returned registry until destroyed.
func UntrackClass(c Class) {
	registriesMu.Lock()
	defer registriesMu.Unlock()
	delete(registries, c)
}

func registryFor(c Class) *Registry {
	registriesMu.RLock()
	defer registriesMu.RUnlock()
	return registries[c]
}

// Class returns the tracked class.
func (r *Registry) Class() Class {
	return r.class
}

func (r *Registry) add(v *Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids.Add(v.id)
	r.values[v.id] = v
}

func (r *Registry) remove(v *Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids.Remove(v.id)
	delete(r.values, v.id)
}

// Len returns the number of registered vectors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.ids.GetCardinality())
}

// Contains reports whether v is registered.
func (r *Registry) Contains(v *Value) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ids.Contains(v.id) && r.values[v.id] == v
}

// Relocate shifts every Relocatable handle held by a registered vector by
// delta and returns the number of handles rewritten. Ownership is unchanged:
// the same entities are referenced at their new location.
func (r *Registry) Relocate(delta int) int {
	return r.Rewrite(func(e Element) Element {
		if re, ok := e.(Relocatable); ok {
			return re.Relocated(delta)
		}
		return e
	})
}

// Rewrite replaces every handle held by a registered vector with fn(handle),
// visiting vectors in registration order of their ids. fn must not create or
// destroy values.
func (r *Registry) Rewrite(fn func(Element) Element) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	it := r.ids.Iterator()
	for it.HasNext() {
		v := r.values[it.Next()]
		for i, e := range v.objs.items {
			if e == nil {
				continue
			}
			if ne := fn(e); ne != e {
				v.objs.items[i] = ne
				n++
			}
		}
	}
	return n
}
