package testelement

import (
	"fmt"
	"slices"

	"github.com/hupe1980/vecscript/value"
)

type individual struct {
	id  int64
	age int64
}

// Population stores individuals in one contiguous slice. Handles are
// positions into that slice, so compacting the storage moves every
// individual; the population then relocates the handles held by values.
type Population struct {
	class    *class
	registry *value.Registry
	data     []individual
}

// NewPopulation creates a population with its own tracked class.
func NewPopulation(name string) *Population {
	p := &Population{class: newClass(name, false)}
	p.class.addProperty(&value.PropertySignature{Name: "id", Kinds: value.MaskInt | value.MaskSingleton})
	p.class.addProperty(&value.PropertySignature{Name: "age", Kinds: value.MaskInt | value.MaskSingleton})
	p.class.addMethod(&value.MethodSignature{Name: "birthday", Returns: value.MaskVoid})
	p.registry = value.TrackClass(p.class)
	return p
}

// Class returns the population's element class.
func (p *Population) Class() value.Class {
	return p.class
}

// Registry returns the registry tracking vectors of this population.
func (p *Population) Registry() *value.Registry {
	return p.registry
}

// Add appends an individual and returns its handle.
func (p *Population) Add(id int64) Individual {
	p.data = append(p.data, individual{id: id})
	return Individual{pop: p, index: len(p.data) - 1}
}

// Len returns the number of individuals.
func (p *Population) Len() int {
	return len(p.data)
}

// DropFront removes the first k individuals, compacting storage, and shifts
// every handle held by a live value accordingly. Handles to the dropped
// individuals become invalid.
func (p *Population) DropFront(k int) int {
	p.data = slices.Clone(p.data[k:])
	return p.registry.Relocate(-k)
}

// Close stops tracking the population's class.
func (p *Population) Close() {
	value.UntrackClass(p.class)
}

// Individual is a handle to one member of a Population.
type Individual struct {
	pop   *Population
	index int
}

func (h Individual) get() (*individual, error) {
	if h.index < 0 || h.index >= len(h.pop.data) {
		return nil, fmt.Errorf("%s: handle %d: %w", h.pop.class.name, h.index, value.ErrOutOfRange)
	}
	return &h.pop.data[h.index], nil
}

// Index returns the storage position the handle refers to.
func (h Individual) Index() int { return h.index }

// ID returns the individual's id, or -1 for an invalid handle.
func (h Individual) ID() int64 {
	ind, err := h.get()
	if err != nil {
		return -1
	}
	return ind.id
}

// Class implements value.Element.
func (h Individual) Class() value.Class { return h.pop.class }

// Relocated implements value.Relocatable.
func (h Individual) Relocated(delta int) value.Element {
	return Individual{pop: h.pop, index: h.index + delta}
}

// GetProperty implements value.Element.
func (h Individual) GetProperty(name string) (*value.Value, error) {
	ind, err := h.get()
	if err != nil {
		return nil, err
	}
	switch name {
	case "id":
		return value.NewInt(ind.id), nil
	case "age":
		return value.NewInt(ind.age), nil
	default:
		return nil, undeclared(h.pop.class, name)
	}
}

// SetProperty implements value.Element.
func (h Individual) SetProperty(name string, v *value.Value) error {
	ind, err := h.get()
	if err != nil {
		return err
	}
	if name != "age" {
		return undeclared(h.pop.class, name)
	}
	x, err := v.CoerceInt(0)
	if err != nil {
		return err
	}
	ind.age = x
	return nil
}

// ExecuteInstanceMethod implements value.Element.
func (h Individual) ExecuteInstanceMethod(name string, _ []*value.Value) (*value.Value, error) {
	ind, err := h.get()
	if err != nil {
		return nil, err
	}
	if name != "birthday" {
		return nil, undeclared(h.pop.class, name)
	}
	ind.age++
	return value.NewVoid(), nil
}
