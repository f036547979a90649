package testelement

import (
	"fmt"

	"github.com/hupe1980/vecscript/internal/arena"
	"github.com/hupe1980/vecscript/value"
)

type cell struct {
	energy float64
}

// Colony keeps cells in a generation-checked arena. Values hold Cell handles;
// a handle to a dead cell fails on use instead of aliasing whichever cell
// reuses its slot, and no handle ever needs relocating.
type Colony struct {
	class *class
	cells *arena.Arena[cell]
}

// NewColony creates an empty colony. opts configure the backing arena.
func NewColony(opts ...arena.Option) *Colony {
	c := &Colony{
		class: newClass("Cell", false),
		cells: arena.New[cell](opts...),
	}
	c.class.addProperty(&value.PropertySignature{Name: "energy", Kinds: value.MaskFloat | value.MaskSingleton})
	c.class.addMethod(&value.MethodSignature{Name: "feed", Returns: value.MaskFloat | value.MaskSingleton})
	return c
}

// Class returns the colony's element class.
func (c *Colony) Class() value.Class {
	return c.class
}

// Spawn adds a cell.
func (c *Colony) Spawn(energy float64) (Cell, error) {
	ref, err := c.cells.Alloc(cell{energy: energy})
	if err != nil {
		return Cell{}, err
	}
	return Cell{colony: c, ref: ref}, nil
}

// Kill removes a cell. Every handle to it becomes stale.
func (c *Colony) Kill(h Cell) error {
	return c.cells.Free(h.ref)
}

// Len returns the number of live cells.
func (c *Colony) Len() int {
	return c.cells.Len()
}

// Close frees the arena.
func (c *Colony) Close() {
	c.cells.Close()
}

// Cell is a generation-checked handle to a cell of a Colony.
type Cell struct {
	colony *Colony
	ref    arena.Ref
}

// Ref returns the arena reference.
func (h Cell) Ref() arena.Ref { return h.ref }

func (h Cell) get() (*cell, error) {
	p, err := h.colony.cells.Get(h.ref)
	if err != nil {
		return nil, fmt.Errorf("cell %s: %w", h.ref, err)
	}
	return p, nil
}

// Class implements value.Element.
func (h Cell) Class() value.Class { return h.colony.class }

// GetProperty implements value.Element.
func (h Cell) GetProperty(name string) (*value.Value, error) {
	if name != "energy" {
		return nil, undeclared(h.colony.class, name)
	}
	p, err := h.get()
	if err != nil {
		return nil, err
	}
	return value.NewFloat(p.energy), nil
}

// SetProperty implements value.Element.
func (h Cell) SetProperty(name string, v *value.Value) error {
	if name != "energy" {
		return undeclared(h.colony.class, name)
	}
	p, err := h.get()
	if err != nil {
		return err
	}
	f, err := v.CoerceFloat(0)
	if err != nil {
		return err
	}
	p.energy = f
	return nil
}

// ExecuteInstanceMethod implements value.Element.
func (h Cell) ExecuteInstanceMethod(name string, args []*value.Value) (*value.Value, error) {
	if name != "feed" {
		return nil, undeclared(h.colony.class, name)
	}
	p, err := h.get()
	if err != nil {
		return nil, err
	}
	for _, a := range args {
		f, err := a.CoerceFloat(0)
		if err != nil {
			return nil, err
		}
		p.energy += f
	}
	return value.NewFloat(p.energy), nil
}
