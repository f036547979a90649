package testelement

import (
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/vecscript/value"
)

// class is a table-driven value.Class.
type class struct {
	name    string
	retains bool
	props   map[string]*value.PropertySignature
	methods map[string]*value.MethodSignature
}

func newClass(name string, retains bool) *class {
	return &class{
		name:    name,
		retains: retains,
		props:   make(map[string]*value.PropertySignature),
		methods: make(map[string]*value.MethodSignature),
	}
}

func (c *class) Name() string            { return c.name }
func (c *class) UsesRetainRelease() bool { return c.retains }

func (c *class) Property(name string) *value.PropertySignature {
	return c.props[name]
}

func (c *class) Method(name string) *value.MethodSignature {
	return c.methods[name]
}

func (c *class) addProperty(sig *value.PropertySignature) {
	c.props[sig.Name] = sig
}

func (c *class) addMethod(sig *value.MethodSignature) {
	c.methods[sig.Name] = sig
}

func undeclared(c value.Class, name string) error {
	return fmt.Errorf("%s.%s: %w", c.Name(), name, value.ErrUndeclaredCapability)
}

// Counters records how often bulk paths ran.
type Counters struct {
	BulkGets  atomic.Int64
	BulkSets  atomic.Int64
	BulkCalls atomic.Int64
}

// Reset zeroes the counters.
func (c *Counters) Reset() {
	c.BulkGets.Store(0)
	c.BulkSets.Store(0)
	c.BulkCalls.Store(0)
}
