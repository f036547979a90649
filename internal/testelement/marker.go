package testelement

import "github.com/hupe1980/vecscript/value"

// Marker is a non-retaining entity. Values hold markers without touching any
// reference count; the owner keeps them alive.
type Marker struct {
	Label string
}

// MarkerClass is the class of every *Marker.
var MarkerClass = newMarkerClass()

// Class implements value.Element.
func (m *Marker) Class() value.Class { return MarkerClass }

// GetProperty implements value.Element.
func (m *Marker) GetProperty(name string) (*value.Value, error) {
	if name == "label" {
		return value.NewString(m.Label), nil
	}
	return nil, undeclared(MarkerClass, name)
}

// SetProperty implements value.Element.
func (m *Marker) SetProperty(name string, v *value.Value) error {
	if name != "label" {
		return undeclared(MarkerClass, name)
	}
	s, err := v.CoerceString(0)
	if err != nil {
		return err
	}
	m.Label = s
	return nil
}

// ExecuteInstanceMethod implements value.Element.
func (m *Marker) ExecuteInstanceMethod(name string, _ []*value.Value) (*value.Value, error) {
	if name == "describe" {
		return value.NewString("marker " + m.Label), nil
	}
	return nil, undeclared(MarkerClass, name)
}

func newMarkerClass() *class {
	c := newClass("Marker", false)
	c.addProperty(&value.PropertySignature{Name: "label", Kinds: value.MaskString | value.MaskSingleton})
	c.addMethod(&value.MethodSignature{Name: "describe", Returns: value.MaskString | value.MaskSingleton})
	return c
}
