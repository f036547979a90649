package value

// Class describes an externally defined entity type that object-kind values
// can reference. A class decides once, for all of its instances, whether
// values participate in its reference counting.
type Class interface {
	// Name is the stable class identity used in errors and printing.
	Name() string

	// UsesRetainRelease reports whether elements implement RetainReleaser
	// and must be retained while a value holds them.
	UsesRetainRelease() bool

	// Property returns the signature of name, or nil if undeclared.
	Property(name string) *PropertySignature

	// Method returns the signature of name, or nil if undeclared.
	Method(name string) *MethodSignature
}

// Element is one externally defined entity referenced from an object-kind
// value. Returned values are owned by the caller.
type Element interface {
	Class() Class
	GetProperty(name string) (*Value, error)
	SetProperty(name string, v *Value) error
	ExecuteInstanceMethod(name string, args []*Value) (*Value, error)
}

// RetainReleaser is implemented by elements of classes that use
// retain/release. Retain and Release are only called when
// Class.UsesRetainRelease reports true.
type RetainReleaser interface {
	Retain()
	Release()
}

// PropertySignature declares a property of a class.
type PropertySignature struct {
	Name string

	// Kinds is the set of kinds the property yields. MaskSingleton declares
	// exactly one element per entity; results then keep the shape of the
	// receiving value.
	Kinds Mask

	// Class is the element class for object-valued properties.
	Class Class

	// ReadOnly rejects SetPropertyOfElements.
	ReadOnly bool

	// GetBulk, if set, produces the property for every element at once and is
	// preferred over per-element calls.
	GetBulk func(elems []Element) (*Value, error)

	// SetBulk, if set, assigns the property on every element at once. The
	// value has either one element or one per target.
	SetBulk func(elems []Element, v *Value) error
}

// MethodSignature declares an instance method of a class.
type MethodSignature struct {
	Name string

	// Returns is the set of kinds the method yields. NULL is always allowed.
	// MaskSingleton requires every other result to have exactly one element.
	Returns Mask

	// Class is the element class for object-returning methods.
	Class Class

	// ExecuteBulk, if set, runs the method for every element at once and is
	// preferred over per-element calls.
	ExecuteBulk func(elems []Element, args []*Value) (*Value, error)
}
