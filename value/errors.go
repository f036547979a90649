package value

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every error returned by this package wraps exactly one of
// them, so callers can classify with errors.Is.
var (
	ErrOutOfRange            = errors.New("index out of range")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrShapeMismatch         = errors.New("shape mismatch")
	ErrBroadcastMismatch     = errors.New("broadcast mismatch")
	ErrImmutableValue        = errors.New("value is immutable")
	ErrPropertyArity         = errors.New("property arity mismatch")
	ErrUndeclaredCapability  = errors.New("undeclared property or method")
)

// Error carries the operation and the offending operand of a failed call.
// Fields that do not apply are left zero; Index and Count use -1 for "unset".
type Error struct {
	Op    string // operation name, e.g. "IntAt"
	Err   error  // one of the sentinel errors
	Index int
	Count int
	Kind  Kind
	Class string
	Name  string // property or method name
	Cause error  // underlying conversion error, if any
}

func newError(op string, err error) *Error {
	return &Error{Op: op, Err: err, Index: -1, Count: -1}
}

func (e *Error) withIndex(i int) *Error {
	e.Index = i
	return e
}

func (e *Error) withCount(n int) *Error {
	e.Count = n
	return e
}

func (e *Error) withKind(k Kind) *Error {
	e.Kind = k
	return e
}

func (e *Error) withClass(c Class) *Error {
	if c != nil {
		e.Class = c.Name()
	}
	return e
}

func (e *Error) withName(name string) *Error {
	e.Name = name
	return e
}

func (e *Error) withCause(err error) *Error {
	e.Cause = err
	return e
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())

	if e.Name != "" {
		fmt.Fprintf(&sb, " (name %q)", e.Name)
	}
	if e.Class != "" {
		fmt.Fprintf(&sb, " (class %s)", e.Class)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&sb, " (index %d)", e.Index)
	}
	if e.Count >= 0 {
		fmt.Fprintf(&sb, " (count %d)", e.Count)
	}
	if e.Kind != Void || errors.Is(e.Err, ErrTypeMismatch) {
		fmt.Fprintf(&sb, " (kind %s)", e.Kind)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// ErrorKind is the classification of an error for the layer above.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindOutOfRange
	KindTypeMismatch
	KindUnsupportedConversion
	KindShapeMismatch
	KindBroadcastMismatch
	KindImmutableValue
	KindPropertyArity
	KindUndeclaredCapability
	KindAllocationFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindOutOfRange:
		return "OutOfRange"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindUnsupportedConversion:
		return "UnsupportedConversion"
	case KindShapeMismatch:
		return "ShapeMismatch"
	case KindBroadcastMismatch:
		return "BroadcastMismatch"
	case KindImmutableValue:
		return "ImmutableValue"
	case KindPropertyArity:
		return "PropertyArity"
	case KindUndeclaredCapability:
		return "UndeclaredCapability"
	case KindAllocationFailure:
		return "AllocationFailure"
	default:
		return "Unknown"
	}
}

// ErrorKindOf classifies err.
func ErrorKindOf(err error) ErrorKind {
	var ae *AllocationError
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &ae):
		return KindAllocationFailure
	case errors.Is(err, ErrOutOfRange):
		return KindOutOfRange
	case errors.Is(err, ErrTypeMismatch):
		return KindTypeMismatch
	case errors.Is(err, ErrUnsupportedConversion):
		return KindUnsupportedConversion
	case errors.Is(err, ErrShapeMismatch):
		return KindShapeMismatch
	case errors.Is(err, ErrBroadcastMismatch):
		return KindBroadcastMismatch
	case errors.Is(err, ErrImmutableValue):
		return KindImmutableValue
	case errors.Is(err, ErrPropertyArity):
		return KindPropertyArity
	case errors.Is(err, ErrUndeclaredCapability):
		return KindUndeclaredCapability
	default:
		return KindUnknown
	}
}

// AllocationError is the panic payload raised when a buffer cannot grow
// within the session memory budget. It is never returned: a failed growth
// leaves the value inconsistent, so the session must not continue.
type AllocationError struct {
	Op    string
	Bytes int64
	Err   error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%s: allocation of %d bytes failed: %v", e.Op, e.Bytes, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}
