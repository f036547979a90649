package vecscript

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when a closed runtime is used.
	ErrClosed = errors.New("runtime is closed")

	// ErrAlreadyOpen is returned by Open while another runtime is open.
	// The value system has one set of process-wide settings, so sessions
	// cannot overlap.
	ErrAlreadyOpen = errors.New("a runtime is already open")

	// ErrInvalidOption is wrapped by every *OptionError.
	ErrInvalidOption = errors.New("invalid option")
)

// OptionError indicates an option value out of range.
type OptionError struct {
	Option string
	Value  any
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid option %s: %v", e.Option, e.Value)
}

func (e *OptionError) Unwrap() error { return ErrInvalidOption }
