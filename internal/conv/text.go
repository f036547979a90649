package conv

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrSyntax is returned when text is not a well-formed number or logical.
var ErrSyntax = errors.New("conv: malformed text")

// Canonical spellings of logical values.
const (
	True  = "T"
	False = "F"
)

// FormatBool returns "T" or "F".
func FormatBool(b bool) string {
	if b {
		return True
	}
	return False
}

// ParseBool accepts "T", "TRUE", "true" and "F", "FALSE", "false".
func ParseBool(s string) (bool, error) {
	switch s {
	case "T", "TRUE", "true":
		return true, nil
	case "F", "FALSE", "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a logical", ErrSyntax, s)
}

// FormatInt formats an integer in base 10.
func FormatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// ParseInt parses a base-10 integer.
func ParseInt(s string) (int64, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		return 0, fmt.Errorf("%w: %q is not an integer", ErrSyntax, s)
	}
	return i, nil
}

// FormatFloat formats a float with the shortest representation that round
// trips. Whole numbers keep a trailing ".0" so they stay visibly float;
// non-finite values print as NAN, INF and -INF.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ParseFloat parses a decimal float. "NAN", "INF" and "-INF" are accepted in
// any case, matching strconv.
func ParseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		return 0, fmt.Errorf("%w: %q is not a number", ErrSyntax, s)
	}
	return f, nil
}
