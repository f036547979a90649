package value

import "strings"

// Kind tags the variant a Value holds.
type Kind uint8

const (
	Void Kind = iota
	Null
	Logical
	Int
	Float
	String
	Object
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Null:
		return "NULL"
	case Logical:
		return "logical"
	case Int:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// rank orders kinds for promotion. Higher ranks absorb lower ones.
func (k Kind) rank() int {
	switch k {
	case Logical:
		return 1
	case Int:
		return 2
	case Float:
		return 3
	case String:
		return 4
	default:
		return 0
	}
}

// Mask is a set of kinds plus signature flags, used to declare what a
// property or method may produce.
type Mask uint16

const (
	MaskVoid Mask = 1 << iota
	MaskNull
	MaskLogical
	MaskInt
	MaskFloat
	MaskString
	MaskObject

	// MaskSingleton requires exactly one element.
	MaskSingleton Mask = 1 << 14

	MaskNone    Mask = 0
	MaskNumeric      = MaskInt | MaskFloat
	MaskAnyBase      = MaskLogical | MaskInt | MaskFloat | MaskString
	MaskAny          = MaskNull | MaskAnyBase | MaskObject

	maskKinds = MaskVoid | MaskNull | MaskAnyBase | MaskObject
)

// MaskOf returns the mask containing only k.
func MaskOf(k Kind) Mask {
	return 1 << k
}

// Has reports whether k is allowed by m.
func (m Mask) Has(k Kind) bool {
	return m&MaskOf(k) != 0
}

// Kinds strips the flags from m.
func (m Mask) Kinds() Mask {
	return m & maskKinds
}

// Singleton reports whether m requires exactly one element.
func (m Mask) Singleton() bool {
	return m&MaskSingleton != 0
}

// Only returns the single kind m allows, if exactly one. A null bit next to
// another kind is ignored, since methods may always return NULL.
func (m Mask) Only() (Kind, bool) {
	kinds := m.Kinds()
	if kinds != MaskNull {
		kinds &^= MaskNull
	}
	for k := Void; k <= Object; k++ {
		if kinds == MaskOf(k) {
			return k, true
		}
	}
	return Void, false
}

func (m Mask) String() string {
	var sb strings.Builder

	switch kinds := m.Kinds(); kinds {
	case MaskNone:
		sb.WriteByte('?')
	case MaskAny:
		sb.WriteByte('*')
	case MaskAnyBase:
		sb.WriteByte('+')
	case MaskNumeric:
		sb.WriteString("numeric")
	default:
		if k, ok := m.Only(); ok && kinds == MaskOf(k) {
			sb.WriteString(k.String())
			break
		}
		for _, f := range []struct {
			m Mask
			c byte
		}{
			{MaskVoid, 'v'},
			{MaskNull, 'N'},
			{MaskLogical, 'l'},
			{MaskInt, 'i'},
			{MaskFloat, 'f'},
			{MaskString, 's'},
			{MaskObject, 'o'},
		} {
			if kinds&f.m != 0 {
				sb.WriteByte(f.c)
			}
		}
	}

	if m.Singleton() {
		sb.WriteByte('$')
	}

	return sb.String()
}
