package value

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hupe1980/vecscript/internal/conv"
)

// elementString renders element i the way Print does.
func (v *Value) elementString(i int) string {
	switch v.kind {
	case Logical:
		return conv.FormatBool(v.logicalAt(i))
	case Int:
		return conv.FormatInt(v.ints.items[i])
	case Float:
		return conv.FormatFloat(v.floats.items[i])
	case String:
		return strconv.Quote(v.strs.items[i])
	case Object:
		e := v.objs.items[i]
		if e == nil {
			return "NULL"
		}
		if s, ok := e.(fmt.Stringer); ok {
			return s.String()
		}
		return e.Class().Name()
	default:
		return ""
	}
}

// Print writes the value. Plain vectors print their elements separated by
// spaces; matrices print as a table with [i,] and [,j] headers; arrays with
// more axes print one table per coordinate of the higher axes.
func (v *Value) Print(w io.Writer) error {
	var sb strings.Builder
	v.format(&sb)
	_, err := io.WriteString(w, sb.String())
	return err
}

func (v *Value) String() string {
	var sb strings.Builder
	v.format(&sb)
	return sb.String()
}

func (v *Value) format(sb *strings.Builder) {
	n := v.Count()
	switch {
	case v.kind == Void:
		return
	case v.kind == Null:
		sb.WriteString("NULL")
		return
	case n == 0:
		sb.WriteString(v.kind.String())
		sb.WriteString("(0)")
		return
	case v.dims == nil:
		for i := range n {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(v.elementString(i))
		}
		return
	}

	nrow, ncol := v.dims[0], v.dims[1]
	if len(v.dims) == 2 {
		v.formatMatrix(sb, 0, nrow, ncol)
		return
	}

	higher := v.dims[2:]
	tables := n / (nrow * ncol)
	coord := make([]int, len(higher))
	for s := range tables {
		if s > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(", ")
		for _, c := range coord {
			sb.WriteString(", ")
			sb.WriteString(strconv.Itoa(c))
		}
		sb.WriteString("\n\n")
		v.formatMatrix(sb, s*nrow*ncol, nrow, ncol)

		for axis := range coord {
			coord[axis]++
			if coord[axis] < higher[axis] {
				break
			}
			coord[axis] = 0
		}
	}
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func writePadded(sb *strings.Builder, s string, w int) {
	for range w - width(s) {
		sb.WriteByte(' ')
	}
	sb.WriteString(s)
}

// formatMatrix renders the nrow x ncol slice starting at offset.
func (v *Value) formatMatrix(sb *strings.Builder, offset, nrow, ncol int) {
	rowHeaders := make([]string, nrow)
	rowWidth := 0
	for i := range rowHeaders {
		rowHeaders[i] = "[" + strconv.Itoa(i) + ",]"
		rowWidth = max(rowWidth, width(rowHeaders[i]))
	}

	colHeaders := make([]string, ncol)
	colWidth := 0
	for j := range colHeaders {
		colHeaders[j] = "[," + strconv.Itoa(j) + "]"
		colWidth = max(colWidth, width(colHeaders[j]))
	}

	cells := make([]string, nrow*ncol)
	for k := range cells {
		cells[k] = v.elementString(offset + k)
		colWidth = max(colWidth, width(cells[k]))
	}

	writePadded(sb, "", rowWidth)
	for _, h := range colHeaders {
		sb.WriteByte(' ')
		writePadded(sb, h, colWidth)
	}
	for i, h := range rowHeaders {
		sb.WriteByte('\n')
		writePadded(sb, h, rowWidth)
		for j := range ncol {
			sb.WriteByte(' ')
			writePadded(sb, cells[i+j*nrow], colWidth)
		}
	}
}

func (v *Value) elementAny(i int) any {
	switch v.kind {
	case Logical:
		return v.logicalAt(i)
	case Int:
		return v.ints.items[i]
	case Float:
		return v.floats.items[i]
	case String:
		return v.strs.items[i]
	case Object:
		if e := v.objs.items[i]; e != nil {
			return e
		}
	}
	return nil
}

// Structure returns the value as a tree of slices for serializers. Plain
// vectors become a flat []any; arrays nest one []any level per axis with
// axis 0 outermost, so element [i][j] of a matrix is row i, column j. Void
// and NULL return nil. Elements are bool, int64, float64, string or Element.
func (v *Value) Structure() any {
	if v.kind == Void || v.kind == Null {
		return nil
	}
	if v.dims == nil {
		out := make([]any, v.Count())
		for i := range out {
			out[i] = v.elementAny(i)
		}
		return out
	}
	return v.nest(0, 0, strides(v.dims))
}

func (v *Value) nest(axis, offset int, stride []int) []any {
	out := make([]any, v.dims[axis])
	for k := range out {
		at := offset + k*stride[axis]
		if axis == len(v.dims)-1 {
			out[k] = v.elementAny(at)
			continue
		}
		out[k] = v.nest(axis+1, at, stride)
	}
	return out
}
