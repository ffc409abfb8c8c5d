// value.go: the runtime value model.
//
// Every MUA datum is a Value: a closed tagged variant over Number, Word,
// List, Boolean and Absent. The tag selects which Go type sits in Data:
//
//	VTAbsent → nil
//	VTNum    → float64
//	VTWord   → string
//	VTList   → []Value
//	VTBool   → bool
//
// Rendering rules (used by print, save and function-body re-tokenisation):
//   - numbers always carry a fractional part ("6" renders as "6.0"),
//   - words render verbatim,
//   - lists render as "[a b [c d]]" with single spaces and no trailing blank,
//   - Absent renders as the empty string.
package mua

import (
	"math"
	"strconv"
	"strings"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTAbsent ValueTag = iota // no value (unbound name, end of input, side-effect builtins)
	VTNum                    // float64
	VTWord                   // string
	VTList                   // []Value
	VTBool                   // bool
)

func (t ValueTag) String() string {
	switch t {
	case VTAbsent:
		return "absent"
	case VTNum:
		return "number"
	case VTWord:
		return "word"
	case VTList:
		return "list"
	case VTBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is the universal runtime carrier.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Absent is the singleton "no value".
var Absent = Value{Tag: VTAbsent}

func Num(f float64) Value   { return Value{Tag: VTNum, Data: f} }
func Word(s string) Value   { return Value{Tag: VTWord, Data: s} }
func Bool(b bool) Value     { return Value{Tag: VTBool, Data: b} }
func List(xs []Value) Value { return Value{Tag: VTList, Data: xs} }

// Words builds a List of Words.
func Words(ws ...string) Value {
	xs := make([]Value, len(ws))
	for i, w := range ws {
		xs[i] = Word(w)
	}
	return List(xs)
}

func (v Value) IsAbsent() bool { return v.Tag == VTAbsent }

// Elems returns the elements of a List (nil for other kinds).
func (v Value) Elems() []Value {
	if v.Tag != VTList {
		return nil
	}
	return v.Data.([]Value)
}

// Text returns the payload of a Word ("" for other kinds).
func (v Value) Text() string {
	if v.Tag != VTWord {
		return ""
	}
	return v.Data.(string)
}

// String renders the value in its canonical text form.
func (v Value) String() string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

// PrintForm is what the print builtin writes: lists lose their outer brackets.
func (v Value) PrintForm() string {
	if v.Tag == VTList {
		return joinElems(v.Data.([]Value))
	}
	return v.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.Tag {
	case VTAbsent:
	case VTNum:
		b.WriteString(FormatNumber(v.Data.(float64)))
	case VTWord:
		b.WriteString(v.Data.(string))
	case VTBool:
		if v.Data.(bool) {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case VTList:
		b.WriteByte('[')
		for i, e := range v.Data.([]Value) {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, e)
		}
		b.WriteByte(']')
	}
}

func joinElems(xs []Value) string {
	var b strings.Builder
	for i, e := range xs {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeValue(&b, e)
	}
	return b.String()
}

// FormatNumber renders f as a plain decimal that always has a fractional
// part, so the text re-lexes as a FLOAT literal.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// ToNumber applies numeric coercion: numbers as-is, words parsed as
// decimals, Absent as zero. Booleans and lists do not coerce.
func (v Value) ToNumber() (float64, bool) {
	switch v.Tag {
	case VTNum:
		return v.Data.(float64), true
	case VTWord:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Data.(string)), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case VTAbsent:
		return 0, true
	default:
		return 0, false
	}
}

// isFunctionShape reports whether v is a List of exactly two Lists, the
// representation of a user-defined function.
func isFunctionShape(v Value) bool {
	if v.Tag != VTList {
		return false
	}
	xs := v.Data.([]Value)
	return len(xs) == 2 && xs[0].Tag == VTList && xs[1].Tag == VTList
}

// roundHalfUp rounds to the nearest integer with ties going up (2.5 → 3,
// -2.5 → -2).
func roundHalfUp(f float64) float64 { return math.Floor(f + 0.5) }
