// Package valuetype defines the tagged scalar Value carried in table
// rows and the ColumnType each column declares.
package valuetype

import "math"

// Kind tags the variant carried by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBytes
)

// ColumnType is the type a column declares; stored values must be Null
// or match it exactly.
type ColumnType uint8

const (
	Int ColumnType = iota
	Float
	String
	Bytes
)

// String renders a ColumnType for logs and error messages.
func (t ColumnType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Value is a tagged scalar: Null, Int, Float, String, or Bytes.
// Only the field matching Kind is meaningful.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
}

// Null is the shared representation of an absent value.
var Null = Value{kind: KindNull}

// NewInt builds an Int value.
func NewInt(v int64) Value { return Value{kind: KindInt, i: v} }

// NewFloat builds a Float value.
func NewFloat(v float64) Value { return Value{kind: KindFloat, f: v} }

// NewString builds a String value.
func NewString(v string) Value { return Value{kind: KindString, s: v} }

// NewBytes builds a Bytes value. The slice is retained, not copied.
func NewBytes(v []byte) Value { return Value{kind: KindBytes, b: v} }

// Kind reports the variant carried by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the Int payload and whether v is actually an Int.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Float returns the Float payload and whether v is actually a Float.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Str returns the String payload and whether v is actually a String.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// BytesVal returns the Bytes payload and whether v is actually Bytes.
func (v Value) BytesVal() ([]byte, bool) { return v.b, v.kind == KindBytes }

// Equal reports structural equality. Null equals only Null. NaN floats
// never equal anything, including another NaN, matching the bit-pattern
// semantics of the Float index (§4.3).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == other.i
	case KindFloat:
		if math.IsNaN(v.f) || math.IsNaN(other.f) {
			return false
		}
		return math.Float64bits(v.f) == math.Float64bits(other.f)
	case KindString:
		return v.s == other.s
	case KindBytes:
		if len(v.b) != len(other.b) {
			return false
		}
		for i := range v.b {
			if v.b[i] != other.b[i] {
				return false
			}
		}
		return true
	}
	return false
}

// TypeMatches reports whether v is Null or its variant matches ct.
func TypeMatches(v Value, ct ColumnType) bool {
	if v.kind == KindNull {
		return true
	}
	switch ct {
	case Int:
		return v.kind == KindInt
	case Float:
		return v.kind == KindFloat
	case String:
		return v.kind == KindString
	case Bytes:
		return v.kind == KindBytes
	}
	return false
}

// NullSentinel is the two-character null marker used by line-oriented
// source protocols (the backslash-N convention).
const NullSentinel = `\N`

// FromExternal coerces a parsed external scalar (already split into a
// field string by the source binding) into a Value of the given column
// type. An empty string or the literal \N sentinel yields Null. A
// string that fails to parse as the target numeric type also yields
// Null rather than an error — per-row parse failures are tolerated by
// the sync manager, not fatal to the whole sync.
func FromExternal(field string, ct ColumnType) Value {
	if field == "" || field == NullSentinel {
		return Null
	}
	switch ct {
	case Int:
		n, ok := parseInt(field)
		if !ok {
			return Null
		}
		return NewInt(n)
	case Float:
		f, ok := parseFloat(field)
		if !ok {
			return Null
		}
		return NewFloat(f)
	case String:
		return NewString(unescape(field))
	case Bytes:
		return NewBytes([]byte(field))
	}
	return Null
}
