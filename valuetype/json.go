package valuetype

import (
	"encoding/base64"
	"fmt"

	"github.com/NoahCxrest/quickset/errs"
)

// Native returns v's payload as a plain Go value suitable for JSON
// encoding: nil, int64, float64, string, or a base64 string for Bytes.
func (v Value) Native() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBytes:
		return base64.StdEncoding.EncodeToString(v.b)
	}
	return nil
}

// FromNative coerces a decoded JSON value (nil, float64, int64, or
// string) into a Value of the given column type; other shapes, such as
// bool or json.Number, are rejected. Bytes columns expect a
// base64-encoded string. Returns an error if the JSON shape doesn't
// match the target type (a *errs.TypeMismatch only when a Bytes string
// is not valid base64).
func FromNative(raw interface{}, ct ColumnType) (Value, error) {
	if raw == nil {
		return Null, nil
	}
	switch ct {
	case Int:
		switch n := raw.(type) {
		case float64:
			return NewInt(int64(n)), nil
		case int64:
			return NewInt(n), nil
		}
		return Value{}, typeMismatch(raw, ct)
	case Float:
		switch n := raw.(type) {
		case float64:
			return NewFloat(n), nil
		case int64:
			return NewFloat(float64(n)), nil
		}
		return Value{}, typeMismatch(raw, ct)
	case String:
		s, ok := raw.(string)
		if !ok {
			return Value{}, typeMismatch(raw, ct)
		}
		return NewString(s), nil
	case Bytes:
		s, ok := raw.(string)
		if !ok {
			return Value{}, typeMismatch(raw, ct)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return Value{}, errs.NewTypeMismatch("", "")
		}
		return NewBytes(b), nil
	}
	return Value{}, typeMismatch(raw, ct)
}

func typeMismatch(raw interface{}, ct ColumnType) error {
	return fmt.Errorf("cannot interpret %v as %s", raw, ct)
}
