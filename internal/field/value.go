package field

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/guregu/null.v3"
)

var (
	// ErrTypeMismatch is matched by every error caused by reading or writing a
	// value as the wrong kind.
	ErrTypeMismatch = errors.New("field type mismatch")
	// ErrOutOfRange is returned when a Number does not fit in 32 bits.
	ErrOutOfRange = errors.New("number out of 32-bit range")
)

// MismatchError describes an access of a value as the wrong kind.
type MismatchError struct {
	Want Kind
	Got  Kind
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: want %s, got %s", ErrTypeMismatch, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrTypeMismatch) succeed.
func (e *MismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func mismatch(want, got Kind) error {
	return &MismatchError{Want: want, Got: got}
}

// PathValue is the payload of a Path field. Previous is only meaningful when
// Rebound is true.
type PathValue struct {
	Current  null.String
	Previous null.String
	Rebound  bool
}

// Value is a typed, nullable field value. The zero Value is a null String.
type Value struct {
	kind Kind
	str  null.String
	num  null.Int
	flag null.Bool
	// prev and rebound are only used by paths.
	prev    null.String
	rebound bool
}

// String returns a non-null String value.
func String(s string) Value {
	return Value{kind: KindString, str: null.StringFrom(s)}
}

// Number returns a non-null Number value.
func Number(n int32) Value {
	return Value{kind: KindNumber, num: null.IntFrom(int64(n))}
}

// LargeNumber returns a non-null LargeNumber value.
func LargeNumber(n int64) Value {
	return Value{kind: KindLargeNumber, num: null.IntFrom(n)}
}

// Bool returns a non-null Bool value.
func Bool(b bool) Value {
	return Value{kind: KindBool, flag: null.BoolFrom(b)}
}

// Path returns a non-null Path value that has not been rebound.
func Path(p string) Value {
	return Value{kind: KindPath, str: null.StringFrom(p)}
}

// Null returns the null value of the given kind.
func Null(kind Kind) Value {
	return Value{kind: kind}
}

// New builds a value of the given kind from a raw Go value. A nil raw value
// yields Null(kind). Integers are accepted for Number and LargeNumber only,
// strings for String and Path only, and bools for Bool only.
func New(kind Kind, raw any) (Value, error) {
	if !kind.Valid() {
		return Value{}, fmt.Errorf("invalid field kind %d", int(kind))
	}
	if raw == nil {
		return Null(kind), nil
	}

	switch kind {
	case KindString, KindPath:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s field cannot hold %T", ErrTypeMismatch, kind, raw)
		}
		if kind == KindPath {
			return Path(s), nil
		}
		return String(s), nil

	case KindNumber, KindLargeNumber:
		var n int64
		switch v := raw.(type) {
		case int:
			n = int64(v)
		case int32:
			n = int64(v)
		case int64:
			n = v
		default:
			return Value{}, fmt.Errorf("%w: %s field cannot hold %T", ErrTypeMismatch, kind, raw)
		}
		if kind == KindLargeNumber {
			return LargeNumber(n), nil
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return Value{}, fmt.Errorf("%w: %d", ErrOutOfRange, n)
		}
		return Number(int32(n)), nil

	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s field cannot hold %T", ErrTypeMismatch, kind, raw)
		}
		return Bool(b), nil
	}
	return Value{}, fmt.Errorf("invalid field kind %d", int(kind))
}

// Kind returns the stored kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	switch v.kind {
	case KindString, KindPath:
		return !v.str.Valid
	case KindNumber, KindLargeNumber:
		return !v.num.Valid
	case KindBool:
		return !v.flag.Valid
	}
	return true
}

// AsString narrows the value to a String.
func (v Value) AsString() (null.String, error) {
	if v.kind != KindString {
		return null.String{}, mismatch(KindString, v.kind)
	}
	return v.str, nil
}

// AsNumber narrows the value to a 32-bit Number. The null.Int payload is
// guaranteed to fit in an int32.
func (v Value) AsNumber() (null.Int, error) {
	if v.kind != KindNumber {
		return null.Int{}, mismatch(KindNumber, v.kind)
	}
	return v.num, nil
}

// AsLargeNumber narrows the value to a 64-bit LargeNumber.
func (v Value) AsLargeNumber() (null.Int, error) {
	if v.kind != KindLargeNumber {
		return null.Int{}, mismatch(KindLargeNumber, v.kind)
	}
	return v.num, nil
}

// AsBool narrows the value to a Bool.
func (v Value) AsBool() (null.Bool, error) {
	if v.kind != KindBool {
		return null.Bool{}, mismatch(KindBool, v.kind)
	}
	return v.flag, nil
}

// AsPath narrows the value to a Path.
func (v Value) AsPath() (PathValue, error) {
	if v.kind != KindPath {
		return PathValue{}, mismatch(KindPath, v.kind)
	}
	return PathValue{Current: v.str, Previous: v.prev, Rebound: v.rebound}, nil
}

// Rebind returns a copy of a Path value pointing at p. The first rebind keeps
// the current value as the previous one; later rebinds leave it untouched so
// the author-supplied value survives any number of rewrites.
func (v Value) Rebind(p string) (Value, error) {
	if v.kind != KindPath {
		return Value{}, mismatch(KindPath, v.kind)
	}
	out := v
	if !v.rebound {
		out.prev = v.str
		out.rebound = true
	}
	out.str = null.StringFrom(p)
	return out, nil
}

// Rebound reports whether a Path value has been rewritten since it was
// authored.
func (v Value) Rebound() bool {
	return v.kind == KindPath && v.rebound
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.IsNull() != o.IsNull() {
		return false
	}
	if v.kind == KindPath && (v.rebound != o.rebound || v.prev != o.prev) {
		return false
	}
	if v.IsNull() {
		return true
	}
	switch v.kind {
	case KindString, KindPath:
		return v.str.String == o.str.String
	case KindNumber, KindLargeNumber:
		return v.num.Int64 == o.num.Int64
	case KindBool:
		return v.flag.Bool == o.flag.Bool
	}
	return false
}

// String renders the value for logs and diagnostics. Null values render as
// "null".
func (v Value) String() string {
	if v.IsNull() {
		return "null"
	}
	switch v.kind {
	case KindString, KindPath:
		return strconv.Quote(v.str.String)
	case KindNumber, KindLargeNumber:
		return strconv.FormatInt(v.num.Int64, 10)
	case KindBool:
		return strconv.FormatBool(v.flag.Bool)
	}
	return "?"
}
