package field

import (
	"fmt"
	"math"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// CtyType returns the cty type a value of this kind is decoded from.
func (k Kind) CtyType() cty.Type {
	switch k {
	case KindNumber, KindLargeNumber:
		return cty.Number
	case KindBool:
		return cty.Bool
	default:
		return cty.String
	}
}

// FromCty converts a cty value into a field value of the given kind. The cty
// type must already match the kind: the string "5" is not a Number. Fractional
// and out-of-range numbers are rejected.
func FromCty(kind Kind, v cty.Value) (Value, error) {
	if !kind.Valid() {
		return Value{}, fmt.Errorf("invalid field kind %d", int(kind))
	}
	if v.IsNull() {
		return Null(kind), nil
	}
	if !v.IsWhollyKnown() {
		return Value{}, fmt.Errorf("value for %s field is not known", kind)
	}

	if !v.Type().Equals(kind.CtyType()) {
		return Value{}, fmt.Errorf("%w: cannot use %s as %s", ErrTypeMismatch, v.Type().FriendlyName(), kind)
	}
	conv := v

	switch kind {
	case KindString, KindPath:
		var s string
		if err := gocty.FromCtyValue(conv, &s); err != nil {
			return Value{}, err
		}
		if kind == KindPath {
			return Path(s), nil
		}
		return String(s), nil

	case KindNumber, KindLargeNumber:
		bf := conv.AsBigFloat()
		if !bf.IsInt() {
			return Value{}, fmt.Errorf("%w: %s field requires a whole number, got %s", ErrTypeMismatch, kind, bf.Text('f', -1))
		}
		n, acc := bf.Int64()
		if acc != big.Exact {
			return Value{}, fmt.Errorf("%w: %s", ErrOutOfRange, bf.Text('f', -1))
		}
		if kind == KindLargeNumber {
			return LargeNumber(n), nil
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return Value{}, fmt.Errorf("%w: %d", ErrOutOfRange, n)
		}
		return Number(int32(n)), nil

	case KindBool:
		return Bool(conv.True()), nil
	}
	return Value{}, fmt.Errorf("invalid field kind %d", int(kind))
}

// Cty converts the value back into cty, mainly for rendering in reports.
func (v Value) Cty() cty.Value {
	if v.IsNull() {
		return cty.NullVal(v.kind.CtyType())
	}
	switch v.kind {
	case KindNumber, KindLargeNumber:
		return cty.NumberIntVal(v.num.Int64)
	case KindBool:
		return cty.BoolVal(v.flag.Bool)
	default:
		return cty.StringVal(v.str.String)
	}
}
