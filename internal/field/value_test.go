package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name      string
		kind      Kind
		raw       any
		expectErr error
		expected  Value
	}{
		{name: "string", kind: KindString, raw: "hello", expected: String("hello")},
		{name: "number from int", kind: KindNumber, raw: 42, expected: Number(42)},
		{name: "large number", kind: KindLargeNumber, raw: int64(math.MaxInt64), expected: LargeNumber(math.MaxInt64)},
		{name: "bool", kind: KindBool, raw: true, expected: Bool(true)},
		{name: "path", kind: KindPath, raw: `C:\src\a.txt`, expected: Path(`C:\src\a.txt`)},
		{name: "nil is null", kind: KindNumber, raw: nil, expected: Null(KindNumber)},
		{name: "error - number does not fit", kind: KindNumber, raw: int64(math.MaxInt32) + 1, expectErr: ErrOutOfRange},
		{name: "error - string into number", kind: KindNumber, raw: "5", expectErr: ErrTypeMismatch},
		{name: "error - bool into string", kind: KindString, raw: false, expectErr: ErrTypeMismatch},
		{name: "error - int into bool", kind: KindBool, raw: 1, expectErr: ErrTypeMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := New(tc.kind, tc.raw)
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(v), "got %s, want %s", v, tc.expected)
			assert.Equal(t, tc.kind, v.Kind())
		})
	}
}

func TestAccessors_TypeMismatch(t *testing.T) {
	v := Number(7)

	n, err := v.AsNumber()
	require.NoError(t, err)
	assert.Equal(t, int64(7), n.Int64)
	assert.True(t, n.Valid)

	_, err = v.AsString()
	require.ErrorIs(t, err, ErrTypeMismatch)

	var mErr *MismatchError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, KindString, mErr.Want)
	assert.Equal(t, KindNumber, mErr.Got)

	_, err = v.AsLargeNumber()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = v.AsBool()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = v.AsPath()
	assert.ErrorIs(t, err, ErrTypeMismatch)

	// A path is not a string, even though both carry text.
	_, err = Path("a").AsString()
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNullSemantics(t *testing.T) {
	v := Null(KindString)
	assert.True(t, v.IsNull())

	s, err := v.AsString()
	require.NoError(t, err)
	assert.False(t, s.Valid)
	assert.Equal(t, "null", v.String())

	var zero Value
	assert.True(t, zero.IsNull())
	assert.Equal(t, KindString, zero.Kind())

	assert.False(t, String("").IsNull())
	assert.False(t, Null(KindString).Equal(String("")))
}

func TestPathRebind(t *testing.T) {
	v := Path("SourceDir\\app.exe")
	assert.False(t, v.Rebound())

	v2, err := v.Rebind("C:\\out\\app.exe")
	require.NoError(t, err)
	assert.True(t, v2.Rebound())

	pv, err := v2.AsPath()
	require.NoError(t, err)
	assert.Equal(t, "C:\\out\\app.exe", pv.Current.String)
	assert.Equal(t, "SourceDir\\app.exe", pv.Previous.String)
	assert.True(t, pv.Rebound)

	// A second rewrite keeps the author-supplied value.
	v3, err := v2.Rebind("D:\\final\\app.exe")
	require.NoError(t, err)
	pv, err = v3.AsPath()
	require.NoError(t, err)
	assert.Equal(t, "D:\\final\\app.exe", pv.Current.String)
	assert.Equal(t, "SourceDir\\app.exe", pv.Previous.String)

	// The original value is untouched.
	pv, err = v.AsPath()
	require.NoError(t, err)
	assert.False(t, pv.Rebound)

	_, err = String("x").Rebind("y")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	assert.False(t, v.Equal(v2))
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindString, KindNumber, KindLargeNumber, KindBool, KindPath} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	k, err := ParseKind("Boolean")
	require.NoError(t, err)
	assert.Equal(t, KindBool, k)

	_, err = ParseKind("float")
	assert.Error(t, err)
}

func TestFromCty(t *testing.T) {
	testCases := []struct {
		name      string
		kind      Kind
		val       cty.Value
		expectErr error
		expected  Value
	}{
		{name: "string", kind: KindString, val: cty.StringVal("x"), expected: String("x")},
		{name: "path", kind: KindPath, val: cty.StringVal("a/b"), expected: Path("a/b")},
		{name: "number", kind: KindNumber, val: cty.NumberIntVal(-3), expected: Number(-3)},
		{name: "large number", kind: KindLargeNumber, val: cty.NumberIntVal(1 << 40), expected: LargeNumber(1 << 40)},
		{name: "bool", kind: KindBool, val: cty.True, expected: Bool(true)},
		{name: "null", kind: KindBool, val: cty.NullVal(cty.Bool), expected: Null(KindBool)},
		{name: "error - fractional", kind: KindNumber, val: cty.NumberFloatVal(1.5), expectErr: ErrTypeMismatch},
		{name: "error - too large for number", kind: KindNumber, val: cty.NumberIntVal(1 << 40), expectErr: ErrOutOfRange},
		{name: "error - no coercion", kind: KindNumber, val: cty.StringVal("5"), expectErr: ErrTypeMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := FromCty(tc.kind, tc.val)
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(v), "got %s, want %s", v, tc.expected)
			assert.True(t, v.Cty().RawEquals(tc.val), "round trip through cty changed the value")
		})
	}
}
