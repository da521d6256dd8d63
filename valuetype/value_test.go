package valuetype

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	assert.True(t, NewInt(5).Equal(NewInt(5)))
	assert.False(t, NewInt(5).Equal(NewInt(6)))
	assert.True(t, Null.Equal(Null))
	assert.False(t, Null.Equal(NewInt(0)))
}

func TestEqualNaNNeverMatches(t *testing.T) {
	nan := NewFloat(math.NaN())
	assert.False(t, nan.Equal(nan))
	assert.False(t, nan.Equal(NewFloat(math.NaN())))
}

func TestEqualFloatBitPattern(t *testing.T) {
	assert.True(t, NewFloat(0.0).Equal(NewFloat(0.0)))
	assert.False(t, NewFloat(0.0).Equal(NewFloat(math.Copysign(0, -1))))
}

func TestTypeMatches(t *testing.T) {
	assert.True(t, TypeMatches(Null, Int))
	assert.True(t, TypeMatches(Null, String))
	assert.True(t, TypeMatches(NewInt(1), Int))
	assert.False(t, TypeMatches(NewInt(1), Float))
}

func TestFromExternal(t *testing.T) {
	assert.Equal(t, Null, FromExternal("", Int))
	assert.Equal(t, Null, FromExternal(NullSentinel, Int))
	assert.Equal(t, NewInt(42), FromExternal("42", Int))
	assert.Equal(t, Null, FromExternal("not-a-number", Int))
	assert.Equal(t, NewFloat(3.5), FromExternal("3.5", Float))
	assert.Equal(t, NewString("hi"), FromExternal("hi", String))
}

func TestParseTypeNameAliases(t *testing.T) {
	cases := map[string]ColumnType{
		"int": Int, "integer": Int, "i64": Int,
		"float": Float, "double": Float, "f64": Float,
		"string": String, "text": String, "varchar": String,
		"bytes": Bytes, "blob": Bytes, "binary": Bytes,
	}
	for name, want := range cases {
		got, err := ParseTypeName(name)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseTypeName("nonsense")
	assert.Error(t, err)
}
