package jsonvalue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNameAndLen(t *testing.T) {
	tests := []struct {
		value Value
		name  string
		size  int
	}{
		{Null{}, "null", 0},
		{Bool(true), "boolean", 0},
		{Number(1), "number", 0},
		{String("abc"), "string", 0},
		{&Object{Members: []Member{{Key: "a", Value: Null{}}}}, "object", 1},
		{&Array{Elements: []Value{Number(1), Number(2)}}, "array", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, TypeName(tt.value))
			assert.Equal(t, tt.size, Len(tt.value))
		})
	}
}

func TestEqualIsOrderSensitive(t *testing.T) {
	a, err := ParseString(`{"a":1,"b":2}`)
	require.NoError(t, err)
	b, err := ParseString(`{"b":2,"a":1}`)
	require.NoError(t, err)

	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, Clone(a)))
	assert.False(t, Equal(Number(0), String("0")))
}

func TestCloneIsDeep(t *testing.T) {
	v, err := ParseString(`{"a":[1]}`)
	require.NoError(t, err)

	c := Clone(v)
	c.(*Object).Members[0].Value.(*Array).Elements[0] = Number(9)

	got, _ := v.(*Object).Get("a")
	assert.Equal(t, Number(1), got.(*Array).Elements[0])
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{42, "42"},
		{-3.25, "-3.25"},
		{0.1, "0.1"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{math.Inf(1), "Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestFormatScalar(t *testing.T) {
	assert.Equal(t, "null", FormatScalar(Null{}))
	assert.Equal(t, "true", FormatScalar(Bool(true)))
	assert.Equal(t, "2.5", FormatScalar(Number(2.5)))
	assert.Equal(t, `"say "hi""`, FormatScalar(String(`say "hi"`)))
	assert.Equal(t, "Object{0}", FormatScalar(&Object{}))
	assert.Equal(t, "Array[2]", Summary(&Array{Elements: []Value{Null{}, Null{}}}))

	assert.Equal(t, "plain", EditText(String("plain")))
	assert.Equal(t, "7", EditText(Number(7)))
}
