package jsonvalue

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders n the way a JavaScript engine prints a number:
// plain decimal for 1e-6 <= |n| < 1e21, exponent form otherwise.
func FormatNumber(n float64) string {
	switch {
	case n == 0:
		return "0"
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}

	abs := math.Abs(n)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	s := strconv.FormatFloat(n, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// FormatScalar is the text a scalar is displayed and searched as. Strings are
// wrapped in literal double quotes without escaping. Containers return their
// Summary.
func FormatScalar(v Value) string {
	switch t := v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return strconv.FormatBool(bool(t))
	case Number:
		return FormatNumber(float64(t))
	case String:
		return `"` + string(t) + `"`
	default:
		return Summary(v)
	}
}

// EditText is the initial text offered when editing a scalar: strings
// without quotes, other scalars as displayed.
func EditText(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	return FormatScalar(v)
}

// Summary is the collapsed rendering of a container: Object{n} or Array[n].
func Summary(v Value) string {
	switch t := v.(type) {
	case *Object:
		return fmt.Sprintf("Object{%d}", len(t.Members))
	case *Array:
		return fmt.Sprintf("Array[%d]", len(t.Elements))
	default:
		return FormatScalar(v)
	}
}
