package jsonvalue

import (
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

var (
	decimalNumber  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	prefixedNumber = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// Coerce maps edited text to a scalar. The literals true, false and null win
// first, then any trimmed text that reads as a finite number, and everything
// else stays a string. It never fails and never yields a container.
//
// Numbers follow the string grammar of JavaScript's Number(): decimals with
// an optional exponent, and unsigned 0x, 0o or 0b integers. Digit separators
// and hex floats stay strings.
func Coerce(raw string) Value {
	switch raw {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "null":
		return Null{}
	}

	if f, ok := parseNumber(strings.TrimSpace(raw)); ok {
		return Number(f)
	}
	return String(raw)
}

func parseNumber(s string) (float64, bool) {
	var f float64
	switch {
	case s == "" || strings.Contains(s, "_"):
		return 0, false
	case decimalNumber.MatchString(s):
		v, err := cast.ToFloat64E(s)
		if err != nil {
			return 0, false
		}
		f = v
	case prefixedNumber.MatchString(s):
		if v, err := cast.ToUint64E(s); err == nil {
			f = float64(v)
			break
		}
		// wider than 64 bits
		n, ok := new(big.Int).SetString(s[2:], prefixBase(s[1]))
		if !ok {
			return 0, false
		}
		f, _ = new(big.Float).SetInt(n).Float64()
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func prefixBase(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	}
	return 2
}
