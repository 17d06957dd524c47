package jsonvalue

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// Marshal encodes v as compact JSON text, keeping member order.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent encodes v with indent spaces per level. Empty containers
// stay on one line as {} and [].
func MarshalIndent(v Value, indent int) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	if indent <= 0 {
		return compact, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", strings.Repeat(" ", indent)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Format re-indents JSON text without reordering members.
func Format(text string, indent int) (string, error) {
	v, err := ParseString(text)
	if err != nil {
		return "", err
	}
	out, err := MarshalIndent(v, indent)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Compact strips all insignificant whitespace from JSON text.
func Compact(text string) (string, error) {
	return Format(text, 0)
}

// MarshalJSON lets an Object take part in encoding/json output.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}

// MarshalJSON lets an Array take part in encoding/json output.
func (a *Array) MarshalJSON() ([]byte, error) {
	return Marshal(a)
}

func writeValue(buf *bytes.Buffer, v Value) error {
	switch t := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		// JSON.stringify writes non-finite numbers as null
		if math.IsInf(float64(t), 0) || math.IsNaN(float64(t)) {
			buf.WriteString("null")
		} else {
			buf.WriteString(FormatNumber(float64(t)))
		}
	case String:
		return writeString(buf, string(t))
	case *Object:
		buf.WriteByte('{')
		for i, m := range t.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case *Array:
		buf.WriteByte('[')
		for i, e := range t.Elements {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}

// writeString quotes s the way JSON.stringify does: no HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
