// Package jsonvalue holds the in-memory JSON document: a closed sum type
// over the six JSON variants, with ordered, duplicate-preserving objects.
package jsonvalue

// Kind identifies one of the six JSON variants.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

// Value is implemented only by Null, Bool, Number, String, *Object and *Array.
type Value interface {
	kind() Kind
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number. All numbers are held as float64.
type Number float64

// String is a JSON string.
type String string

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object. Members keep source order and duplicate keys.
type Object struct {
	Members []Member
}

// Array is a JSON array.
type Array struct {
	Elements []Value
}

func (Null) kind() Kind    { return KindNull }
func (Bool) kind() Kind    { return KindBool }
func (Number) kind() Kind  { return KindNumber }
func (String) kind() Kind  { return KindString }
func (*Object) kind() Kind { return KindObject }
func (*Array) kind() Kind  { return KindArray }

// KindOf returns the variant of v. A nil Value reports KindNull.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.kind()
}

// TypeName returns the lowercase JSON type name of v.
func TypeName(v Value) string {
	switch KindOf(v) {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "null"
	}
}

// IsContainer reports whether v is an Object or an Array.
func IsContainer(v Value) bool {
	k := KindOf(v)
	return k == KindObject || k == KindArray
}

// Len returns the member or element count of a container, 0 otherwise.
func Len(v Value) int {
	switch t := v.(type) {
	case *Object:
		return len(t.Members)
	case *Array:
		return len(t.Elements)
	default:
		return 0
	}
}

// Get returns the first member named key.
func (o *Object) Get(key string) (Value, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Equal reports structural equality. Member order and duplicates are significant.
func Equal(a, b Value) bool {
	if KindOf(a) != KindOf(b) {
		return false
	}
	switch x := a.(type) {
	case nil, Null:
		return true
	case Bool:
		return x == b.(Bool)
	case Number:
		return x == b.(Number)
	case String:
		return x == b.(String)
	case *Object:
		y := b.(*Object)
		if len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if x.Members[i].Key != y.Members[i].Key || !Equal(x.Members[i].Value, y.Members[i].Value) {
				return false
			}
		}
		return true
	case *Array:
		y := b.(*Array)
		if len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Object:
		out := &Object{Members: make([]Member, len(t.Members))}
		for i, m := range t.Members {
			out.Members[i] = Member{Key: m.Key, Value: Clone(m.Value)}
		}
		return out
	case *Array:
		out := &Array{Elements: make([]Value, len(t.Elements))}
		for i, e := range t.Elements {
			out.Elements[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}
