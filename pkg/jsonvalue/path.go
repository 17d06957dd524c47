package jsonvalue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/grovetools/jsonview/errors"
)

// Step is one hop from a container to a child. Member steps address an
// object member by position, so duplicate keys stay distinct; Key is kept
// for display.
type Step struct {
	IsMember bool
	Member   int
	Key      string
	Index    int
}

// MemberStep addresses the pos-th member of an object.
func MemberStep(pos int, key string) Step {
	return Step{IsMember: true, Member: pos, Key: key}
}

// IndexStep addresses an array slot.
func IndexStep(i int) Step {
	return Step{Index: i}
}

// Path is a sequence of steps from the document root. The empty path is the root.
type Path []Step

// Child returns a new path extended by s. The receiver is never aliased.
func (p Path) Child(s Step) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Owner returns the path of the container holding the addressed value.
func (p Path) Owner() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Last returns the final step, if any.
func (p Path) Last() (Step, bool) {
	if len(p) == 0 {
		return Step{}, false
	}
	return p[len(p)-1], true
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// String renders the path JSONPath style: $, $.key, $[3], $["odd key"].
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, s := range p {
		switch {
		case !s.IsMember:
			sb.WriteString("[" + strconv.Itoa(s.Index) + "]")
		case identifierPattern.MatchString(s.Key):
			sb.WriteString("." + s.Key)
		default:
			sb.WriteString("[" + strconv.Quote(s.Key) + "]")
		}
	}
	return sb.String()
}

// Resolve follows path from root.
func Resolve(root Value, path Path) (Value, error) {
	cur := root
	for i, s := range path {
		next, err := step(cur, s)
		if err != nil {
			return nil, errors.InvalidPath(path[:i+1].String(), err.Error())
		}
		cur = next
	}
	return cur, nil
}

// Replace stores v at path, mutating the owning container in place. An empty
// path replaces the whole document and returns v as the new root.
func Replace(root Value, path Path, v Value) (Value, error) {
	last, ok := path.Last()
	if !ok {
		return v, nil
	}

	owner, err := Resolve(root, path.Owner())
	if err != nil {
		return root, err
	}

	switch c := owner.(type) {
	case *Object:
		if !last.IsMember || last.Member < 0 || last.Member >= len(c.Members) {
			return root, errors.InvalidPath(path.String(), "no such member")
		}
		c.Members[last.Member].Value = v
	case *Array:
		if last.IsMember || last.Index < 0 || last.Index >= len(c.Elements) {
			return root, errors.InvalidPath(path.String(), "index out of range")
		}
		c.Elements[last.Index] = v
	default:
		return root, errors.InvalidPath(path.String(), fmt.Sprintf("owner is a %s", TypeName(owner)))
	}
	return root, nil
}

func step(cur Value, s Step) (Value, error) {
	switch c := cur.(type) {
	case *Object:
		if !s.IsMember {
			return nil, fmt.Errorf("index step into an object")
		}
		if s.Member < 0 || s.Member >= len(c.Members) {
			return nil, fmt.Errorf("member %d out of range", s.Member)
		}
		return c.Members[s.Member].Value, nil
	case *Array:
		if s.IsMember {
			return nil, fmt.Errorf("member step into an array")
		}
		if s.Index < 0 || s.Index >= len(c.Elements) {
			return nil, fmt.Errorf("index %d out of range", s.Index)
		}
		return c.Elements[s.Index], nil
	default:
		return nil, fmt.Errorf("cannot step into a %s", TypeName(cur))
	}
}
