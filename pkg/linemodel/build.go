package linemodel

import (
	"fmt"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// Build flattens v depth-first in pre-order. Every container starts
// expanded. Non-empty containers are followed, after their children, by one
// closing marker at the same level; empty containers are a single line.
func Build(v jsonvalue.Value) []Line {
	if v == nil {
		return nil
	}
	b := &builder{}
	b.emit(v, 0, "", false, OwnerNone, NoLine, nil)
	return b.lines
}

type builder struct {
	lines []Line
}

func (b *builder) emit(v jsonvalue.Value, level int, key string, hasKey bool, owner OwnerKind, index int, path jsonvalue.Path) {
	id := len(b.lines)
	b.lines = append(b.lines, Line{
		ID:           id,
		Level:        level,
		Kind:         KindValue,
		Key:          key,
		HasKey:       hasKey,
		Value:        v,
		IsContainer:  jsonvalue.IsContainer(v),
		IsArray:      jsonvalue.KindOf(v) == jsonvalue.KindArray,
		Expanded:     true,
		Owner:        owner,
		IndexInOwner: index,
		Path:         path,
		OpenLineID:   NoLine,
		CloseLineID:  NoLine,
	})

	switch t := v.(type) {
	case jsonvalue.Null, jsonvalue.Bool, jsonvalue.Number, jsonvalue.String:
		return
	case *jsonvalue.Object:
		if len(t.Members) == 0 {
			return
		}
		for i, m := range t.Members {
			b.emit(m.Value, level+1, m.Key, true, OwnerObject, NoLine, path.Child(jsonvalue.MemberStep(i, m.Key)))
		}
	case *jsonvalue.Array:
		if len(t.Elements) == 0 {
			return
		}
		for i, e := range t.Elements {
			b.emit(e, level+1, "", false, OwnerArray, i, path.Child(jsonvalue.IndexStep(i)))
		}
	}

	closeID := len(b.lines)
	b.lines = append(b.lines, Line{
		ID:           closeID,
		Level:        level,
		Kind:         KindClosing,
		IsArray:      b.lines[id].IsArray,
		IndexInOwner: NoLine,
		OpenLineID:   id,
		CloseLineID:  NoLine,
	})
	b.lines[id].CloseLineID = closeID
}

// Reconstruct replays a line sequence into a fresh document, honouring
// closing markers. It fails if the sequence breaks the nesting contract.
func Reconstruct(lines []Line) (jsonvalue.Value, error) {
	type frame struct {
		openID    int
		container jsonvalue.Value
	}

	var root jsonvalue.Value
	var stack []frame

	for i, l := range lines {
		if l.ID != i {
			return nil, malformed(i, fmt.Sprintf("id %d out of sequence", l.ID))
		}

		if l.Kind == KindClosing {
			if len(stack) == 0 {
				return nil, malformed(i, "closing marker without an open container")
			}
			top := stack[len(stack)-1]
			if top.openID != l.OpenLineID || lines[top.openID].Level != l.Level {
				return nil, malformed(i, fmt.Sprintf("closing marker does not match line %d", top.openID))
			}
			stack = stack[:len(stack)-1]
			continue
		}

		var v jsonvalue.Value
		switch l.Value.(type) {
		case *jsonvalue.Object:
			v = &jsonvalue.Object{Members: []jsonvalue.Member{}}
		case *jsonvalue.Array:
			v = &jsonvalue.Array{Elements: []jsonvalue.Value{}}
		default:
			v = l.Value
		}

		if len(stack) == 0 {
			if root != nil {
				return nil, malformed(i, "more than one root")
			}
			root = v
		} else {
			switch parent := stack[len(stack)-1].container.(type) {
			case *jsonvalue.Object:
				if !l.HasKey {
					return nil, malformed(i, "object member without a key")
				}
				parent.Members = append(parent.Members, jsonvalue.Member{Key: l.Key, Value: v})
			case *jsonvalue.Array:
				parent.Elements = append(parent.Elements, v)
			}
		}

		if l.CloseLineID != NoLine {
			stack = append(stack, frame{openID: l.ID, container: v})
		}
	}

	if len(stack) > 0 {
		return nil, malformed(len(lines), fmt.Sprintf("line %d never closed", stack[len(stack)-1].openID))
	}
	return root, nil
}

func malformed(at int, reason string) error {
	return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("malformed line sequence at %d: %s", at, reason)).
		WithDetail("line", at)
}
