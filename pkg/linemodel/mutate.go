package linemodel

import (
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// Commit coerces raw and writes it into the document at line id. Object
// members and array slots are updated in place; the root line replaces the
// whole document. The line's Value is updated too, so lines stay consistent
// without a rebuild. Existing search matches must be recomputed by the caller.
func Commit(root jsonvalue.Value, lines []Line, id int, raw string) (jsonvalue.Value, jsonvalue.Value, error) {
	if !valid(lines, id) {
		return root, nil, errors.InvalidEditTarget(id, "unknown line")
	}
	l := &lines[id]
	switch {
	case l.Kind == KindClosing:
		return root, nil, errors.InvalidEditTarget(id, "closing marker")
	case l.IsContainer:
		return root, nil, errors.InvalidEditTarget(id, "containers are not editable")
	}

	coerced := jsonvalue.Coerce(raw)
	newRoot, err := jsonvalue.Replace(root, l.Path, coerced)
	if err != nil {
		return root, nil, err
	}
	l.Value = coerced
	return newRoot, coerced, nil
}
