// Package linemodel flattens a JSON document into display lines and owns the
// fold, search and edit policies that operate on that flat sequence.
package linemodel

import (
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// NoLine marks an absent line reference.
const NoLine = -1

// Kind distinguishes value lines from closing markers.
type Kind int

const (
	// KindValue is a line that represents a JSON value, including container openers.
	KindValue Kind = iota
	// KindClosing ends the children of a non-empty container.
	KindClosing
)

// OwnerKind describes the container that holds a line's value.
type OwnerKind int

const (
	OwnerNone OwnerKind = iota
	OwnerObject
	OwnerArray
)

// Line is one row of the flattened document.
//
// Lines never point at their parent. Path addresses the value from the
// document root, and Owner says whether the last step lands in an object
// member or an array slot.
type Line struct {
	ID    int
	Level int
	Kind  Kind

	Key    string
	HasKey bool

	Value       jsonvalue.Value
	IsContainer bool
	IsArray     bool
	Expanded    bool

	Owner        OwnerKind
	IndexInOwner int
	Path         jsonvalue.Path

	// OpenLineID is set on closing markers, CloseLineID on non-empty containers.
	OpenLineID  int
	CloseLineID int
}

// IsClosing reports whether l is a closing marker.
func (l Line) IsClosing() bool {
	return l.Kind == KindClosing
}

// IsEmptyContainer reports whether l is a zero-length object or array.
func (l Line) IsEmptyContainer() bool {
	return l.Kind == KindValue && l.IsContainer && l.CloseLineID == NoLine
}

// Foldable reports whether toggling l changes anything.
func (l Line) Foldable() bool {
	return l.Kind == KindValue && l.IsContainer && l.CloseLineID != NoLine
}

// Editable reports whether l holds a scalar that can be edited in place.
func (l Line) Editable() bool {
	return l.Kind == KindValue && !l.IsContainer
}

func valid(lines []Line, id int) bool {
	return id >= 0 && id < len(lines)
}
