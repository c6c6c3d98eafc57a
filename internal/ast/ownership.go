package ast

import "gul/internal/source"

// Ownership is the parameter passing mode written before a parameter type.
type Ownership uint8

const (
	// OwnNone means no mode was written; the parameter is an immutable copy.
	OwnNone Ownership = iota
	// OwnBorrow is a read-only borrow; the binding itself may not be replaced.
	OwnBorrow
	// OwnRef is a mutable reference.
	OwnRef
	// OwnMove transfers ownership; the caller's binding is dead after the call.
	OwnMove
	// OwnKept passes a retained copy; the caller keeps its value.
	OwnKept
)

func (o Ownership) String() string {
	switch o {
	case OwnBorrow:
		return "borrow"
	case OwnRef:
		return "ref"
	case OwnMove:
		return "move"
	case OwnKept:
		return "kept"
	}
	return ""
}

// Param is a function, method or lambda parameter.
type Param struct {
	Name source.StringID
	Span source.Span
	Mode Ownership
	Type TypeExprID
	// IsSelf marks the receiver of a method ("self", "ref self", "own self").
	IsSelf bool
}
