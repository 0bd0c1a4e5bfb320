package sema

import (
	"fmt"

	"onion/internal/source"
)

// ErrorKind enumerates expression checking failures.
type ErrorKind uint8

const (
	ErrTypeMismatch ErrorKind = iota + 1
	ErrStaticMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrStaticMismatch:
		return "static mismatch"
	default:
		return "unknown"
	}
}

// Error is a user error found while building typed IR.
type Error struct {
	Kind   ErrorKind
	From   string // type of the offending expression
	To     string // expected type
	Member string // qualified member for static mismatches
	Static bool   // whether the member is static
	Span   source.Span
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrTypeMismatch:
		return fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
	case ErrStaticMismatch:
		if e.Static {
			return fmt.Sprintf("static member %s used through an instance", e.Member)
		}
		return fmt.Sprintf("instance member %s used without an instance", e.Member)
	default:
		return "semantic error"
	}
}
