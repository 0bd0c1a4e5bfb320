package symbols

import "onion/internal/types"

// ClassID is shared with the type layer: class types carry it as payload.
type ClassID = types.ClassID

// NoClassID marks the absence of a class reference.
const NoClassID = types.NoClassID

// MethodID identifies a method symbol inside the table arena.
type MethodID uint32

const NoMethodID MethodID = 0

// IsValid reports whether the method ID refers to an allocated symbol.
func (id MethodID) IsValid() bool { return id != NoMethodID }

// CtorID identifies a constructor symbol inside the table arena.
type CtorID uint32

const NoCtorID CtorID = 0

func (id CtorID) IsValid() bool { return id != NoCtorID }

// FieldID identifies a field symbol inside the table arena.
type FieldID uint32

const NoFieldID FieldID = 0

func (id FieldID) IsValid() bool { return id != NoFieldID }

// State is the resolution state of a class entry.
type State uint8

const (
	StateUnresolved State = iota
	StateInProgress
	StateResolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateInProgress:
		return "in-progress"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
