package resolve

import (
	"fmt"
	"strings"

	"onion/internal/source"
)

// ErrorKind enumerates member resolution failures.
type ErrorKind uint8

const (
	ErrUnboxableType ErrorKind = iota + 1
	ErrNoMatchingWrapperConstructor
	ErrNoUnboxingMethod
	ErrCyclicHierarchy
	ErrAmbiguousOverload
	ErrNoApplicableMember
	ErrNoSuchField
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnboxableType:
		return "unboxable type"
	case ErrNoMatchingWrapperConstructor:
		return "no matching wrapper constructor"
	case ErrNoUnboxingMethod:
		return "no unboxing method"
	case ErrCyclicHierarchy:
		return "cyclic hierarchy"
	case ErrAmbiguousOverload:
		return "ambiguous overload"
	case ErrNoApplicableMember:
		return "no applicable member"
	case ErrNoSuchField:
		return "no such field"
	default:
		return "unknown"
	}
}

// Error reports a resolution failure. Class is the qualified name searched,
// Member the method or field name ("<init>" for constructors) and Args the
// argument type names of the call.
type Error struct {
	Kind       ErrorKind
	Class      string
	Member     string
	Type       string   // offending type for boxing faults
	Args       []string // argument type names
	Candidates []string // sorted signatures for ambiguity
	Chain      []string // traversal stack for cyclic hierarchies
	Span       source.Span
}

func (e *Error) Error() string {
	call := e.Member + "(" + strings.Join(e.Args, ", ") + ")"
	switch e.Kind {
	case ErrUnboxableType:
		return fmt.Sprintf("type %s cannot be boxed or unboxed", e.Type)
	case ErrNoMatchingWrapperConstructor:
		return fmt.Sprintf("wrapper %s has no unique constructor taking %s", e.Class, e.Type)
	case ErrNoUnboxingMethod:
		return fmt.Sprintf("wrapper %s has no %s() returning %s", e.Class, e.Member, e.Type)
	case ErrCyclicHierarchy:
		return fmt.Sprintf("cyclic interface hierarchy: %s", strings.Join(e.Chain, " -> "))
	case ErrAmbiguousOverload:
		return fmt.Sprintf("call %s.%s is ambiguous between %s", e.Class, call, strings.Join(e.Candidates, ", "))
	case ErrNoApplicableMember:
		return fmt.Sprintf("no member of %s applicable to %s", e.Class, call)
	case ErrNoSuchField:
		return fmt.Sprintf("class %s has no field %s", e.Class, e.Member)
	default:
		return "resolution failed"
	}
}

// Internal reports whether the error is a compiler fault rather than a
// problem in the program being compiled. Internal faults abort the run.
func (e *Error) Internal() bool {
	switch e.Kind {
	case ErrUnboxableType, ErrNoMatchingWrapperConstructor, ErrNoUnboxingMethod:
		return true
	}
	return false
}
