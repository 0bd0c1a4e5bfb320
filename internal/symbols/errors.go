package symbols

import (
	"fmt"
	"strings"

	"onion/internal/source"
)

// LoadErrorKind enumerates the ways a class load can fail.
type LoadErrorKind uint8

const (
	LoadErrClassNotFound LoadErrorKind = iota + 1
	LoadErrCyclicLoad
	LoadErrInvalidDecl
	LoadErrProvider // the loader itself failed (unreadable metadata)
)

func (k LoadErrorKind) String() string {
	switch k {
	case LoadErrClassNotFound:
		return "class not found"
	case LoadErrCyclicLoad:
		return "cyclic load"
	case LoadErrInvalidDecl:
		return "invalid declaration"
	case LoadErrProvider:
		return "classpath failure"
	default:
		return "unknown"
	}
}

// LoadError describes a failed class load. Chain lists the names being
// loaded when the failure happened, outermost first; for cyclic loads it
// ends with the re-entered name.
type LoadError struct {
	Kind   LoadErrorKind
	Name   string
	Chain  []string
	Reason string
	Span   source.Span // declaration that referenced the failing name
	Err    error
}

func (e *LoadError) Error() string {
	var sb strings.Builder
	switch e.Kind {
	case LoadErrClassNotFound:
		fmt.Fprintf(&sb, "class %s not found", e.Name)
		if len(e.Chain) > 0 {
			fmt.Fprintf(&sb, " (required by %s)", strings.Join(e.Chain, " -> "))
		}
	case LoadErrCyclicLoad:
		fmt.Fprintf(&sb, "cyclic superclass chain: %s", strings.Join(e.Chain, " -> "))
	case LoadErrInvalidDecl:
		fmt.Fprintf(&sb, "invalid declaration of %s: %s", e.Name, e.Reason)
	case LoadErrProvider:
		fmt.Fprintf(&sb, "cannot load %s", e.Name)
	default:
		fmt.Fprintf(&sb, "load of %s failed", e.Name)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *LoadError) Unwrap() error { return e.Err }
