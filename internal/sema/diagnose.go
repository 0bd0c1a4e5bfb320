package sema

import (
	"errors"

	"onion/internal/diag"
	"onion/internal/resolve"
	"onion/internal/symbols"
)

// Diagnose converts a user error from loading, resolution or checking into
// a diagnostic. ok is false for internal faults and foreign errors, which
// the caller must propagate instead.
func Diagnose(err error) (d diag.Diagnostic, ok bool) {
	var le *symbols.LoadError
	if errors.As(err, &le) {
		code := diag.SemaClassNotFound
		switch le.Kind {
		case symbols.LoadErrCyclicLoad:
			code = diag.SemaCyclicLoad
		case symbols.LoadErrInvalidDecl:
			code = diag.SemaInvalidDecl
		case symbols.LoadErrProvider:
			code = diag.IOLoadFileError
		}
		return diag.NewError(code, le.Span, le.Error()), true
	}

	var re *resolve.Error
	if errors.As(err, &re) {
		if re.Internal() {
			return diag.Diagnostic{}, false
		}
		var code diag.Code
		switch re.Kind {
		case resolve.ErrCyclicHierarchy:
			code = diag.SemaCyclicHierarchy
		case resolve.ErrAmbiguousOverload:
			code = diag.SemaAmbiguousOverload
		case resolve.ErrNoApplicableMember:
			code = diag.SemaNoApplicableMember
		case resolve.ErrNoSuchField:
			code = diag.SemaNoSuchField
		default:
			return diag.Diagnostic{}, false
		}
		d := diag.NewError(code, re.Span, re.Error())
		for _, cand := range re.Candidates {
			d = d.WithNote(re.Span, "candidate: "+cand)
		}
		return d, true
	}

	var se *Error
	if errors.As(err, &se) {
		code := diag.SemaTypeMismatch
		if se.Kind == ErrStaticMismatch {
			code = diag.SemaStaticMismatch
		}
		return diag.NewError(code, se.Span, se.Error()), true
	}
	return diag.Diagnostic{}, false
}
