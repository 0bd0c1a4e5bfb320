package sema

import (
	"fmt"
	"strings"

	"onion/internal/diag"
	"onion/internal/symbols"
)

// CheckClass validates a loaded class against its hierarchy. User errors
// come back as diagnostics; the error result is reserved for internal
// faults.
func (c *Checker) CheckClass(cls *symbols.ClassSymbol) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	collect := func(err error) error {
		if err == nil {
			return nil
		}
		d, ok := Diagnose(err)
		if !ok {
			return err
		}
		out = append(out, d)
		return nil
	}

	if super := c.table.Class(cls.Super); super != nil && super.IsFinal() {
		out = append(out, diag.NewError(diag.SemaFinalSuperclass, cls.Span,
			fmt.Sprintf("class %s cannot extend final class %s", cls.Name, super.Name)).
			WithNote(super.Span, super.Name+" is declared final"))
	}
	if err := collect(c.checkDuplicates(cls, &out)); err != nil {
		return nil, err
	}
	if !cls.IsAbstract() {
		if err := collect(c.checkImplementations(cls, &out)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Checker) checkDuplicates(cls *symbols.ClassSymbol, out *[]diag.Diagnostic) error {
	methods, err := c.table.Methods(cls)
	if err != nil {
		return err
	}
	seen := make(map[string]*symbols.MethodSymbol)
	for _, m := range methods {
		sig := c.table.Signature(m.Name, m.Params)
		if first, dup := seen[sig]; dup {
			*out = append(*out, diag.NewError(diag.SemaDuplicateMember, m.Span,
				fmt.Sprintf("method %s is declared twice in %s", sig, cls.Name)).
				WithNote(first.Span, "first declared here"))
			continue
		}
		seen[sig] = m
	}

	ctors, err := c.table.Constructors(cls)
	if err != nil {
		return err
	}
	seenCtors := make(map[string]*symbols.ConstructorSymbol)
	for _, ctor := range ctors {
		sig := strings.Join(c.table.TypeNames(ctor.Params), ", ")
		if first, dup := seenCtors[sig]; dup {
			*out = append(*out, diag.NewError(diag.SemaDuplicateMember, ctor.Span,
				fmt.Sprintf("constructor %s(%s) is declared twice", cls.Name, sig)).
				WithNote(first.Span, "first declared here"))
			continue
		}
		seenCtors[sig] = ctor
	}

	fields, err := c.table.Fields(cls)
	if err != nil {
		return err
	}
	seenFields := make(map[string]*symbols.FieldSymbol)
	for _, f := range fields {
		if first, dup := seenFields[f.Name]; dup {
			*out = append(*out, diag.NewError(diag.SemaDuplicateMember, f.Span,
				fmt.Sprintf("field %s is declared twice in %s", f.Name, cls.Name)).
				WithNote(first.Span, "first declared here"))
			continue
		}
		seenFields[f.Name] = f
	}
	return nil
}

func (c *Checker) checkImplementations(cls *symbols.ClassSymbol, out *[]diag.Diagnostic) error {
	methods, err := c.res.InterfaceMethods(cls)
	if err != nil {
		return err
	}
	for _, m := range methods {
		if !m.IsAbstract() {
			continue
		}
		impl, err := c.res.Implementation(cls, m)
		if err != nil {
			return err
		}
		if impl != nil {
			continue
		}
		owner := c.table.Class(m.Owner)
		d := diag.NewError(diag.SemaMissingImplementation, cls.Span,
			fmt.Sprintf("class %s does not implement %s.%s", cls.Name, owner.Name, c.table.Signature(m.Name, m.Params))).
			WithNote(m.Span, "declared here")
		cand, err := c.res.Overrider(cls, m)
		if err != nil {
			return err
		}
		if cand != nil {
			d = d.WithNote(cand.Span, fmt.Sprintf("incompatible return type %s, want %s",
				c.table.TypeName(cand.Return), c.table.TypeName(m.Return)))
		}
		*out = append(*out, d)
	}
	return nil
}
