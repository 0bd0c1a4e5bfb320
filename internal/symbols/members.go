package symbols

import (
	"errors"
	"fmt"
	"strings"

	"onion/internal/decl"
	"onion/internal/source"
	"onion/internal/types"
)

// resolvedEntry returns the entry of a published class.
func (t *Table) resolvedEntry(c *ClassSymbol) (*classEntry, error) {
	if c == nil {
		return nil, fmt.Errorf("symbols: nil class")
	}
	e := t.arena.entry(c.ID)
	if e == nil || e.state != StateResolved || e.sym != c {
		return nil, fmt.Errorf("symbols: class %s does not belong to this table", c.Name)
	}
	return e, nil
}

// Interfaces returns the interfaces c declares, loading them on first use.
// Failures are not memoized.
func (t *Table) Interfaces(c *ClassSymbol) ([]ClassID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.resolvedEntry(c)
	if err != nil {
		return nil, err
	}
	if !e.interfacesDone {
		ids := make([]ClassID, 0, len(e.decl.Interfaces))
		for _, name := range e.decl.Interfaces {
			iface, err := t.loadLocked(decl.Canonical(name), &loadState{})
			if err != nil {
				return nil, withSpan(err, e.decl)
			}
			if !iface.IsInterface() {
				what := "class"
				if c.IsInterface() {
					what = "interface"
				}
				return nil, &LoadError{
					Kind:   LoadErrInvalidDecl,
					Name:   c.Name,
					Reason: fmt.Sprintf("%s %s cannot implement non-interface %s", what, c.Name, iface.Name),
					Span:   e.decl.Span,
				}
			}
			ids = append(ids, iface.ID)
		}
		e.interfaces = ids
		e.interfacesDone = true
	}
	return append([]ClassID(nil), e.interfaces...), nil
}

// Methods returns the methods declared by c in declaration order.
func (t *Table) Methods(c *ClassSymbol) ([]*MethodSymbol, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.resolvedEntry(c)
	if err != nil {
		return nil, err
	}
	if !e.methodsDone {
		out := make([]*MethodSymbol, 0, len(e.decl.Methods))
		for _, md := range e.decl.Methods {
			params, err := t.resolveParams(md.Params, md.Span)
			if err != nil {
				return nil, err
			}
			ret := t.types.Basic(types.KindVoid)
			if strings.TrimSpace(md.Return) != "" {
				if ret, err = t.resolveNameLocked(md.Return, md.Span); err != nil {
					return nil, err
				}
			}
			mods := md.Modifiers
			if c.IsInterface() && !mods.Has(decl.ModStatic) {
				mods |= decl.ModAbstract | decl.ModPublic
			}
			out = append(out, &MethodSymbol{
				Name:      strings.TrimSpace(md.Name),
				Params:    params,
				Return:    ret,
				Modifiers: mods,
				Owner:     c.ID,
				Span:      md.Span,
			})
		}
		for _, m := range out {
			t.arena.newMethod(m)
		}
		e.methods = out
		e.methodsDone = true
	}
	return append([]*MethodSymbol(nil), e.methods...), nil
}

// Constructors returns the constructors declared by c.
func (t *Table) Constructors(c *ClassSymbol) ([]*ConstructorSymbol, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.resolvedEntry(c)
	if err != nil {
		return nil, err
	}
	if !e.ctorsDone {
		out := make([]*ConstructorSymbol, 0, len(e.decl.Constructors))
		for _, cd := range e.decl.Constructors {
			params, err := t.resolveParams(cd.Params, cd.Span)
			if err != nil {
				return nil, err
			}
			out = append(out, &ConstructorSymbol{
				Params:    params,
				Modifiers: cd.Modifiers,
				Owner:     c.ID,
				Span:      cd.Span,
			})
		}
		for _, ctor := range out {
			t.arena.newCtor(ctor)
		}
		e.ctors = out
		e.ctorsDone = true
	}
	return append([]*ConstructorSymbol(nil), e.ctors...), nil
}

// Fields returns the fields declared by c.
func (t *Table) Fields(c *ClassSymbol) ([]*FieldSymbol, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.resolvedEntry(c)
	if err != nil {
		return nil, err
	}
	if !e.fieldsDone {
		out := make([]*FieldSymbol, 0, len(e.decl.Fields))
		for _, fd := range e.decl.Fields {
			ft, err := t.resolveNameLocked(fd.Type, fd.Span)
			if err != nil {
				return nil, err
			}
			if t.types.KindOf(ft) == types.KindVoid {
				return nil, &LoadError{Kind: LoadErrInvalidDecl, Name: c.Name, Reason: "field " + fd.Name + " has type void", Span: fd.Span}
			}
			out = append(out, &FieldSymbol{
				Name:      strings.TrimSpace(fd.Name),
				Type:      ft,
				Modifiers: fd.Modifiers,
				Owner:     c.ID,
				Span:      fd.Span,
			})
		}
		for _, f := range out {
			t.arena.newField(f)
		}
		e.fields = out
		e.fieldsDone = true
	}
	return append([]*FieldSymbol(nil), e.fields...), nil
}

func (t *Table) resolveParams(names []string, at source.Span) ([]types.TypeID, error) {
	params := make([]types.TypeID, 0, len(names))
	for _, n := range names {
		p, err := t.resolveNameLocked(n, at)
		if err != nil {
			return nil, err
		}
		if t.types.KindOf(p) == types.KindVoid {
			return nil, &LoadError{Kind: LoadErrInvalidDecl, Name: n, Reason: "parameter of type void", Span: at}
		}
		params = append(params, p)
	}
	return params, nil
}

func withSpan(err error, d *decl.Class) error {
	var le *LoadError
	if errors.As(err, &le) && le.Span == (source.Span{}) {
		le.Span = d.Span
	}
	return err
}
