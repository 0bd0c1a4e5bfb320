package symbols

import (
	"errors"
	"strings"

	"onion/internal/decl"
	"onion/internal/source"
	"onion/internal/types"
)

// ResolveTypeName turns a declared type name ("int", "java.lang.String",
// "int[][]") into a TypeID, loading the named class if needed.
func (t *Table) ResolveTypeName(name string) (types.TypeID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resolveNameLocked(name, source.Span{})
}

func (t *Table) resolveNameLocked(name string, at source.Span) (types.TypeID, error) {
	base, dims := types.SplitArrayName(name)
	if base == "" {
		return types.NoTypeID, &LoadError{Kind: LoadErrInvalidDecl, Name: name, Reason: "empty type name", Span: at}
	}
	if k, ok := types.BasicKindByName(base); ok {
		if k == types.KindVoid && dims > 0 {
			return types.NoTypeID, &LoadError{Kind: LoadErrInvalidDecl, Name: name, Reason: "array of void", Span: at}
		}
		return t.types.Array(t.types.Basic(k), dims), nil
	}
	c, err := t.loadLocked(decl.Canonical(base), &loadState{})
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) && le.Span == (source.Span{}) {
			le.Span = at
		}
		return types.NoTypeID, err
	}
	return t.types.Array(c.Type, dims), nil
}

// ResolveType replaces an unresolved placeholder by its class or array
// type. Other types are returned unchanged.
func (t *Table) ResolveType(id types.TypeID) (types.TypeID, error) {
	tt, ok := t.types.Lookup(id)
	if !ok || tt.Kind != types.KindUnresolved {
		return id, nil
	}
	return t.ResolveTypeName(tt.Name)
}

// LoadArray returns the array type of dims dimensions over elem, resolving
// elem first when it is a placeholder.
func (t *Table) LoadArray(elem types.TypeID, dims uint32) (types.TypeID, error) {
	resolved, err := t.ResolveType(elem)
	if err != nil {
		return types.NoTypeID, err
	}
	return t.types.Array(resolved, dims), nil
}

// TypeName renders id with qualified class names.
func (t *Table) TypeName(id types.TypeID) string {
	return t.types.Name(id, t.className)
}

// TypeNames renders a list of types.
func (t *Table) TypeNames(ids []types.TypeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = t.TypeName(id)
	}
	return out
}

// Namer exposes class naming for printers outside the package.
func (t *Table) Namer() types.Namer { return t.className }

func (t *Table) className(id ClassID) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.classNameLocked(id)
}

func (t *Table) classNameLocked(id ClassID) string {
	if e := t.arena.entry(id); e != nil && e.sym != nil {
		return e.sym.Name
	}
	if e := t.arena.entry(id); e != nil && e.decl != nil {
		return decl.Canonical(e.decl.Name)
	}
	return "<unknown>"
}

// Signature renders "name(int, java.lang.String)".
func (t *Table) Signature(name string, params []types.TypeID) string {
	return name + "(" + strings.Join(t.TypeNames(params), ", ") + ")"
}
