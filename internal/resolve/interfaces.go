package resolve

import (
	"slices"
	"strings"

	"onion/internal/symbols"
	"onion/internal/trace"
)

// ifaceEntry is a method of the closure with the names it sorts by.
type ifaceEntry struct {
	m      *symbols.MethodSymbol
	params []string
	ret    string
	owner  string
}

func (e ifaceEntry) key() string {
	return e.m.Name + "(" + strings.Join(e.params, ",") + ")" + e.ret
}

// InterfaceMethods returns the methods declared on c and on every interface
// it implements, transitively, with duplicate signatures collapsed. The
// order is by name, then parameter type names (shorter lists first, then
// position by position), then return type name, so it does not depend on
// load order. Callers get their own copy.
func (r *Resolver) InterfaceMethods(c *symbols.ClassSymbol) ([]*symbols.MethodSymbol, error) {
	r.mu.Lock()
	cached, ok := r.ifaces[c.ID]
	r.mu.Unlock()
	if ok {
		return slices.Clone(cached), nil
	}

	span := trace.Begin(r.tracer, trace.ScopeClass, "interfaces:"+c.Name, 0)
	w := &ifaceWalk{r: r, onStack: make(map[symbols.ClassID]bool), done: make(map[symbols.ClassID]bool), byKey: make(map[string]ifaceEntry)}
	if err := w.visit(c); err != nil {
		span.End("failed")
		return nil, err
	}
	entries := make([]ifaceEntry, 0, len(w.byKey))
	for _, e := range w.byKey {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, compareEntries)
	out := make([]*symbols.MethodSymbol, len(entries))
	for i, e := range entries {
		out[i] = e.m
	}
	span.End("")

	r.mu.Lock()
	if prev, ok := r.ifaces[c.ID]; ok {
		out = prev
	} else {
		r.ifaces[c.ID] = out
	}
	r.mu.Unlock()
	return slices.Clone(out), nil
}

type ifaceWalk struct {
	r       *Resolver
	stack   []string
	onStack map[symbols.ClassID]bool
	done    map[symbols.ClassID]bool
	byKey   map[string]ifaceEntry
}

func (w *ifaceWalk) visit(c *symbols.ClassSymbol) error {
	if w.onStack[c.ID] {
		chain := append(slices.Clone(w.stack), c.Name)
		return &Error{Kind: ErrCyclicHierarchy, Class: c.Name, Chain: chain, Span: c.Span}
	}
	if w.done[c.ID] {
		return nil
	}
	w.onStack[c.ID] = true
	w.stack = append(w.stack, c.Name)

	methods, err := w.r.table.Methods(c)
	if err != nil {
		return err
	}
	for _, m := range methods {
		e := ifaceEntry{m: m, params: w.r.names(m.Params), ret: w.r.name(m.Return), owner: c.Name}
		k := e.key()
		if prev, ok := w.byKey[k]; ok && prev.owner <= e.owner {
			continue
		}
		w.byKey[k] = e
	}
	ifaces, err := w.r.table.Interfaces(c)
	if err != nil {
		return err
	}
	for _, id := range ifaces {
		if err := w.visit(w.r.table.Class(id)); err != nil {
			return err
		}
	}

	w.stack = w.stack[:len(w.stack)-1]
	delete(w.onStack, c.ID)
	w.done[c.ID] = true
	return nil
}

func compareEntries(a, b ifaceEntry) int {
	if c := strings.Compare(a.m.Name, b.m.Name); c != 0 {
		return c
	}
	if c := compareNameLists(a.params, b.params); c != 0 {
		return c
	}
	if c := strings.Compare(a.ret, b.ret); c != 0 {
		return c
	}
	return strings.Compare(a.owner, b.owner)
}

// compareNameLists orders shorter lists first, then position by position.
func compareNameLists(a, b []string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	for i := range a {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}
