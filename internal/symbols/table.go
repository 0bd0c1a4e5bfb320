package symbols

import (
	"errors"
	"fmt"
	"sync"

	"onion/internal/classpath"
	"onion/internal/decl"
	"onion/internal/source"
	"onion/internal/trace"
	"onion/internal/types"
)

// DefaultRoot is the implicit superclass of every class and interface.
const DefaultRoot = "java.lang.Object"

// Options configures a Table.
type Options struct {
	Loader classpath.Loader
	Types  *types.Interner // nil allocates a fresh interner
	Root   string          // "" means DefaultRoot
	Tracer trace.Tracer
}

// Table is the class table of one compilation run. It issues exactly one
// ClassSymbol per canonical qualified name and memoizes successful loads.
// All public methods are safe for concurrent use.
type Table struct {
	mu     sync.Mutex
	loader classpath.Loader
	types  *types.Interner
	root   string
	tracer trace.Tracer

	arena *arena
	index map[string]ClassID
	order []ClassID
}

// NewTable builds an empty table.
func NewTable(opts Options) *Table {
	in := opts.Types
	if in == nil {
		in = types.NewInterner()
	}
	root := decl.Canonical(opts.Root)
	if root == "" {
		root = DefaultRoot
	}
	tr := opts.Tracer
	if tr == nil {
		tr = trace.Nop
	}
	return &Table{
		loader: opts.Loader,
		types:  in,
		root:   root,
		tracer: tr,
		arena:  newArena(),
		index:  make(map[string]ClassID),
	}
}

// Types returns the interner the table issues class and array types from.
func (t *Table) Types() *types.Interner { return t.types }

// loadState is the stack of names being loaded by one top-level Load.
type loadState struct {
	stack []string
	spans []uint64
}

func (st *loadState) chain(extra ...string) []string {
	out := make([]string, 0, len(st.stack)+len(extra))
	out = append(out, st.stack...)
	return append(out, extra...)
}

func (st *loadState) parentSpan() uint64 {
	if len(st.spans) == 0 {
		return 0
	}
	return st.spans[len(st.spans)-1]
}

// Load returns the symbol for a qualified class name, loading it and its
// superclass chain on first use.
func (t *Table) Load(name string) (*ClassSymbol, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadLocked(decl.Canonical(name), &loadState{})
}

func (t *Table) loadLocked(name string, st *loadState) (*ClassSymbol, error) {
	if id, ok := t.index[name]; ok {
		e := t.arena.entry(id)
		switch e.state {
		case StateResolved:
			return e.sym, nil
		case StateInProgress:
			return nil, &LoadError{Kind: LoadErrCyclicLoad, Name: name, Chain: st.chain(name)}
		}
	}

	span := trace.Begin(t.tracer, trace.ScopeClass, "class:"+name, st.parentSpan())
	st.stack = append(st.stack, name)
	st.spans = append(st.spans, span.ID())
	defer func() {
		st.stack = st.stack[:len(st.stack)-1]
		st.spans = st.spans[:len(st.spans)-1]
	}()

	sym, err := t.defineLocked(name, st)
	if err != nil {
		span.End("failed")
		trace.Failure(t.tracer, trace.ScopeClass, "class:"+name, err.Error())
		return nil, err
	}
	span.End(sym.Origin.String())
	return sym, nil
}

// defineLocked registers name as in-progress, loads the superclass and
// publishes the symbol. On failure the name is removed from the index and
// the slot is marked failed, so a later Load starts over.
func (t *Table) defineLocked(name string, st *loadState) (*ClassSymbol, error) {
	if t.loader == nil {
		return nil, &LoadError{Kind: LoadErrClassNotFound, Name: name, Chain: st.chain()[:len(st.stack)-1]}
	}
	d, ok, err := t.loader.Find(name)
	if err != nil {
		return nil, &LoadError{Kind: LoadErrProvider, Name: name, Err: err}
	}
	if !ok {
		return nil, &LoadError{Kind: LoadErrClassNotFound, Name: name, Chain: st.chain()[:len(st.stack)-1]}
	}

	e := &classEntry{state: StateInProgress, decl: d}
	id := t.arena.newClass(e)
	t.index[name] = id
	fail := func(err error) (*ClassSymbol, error) {
		e.state = StateFailed
		delete(t.index, name)
		return nil, err
	}

	superName, err := t.superNameOf(name, d)
	if err != nil {
		return fail(err)
	}
	var superID ClassID
	if superName != "" {
		super, err := t.loadLocked(superName, st)
		if err != nil {
			var le *LoadError
			if errors.As(err, &le) && le.Span == (source.Span{}) {
				le.Span = d.Span
			}
			return fail(err)
		}
		if super.IsInterface() {
			return fail(&LoadError{
				Kind:   LoadErrInvalidDecl,
				Name:   name,
				Reason: fmt.Sprintf("superclass %s is an interface", super.Name),
				Span:   d.Span,
			})
		}
		superID = super.ID
	}

	e.sym = &ClassSymbol{
		ID:        id,
		Name:      name,
		Modifiers: d.Modifiers,
		Type:      t.types.Class(id),
		Super:     superID,
		Origin:    d.Origin,
		Span:      d.Span,
	}
	e.state = StateResolved
	t.order = append(t.order, id)
	return e.sym, nil
}

func (t *Table) superNameOf(name string, d *decl.Class) (string, error) {
	super := decl.Canonical(d.Super)
	switch {
	case name == t.root:
		if super != "" {
			return "", &LoadError{Kind: LoadErrInvalidDecl, Name: name, Reason: "the root class cannot have a superclass", Span: d.Span}
		}
		return "", nil
	case d.IsInterface():
		if super != "" && super != t.root {
			return "", &LoadError{Kind: LoadErrInvalidDecl, Name: name, Reason: "an interface cannot extend class " + super, Span: d.Span}
		}
		return t.root, nil
	case super == "":
		return t.root, nil
	default:
		return super, nil
	}
}

// Lookup returns an already resolved symbol without loading anything.
func (t *Table) Lookup(name string) (*ClassSymbol, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.index[decl.Canonical(name)]
	if !ok {
		return nil, false
	}
	e := t.arena.entry(id)
	if e.state != StateResolved {
		return nil, false
	}
	return e.sym, true
}

// Class returns the symbol for id, nil for unknown or failed slots.
func (t *Table) Class(id ClassID) *ClassSymbol {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.classLocked(id)
}

func (t *Table) classLocked(id ClassID) *ClassSymbol {
	e := t.arena.entry(id)
	if e == nil || e.state != StateResolved {
		return nil
	}
	return e.sym
}

// State reports the resolution state of a slot.
func (t *Table) State(id ClassID) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.arena.entry(id)
	if e == nil {
		return StateUnresolved
	}
	return e.state
}

// Root loads the root class.
func (t *Table) Root() (*ClassSymbol, error) {
	return t.Load(t.root)
}

// IsRoot reports whether id is the root class.
func (t *Table) IsRoot(id ClassID) bool {
	c := t.Class(id)
	return c != nil && c.Name == t.root
}

// Classes returns every resolved symbol in registration order.
func (t *Table) Classes() []*ClassSymbol {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*ClassSymbol, 0, len(t.order))
	for _, id := range t.order {
		if e := t.arena.entry(id); e != nil && e.state == StateResolved {
			out = append(out, e.sym)
		}
	}
	return out
}
