package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"onion/internal/decl"
)

// classEntry is one arena slot. Lazy parts are nil until first resolved.
type classEntry struct {
	sym   *ClassSymbol
	state State
	decl  *decl.Class

	interfaces []ClassID
	methods    []*MethodSymbol
	ctors      []*ConstructorSymbol
	fields     []*FieldSymbol

	interfacesDone bool
	methodsDone    bool
	ctorsDone      bool
	fieldsDone     bool
}

// arena stores class entries and member symbols; index 0 of every slice is
// the reserved sentinel.
type arena struct {
	classes []*classEntry
	methods []*MethodSymbol
	ctors   []*ConstructorSymbol
	fields  []*FieldSymbol
}

func newArena() *arena {
	return &arena{
		classes: make([]*classEntry, 1, 64),
		methods: make([]*MethodSymbol, 1, 256),
		ctors:   make([]*ConstructorSymbol, 1, 64),
		fields:  make([]*FieldSymbol, 1, 64),
	}
}

func nextID(n int, what string) uint32 {
	value, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", what, err))
	}
	return value
}

func (a *arena) newClass(e *classEntry) ClassID {
	id := ClassID(nextID(len(a.classes), "class"))
	a.classes = append(a.classes, e)
	return id
}

func (a *arena) entry(id ClassID) *classEntry {
	if !id.IsValid() || int(id) >= len(a.classes) {
		return nil
	}
	return a.classes[id]
}

func (a *arena) newMethod(m *MethodSymbol) {
	m.ID = MethodID(nextID(len(a.methods), "method"))
	a.methods = append(a.methods, m)
}

func (a *arena) newCtor(c *ConstructorSymbol) {
	c.ID = CtorID(nextID(len(a.ctors), "constructor"))
	a.ctors = append(a.ctors, c)
}

func (a *arena) newField(f *FieldSymbol) {
	f.ID = FieldID(nextID(len(a.fields), "field"))
	a.fields = append(a.fields, f)
}
