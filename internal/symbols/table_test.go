package symbols

import (
	"errors"
	"sync"
	"testing"

	"onion/internal/classpath"
	"onion/internal/decl"
	"onion/internal/types"
)

func newTestTable(t *testing.T, classes ...*decl.Class) (*Table, *classpath.Sources) {
	t.Helper()
	src, err := classpath.NewSources(classes...)
	if err != nil {
		t.Fatalf("sources: %v", err)
	}
	return NewTable(Options{Loader: classpath.Chain{src, classpath.Core()}}), src
}

func loadErrKind(t *testing.T, err error) *LoadError {
	t.Helper()
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	return le
}

func TestLoadIsMemoized(t *testing.T) {
	table, _ := newTestTable(t)
	first, err := table.Load("java.lang.Integer")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := table.Load("  java.lang.Integer ")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if first != second {
		t.Fatal("expected the same symbol instance")
	}
	number := table.Class(first.Super)
	if number == nil || number.Name != "java.lang.Number" {
		t.Fatalf("unexpected superclass %v", number)
	}
	if root := table.Class(number.Super); root == nil || !table.IsRoot(root.ID) {
		t.Fatal("Number must extend the root class")
	}
}

func TestLoadCanonicalisesUnicode(t *testing.T) {
	table, _ := newTestTable(t, &decl.Class{Name: "demo.Caf\u00e9"})
	composed, err := table.Load("demo.Caf\u00e9")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	decomposed, err := table.Load("demo.Cafe\u0301")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if composed != decomposed {
		t.Fatal("NFC-equivalent names must resolve to one symbol")
	}
}

func TestLoadFindsNonCanonicalDeclarations(t *testing.T) {
	table, _ := newTestTable(t,
		&decl.Class{Name: "demo.Cafe\u0301"},
		&decl.Class{Name: " demo.Pad"},
	)
	cafe, err := table.Load("demo.Cafe\u0301")
	if err != nil {
		t.Fatalf("load decomposed: %v", err)
	}
	if cafe.Name != "demo.Caf\u00e9" {
		t.Fatalf("symbol must carry the canonical name, got %q", cafe.Name)
	}
	pad, err := table.Load(" demo.Pad")
	if err != nil {
		t.Fatalf("load padded: %v", err)
	}
	if again, err := table.Load("demo.Pad"); err != nil || again != pad {
		t.Fatalf("trimmed lookup must yield the same symbol: %v", err)
	}
}

func TestLoadClassNotFound(t *testing.T) {
	table, _ := newTestTable(t, &decl.Class{Name: "demo.A", Super: "demo.Missing"})
	_, err := table.Load("demo.A")
	le := loadErrKind(t, err)
	if le.Kind != LoadErrClassNotFound || le.Name != "demo.Missing" {
		t.Fatalf("unexpected error %v", le)
	}
	if len(le.Chain) != 1 || le.Chain[0] != "demo.A" {
		t.Fatalf("unexpected chain %v", le.Chain)
	}
	if _, ok := table.Lookup("demo.A"); ok {
		t.Fatal("failed class must not be registered")
	}
}

func TestLoadCyclicSuperclass(t *testing.T) {
	table, _ := newTestTable(t,
		&decl.Class{Name: "demo.A", Super: "demo.B"},
		&decl.Class{Name: "demo.B", Super: "demo.A"},
	)
	_, err := table.Load("demo.A")
	le := loadErrKind(t, err)
	if le.Kind != LoadErrCyclicLoad {
		t.Fatalf("expected cyclic load, got %v", le)
	}
	want := []string{"demo.A", "demo.B", "demo.A"}
	if len(le.Chain) != len(want) {
		t.Fatalf("unexpected chain %v", le.Chain)
	}
	for i := range want {
		if le.Chain[i] != want[i] {
			t.Fatalf("unexpected chain %v", le.Chain)
		}
	}
	if le.Error() != "cyclic superclass chain: demo.A -> demo.B -> demo.A" {
		t.Fatalf("unexpected message %q", le.Error())
	}
	// a second attempt fails the same way instead of seeing stale state
	_, err = table.Load("demo.B")
	if le := loadErrKind(t, err); le.Kind != LoadErrCyclicLoad {
		t.Fatalf("expected cyclic load on retry, got %v", le)
	}
}

func TestFailedLoadRollsBack(t *testing.T) {
	table, src := newTestTable(t, &decl.Class{Name: "demo.A", Super: "demo.B"})
	if _, err := table.Load("demo.A"); err == nil {
		t.Fatal("expected failure while demo.B is missing")
	}
	if err := src.Add(&decl.Class{Name: "demo.B"}); err != nil {
		t.Fatal(err)
	}
	a, err := table.Load("demo.A")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if b := table.Class(a.Super); b == nil || b.Name != "demo.B" {
		t.Fatalf("unexpected superclass %v", b)
	}
	failed := 0
	for id := ClassID(1); id < a.ID; id++ {
		if table.State(id) == StateFailed {
			failed++
		}
	}
	if failed != 1 {
		t.Fatalf("expected the first demo.A slot to be failed, got %d failed slots", failed)
	}
}

func TestSuperclassMustNotBeInterface(t *testing.T) {
	table, _ := newTestTable(t,
		&decl.Class{Name: "demo.I", Modifiers: decl.ModInterface},
		&decl.Class{Name: "demo.C", Super: "demo.I"},
	)
	_, err := table.Load("demo.C")
	if le := loadErrKind(t, err); le.Kind != LoadErrInvalidDecl {
		t.Fatalf("expected invalid declaration, got %v", le)
	}
}

func TestInterfacesAreLazy(t *testing.T) {
	table, src := newTestTable(t,
		&decl.Class{Name: "demo.C", Interfaces: []string{"demo.I"}},
		&decl.Class{Name: "demo.K"},
		&decl.Class{Name: "demo.D", Interfaces: []string{"demo.K"}},
	)
	c, err := table.Load("demo.C")
	if err != nil {
		t.Fatalf("load must not touch interfaces: %v", err)
	}
	if _, err := table.Interfaces(c); loadErrKind(t, err).Kind != LoadErrClassNotFound {
		t.Fatal("expected missing interface")
	}
	if err := src.Add(&decl.Class{Name: "demo.I", Modifiers: decl.ModInterface}); err != nil {
		t.Fatal(err)
	}
	ids, err := table.Interfaces(c)
	if err != nil || len(ids) != 1 || table.Class(ids[0]).Name != "demo.I" {
		t.Fatalf("retry: %v %v", ids, err)
	}

	d, err := table.Load("demo.D")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := table.Interfaces(d); loadErrKind(t, err).Kind != LoadErrInvalidDecl {
		t.Fatal("implementing a class must be rejected")
	}
}

func TestMembersResolveTypes(t *testing.T) {
	table, _ := newTestTable(t, &decl.Class{
		Name: "demo.W",
		Constructors: []decl.Constructor{
			{Params: []string{"int"}},
		},
		Methods: []decl.Method{
			{Name: "names", Params: []string{"java.lang.String[]", "long"}, Return: "java.lang.String[][]"},
			{Name: "broken", Params: []string{"demo.Nope"}},
		},
		Fields: []decl.Field{{Name: "count", Type: "int", Modifiers: decl.ModStatic}},
	})
	w, err := table.Load("demo.W")
	if err != nil {
		t.Fatal(err)
	}
	ctors, err := table.Constructors(w)
	if err != nil || len(ctors) != 1 {
		t.Fatalf("constructors: %v %v", ctors, err)
	}
	if ctors[0].Params[0] != table.Types().Basic(types.KindInt) || ctors[0].Owner != w.ID {
		t.Fatal("constructor parameter must be the interned int")
	}
	if _, err := table.Methods(w); loadErrKind(t, err).Kind != LoadErrClassNotFound {
		t.Fatal("expected missing parameter class")
	}
	fields, err := table.Fields(w)
	if err != nil || len(fields) != 1 || !fields[0].IsStatic() {
		t.Fatalf("fields: %v %v", fields, err)
	}
	again, _ := table.Constructors(w)
	if again[0] != ctors[0] {
		t.Fatal("constructors must be memoized")
	}
}

func TestResolveTypeNameRoundTrip(t *testing.T) {
	table, _ := newTestTable(t)
	for _, name := range []string{"int", "int[][]", "java.lang.String", "java.lang.String[]"} {
		id, err := table.ResolveTypeName(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got := table.TypeName(id); got != name {
			t.Fatalf("round trip %s -> %s", name, got)
		}
	}
	placeholder := table.Types().Unresolved("java.lang.Long[]")
	id, err := table.ResolveType(placeholder)
	if err != nil || table.Types().KindOf(id) != types.KindArray {
		t.Fatalf("ResolveType: %v %v", id, err)
	}
	if _, err := table.ResolveTypeName("void[]"); err == nil {
		t.Fatal("array of void must be rejected")
	}
}

func TestConcurrentLoadsShareOneSymbol(t *testing.T) {
	table, _ := newTestTable(t)
	const workers = 16
	got := make([]*ClassSymbol, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := table.Load("java.lang.Double")
			if err != nil {
				t.Errorf("load: %v", err)
				return
			}
			got[i] = c
		}()
	}
	wg.Wait()
	for i := 1; i < workers; i++ {
		if got[i] != got[0] {
			t.Fatal("concurrent loads produced distinct symbols")
		}
	}
}

func TestLoadArrayResolvesPlaceholder(t *testing.T) {
	table, _ := newTestTable(t)
	placeholder := table.Types().Unresolved("java.lang.String")
	id, err := table.LoadArray(placeholder, 2)
	if err != nil {
		t.Fatal(err)
	}
	want, err := table.ResolveTypeName("java.lang.String[][]")
	if err != nil {
		t.Fatal(err)
	}
	if id != want {
		t.Fatalf("LoadArray must agree with ResolveTypeName: %s vs %s", table.TypeName(id), table.TypeName(want))
	}
	if _, err := table.LoadArray(table.Types().Unresolved("demo.Nope"), 1); loadErrKind(t, err).Kind != LoadErrClassNotFound {
		t.Fatalf("expected class not found, got %v", err)
	}
}
