package resolve

import (
	"errors"
	"slices"
	"testing"

	"onion/internal/classpath"
	"onion/internal/conv"
	"onion/internal/decl"
	"onion/internal/ir"
	"onion/internal/source"
	"onion/internal/symbols"
	"onion/internal/types"
)

func newResolver(t *testing.T, boxing conv.BoxingTable, classes ...*decl.Class) *Resolver {
	t.Helper()
	src, err := classpath.NewSources(classes...)
	if err != nil {
		t.Fatal(err)
	}
	table := symbols.NewTable(symbols.Options{Loader: classpath.Chain{src, classpath.Core()}})
	return New(table, Options{Boxing: boxing})
}

func mustLoad(t *testing.T, r *Resolver, name string) *symbols.ClassSymbol {
	t.Helper()
	c, err := r.Table().Load(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return c
}

func mustType(t *testing.T, r *Resolver, name string) types.TypeID {
	t.Helper()
	id, err := r.Table().ResolveTypeName(name)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return id
}

func resolveErr(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	var re *Error
	if !errors.As(err, &re) {
		t.Fatalf("expected *resolve.Error, got %v", err)
	}
	if re.Kind != kind {
		t.Fatalf("expected %s, got %s (%v)", kind, re.Kind, re)
	}
	return re
}

func iface(name string, supers []string, methods ...decl.Method) *decl.Class {
	return &decl.Class{Name: name, Modifiers: decl.ModInterface, Interfaces: supers, Methods: methods}
}

func method(name, ret string, params ...string) decl.Method {
	return decl.Method{Name: name, Params: params, Return: ret}
}

func TestBoxEveryBasicKind(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{})
	in := r.Table().Types()
	for _, k := range types.BasicKinds {
		if k == types.KindVoid {
			continue
		}
		lit := ir.NewLiteral(in.Basic(k), "0", source.Span{})
		boxed, err := r.Box(lit)
		if err != nil {
			t.Fatalf("box %s: %v", k, err)
		}
		want, _ := conv.DefaultBoxing().Wrapper(k)
		if got := r.Table().TypeName(boxed.Type()); got != want {
			t.Fatalf("box %s: got %s, want %s", k, got, want)
		}
		if boxed.Kind() != ir.ExprNew || boxed.Args()[0] != lit {
			t.Fatalf("box %s: expected construction around the literal", k)
		}
		if params := boxed.Constructor().Params; len(params) != 1 || params[0] != in.Basic(k) {
			t.Fatalf("box %s: wrong constructor", k)
		}
	}
}

func TestBoxRejectsNonBasic(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{})
	in := r.Table().Types()
	_, err := r.Box(ir.NewLiteral(in.Basic(types.KindVoid), "", source.Span{}))
	if re := resolveErr(t, err, ErrUnboxableType); !re.Internal() {
		t.Fatal("unboxable type is an internal fault")
	}
	str := mustType(t, r, "java.lang.String")
	_, err = r.Box(ir.NewLocal("s", str, source.Span{}))
	resolveErr(t, err, ErrUnboxableType)
}

func TestBoxCustomWrapper(t *testing.T) {
	boxing, err := conv.DefaultBoxing().With(types.KindInt, "demo.W")
	if err != nil {
		t.Fatal(err)
	}
	r := newResolver(t, boxing,
		&decl.Class{Name: "demo.W", Constructors: []decl.Constructor{{Params: []string{"int"}}, {Params: []string{"long"}}}},
	)
	in := r.Table().Types()
	boxed, err := r.Box(ir.NewLiteral(in.Basic(types.KindInt), "7", source.Span{}))
	if err != nil {
		t.Fatal(err)
	}
	if r.Table().TypeName(boxed.Type()) != "demo.W" {
		t.Fatalf("unexpected wrapper %s", r.Table().TypeName(boxed.Type()))
	}

	noMatch, _ := conv.DefaultBoxing().With(types.KindInt, "demo.V")
	r = newResolver(t, noMatch, &decl.Class{Name: "demo.V", Constructors: []decl.Constructor{{Params: []string{"long"}}}})
	_, err = r.Box(ir.NewLiteral(r.Table().Types().Basic(types.KindInt), "7", source.Span{}))
	if re := resolveErr(t, err, ErrNoMatchingWrapperConstructor); !re.Internal() {
		t.Fatal("missing wrapper constructor is an internal fault")
	}

	twice, _ := conv.DefaultBoxing().With(types.KindInt, "demo.U")
	r = newResolver(t, twice, &decl.Class{Name: "demo.U", Constructors: []decl.Constructor{{Params: []string{"int"}}, {Params: []string{"int"}}}})
	_, err = r.Box(ir.NewLiteral(r.Table().Types().Basic(types.KindInt), "7", source.Span{}))
	resolveErr(t, err, ErrNoMatchingWrapperConstructor)
}

func TestUnbox(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{})
	integer := mustType(t, r, "java.lang.Integer")
	call, err := r.Unbox(ir.NewLocal("i", integer, source.Span{}))
	if err != nil {
		t.Fatal(err)
	}
	if call.Kind() != ir.ExprCall || call.Method().Name != "intValue" {
		t.Fatalf("unexpected unboxing %s", ir.ExprString(call, r.Table().TypeName))
	}
	if call.Type() != r.Table().Types().Basic(types.KindInt) {
		t.Fatal("unboxing must yield int")
	}

	_, err = r.Unbox(ir.NewLocal("s", mustType(t, r, "java.lang.String"), source.Span{}))
	resolveErr(t, err, ErrUnboxableType)
}

func methodNames(r *Resolver, ms []*symbols.MethodSymbol) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = r.Table().Class(m.Owner).Name + "." + r.Table().Signature(m.Name, m.Params)
	}
	return out
}

func diamond(order []string) []*decl.Class {
	return []*decl.Class{
		iface("demo.T", nil, method("run", ""), method("size", "int")),
		iface("demo.Left", []string{"demo.T"}, method("run", ""), method("left", "")),
		iface("demo.Right", []string{"demo.T"}, method("run", ""), method("right", "")),
		{Name: "demo.C", Interfaces: order, Methods: []decl.Method{method("own", "")}},
	}
}

func TestInterfaceMethodsDiamond(t *testing.T) {
	want := []string{
		"demo.Left.left()",
		"demo.C.own()",
		"demo.Right.right()",
		"demo.Left.run()",
		"demo.T.size()",
	}
	for _, order := range [][]string{{"demo.Left", "demo.Right"}, {"demo.Right", "demo.Left"}} {
		r := newResolver(t, conv.BoxingTable{}, diamond(order)...)
		// load the interfaces in a different order each time
		for _, n := range slices.Backward(order) {
			mustLoad(t, r, n)
		}
		got, err := r.InterfaceMethods(mustLoad(t, r, "demo.C"))
		if err != nil {
			t.Fatal(err)
		}
		if names := methodNames(r, got); !slices.Equal(names, want) {
			t.Fatalf("order %v: got %v, want %v", order, names, want)
		}
	}
}

func TestInterfaceMethodsOrdering(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{},
		iface("demo.A", nil, method("m", "", "int", "int"), method("m", "", "long"), method("n", "long")),
		iface("demo.B", []string{"demo.A"}, method("m", "", "int"), method("m", ""), method("n", "int")),
	)
	got, err := r.InterfaceMethods(mustLoad(t, r, "demo.B"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"demo.B.m()", "demo.B.m(int)", "demo.A.m(long)", "demo.A.m(int, int)", "demo.B.n()", "demo.A.n()"}
	if names := methodNames(r, got); !slices.Equal(names, want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	if r.Table().TypeName(got[4].Return) != "int" {
		t.Fatal("equal names and params order by return type name")
	}
}

func TestInterfaceMethodsDeepDiamonds(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{},
		iface("demo.A", []string{"demo.B", "demo.C"}),
		iface("demo.B", []string{"demo.D"}),
		iface("demo.C", []string{"demo.D"}),
		iface("demo.D", []string{"demo.E", "demo.F"}, method("d", "")),
		iface("demo.E", []string{"demo.G"}),
		iface("demo.F", []string{"demo.G"}),
		iface("demo.G", nil, method("g", "")),
		&decl.Class{Name: "demo.X", Interfaces: []string{"demo.A"}},
	)
	got, err := r.InterfaceMethods(mustLoad(t, r, "demo.X"))
	if err != nil {
		t.Fatal(err)
	}
	if names := methodNames(r, got); !slices.Equal(names, []string{"demo.D.d()", "demo.G.g()"}) {
		t.Fatalf("unexpected closure %v", names)
	}
}

func TestInterfaceMethodsCycle(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{},
		iface("demo.P", []string{"demo.Q"}),
		iface("demo.Q", []string{"demo.P"}),
		&decl.Class{Name: "demo.C", Interfaces: []string{"demo.P"}},
	)
	_, err := r.InterfaceMethods(mustLoad(t, r, "demo.C"))
	re := resolveErr(t, err, ErrCyclicHierarchy)
	if want := []string{"demo.C", "demo.P", "demo.Q", "demo.P"}; !slices.Equal(re.Chain, want) {
		t.Fatalf("chain %v, want %v", re.Chain, want)
	}
	if re.Internal() {
		t.Fatal("a cyclic hierarchy is a user error")
	}
}

func TestInterfaceMethodsReturnsCopy(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{}, diamond([]string{"demo.Left", "demo.Right"})...)
	c := mustLoad(t, r, "demo.C")
	first, _ := r.InterfaceMethods(c)
	first[0] = nil
	second, _ := r.InterfaceMethods(c)
	if second[0] == nil {
		t.Fatal("callers must not share the memoized slice")
	}
}

func TestFindStaticMethodMostSpecific(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{})
	str := mustLoad(t, r, "java.lang.String")
	in := r.Table().Types()

	m, err := r.FindStaticMethod(str, "valueOf", []types.TypeID{in.Basic(types.KindChar)})
	if err != nil {
		t.Fatal(err)
	}
	if r.Table().TypeName(m.Params[0]) != "int" {
		t.Fatalf("valueOf(char) picked %s", r.Table().Signature(m.Name, m.Params))
	}
	m, err = r.FindStaticMethod(str, "valueOf", []types.TypeID{mustType(t, r, "java.lang.Integer")})
	if err != nil || r.Table().TypeName(m.Params[0]) != "java.lang.Object" {
		t.Fatalf("valueOf(Integer): %v %v", m, err)
	}
	again, _ := r.FindStaticMethod(str, "valueOf", []types.TypeID{mustType(t, r, "java.lang.Integer")})
	if again != m {
		t.Fatal("cached resolution must return the same symbol")
	}
	_, err = r.FindStaticMethod(str, "valueOf", []types.TypeID{in.Basic(types.KindBoolean)})
	resolveErr(t, err, ErrNoApplicableMember)
}

func TestFindMethodAmbiguous(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{}, &decl.Class{
		Name:    "demo.O",
		Methods: []decl.Method{method("f", "", "long", "int"), method("f", "", "int", "long")},
	})
	in := r.Table().Types()
	_, err := r.FindMethod(mustLoad(t, r, "demo.O"), "f", []types.TypeID{in.Basic(types.KindInt), in.Basic(types.KindInt)})
	re := resolveErr(t, err, ErrAmbiguousOverload)
	if want := []string{"f(int, long)", "f(long, int)"}; !slices.Equal(re.Candidates, want) {
		t.Fatalf("candidates %v, want %v", re.Candidates, want)
	}
}

func TestFindMethodInherited(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{},
		&decl.Class{Name: "demo.Base", Methods: []decl.Method{method("m", "", "java.lang.Object"), method("k", "")}},
		&decl.Class{Name: "demo.Sub", Super: "demo.Base", Methods: []decl.Method{method("m", "", "java.lang.String"), method("k", "")}},
	)
	sub := mustLoad(t, r, "demo.Sub")
	owner := func(m *symbols.MethodSymbol) string { return r.Table().Class(m.Owner).Name }

	m, err := r.FindMethod(sub, "m", []types.TypeID{mustType(t, r, "java.lang.String")})
	if err != nil || owner(m) != "demo.Sub" {
		t.Fatalf("m(String): %v %v", m, err)
	}
	m, err = r.FindMethod(sub, "m", []types.TypeID{mustType(t, r, "java.lang.Integer")})
	if err != nil || owner(m) != "demo.Base" {
		t.Fatalf("m(Integer): %v %v", m, err)
	}
	m, err = r.FindMethod(sub, "k", nil)
	if err != nil || owner(m) != "demo.Sub" {
		t.Fatalf("override must hide the inherited declaration: %v %v", m, err)
	}
	m, err = r.FindMethod(sub, "hashCode", nil)
	if err != nil || owner(m) != "java.lang.Object" {
		t.Fatalf("hashCode: %v %v", m, err)
	}
}

func TestFindMethodThroughInterfaces(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{},
		iface("demo.Shape", nil, method("area", "double")),
		&decl.Class{Name: "demo.Sq", Modifiers: decl.ModAbstract, Interfaces: []string{"demo.Shape"}},
	)
	sq := mustLoad(t, r, "demo.Sq")
	if _, err := r.FindMethod(sq, "area", nil); err != nil {
		t.Fatal(err)
	}
	_, err := r.FindStaticMethod(sq, "area", nil)
	resolveErr(t, err, ErrNoApplicableMember)
}

func TestFindConstructor(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{}, &decl.Class{
		Name:         "demo.W",
		Constructors: []decl.Constructor{{Params: []string{"int"}}},
	})
	w := mustLoad(t, r, "demo.W")
	in := r.Table().Types()
	ctor, err := r.FindConstructor(w, []types.TypeID{in.Basic(types.KindByte)})
	if err != nil || ctor.Owner != w.ID {
		t.Fatalf("W(byte): %v %v", ctor, err)
	}
	_, err = r.FindConstructor(w, []types.TypeID{in.Basic(types.KindLong)})
	re := resolveErr(t, err, ErrNoApplicableMember)
	if re.Error() != "no member of demo.W applicable to <init>(long)" {
		t.Fatalf("unexpected message %q", re.Error())
	}
}

func TestImplementationChecksReturnType(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{},
		&decl.Class{Name: "demo.I", Modifiers: decl.ModInterface, Methods: []decl.Method{
			{Name: "n", Return: "int"},
			{Name: "make", Return: "java.lang.Object"},
			{Name: "id", Return: "long"},
		}},
		&decl.Class{Name: "demo.Base", Methods: []decl.Method{{Name: "make", Return: "java.lang.String"}}},
		&decl.Class{Name: "demo.C", Super: "demo.Base", Interfaces: []string{"demo.I"}, Methods: []decl.Method{
			{Name: "n", Return: "java.lang.String"},
			{Name: "id", Return: "int"},
		}},
	)
	c := mustLoad(t, r, "demo.C")
	methods, err := r.Table().Methods(mustLoad(t, r, "demo.I"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"n": "", "make": "demo.Base", "id": ""}
	for _, m := range methods {
		impl, err := r.Implementation(c, m)
		if err != nil {
			t.Fatal(err)
		}
		got := ""
		if impl != nil {
			got = r.Table().Class(impl.Owner).Name
		}
		if got != want[m.Name] {
			t.Fatalf("%s: implemented by %q, want %q", m.Name, got, want[m.Name])
		}
		if over, _ := r.Overrider(c, m); over == nil {
			t.Fatalf("%s: overrider must be found regardless of return type", m.Name)
		}
	}
}

func TestFindField(t *testing.T) {
	r := newResolver(t, conv.BoxingTable{},
		&decl.Class{Name: "demo.K", Modifiers: decl.ModInterface, Fields: []decl.Field{{Name: "LIMIT", Type: "int", Modifiers: decl.ModStatic}}},
		&decl.Class{Name: "demo.Base", Interfaces: []string{"demo.K"}, Fields: []decl.Field{{Name: "size", Type: "int"}}},
		&decl.Class{Name: "demo.Sub", Super: "demo.Base"},
	)
	sub := mustLoad(t, r, "demo.Sub")
	for _, name := range []string{"size", "LIMIT"} {
		if _, err := r.FindField(sub, name); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	_, err := r.FindField(sub, "missing")
	resolveErr(t, err, ErrNoSuchField)
}
