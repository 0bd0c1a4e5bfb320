package dispatch

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"onion/internal/classpath"
	"onion/internal/decl"
	"onion/internal/resolve"
	"onion/internal/symbols"
)

func newResolver(t *testing.T, classes ...*decl.Class) *resolve.Resolver {
	t.Helper()
	src, err := classpath.NewSources(classes...)
	if err != nil {
		t.Fatal(err)
	}
	table := symbols.NewTable(symbols.Options{Loader: classpath.Chain{src, classpath.Core()}})
	return resolve.New(table, resolve.Options{})
}

func shapes(t *testing.T) (*resolve.Resolver, *symbols.ClassSymbol) {
	t.Helper()
	r := newResolver(t,
		&decl.Class{Name: "demo.Shape", Modifiers: decl.ModInterface, Methods: []decl.Method{
			{Name: "area", Return: "double"},
			{Name: "scale", Params: []string{"int"}, Return: "demo.Shape"},
		}},
		&decl.Class{Name: "demo.Base", Modifiers: decl.ModAbstract, Interfaces: []string{"demo.Shape"},
			Methods: []decl.Method{{Name: "area", Return: "double"}}},
		&decl.Class{Name: "demo.Square", Super: "demo.Base", Interfaces: []string{"demo.Shape"}},
	)
	sq, err := r.Table().Load("demo.Square")
	if err != nil {
		t.Fatal(err)
	}
	return r, sq
}

func TestBuild(t *testing.T) {
	r, sq := shapes(t)
	table, err := Build(r, sq)
	if err != nil {
		t.Fatal(err)
	}
	if table.Class != "demo.Square" || table.Abstract || len(table.Slots) != 2 {
		t.Fatalf("unexpected table %+v", table)
	}
	area, scale := table.Slots[0], table.Slots[1]
	if area.Index != 0 || area.Name != "area" || area.Impl != "demo.Base" || area.Owner != "demo.Shape" {
		t.Fatalf("unexpected area slot %+v", area)
	}
	if scale.Index != 1 || scale.Impl != "" || scale.Signature() != "scale(int) demo.Shape" {
		t.Fatalf("unexpected scale slot %+v", scale)
	}
}

func TestBuildRequiresCompatibleReturn(t *testing.T) {
	r := newResolver(t,
		&decl.Class{Name: "demo.I", Modifiers: decl.ModInterface, Methods: []decl.Method{
			{Name: "n", Return: "int"},
			{Name: "make", Return: "java.lang.Object"},
		}},
		&decl.Class{Name: "demo.C", Interfaces: []string{"demo.I"}, Methods: []decl.Method{
			{Name: "n", Return: "java.lang.String"},
			{Name: "make", Return: "java.lang.String"},
		}},
	)
	c, err := r.Table().Load("demo.C")
	if err != nil {
		t.Fatal(err)
	}
	table, err := Build(r, c)
	if err != nil {
		t.Fatal(err)
	}
	impls := map[string]string{}
	for _, s := range table.Slots {
		impls[s.Name] = s.Impl
	}
	if impls["n"] != "" {
		t.Fatalf("n() String must not implement n() int, got impl %q", impls["n"])
	}
	if impls["make"] != "demo.C" {
		t.Fatalf("covariant make() must be implemented by demo.C, got %q", impls["make"])
	}
}

func TestEncodeDecodePreservesOrder(t *testing.T) {
	r, sq := shapes(t)
	built, err := Build(r, sq)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, []*Table{built}); err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 || len(decoded[0].Slots) != len(built.Slots) {
		t.Fatalf("unexpected payload %+v", decoded)
	}
	for i, s := range decoded[0].Slots {
		if s.Index != built.Slots[i].Index || s.Signature() != built.Slots[i].Signature() {
			t.Fatalf("slot %d changed: %+v", i, s)
		}
	}
}

func TestDecodeRejectsOtherSchema(t *testing.T) {
	data, err := msgpack.Marshal(&payload{Schema: SchemaVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(bytes.NewReader(data)); err == nil {
		t.Fatal("expected schema error")
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "dispatch.mp")
	in := []*Table{{Class: "demo.A", Slots: []Slot{{Index: 0, Name: "run", Return: "void", Owner: "demo.A", Impl: "demo.A"}}}}
	if err := WriteFile(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Slots[0].Impl != "demo.A" {
		t.Fatalf("unexpected tables %+v", out)
	}
}
