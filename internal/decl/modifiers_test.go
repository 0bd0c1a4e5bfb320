package decl

import "testing"

func TestParseModifiers(t *testing.T) {
	m, err := ParseModifiers([]string{"public", "final"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Has(ModPublic) || !m.Has(ModFinal) || m.Has(ModStatic) {
		t.Fatalf("unexpected modifiers %s", m)
	}
	if got := m.String(); got != "public final" {
		t.Fatalf("String() = %q", got)
	}
}

func TestParseModifiersRejectsConflicts(t *testing.T) {
	if _, err := ParseModifiers([]string{"public", "private"}); err == nil {
		t.Fatal("expected visibility conflict")
	}
	if _, err := ParseModifiers([]string{"final", "abstract"}); err == nil {
		t.Fatal("expected final/abstract conflict")
	}
	if _, err := ParseModifiers([]string{"sealed"}); err == nil {
		t.Fatal("expected unknown modifier error")
	}
}

func TestClassIsInterface(t *testing.T) {
	c := &Class{Name: "demo.Shape", Modifiers: ModInterface | ModPublic}
	if !c.IsInterface() {
		t.Fatal("expected interface")
	}
	var nilClass *Class
	if nilClass.IsInterface() {
		t.Fatal("nil class is not an interface")
	}
}
