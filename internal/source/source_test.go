package source

import "testing"

func TestFileSetAddIsIdempotent(t *testing.T) {
	fs := NewFileSet()
	a := fs.Add("decls/./a.toml")
	b := fs.Add("decls/a.toml")
	if a != b {
		t.Fatalf("expected same id for equivalent paths, got %d and %d", a, b)
	}
	if a == NoFileID {
		t.Fatal("first file must not get NoFileID")
	}
	if got := fs.Path(a); got != "decls/a.toml" {
		t.Fatalf("unexpected path %q", got)
	}
	if fs.Len() != 1 {
		t.Fatalf("expected 1 file, got %d", fs.Len())
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Fatalf("unexpected cover %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cover across files must keep receiver, got %v", got)
	}
}

func TestSpanString(t *testing.T) {
	sp := Span{File: 3, Start: 7, End: 19}
	if got := sp.String(); got != "3:7-19" {
		t.Fatalf("unexpected rendering %q", got)
	}
	if sp.Empty() || !(Span{File: 3, Start: 4, End: 4}).Empty() {
		t.Fatal("only zero-width spans are empty")
	}
}
