package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"onion/internal/trace"
	"onion/internal/types"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
[compiler]
root = "java.lang.Object"
sources = ["src"]
classpath = ["lib", "vendor/lib"]
max_diagnostics = 50
jobs = 4

[boxing]
int = "demo.W"

[trace]
level = "detail"
mode = "stream"
output = "trace.ndjson"
`)
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.ClasspathDirs(); len(got) != 2 || got[1] != filepath.Join(m.Root, "vendor", "lib") {
		t.Fatalf("unexpected classpath %v", got)
	}
	box, _ := m.BoxingTable()
	if name, _ := box.Wrapper(types.KindInt); name != "demo.W" {
		t.Fatalf("boxing override lost: %s", name)
	}
	if name, _ := box.Wrapper(types.KindLong); name != "java.lang.Long" {
		t.Fatalf("defaults must survive overrides: %s", name)
	}
	tc, err := m.TraceConfig()
	if err != nil || tc.Level != trace.LevelDetail || tc.Mode != trace.ModeStream {
		t.Fatalf("trace config: %+v %v", tc, err)
	}
	if tc.OutputPath != filepath.Join(m.Root, "trace.ndjson") {
		t.Fatalf("unexpected trace output %s", tc.OutputPath)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	cases := map[string]string{
		"compiler":   "[trace]\nlevel = \"off\"\n",
		"sources":    "[compiler]\nclasspath = [\"lib\"]\n",
		"jobs":       "[compiler]\nsources = [\"src\"]\njobs = -1\n",
		"boxing":     "[compiler]\nsources = [\"src\"]\n[boxing]\nvoid = \"demo.V\"\n",
		"boxingKind": "[compiler]\nsources = [\"src\"]\n[boxing]\nstring = \"demo.S\"\n",
		"trace":      "[compiler]\nsources = [\"src\"]\n[trace]\nlevel = \"loud\"\n",
		"unknown":    "[compiler]\nsources = [\"src\"]\noptimise = true\n",
	}
	for name, body := range cases {
		_, err := Load(writeManifest(t, body))
		var me *Error
		if !errors.As(err, &me) {
			t.Fatalf("%s: expected *project.Error, got %v", name, err)
		}
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	path := writeManifest(t, "[compiler]\nsources = [\"src\"]\n")
	nested := filepath.Join(filepath.Dir(path), "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	found, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: %v %v", ok, err)
	}
	want, _ := filepath.EvalSymlinks(path)
	got, _ := filepath.EvalSymlinks(found)
	if got != want {
		t.Fatalf("found %s, want %s", got, want)
	}
}
