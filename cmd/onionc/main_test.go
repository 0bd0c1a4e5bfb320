package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"onion/internal/dispatch"
)

func resetFlags(cmd *cobra.Command) {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
	reset(cmd.PersistentFlags())
	reset(cmd.Flags())
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeProject(t *testing.T, manifest string, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files["onion.toml"] = manifest
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

const shapesManifest = `
[compiler]
sources = ["src"]
classpath = ["lib"]
`

func shapesProject(t *testing.T) string {
	return writeProject(t, shapesManifest, map[string]string{
		"lib/shape.toml": `
[[class]]
name = "demo.Shape"
modifiers = ["interface"]
  [[class.method]]
  name = "area"
  return = "double"
`,
		"src/circle.toml": `
[[class]]
name = "demo.Circle"
interfaces = ["demo.Shape"]
  [[class.method]]
  name = "area"
  return = "double"
`,
		"src/square.toml": `
[[class]]
name = "demo.Square"
interfaces = ["demo.Shape"]
span = [1, 12]
`,
	})
}

func exitCode(err error) int {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return -1
}

func TestCheckReportsDiagnostics(t *testing.T) {
	root := shapesProject(t)
	out, _, err := execute(t, "check", "--color", "off", root)
	if exitCode(err) != 1 {
		t.Fatalf("expected exit status 1, got %v", err)
	}
	if !strings.Contains(out, "src/square.toml:1-12: ERROR SEM3010: class demo.Square does not implement demo.Shape.area()") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "checked 2 units: 1 errors, 0 warnings") {
		t.Fatalf("missing summary:\n%s", out)
	}
}

func TestCheckJSON(t *testing.T) {
	root := shapesProject(t)
	out, _, err := execute(t, "check", "--format", "json", "--quiet", root)
	if exitCode(err) != 1 {
		t.Fatalf("expected exit status 1, got %v", err)
	}
	if !strings.Contains(out, `"code": "SEM3010"`) || !strings.Contains(out, `"count": 1`) {
		t.Fatalf("unexpected json:\n%s", out)
	}
}

func TestCheckInvalidManifest(t *testing.T) {
	root := writeProject(t, "[compiler]\nsources = [\"src\"]\n[boxing]\nint = \"\"\n", map[string]string{})
	out, _, err := execute(t, "check", "--color", "off", root)
	if exitCode(err) != 1 {
		t.Fatalf("expected exit status 1, got %v", err)
	}
	if !strings.Contains(out, "PRJ5002") {
		t.Fatalf("expected boxing diagnostic:\n%s", out)
	}
}

func TestDispatchRendersAndExports(t *testing.T) {
	root := shapesProject(t)
	out, _, err := execute(t, "dispatch", "--color", "off", "--class", "demo.Circle", root)
	if err != nil && exitCode(err) != 1 {
		t.Fatalf("dispatch: %v", err)
	}
	if !strings.Contains(out, "demo.Circle (class)") || !strings.Contains(out, "area() double") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if strings.Contains(out, "demo.Square") {
		t.Fatalf("--class must filter tables:\n%s", out)
	}

	file := filepath.Join(t.TempDir(), "tables.mp")
	if _, _, err := execute(t, "dispatch", "--quiet", "--out", file, root); exitCode(err) != 1 {
		t.Fatalf("expected exit status 1 from the square error, got %v", err)
	}
	tables, err := dispatch.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 2 || tables[0].Class != "demo.Circle" || tables[1].Class != "demo.Square" {
		t.Fatalf("unexpected exported tables %+v", tables)
	}

	if _, _, err := execute(t, "dispatch", "--class", "demo.Nope", root); err == nil || exitCode(err) != -1 {
		t.Fatalf("unknown class must be a plain error, got %v", err)
	}
}

func TestRenderTablesAlignsWideNames(t *testing.T) {
	var buf bytes.Buffer
	renderTables(&buf, []*dispatch.Table{{
		Class: "demo.Shape",
		Slots: []dispatch.Slot{
			{Index: 0, Name: "面積", Return: "double", Owner: "demo.Shape", Impl: "demo.Shape"},
			{Index: 1, Name: "perimeter", Return: "double", Owner: "demo.Shape"},
		},
	}}, false)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("unexpected rendering:\n%s", buf.String())
	}
	col := func(line string) int { return strings.Index(line, "demo.Shape") }
	wide := strings.Replace(lines[2], "面積", "xxxx", 1)
	if col(wide) != col(lines[3]) {
		t.Fatalf("owner column misaligned:\n%s", buf.String())
	}
	if !strings.HasSuffix(lines[3], "-") {
		t.Fatalf("unimplemented slot must show '-':\n%s", buf.String())
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"tool": "onionc"`) {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestCheckTimings(t *testing.T) {
	root := shapesProject(t)
	_, errOut, _ := execute(t, "check", "--timings", "--jobs", "2", root)
	for _, phase := range []string{"timings:", "register", "load", "check", "total"} {
		if !strings.Contains(errOut, phase) {
			t.Fatalf("missing %q in timings:\n%s", phase, errOut)
		}
	}
}
