// Package project reads the onion.toml project manifest.
package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"onion/internal/conv"
	"onion/internal/trace"
	"onion/internal/types"
)

// Manifest is a decoded onion.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Compiler CompilerConfig    `toml:"compiler"`
	Boxing   map[string]string `toml:"boxing"`
	Trace    TraceConfig       `toml:"trace"`
}

type CompilerConfig struct {
	Root           string   `toml:"root"`
	Sources        []string `toml:"sources"`
	Classpath      []string `toml:"classpath"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Jobs           int      `toml:"jobs"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// Error reports an invalid manifest. Section names the offending table.
type Error struct {
	Path    string
	Section string
	Msg     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: [%s] %s", e.Path, e.Section, e.Msg)
}

// Load decodes and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &Error{Path: path, Section: undecoded[0].String(), Msg: "unknown key"}
	}
	if !meta.IsDefined("compiler") {
		return nil, &Error{Path: path, Section: "compiler", Msg: "missing table"}
	}
	if !meta.IsDefined("compiler", "sources") || len(cfg.Compiler.Sources) == 0 {
		return nil, &Error{Path: path, Section: "compiler", Msg: "missing sources"}
	}
	if cfg.Compiler.Jobs < 0 {
		return nil, &Error{Path: path, Section: "compiler", Msg: "jobs must not be negative"}
	}
	if cfg.Compiler.MaxDiagnostics < 0 {
		return nil, &Error{Path: path, Section: "compiler", Msg: "max_diagnostics must not be negative"}
	}
	m := &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}
	if _, err := m.BoxingTable(); err != nil {
		return nil, err
	}
	if _, err := m.TraceConfig(); err != nil {
		return nil, err
	}
	return m, nil
}

// RootClass returns the configured root class name, "" for the default.
func (m *Manifest) RootClass() string {
	return strings.TrimSpace(m.Config.Compiler.Root)
}

// SourceDirs returns the declaration directories resolved against Root.
func (m *Manifest) SourceDirs() []string {
	return m.resolve(m.Config.Compiler.Sources)
}

// ClasspathDirs returns the library metadata directories resolved against
// Root, in classpath order.
func (m *Manifest) ClasspathDirs() []string {
	return m.resolve(m.Config.Compiler.Classpath)
}

func (m *Manifest) resolve(rel []string) []string {
	out := make([]string, 0, len(rel))
	for _, p := range rel {
		p = filepath.FromSlash(strings.TrimSpace(p))
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		out = append(out, p)
	}
	return out
}

// BoxingTable applies [boxing] overrides to the default wrappers.
func (m *Manifest) BoxingTable() (conv.BoxingTable, error) {
	table := conv.DefaultBoxing()
	kinds := make([]string, 0, len(m.Config.Boxing))
	for k := range m.Config.Boxing {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, name := range kinds {
		k, ok := types.BasicKindByName(name)
		if !ok {
			return table, &Error{Path: m.Path, Section: "boxing", Msg: fmt.Sprintf("%q is not a primitive type", name)}
		}
		next, err := table.With(k, strings.TrimSpace(m.Config.Boxing[name]))
		if err != nil {
			return table, &Error{Path: m.Path, Section: "boxing", Msg: err.Error()}
		}
		table = next
	}
	return table, nil
}

// TraceConfig converts [trace] into a tracer configuration. Relative
// output paths are resolved against Root.
func (m *Manifest) TraceConfig() (trace.Config, error) {
	tc := m.Config.Trace
	level, err := trace.ParseLevel(tc.Level)
	if err != nil {
		return trace.Config{}, &Error{Path: m.Path, Section: "trace", Msg: err.Error()}
	}
	mode, err := trace.ParseMode(tc.Mode)
	if err != nil {
		return trace.Config{}, &Error{Path: m.Path, Section: "trace", Msg: err.Error()}
	}
	format, err := trace.ParseFormat(tc.Format)
	if err != nil {
		return trace.Config{}, &Error{Path: m.Path, Section: "trace", Msg: err.Error()}
	}
	out := strings.TrimSpace(tc.Output)
	if out != "" && out != "-" && !filepath.IsAbs(out) {
		out = filepath.Join(m.Root, filepath.FromSlash(out))
	}
	return trace.Config{Level: level, Mode: mode, Format: format, OutputPath: out}, nil
}
