package classpath

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"onion/internal/decl"
	"onion/internal/source"
)

// metadataFile mirrors one TOML metadata or declaration file:
//
//	[[class]]
//	name = "java.lang.Integer"
//	modifiers = ["public", "final"]
//	super = "java.lang.Number"
//	interfaces = ["java.lang.Comparable"]
//	  [[class.constructor]]
//	  params = ["int"]
//	  [[class.method]]
//	  name = "intValue"
//	  return = "int"
type metadataFile struct {
	Class []classEntry `toml:"class"`
}

type classEntry struct {
	Name         string        `toml:"name"`
	Modifiers    []string      `toml:"modifiers"`
	Super        string        `toml:"super"`
	Interfaces   []string      `toml:"interfaces"`
	Span         []uint32      `toml:"span"`
	Fields       []fieldEntry  `toml:"field"`
	Methods      []methodEntry `toml:"method"`
	Constructors []ctorEntry   `toml:"constructor"`
}

type fieldEntry struct {
	Name      string   `toml:"name"`
	Type      string   `toml:"type"`
	Modifiers []string `toml:"modifiers"`
	Span      []uint32 `toml:"span"`
}

type methodEntry struct {
	Name      string   `toml:"name"`
	Params    []string `toml:"params"`
	Return    string   `toml:"return"`
	Modifiers []string `toml:"modifiers"`
	Span      []uint32 `toml:"span"`
}

type ctorEntry struct {
	Params    []string `toml:"params"`
	Modifiers []string `toml:"modifiers"`
	Span      []uint32 `toml:"span"`
}

// ParseMetadata decodes a TOML metadata file. Unknown keys are rejected so a
// typo never silently drops a member.
func ParseMetadata(file source.FileID, data string, origin decl.Origin) ([]*decl.Class, error) {
	var mf metadataFile
	meta, err := toml.Decode(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	classes := make([]*decl.Class, 0, len(mf.Class))
	for i := range mf.Class {
		c, err := mf.Class[i].toDecl(file, origin)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

func (e *classEntry) toDecl(file source.FileID, origin decl.Origin) (*decl.Class, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return nil, fmt.Errorf("[[class]] without name")
	}
	mods, err := decl.ParseModifiers(e.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", name, err)
	}
	span, err := toSpan(file, e.Span)
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", name, err)
	}
	c := &decl.Class{
		Name:       name,
		Modifiers:  mods,
		Super:      strings.TrimSpace(e.Super),
		Interfaces: e.Interfaces,
		Origin:     origin,
		Span:       span,
	}
	for _, f := range e.Fields {
		fm, err := decl.ParseModifiers(f.Modifiers)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", name, f.Name, err)
		}
		if f.Name == "" || f.Type == "" {
			return nil, fmt.Errorf("class %s: field needs name and type", name)
		}
		fs, err := toSpan(file, f.Span)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", name, f.Name, err)
		}
		c.Fields = append(c.Fields, decl.Field{Name: f.Name, Type: f.Type, Modifiers: fm, Span: fs})
	}
	for _, m := range e.Methods {
		mm, err := decl.ParseModifiers(m.Modifiers)
		if err != nil {
			return nil, fmt.Errorf("method %s.%s: %w", name, m.Name, err)
		}
		if m.Name == "" {
			return nil, fmt.Errorf("class %s: method without name", name)
		}
		ms, err := toSpan(file, m.Span)
		if err != nil {
			return nil, fmt.Errorf("method %s.%s: %w", name, m.Name, err)
		}
		c.Methods = append(c.Methods, decl.Method{
			Name: m.Name, Params: m.Params, Return: m.Return, Modifiers: mm, Span: ms,
		})
	}
	for _, k := range e.Constructors {
		km, err := decl.ParseModifiers(k.Modifiers)
		if err != nil {
			return nil, fmt.Errorf("constructor of %s: %w", name, err)
		}
		ks, err := toSpan(file, k.Span)
		if err != nil {
			return nil, fmt.Errorf("constructor of %s: %w", name, err)
		}
		c.Constructors = append(c.Constructors, decl.Constructor{Params: k.Params, Modifiers: km, Span: ks})
	}
	return c, nil
}

func toSpan(file source.FileID, raw []uint32) (source.Span, error) {
	switch len(raw) {
	case 0:
		return source.Span{File: file}, nil
	case 2:
		if raw[1] < raw[0] {
			return source.Span{}, fmt.Errorf("span end %d before start %d", raw[1], raw[0])
		}
		return source.Span{File: file, Start: raw[0], End: raw[1]}, nil
	default:
		return source.Span{}, fmt.Errorf("span must be [start, end], got %d values", len(raw))
	}
}
