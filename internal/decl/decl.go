// Package decl defines the declaration shape the semantic core consumes.
//
// The parser produces it for classes of the unit being compiled and the
// classpath layer produces the same shape from pre-compiled library metadata.
// Type references are plain names ("int", "java.lang.String", "int[][]");
// the symbol table turns them into types on demand.
package decl

import "onion/internal/source"

// Origin tells where a declaration came from.
type Origin uint8

const (
	OriginSource Origin = iota
	OriginLibrary
)

func (o Origin) String() string {
	if o == OriginLibrary {
		return "library"
	}
	return "source"
}

// Class declares a class or an interface (Modifiers has ModInterface).
type Class struct {
	Name         string
	Modifiers    Modifiers
	Super        string // empty means the root class
	Interfaces   []string
	Fields       []Field
	Methods      []Method
	Constructors []Constructor
	Origin       Origin
	Span         source.Span
}

// IsInterface reports whether the declaration is an interface.
func (c *Class) IsInterface() bool {
	return c != nil && c.Modifiers.Has(ModInterface)
}

type Field struct {
	Name      string
	Type      string
	Modifiers Modifiers
	Span      source.Span
}

type Method struct {
	Name      string
	Params    []string
	Return    string // empty means void
	Modifiers Modifiers
	Span      source.Span
}

type Constructor struct {
	Params    []string
	Modifiers Modifiers
	Span      source.Span
}
