package symbols

import (
	"onion/internal/decl"
	"onion/internal/source"
	"onion/internal/types"
)

// ClassSymbol is the single resolved instance of a class or interface.
// Symbols are immutable once published by the table; interfaces and members
// are reached through Table accessors, which resolve them lazily.
type ClassSymbol struct {
	ID        ClassID
	Name      string
	Modifiers decl.Modifiers
	Type      types.TypeID
	Super     ClassID // NoClassID only for the root class
	Origin    decl.Origin
	Span      source.Span
}

func (c *ClassSymbol) IsInterface() bool { return c != nil && c.Modifiers.Has(decl.ModInterface) }
func (c *ClassSymbol) IsFinal() bool     { return c != nil && c.Modifiers.Has(decl.ModFinal) }

// IsAbstract is true for abstract classes and for interfaces.
func (c *ClassSymbol) IsAbstract() bool {
	return c != nil && (c.Modifiers.Has(decl.ModAbstract) || c.Modifiers.Has(decl.ModInterface))
}

type MethodSymbol struct {
	ID        MethodID
	Name      string
	Params    []types.TypeID
	Return    types.TypeID
	Modifiers decl.Modifiers
	Owner     ClassID
	Span      source.Span
}

func (m *MethodSymbol) IsStatic() bool   { return m.Modifiers.Has(decl.ModStatic) }
func (m *MethodSymbol) IsAbstract() bool { return m.Modifiers.Has(decl.ModAbstract) }

type ConstructorSymbol struct {
	ID        CtorID
	Params    []types.TypeID
	Modifiers decl.Modifiers
	Owner     ClassID
	Span      source.Span
}

type FieldSymbol struct {
	ID        FieldID
	Name      string
	Type      types.TypeID
	Modifiers decl.Modifiers
	Owner     ClassID
	Span      source.Span
}

func (f *FieldSymbol) IsStatic() bool { return f.Modifiers.Has(decl.ModStatic) }
