// Package ir defines the typed intermediate representation handed to the
// code generator. Nodes are immutable: fields are private, constructors copy
// their operand slices and accessors return copies.
package ir

import (
	"onion/internal/source"
	"onion/internal/symbols"
	"onion/internal/types"
)

// ExprKind enumerates typed expression kinds.
type ExprKind uint8

const (
	// ExprLiteral is a basic or string literal kept as source text.
	ExprLiteral ExprKind = iota
	// ExprNull is the null literal.
	ExprNull
	// ExprThis refers to the receiver of the enclosing method.
	ExprThis
	// ExprLocal reads a local variable or parameter.
	ExprLocal
	// ExprNew constructs an object through a resolved constructor.
	ExprNew
	// ExprCall is a virtual method call; operand 0 is the receiver.
	ExprCall
	// ExprStaticCall calls a static method of a class.
	ExprStaticCall
	// ExprFieldRef reads an instance field; operand 0 is the receiver.
	ExprFieldRef
	// ExprStaticFieldRef reads a static field.
	ExprStaticFieldRef
	// ExprCast converts its operand by widening or reference conversion.
	ExprCast
	// ExprArrayLength reads the length of an array.
	ExprArrayLength
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprNull:
		return "Null"
	case ExprThis:
		return "This"
	case ExprLocal:
		return "Local"
	case ExprNew:
		return "New"
	case ExprCall:
		return "Call"
	case ExprStaticCall:
		return "StaticCall"
	case ExprFieldRef:
		return "FieldRef"
	case ExprStaticFieldRef:
		return "StaticFieldRef"
	case ExprCast:
		return "Cast"
	case ExprArrayLength:
		return "ArrayLength"
	default:
		return "Unknown"
	}
}

// CastKind tells the backend which conversion a cast performs.
type CastKind uint8

const (
	CastWidening CastKind = iota + 1
	CastReference
)

func (k CastKind) String() string {
	if k == CastWidening {
		return "widening"
	}
	return "reference"
}

// Expr is a typed expression node.
type Expr struct {
	kind     ExprKind
	typ      types.TypeID
	span     source.Span
	operands []*Expr
	text     string       // literal text or local name
	owner    types.TypeID // class of static members
	method   *symbols.MethodSymbol
	ctor     *symbols.ConstructorSymbol
	field    *symbols.FieldSymbol
	cast     CastKind
}

func copyExprs(in []*Expr) []*Expr {
	if len(in) == 0 {
		return nil
	}
	return append([]*Expr(nil), in...)
}

// NewLiteral builds a literal of basic or string type.
func NewLiteral(t types.TypeID, text string, span source.Span) *Expr {
	return &Expr{kind: ExprLiteral, typ: t, text: text, span: span}
}

// NewNull builds the null literal; t is the interner's null type.
func NewNull(t types.TypeID, span source.Span) *Expr {
	return &Expr{kind: ExprNull, typ: t, span: span}
}

func NewThis(t types.TypeID, span source.Span) *Expr {
	return &Expr{kind: ExprThis, typ: t, span: span}
}

func NewLocal(name string, t types.TypeID, span source.Span) *Expr {
	return &Expr{kind: ExprLocal, typ: t, text: name, span: span}
}

// NewObject builds a construction of class type t through ctor.
func NewObject(t types.TypeID, ctor *symbols.ConstructorSymbol, args []*Expr, span source.Span) *Expr {
	return &Expr{kind: ExprNew, typ: t, ctor: ctor, operands: copyExprs(args), span: span}
}

// NewCall builds a virtual call of m on recv.
func NewCall(recv *Expr, m *symbols.MethodSymbol, args []*Expr, span source.Span) *Expr {
	ops := make([]*Expr, 0, len(args)+1)
	ops = append(ops, recv)
	ops = append(ops, args...)
	return &Expr{kind: ExprCall, typ: m.Return, method: m, operands: ops, span: span}
}

// NewStaticCall builds a call of static method m declared on class type owner.
func NewStaticCall(owner types.TypeID, m *symbols.MethodSymbol, args []*Expr, span source.Span) *Expr {
	return &Expr{kind: ExprStaticCall, typ: m.Return, owner: owner, method: m, operands: copyExprs(args), span: span}
}

func NewFieldRef(recv *Expr, f *symbols.FieldSymbol, span source.Span) *Expr {
	return &Expr{kind: ExprFieldRef, typ: f.Type, field: f, operands: []*Expr{recv}, span: span}
}

func NewStaticFieldRef(owner types.TypeID, f *symbols.FieldSymbol, span source.Span) *Expr {
	return &Expr{kind: ExprStaticFieldRef, typ: f.Type, owner: owner, field: f, span: span}
}

// NewCast converts operand to target.
func NewCast(operand *Expr, target types.TypeID, kind CastKind, span source.Span) *Expr {
	return &Expr{kind: ExprCast, typ: target, cast: kind, operands: []*Expr{operand}, span: span}
}

// NewArrayLength reads arr.length; intType is the interner's int.
func NewArrayLength(arr *Expr, intType types.TypeID, span source.Span) *Expr {
	return &Expr{kind: ExprArrayLength, typ: intType, operands: []*Expr{arr}, span: span}
}

func (e *Expr) Kind() ExprKind     { return e.kind }
func (e *Expr) Type() types.TypeID { return e.typ }
func (e *Expr) Span() source.Span  { return e.span }

// Operands returns a copy of the child expressions.
func (e *Expr) Operands() []*Expr { return copyExprs(e.operands) }

// Receiver returns the receiver of calls and instance field reads.
func (e *Expr) Receiver() *Expr {
	switch e.kind {
	case ExprCall, ExprFieldRef:
		return e.operands[0]
	}
	return nil
}

// Args returns a copy of call or construction arguments.
func (e *Expr) Args() []*Expr {
	switch e.kind {
	case ExprCall:
		return copyExprs(e.operands[1:])
	case ExprNew, ExprStaticCall:
		return copyExprs(e.operands)
	}
	return nil
}

// Operand returns the single child of casts and array length reads.
func (e *Expr) Operand() *Expr {
	if e.kind == ExprCast || e.kind == ExprArrayLength {
		return e.operands[0]
	}
	return nil
}

func (e *Expr) Text() string                            { return e.text }
func (e *Expr) Owner() types.TypeID                     { return e.owner }
func (e *Expr) Method() *symbols.MethodSymbol           { return e.method }
func (e *Expr) Constructor() *symbols.ConstructorSymbol { return e.ctor }
func (e *Expr) Field() *symbols.FieldSymbol             { return e.field }
func (e *Expr) Cast() CastKind                          { return e.cast }
