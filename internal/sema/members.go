package sema

import (
	"onion/internal/ir"
	"onion/internal/source"
	"onion/internal/symbols"
	"onion/internal/types"
)

// New builds `new className(args...)`.
func (c *Checker) New(className string, args []*ir.Expr, span source.Span) (*ir.Expr, error) {
	cls, err := c.table.Load(className)
	if err != nil {
		return nil, err
	}
	ctor, err := c.res.FindConstructor(cls, argTypes(args))
	if err != nil {
		return nil, err
	}
	coerced, err := c.coerceArgs(args, ctor.Params)
	if err != nil {
		return nil, err
	}
	return ir.NewObject(cls.Type, ctor, coerced, span), nil
}

// receiverClass returns the class whose members a receiver of type t sees;
// arrays see the root class.
func (c *Checker) receiverClass(t types.TypeID, span source.Span) (*symbols.ClassSymbol, error) {
	in := c.table.Types()
	switch in.KindOf(t) {
	case types.KindClass:
		id, _ := in.ClassOf(t)
		if cls := c.table.Class(id); cls != nil {
			return cls, nil
		}
	case types.KindArray:
		return c.table.Root()
	}
	root, err := c.table.Root()
	if err != nil {
		return nil, err
	}
	return nil, c.mismatch(t, root.Type, span)
}

// Invoke builds a virtual call recv.name(args...).
func (c *Checker) Invoke(recv *ir.Expr, name string, args []*ir.Expr, span source.Span) (*ir.Expr, error) {
	cls, err := c.receiverClass(recv.Type(), recv.Span())
	if err != nil {
		return nil, err
	}
	m, err := c.res.FindMethod(cls, name, argTypes(args))
	if err != nil {
		return nil, err
	}
	if m.IsStatic() {
		return nil, c.staticMismatch(m.Owner, m.Name, true, span)
	}
	coerced, err := c.coerceArgs(args, m.Params)
	if err != nil {
		return nil, err
	}
	if span.Empty() {
		span = recv.Span()
		for _, a := range args {
			span = span.Cover(a.Span())
		}
	}
	return ir.NewCall(recv, m, coerced, span), nil
}

// InvokeStatic builds className.name(args...).
func (c *Checker) InvokeStatic(className, name string, args []*ir.Expr, span source.Span) (*ir.Expr, error) {
	cls, err := c.table.Load(className)
	if err != nil {
		return nil, err
	}
	m, err := c.res.FindStaticMethod(cls, name, argTypes(args))
	if err != nil {
		return nil, err
	}
	if !m.IsStatic() {
		return nil, c.staticMismatch(m.Owner, m.Name, false, span)
	}
	coerced, err := c.coerceArgs(args, m.Params)
	if err != nil {
		return nil, err
	}
	return ir.NewStaticCall(cls.Type, m, coerced, span), nil
}

// FieldRef builds recv.name; on arrays only length is available.
func (c *Checker) FieldRef(recv *ir.Expr, name string, span source.Span) (*ir.Expr, error) {
	in := c.table.Types()
	if in.KindOf(recv.Type()) == types.KindArray && name == "length" {
		return ir.NewArrayLength(recv, in.Basic(types.KindInt), span), nil
	}
	cls, err := c.receiverClass(recv.Type(), recv.Span())
	if err != nil {
		return nil, err
	}
	f, err := c.res.FindField(cls, name)
	if err != nil {
		return nil, err
	}
	if f.IsStatic() {
		return nil, c.staticMismatch(f.Owner, f.Name, true, span)
	}
	return ir.NewFieldRef(recv, f, span), nil
}

// StaticFieldRef builds className.name.
func (c *Checker) StaticFieldRef(className, name string, span source.Span) (*ir.Expr, error) {
	cls, err := c.table.Load(className)
	if err != nil {
		return nil, err
	}
	f, err := c.res.FindField(cls, name)
	if err != nil {
		return nil, err
	}
	if !f.IsStatic() {
		return nil, c.staticMismatch(f.Owner, f.Name, false, span)
	}
	return ir.NewStaticFieldRef(cls.Type, f, span), nil
}

func (c *Checker) staticMismatch(owner symbols.ClassID, member string, static bool, span source.Span) error {
	name := member
	if cls := c.table.Class(owner); cls != nil {
		name = cls.Name + "." + member
	}
	return &Error{Kind: ErrStaticMismatch, Member: name, Static: static, Span: span}
}
