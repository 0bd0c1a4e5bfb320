// Package sema builds typed IR for the primitive operations of the language
// (coercion, construction, invocation, field access) and checks class
// declarations against their hierarchy.
package sema

import (
	"onion/internal/conv"
	"onion/internal/ir"
	"onion/internal/resolve"
	"onion/internal/source"
	"onion/internal/symbols"
	"onion/internal/types"
)

// Checker is stateless apart from the resolver it wraps and may be shared
// by concurrent workers.
type Checker struct {
	res   *resolve.Resolver
	table *symbols.Table
}

func NewChecker(res *resolve.Resolver) *Checker {
	return &Checker{res: res, table: res.Table()}
}

func (c *Checker) Resolver() *resolve.Resolver { return c.res }

func (c *Checker) mismatch(from, to types.TypeID, span source.Span) error {
	return &Error{Kind: ErrTypeMismatch, From: c.table.TypeName(from), To: c.table.TypeName(to), Span: span}
}

// Coerce converts expr to target with the implicit conversion conv.Classify
// selects, inserting casts and boxing constructions as needed.
func (c *Checker) Coerce(expr *ir.Expr, target types.TypeID) (*ir.Expr, error) {
	switch conv.Classify(c.table, c.res.Boxing(), expr.Type(), target) {
	case conv.ConvIdentity:
		return expr, nil
	case conv.ConvWidening:
		return ir.NewCast(expr, target, ir.CastWidening, expr.Span()), nil
	case conv.ConvReference:
		return c.retype(expr, target, ir.CastReference), nil
	case conv.ConvBoxing:
		boxed, err := c.res.Box(expr)
		if err != nil {
			return nil, err
		}
		return c.retype(boxed, target, ir.CastReference), nil
	case conv.ConvUnboxing:
		unboxed, err := c.res.Unbox(expr)
		if err != nil {
			return nil, err
		}
		return c.retype(unboxed, target, ir.CastWidening), nil
	default:
		return nil, c.mismatch(expr.Type(), target, expr.Span())
	}
}

func (c *Checker) retype(expr *ir.Expr, target types.TypeID, kind ir.CastKind) *ir.Expr {
	if expr.Type() == target {
		return expr
	}
	return ir.NewCast(expr, target, kind, expr.Span())
}

func (c *Checker) coerceArgs(args []*ir.Expr, params []types.TypeID) ([]*ir.Expr, error) {
	out := make([]*ir.Expr, len(args))
	for i, a := range args {
		coerced, err := c.Coerce(a, params[i])
		if err != nil {
			return nil, err
		}
		out[i] = coerced
	}
	return out, nil
}

func argTypes(args []*ir.Expr) []types.TypeID {
	out := make([]types.TypeID, len(args))
	for i, a := range args {
		out[i] = a.Type()
	}
	return out
}
