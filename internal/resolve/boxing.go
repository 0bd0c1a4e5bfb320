package resolve

import "onion/internal/ir"

// Box wraps a basic-typed expression into a construction of its wrapper
// class. The wrapper must declare exactly one constructor whose single
// parameter is the expression's own type.
func (r *Resolver) Box(expr *ir.Expr) (*ir.Expr, error) {
	in := r.types()
	k := in.KindOf(expr.Type())
	wrapperName, ok := r.boxing.Wrapper(k)
	if !ok {
		return nil, &Error{Kind: ErrUnboxableType, Type: r.name(expr.Type()), Span: expr.Span()}
	}
	wrapper, err := r.table.Load(wrapperName)
	if err != nil {
		return nil, err
	}
	ctors, err := r.table.Constructors(wrapper)
	if err != nil {
		return nil, err
	}
	var matches int
	var pick int
	for i, c := range ctors {
		if len(c.Params) == 1 && c.Params[0] == expr.Type() {
			matches++
			pick = i
		}
	}
	if matches != 1 {
		return nil, &Error{
			Kind:  ErrNoMatchingWrapperConstructor,
			Class: wrapper.Name,
			Type:  r.name(expr.Type()),
			Span:  expr.Span(),
		}
	}
	return ir.NewObject(wrapper.Type, ctors[pick], []*ir.Expr{expr}, expr.Span()), nil
}

// Unbox turns a wrapper-typed expression into a call of its <kind>Value()
// accessor, e.g. intValue() for the int wrapper.
func (r *Resolver) Unbox(expr *ir.Expr) (*ir.Expr, error) {
	in := r.types()
	id, ok := in.ClassOf(expr.Type())
	wrapper := r.table.Class(id)
	if !ok || wrapper == nil {
		return nil, &Error{Kind: ErrUnboxableType, Type: r.name(expr.Type()), Span: expr.Span()}
	}
	k, ok := r.boxing.Unwrapped(wrapper.Name)
	if !ok {
		return nil, &Error{Kind: ErrUnboxableType, Type: wrapper.Name, Span: expr.Span()}
	}
	accessor := k.String() + "Value"
	methods, err := r.table.Methods(wrapper)
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		if m.Name == accessor && len(m.Params) == 0 && !m.IsStatic() && m.Return == in.Basic(k) {
			return ir.NewCall(expr, m, nil, expr.Span()), nil
		}
	}
	return nil, &Error{
		Kind:   ErrNoUnboxingMethod,
		Class:  wrapper.Name,
		Member: accessor,
		Type:   k.String(),
		Span:   expr.Span(),
	}
}
