package resolve

import "onion/internal/symbols"

// FindField looks name up in c, then its superclass chain, then the
// interfaces of the whole chain.
func (r *Resolver) FindField(c *symbols.ClassSymbol, name string) (*symbols.FieldSymbol, error) {
	classes, err := r.hierarchy(c, true)
	if err != nil {
		return nil, err
	}
	for _, cls := range classes {
		fields, err := r.table.Fields(cls)
		if err != nil {
			return nil, err
		}
		for _, f := range fields {
			if f.Name == name {
				return f, nil
			}
		}
	}
	return nil, &Error{Kind: ErrNoSuchField, Class: c.Name, Member: name, Span: c.Span}
}
