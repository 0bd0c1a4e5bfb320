package conv

import (
	"onion/internal/symbols"
	"onion/internal/types"
)

// Conversion is the kind of implicit conversion from one type to another.
type Conversion uint8

const (
	ConvNone Conversion = iota
	ConvIdentity
	ConvWidening
	ConvReference
	ConvBoxing
	ConvUnboxing
)

func (c Conversion) String() string {
	switch c {
	case ConvIdentity:
		return "identity"
	case ConvWidening:
		return "widening"
	case ConvReference:
		return "reference"
	case ConvBoxing:
		return "boxing"
	case ConvUnboxing:
		return "unboxing"
	default:
		return "none"
	}
}

// Classify picks the implicit conversion that turns a from-typed value into
// a to-typed one. Boxing applies when the wrapper of from is assignable to
// to; unboxing when from is a wrapper whose basic kind widens to to.
func Classify(table *symbols.Table, boxing BoxingTable, from, to types.TypeID) Conversion {
	if from == to {
		return ConvIdentity
	}
	in := table.Types()
	fk, tk := in.KindOf(from), in.KindOf(to)
	switch {
	case fk.IsBasic() && tk.IsBasic():
		if Widens(fk, tk) {
			return ConvWidening
		}
	case fk.IsReference() && tk.IsReference():
		if IsAssignable(table, to, from) {
			return ConvReference
		}
	case fk.IsBasic() && tk == types.KindClass:
		name, ok := boxing.Wrapper(fk)
		if !ok {
			return ConvNone
		}
		wrapper, found := table.Lookup(name)
		if !found {
			var err error
			if wrapper, err = table.Load(name); err != nil {
				return ConvNone
			}
		}
		if IsAssignable(table, to, wrapper.Type) {
			return ConvBoxing
		}
	case fk == types.KindClass && tk.IsBasic():
		id, _ := in.ClassOf(from)
		c := table.Class(id)
		if c == nil {
			return ConvNone
		}
		if k, ok := boxing.Unwrapped(c.Name); ok && Widens(k, tk) {
			return ConvUnboxing
		}
	}
	return ConvNone
}
