package conv

import (
	"onion/internal/symbols"
	"onion/internal/types"
)

// IsSubclass reports whether sub is super or inherits from it through the
// superclass chain or implemented interfaces. Interfaces that fail to load
// are skipped; their errors surface when the hierarchy is checked.
func IsSubclass(table *symbols.Table, sub, super types.ClassID) bool {
	if sub == super {
		return sub.IsValid()
	}
	visited := make(map[types.ClassID]struct{})
	stack := []types.ClassID{sub}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[id]; seen || !id.IsValid() {
			continue
		}
		visited[id] = struct{}{}
		if id == super {
			return true
		}
		c := table.Class(id)
		if c == nil {
			continue
		}
		stack = append(stack, c.Super)
		if ifaces, err := table.Interfaces(c); err == nil {
			stack = append(stack, ifaces...)
		}
	}
	return false
}

// IsAssignable reports whether a value of type right may be stored into a
// location of type left without an explicit conversion.
func IsAssignable(table *symbols.Table, left, right types.TypeID) bool {
	if left == right {
		return left != types.NoTypeID
	}
	in := table.Types()
	lt, lok := in.Lookup(left)
	rt, rok := in.Lookup(right)
	if !lok || !rok {
		return false
	}
	switch {
	case lt.Kind.IsBasic():
		return rt.Kind.IsBasic() && Widens(rt.Kind, lt.Kind)
	case lt.Kind == types.KindClass:
		switch rt.Kind {
		case types.KindNull:
			return true
		case types.KindClass:
			return IsSubclass(table, rt.Class, lt.Class)
		case types.KindArray:
			return table.IsRoot(lt.Class)
		}
	case lt.Kind == types.KindArray:
		switch rt.Kind {
		case types.KindNull:
			return true
		case types.KindArray:
			if lt.Dims != rt.Dims {
				return false
			}
			if in.IsBasic(lt.Elem) || in.IsBasic(rt.Elem) {
				return lt.Elem == rt.Elem
			}
			return IsAssignable(table, lt.Elem, rt.Elem)
		}
	}
	return false
}
