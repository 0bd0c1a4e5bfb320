package conv

import (
	"fmt"

	"onion/internal/types"
)

// BoxingTable maps each boxable basic kind to its wrapper class name. It is
// a value type; With returns a modified copy.
type BoxingTable struct {
	wrappers [types.KindDouble + 1]string
}

// DefaultBoxing returns the java.lang wrappers.
func DefaultBoxing() BoxingTable {
	var b BoxingTable
	b.wrappers[types.KindBoolean] = "java.lang.Boolean"
	b.wrappers[types.KindByte] = "java.lang.Byte"
	b.wrappers[types.KindShort] = "java.lang.Short"
	b.wrappers[types.KindChar] = "java.lang.Character"
	b.wrappers[types.KindInt] = "java.lang.Integer"
	b.wrappers[types.KindLong] = "java.lang.Long"
	b.wrappers[types.KindFloat] = "java.lang.Float"
	b.wrappers[types.KindDouble] = "java.lang.Double"
	return b
}

// With returns a copy with the wrapper of k replaced.
func (b BoxingTable) With(k types.Kind, wrapper string) (BoxingTable, error) {
	if !k.IsBasic() || k == types.KindVoid {
		return b, fmt.Errorf("conv: %s cannot be boxed", k)
	}
	if wrapper == "" {
		return b, fmt.Errorf("conv: empty wrapper name for %s", k)
	}
	b.wrappers[k] = wrapper
	return b, nil
}

// Wrapper returns the wrapper class name for k; ok is false for void and
// non-basic kinds.
func (b BoxingTable) Wrapper(k types.Kind) (string, bool) {
	if !k.IsBasic() || k == types.KindVoid {
		return "", false
	}
	return b.wrappers[k], true
}

// Unwrapped returns the basic kind whose wrapper is name.
func (b BoxingTable) Unwrapped(name string) (types.Kind, bool) {
	for _, k := range types.BasicKinds {
		if k != types.KindVoid && b.wrappers[k] == name {
			return k, true
		}
	}
	return types.KindInvalid, false
}
