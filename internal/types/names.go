package types

import (
	"strconv"
	"strings"
)

// SplitArrayName splits "int[][]" into ("int", 2). Whitespace around the
// brackets is ignored.
func SplitArrayName(name string) (base string, dims uint32) {
	base = strings.TrimSpace(name)
	for strings.HasSuffix(base, "[]") {
		base = strings.TrimSpace(strings.TrimSuffix(base, "[]"))
		dims++
	}
	return base, dims
}

// ArrayName renders an element name with dims bracket pairs.
func ArrayName(elem string, dims uint32) string {
	var sb strings.Builder
	sb.WriteString(elem)
	for range dims {
		sb.WriteString("[]")
	}
	return sb.String()
}

// Namer renders class names for Interner.Name.
type Namer func(ClassID) string

// Name renders id the way it is written in declarations. Class names are
// produced by namer; a nil namer prints "class#N".
func (in *Interner) Name(id TypeID, namer Namer) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindClass:
		if namer != nil {
			return namer(tt.Class)
		}
		return "class#" + strconv.FormatUint(uint64(tt.Class), 10)
	case KindArray:
		return ArrayName(in.Name(tt.Elem, namer), tt.Dims)
	case KindUnresolved:
		return tt.Name
	default:
		return tt.Kind.String()
	}
}
