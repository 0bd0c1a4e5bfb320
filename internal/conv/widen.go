// Package conv implements the conversion rules of the type system: primitive
// widening, the boxing table and reference assignability.
package conv

import "onion/internal/types"

// numeric widening order; char joins it at int.
var widenRank = map[types.Kind]int{
	types.KindByte:   1,
	types.KindShort:  2,
	types.KindInt:    3,
	types.KindLong:   4,
	types.KindFloat:  5,
	types.KindDouble: 6,
}

// Widens reports whether a value of basic kind from converts to kind to
// without a cast: identity, a step up byte < short < int < long < float <
// double, or char to int and anything int widens to.
func Widens(from, to types.Kind) bool {
	if from == to {
		return from.IsBasic()
	}
	if to == types.KindChar {
		return false
	}
	if from == types.KindChar {
		return widenRank[to] >= widenRank[types.KindInt]
	}
	fr, ok := widenRank[from]
	if !ok {
		return false
	}
	tr, ok := widenRank[to]
	return ok && fr < tr
}
