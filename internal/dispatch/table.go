// Package dispatch lays out per-class dispatch tables from the interface
// method closure and serialises them for the code generator.
package dispatch

import (
	"fmt"

	"fortio.org/safecast"

	"onion/internal/resolve"
	"onion/internal/symbols"
)

// Slot is one entry of a dispatch table. Impl is the class whose method
// implements the slot, empty when the class leaves it abstract.
type Slot struct {
	Index  uint32   `msgpack:"index"`
	Name   string   `msgpack:"name"`
	Params []string `msgpack:"params"`
	Return string   `msgpack:"return"`
	Owner  string   `msgpack:"owner"`
	Impl   string   `msgpack:"impl,omitempty"`
}

// Table is the dispatch table of one class.
type Table struct {
	Class     string `msgpack:"class"`
	Interface bool   `msgpack:"interface"`
	Abstract  bool   `msgpack:"abstract"`
	Slots     []Slot `msgpack:"slots"`
}

// Build assigns one slot per interface method of c, in closure order.
func Build(r *resolve.Resolver, c *symbols.ClassSymbol) (*Table, error) {
	methods, err := r.InterfaceMethods(c)
	if err != nil {
		return nil, err
	}
	table := r.Table()
	out := &Table{
		Class:     c.Name,
		Interface: c.IsInterface(),
		Abstract:  c.IsAbstract(),
		Slots:     make([]Slot, 0, len(methods)),
	}
	for i, m := range methods {
		idx, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("dispatch slot overflow: %w", err))
		}
		slot := Slot{
			Index:  idx,
			Name:   m.Name,
			Params: table.TypeNames(m.Params),
			Return: table.TypeName(m.Return),
			Owner:  table.Class(m.Owner).Name,
		}
		if !c.IsInterface() {
			impl, err := r.Implementation(c, m)
			if err != nil {
				return nil, err
			}
			if impl != nil {
				slot.Impl = table.Class(impl.Owner).Name
			}
		}
		out.Slots = append(out.Slots, slot)
	}
	return out, nil
}

// Signature renders the slot as name(params)return.
func (s Slot) Signature() string {
	sig := s.Name + "("
	for i, p := range s.Params {
		if i > 0 {
			sig += ", "
		}
		sig += p
	}
	return sig + ") " + s.Return
}
