package decl

import (
	"fmt"
	"strings"
)

// Modifiers is a bit set of declaration modifiers.
type Modifiers uint16

const (
	ModInternal Modifiers = 1 << iota
	ModSynchronized
	ModFinal
	ModAbstract
	ModVolatile
	ModStatic
	ModInterface
	ModPublic
	ModProtected
	ModPrivate
)

var modifierNames = [...]struct {
	mod  Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModInternal, "internal"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModAbstract, "abstract"},
	{ModSynchronized, "synchronized"},
	{ModVolatile, "volatile"},
	{ModInterface, "interface"},
}

// Has reports whether every bit of m2 is set in m.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// Strings returns the textual labels in a fixed order.
func (m Modifiers) Strings() []string {
	if m == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	for _, mn := range modifierNames {
		if m&mn.mod != 0 {
			labels = append(labels, mn.name)
		}
	}
	return labels
}

func (m Modifiers) String() string {
	return strings.Join(m.Strings(), " ")
}

// ParseModifiers converts labels into a bit set. Unknown labels and
// conflicting visibilities are rejected.
func ParseModifiers(labels []string) (Modifiers, error) {
	var m Modifiers
	for _, label := range labels {
		found := false
		for _, mn := range modifierNames {
			if mn.name == strings.TrimSpace(label) {
				m |= mn.mod
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown modifier %q", label)
		}
	}
	visibility := 0
	for _, v := range []Modifiers{ModPublic, ModProtected, ModPrivate, ModInternal} {
		if m&v != 0 {
			visibility++
		}
	}
	if visibility > 1 {
		return 0, fmt.Errorf("conflicting visibility modifiers: %s", m)
	}
	if m.Has(ModFinal | ModAbstract) {
		return 0, fmt.Errorf("modifiers final and abstract are exclusive")
	}
	return m, nil
}
