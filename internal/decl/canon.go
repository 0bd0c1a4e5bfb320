package decl

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical returns the registry key for a qualified class name: trimmed
// and NFC-normalised, so visually identical names written with different
// code point sequences denote one class. Providers store declarations under
// this key and the class table looks them up by it.
func Canonical(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
