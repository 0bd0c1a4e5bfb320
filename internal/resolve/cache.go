package resolve

import (
	"strings"

	"onion/internal/symbols"
	"onion/internal/types"
)

type lookupKind uint8

const (
	lookupCtor lookupKind = iota + 1
	lookupMethod
	lookupStatic
)

type cacheKey struct {
	class symbols.ClassID
	kind  lookupKind
	name  string
	args  string
}

func (r *Resolver) cacheKey(c *symbols.ClassSymbol, kind lookupKind, name string, args []types.TypeID) cacheKey {
	return cacheKey{class: c.ID, kind: kind, name: name, args: strings.Join(r.names(args), ",")}
}

func (r *Resolver) cached(key cacheKey) (any, bool) {
	return r.cache.Get(key)
}

func (r *Resolver) remember(key cacheKey, v any) {
	r.cache.Add(key, v)
}
