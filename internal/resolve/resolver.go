// Package resolve answers member questions about loaded classes: boxing and
// unboxing through wrapper classes, the interface method closure used for
// dispatch, overload resolution and field lookup.
package resolve

import (
	"fmt"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"onion/internal/conv"
	"onion/internal/symbols"
	"onion/internal/trace"
	"onion/internal/types"
)

// DefaultCacheSize bounds the overload resolution cache.
const DefaultCacheSize = 4096

// Options configures a Resolver.
type Options struct {
	Boxing    conv.BoxingTable // zero value means conv.DefaultBoxing
	CacheSize int
	Tracer    trace.Tracer
}

// Resolver is safe for concurrent use; it shares the table of its run.
type Resolver struct {
	table  *symbols.Table
	boxing conv.BoxingTable
	tracer trace.Tracer

	mu     sync.Mutex
	ifaces map[symbols.ClassID][]*symbols.MethodSymbol
	cache  *lru.Cache
}

// New returns a resolver over table, filling unset options with defaults.
func New(table *symbols.Table, opts Options) *Resolver {
	if opts.Boxing == (conv.BoxingTable{}) {
		opts.Boxing = conv.DefaultBoxing()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	cache, err := lru.New(opts.CacheSize)
	if err != nil {
		panic(fmt.Errorf("resolve: overload cache: %w", err))
	}
	return &Resolver{
		table:  table,
		boxing: opts.Boxing,
		tracer: opts.Tracer,
		ifaces: make(map[symbols.ClassID][]*symbols.MethodSymbol),
		cache:  cache,
	}
}

func (r *Resolver) Table() *symbols.Table            { return r.table }
func (r *Resolver) Boxing() conv.BoxingTable         { return r.boxing }
func (r *Resolver) types() *types.Interner           { return r.table.Types() }
func (r *Resolver) name(id types.TypeID) string      { return r.table.TypeName(id) }
func (r *Resolver) names(ids []types.TypeID) []string { return r.table.TypeNames(ids) }

// Assignable reports whether right is assignable to left.
func (r *Resolver) Assignable(left, right types.TypeID) bool {
	return conv.IsAssignable(r.table, left, right)
}

// Implementation returns the concrete method that implements m for
// instances of c: the first non-abstract instance method with m's name and
// parameter types found walking c's superclass chain, provided its return
// type is compatible with m's. It returns nil when c leaves m abstract.
func (r *Resolver) Implementation(c *symbols.ClassSymbol, m *symbols.MethodSymbol) (*symbols.MethodSymbol, error) {
	cand, err := r.Overrider(c, m)
	if err != nil || cand == nil {
		return nil, err
	}
	if !r.ReturnCompatible(m.Return, cand.Return) {
		return nil, nil
	}
	return cand, nil
}

// Overrider is Implementation without the return type check.
func (r *Resolver) Overrider(c *symbols.ClassSymbol, m *symbols.MethodSymbol) (*symbols.MethodSymbol, error) {
	chain, err := r.hierarchy(c, false)
	if err != nil {
		return nil, err
	}
	for _, cls := range chain {
		methods, err := r.table.Methods(cls)
		if err != nil {
			return nil, err
		}
		for _, cand := range methods {
			if cand.Name == m.Name && !cand.IsAbstract() && !cand.IsStatic() && slices.Equal(cand.Params, m.Params) {
				return cand, nil
			}
		}
	}
	return nil, nil
}

// ReturnCompatible reports whether a method returning got may stand in for
// one declared to return want. Basic and void returns must match exactly;
// reference returns may narrow.
func (r *Resolver) ReturnCompatible(want, got types.TypeID) bool {
	if want == got {
		return true
	}
	in := r.types()
	if !in.KindOf(want).IsReference() || !in.KindOf(got).IsReference() {
		return false
	}
	return conv.IsAssignable(r.table, want, got)
}
