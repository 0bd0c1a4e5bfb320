// Package driver runs the semantic core over a set of compilation units:
// it loads every declared class, checks units in parallel and collects
// per-unit diagnostics and dispatch tables.
package driver

import (
	"onion/internal/classpath"
	"onion/internal/observ"
	"onion/internal/resolve"
	"onion/internal/sema"
	"onion/internal/symbols"
	"onion/internal/trace"
	"onion/internal/types"
)

// Compilation is the context of one run. Nothing in it is shared between
// runs.
type Compilation struct {
	Types    *types.Interner
	Table    *symbols.Table
	Resolver *resolve.Resolver
	Checker  *sema.Checker
	Tracer   trace.Tracer
	Timer    *observ.Timer

	sources *classpath.Sources
	opts    Options
}

func New(opts Options) *Compilation {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	if opts.Timer == nil {
		opts.Timer = observ.NewTimer()
	}
	// пустой Sources не может вернуть ошибку
	sources, _ := classpath.NewSources()
	in := types.NewInterner()
	table := symbols.NewTable(symbols.Options{
		Loader: classpath.Chain{sources, opts.Classpath},
		Types:  in,
		Root:   opts.Root,
		Tracer: opts.Tracer,
	})
	res := resolve.New(table, resolve.Options{
		Boxing:    opts.Boxing,
		CacheSize: opts.CacheSize,
		Tracer:    opts.Tracer,
	})
	return &Compilation{
		Types:    in,
		Table:    table,
		Resolver: res,
		Checker:  sema.NewChecker(res),
		Tracer:   opts.Tracer,
		Timer:    opts.Timer,
		sources:  sources,
		opts:     opts,
	}
}
