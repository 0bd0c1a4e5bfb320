package driver

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"onion/internal/diag"
	"onion/internal/dispatch"
	"onion/internal/observ"
	"onion/internal/sema"
	"onion/internal/symbols"
	"onion/internal/trace"
)

// UnitResult holds the outcome of one unit.
type UnitResult struct {
	Name string
	Bag  *diag.Bag
	// Failed is set when a class of the unit could not be loaded; such a
	// unit is not checked.
	Failed bool
}

// Result is the outcome of Run.
type Result struct {
	Units    []UnitResult
	Dispatch []*dispatch.Table // sorted by class name
	Timings  observ.Report
}

// HasErrors reports whether any unit carries an error diagnostic.
func (r *Result) HasErrors() bool {
	for _, u := range r.Units {
		if u.Failed || u.Bag.HasErrors() {
			return true
		}
	}
	return false
}

type unitState struct {
	unit    Unit
	bag     *diag.Bag
	failed  bool
	classes []*symbols.ClassSymbol
	tables  []*dispatch.Table
}

// Run loads and checks units. User errors end up in the unit bags; the
// returned error is reserved for internal faults and cancellation, in which
// case the result is nil.
func (c *Compilation) Run(ctx context.Context, units []Unit) (*Result, error) {
	runSpan := trace.Begin(c.Tracer, trace.ScopeDriver, "run", 0)
	defer runSpan.End(fmt.Sprintf("%d units", len(units)))

	states := make([]*unitState, len(units))
	for i, u := range units {
		states[i] = &unitState{unit: u, bag: diag.NewBag(c.opts.MaxDiagnostics)}
	}

	if err := c.phase("register", runSpan.ID(), func(parent uint64) error {
		c.register(states)
		return nil
	}); err != nil {
		return nil, err
	}
	if err := c.phase("load", runSpan.ID(), func(parent uint64) error {
		return c.load(ctx, states, parent)
	}); err != nil {
		return nil, err
	}
	if err := c.phase("check", runSpan.ID(), func(parent uint64) error {
		return c.check(ctx, states, parent)
	}); err != nil {
		return nil, err
	}

	res := &Result{Units: make([]UnitResult, len(states))}
	for i, st := range states {
		st.bag.Sort()
		st.bag.Dedup()
		res.Units[i] = UnitResult{Name: st.unit.Name, Bag: st.bag, Failed: st.failed}
		res.Dispatch = append(res.Dispatch, st.tables...)
	}
	sort.Slice(res.Dispatch, func(i, j int) bool {
		return res.Dispatch[i].Class < res.Dispatch[j].Class
	})
	res.Timings = c.Timer.Report()
	return res, nil
}

func (c *Compilation) phase(name string, parent uint64, fn func(parent uint64) error) error {
	idx := c.Timer.Begin(name)
	span := trace.Begin(c.Tracer, trace.ScopePass, name, parent)
	err := fn(span.ID())
	note := ""
	if err != nil {
		note = err.Error()
		trace.Failure(c.Tracer, trace.ScopePass, name, note)
	}
	span.End(note)
	c.Timer.End(idx, note)
	return err
}

// register makes unit declarations visible to the table. A name declared by
// two units is reported in the later one.
func (c *Compilation) register(states []*unitState) {
	for _, st := range states {
		reporter := diag.BagReporter{Bag: st.bag}
		for _, cls := range st.unit.Classes {
			first, dup, _ := c.sources.Find(cls.Name)
			if err := c.sources.Add(cls); err != nil {
				b := diag.ReportError(reporter, diag.SemaInvalidDecl, cls.Span, err.Error())
				if dup {
					b.WithNote(first.Span, "first declared here")
				}
				b.Emit()
				st.failed = true
			}
		}
	}
}

// load runs sequentially so that class IDs follow unit order.
func (c *Compilation) load(ctx context.Context, states []*unitState, parent uint64) error {
	for _, st := range states {
		if err := ctx.Err(); err != nil {
			return err
		}
		if st.failed {
			continue
		}
		span := trace.Begin(c.Tracer, trace.ScopeUnit, "load:"+st.unit.Name, parent)
		for _, cls := range st.unit.Classes {
			sym, err := c.Table.Load(cls.Name)
			if err != nil {
				d, ok := sema.Diagnose(err)
				if !ok {
					span.End("fault")
					return fmt.Errorf("internal compiler error loading %s: %w", cls.Name, err)
				}
				st.bag.Add(d)
				st.failed = true
				continue
			}
			st.classes = append(st.classes, sym)
		}
		span.End(fmt.Sprintf("%d classes", len(st.classes)))
	}
	return nil
}

func (c *Compilation) check(ctx context.Context, states []*unitState, parent uint64) error {
	jobs := c.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(states))))
	for _, st := range states {
		if st.failed {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			span := trace.Begin(c.Tracer, trace.ScopeUnit, "check:"+st.unit.Name, parent)
			err := c.checkUnit(st)
			span.WithExtra("diagnostics", fmt.Sprint(st.bag.Len())).
				WithExtra("tables", fmt.Sprint(len(st.tables))).
				End("")
			return err
		})
	}
	return g.Wait()
}

// checkUnit touches only st, so units need no further locking here.
func (c *Compilation) checkUnit(st *unitState) error {
	report := func(err error) error {
		d, ok := sema.Diagnose(err)
		if !ok {
			return fmt.Errorf("internal compiler error in %s: %w", st.unit.Name, err)
		}
		st.bag.Add(d)
		return nil
	}
	for _, cls := range st.classes {
		if err := c.resolveMembers(cls); err != nil {
			if ferr := report(err); ferr != nil {
				return ferr
			}
			continue
		}
		ds, err := c.Checker.CheckClass(cls)
		if err != nil {
			return fmt.Errorf("internal compiler error in %s: %w", st.unit.Name, err)
		}
		for _, d := range ds {
			st.bag.Add(d)
		}
		table, err := dispatch.Build(c.Resolver, cls)
		if err != nil {
			if ferr := report(err); ferr != nil {
				return ferr
			}
			continue
		}
		trace.Point(c.Tracer, trace.ScopeClass, "dispatch", fmt.Sprintf("%s: %d slots", cls.Name, len(table.Slots)))
		st.tables = append(st.tables, table)
	}
	return nil
}

func (c *Compilation) resolveMembers(cls *symbols.ClassSymbol) error {
	if _, err := c.Table.Interfaces(cls); err != nil {
		return err
	}
	if _, err := c.Table.Fields(cls); err != nil {
		return err
	}
	if _, err := c.Table.Constructors(cls); err != nil {
		return err
	}
	_, err := c.Table.Methods(cls)
	return err
}
