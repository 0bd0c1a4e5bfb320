package resolve

import (
	"slices"
	"strings"

	"onion/internal/symbols"
	"onion/internal/types"
)

// FindConstructor selects the most specific constructor of c applicable to
// arguments of the given types.
func (r *Resolver) FindConstructor(c *symbols.ClassSymbol, args []types.TypeID) (*symbols.ConstructorSymbol, error) {
	key := r.cacheKey(c, lookupCtor, "<init>", args)
	if v, ok := r.cached(key); ok {
		return v.(*symbols.ConstructorSymbol), nil
	}
	ctors, err := r.table.Constructors(c)
	if err != nil {
		return nil, err
	}
	cands := make([]candidate, 0, len(ctors))
	for _, ctor := range ctors {
		cands = append(cands, candidate{params: ctor.Params, ctor: ctor})
	}
	best, err := r.selectMostSpecific(c, "<init>", cands, args)
	if err != nil {
		return nil, err
	}
	r.remember(key, best.ctor)
	return best.ctor, nil
}

// FindMethod selects the most specific method named name among the members
// of c, its superclasses and every interface they implement.
func (r *Resolver) FindMethod(c *symbols.ClassSymbol, name string, args []types.TypeID) (*symbols.MethodSymbol, error) {
	return r.findMethod(c, name, args, lookupMethod)
}

// FindStaticMethod is FindMethod restricted to c and its superclass chain;
// interfaces do not contribute static members.
func (r *Resolver) FindStaticMethod(c *symbols.ClassSymbol, name string, args []types.TypeID) (*symbols.MethodSymbol, error) {
	return r.findMethod(c, name, args, lookupStatic)
}

func (r *Resolver) findMethod(c *symbols.ClassSymbol, name string, args []types.TypeID, kind lookupKind) (*symbols.MethodSymbol, error) {
	key := r.cacheKey(c, kind, name, args)
	if v, ok := r.cached(key); ok {
		return v.(*symbols.MethodSymbol), nil
	}
	methods, err := r.collectMethods(c, name, kind == lookupMethod)
	if err != nil {
		return nil, err
	}
	cands := make([]candidate, 0, len(methods))
	for _, m := range methods {
		cands = append(cands, candidate{params: m.Params, method: m})
	}
	best, err := r.selectMostSpecific(c, name, cands, args)
	if err != nil {
		return nil, err
	}
	r.remember(key, best.method)
	return best.method, nil
}

// hierarchy lists c, its superclass chain and, when withInterfaces is set,
// every interface reachable from them, most derived first.
func (r *Resolver) hierarchy(c *symbols.ClassSymbol, withInterfaces bool) ([]*symbols.ClassSymbol, error) {
	var chain []*symbols.ClassSymbol
	seen := make(map[symbols.ClassID]bool)
	for cur := c; cur != nil && !seen[cur.ID]; cur = r.table.Class(cur.Super) {
		seen[cur.ID] = true
		chain = append(chain, cur)
	}
	if !withInterfaces {
		return chain, nil
	}
	queue := slices.Clone(chain)
	for i := 0; i < len(queue); i++ {
		ifaces, err := r.table.Interfaces(queue[i])
		if err != nil {
			return nil, err
		}
		for _, id := range ifaces {
			if seen[id] {
				continue
			}
			seen[id] = true
			iface := r.table.Class(id)
			queue = append(queue, iface)
			chain = append(chain, iface)
		}
	}
	return chain, nil
}

// collectMethods returns the methods named name visible in c, keeping the
// most derived declaration of each parameter signature.
func (r *Resolver) collectMethods(c *symbols.ClassSymbol, name string, withInterfaces bool) ([]*symbols.MethodSymbol, error) {
	classes, err := r.hierarchy(c, withInterfaces)
	if err != nil {
		return nil, err
	}
	var out []*symbols.MethodSymbol
	seen := make(map[string]bool)
	for _, cls := range classes {
		methods, err := r.table.Methods(cls)
		if err != nil {
			return nil, err
		}
		for _, m := range methods {
			if m.Name != name {
				continue
			}
			sig := strings.Join(r.names(m.Params), ",")
			if seen[sig] {
				continue
			}
			seen[sig] = true
			out = append(out, m)
		}
	}
	return out, nil
}

type candidate struct {
	params []types.TypeID
	method *symbols.MethodSymbol
	ctor   *symbols.ConstructorSymbol
}

func (r *Resolver) applicable(params, args []types.TypeID) bool {
	if len(params) != len(args) {
		return false
	}
	for i := range params {
		if !r.Assignable(params[i], args[i]) {
			return false
		}
	}
	return true
}

// asSpecific reports whether every parameter of a is assignable to the
// corresponding parameter of b.
func (r *Resolver) asSpecific(a, b candidate) bool {
	for i := range a.params {
		if !r.Assignable(b.params[i], a.params[i]) {
			return false
		}
	}
	return true
}

func (r *Resolver) selectMostSpecific(c *symbols.ClassSymbol, member string, all []candidate, args []types.TypeID) (candidate, error) {
	var applicable []candidate
	for _, cand := range all {
		if r.applicable(cand.params, args) {
			applicable = append(applicable, cand)
		}
	}
	if len(applicable) == 0 {
		return candidate{}, &Error{Kind: ErrNoApplicableMember, Class: c.Name, Member: member, Args: r.names(args), Span: c.Span}
	}

	var winners []candidate
	for i, a := range applicable {
		best := true
		for j, b := range applicable {
			if i != j && !r.asSpecific(a, b) {
				best = false
				break
			}
		}
		if best {
			winners = append(winners, a)
		}
	}
	if len(winners) == 1 {
		return winners[0], nil
	}

	sigs := make([]string, len(applicable))
	for i, cand := range applicable {
		sigs[i] = r.table.Signature(member, cand.params)
	}
	slices.Sort(sigs)
	return candidate{}, &Error{
		Kind:       ErrAmbiguousOverload,
		Class:      c.Name,
		Member:     member,
		Args:       r.names(args),
		Candidates: sigs,
		Span:       c.Span,
	}
}
