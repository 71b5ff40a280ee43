package interp

import (
	"sort"

	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/symbol"
)

// DeadVar names one variable going out of scope. Temp marks
// compiler-introduced temporaries.
type DeadVar struct {
	Name string
	Temp bool
}

// ExitScope processes the set of variables leaving scope: it hands the
// now-dead roots to the leak sink, tags each genuine local's address as
// an address-of-stack-variable (or address-of-temporary), and removes
// the dead bindings from the stack.
//
// Two distinct stack slots can never alias the identical synthesized
// address; finding a second owner for an already tagged address is an
// internal contradiction and prunes the path.
func (ev *Evaluator) ExitScope(pc symbol.PathContext, vars []DeadVar, st *memory.State) outcome.Result {
	var dead []symbol.Value
	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
		if o, ok := st.Stack[v.Name]; ok {
			dead = append(dead, o.Addr)
		}
	}
	if ev.leaks != nil && len(dead) > 0 {
		ev.leaks.MarkPotentialLeaks(pc, dead, st)
	}

	for _, v := range vars {
		o, ok := st.Stack[v.Name]
		if !ok || o.Global {
			continue
		}
		if attr, tagged := st.Attrs.Get(o.Addr, memory.AttrStackAddress); tagged {
			prev := attr.(memory.StackAddress)
			if prev.Var != v.Name {
				return outcome.Unsatf("distinct stack variables %s and %s own the same address %s",
					prev.Var, v.Name, o.Addr)
			}
			continue
		}
		hist := o.Hist.Sequence(pc.Stamp(symbol.TaggedStackAddress, v.Name))
		st = st.WithAttr(o.Addr, memory.StackAddress{
			Var:  v.Name,
			Temp: v.Temp || o.Temp,
			Hist: hist,
		})
	}

	return outcome.OkState(st.WithoutBindings(names...))
}

// DynamicTypesOfUnreachable reports the dynamic types of addresses no
// longer reachable from the given roots, from the attribute store or,
// failing that, from the solver's type facts. The summarization module
// uses it to narrow leak candidates.
func (ev *Evaluator) DynamicTypesOfUnreachable(roots []symbol.Value, st *memory.State) []string {
	reachable := st.Reachable(roots)
	set := make(map[string]struct{})
	record := func(addr symbol.Value) {
		if _, ok := reachable[addr]; ok {
			return
		}
		if attr, ok := st.Attrs.Get(addr, memory.AttrDynamicType); ok {
			set[attr.(memory.DynamicType).Type] = struct{}{}
			return
		}
		if typ, ok := ev.solver.DynamicType(st.Constraints, addr); ok {
			set[typ] = struct{}{}
		}
	}
	for addr := range st.Attrs {
		record(addr)
	}
	for src, edges := range st.Heap {
		record(src)
		for _, dst := range edges {
			record(dst.Addr)
		}
	}
	types := make([]string, 0, len(set))
	for t := range set {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
