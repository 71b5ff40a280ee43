package interp

import (
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/symbol"
)

// CheckAddressEscape fails on a value about to leave the current
// procedure while still carrying a stack-variable or temporary address
// tag. An address reachable from some global variable's dereference
// edge is legitimately long-lived and exempt, as is an address marked
// always reachable.
func (ev *Evaluator) CheckAddressEscape(pc symbol.PathContext, v symbol.Value, hist *symbol.History, st *memory.State) outcome.Result {
	attr, tagged := st.Attrs.Get(v, memory.AttrStackAddress)
	if !tagged || st.Attrs.Has(v, memory.AttrAlwaysReachable) {
		return outcome.Ok(st, v, hist)
	}
	sa := attr.(memory.StackAddress)

	for _, o := range st.Stack {
		if !o.Global {
			continue
		}
		stored := st.Heap.ExistsEdge(o.Addr, func(acc memory.Access, dst memory.Destination) bool {
			if acc.Kind != memory.DerefKind {
				return false
			}
			_, ok := st.Reachable([]symbol.Value{dst.Addr})[v]
			return ok
		})
		if stored {
			return outcome.Ok(st, v, hist)
		}
	}

	kind := "stack variable"
	if sa.Temp {
		kind = "temporary"
	}
	diag := outcome.Diagnostic{
		Category:    outcome.CategoryStackAddressEscape,
		Message:     "address of " + kind + " " + sa.Var + " escapes its scope",
		Access:      ev.dec.Find(v, st),
		Location:    pc.Location,
		Trace:       sa.Hist.Events(),
		AccessTrace: hist.Events(),
	}
	return outcome.FatalError(diag, st)
}
