package interp

import (
	"github.com/abint-dev/abint/internal/expr"
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/symbol"
)

// WriteAccess evaluates the target base expression, applies the
// Write-mode access check to it, and unconditionally installs the edge.
func (ev *Evaluator) WriteAccess(pc symbol.PathContext, base expr.Expr, acc memory.Access, val memory.Destination, st *memory.State) outcome.Result {
	return ev.Eval(pc, Read, base, st).AndThen(func(st *memory.State, baseAddr symbol.Value, baseHist *symbol.History) outcome.Result {
		return ev.checkAddrAccess(pc, Write, memory.Destination{Addr: baseAddr, Hist: baseHist}, st).AndThenState(func(st *memory.State) outcome.Result {
			hist := val.Hist.Sequence(pc.Stamp(symbol.Assignment, acc.String()))
			st = st.WithEdge(baseAddr, acc, memory.Destination{Addr: val.Addr, Hist: hist})
			return outcome.Ok(st, val.Addr, hist)
		})
	})
}

// WriteField writes a value through a field of base.
func (ev *Evaluator) WriteField(pc symbol.PathContext, base expr.Expr, field string, val memory.Destination, st *memory.State) outcome.Result {
	return ev.WriteAccess(pc, base, memory.FieldAccess(field), val, st)
}

// WriteArrIndex writes a value through an array slot of base.
func (ev *Evaluator) WriteArrIndex(pc symbol.PathContext, base, idx expr.Expr, val memory.Destination, st *memory.State) outcome.Result {
	return ev.Eval(pc, Read, idx, st).AndThen(func(st *memory.State, iv symbol.Value, _ *symbol.History) outcome.Result {
		return ev.WriteAccess(pc, base, memory.ArrayAccess(iv), val, st)
	})
}

// WriteDeref writes a value through a pointer dereference of base.
func (ev *Evaluator) WriteDeref(pc symbol.PathContext, base expr.Expr, val memory.Destination, st *memory.State) outcome.Result {
	return ev.WriteAccess(pc, base, memory.Dereference(), val, st)
}

// Havoc marks an address's contents clobbered by an opaque call. Later
// planned reads through it are downgraded to NoAccess.
func (ev *Evaluator) Havoc(pc symbol.PathContext, addr symbol.Value, call string, st *memory.State) *memory.State {
	hist := symbol.Singleton(pc.Stamp(symbol.Assignment, "unknown effect of "+call))
	return st.WithAttr(addr, memory.UnknownEffect{Call: call, Hist: hist})
}

// MarkConfigUsage tags an address as read from dynamic configuration.
func (ev *Evaluator) MarkConfigUsage(addr symbol.Value, key string, st *memory.State) *memory.State {
	return st.WithAttr(addr, memory.ConfigUsage{Key: key})
}
