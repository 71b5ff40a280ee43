package interp

import (
	"github.com/abint-dev/abint/internal/expr"
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/symbol"
)

// invalidateOrigin marks the origin's address invalid and, when the
// address was reached through a traceable path, records the
// invalidation on the value's history so later diagnostics can replay
// where it happened. Untraceable origins only get the attribute.
func (ev *Evaluator) invalidateOrigin(pc symbol.PathContext, o memory.Origin, cause memory.InvalidCause, st *memory.State) *memory.State {
	trace := o.Hist.Sequence(pc.Stamp(symbol.Invalidated, cause.String()))
	st = st.WithAttr(o.Addr, memory.Invalid{Cause: cause, Trace: trace})

	switch o.Kind {
	case memory.OnStack:
		updated := o
		updated.Hist = trace
		st = st.WithBinding(o.Var, updated)
	case memory.InMemory:
		st = st.WithEdge(o.Src, o.Access, memory.Destination{Addr: o.Addr, Hist: trace})
	}
	return st
}

// Invalidate evaluates an expression and marks the resulting address
// invalid with the given cause.
func (ev *Evaluator) Invalidate(pc symbol.PathContext, e expr.Expr, cause memory.InvalidCause, st *memory.State) outcome.Result {
	res, origin := ev.EvalOrigin(pc, Read, e, st)
	return res.AndThenState(func(st *memory.State) outcome.Result {
		return outcome.OkState(ev.invalidateOrigin(pc, origin, cause, st))
	})
}

// InvalidateAccess invalidates the destination of a labeled access on
// base.
func (ev *Evaluator) InvalidateAccess(pc symbol.PathContext, base expr.Expr, acc memory.Access, cause memory.InvalidCause, st *memory.State) outcome.Result {
	res, origin := ev.evalAccess(pc, Read, base, acc, st)
	return res.AndThenState(func(st *memory.State) outcome.Result {
		return outcome.OkState(ev.invalidateOrigin(pc, origin, cause, st))
	})
}

// InvalidateDerefAccess invalidates what base points to.
func (ev *Evaluator) InvalidateDerefAccess(pc symbol.PathContext, base expr.Expr, cause memory.InvalidCause, st *memory.State) outcome.Result {
	return ev.InvalidateAccess(pc, base, memory.Dereference(), cause, st)
}

// InvalidateArrayElements invalidates every array-typed outgoing edge
// of base's address in one pass.
func (ev *Evaluator) InvalidateArrayElements(pc symbol.PathContext, base expr.Expr, cause memory.InvalidCause, st *memory.State) outcome.Result {
	return ev.Eval(pc, Read, base, st).AndThen(func(st *memory.State, baseAddr symbol.Value, _ *symbol.History) outcome.Result {
		type elem struct {
			acc memory.Access
			dst memory.Destination
		}
		var elems []elem
		st.Heap.FoldEdges(baseAddr, func(acc memory.Access, dst memory.Destination) bool {
			if acc.Kind == memory.ArrayKind {
				elems = append(elems, elem{acc, dst})
			}
			return true
		})
		for _, e := range elems {
			o := memory.MemoryOrigin(baseAddr, e.acc, e.dst.Addr, e.dst.Hist)
			st = ev.invalidateOrigin(pc, o, cause, st)
		}
		return outcome.OkState(st)
	})
}
