package interp

import (
	"github.com/abint-dev/abint/internal/expr"
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/symbol"
)

// Prune asserts a branch condition on the path. `not x` flips the
// negation flag and recurses; any non-comparison condition e is
// normalized into e != 0. The configured contradiction heuristics are
// consulted before the solver; a contradicted comparison prunes the
// branch as Unsat instead of silently asserting it.
func (ev *Evaluator) Prune(pc symbol.PathContext, proc ProcContext, cond expr.Expr, st *memory.State) outcome.Result {
	negated := false
	for {
		u, ok := cond.(expr.UnaryExpr)
		if !ok || u.Op != expr.OpNot {
			break
		}
		negated = !negated
		cond = u.Operand
	}

	bin, ok := cond.(expr.BinaryExpr)
	if !ok || !bin.Op.IsComparison() {
		bin = expr.BinaryExpr{Op: expr.OpNeq, Left: cond, Right: expr.Int(0)}
	}

	for _, h := range ev.cfg.Heuristics {
		if h.Contradicts(proc, bin.Op, bin.Left, bin.Right, negated) {
			return outcome.Unsatf("%s: condition %s can never hold in %s",
				h.Name(), bin.String(), proc.Name)
		}
	}

	lres, lorig := ev.EvalOrigin(pc, Read, bin.Left, st)
	return lres.AndThen(func(st *memory.State, lv symbol.Value, lh *symbol.History) outcome.Result {
		rres, rorig := ev.EvalOrigin(pc, Read, bin.Right, st)
		return rres.AndThen(func(st *memory.State, rv symbol.Value, rh *symbol.History) outcome.Result {
			st = ev.recordNullComparison(pc, bin, negated, lorig, rorig, st)

			store, sat := ev.solver.AssertBinop(st.Constraints, bin.Op, lv, rv, negated)
			if !sat {
				return outcome.Unsatf("unsatisfiable condition %s (negated=%t)", bin.String(), negated)
			}
			return outcome.Ok(st.WithConstraints(store), symbol.None, symbol.Merge(bin.Op.String(), lh, rh))
		})
	})
}

// recordNullComparison handles equality tests against the null/zero
// constant: the non-constant operand gets a compared-to-null event on
// its history, and when the branch asserts the equality to hold, the
// compared-to-null invalidation attribute as well, so a later
// dereference is flagged with the stronger cause.
func (ev *Evaluator) recordNullComparison(pc symbol.PathContext, bin expr.BinaryExpr, negated bool, lorig, rorig memory.Origin, st *memory.State) *memory.State {
	if !bin.Op.IsEquality() {
		return st
	}
	lNull := isNullConst(bin.Left)
	rNull := isNullConst(bin.Right)
	if lNull == rNull {
		return st
	}

	target := rorig
	if rNull {
		target = lorig
	}

	hist := target.Hist.Sequence(pc.Stamp(symbol.ComparedToNull, ""))
	switch target.Kind {
	case memory.OnStack:
		updated := target
		updated.Hist = hist
		st = st.WithBinding(target.Var, updated)
	case memory.InMemory:
		st = st.WithEdge(target.Src, target.Access, memory.Destination{Addr: target.Addr, Hist: hist})
	}

	assertsEqual := (bin.Op == expr.OpEq) != negated
	if assertsEqual {
		st = st.WithAttr(target.Addr, memory.Invalid{Cause: memory.CauseComparedToNull, Trace: hist})
	}
	return st
}

func isNullConst(e expr.Expr) bool {
	c, ok := e.(expr.ConstExpr)
	return ok && c.IsNull()
}
