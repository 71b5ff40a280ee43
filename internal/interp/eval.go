package interp

import (
	"github.com/abint-dev/abint/internal/expr"
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/solver"
	"github.com/abint-dev/abint/internal/symbol"
)

// AccessMode governs which validity checks an evaluation applies.
type AccessMode int

const (
	// NoAccess performs no check; used for address-of computations that
	// must not trigger dereference semantics.
	NoAccess AccessMode = iota
	// Read verifies validity and initialization.
	Read
	// Write verifies validity and establishes initialization.
	Write
)

func (m AccessMode) String() string {
	switch m {
	case NoAccess:
		return "NoAccess"
	case Read:
		return "Read"
	case Write:
		return "Write"
	default:
		return "?"
	}
}

// Evaluator evaluates expressions against an abstract state and hosts
// the mutation, pruning, and lifecycle operations built on top.
type Evaluator struct {
	solver solver.Solver
	dec    Decompiler
	cfg    Config
	leaks  LeakSink
}

// New creates an evaluator over the given solver and configuration.
func New(sv solver.Solver, cfg Config) *Evaluator {
	return &Evaluator{solver: sv, dec: pathDecompiler{}, cfg: cfg}
}

// SetDecompiler replaces the diagnostic-naming module.
func (ev *Evaluator) SetDecompiler(d Decompiler) {
	if d != nil {
		ev.dec = d
	}
}

// SetLeakSink registers the scope-exit leak hook.
func (ev *Evaluator) SetLeakSink(s LeakSink) {
	ev.leaks = s
}

// Eval evaluates an expression, returning the updated state and the
// value the expression denotes.
func (ev *Evaluator) Eval(pc symbol.PathContext, mode AccessMode, e expr.Expr, st *memory.State) outcome.Result {
	res, _ := ev.EvalOrigin(pc, mode, e, st)
	return res
}

// EvalOrigin evaluates an expression and additionally reports how the
// resulting value was obtained. The origin is meaningful only when the
// result is usable.
func (ev *Evaluator) EvalOrigin(pc symbol.PathContext, mode AccessMode, e expr.Expr, st *memory.State) (outcome.Result, memory.Origin) {
	switch x := e.(type) {
	case expr.VarExpr:
		return ev.evalVar(pc, x, st)

	case expr.FieldExpr:
		return ev.evalAccess(pc, mode, x.Base, memory.FieldAccess(x.Name), st)

	case expr.IndexExpr:
		var origin memory.Origin
		res := ev.Eval(pc, Read, x.Index, st).AndThen(func(st *memory.State, iv symbol.Value, _ *symbol.History) outcome.Result {
			var r outcome.Result
			r, origin = ev.evalAccess(pc, mode, x.Base, memory.ArrayAccess(iv), st)
			return r
		})
		return res, origin

	case expr.DerefExpr:
		return ev.evalDeref(pc, mode, x.Base, st)

	case expr.ClosureExpr:
		return ev.evalClosure(pc, x, st)

	case expr.ConstExpr:
		return ev.evalConst(pc, x, st)

	case expr.CastExpr:
		return ev.EvalOrigin(pc, mode, x.Inner, st)

	case expr.SizeOfExpr:
		if x.Exact {
			return ev.EvalOrigin(pc, mode, expr.Int(x.Known), st)
		}
		v := symbol.Fresh()
		return outcome.Ok(st, v, nil), memory.SynthesizedOrigin(v, nil)

	case expr.UnaryExpr:
		res := ev.Eval(pc, Read, x.Operand, st).AndThen(func(st *memory.State, ov symbol.Value, oh *symbol.History) outcome.Result {
			dst := symbol.Fresh()
			st = st.WithConstraints(ev.solver.EvalUnop(st.Constraints, x.Op, dst, ov))
			return outcome.Ok(st, dst, oh)
		})
		return res, memory.SynthesizedOrigin(res.Value, res.Hist)

	case expr.BinaryExpr:
		res := ev.Eval(pc, Read, x.Left, st).AndThen(func(st *memory.State, lv symbol.Value, lh *symbol.History) outcome.Result {
			return ev.Eval(pc, Read, x.Right, st).AndThen(func(st *memory.State, rv symbol.Value, rh *symbol.History) outcome.Result {
				dst := symbol.Fresh()
				st = st.WithConstraints(ev.solver.EvalBinop(st.Constraints, x.Op, dst, lv, rv))
				return outcome.Ok(st, dst, symbol.Merge(x.Op.String(), lh, rh))
			})
		})
		return res, memory.SynthesizedOrigin(res.Value, res.Hist)

	default:
		v := symbol.Fresh()
		return outcome.Ok(st, v, nil), memory.SynthesizedOrigin(v, nil)
	}
}

// evalVar looks a variable up on the stack, lazily binding a fresh
// address on first sight.
func (ev *Evaluator) evalVar(pc symbol.PathContext, x expr.VarExpr, st *memory.State) (outcome.Result, memory.Origin) {
	if o, ok := st.Stack[x.Name]; ok {
		return outcome.Ok(st, o.Addr, o.Hist), o
	}
	hist := symbol.Singleton(pc.Stamp(symbol.VariableDeclared, x.Name))
	o := memory.StackOrigin(x.Name, x.Temp, x.Global, symbol.Fresh(), hist)
	return outcome.Ok(st.WithBinding(x.Name, o), o.Addr, hist), o
}

// evalAccess evaluates base for Read, applies the access check in the
// caller's mode, then traverses the labeled edge, minting it if needed.
func (ev *Evaluator) evalAccess(pc symbol.PathContext, mode AccessMode, base expr.Expr, acc memory.Access, st *memory.State) (outcome.Result, memory.Origin) {
	var origin memory.Origin
	res := ev.Eval(pc, Read, base, st).AndThen(func(st *memory.State, baseAddr symbol.Value, baseHist *symbol.History) outcome.Result {
		eff := ev.effectiveMode(mode, baseAddr, st)
		return ev.checkAddrAccess(pc, eff, memory.Destination{Addr: baseAddr, Hist: baseHist}, st).AndThenState(func(st *memory.State) outcome.Result {
			st, dst := st.EvalEdge(baseAddr, acc, baseHist)
			if eff == NoAccess && mode != NoAccess {
				// Contents reached through a clobbered address are
				// themselves unpredictable; the degrade rule recurses
				// down access chains.
				if attr, ok := st.Attrs.Get(baseAddr, memory.AttrUnknownEffect); ok {
					st = st.WithAttr(dst.Addr, attr)
				}
			}
			origin = memory.MemoryOrigin(baseAddr, acc, dst.Addr, dst.Hist)
			return outcome.Ok(st, dst.Addr, dst.Hist)
		})
	})
	return res, origin
}

// evalDeref evaluates the base for Read to obtain a pointer, then
// dereferences it in the caller's mode.
func (ev *Evaluator) evalDeref(pc symbol.PathContext, mode AccessMode, base expr.Expr, st *memory.State) (outcome.Result, memory.Origin) {
	return ev.evalAccess(pc, mode, base, memory.Dereference(), st)
}

// evalClosure synthesizes a fresh address for a function value and, for
// lambdas, one capture edge per captured variable.
func (ev *Evaluator) evalClosure(pc symbol.PathContext, x expr.ClosureExpr, st *memory.State) (outcome.Result, memory.Origin) {
	addr := symbol.Fresh()
	hist := symbol.Singleton(pc.Stamp(symbol.Assignment, "closure "+x.Proc))
	st = st.WithAttr(addr, memory.Closure{Proc: x.Proc, Lambda: x.Lambda})

	for _, c := range x.Captures {
		res, _ := ev.evalVar(pc, expr.VarExpr{Name: c.Name}, st)
		st = res.State
		capHist := res.Hist.Sequence(pc.Stamp(symbol.Captured, c.Name))
		acc := memory.CaptureField(c.Name, c.Mode == expr.ByReference, c.Weak)
		target := res.Value
		if c.Mode == expr.ByReference {
			// A by-reference capture holds a pointer cell, so reading
			// the captured variable traverses an extra dereference.
			cell := symbol.Fresh()
			st = st.WithEdge(cell, memory.Dereference(), memory.Destination{Addr: res.Value, Hist: capHist})
			st = st.WithAttr(cell, memory.Initialized{})
			target = cell
		}
		st = st.WithEdge(addr, acc, memory.Destination{Addr: target, Hist: capHist})
		// Captured state must not itself trip uninitialized-read checks.
		st = st.WithAttr(res.Value, memory.Initialized{})
	}

	o := memory.SynthesizedOrigin(addr, hist)
	return outcome.Ok(st, addr, hist), o
}

// evalConst mints a fresh value for a literal and records the constant
// with the solver. Zero constants are additionally marked invalid so a
// later dereference of a literal null is flagged.
func (ev *Evaluator) evalConst(pc symbol.PathContext, x expr.ConstExpr, st *memory.State) (outcome.Result, memory.Origin) {
	v := symbol.Fresh()
	st = st.WithConstraints(ev.solver.EvalConst(st.Constraints, v, x.Lit))
	if isZeroLiteral(x.Lit) {
		trace := symbol.Singleton(pc.Stamp(symbol.Invalidated, "null constant"))
		st = st.WithAttr(v, memory.Invalid{Cause: memory.CauseConstantDereference, Trace: trace})
	}
	return outcome.Ok(st, v, nil), memory.SynthesizedOrigin(v, nil)
}

func isZeroLiteral(lit expr.Literal) bool {
	switch c := lit.(type) {
	case expr.IntLit:
		return c.Val == 0
	case expr.FloatLit:
		return c.Val == 0
	default:
		return false
	}
}
