// Package abint bundles the symbolic memory-operations engine behind a
// small entry surface: an Engine owning an evaluator wired to the
// built-in lattice solver, plus helpers for creating states and
// observing operation results.
package abint

import (
	"go.uber.org/zap"

	"github.com/abint-dev/abint/internal/interp"
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/solver"
	"github.com/abint-dev/abint/internal/symbol"
)

// Engine is a configured evaluator together with a logger for
// observing path outcomes.
type Engine struct {
	ev     *interp.Evaluator
	logger *zap.Logger
}

// New creates an engine over the built-in lattice solver.
func New(logger *zap.Logger, cfg interp.Config) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		ev:     interp.New(solver.Lattice{}, cfg),
		logger: logger,
	}
}

// Evaluator exposes the operation entry points.
func (e *Engine) Evaluator() *interp.Evaluator {
	return e.ev
}

// NewState creates an empty abstract state backed by a fresh
// constraint store.
func (e *Engine) NewState() *memory.State {
	return memory.New(solver.NewStore())
}

// JoinStates merges the constraint stores of two states meeting at a
// control-flow join point and returns the left state carrying the
// merged store. The changed flag reports whether the merge weakened
// the left state's facts, which drives fixpoint convergence for loops.
func (e *Engine) JoinStates(left, right *memory.State) (*memory.State, bool) {
	ls, lok := left.Constraints.(*solver.LatticeStore)
	rs, rok := right.Constraints.(*solver.LatticeStore)
	if !lok || !rok {
		return left, false
	}
	merged, changed := ls.Join(rs)
	return left.WithConstraints(merged), changed
}

// RecordDynamicType notes the dynamic type of the contents of addr,
// both as an address attribute and as a solver fact so that either
// lookup path finds it.
func (e *Engine) RecordDynamicType(st *memory.State, addr symbol.Value, typ string) *memory.State {
	st = st.WithAttr(addr, memory.DynamicType{Type: typ})
	if ls, ok := st.Constraints.(*solver.LatticeStore); ok {
		st = st.WithConstraints(ls.WithDynamicType(addr, typ))
	}
	return st
}

// Observe logs a result's diagnostics and reports whether the path may
// continue past it.
func (e *Engine) Observe(res outcome.Result) bool {
	for _, d := range res.Diags {
		e.logger.Warn("defect candidate", zap.String("diagnostic", d.String()))
	}
	switch res.Kind {
	case outcome.KindUnsat:
		e.logger.Debug("path pruned", zap.String("reason", res.UnsatReason()))
		return false
	case outcome.KindFatal:
		e.logger.Warn("fatal defect", zap.String("diagnostic", res.Fatal.String()))
		return false
	default:
		return true
	}
}
