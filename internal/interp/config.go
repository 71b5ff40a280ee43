package interp

import (
	"github.com/abint-dev/abint/internal/expr"
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/symbol"
)

// ProcContext describes the procedure whose body is being explored. The
// driver supplies it; pruning heuristics inspect it.
type ProcContext struct {
	Name          string
	IsConstructor bool
	Receiver      string   // name of the receiver parameter, if any
	Params        []string // formal parameter names, receiver included
}

// HasParam reports whether name is a formal parameter of the procedure.
func (p ProcContext) HasParam(name string) bool {
	for _, param := range p.Params {
		if param == name {
			return true
		}
	}
	return false
}

// PruneHeuristic is a pluggable unsoundness-avoidance rule consulted
// before a branch comparison is asserted. Returning true reports the
// comparison statically impossible to hold, so the branch is pruned as
// Unsat instead of being asserted.
type PruneHeuristic interface {
	Name() string
	Contradicts(proc ProcContext, op expr.BinaryOp, lhs, rhs expr.Expr, negated bool) bool
}

// ConstructorSelfComparison prunes equality tests between the receiver
// and a distinct constructor parameter: a constructor never receives
// itself as one of its own arguments.
type ConstructorSelfComparison struct{}

func (ConstructorSelfComparison) Name() string { return "constructor-self-comparison" }

func (ConstructorSelfComparison) Contradicts(proc ProcContext, op expr.BinaryOp, lhs, rhs expr.Expr, negated bool) bool {
	if !proc.IsConstructor || proc.Receiver == "" || !op.IsEquality() {
		return false
	}
	lv, lok := lhs.(expr.VarExpr)
	rv, rok := rhs.(expr.VarExpr)
	if !lok || !rok {
		return false
	}
	recv, other := lv, rv
	if rv.Name == proc.Receiver {
		recv, other = rv, lv
	}
	if recv.Name != proc.Receiver {
		return false
	}
	if other.Name == proc.Receiver || !proc.HasParam(other.Name) {
		return false
	}
	// The branch asserts receiver == param; that can never hold.
	assertsEqual := (op == expr.OpEq) != negated
	return assertsEqual
}

// HeuristicByName resolves a heuristic from its configuration name.
func HeuristicByName(name string) (PruneHeuristic, bool) {
	switch name {
	case ConstructorSelfComparison{}.Name():
		return ConstructorSelfComparison{}, true
	default:
		return nil, false
	}
}

// Config carries the evaluator's behavior toggles. It is threaded
// explicitly into the components that need it; there is no ambient
// process-wide state.
type Config struct {
	// ObjectModel selects the resource-lifetime model: "java" or "csharp".
	ObjectModel string

	// DegradeUnknownEffect downgrades reads through addresses clobbered
	// by opaque calls to NoAccess, suppressing uninitialized-read noise.
	DegradeUnknownEffect bool

	// MaxDeepCopyDepth bounds recursive deep copies; 0 means shallow.
	MaxDeepCopyDepth int

	// Heuristics are the pruning contradiction rules, consulted in order.
	Heuristics []PruneHeuristic
}

// DefaultConfig returns the default evaluator configuration.
func DefaultConfig() Config {
	return Config{
		ObjectModel:          "java",
		DegradeUnknownEffect: true,
		MaxDeepCopyDepth:     8,
		Heuristics:           []PruneHeuristic{ConstructorSelfComparison{}},
	}
}

// ResourceModel maps the configured object model onto the released-flag
// model used by the resource release operations.
func (c Config) ResourceModel() memory.ResourceModel {
	if c.ObjectModel == "csharp" {
		return memory.CSharpResource
	}
	return memory.JavaResource
}

// Decompiler names an abstract value back to a source-level description
// for diagnostics.
type Decompiler interface {
	Find(addr symbol.Value, st *memory.State) string
}

// LeakSink receives the dead roots of an exited scope for potential-leak
// analysis. The summarization module implements it.
type LeakSink interface {
	MarkPotentialLeaks(pc symbol.PathContext, dead []symbol.Value, st *memory.State)
}
