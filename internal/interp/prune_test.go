package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abint-dev/abint/internal/expr"
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/symbol"
)

func ctorContext() ProcContext {
	return ProcContext{
		Name:          "Account.<init>",
		IsConstructor: true,
		Receiver:      "this",
		Params:        []string{"this", "other"},
	}
}

func TestConstructorSelfComparisonPrunes(t *testing.T) {
	ev, st := newEval()
	proc := ctorContext()

	res := ev.Prune(pcAt("t.go:1"), proc, expr.Eq(expr.Var("this"), expr.Var("other")), st)
	require.Equal(t, outcome.KindUnsat, res.Kind)
	assert.Contains(t, res.UnsatReason(), "constructor-self-comparison")
}

func TestConstructorSelfComparisonNegated(t *testing.T) {
	ev, st := newEval()
	proc := ctorContext()

	// !(this != other) asserts the equality and must prune too.
	res := ev.Prune(pcAt("t.go:1"), proc, expr.Not(expr.Neq(expr.Var("this"), expr.Var("other"))), st)
	assert.Equal(t, outcome.KindUnsat, res.Kind)

	// this != other asserts the disequality, which is fine.
	res = ev.Prune(pcAt("t.go:2"), proc, expr.Neq(expr.Var("this"), expr.Var("other")), st)
	assert.Equal(t, outcome.KindOk, res.Kind)
}

func TestSelfEqualityIsNotPruned(t *testing.T) {
	ev, st := newEval()
	proc := ctorContext()

	res := ev.Prune(pcAt("t.go:1"), proc, expr.Eq(expr.Var("this"), expr.Var("this")), st)
	assert.Equal(t, outcome.KindOk, res.Kind, "this == this is trivially true, not a contradiction")
}

func TestSelfDisequalityIsUnsat(t *testing.T) {
	ev, st := newEval()

	res := ev.Prune(pcAt("t.go:1"), ProcContext{Name: "f"}, expr.Neq(expr.Var("x"), expr.Var("x")), st)
	assert.Equal(t, outcome.KindUnsat, res.Kind)
	assert.NotEmpty(t, res.UnsatReason())
}

func TestHeuristicIgnoresOrdinaryProcedures(t *testing.T) {
	ev, st := newEval()
	proc := ProcContext{Name: "compare", Params: []string{"this", "other"}}

	res := ev.Prune(pcAt("t.go:1"), proc, expr.Eq(expr.Var("this"), expr.Var("other")), st)
	assert.Equal(t, outcome.KindOk, res.Kind)
}

func TestHeuristicIgnoresNonParameters(t *testing.T) {
	ev, st := newEval()
	proc := ctorContext()

	res := ev.Prune(pcAt("t.go:1"), proc, expr.Eq(expr.Var("this"), expr.Var("local")), st)
	assert.Equal(t, outcome.KindOk, res.Kind, "locals are not constructor arguments")
}

func TestNullEqualityInvalidatesOperand(t *testing.T) {
	ev, st := newEval()
	p := expr.Var("p")

	res := ev.Prune(pcAt("t.go:1"), ProcContext{Name: "f"}, expr.Eq(p, expr.Null()), st)
	require.Equal(t, outcome.KindOk, res.Kind)

	deref := ev.Eval(pcAt("t.go:2"), Read, expr.Deref(p), res.State)
	require.Equal(t, outcome.KindFatal, deref.Kind)
	assert.Equal(t, "compared to null", deref.Fatal.Message)
}

func TestNullDisequalityOnlyRecordsHistory(t *testing.T) {
	ev, st := newEval()
	p := expr.Var("p")

	res := ev.Prune(pcAt("t.go:1"), ProcContext{Name: "f"}, expr.Neq(p, expr.Null()), st)
	require.Equal(t, outcome.KindOk, res.Kind)
	st = res.State

	o := st.Stack["p"]
	e, ok := o.Hist.Latest()
	require.True(t, ok)
	assert.Equal(t, symbol.ComparedToNull, e.Kind)
	assert.False(t, st.Attrs.Has(o.Addr, memory.AttrInvalid),
		"asserting p != null must not invalidate p")
}

func TestNullOnLeftSide(t *testing.T) {
	ev, st := newEval()
	p := expr.Var("p")

	res := ev.Prune(pcAt("t.go:1"), ProcContext{Name: "f"}, expr.Eq(expr.Null(), p), st)
	require.Equal(t, outcome.KindOk, res.Kind)
	st = res.State

	assert.True(t, st.Attrs.Has(st.Stack["p"].Addr, memory.AttrInvalid))
}

func TestNonComparisonConditionIsNormalized(t *testing.T) {
	ev, st := newEval()

	// `if b` becomes b != 0.
	res := ev.Prune(pcAt("t.go:1"), ProcContext{Name: "f"}, expr.Var("b"), st)
	assert.Equal(t, outcome.KindOk, res.Kind)
}

func TestContradictoryConstantsPrune(t *testing.T) {
	ev, st := newEval()

	res := ev.Prune(pcAt("t.go:1"), ProcContext{Name: "f"}, expr.Eq(expr.Int(0), expr.Int(1)), st)
	assert.Equal(t, outcome.KindUnsat, res.Kind)
}

func TestHeuristicByName(t *testing.T) {
	h, ok := HeuristicByName("constructor-self-comparison")
	require.True(t, ok)
	assert.Equal(t, "constructor-self-comparison", h.Name())

	_, ok = HeuristicByName("no-such-rule")
	assert.False(t, ok)
}

func TestConfigResourceModel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, memory.JavaResource, cfg.ResourceModel())

	cfg.ObjectModel = "csharp"
	assert.Equal(t, memory.CSharpResource, cfg.ResourceModel())
}
