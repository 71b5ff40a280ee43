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

type recordingLeakSink struct {
	dead []symbol.Value
}

func (s *recordingLeakSink) MarkPotentialLeaks(_ symbol.PathContext, dead []symbol.Value, _ *memory.State) {
	s.dead = append(s.dead, dead...)
}

func TestExitScopeTagsAndUnbinds(t *testing.T) {
	ev, st := newEval()
	pc := pcAt("t.go:1")

	res := ev.Eval(pc, Read, expr.Var("x"), st)
	require.True(t, res.Usable())
	xAddr := res.Value

	res = ev.ExitScope(pc, []DeadVar{{Name: "x"}}, res.State)
	require.Equal(t, outcome.KindOk, res.Kind)
	st = res.State

	_, bound := st.Stack["x"]
	assert.False(t, bound)

	attr, ok := st.Attrs.Get(xAddr, memory.AttrStackAddress)
	require.True(t, ok)
	sa := attr.(memory.StackAddress)
	assert.Equal(t, "x", sa.Var)
	assert.False(t, sa.Temp)
	e, ok := sa.Hist.Latest()
	require.True(t, ok)
	assert.Equal(t, symbol.TaggedStackAddress, e.Kind)
}

func TestExitScopeMarksTemporaries(t *testing.T) {
	ev, st := newEval()
	pc := pcAt("t.go:1")

	res := ev.Eval(pc, Read, expr.Temp("$t0"), st)
	addr := res.Value

	res = ev.ExitScope(pc, []DeadVar{{Name: "$t0"}}, res.State)
	require.True(t, res.Usable())

	attr, ok := res.State.Attrs.Get(addr, memory.AttrStackAddress)
	require.True(t, ok)
	assert.True(t, attr.(memory.StackAddress).Temp)
}

func TestExitScopeSkipsGlobals(t *testing.T) {
	ev, st := newEval()
	pc := pcAt("t.go:1")

	res := ev.Eval(pc, Read, expr.Global("g"), st)
	addr := res.Value

	res = ev.ExitScope(pc, []DeadVar{{Name: "g"}}, res.State)
	require.True(t, res.Usable())
	assert.False(t, res.State.Attrs.Has(addr, memory.AttrStackAddress),
		"globals never carry a stack address tag")
}

func TestExitScopeAliasContradictionPrunes(t *testing.T) {
	ev, st := newEval()
	pc := pcAt("t.go:1")

	res := ev.Eval(pc, Read, expr.Var("x"), st)
	addr := res.Value
	res = ev.ExitScope(pc, []DeadVar{{Name: "x"}}, res.State)
	require.True(t, res.Usable())

	// Two stack slots can never own the same synthesized address.
	st = res.State.WithBinding("y", memory.StackOrigin("y", false, false, addr, nil))
	res = ev.ExitScope(pc, []DeadVar{{Name: "y"}}, st)
	require.Equal(t, outcome.KindUnsat, res.Kind)
	assert.NotEmpty(t, res.UnsatReason())
}

func TestExitScopeFeedsLeakSink(t *testing.T) {
	ev, st := newEval()
	pc := pcAt("t.go:1")
	sink := &recordingLeakSink{}
	ev.SetLeakSink(sink)

	res := ev.Eval(pc, Read, expr.Var("x"), st)
	addr := res.Value
	res = ev.ExitScope(pc, []DeadVar{{Name: "x"}, {Name: "never-bound"}}, res.State)
	require.True(t, res.Usable())

	assert.Equal(t, []symbol.Value{addr}, sink.dead, "only bound variables produce dead roots")
}

func TestAddressEscapeIsFatal(t *testing.T) {
	ev, st := newEval()
	pc := pcAt("t.go:1")

	res := ev.Eval(pc, Read, expr.Var("x"), st)
	addr := res.Value
	res = ev.ExitScope(pc, []DeadVar{{Name: "x"}}, res.State)
	require.True(t, res.Usable())

	esc := ev.CheckAddressEscape(pcAt("t.go:2"), addr, nil, res.State)
	require.Equal(t, outcome.KindFatal, esc.Kind)
	assert.Equal(t, outcome.CategoryStackAddressEscape, esc.Fatal.Category)
	assert.Contains(t, esc.Fatal.Message, "x")
	assert.NotEmpty(t, esc.Fatal.Trace)
}

func TestUntaggedAddressDoesNotEscape(t *testing.T) {
	ev, st := newEval()

	esc := ev.CheckAddressEscape(pcAt("t.go:1"), symbol.Fresh(), nil, st)
	assert.Equal(t, outcome.KindOk, esc.Kind)
}

func TestGlobalStorageExemptsEscape(t *testing.T) {
	ev, st := newEval()
	pc := pcAt("t.go:1")

	res := ev.Eval(pc, Read, expr.Var("x"), st)
	addr := res.Value
	// Store the local's address into a global before the scope ends.
	res = ev.WriteDeref(pc, expr.Global("g"), memory.Destination{Addr: addr}, res.State)
	require.True(t, res.Usable())
	res = ev.ExitScope(pc, []DeadVar{{Name: "x"}}, res.State)
	require.True(t, res.Usable())

	esc := ev.CheckAddressEscape(pcAt("t.go:2"), addr, nil, res.State)
	assert.Equal(t, outcome.KindOk, esc.Kind,
		"an address reachable from a global is legitimately long-lived")
}

func TestAlwaysReachableExemptsEscape(t *testing.T) {
	ev, st := newEval()
	pc := pcAt("t.go:1")

	res := ev.Eval(pc, Read, expr.Var("x"), st)
	addr := res.Value
	res = ev.ExitScope(pc, []DeadVar{{Name: "x"}}, res.State)
	require.True(t, res.Usable())

	st = res.State.WithAttr(addr, memory.AlwaysReachable{})
	esc := ev.CheckAddressEscape(pcAt("t.go:2"), addr, nil, st)
	assert.Equal(t, outcome.KindOk, esc.Kind)
}

func TestDynamicTypesOfUnreachable(t *testing.T) {
	ev, st := newEval()

	kept := symbol.Fresh()
	lostA := symbol.Fresh()
	lostB := symbol.Fresh()
	st = st.WithAttr(kept, memory.DynamicType{Type: "Kept"})
	st = st.WithAttr(lostA, memory.DynamicType{Type: "Socket"})
	st = st.WithAttr(lostB, memory.DynamicType{Type: "File"})

	types := ev.DynamicTypesOfUnreachable([]symbol.Value{kept}, st)
	assert.Equal(t, []string{"File", "Socket"}, types, "sorted, reachable types excluded")
}

func TestDynamicTypesOfUnreachableConsultsSolver(t *testing.T) {
	ev, st := newEval()
	pc := pcAt("t.go:1")

	// A class constant records its type with the solver, not as an
	// address attribute.
	res := ev.Eval(pc, Read, expr.Class("Socket"), st)
	require.True(t, res.Usable())
	res2 := ev.WriteField(pc, expr.Var("x"), "obj", memory.Destination{Addr: res.Value}, res.State)
	require.True(t, res2.Usable())
	st = res2.State

	types := ev.DynamicTypesOfUnreachable(nil, st)
	assert.Contains(t, types, "Socket")

	types = ev.DynamicTypesOfUnreachable([]symbol.Value{st.Stack["x"].Addr}, st)
	assert.NotContains(t, types, "Socket", "values still reachable are not reported")
}
