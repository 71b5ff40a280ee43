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

func TestReadUnknownKeyRecordsPresence(t *testing.T) {
	ev, st := newEval()
	d := expr.Var("d")

	res := ev.ReadDictKey(pcAt("t.go:1"), d, "host", st)
	require.Equal(t, outcome.KindOk, res.Kind)
	require.NotEqual(t, symbol.None, res.Value)
	st = res.State

	attr, ok := st.Attrs.Get(st.Stack["d"].Addr, memory.AttrDictKeys)
	require.True(t, ok)
	assert.True(t, attr.(memory.DictKeys).Keys["host"])
}

func TestReadAbsentKeyIsRecoverable(t *testing.T) {
	ev, st := newEval()
	d := expr.Var("d")

	res := ev.MarkDictKeyAbsent(pcAt("t.go:1"), d, "port", st)
	require.True(t, res.Usable())

	res = ev.ReadDictKey(pcAt("t.go:2"), d, "port", res.State)
	require.Equal(t, outcome.KindRecoverable, res.Kind)
	require.Len(t, res.Diags, 1)
	assert.Equal(t, outcome.CategoryMissingDictKey, res.Diags[0].Category)
	assert.Contains(t, res.Diags[0].Message, "port")
	assert.NotEqual(t, symbol.None, res.Value, "execution continues as if the read succeeded")
}

func TestWriteDictKeyMakesReadClean(t *testing.T) {
	ev, st := newEval()
	d := expr.Var("d")

	res := ev.MarkDictKeyAbsent(pcAt("t.go:1"), d, "port", st)
	require.True(t, res.Usable())
	res = ev.WriteDictKey(pcAt("t.go:2"), d, "port", memory.Destination{Addr: symbol.Fresh()}, res.State)
	require.True(t, res.Usable())

	res = ev.ReadDictKey(pcAt("t.go:3"), d, "port", res.State)
	assert.Equal(t, outcome.KindOk, res.Kind, "a written key is present again")
}

func TestReadDictKeyExprResolvesConstantKeys(t *testing.T) {
	ev, st := newEval()
	d := expr.Var("d")

	res := ev.MarkDictKeyAbsent(pcAt("t.go:1"), d, "port", st)
	require.True(t, res.Usable())

	// The string literal is resolved through the solver's constant
	// bindings and hits the recorded absence.
	res = ev.ReadDictKeyExpr(pcAt("t.go:2"), d, expr.Str("port"), res.State)
	require.Equal(t, outcome.KindRecoverable, res.Kind)
	require.Len(t, res.Diags, 1)
	assert.Equal(t, outcome.CategoryMissingDictKey, res.Diags[0].Category)
}

func TestReadDictKeyExprOpaqueKey(t *testing.T) {
	ev, st := newEval()
	d := expr.Var("d")

	res := ev.WriteDictKey(pcAt("t.go:1"), d, "host", memory.Destination{Addr: symbol.Fresh()}, st)
	require.True(t, res.Usable())

	// A non-constant key carries no presence facts; the read behaves
	// like a plain indexed access and stays stable across evaluations.
	res = ev.ReadDictKeyExpr(pcAt("t.go:2"), d, expr.Var("k"), res.State)
	require.Equal(t, outcome.KindOk, res.Kind)
	again := ev.ReadDictKeyExpr(pcAt("t.go:3"), d, expr.Var("k"), res.State)
	require.Equal(t, outcome.KindOk, again.Kind)
	assert.Equal(t, res.Value, again.Value)
}

func TestDistinctKeysAreIndependent(t *testing.T) {
	ev, st := newEval()
	d := expr.Var("d")

	res := ev.MarkDictKeyAbsent(pcAt("t.go:1"), d, "a", st)
	require.True(t, res.Usable())
	res = ev.ReadDictKey(pcAt("t.go:2"), d, "b", res.State)
	assert.Equal(t, outcome.KindOk, res.Kind)
}
