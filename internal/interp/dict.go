package interp

import (
	"github.com/abint-dev/abint/internal/expr"
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/symbol"
)

// ReadDictKey reads a key out of a dictionary-like object. A key
// recorded as provably absent is a recoverable defect: the bug is
// reported and execution proceeds as if the read had succeeded. A key
// of unknown presence is conservatively recorded present.
func (ev *Evaluator) ReadDictKey(pc symbol.PathContext, base expr.Expr, key string, st *memory.State) outcome.Result {
	return ev.Eval(pc, Read, base, st).AndThen(func(st *memory.State, baseAddr symbol.Value, baseHist *symbol.History) outcome.Result {
		keys := memory.DictKeys{}
		if attr, ok := st.Attrs.Get(baseAddr, memory.AttrDictKeys); ok {
			keys = attr.(memory.DictKeys)
		}

		present, known := keys.Keys[key]
		if !known {
			st = st.WithAttr(baseAddr, keys.WithKey(key, true))
		}

		st, dst := st.EvalEdge(baseAddr, memory.FieldAccess(key), baseHist)
		if known && !present {
			diag := outcome.Diagnostic{
				Category:    outcome.CategoryMissingDictKey,
				Message:     "key " + key + " is provably absent",
				Access:      ev.dec.Find(baseAddr, st),
				Location:    pc.Location,
				AccessTrace: baseHist.Events(),
			}
			return outcome.Recoverable(st, dst.Addr, dst.Hist, diag)
		}
		return outcome.Ok(st, dst.Addr, dst.Hist)
	})
}

// ReadDictKeyExpr reads a dictionary entry whose key is computed. A key
// the solver resolves to a constant string gets the full presence
// bookkeeping of ReadDictKey; any other key is an opaque indexed access
// with no presence facts to consult.
func (ev *Evaluator) ReadDictKeyExpr(pc symbol.PathContext, base, key expr.Expr, st *memory.State) outcome.Result {
	return ev.Eval(pc, Read, key, st).AndThen(func(st *memory.State, kv symbol.Value, _ *symbol.History) outcome.Result {
		if name, ok := ev.solver.AsConstantString(st.Constraints, kv); ok {
			return ev.ReadDictKey(pc, base, name, st)
		}
		res, _ := ev.evalAccess(pc, Read, base, memory.ArrayAccess(kv), st)
		return res
	})
}

// WriteDictKey installs a key's value and records the key present.
func (ev *Evaluator) WriteDictKey(pc symbol.PathContext, base expr.Expr, key string, val memory.Destination, st *memory.State) outcome.Result {
	return ev.Eval(pc, Read, base, st).AndThen(func(st *memory.State, baseAddr symbol.Value, baseHist *symbol.History) outcome.Result {
		keys := memory.DictKeys{}
		if attr, ok := st.Attrs.Get(baseAddr, memory.AttrDictKeys); ok {
			keys = attr.(memory.DictKeys)
		}
		st = st.WithAttr(baseAddr, keys.WithKey(key, true))
		return ev.WriteField(pc, base, key, val, st)
	})
}

// MarkDictKeyAbsent records that a key is provably absent from the
// dictionary at base, typically after a failed containment check.
func (ev *Evaluator) MarkDictKeyAbsent(pc symbol.PathContext, base expr.Expr, key string, st *memory.State) outcome.Result {
	return ev.Eval(pc, Read, base, st).AndThen(func(st *memory.State, baseAddr symbol.Value, _ *symbol.History) outcome.Result {
		keys := memory.DictKeys{}
		if attr, ok := st.Attrs.Get(baseAddr, memory.AttrDictKeys); ok {
			keys = attr.(memory.DictKeys)
		}
		return outcome.OkState(st.WithAttr(baseAddr, keys.WithKey(key, false)))
	})
}
