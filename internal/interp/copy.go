package interp

import (
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/symbol"
)

// ShallowCopy mints a new address sharing the source's outgoing edges
// and attributes (structural aliasing at depth 1) and copies numeric
// and type constraints onto the copy.
func (ev *Evaluator) ShallowCopy(pc symbol.PathContext, src memory.Origin, st *memory.State) outcome.Result {
	st, dst := ev.shallowCopyAddr(st, src.Addr)
	hist := src.Hist.Sequence(pc.Stamp(symbol.Assignment, "copy"))
	return outcome.Ok(st, dst, hist)
}

func (ev *Evaluator) shallowCopyAddr(st *memory.State, src symbol.Value) (*memory.State, symbol.Value) {
	dst := symbol.Fresh()
	st = st.WithSharedEdges(src, dst)
	st = st.CopyAttrs(src, dst)
	st = st.WithConstraints(ev.solver.CopyTypeConstraints(st.Constraints, src, dst))
	return st, dst
}

// DeepCopy recursively clones the reachable subgraph of src up to the
// given depth, guaranteeing no edge is shared between original and copy
// above the cutoff. Depth 0 degrades to a shallow copy. Cycles in the
// source graph map onto cycles in the copy.
func (ev *Evaluator) DeepCopy(pc symbol.PathContext, src memory.Origin, depth int, st *memory.State) outcome.Result {
	if depth > ev.cfg.MaxDeepCopyDepth {
		depth = ev.cfg.MaxDeepCopyDepth
	}
	seen := make(map[symbol.Value]symbol.Value)
	st, dst := ev.deepCopyAddr(st, src.Addr, depth, seen)
	hist := src.Hist.Sequence(pc.Stamp(symbol.Assignment, "deep copy"))
	return outcome.Ok(st, dst, hist)
}

func (ev *Evaluator) deepCopyAddr(st *memory.State, src symbol.Value, depth int, seen map[symbol.Value]symbol.Value) (*memory.State, symbol.Value) {
	if dst, ok := seen[src]; ok {
		return st, dst
	}
	if depth <= 0 {
		return ev.shallowCopyAddr(st, src)
	}

	dst := symbol.Fresh()
	seen[src] = dst

	type edge struct {
		acc memory.Access
		dst memory.Destination
	}
	var edges []edge
	st.Heap.FoldEdges(src, func(acc memory.Access, d memory.Destination) bool {
		edges = append(edges, edge{acc, d})
		return true
	})
	for _, e := range edges {
		var child symbol.Value
		st, child = ev.deepCopyAddr(st, e.dst.Addr, depth-1, seen)
		st = st.WithEdge(dst, e.acc, memory.Destination{Addr: child, Hist: e.dst.Hist})
	}

	st = st.CopyAttrs(src, dst)
	st = st.WithConstraints(ev.solver.CopyTypeConstraints(st.Constraints, src, dst))
	return st, dst
}
