package memory

import "github.com/abint-dev/abint/internal/symbol"

// Destination is the target of a memory edge together with the history
// of how the edge came to hold that value.
type Destination struct {
	Addr symbol.Value
	Hist *symbol.History
}

// Edges is the outgoing edge table of one address.
type Edges map[Access]Destination

// Graph maps addresses to their outgoing edges. The graph may contain
// cycles; traversals carry explicit visited sets.
type Graph map[symbol.Value]Edges

// Edge looks up the outgoing edge of addr under the given label.
func (g Graph) Edge(addr symbol.Value, acc Access) (Destination, bool) {
	dst, ok := g[addr][acc]
	return dst, ok
}

// FoldEdges calls fn for every direct outgoing edge of addr. Iteration
// stops when fn returns false.
func (g Graph) FoldEdges(addr symbol.Value, fn func(Access, Destination) bool) {
	for acc, dst := range g[addr] {
		if !fn(acc, dst) {
			return
		}
	}
}

// ExistsEdge reports whether some direct outgoing edge of addr
// satisfies pred.
func (g Graph) ExistsEdge(addr symbol.Value, pred func(Access, Destination) bool) bool {
	found := false
	g.FoldEdges(addr, func(acc Access, dst Destination) bool {
		if pred(acc, dst) {
			found = true
			return false
		}
		return true
	})
	return found
}

// with returns a copy of the graph carrying the given edge. Only the
// outer map and the modified address's edge table are copied.
func (g Graph) with(addr symbol.Value, acc Access, dst Destination) Graph {
	out := make(Graph, len(g)+1)
	for k, v := range g {
		out[k] = v
	}
	edges := make(Edges, len(g[addr])+1)
	for k, v := range g[addr] {
		edges[k] = v
	}
	edges[acc] = dst
	out[addr] = edges
	return out
}

// Reachable computes the transitive closure over the graph from the
// given roots. Cycle-safe via the visited set.
func (g Graph) Reachable(roots []symbol.Value) map[symbol.Value]struct{} {
	visited := make(map[symbol.Value]struct{})
	stack := append([]symbol.Value(nil), roots...)
	for len(stack) > 0 {
		addr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[addr]; seen {
			continue
		}
		visited[addr] = struct{}{}
		for _, dst := range g[addr] {
			stack = append(stack, dst.Addr)
		}
	}
	return visited
}
