package memory

import (
	"github.com/abint-dev/abint/internal/solver"
	"github.com/abint-dev/abint/internal/symbol"
)

// State is one symbolic execution path's abstract program state: the
// variable stack, the heap graph, the attribute store, and the opaque
// constraint store. Operations return fresh states; a State already
// handed out is never mutated, which lets the driver branch on states
// without synchronization.
type State struct {
	Stack       Stack
	Heap        Graph
	Attrs       AttrStore
	Constraints solver.Store
}

// New creates an empty state over the given constraint store.
func New(store solver.Store) *State {
	return &State{
		Stack:       make(Stack),
		Heap:        make(Graph),
		Attrs:       make(AttrStore),
		Constraints: store,
	}
}

// WithEdge returns a state carrying the given edge, overwriting any
// previous edge under the same label.
func (s *State) WithEdge(addr symbol.Value, acc Access, dst Destination) *State {
	out := *s
	out.Heap = s.Heap.with(addr, acc, dst)
	return &out
}

// EvalEdge looks up the outgoing edge of addr under acc, minting a
// fresh destination and edge when none exists yet. Subsequent calls
// reuse the minted destination.
func (s *State) EvalEdge(addr symbol.Value, acc Access, hist *symbol.History) (*State, Destination) {
	if dst, ok := s.Heap.Edge(addr, acc); ok {
		return s, dst
	}
	dst := Destination{Addr: symbol.Fresh(), Hist: hist}
	return s.WithEdge(addr, acc, dst), dst
}

// WithSharedEdges returns a state in which to shares from's entire
// outgoing edge table. Later writes through either address copy before
// modifying, so the sharing is observational only.
func (s *State) WithSharedEdges(from, to symbol.Value) *State {
	edges, ok := s.Heap[from]
	if !ok {
		return s
	}
	heap := make(Graph, len(s.Heap)+1)
	for k, v := range s.Heap {
		heap[k] = v
	}
	heap[to] = edges
	out := *s
	out.Heap = heap
	return &out
}

// WithAttr returns a state with the attribute added on addr.
func (s *State) WithAttr(addr symbol.Value, attr Attribute) *State {
	out := *s
	out.Attrs = s.Attrs.with(addr, attr)
	return &out
}

// WithoutAttr returns a state with the attribute removed from addr.
func (s *State) WithoutAttr(addr symbol.Value, kind AttrKind) *State {
	out := *s
	out.Attrs = s.Attrs.without(addr, kind)
	return &out
}

// CopyAttrs returns a state in which to carries all attributes of from.
func (s *State) CopyAttrs(from, to symbol.Value) *State {
	out := *s
	out.Attrs = s.Attrs.copyAll(from, to)
	return &out
}

// WithBinding returns a state with the variable bound.
func (s *State) WithBinding(name string, o Origin) *State {
	out := *s
	out.Stack = s.Stack.with(name, o)
	return &out
}

// WithoutBindings returns a state with the variables unbound.
func (s *State) WithoutBindings(names ...string) *State {
	out := *s
	out.Stack = s.Stack.without(names...)
	return &out
}

// WithConstraints returns a state over the given constraint store.
func (s *State) WithConstraints(store solver.Store) *State {
	out := *s
	out.Constraints = store
	return &out
}

// Reachable computes the addresses reachable from the given roots.
func (s *State) Reachable(roots []symbol.Value) map[symbol.Value]struct{} {
	return s.Heap.Reachable(roots)
}

// StackRoots returns the addresses directly bound on the stack.
func (s *State) StackRoots() []symbol.Value {
	roots := make([]symbol.Value, 0, len(s.Stack))
	for _, o := range s.Stack {
		roots = append(roots, o.Addr)
	}
	return roots
}

// Describe renders an address's attributes, for debugging.
func (s *State) Describe(addr symbol.Value) string {
	return s.Attrs.describe(addr)
}
