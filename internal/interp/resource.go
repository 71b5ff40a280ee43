package interp

import (
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/symbol"
)

// JavaResourceRelease marks a resource released under the Java lifetime
// model, following delegated-release edges when recursive.
func (ev *Evaluator) JavaResourceRelease(pc symbol.PathContext, addr symbol.Value, recursive bool, st *memory.State) *memory.State {
	return ev.release(pc, memory.JavaResource, addr, recursive, st)
}

// CSharpResourceRelease marks a resource released under the C# lifetime
// model, following delegated-release edges when recursive.
func (ev *Evaluator) CSharpResourceRelease(pc symbol.PathContext, addr symbol.Value, recursive bool, st *memory.State) *memory.State {
	return ev.release(pc, memory.CSharpResource, addr, recursive, st)
}

// ReleaseResource releases under the configured object model.
func (ev *Evaluator) ReleaseResource(pc symbol.PathContext, addr symbol.Value, recursive bool, st *memory.State) *memory.State {
	return ev.release(pc, ev.cfg.ResourceModel(), addr, recursive, st)
}

// release walks the delegation chain, marking each resource released.
// The visited set makes cyclic delegation terminate.
func (ev *Evaluator) release(pc symbol.PathContext, model memory.ResourceModel, addr symbol.Value, recursive bool, st *memory.State) *memory.State {
	visited := make(map[symbol.Value]struct{})
	for {
		if _, seen := visited[addr]; seen {
			return st
		}
		visited[addr] = struct{}{}

		models := model
		if attr, ok := st.Attrs.Get(addr, memory.AttrReleased); ok {
			models |= attr.(memory.Released).Models
		}
		st = st.WithAttr(addr, memory.Released{Models: models})

		if !recursive {
			return st
		}
		dst, ok := st.Heap.Edge(addr, memory.DelegatedRelease())
		if !ok {
			return st
		}
		addr = dst.Addr
	}
}
