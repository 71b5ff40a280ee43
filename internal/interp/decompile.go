package interp

import (
	"sort"

	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/symbol"
)

// pathDecompiler is the default diagnostic-naming module: it walks the
// stack and heap edges from the program variables to rebuild a source
// level description of an address (`x`, `x.f`, `*p`, `a[i]`).
type pathDecompiler struct{}

func (pathDecompiler) Find(addr symbol.Value, st *memory.State) string {
	names := make([]string, 0, len(st.Stack))
	for name := range st.Stack {
		names = append(names, name)
	}
	sort.Strings(names)

	type node struct {
		addr symbol.Value
		desc string
	}
	var queue []node
	visited := make(map[symbol.Value]struct{})
	for _, name := range names {
		o := st.Stack[name]
		if o.Addr == addr {
			return name
		}
		if _, seen := visited[o.Addr]; seen {
			continue
		}
		visited[o.Addr] = struct{}{}
		queue = append(queue, node{addr: o.Addr, desc: name})
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		// Deterministic edge order.
		type step struct {
			acc memory.Access
			dst memory.Destination
		}
		var steps []step
		st.Heap.FoldEdges(n.addr, func(acc memory.Access, dst memory.Destination) bool {
			steps = append(steps, step{acc, dst})
			return true
		})
		sort.Slice(steps, func(i, j int) bool {
			return steps[i].acc.String() < steps[j].acc.String()
		})

		for _, s := range steps {
			desc := describeStep(n.desc, s.acc)
			if s.dst.Addr == addr {
				return desc
			}
			if _, seen := visited[s.dst.Addr]; seen {
				continue
			}
			visited[s.dst.Addr] = struct{}{}
			queue = append(queue, node{addr: s.dst.Addr, desc: desc})
		}
	}
	return addr.String()
}

func describeStep(base string, acc memory.Access) string {
	if acc.Kind == memory.DerefKind {
		return "*" + base
	}
	return base + acc.String()
}
