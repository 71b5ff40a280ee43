package memory

import "github.com/abint-dev/abint/internal/symbol"

// OriginKind tags how a value was obtained. Used only for diagnostics
// and by escape analysis, never for heap correctness.
type OriginKind int

const (
	// OnStack: bound directly to a program variable.
	OnStack OriginKind = iota
	// InMemory: reached through a memory edge from a source address.
	InMemory
	// UnknownOrigin: freshly synthesized with no provenance.
	UnknownOrigin
)

// Origin is a value together with the path it was obtained through.
type Origin struct {
	Kind OriginKind
	Addr symbol.Value
	Hist *symbol.History

	Var    string       // OnStack: variable name
	Temp   bool         // OnStack: compiler-introduced temporary
	Global bool         // OnStack: program-level variable
	Src    symbol.Value // InMemory: source address
	Access Access       // InMemory: the edge label followed
}

// StackOrigin builds an on-stack origin.
func StackOrigin(name string, temp, global bool, addr symbol.Value, hist *symbol.History) Origin {
	return Origin{Kind: OnStack, Var: name, Temp: temp, Global: global, Addr: addr, Hist: hist}
}

// MemoryOrigin builds an in-memory origin.
func MemoryOrigin(src symbol.Value, acc Access, addr symbol.Value, hist *symbol.History) Origin {
	return Origin{Kind: InMemory, Src: src, Access: acc, Addr: addr, Hist: hist}
}

// SynthesizedOrigin builds an origin with unknown provenance.
func SynthesizedOrigin(addr symbol.Value, hist *symbol.History) Origin {
	return Origin{Kind: UnknownOrigin, Addr: addr, Hist: hist}
}

// Destination returns the origin's value and history pair.
func (o Origin) Destination() Destination {
	return Destination{Addr: o.Addr, Hist: o.Hist}
}

func (o Origin) String() string {
	switch o.Kind {
	case OnStack:
		return o.Var
	case InMemory:
		return o.Src.String() + o.Access.String()
	default:
		return o.Addr.String()
	}
}

// Stack maps program variables to their origins. A variable absent from
// the stack is unbound.
type Stack map[string]Origin

// with returns a copy of the stack carrying the binding.
func (s Stack) with(name string, o Origin) Stack {
	out := make(Stack, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[name] = o
	return out
}

// without returns a copy of the stack with the bindings removed.
func (s Stack) without(names ...string) Stack {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := make(Stack, len(s))
	for k, v := range s {
		if _, gone := drop[k]; !gone {
			out[k] = v
		}
	}
	return out
}
