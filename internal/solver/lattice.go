package solver

import (
	"github.com/abint-dev/abint/internal/expr"
	"github.com/abint-dev/abint/internal/lattice"
	"github.com/abint-dev/abint/internal/symbol"
)

// LatticeStore is the built-in constraint store: zero-ness per value
// plus constant-string and dynamic-type bindings.
type LatticeStore struct {
	zero    lattice.AbstractState
	strings map[symbol.Value]string
	types   map[symbol.Value]string
}

// NewStore creates an empty built-in store.
func NewStore() *LatticeStore {
	return &LatticeStore{
		zero:    make(lattice.AbstractState),
		strings: make(map[symbol.Value]string),
		types:   make(map[symbol.Value]string),
	}
}

// Clone returns an independent copy of the store.
func (s *LatticeStore) Clone() Store {
	out := NewStore()
	out.zero = lattice.CloneState(s.zero)
	for k, v := range s.strings {
		out.strings[k] = v
	}
	for k, v := range s.types {
		out.types[k] = v
	}
	return out
}

// Zeroness returns the recorded zero-ness of a value.
func (s *LatticeStore) Zeroness(v symbol.Value) lattice.ValueKind {
	return lattice.GetValue(s.zero, v)
}

// WithDynamicType returns a copy of the store carrying a dynamic-type
// fact. The receiver is left untouched, like every other store update.
func (s *LatticeStore) WithDynamicType(v symbol.Value, typ string) *LatticeStore {
	out := s.Clone().(*LatticeStore)
	out.types[v] = typ
	return out
}

// Join merges two stores where execution paths meet: zero-ness facts
// take the lattice join, and constant-string and dynamic-type bindings
// survive only when both branches agree. The second result reports
// whether the join learned anything the receiver did not already know,
// which fixpoint drivers use to detect convergence.
func (s *LatticeStore) Join(other *LatticeStore) (*LatticeStore, bool) {
	out := NewStore()
	out.zero = lattice.JoinStates(s.zero, other.zero)
	for k, v := range s.strings {
		if ov, ok := other.strings[k]; ok && ov == v {
			out.strings[k] = v
		}
	}
	for k, v := range s.types {
		if ov, ok := other.types[k]; ok && ov == v {
			out.types[k] = v
		}
	}
	return out, !lattice.StateEqual(out.zero, s.zero)
}

// Lattice is the built-in solver. It reasons only about zero-ness,
// constant strings, and dynamic types; everything it cannot decide is
// reported satisfiable so that no path is pruned on unknown facts.
type Lattice struct{}

var _ Solver = Lattice{}

func (Lattice) store(st Store) *LatticeStore {
	if ls, ok := st.(*LatticeStore); ok {
		return ls
	}
	return NewStore()
}

func (l Lattice) AssertEqual(st Store, a, b symbol.Value, negated bool) (Store, bool) {
	ls := l.store(st).Clone().(*LatticeStore)
	if a == b {
		// x == x is trivially true; x != x is infeasible.
		return ls, !negated
	}

	// Equality transfers zero-ness both ways; disequality refines only
	// against a known-zero operand.
	ka := lattice.GetValue(ls.zero, a)
	kb := lattice.GetValue(ls.zero, b)
	if !negated {
		met := lattice.Meet(ka, kb)
		if met == lattice.Bottom {
			return ls, false
		}
		lattice.SetValue(ls.zero, a, met)
		lattice.SetValue(ls.zero, b, met)
		return ls, true
	}
	if ka == lattice.Zero {
		met := lattice.Meet(kb, lattice.NonZero)
		if met == lattice.Bottom {
			return ls, false
		}
		lattice.SetValue(ls.zero, b, met)
	}
	if kb == lattice.Zero {
		met := lattice.Meet(ka, lattice.NonZero)
		if met == lattice.Bottom {
			return ls, false
		}
		lattice.SetValue(ls.zero, a, met)
	}
	return ls, true
}

func (l Lattice) AssertBinop(st Store, op expr.BinaryOp, a, b symbol.Value, negated bool) (Store, bool) {
	switch op {
	case expr.OpEq:
		return l.AssertEqual(st, a, b, negated)
	case expr.OpNeq:
		return l.AssertEqual(st, a, b, !negated)
	default:
		// Ordering and arithmetic predicates are beyond the built-in
		// lattice; stay satisfiable.
		return l.store(st).Clone().(*LatticeStore), true
	}
}

func (l Lattice) EvalConst(st Store, dst symbol.Value, lit expr.Literal) Store {
	ls := l.store(st).Clone().(*LatticeStore)
	switch c := lit.(type) {
	case expr.IntLit:
		if c.Val == 0 {
			lattice.SetValue(ls.zero, dst, lattice.Zero)
		} else {
			lattice.SetValue(ls.zero, dst, lattice.NonZero)
		}
	case expr.FloatLit:
		if c.Val == 0 {
			lattice.SetValue(ls.zero, dst, lattice.Zero)
		} else {
			lattice.SetValue(ls.zero, dst, lattice.NonZero)
		}
	case expr.StrLit:
		ls.strings[dst] = c.Val
		lattice.SetValue(ls.zero, dst, lattice.NonZero)
	case expr.ClassLit:
		ls.types[dst] = c.Name
		lattice.SetValue(ls.zero, dst, lattice.NonZero)
	}
	return ls
}

func (l Lattice) EvalUnop(st Store, op expr.UnaryOp, dst, operand symbol.Value) Store {
	ls := l.store(st).Clone().(*LatticeStore)
	if op == expr.OpNeg {
		// Negation preserves zero-ness.
		lattice.SetValue(ls.zero, dst, lattice.GetValue(ls.zero, operand))
	}
	return ls
}

func (l Lattice) EvalBinop(st Store, op expr.BinaryOp, dst, a, b symbol.Value) Store {
	ls := l.store(st).Clone().(*LatticeStore)
	ka := lattice.GetValue(ls.zero, a)
	kb := lattice.GetValue(ls.zero, b)
	switch op {
	case expr.OpAdd, expr.OpSub:
		if ka == lattice.Zero && kb == lattice.Zero {
			lattice.SetValue(ls.zero, dst, lattice.Zero)
		}
	case expr.OpMul:
		if ka == lattice.Zero || kb == lattice.Zero {
			lattice.SetValue(ls.zero, dst, lattice.Zero)
		} else if ka == lattice.NonZero && kb == lattice.NonZero {
			lattice.SetValue(ls.zero, dst, lattice.NonZero)
		}
	}
	return ls
}

func (l Lattice) DynamicType(st Store, v symbol.Value) (string, bool) {
	typ, ok := l.store(st).types[v]
	return typ, ok
}

func (l Lattice) CopyTypeConstraints(st Store, from, to symbol.Value) Store {
	ls := l.store(st).Clone().(*LatticeStore)
	if k := lattice.GetValue(ls.zero, from); k != lattice.Top {
		lattice.SetValue(ls.zero, to, k)
	}
	if s, ok := ls.strings[from]; ok {
		ls.strings[to] = s
	}
	if t, ok := ls.types[from]; ok {
		ls.types[to] = t
	}
	return ls
}

func (l Lattice) AsConstantString(st Store, v symbol.Value) (string, bool) {
	s, ok := l.store(st).strings[v]
	return s, ok
}
