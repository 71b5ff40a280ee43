package lattice

import "github.com/abint-dev/abint/internal/symbol"

// ValueKind models the zero-ness lattice for symbolic values.
type ValueKind int

const (
	Bottom ValueKind = iota // unreachable
	Zero
	NonZero
	MaybeZero
	Top
)

func (v ValueKind) String() string {
	switch v {
	case Bottom:
		return "Bottom"
	case Zero:
		return "Zero"
	case NonZero:
		return "NonZero"
	case MaybeZero:
		return "MaybeZero"
	case Top:
		return "Top"
	default:
		return "Unknown"
	}
}

// Join returns the least upper bound in the lattice.
func Join(a, b ValueKind) ValueKind {
	if a == Bottom {
		return b
	}
	if b == Bottom {
		return a
	}
	if a == Top || b == Top {
		return Top
	}
	if a == MaybeZero || b == MaybeZero {
		return MaybeZero
	}
	if a == b {
		return a
	}
	// Zero + NonZero.
	return MaybeZero
}

// Meet returns the greatest lower bound in the lattice.
func Meet(a, b ValueKind) ValueKind {
	if a == Bottom || b == Bottom {
		return Bottom
	}
	if a == Top {
		return b
	}
	if b == Top {
		return a
	}
	if a == b {
		return a
	}
	if a == MaybeZero && (b == Zero || b == NonZero) {
		return b
	}
	if b == MaybeZero && (a == Zero || a == NonZero) {
		return a
	}
	return Bottom
}

// AbstractState maps symbolic values to their zero-ness.
// Missing entries are interpreted as Top.
type AbstractState map[symbol.Value]ValueKind

// GetValue returns the stored value or Top when absent.
// A nil state represents Bottom (unreachable).
func GetValue(state AbstractState, v symbol.Value) ValueKind {
	if state == nil {
		return Bottom
	}
	if val, ok := state[v]; ok {
		return val
	}
	return Top
}

// SetValue sets the entry or removes it when value is Top.
func SetValue(state AbstractState, v symbol.Value, value ValueKind) {
	if state == nil {
		return
	}
	if value == Top {
		delete(state, v)
		return
	}
	state[v] = value
}

// CloneState returns a shallow copy of the abstract state.
func CloneState(state AbstractState) AbstractState {
	if state == nil {
		return nil
	}
	out := make(AbstractState, len(state))
	for k, v := range state {
		out[k] = v
	}
	return out
}

// JoinStates merges two abstract states using Join on each value.
func JoinStates(a, b AbstractState) AbstractState {
	if a == nil {
		return CloneState(b)
	}
	if b == nil {
		return CloneState(a)
	}
	out := make(AbstractState)
	for v := range a {
		SetValue(out, v, Join(GetValue(a, v), GetValue(b, v)))
	}
	for v := range b {
		if _, ok := a[v]; ok {
			continue
		}
		SetValue(out, v, Join(GetValue(a, v), GetValue(b, v)))
	}
	return out
}

// StateEqual reports whether two abstract states are identical.
func StateEqual(a, b AbstractState) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
