package lattice

import (
	"testing"

	"github.com/abint-dev/abint/internal/symbol"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		a, b, want ValueKind
	}{
		{Bottom, Zero, Zero},
		{Zero, Bottom, Zero},
		{Zero, Zero, Zero},
		{NonZero, NonZero, NonZero},
		{Zero, NonZero, MaybeZero},
		{NonZero, Zero, MaybeZero},
		{MaybeZero, Zero, MaybeZero},
		{Top, Zero, Top},
		{Zero, Top, Top},
	}
	for _, tt := range tests {
		if got := Join(tt.a, tt.b); got != tt.want {
			t.Errorf("Join(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMeet(t *testing.T) {
	tests := []struct {
		a, b, want ValueKind
	}{
		{Bottom, Zero, Bottom},
		{Zero, NonZero, Bottom},
		{Zero, Zero, Zero},
		{Top, Zero, Zero},
		{Zero, Top, Zero},
		{MaybeZero, Zero, Zero},
		{MaybeZero, NonZero, NonZero},
		{Top, Top, Top},
	}
	for _, tt := range tests {
		if got := Meet(tt.a, tt.b); got != tt.want {
			t.Errorf("Meet(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGetValueDefaults(t *testing.T) {
	var nilState AbstractState
	v := symbol.Fresh()
	if got := GetValue(nilState, v); got != Bottom {
		t.Errorf("nil state should be Bottom, got %v", got)
	}

	state := make(AbstractState)
	if got := GetValue(state, v); got != Top {
		t.Errorf("missing entry should be Top, got %v", got)
	}
}

func TestSetValueTopRemovesEntry(t *testing.T) {
	state := make(AbstractState)
	v := symbol.Fresh()
	SetValue(state, v, Zero)
	SetValue(state, v, Top)
	if _, ok := state[v]; ok {
		t.Error("Top entry should have been removed")
	}
}

func TestJoinStates(t *testing.T) {
	a := make(AbstractState)
	b := make(AbstractState)
	x, y := symbol.Fresh(), symbol.Fresh()
	SetValue(a, x, Zero)
	SetValue(b, x, NonZero)
	SetValue(a, y, Zero)

	out := JoinStates(a, b)
	if got := GetValue(out, x); got != MaybeZero {
		t.Errorf("joined x = %v, want MaybeZero", got)
	}
	// y is Top in b, so the join is Top.
	if got := GetValue(out, y); got != Top {
		t.Errorf("joined y = %v, want Top", got)
	}
}

func TestStateEqual(t *testing.T) {
	a := make(AbstractState)
	b := make(AbstractState)
	v := symbol.Fresh()
	SetValue(a, v, Zero)
	if StateEqual(a, b) {
		t.Error("states with different entries reported equal")
	}
	SetValue(b, v, Zero)
	if !StateEqual(a, b) {
		t.Error("identical states reported unequal")
	}
}

func TestCloneStateIsIndependent(t *testing.T) {
	a := make(AbstractState)
	v := symbol.Fresh()
	SetValue(a, v, Zero)

	c := CloneState(a)
	SetValue(c, v, NonZero)
	if got := GetValue(a, v); got != Zero {
		t.Errorf("mutating the clone changed the original: %v", got)
	}
}
