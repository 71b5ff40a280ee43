package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshMintsDistinctValues(t *testing.T) {
	seen := make(map[Value]struct{})
	for i := 0; i < 1000; i++ {
		v := Fresh()
		_, dup := seen[v]
		require.False(t, dup, "value %s minted twice", v)
		require.NotEqual(t, None, v)
		seen[v] = struct{}{}
	}
}

func TestSequenceOnEmptyHistory(t *testing.T) {
	var h *History
	h = h.Sequence(Event{Kind: VariableDeclared, Detail: "x"})

	events := h.Events()
	require.Len(t, events, 1)
	assert.Equal(t, VariableDeclared, events[0].Kind)
	assert.Equal(t, "x", events[0].Detail)
}

func TestEventsOldestFirst(t *testing.T) {
	h := Singleton(Event{Kind: VariableDeclared, Detail: "x"}).
		Sequence(Event{Kind: Assignment, Detail: "x.f"}).
		Sequence(Event{Kind: Invalidated, Detail: "freed"})

	events := h.Events()
	require.Len(t, events, 3)
	assert.Equal(t, VariableDeclared, events[0].Kind)
	assert.Equal(t, Assignment, events[1].Kind)
	assert.Equal(t, Invalidated, events[2].Kind)
}

func TestMergeEmptyIsIdentity(t *testing.T) {
	h := Singleton(Event{Kind: Allocated})

	assert.Same(t, h, Merge("+", h, nil))
	assert.Same(t, h, Merge("+", nil, h))
	assert.Nil(t, Merge("+", nil, nil))
}

func TestMergeLinearizationIsDeterministic(t *testing.T) {
	a := Singleton(Event{Kind: VariableDeclared, Detail: "a"})
	b := Singleton(Event{Kind: VariableDeclared, Detail: "b"})

	m := Merge("+", a, b)
	events := m.Events()
	require.Len(t, events, 3)
	// First operand precedes second, merge node last.
	assert.Equal(t, "a", events[0].Detail)
	assert.Equal(t, "b", events[1].Detail)
	assert.Equal(t, Combined, events[2].Kind)
	assert.Equal(t, "+", events[2].Detail)

	// Same operands, same order, every time.
	again := Merge("+", a, b).Events()
	assert.Equal(t, events, again)
}

func TestSequenceSharesPrefix(t *testing.T) {
	base := Singleton(Event{Kind: VariableDeclared, Detail: "x"})
	left := base.Sequence(Event{Kind: Assignment, Detail: "left"})
	right := base.Sequence(Event{Kind: Assignment, Detail: "right"})

	// Branching off base must not disturb the sibling.
	assert.Equal(t, "left", left.Events()[1].Detail)
	assert.Equal(t, "right", right.Events()[1].Detail)
	require.Len(t, base.Events(), 1)
}

func TestLatest(t *testing.T) {
	var empty *History
	_, ok := empty.Latest()
	assert.False(t, ok)

	h := Singleton(Event{Kind: VariableDeclared}).Sequence(Event{Kind: Invalidated})
	e, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, Invalidated, e.Kind)
}

func TestPathContextStamp(t *testing.T) {
	pc := PathContext{Clock: 42, Location: "file.go:7"}
	e := pc.Stamp(Assignment, "x")

	assert.Equal(t, Assignment, e.Kind)
	assert.Equal(t, int64(42), e.Time)
	assert.Equal(t, "file.go:7", e.Location)
	assert.Equal(t, "x", e.Detail)
}
