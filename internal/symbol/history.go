package symbol

import "strings"

// EventKind classifies a provenance event.
type EventKind int

const (
	_ EventKind = iota
	// VariableDeclared records the first binding of a program variable.
	VariableDeclared
	// Assignment records a write through an access path.
	Assignment
	// Captured records a variable captured by a closure.
	Captured
	// Allocated records the allocation site of an address.
	Allocated
	// Invalidated records the point where an address became invalid.
	Invalidated
	// ComparedToNull records an equality test against the null constant.
	ComparedToNull
	// Combined records a value produced by an operator over other values.
	Combined
	// TaggedStackAddress records a stack or temporary address observed at
	// scope exit.
	TaggedStackAddress
	// Released records a resource release.
	Released
)

func (k EventKind) String() string {
	switch k {
	case VariableDeclared:
		return "declared"
	case Assignment:
		return "assigned"
	case Captured:
		return "captured"
	case Allocated:
		return "allocated"
	case Invalidated:
		return "invalidated"
	case ComparedToNull:
		return "compared to null"
	case Combined:
		return "combined"
	case TaggedStackAddress:
		return "stack address"
	case Released:
		return "released"
	default:
		return "?"
	}
}

// Event is one provenance fact, stamped with the path clock so that
// events within one path have a deterministic total order.
type Event struct {
	Kind     EventKind
	Time     int64
	Location string
	Detail   string
}

func (e Event) String() string {
	s := e.Kind.String()
	if e.Detail != "" {
		s += " " + e.Detail
	}
	if e.Location != "" {
		s += " at " + e.Location
	}
	return s
}

// History is an immutable, append-only causal trail of events. The nil
// history is empty and is the identity element for Merge. Sequencing and
// merging share structure, so branching paths share history prefixes.
type History struct {
	event  Event
	prev   *History
	branch *History // second operand of a merge, nil otherwise
	op     string   // operator tag, set only on merge nodes
}

// Singleton wraps one event into a history.
func Singleton(e Event) *History {
	return &History{event: e}
}

// Sequence appends an event onto h. A nil h is the empty history.
func (h *History) Sequence(e Event) *History {
	return &History{event: e, prev: h}
}

// Merge combines two histories under a binary operator tag. Merging with
// the empty history returns the other operand unchanged.
func Merge(op string, a, b *History) *History {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &History{
		event:  Event{Kind: Combined, Detail: op},
		prev:   a,
		branch: b,
		op:     op,
	}
}

// Events linearizes the history, oldest event first. The order is
// deterministic: on a merge node the first operand's events precede the
// second operand's.
func (h *History) Events() []Event {
	var out []Event
	h.collect(&out)
	return out
}

func (h *History) collect(out *[]Event) {
	if h == nil {
		return
	}
	h.prev.collect(out)
	h.branch.collect(out)
	*out = append(*out, h.event)
}

// Latest returns the most recent event and false when h is empty.
func (h *History) Latest() (Event, bool) {
	if h == nil {
		return Event{}, false
	}
	return h.event, true
}

func (h *History) String() string {
	events := h.Events()
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}
