// Package outcome implements the two-layer result algebra every memory
// operation returns: a feasibility layer (satisfiable or not) and,
// inside the satisfiable case, an error layer (ok, recoverable defect,
// fatal defect).
package outcome

import (
	"strings"

	"github.com/abint-dev/abint/internal/symbol"
)

// Diagnostic categories.
const (
	CategoryInvalidAccess      = "access to invalid address"
	CategoryUninitializedRead  = "uninitialized read"
	CategoryMissingDictKey     = "read of missing dictionary key"
	CategoryStackAddressEscape = "stack variable address escape"
)

// Diagnostic describes one defect candidate found on a path.
type Diagnostic struct {
	Category string
	Message  string
	Access   string // decompiled source-level description of the value
	Location string

	// Trace replays why the value had its defective state, e.g. the
	// invalidation history. AccessTrace replays the access that
	// tripped over it.
	Trace       []symbol.Event
	AccessTrace []symbol.Event
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Category)
	if d.Access != "" {
		b.WriteString(" `" + d.Access + "`")
	}
	if d.Message != "" {
		b.WriteString(": " + d.Message)
	}
	if d.Location != "" {
		b.WriteString(" at " + d.Location)
	}
	return b.String()
}
