// Package memory implements the per-path abstract state: the symbolic
// heap graph, the per-address attribute store, and the variable stack.
// Every operation returns a new state value; states already handed out
// are never mutated in place.
package memory

import (
	"fmt"

	"github.com/abint-dev/abint/internal/symbol"
)

// AccessKind discriminates the edge kinds out of an address.
type AccessKind int

const (
	FieldKind AccessKind = iota
	ArrayKind
	DerefKind
)

// Access labels one outgoing edge of an address. Each address has at
// most one edge per label.
type Access struct {
	Kind  AccessKind
	Field string       // FieldKind
	Index symbol.Value // ArrayKind
}

// FieldAccess creates a field-access label.
func FieldAccess(name string) Access {
	return Access{Kind: FieldKind, Field: name}
}

// ArrayAccess creates an array-access label keyed by an index value.
func ArrayAccess(idx symbol.Value) Access {
	return Access{Kind: ArrayKind, Index: idx}
}

// Dereference creates the pointer-dereference label.
func Dereference() Access {
	return Access{Kind: DerefKind}
}

// CaptureField derives the field label under which a closure stores a
// captured variable. The label encodes the capture mode and weakness so
// that distinct capture styles of the same name never collide.
func CaptureField(name string, byRef, weak bool) Access {
	mode := "byval"
	if byRef {
		mode = "byref"
	}
	if weak {
		mode += ".weak"
	}
	return Access{Kind: FieldKind, Field: "__capture." + mode + "." + name}
}

// DelegatedRelease is the field label linking a resource to the object
// whose release implies this one's.
func DelegatedRelease() Access {
	return Access{Kind: FieldKind, Field: "__delegated_release"}
}

func (a Access) String() string {
	switch a.Kind {
	case FieldKind:
		return "." + a.Field
	case ArrayKind:
		return fmt.Sprintf("[%s]", a.Index)
	case DerefKind:
		return "*"
	default:
		return "?"
	}
}
