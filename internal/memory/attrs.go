package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abint-dev/abint/internal/symbol"
)

// AttrKind identifies one orthogonal attribute of an address. No
// attribute implies another.
type AttrKind int

const (
	AttrInvalid AttrKind = iota
	AttrInitialized
	AttrAllocated
	AttrDynamicType
	AttrClosure
	AttrAlwaysReachable
	AttrReleased
	AttrUnknownEffect
	AttrStackAddress
	AttrConfigUsage
	AttrDictKeys
)

func (k AttrKind) String() string {
	switch k {
	case AttrInvalid:
		return "invalid"
	case AttrInitialized:
		return "initialized"
	case AttrAllocated:
		return "allocated"
	case AttrDynamicType:
		return "dynamic type"
	case AttrClosure:
		return "closure"
	case AttrAlwaysReachable:
		return "always reachable"
	case AttrReleased:
		return "released"
	case AttrUnknownEffect:
		return "unknown effect"
	case AttrStackAddress:
		return "stack address"
	case AttrConfigUsage:
		return "config usage"
	case AttrDictKeys:
		return "dict keys"
	default:
		return "?"
	}
}

// InvalidCause says why an address became invalid.
type InvalidCause int

const (
	CauseFree InvalidCause = iota
	CauseComparedToNull
	CauseConstantDereference
	CauseGoneOutOfScope
)

func (c InvalidCause) String() string {
	switch c {
	case CauseFree:
		return "freed"
	case CauseComparedToNull:
		return "compared to null"
	case CauseConstantDereference:
		return "constant dereference"
	case CauseGoneOutOfScope:
		return "gone out of scope"
	default:
		return "?"
	}
}

// ResourceModel is a bitmask of object-lifetime models under which a
// resource can be marked released.
type ResourceModel uint8

const (
	JavaResource ResourceModel = 1 << iota
	CSharpResource
)

func (m ResourceModel) String() string {
	var parts []string
	if m&JavaResource != 0 {
		parts = append(parts, "java")
	}
	if m&CSharpResource != 0 {
		parts = append(parts, "csharp")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Attribute is one piece of per-address metadata.
type Attribute interface {
	isAttribute()
	Kind() AttrKind
	String() string
}

// Invalid marks an address whose contents must not be accessed. Once
// set it is never cleared within a state.
type Invalid struct {
	Cause InvalidCause
	Trace *symbol.History
}

func (Invalid) isAttribute()     {}
func (Invalid) Kind() AttrKind   { return AttrInvalid }
func (a Invalid) String() string { return "invalid (" + a.Cause.String() + ")" }

// Initialized marks an address whose contents have been established by
// a write or conservatively assumed. Monotone: never removed.
type Initialized struct{}

func (Initialized) isAttribute()   {}
func (Initialized) Kind() AttrKind { return AttrInitialized }
func (Initialized) String() string { return "initialized" }

// Allocated records the allocator and allocation site.
type Allocated struct {
	Allocator string
	Site      string
}

func (Allocated) isAttribute()     {}
func (Allocated) Kind() AttrKind   { return AttrAllocated }
func (a Allocated) String() string { return "allocated by " + a.Allocator + " at " + a.Site }

// DynamicType records the dynamic type of the address's contents.
type DynamicType struct {
	Type string
}

func (DynamicType) isAttribute()     {}
func (DynamicType) Kind() AttrKind   { return AttrDynamicType }
func (a DynamicType) String() string { return "type " + a.Type }

// Closure records the procedure identity of a function value. Captured
// variables live as capture-field edges in the heap graph.
type Closure struct {
	Proc   string
	Lambda bool
}

func (Closure) isAttribute()     {}
func (Closure) Kind() AttrKind   { return AttrClosure }
func (a Closure) String() string { return "closure " + a.Proc }

// AlwaysReachable exempts an address from leak and escape checks.
type AlwaysReachable struct{}

func (AlwaysReachable) isAttribute()   {}
func (AlwaysReachable) Kind() AttrKind { return AttrAlwaysReachable }
func (AlwaysReachable) String() string { return "always reachable" }

// Released marks a resource released under one or more lifetime models.
type Released struct {
	Models ResourceModel
}

func (Released) isAttribute()     {}
func (Released) Kind() AttrKind   { return AttrReleased }
func (a Released) String() string { return "released (" + a.Models.String() + ")" }

// UnknownEffect marks an address whose contents were invalidated by an
// opaque call; reads through it are downgraded to avoid noise.
type UnknownEffect struct {
	Call string
	Hist *symbol.History
}

func (UnknownEffect) isAttribute()     {}
func (UnknownEffect) Kind() AttrKind   { return AttrUnknownEffect }
func (a UnknownEffect) String() string { return "unknown effect of " + a.Call }

// StackAddress tags the address of a stack variable or temporary
// observed at scope exit. The escape check fires on it later unless the
// address was stored into a global.
type StackAddress struct {
	Var  string
	Temp bool
	Hist *symbol.History
}

func (StackAddress) isAttribute()   {}
func (StackAddress) Kind() AttrKind { return AttrStackAddress }
func (a StackAddress) String() string {
	if a.Temp {
		return "address of temporary " + a.Var
	}
	return "address of stack variable " + a.Var
}

// ConfigUsage marks an address read from dynamic configuration.
type ConfigUsage struct {
	Key string
}

func (ConfigUsage) isAttribute()     {}
func (ConfigUsage) Kind() AttrKind   { return AttrConfigUsage }
func (a ConfigUsage) String() string { return "config usage " + a.Key }

// DictKeys records which dictionary keys are known present or absent.
// The map is treated as immutable; WithKey builds an extended copy.
type DictKeys struct {
	Keys map[string]bool
}

func (DictKeys) isAttribute()   {}
func (DictKeys) Kind() AttrKind { return AttrDictKeys }
func (a DictKeys) String() string {
	names := make([]string, 0, len(a.Keys))
	for k, present := range a.Keys {
		if present {
			names = append(names, "+"+k)
		} else {
			names = append(names, "-"+k)
		}
	}
	sort.Strings(names)
	return "dict keys " + strings.Join(names, " ")
}

// WithKey returns a copy with one key's presence recorded.
func (a DictKeys) WithKey(key string, present bool) DictKeys {
	keys := make(map[string]bool, len(a.Keys)+1)
	for k, v := range a.Keys {
		keys[k] = v
	}
	keys[key] = present
	return DictKeys{Keys: keys}
}

// AttrMap is the attribute set of one address, at most one attribute
// per kind.
type AttrMap map[AttrKind]Attribute

// AttrStore maps addresses to their attributes.
type AttrStore map[symbol.Value]AttrMap

// Get looks up the attribute of the given kind on addr.
func (s AttrStore) Get(addr symbol.Value, kind AttrKind) (Attribute, bool) {
	attr, ok := s[addr][kind]
	return attr, ok
}

// Has reports whether addr carries an attribute of the given kind.
func (s AttrStore) Has(addr symbol.Value, kind AttrKind) bool {
	_, ok := s.Get(addr, kind)
	return ok
}

// with returns a copy of the store carrying the attribute on addr.
// Invalidation is permanent: an existing Invalid attribute is never
// overwritten, so the original cause survives.
func (s AttrStore) with(addr symbol.Value, attr Attribute) AttrStore {
	if attr.Kind() == AttrInvalid {
		if _, ok := s.Get(addr, AttrInvalid); ok {
			return s
		}
	}
	out := make(AttrStore, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	attrs := make(AttrMap, len(s[addr])+1)
	for k, v := range s[addr] {
		attrs[k] = v
	}
	attrs[attr.Kind()] = attr
	out[addr] = attrs
	return out
}

// without returns a copy of the store with the attribute removed.
// Removing Invalid or Initialized is refused; both are monotone.
func (s AttrStore) without(addr symbol.Value, kind AttrKind) AttrStore {
	if kind == AttrInvalid || kind == AttrInitialized {
		return s
	}
	if _, ok := s.Get(addr, kind); !ok {
		return s
	}
	out := make(AttrStore, len(s))
	for k, v := range s {
		out[k] = v
	}
	attrs := make(AttrMap, len(s[addr]))
	for k, v := range s[addr] {
		if k != kind {
			attrs[k] = v
		}
	}
	if len(attrs) == 0 {
		delete(out, addr)
	} else {
		out[addr] = attrs
	}
	return out
}

// copyAll returns a copy of the store in which to carries every
// attribute of from, overwriting kinds to already had. Invalid obeys
// the same permanence rule as with: a target already invalid keeps its
// original cause.
func (s AttrStore) copyAll(from, to symbol.Value) AttrStore {
	src, ok := s[from]
	if !ok {
		return s
	}
	out := make(AttrStore, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	attrs := make(AttrMap, len(s[to])+len(src))
	for k, v := range s[to] {
		attrs[k] = v
	}
	for k, v := range src {
		if k == AttrInvalid {
			if _, invalid := attrs[AttrInvalid]; invalid {
				continue
			}
		}
		attrs[k] = v
	}
	out[to] = attrs
	return out
}

func (s AttrStore) describe(addr symbol.Value) string {
	attrs := s[addr]
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, a.String())
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s{%s}", addr, strings.Join(parts, ", "))
}
