// Package solver defines the narrow boundary to the constraint and
// arithmetic reasoning engine. The memory operations never inspect
// constraint stores themselves; they thread an opaque Store through
// these calls and act on the feasibility verdicts.
package solver

import (
	"github.com/abint-dev/abint/internal/expr"
	"github.com/abint-dev/abint/internal/symbol"
)

// Store is an opaque constraint store. Implementations must be usable
// as immutable snapshots: Clone is called before any state branch.
type Store interface {
	Clone() Store
}

// Solver decides satisfiability of numeric and type predicates over
// abstract values. Assert methods return the updated store and false
// when the asserted fact contradicts accumulated constraints.
type Solver interface {
	// AssertEqual asserts a == b, or a != b when negated.
	AssertEqual(st Store, a, b symbol.Value, negated bool) (Store, bool)

	// AssertBinop asserts that op(a, b) holds, or its negation.
	AssertBinop(st Store, op expr.BinaryOp, a, b symbol.Value, negated bool) (Store, bool)

	// EvalConst records that dst denotes the given literal.
	EvalConst(st Store, dst symbol.Value, lit expr.Literal) Store

	// EvalUnop records dst = op(operand).
	EvalUnop(st Store, op expr.UnaryOp, dst, operand symbol.Value) Store

	// EvalBinop records dst = op(a, b).
	EvalBinop(st Store, op expr.BinaryOp, dst, a, b symbol.Value) Store

	// DynamicType reports the dynamic type of v, when known.
	DynamicType(st Store, v symbol.Value) (string, bool)

	// CopyTypeConstraints copies numeric and type facts from one value
	// onto another, used by the copy operations.
	CopyTypeConstraints(st Store, from, to symbol.Value) Store

	// AsConstantString reports the constant string denoted by v, if any.
	AsConstantString(st Store, v symbol.Value) (string, bool)
}
