package outcome

import (
	"fmt"

	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/symbol"
)

// Kind represents the kind of an operation result.
type Kind int

const (
	// KindOk indicates unconditional success.
	KindOk Kind = iota
	// KindRecoverable indicates a defect was found but exploration of
	// this path can soundly continue with the carried state.
	KindRecoverable
	// KindFatal indicates a defect after which further reasoning about
	// this path is meaningless.
	KindFatal
	// KindUnsat indicates the path is logically impossible and must be
	// pruned. Not a bug.
	KindUnsat
)

func (k Kind) String() string {
	switch k {
	case KindOk:
		return "Ok"
	case KindRecoverable:
		return "Recoverable"
	case KindFatal:
		return "Fatal"
	case KindUnsat:
		return "Unsat"
	default:
		return "?"
	}
}

// Result is the outcome of one memory operation.
// Result = Ok(state, value) | Recoverable(state, value, diags)
//        | Fatal(diag, state) | Unsat(reason)
type Result struct {
	Kind  Kind
	State *memory.State   // Ok/Recoverable: usable state; Fatal: state at failure
	Value symbol.Value    // success value, None when the operation yields no value
	Hist  *symbol.History // history of Value
	Diags []Diagnostic    // accumulated recoverable diagnostics
	Fatal *Diagnostic     // set for KindFatal

	reason func() string // set for KindUnsat, built lazily
}

// Ok creates a success result carrying a value.
func Ok(st *memory.State, v symbol.Value, hist *symbol.History) Result {
	return Result{Kind: KindOk, State: st, Value: v, Hist: hist}
}

// OkState creates a success result with no value.
func OkState(st *memory.State) Result {
	return Result{Kind: KindOk, State: st}
}

// Recoverable creates a result recording defects on a still-usable state.
func Recoverable(st *memory.State, v symbol.Value, hist *symbol.History, diags ...Diagnostic) Result {
	return Result{Kind: KindRecoverable, State: st, Value: v, Hist: hist, Diags: diags}
}

// FatalError creates a hard failure for this path.
func FatalError(diag Diagnostic, st *memory.State) Result {
	return Result{Kind: KindFatal, State: st, Fatal: &diag}
}

// Unsat creates an infeasible-path result with a lazy reason.
func Unsat(reason func() string) Result {
	return Result{Kind: KindUnsat, reason: reason}
}

// Unsatf creates an infeasible-path result; formatting is deferred
// until the reason is actually rendered.
func Unsatf(format string, args ...any) Result {
	return Unsat(func() string { return fmt.Sprintf(format, args...) })
}

// Feasible reports whether the path survives this result.
func (r Result) Feasible() bool {
	return r.Kind != KindUnsat
}

// Usable reports whether the carried state may be used for further
// operations on this path.
func (r Result) Usable() bool {
	return r.Kind == KindOk || r.Kind == KindRecoverable
}

// UnsatReason renders the pruning justification.
func (r Result) UnsatReason() string {
	if r.reason == nil {
		return ""
	}
	return r.reason()
}

// AndThen chains f over a usable result, threading state and value.
// Unsat and Fatal short-circuit. Recoverable diagnostics accumulate
// across the chain and survive a later fatal failure.
func (r Result) AndThen(f func(*memory.State, symbol.Value, *symbol.History) Result) Result {
	if !r.Usable() {
		return r
	}
	next := f(r.State, r.Value, r.Hist)
	return next.prepend(r.Diags)
}

// AndThenState chains f over a usable result when only the state matters.
func (r Result) AndThenState(f func(*memory.State) Result) Result {
	return r.AndThen(func(st *memory.State, _ symbol.Value, _ *symbol.History) Result {
		return f(st)
	})
}

// MapValue rewrites the success value without touching the layers.
func (r Result) MapValue(f func(symbol.Value, *symbol.History) (symbol.Value, *symbol.History)) Result {
	if !r.Usable() {
		return r
	}
	r.Value, r.Hist = f(r.Value, r.Hist)
	return r
}

// WithValue replaces the success value on a usable result.
func (r Result) WithValue(v symbol.Value, hist *symbol.History) Result {
	if !r.Usable() {
		return r
	}
	r.Value = v
	r.Hist = hist
	return r
}

// prepend attaches earlier recoverable diagnostics ahead of r's own.
func (r Result) prepend(diags []Diagnostic) Result {
	if len(diags) == 0 {
		return r
	}
	switch r.Kind {
	case KindUnsat:
		// An infeasible path is discarded wholesale, diagnostics included.
		return r
	case KindOk:
		r.Kind = KindRecoverable
	}
	merged := make([]Diagnostic, 0, len(diags)+len(r.Diags))
	merged = append(merged, diags...)
	merged = append(merged, r.Diags...)
	r.Diags = merged
	return r
}

func (r Result) String() string {
	switch r.Kind {
	case KindOk:
		return fmt.Sprintf("Ok(%s)", r.Value)
	case KindRecoverable:
		return fmt.Sprintf("Recoverable(%s, %d diags)", r.Value, len(r.Diags))
	case KindFatal:
		return fmt.Sprintf("Fatal(%s)", r.Fatal)
	case KindUnsat:
		return fmt.Sprintf("Unsat(%s)", r.UnsatReason())
	default:
		return "?"
	}
}
