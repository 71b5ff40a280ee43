// Package interp implements the primitive symbolic memory operations:
// expression evaluation, reads and writes, invalidation, copies, branch
// condition pruning, scope exit, escape checks, and resource release
// chains. The fixpoint driver sequences these operations over a control
// flow graph; this package only ever transforms one abstract state into
// the next.
//
// Every operation returns an outcome.Result. The driver prunes the path
// on Unsat, reports and abandons the path on Fatal, and keeps exploring
// on Ok or Recoverable.
package interp
