package interp

import (
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/symbol"
)

// checkAddrAccess applies the mode's validity checks to an address
// about to be accessed.
//
// Any mode but NoAccess fails hard on an invalid address, reporting the
// original invalidation cause with both the invalidation trace and the
// current access trace. Read additionally flags an uninitialized
// address as a recoverable defect and marks it initialized so the same
// value is not re-flagged. Write establishes initialization outright.
func (ev *Evaluator) checkAddrAccess(pc symbol.PathContext, mode AccessMode, dst memory.Destination, st *memory.State) outcome.Result {
	if mode == NoAccess {
		return outcome.OkState(st)
	}

	if attr, ok := st.Attrs.Get(dst.Addr, memory.AttrInvalid); ok {
		inv := attr.(memory.Invalid)
		diag := outcome.Diagnostic{
			Category:    outcome.CategoryInvalidAccess,
			Message:     inv.Cause.String(),
			Access:      ev.dec.Find(dst.Addr, st),
			Location:    pc.Location,
			Trace:       inv.Trace.Events(),
			AccessTrace: dst.Hist.Events(),
		}
		return outcome.FatalError(diag, st)
	}

	switch mode {
	case Read:
		if !st.Attrs.Has(dst.Addr, memory.AttrInitialized) {
			st = st.WithAttr(dst.Addr, memory.Initialized{})
			diag := outcome.Diagnostic{
				Category:    outcome.CategoryUninitializedRead,
				Access:      ev.dec.Find(dst.Addr, st),
				Location:    pc.Location,
				AccessTrace: dst.Hist.Events(),
			}
			return outcome.Recoverable(st, symbol.None, nil, diag)
		}
	case Write:
		// A write always establishes a value.
		st = st.WithAttr(dst.Addr, memory.Initialized{})
	}
	return outcome.OkState(st)
}

// effectiveMode applies the degrade rule: a planned Read through an
// address whose contents an opaque call already clobbered is downgraded
// to NoAccess, since flagging uninitialized reads on unpredictable
// values is noise.
func (ev *Evaluator) effectiveMode(mode AccessMode, addr symbol.Value, st *memory.State) AccessMode {
	if mode == Read && ev.cfg.DegradeUnknownEffect && st.Attrs.Has(addr, memory.AttrUnknownEffect) {
		return NoAccess
	}
	return mode
}
