package symbol

// PathContext carries the per-path event clock. The driver owns it and
// increments the clock between instructions; this package only reads it
// when stamping new events.
type PathContext struct {
	Clock    int64
	Location string
}

// Stamp builds an event stamped with the context's clock and location.
func (p PathContext) Stamp(kind EventKind, detail string) Event {
	return Event{Kind: kind, Time: p.Clock, Location: p.Location, Detail: detail}
}
