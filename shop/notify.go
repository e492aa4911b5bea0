package shop

import "bookshop/internal/logger"

// EventKind labels order notifications.
type EventKind string

const (
	EventPlaced    EventKind = "placed"
	EventPaid      EventKind = "paid"
	EventCancelled EventKind = "cancelled"
)

// Event is what gets handed to a Notifier after a transition.
type Event struct {
	OrderID int64
	Kind    EventKind
}

// Notifier delivers order events to the user. Implementations are
// best-effort: Notify has no error to return and must not fail the
// transition that produced the event.
type Notifier interface {
	Notify(e Event)
}

// LogNotifier writes events to the application log.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(e Event) {
	logger.Get().Info().
		Int64("order_id", e.OrderID).
		Str("event", string(e.Kind)).
		Msg("order notification")
}
