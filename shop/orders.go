package shop

import (
	"sync"

	"bookshop/internal/logger"
)

// OrderService drives the order lifecycle:
//
//	Pending -> Paid      (ConfirmPayment)
//	Pending -> Cancelled (Cancel with confirmation)
//
// Paid and Cancelled are terminal. Transitions are serialized by a
// service mutex so concurrent cancel/pay requests on the same order
// cannot race past the status check; store writes are single-record so
// no further coordination is needed.
type OrderService struct {
	mu     sync.Mutex
	orders *OrderStore
	auth   Authenticator
	notify Notifier
}

// NewOrderService wires the service to its store and collaborators.
// A nil notifier falls back to LogNotifier.
func NewOrderService(orders *OrderStore, auth Authenticator, notify Notifier) *OrderService {
	if notify == nil {
		notify = LogNotifier{}
	}
	return &OrderService{orders: orders, auth: auth, notify: notify}
}

// Place persists a Pending order for the user and returns its id. The
// order references the first book in the cart; carts with more entries
// still produce a single-line order. Preconditions, checked in order:
// the cart must be non-empty (ErrEmptyCart) and the user must hold a
// session (ErrNotAuthenticated).
func (s *OrderService) Place(cart *Cart, userID int64) (int64, error) {
	if cart.IsEmpty() {
		return 0, ErrEmptyCart
	}
	if !s.auth.IsAuthenticated(userID) {
		return 0, ErrNotAuthenticated
	}

	book := cart.Items()[0]
	id, err := s.orders.Create(userID, book.ID, StatusPending)
	if err != nil {
		return 0, err
	}
	logger.Get().Info().
		Int64("order_id", id).
		Int64("user_id", userID).
		Int64("book_id", book.ID).
		Msg("order placed")
	s.notify.Notify(Event{OrderID: id, Kind: EventPlaced})
	return id, nil
}

// Cancel transitions a Pending order to Cancelled. confirmed carries
// the operator's out-of-band confirmation; when it is false the order
// is left untouched and (false, nil) is returned: an aborted
// cancellation is a no-op success, not a failure. Preconditions,
// checked in order: the order must exist (ErrOrderNotFound), must not
// be paid (ErrAlreadyPaid) and must not already be cancelled
// (ErrAlreadyCancelled).
func (s *OrderService) Cancel(orderID int64, confirmed bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.orders.Get(orderID)
	if err != nil {
		return false, err
	}
	switch o.Status {
	case StatusPaid:
		return false, ErrAlreadyPaid
	case StatusCancelled:
		return false, ErrAlreadyCancelled
	}
	if !confirmed {
		logger.Get().Info().Int64("order_id", orderID).Msg("cancellation aborted")
		return false, nil
	}

	if err := s.orders.UpdateStatus(orderID, StatusCancelled); err != nil {
		return false, err
	}
	s.notify.Notify(Event{OrderID: orderID, Kind: EventCancelled})
	return true, nil
}

// ConfirmPayment transitions a Pending order to Paid, after which it
// can no longer be cancelled.
func (s *OrderService) ConfirmPayment(orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.orders.Get(orderID)
	if err != nil {
		return err
	}
	switch o.Status {
	case StatusPaid:
		return ErrAlreadyPaid
	case StatusCancelled:
		return ErrAlreadyCancelled
	}

	if err := s.orders.UpdateStatus(orderID, StatusPaid); err != nil {
		return err
	}
	s.notify.Notify(Event{OrderID: orderID, Kind: EventPaid})
	return nil
}

// Get returns the current state of an order.
func (s *OrderService) Get(orderID int64) (Order, error) {
	return s.orders.Get(orderID)
}
