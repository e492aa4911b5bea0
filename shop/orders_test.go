package shop

import (
	"errors"
	"testing"
)

// staticAuth answers the Authenticator predicate from a fixed table.
type staticAuth map[int64]bool

func (a staticAuth) IsAuthenticated(userID int64) bool { return a[userID] }

// recordingNotifier captures emitted events for assertions.
type recordingNotifier struct {
	events []Event
}

func (n *recordingNotifier) Notify(e Event) { n.events = append(n.events, e) }

// orderEnv is a fully seeded fixture: two books in the catalog, one
// authenticated user and one registered-but-logged-out user.
type orderEnv struct {
	svc      *OrderService
	notifier *recordingNotifier
	cart     *Cart
	user     int64
	stranger int64
	dune     Book
	hobbit   Book
}

func newOrderEnv(t *testing.T) *orderEnv {
	t.Helper()
	db := tempDB(t)
	bs := tempBookStore(t, db)
	us := NewUserStore(db)

	duneID, err := bs.Add(Book{Title: "Dune", Author: "Frank Herbert", Year: 1965, Available: true, PriceCents: 999})
	if err != nil {
		t.Fatalf("add dune: %v", err)
	}
	hobbitID, err := bs.Add(Book{Title: "The Hobbit", Author: "J.R.R. Tolkien", Year: 1937, Available: true, PriceCents: 799})
	if err != nil {
		t.Fatalf("add hobbit: %v", err)
	}
	dune, err := bs.Get(duneID)
	if err != nil {
		t.Fatalf("get dune: %v", err)
	}
	hobbit, err := bs.Get(hobbitID)
	if err != nil {
		t.Fatalf("get hobbit: %v", err)
	}

	userID, err := us.Register("alice", "secret")
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	strangerID, err := us.Register("bob", "secret")
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	notifier := &recordingNotifier{}
	svc := NewOrderService(NewOrderStore(db), staticAuth{userID: true}, notifier)

	cart := NewCart()
	cart.Add(dune)
	return &orderEnv{
		svc:      svc,
		notifier: notifier,
		cart:     cart,
		user:     userID,
		stranger: strangerID,
		dune:     dune,
		hobbit:   hobbit,
	}
}

func TestPlaceOrder(t *testing.T) {
	env := newOrderEnv(t)

	id, err := env.svc.Place(env.cart, env.user)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	o, err := env.svc.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if o.Status != StatusPending {
		t.Fatalf("want pending, got %s", o.Status)
	}
	if o.UserID != env.user || o.BookID != env.dune.ID {
		t.Fatalf("unexpected order %+v", o)
	}
	if len(env.notifier.events) != 1 || env.notifier.events[0] != (Event{OrderID: id, Kind: EventPlaced}) {
		t.Fatalf("want placed notification, got %+v", env.notifier.events)
	}

	// A second order gets a fresh, previously-unused id.
	id2, err := env.svc.Place(env.cart, env.user)
	if err != nil {
		t.Fatalf("second place: %v", err)
	}
	if id2 == id {
		t.Fatalf("order id %d reused", id)
	}
}

func TestPlaceOrderUsesFirstBookOnly(t *testing.T) {
	env := newOrderEnv(t)
	env.cart.Add(env.hobbit)

	id, err := env.svc.Place(env.cart, env.user)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	o, _ := env.svc.Get(id)
	if o.BookID != env.dune.ID {
		t.Fatalf("want first book %d, got %d", env.dune.ID, o.BookID)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := newOrderEnv(t)

	// Fails regardless of user state, and before the auth check.
	if _, err := env.svc.Place(NewCart(), env.user); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
	if _, err := env.svc.Place(NewCart(), env.stranger); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
	if len(env.notifier.events) != 0 {
		t.Fatalf("no notification expected, got %+v", env.notifier.events)
	}
}

func TestPlaceOrderUnauthenticated(t *testing.T) {
	env := newOrderEnv(t)

	if _, err := env.svc.Place(env.cart, env.stranger); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("want ErrNotAuthenticated, got %v", err)
	}
}

func TestCancelOrder(t *testing.T) {
	env := newOrderEnv(t)

	id, err := env.svc.Place(env.cart, env.user)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	cancelled, err := env.svc.Cancel(id, true)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !cancelled {
		t.Fatal("want cancelled=true")
	}
	o, _ := env.svc.Get(id)
	if o.Status != StatusCancelled {
		t.Fatalf("want cancelled, got %s", o.Status)
	}
	last := env.notifier.events[len(env.notifier.events)-1]
	if last != (Event{OrderID: id, Kind: EventCancelled}) {
		t.Fatalf("want cancelled notification, got %+v", last)
	}

	// Cancelling twice is rejected.
	if _, err := env.svc.Cancel(id, true); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("want ErrAlreadyCancelled, got %v", err)
	}
}

func TestCancelOrderAborted(t *testing.T) {
	env := newOrderEnv(t)

	id, err := env.svc.Place(env.cart, env.user)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	// Negative confirmation is a no-op success, not a failure.
	cancelled, err := env.svc.Cancel(id, false)
	if err != nil {
		t.Fatalf("aborted cancel: %v", err)
	}
	if cancelled {
		t.Fatal("want cancelled=false")
	}
	o, _ := env.svc.Get(id)
	if o.Status != StatusPending {
		t.Fatalf("status must be untouched, got %s", o.Status)
	}
	for _, e := range env.notifier.events {
		if e.Kind == EventCancelled {
			t.Fatalf("no cancellation notification expected, got %+v", env.notifier.events)
		}
	}
}

func TestCancelOrderNotFound(t *testing.T) {
	env := newOrderEnv(t)

	if _, err := env.svc.Cancel(12345, true); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestCancelPaidOrder(t *testing.T) {
	env := newOrderEnv(t)

	id, err := env.svc.Place(env.cart, env.user)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := env.svc.ConfirmPayment(id); err != nil {
		t.Fatalf("confirm payment: %v", err)
	}

	if _, err := env.svc.Cancel(id, true); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("want ErrAlreadyPaid, got %v", err)
	}
	o, _ := env.svc.Get(id)
	if o.Status != StatusPaid {
		t.Fatalf("status must be left unchanged, got %s", o.Status)
	}
}

func TestConfirmPayment(t *testing.T) {
	env := newOrderEnv(t)

	id, err := env.svc.Place(env.cart, env.user)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := env.svc.ConfirmPayment(id); err != nil {
		t.Fatalf("confirm payment: %v", err)
	}
	o, _ := env.svc.Get(id)
	if o.Status != StatusPaid {
		t.Fatalf("want paid, got %s", o.Status)
	}
	last := env.notifier.events[len(env.notifier.events)-1]
	if last != (Event{OrderID: id, Kind: EventPaid}) {
		t.Fatalf("want paid notification, got %+v", last)
	}

	// Paid is terminal.
	if err := env.svc.ConfirmPayment(id); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("want ErrAlreadyPaid, got %v", err)
	}

	if err := env.svc.ConfirmPayment(9999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestConfirmPaymentAfterCancel(t *testing.T) {
	env := newOrderEnv(t)

	id, err := env.svc.Place(env.cart, env.user)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if _, err := env.svc.Cancel(id, true); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := env.svc.ConfirmPayment(id); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("want ErrAlreadyCancelled, got %v", err)
	}
}
