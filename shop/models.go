package shop

// Status tracks an order through its lifecycle. A Pending order may be
// paid or cancelled; Paid and Cancelled are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool { return s == StatusPaid || s == StatusCancelled }

// String returns the string representation of the status.
func (s Status) String() string { return string(s) }

// Book represents a catalog entry. PriceCents is the price in cents.
type Book struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       int    `json:"year"`
	Available  bool   `json:"available"`
	PriceCents int64  `json:"price_cents"`
}

// User is a registered account.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Don't serialize password hash
}

// Order is a single-line order: the (user, book) pair it was placed
// for plus its lifecycle status.
type Order struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	BookID int64  `json:"book_id"`
	Status Status `json:"status"`
}
