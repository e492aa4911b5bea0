package shop

// Cart is an in-memory, per-session collection of catalog entries. It
// preserves insertion order, allows duplicates, and is never persisted.
type Cart struct {
	books []Book
}

// NewCart returns an empty cart.
func NewCart() *Cart { return &Cart{} }

// Add appends the book to the cart.
func (c *Cart) Add(b Book) { c.books = append(c.books, b) }

// Remove drops the first entry with the same book id. When duplicates
// are present only one is removed; when no entry matches it fails with
// ErrNotInCart.
func (c *Cart) Remove(b Book) error {
	for i, item := range c.books {
		if item.ID == b.ID {
			c.books = append(c.books[:i], c.books[i+1:]...)
			return nil
		}
	}
	return ErrNotInCart
}

// Clear empties the cart.
func (c *Cart) Clear() { c.books = nil }

// IsEmpty reports whether the cart holds no entries.
func (c *Cart) IsEmpty() bool { return len(c.books) == 0 }

// Len returns the number of entries, duplicates included.
func (c *Cart) Len() int { return len(c.books) }

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Book {
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

// TotalPrice sums the price of every entry in cents, duplicates
// included.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, b := range c.books {
		total += b.PriceCents
	}
	return total
}
