package shop

import (
	"database/sql"
	"errors"

	"bookshop/internal/logger"
)

// OrderStore persists orders. Orders are never deleted; cancellation is
// a status change.
type OrderStore struct {
	db *sql.DB
}

// NewOrderStore returns a store backed by db.
func NewOrderStore(db *sql.DB) *OrderStore { return &OrderStore{db: db} }

// Create inserts a new order and returns its assigned id.
func (s *OrderStore) Create(userID, bookID int64, status Status) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO orders(user_id,book_id,status) VALUES(?,?,?)`,
		userID, bookID, status.String())
	if err != nil {
		logger.Get().Error().Err(err).Int64("user_id", userID).Msg("create order failed")
		return 0, err
	}
	return res.LastInsertId()
}

// Get fetches a single order.
func (s *OrderStore) Get(id int64) (Order, error) {
	var (
		o      Order
		status string
	)
	err := s.db.QueryRow(`SELECT id,user_id,book_id,status FROM orders WHERE id=?`, id).
		Scan(&o.ID, &o.UserID, &o.BookID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, err
	}
	o.Status = Status(status)
	return o, nil
}

// UpdateStatus overwrites the status field, a single atomic update.
func (s *OrderStore) UpdateStatus(id int64, status Status) error {
	res, err := s.db.Exec(`UPDATE orders SET status=? WHERE id=?`, status.String(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		logger.Get().Warn().Int64("id", id).Msg("order not found")
		return ErrOrderNotFound
	}
	return nil
}

// ListByUser returns the user's orders, oldest first.
func (s *OrderStore) ListByUser(userID int64) ([]Order, error) {
	rows, err := s.db.Query(`SELECT id,user_id,book_id,status FROM orders WHERE user_id=? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var (
			o      Order
			status string
		)
		if err := rows.Scan(&o.ID, &o.UserID, &o.BookID, &status); err != nil {
			return nil, err
		}
		o.Status = Status(status)
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
