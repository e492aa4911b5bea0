package shop

import (
	"database/sql"
	"errors"
	"fmt"

	"bookshop/internal/logger"
)

// BookStore persists the catalog.
type BookStore struct {
	db *sql.DB

	addStmt *sql.Stmt
}

// NewBookStore prepares common statements against db.
func NewBookStore(db *sql.DB) (*BookStore, error) {
	addStmt, err := db.Prepare(`INSERT INTO books(title,author,year,available,price_cents) VALUES(?,?,?,?,?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare add book: %w", err)
	}
	return &BookStore{db: db, addStmt: addStmt}, nil
}

// Close releases prepared statements. The shared DB handle is left open.
func (s *BookStore) Close() error { return s.addStmt.Close() }

// Add inserts a new book and returns its assigned id. Duplicates are
// not detected; two identical books get two ids.
func (s *BookStore) Add(b Book) (int64, error) {
	res, err := s.addStmt.Exec(b.Title, b.Author, b.Year, b.Available, b.PriceCents)
	if err != nil {
		logger.Get().Error().Err(err).Str("title", b.Title).Msg("add book failed")
		return 0, err
	}
	return res.LastInsertId()
}

// Update overwrites all mutable fields of the book with the given id.
func (s *BookStore) Update(id int64, b Book) error {
	res, err := s.db.Exec(`UPDATE books SET title=?, author=?, year=?, available=?, price_cents=? WHERE id=?`,
		b.Title, b.Author, b.Year, b.Available, b.PriceCents, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		logger.Get().Warn().Int64("id", id).Msg("book not found")
		return ErrBookNotFound
	}
	return nil
}

// Delete removes the book if present. Deleting an absent id is a no-op.
func (s *BookStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM books WHERE id=?`, id)
	return err
}

// Get fetches a single book.
func (s *BookStore) Get(id int64) (Book, error) {
	var b Book
	err := s.db.QueryRow(`SELECT id,title,author,year,available,price_cents FROM books WHERE id=?`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Available, &b.PriceCents)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

// All returns the whole catalog in insertion order.
func (s *BookStore) All() ([]Book, error) {
	return s.query(`SELECT id,title,author,year,available,price_cents FROM books ORDER BY id`)
}

// Search returns books whose title or author contains keyword as a
// case-insensitive substring. SQLite LIKE is case-insensitive for
// ASCII, which covers the catalog.
func (s *BookStore) Search(keyword string) ([]Book, error) {
	pattern := "%" + keyword + "%"
	return s.query(`SELECT id,title,author,year,available,price_cents FROM books
        WHERE title LIKE ? OR author LIKE ? ORDER BY id`, pattern, pattern)
}

func (s *BookStore) query(q string, args ...any) ([]Book, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		logger.Get().Error().Err(err).Msg("query books failed")
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Available, &b.PriceCents); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
