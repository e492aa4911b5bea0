package shop

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func tempDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func tempBookStore(t *testing.T, db *sql.DB) *BookStore {
	t.Helper()
	bs, err := NewBookStore(db)
	if err != nil {
		t.Fatalf("new book store: %v", err)
	}
	t.Cleanup(func() { bs.Close() })
	return bs
}

func TestOpenReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	bs := tempBookStore(t, db)
	id, err := bs.Add(Book{Title: "Dune", Author: "Herbert", Year: 1965, Available: true})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Re-opening must not re-run migrations or lose data.
	db2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()
	bs2 := tempBookStore(t, db2)
	got, err := bs2.Get(id)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Title != "Dune" {
		t.Fatalf("want Dune, got %s", got.Title)
	}
}
