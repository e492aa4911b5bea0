package shop

import (
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"bookshop/internal/logger"
)

// UserStore persists accounts. Passwords are stored as SHA-256 hex
// digests, never in the clear.
type UserStore struct {
	db *sql.DB
}

// NewUserStore returns a store backed by db.
func NewUserStore(db *sql.DB) *UserStore { return &UserStore{db: db} }

// HashPassword returns the hex digest stored for a password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register creates an account and returns its id. Fails with
// ErrUserExists when the username is already taken.
func (s *UserStore) Register(username, password string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO users(username,password_hash) VALUES(?,?)`,
		username, HashPassword(password))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			logger.Get().Warn().Str("username", username).Msg("username already taken")
			return 0, ErrUserExists
		}
		logger.Get().Error().Err(err).Str("username", username).Msg("register failed")
		return 0, err
	}
	return res.LastInsertId()
}

// Authenticate checks the credentials and returns the account id.
// Unknown usernames and wrong passwords both map to
// ErrInvalidCredentials so callers cannot probe for accounts, and the
// digest comparison is constant-time.
func (s *UserStore) Authenticate(username, password string) (int64, error) {
	var (
		id   int64
		hash string
	)
	err := s.db.QueryRow(`SELECT id,password_hash FROM users WHERE username=?`, username).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, fmt.Errorf("lookup user: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(hash), []byte(HashPassword(password))) != 1 {
		logger.Get().Warn().Str("username", username).Msg("invalid password")
		return 0, ErrInvalidCredentials
	}
	return id, nil
}

// Get fetches a single account.
func (s *UserStore) Get(id int64) (User, error) {
	var u User
	err := s.db.QueryRow(`SELECT id,username,password_hash FROM users WHERE id=?`, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
