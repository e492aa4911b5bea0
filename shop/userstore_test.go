package shop

import (
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	us := NewUserStore(tempDB(t))

	id, err := us.Register("alice", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Same username again fails even with a different password.
	if _, err := us.Register("alice", "other"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("want ErrUserExists, got %v", err)
	}

	gotID, err := us.Authenticate("alice", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if gotID != id {
		t.Fatalf("want id %d, got %d", id, gotID)
	}

	if _, err := us.Authenticate("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if _, err := us.Authenticate("bob", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordStoredAsDigest(t *testing.T) {
	us := NewUserStore(tempDB(t))

	id, err := us.Register("alice", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	u, err := us.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.PasswordHash == "secret" {
		t.Fatal("password stored in the clear")
	}
	if len(u.PasswordHash) != 64 {
		t.Fatalf("want 64-char hex digest, got %d chars", len(u.PasswordHash))
	}
	if u.PasswordHash != HashPassword("secret") {
		t.Fatal("stored digest does not match HashPassword")
	}
}

func TestGetMissingUser(t *testing.T) {
	us := NewUserStore(tempDB(t))

	if _, err := us.Get(42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}
