package shop

import "errors"

// All failures are recoverable and reported to the immediate caller;
// none of these should ever terminate the process.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNotAuthenticated   = errors.New("user is not authenticated")
	ErrBookNotFound       = errors.New("book not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAlreadyPaid        = errors.New("order already paid")
	ErrAlreadyCancelled   = errors.New("order already cancelled")
	ErrNotInCart          = errors.New("book is not in the cart")
)
