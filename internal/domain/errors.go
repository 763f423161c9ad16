package domain

import "errors"

var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNoOrders           = errors.New("no orders for user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthorized      = errors.New("not authorized")
)

// ValidationError carries a client-facing message for a rejected request body.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
