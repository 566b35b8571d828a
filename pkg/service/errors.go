package service

import (
	"errors"
	"fmt"
)

// Sentinel failures surfaced to the HTTP layer. Messages wrapped around them
// are returned to the client verbatim.
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// InsufficientStockError names the product that could not be fulfilled and
// how many units were available when the order was attempted.
type InsufficientStockError struct {
	Product   string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s. Available: %d", e.Product, e.Available)
}
