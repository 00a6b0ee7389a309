package services

import (
	"errors"
	"fmt"
)

var (
	ErrBadCreds      = errors.New("invalid email or password")
	ErrEmailTaken    = errors.New("email already registered")
	ErrEmptyOrder    = errors.New("order has no items")
	ErrBadAddress    = errors.New("shipping address requires address and city")
	ErrBadPayment    = errors.New("invalid payment method")
	ErrBadQuantity   = errors.New("quantity must be a positive integer")
	ErrCommitFailed  = errors.New("order commit failed")
	ErrProductExists = errors.New("product id already in use")
)

// InvalidItemError names the cart entry that failed quantity validation.
type InvalidItemError struct {
	ProductID string
	Quantity  int
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid quantity %d for %s", e.Quantity, e.ProductID)
}

// ProductNotFoundError names the product id missing from the catalog.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError carries what was asked and what is known to be on
// hand, so the caller can report something actionable.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (requested %d, available %d)",
		e.ProductID, e.Requested, e.Available)
}
