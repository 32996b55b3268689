// Package errs defines the domain error kinds of the checkout/payment
// workflow. Services return these; controllers translate them to HTTP
// statuses. Validation and authorization failures carry no side effects,
// so callers may always retry after one of these.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated: the request carries no valid customer identity
	// for the store scope it targets.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden: cross-tenant or cross-owner access.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound: resource missing within the caller's store scope.
	// Cross-store identifiers deliberately resolve to this too, so a
	// guessed id leaks nothing.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart: checkout requested with no cart lines in this store.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidQuantity: cart quantity is not a positive integer.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInvalidTransition: the requested order status change is not legal
	// from the order's current state.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrIntegrationUnavailable: no configured+enabled payment integration
	// exists for (store, provider).
	ErrIntegrationUnavailable = errors.New("payment integration unavailable")

	// ErrNotConfigured: integration enablement toggled before configuration.
	ErrNotConfigured = errors.New("integration must be configured before it can be enabled")
)

// InsufficientStockError names the product that could not cover the
// requested quantity.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %q does not have enough stock (requested %d, available %d)",
		e.ProductName, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

// ProviderError wraps a payment provider failure with the provider's own
// message. The order stays pending when one of these surfaces from order
// creation, so the customer may retry.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: provider request failed", e.Provider)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsProviderError reports whether err is a ProviderError.
func IsProviderError(err error) bool {
	var target *ProviderError
	return errors.As(err, &target)
}
