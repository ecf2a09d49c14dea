// Package service implements the application operations over the
// repositories, scoped to the authenticated identity carried in the
// request context.
package service

import (
	"context"
	"errors"

	"gitlab.com/contasweb/contas-backend/internal/auth"
)

var (
	// ErrUnauthenticated is returned when a call has no identity bound
	// to its context.
	ErrUnauthenticated = errors.New("usuário não autenticado")
	// ErrBillAlreadyPaid is returned when marking a bill paid twice.
	ErrBillAlreadyPaid = errors.New("bill is already paid")
	// ErrBillNotFound is returned by mutations against a missing bill.
	ErrBillNotFound = errors.New("bill not found")
	// ErrFinanceNotFound is returned when a balance or expense update
	// targets a user with no finance record yet.
	ErrFinanceNotFound = errors.New("finance record not found")
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidCategoryName is returned for empty or oversized category names.
	ErrInvalidCategoryName = errors.New("invalid category name")
)

// requireIdentity extracts the signed-in identity or fails
// ErrUnauthenticated. Every mutating operation starts here.
func requireIdentity(ctx context.Context) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return auth.Identity{}, ErrUnauthenticated
	}
	return id, nil
}

// identity returns the caller's uid for read paths, which answer
// anonymous callers with empty results instead of an error.
func identity(ctx context.Context) (string, bool) {
	id, ok := auth.IdentityFromContext(ctx)
	return id.UID, ok
}
