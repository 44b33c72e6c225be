// Package resolve defines the contract for canonicalizing loosely-typed
// peer references into addressable targets, plus an optional Redis-backed
// caching layer over any resolver implementation.
package resolve

//go:generate mockgen -package mocks -destination mocks/mock_resolver.go github.com/gramkit/gramkit/resolve Resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/gramkit/gramkit/wire"
)

// Resolver canonicalizes a loosely-typed reference (handle string, numeric
// id, or a wire entity) into an addressable form. Implementations may
// perform their own remote lookups.
type Resolver interface {
	ResolveTarget(ctx context.Context, ref any) (wire.Target, error)
	ResolveUser(ctx context.Context, ref any) (*wire.User, error)
}

// NotResolvedError reports that a reference could not be canonicalized.
type NotResolvedError struct {
	Ref any
	Err error
}

// Error implements error.
func (e *NotResolvedError) Error() string {
	return fmt.Sprintf("cannot resolve %v: %v", e.Ref, e.Err)
}

// Unwrap returns the underlying resolution error.
func (e *NotResolvedError) Unwrap() error { return e.Err }

// IsNotResolved reports whether err is (or wraps) a NotResolvedError.
func IsNotResolved(err error) bool {
	var re *NotResolvedError

	return errors.As(err, &re)
}
