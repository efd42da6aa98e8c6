package auth

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const identityKey contextKey = "identity"

// ErrNotLoggedIn is returned when no authenticated identity exists in the
// request context.
var ErrNotLoggedIn = errors.New("no logged-in identity in context")

// IdentityFromCtx extracts the authenticated session identity from the
// request context. Returns ErrNotLoggedIn for anonymous requests.
func IdentityFromCtx(ctx context.Context) (Identity, error) {
	identity, ok := ctx.Value(identityKey).(Identity)
	if !ok || !identity.LoggedIn() {
		return Identity{}, ErrNotLoggedIn
	}
	return identity, nil
}

// WithIdentity returns a new context with the given identity attached.
// Used by RequireLogin after loading the session.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
