// Package auth binds the externally-authenticated identity to request
// contexts and validates the session tokens the identity provider flow
// produces. The backend never stores credentials.
package auth

import "context"

// Identity is the signed-in principal as supplied by the identity
// provider: the uid keys every record the user owns.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the signed-in identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the signed-in identity from the context.
// ok is false for anonymous contexts.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.UID != ""
}
