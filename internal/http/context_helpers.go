package httpx

import (
	"context"

	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
)

// identityKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type identityKey struct{}

// SetIdentityInContext returns a child context carrying the given identity.
func SetIdentityInContext(ctx context.Context, identity domainauth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity attached to the request context.
// Requests that never passed through the identity middleware read as anonymous.
func IdentityFromContext(ctx context.Context) domainauth.Identity {
	if id, ok := ctx.Value(identityKey{}).(domainauth.Identity); ok {
		return id
	}
	return domainauth.Anonymous()
}
