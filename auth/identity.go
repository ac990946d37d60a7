package auth

import "context"

// Roles understood by the catalog.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Identity is a verified caller.
type Identity struct {
	Subject  string
	Username string
	Role     string
	TokenID  string
}

// CanWrite reports whether the identity may run mutations.
func (i Identity) CanWrite() bool {
	return i.Role == RoleAdmin || i.Role == RoleEditor
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity carried by ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.Subject == "" {
		return Identity{}, false
	}
	return id, true
}
