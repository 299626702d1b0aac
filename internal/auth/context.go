package auth

import "context"

type ctxKeyIdentity struct{}

// WithIdentity attaches a resolved identity to the request context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity{}, id)
}

// IdentityFrom extracts the identity set by the auth middleware, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity{}).(Identity)
	return id, ok && id.UserID != 0
}
