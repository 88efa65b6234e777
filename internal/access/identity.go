package access

import "context"

// Identity is the caller verified from a bearer token for the current request.
type Identity struct {
	Email    string
	Strategy string
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFrom returns the verified identity, if the request passed a token verifier.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Token verification strategies that can be attached to a route.
const (
	StrategyNone     = "none"
	StrategyLocal    = "local"
	StrategyProvider = "provider"
)
