package auth

import "context"

type claimsKey struct{}

// WithClaims attaches the caller's claims to ctx for handlers and the activity publisher.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// FromContext returns the claims stored by WithClaims. A nil *Claims counts as absent.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, _ := ctx.Value(claimsKey{}).(*Claims)
	return claims, claims != nil
}
