package middleware

import (
	"context"

	pkgauth "github.com/wearhaus/wearhaus-backend/pkg/auth"
)

type claimsKey struct{}

func withClaims(ctx context.Context, claims *pkgauth.AccessTokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFrom returns the authenticated caller's claims, if any.
func ClaimsFrom(ctx context.Context) (*pkgauth.AccessTokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*pkgauth.AccessTokenClaims)
	return claims, ok
}
