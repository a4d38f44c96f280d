// Package auth resolves the tenant and actor of a request from its bearer token.
package auth

import "context"

// Principal is who is calling and on behalf of which organization.
type Principal struct {
	OrgID     string `json:"org_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserImage string `json:"user_image"`
}

// Valid reports whether both tenant and actor are present.
func (p Principal) Valid() bool {
	return p.OrgID != "" && p.UserID != ""
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored on ctx, or the zero value.
func FromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(principalKey{}).(Principal)
	return p
}
