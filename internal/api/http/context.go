package http

import (
	"context"

	"fleetrent-backend/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller of a request
type Principal struct {
	UserID string
	Role   domain.Role
}

func (p Principal) IsStaff() bool {
	return p.Role == domain.RoleStaff
}

func withPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the caller set by the auth middleware
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
