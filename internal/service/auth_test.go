package service

import (
	"context"
	"testing"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t, fixtureSnapshot(t))
	tm := security.NewTokenManager("test-secret")
	svc := NewAuthService(st, tm)

	t.Run("Success", func(t *testing.T) {
		user, access, refresh, err := svc.Login(ctx, "acme", testPassword)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleCorporate, user.Role)

		claims, err := tm.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, "acme", claims.UserID)
		assert.Equal(t, domain.RoleCorporate, claims.Role)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)

		claims, err = tm.ValidateToken(refresh)
		require.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, claims.Type)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "acme", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "nobody", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t, fixtureSnapshot(t))
	tm := security.NewTokenManager("test-secret")
	svc := NewAuthService(st, tm)

	t.Run("Rotates both tokens", func(t *testing.T) {
		refresh, err := tm.GenerateRefreshToken("alice", domain.RoleIndividual)
		require.NoError(t, err)

		access, newRefresh, err := svc.RefreshToken(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, newRefresh)
		claims, err := tm.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.UserID)
	})

	t.Run("Access token rejected", func(t *testing.T) {
		access, _ := tm.GenerateAccessToken("alice", domain.RoleIndividual)
		_, _, err := svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})

	t.Run("Deleted account", func(t *testing.T) {
		refresh, _ := tm.GenerateRefreshToken("ghost", domain.RoleIndividual)
		_, _, err := svc.RefreshToken(ctx, refresh)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		short := security.NewTokenManagerWithExpiry("test-secret", time.Minute, -time.Minute)
		refresh, _ := short.GenerateRefreshToken("alice", domain.RoleIndividual)
		_, _, err := svc.RefreshToken(ctx, refresh)
		assert.ErrorIs(t, err, security.ErrExpiredToken)
	})
}
