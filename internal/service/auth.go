package service

import (
	"context"
	"errors"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid user id or password")
	ErrInvalidToken       = errors.New("invalid token")
)

type authService struct {
	store        *store.Store
	tokenManager security.TokenManager
}

func NewAuthService(st *store.Store, tokenManager security.TokenManager) AuthService {
	return &authService{
		store:        st,
		tokenManager: tokenManager,
	}
}

func (s *authService) Login(ctx context.Context, userID, password string) (*domain.User, string, string, error) {
	logger.EnterMethod("authService.Login", "userID", userID)

	var user *domain.User
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		if u := snap.FindUser(userID); u != nil {
			c := u.Clone()
			user = &c
		}
		return nil
	}); err != nil {
		return nil, "", "", err
	}
	if user == nil {
		logger.ExitMethodWithError("authService.Login", ErrInvalidCredentials, "userID", userID)
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.ExitMethodWithError("authService.Login", ErrInvalidCredentials, "userID", userID)
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokenManager.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, "", "", err
	}

	logger.Info("User logged in", "userID", user.ID, "role", user.Role)
	logger.ExitMethod("authService.Login", "userID", userID)
	return user, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokenManager.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	// The account may have been deleted since the token was issued
	var role domain.Role
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		if u := snap.FindUser(claims.UserID); u != nil {
			role = u.Role
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	if role == "" {
		return "", "", ErrInvalidToken
	}

	access, err := s.tokenManager.GenerateAccessToken(claims.UserID, role)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.tokenManager.GenerateRefreshToken(claims.UserID, role)
	if err != nil {
		return "", "", err
	}
	return access, newRefresh, nil
}
