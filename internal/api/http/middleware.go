package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/security"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
)

// standardChain wraps every request
func standardChain() alice.Chain {
	return alice.New(recoverPanic, logRequest, secureHeaders, makeResponseJSON)
}

func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				logger.Error("Panic while serving request", "method", r.Method, "path", r.URL.Path, "panic", fmt.Sprint(err))
				writeMessage(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"remote", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware authenticates and authorizes requests by the security level
// registered for the matched route name
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

// Authorize must be installed with Router.Use so the matched route is known
func (m *AuthMiddleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}
		level := config.GetSecurityLevel(name)

		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := extractToken(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "invalid token: "+err.Error())
			return
		}

		if status, msg := checkSecurityLevel(level, claims); status != 0 {
			writeMessage(w, status, msg)
			return
		}

		ctx := withPrincipal(r.Context(), Principal{UserID: claims.UserID, Role: claims.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) (string, bool) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return "", false
	}
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return token, token != ""
}

func checkSecurityLevel(level config.SecurityLevel, claims *security.UserClaims) (int, string) {
	if level == config.SecurityRefresh {
		if claims.Type != security.TokenTypeRefresh {
			return http.StatusUnauthorized, "refresh token required"
		}
		return 0, ""
	}

	if claims.Type != security.TokenTypeAccess {
		return http.StatusUnauthorized, "access token required"
	}
	switch level {
	case config.SecurityCustomer:
		if !claims.Role.IsCustomer() {
			return http.StatusForbidden, "customer account required"
		}
	case config.SecurityStaff:
		if claims.Role != domain.RoleStaff {
			return http.StatusForbidden, "staff account required"
		}
	}
	return 0, ""
}
