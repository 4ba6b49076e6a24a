package http

import (
	"net/http"

	"fleetrent-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
	userSvc service.UserService
}

func NewAuthHandler(authSvc service.AuthService, userSvc service.UserService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, userSvc: userSvc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, access, refresh, err := h.authSvc.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: access, RefreshToken: refresh, User: mapUser(user)})
}

// RefreshToken expects the refresh token in the Authorization header
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token, _ := extractToken(r)
	access, refresh, err := h.authSvc.RefreshToken(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	user, err := h.userSvc.GetUser(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapUser(user))
}

func (h *AuthHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	dash, err := h.userSvc.GetDashboard(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapDashboard(dash))
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
