package http

import (
	"net/http"
	"strings"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type StaffHandler struct {
	userSvc      service.UserService
	analyticsSvc service.AnalyticsService
}

func NewStaffHandler(userSvc service.UserService, analyticsSvc service.AnalyticsService) *StaffHandler {
	return &StaffHandler{userSvc: userSvc, analyticsSvc: analyticsSvc}
}

func (h *StaffHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(strings.ToUpper(r.URL.Query().Get("role")))
	users, err := h.userSvc.ListUsers(r.Context(), role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapUsers(users))
}

func (h *StaffHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := h.userSvc.CreateUser(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapUser(user))
}

func (h *StaffHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userSvc.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapUser(user))
}

func (h *StaffHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	if err := h.userSvc.DeleteUser(r.Context(), p.UserID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StaffHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.analyticsSvc.GetAnalytics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
