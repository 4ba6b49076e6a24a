package http

import (
	"net/http"

	"fleetrent-backend/internal/security"

	"github.com/gorilla/mux"
)

// Handlers groups the route handlers mounted by NewRouter
type Handlers struct {
	Auth     *AuthHandler
	Vehicles *VehicleHandler
	Rentals  *RentalHandler
	Staff    *StaffHandler
	Images   *ImageHandler
}

// NewRouter registers every named route under /api/v1. Route names select
// the security level in config.EndpointSecurityConfig.
func NewRouter(tm security.TokenManager, h Handlers) http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tm).Authorize)

	api.HandleFunc("/health", Health).Methods(http.MethodGet).Name("Health")

	// Auth and profile
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost).Name("Login")
	api.HandleFunc("/auth/refresh", h.Auth.RefreshToken).Methods(http.MethodPost).Name("RefreshToken")
	api.HandleFunc("/me", h.Auth.GetMe).Methods(http.MethodGet).Name("GetMe")
	api.HandleFunc("/me/dashboard", h.Auth.GetDashboard).Methods(http.MethodGet).Name("GetDashboard")
	api.HandleFunc("/me/rentals", h.Rentals.ListMyRentals).Methods(http.MethodGet).Name("ListMyRentals")

	// Vehicles
	api.HandleFunc("/vehicles", h.Vehicles.SearchVehicles).Methods(http.MethodGet).Name("SearchVehicles")
	api.HandleFunc("/vehicles", h.Vehicles.AddVehicle).Methods(http.MethodPost).Name("AddVehicle")
	api.HandleFunc("/vehicles/{id}", h.Vehicles.GetVehicle).Methods(http.MethodGet).Name("GetVehicle")
	api.HandleFunc("/vehicles/{id}", h.Vehicles.DeleteVehicle).Methods(http.MethodDelete).Name("DeleteVehicle")
	api.HandleFunc("/vehicles/{id}/availability", h.Vehicles.CheckAvailability).Methods(http.MethodGet).Name("CheckAvailability")
	api.HandleFunc("/vehicles/{id}/quote", h.Vehicles.QuoteRental).Methods(http.MethodGet).Name("QuoteRental")
	api.HandleFunc("/vehicles/{id}/image", h.Images.GetVehicleImage).Methods(http.MethodGet).Name("GetVehicleImage")
	api.HandleFunc("/vehicles/{id}/image", h.Images.UploadVehicleImage).Methods(http.MethodPut).Name("UploadVehicleImage")

	// Rentals
	api.HandleFunc("/rentals", h.Rentals.CreateRental).Methods(http.MethodPost).Name("CreateRental")
	api.HandleFunc("/rentals", h.Rentals.ListAllRentals).Methods(http.MethodGet).Name("ListAllRentals")
	api.HandleFunc("/rentals/{id}", h.Rentals.GetRental).Methods(http.MethodGet).Name("GetRental")
	api.HandleFunc("/rentals/{id}/return", h.Rentals.ReturnVehicle).Methods(http.MethodPost).Name("ReturnVehicle")
	api.HandleFunc("/rentals/{id}/invoice", h.Rentals.GetRentalInvoice).Methods(http.MethodGet).Name("GetRentalInvoice")

	// Staff
	api.HandleFunc("/users", h.Staff.ListUsers).Methods(http.MethodGet).Name("ListUsers")
	api.HandleFunc("/users", h.Staff.CreateUser).Methods(http.MethodPost).Name("CreateUser")
	api.HandleFunc("/users/{id}", h.Staff.GetUser).Methods(http.MethodGet).Name("GetUser")
	api.HandleFunc("/users/{id}", h.Staff.DeleteUser).Methods(http.MethodDelete).Name("DeleteUser")
	api.HandleFunc("/analytics", h.Staff.GetAnalytics).Methods(http.MethodGet).Name("GetAnalytics")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "route not found")
	})

	return standardChain().Then(router)
}
