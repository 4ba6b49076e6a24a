package http

import (
	"fmt"
	"net/http"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type RentalHandler struct {
	rentalSvc  service.RentalService
	invoiceSvc service.InvoiceService
}

func NewRentalHandler(rentalSvc service.RentalService, invoiceSvc service.InvoiceService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc, invoiceSvc: invoiceSvc}
}

func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var req rentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	p, _ := PrincipalFromContext(r.Context())
	rt, err := h.rentalSvc.CreateRental(r.Context(), p.UserID, req.VehicleID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapRental(rt))
}

// ReturnVehicle closes the caller's rental. Without a return date the rental
// closes on its planned end date, or today if it is not yet due.
func (h *RentalHandler) ReturnVehicle(w http.ResponseWriter, r *http.Request) {
	rt, ok := h.ownedRental(w, r)
	if !ok {
		return
	}

	var req returnRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	var returnDate time.Time
	if req.ActualReturnDate != "" {
		d, err := parseDateField("actual_return_date", req.ActualReturnDate)
		if err != nil {
			writeError(w, err)
			return
		}
		returnDate = d
	}

	returned, err := h.rentalSvc.ReturnVehicle(r.Context(), rt.ID, returnDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapRental(returned))
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	rt, ok := h.ownedRental(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, mapRental(rt))
}

func (h *RentalHandler) GetRentalInvoice(w http.ResponseWriter, r *http.Request) {
	rt, ok := h.ownedRental(w, r)
	if !ok {
		return
	}
	inv, err := h.invoiceSvc.GetInvoice(r.Context(), rt.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *RentalHandler) ListMyRentals(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	rentals, err := h.rentalSvc.ListRentals(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapRentals(rentals))
}

// ListAllRentals lists every rental, or one user's when user_id is given
func (h *RentalHandler) ListAllRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentalSvc.ListRentals(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapRentals(rentals))
}

// ownedRental loads the rental named in the path. Customers may only see
// their own rentals; staff see all.
func (h *RentalHandler) ownedRental(w http.ResponseWriter, r *http.Request) (*domain.Rental, bool) {
	id := mux.Vars(r)["id"]
	rt, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	p, _ := PrincipalFromContext(r.Context())
	if rt.UserID != p.UserID && !p.IsStaff() {
		writeError(w, fmt.Errorf("%w: rental %s belongs to another user", domain.ErrForbidden, id))
		return nil, false
	}
	return rt, true
}
