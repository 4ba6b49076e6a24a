package http

import (
	"net/http"
	"strings"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/utils"

	"github.com/gorilla/mux"
)

type VehicleHandler struct {
	vehicleSvc service.VehicleService
	rentalSvc  service.RentalService
}

func NewVehicleHandler(vehicleSvc service.VehicleService, rentalSvc service.RentalService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc, rentalSvc: rentalSvc}
}

// SearchVehicles accepts type, brand, price_band, start_date and end_date
// query parameters
func (h *VehicleHandler) SearchVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.VehicleFilter{
		Type:      domain.VehicleType(strings.ToUpper(q.Get("type"))),
		Brand:     q.Get("brand"),
		PriceBand: q.Get("price_band"),
	}
	if q.Get("start_date") != "" || q.Get("end_date") != "" {
		start, end, err := parseRange(q.Get("start_date"), q.Get("end_date"))
		if err != nil {
			writeError(w, err)
			return
		}
		filter.Start, filter.End = &start, &end
	}

	vehicles, err := h.vehicleSvc.SearchVehicles(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]*vehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		out = append(out, mapVehicleSummary(&vehicles[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	detail, err := h.vehicleSvc.GetVehicle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapVehicleDetail(detail))
}

func (h *VehicleHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, err := parseRange(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, err)
		return
	}
	id := mux.Vars(r)["id"]
	available, err := h.vehicleSvc.CheckAvailability(r.Context(), id, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{
		VehicleID: id,
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Available: available,
	})
}

// QuoteRental prices the vehicle for the caller without booking it
func (h *VehicleHandler) QuoteRental(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, err := parseRange(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, err)
		return
	}
	p, _ := PrincipalFromContext(r.Context())
	cost, err := h.rentalSvc.QuoteRental(r.Context(), p.UserID, mux.Vars(r)["id"], start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{CostBreakdown: *cost, FinalCost: utils.FormatCents(cost.FinalCostCents)})
}

func (h *VehicleHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	var v domain.Vehicle
	if err := decodeJSON(r, &v); err != nil {
		writeError(w, err)
		return
	}
	v.Type = domain.VehicleType(strings.ToUpper(string(v.Type)))
	if err := h.vehicleSvc.AddVehicle(r.Context(), &v); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapVehicleSummary(&service.VehicleSummary{Vehicle: v, Status: domain.VehicleStatusAvailable}))
}

func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicleSvc.DeleteVehicle(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
