package http

import (
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/utils"
)

func mapUser(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	resp := &userResponse{
		ID:          u.ID,
		Role:        u.Role,
		Name:        u.Name,
		ContactInfo: u.ContactInfo,
		CreatedOn:   utils.FormatDate(u.CreatedOn),
		Corporate:   u.Corporate,
		Staff:       u.Staff,
	}
	if u.Individual != nil {
		resp.Individual = &individualRequest{
			DateOfBirth:   utils.FormatDate(u.Individual.DateOfBirth),
			LicenseNumber: u.Individual.LicenseNumber,
		}
	}
	return resp
}

func mapUsers(users []domain.User) []*userResponse {
	out := make([]*userResponse, 0, len(users))
	for i := range users {
		out = append(out, mapUser(&users[i]))
	}
	return out
}

func mapRental(r *domain.Rental) *rentalResponse {
	if r == nil {
		return nil
	}
	resp := &rentalResponse{
		ID:                  r.ID,
		UserID:              r.UserID,
		VehicleID:           r.VehicleID,
		VehicleType:         r.VehicleType,
		StartDate:           utils.FormatDate(r.StartDate),
		EndDate:             utils.FormatDate(r.EndDate),
		Status:              r.Status,
		ReturnType:          r.ReturnType,
		DailyRateCents:      r.DailyRateCents,
		DiscountBasisPoints: r.DiscountBasisPoints,
		PlannedCostCents:    r.PlannedCostCents,
		TotalCostCents:      r.TotalCostCents,
		TotalCost:           utils.FormatCents(r.TotalCostCents),
	}
	if r.ActualReturnDate != nil {
		resp.ActualReturnDate = utils.FormatDate(*r.ActualReturnDate)
	}
	return resp
}

func mapRentals(rentals []domain.Rental) []*rentalResponse {
	out := make([]*rentalResponse, 0, len(rentals))
	for i := range rentals {
		out = append(out, mapRental(&rentals[i]))
	}
	return out
}

func mapVehicleSummary(v *service.VehicleSummary) *vehicleResponse {
	return &vehicleResponse{
		Vehicle:   v.Vehicle,
		DailyRate: utils.FormatCents(v.DailyRateCents),
		Status:    v.Status,
		CreatedOn: utils.FormatDate(v.CreatedOn),
	}
}

func mapVehicleDetail(d *service.VehicleDetail) *vehicleResponse {
	resp := mapVehicleSummary(&d.VehicleSummary)
	resp.BookedPeriods = make([]periodResponse, 0, len(d.BookedPeriods))
	for _, p := range d.BookedPeriods {
		resp.BookedPeriods = append(resp.BookedPeriods, periodResponse{
			RentalID: p.RentalID,
			Start:    utils.FormatDate(p.Start),
			End:      utils.FormatDate(p.End),
			Active:   p.Active,
		})
	}
	count := d.RentalCount
	resp.RentalCount = &count
	return resp
}

type dashboardResponse struct {
	User            *userResponse         `json:"user"`
	ActiveRentals   []*rentalResponse     `json:"active_rentals"`
	TotalRentals    int                   `json:"total_rentals"`
	TotalSpentCents int64                 `json:"total_spent_cents"`
	TotalSpent      string                `json:"total_spent"`
	Fleet           *service.FleetSummary `json:"fleet,omitempty"`
}

func mapDashboard(d *service.Dashboard) *dashboardResponse {
	return &dashboardResponse{
		User:            mapUser(d.User),
		ActiveRentals:   mapRentals(d.ActiveRentals),
		TotalRentals:    d.TotalRentals,
		TotalSpentCents: d.TotalSpentCents,
		TotalSpent:      utils.FormatCents(d.TotalSpentCents),
		Fleet:           d.Fleet,
	}
}
