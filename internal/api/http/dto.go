package http

import (
	"fmt"
	"strings"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/utils"
)

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *userResponse `json:"user,omitempty"`
}

type rentalRequest struct {
	VehicleID string `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type returnRequest struct {
	ActualReturnDate string `json:"actual_return_date"`
}

type individualRequest struct {
	DateOfBirth   string `json:"date_of_birth"`
	LicenseNumber string `json:"license_number"`
}

type createUserRequest struct {
	ID          string                   `json:"id"`
	Password    string                   `json:"password"`
	Role        domain.Role              `json:"role"`
	Name        string                   `json:"name"`
	ContactInfo string                   `json:"contact_info"`
	Individual  *individualRequest       `json:"individual,omitempty"`
	Corporate   *domain.CorporateProfile `json:"corporate,omitempty"`
	Staff       *domain.StaffProfile     `json:"staff,omitempty"`
}

func (req *createUserRequest) toInput() (service.NewUserInput, error) {
	input := service.NewUserInput{
		ID:          req.ID,
		Password:    req.Password,
		Role:        domain.Role(strings.ToUpper(string(req.Role))),
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
		Corporate:   req.Corporate,
		Staff:       req.Staff,
	}
	if req.Individual != nil {
		dob, err := parseDateField("date_of_birth", req.Individual.DateOfBirth)
		if err != nil {
			return input, err
		}
		input.Individual = &domain.IndividualProfile{DateOfBirth: dob, LicenseNumber: req.Individual.LicenseNumber}
	}
	return input, nil
}

func parseDateField(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", domain.ErrInvalidEntity, field)
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidEntity, field, err)
	}
	return t, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	s, err := parseDateField("start_date", start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := parseDateField("end_date", end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s, e, nil
}

type userResponse struct {
	ID          string                   `json:"id"`
	Role        domain.Role              `json:"role"`
	Name        string                   `json:"name"`
	ContactInfo string                   `json:"contact_info"`
	CreatedOn   string                   `json:"created_on"`
	Individual  *individualRequest       `json:"individual,omitempty"`
	Corporate   *domain.CorporateProfile `json:"corporate,omitempty"`
	Staff       *domain.StaffProfile     `json:"staff,omitempty"`
}

type rentalResponse struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"user_id"`
	VehicleID           string              `json:"vehicle_id"`
	VehicleType         domain.VehicleType  `json:"vehicle_type"`
	StartDate           string              `json:"start_date"`
	EndDate             string              `json:"end_date"`
	ActualReturnDate    string              `json:"actual_return_date,omitempty"`
	Status              domain.RentalStatus `json:"status"`
	ReturnType          domain.ReturnType   `json:"return_type,omitempty"`
	DailyRateCents      int64               `json:"daily_rate_cents"`
	DiscountBasisPoints int64               `json:"discount_basis_points"`
	PlannedCostCents    int64               `json:"planned_cost_cents"`
	TotalCostCents      int64               `json:"total_cost_cents"`
	TotalCost           string              `json:"total_cost"`
}

type periodResponse struct {
	RentalID string `json:"rental_id"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Active   bool   `json:"active"`
}

type vehicleResponse struct {
	domain.Vehicle
	DailyRate     string               `json:"daily_rate"`
	Status        domain.VehicleStatus `json:"status"`
	CreatedOn     string               `json:"created_on"`
	BookedPeriods []periodResponse     `json:"booked_periods,omitempty"`
	RentalCount   *int                 `json:"rental_count,omitempty"`
}

type availabilityResponse struct {
	VehicleID string `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

type quoteResponse struct {
	utils.CostBreakdown
	FinalCost string `json:"final_cost"`
}

type uploadResponse struct {
	DownloadURL string `json:"download_url"`
}
