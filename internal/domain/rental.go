package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive   RentalStatus = "ACTIVE"
	RentalStatusReturned RentalStatus = "RETURNED"
)

type ReturnType string

const (
	ReturnTypeEarly  ReturnType = "EARLY"
	ReturnTypeOnTime ReturnType = "ON_TIME"
	ReturnTypeLate   ReturnType = "LATE"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

type Rental struct {
	ID               string       `json:"id"`
	UserID           string       `json:"user_id"`
	VehicleID        string       `json:"vehicle_id"`
	StartDate        time.Time    `json:"start_date"`
	EndDate          time.Time    `json:"end_date"`
	ActualReturnDate *time.Time   `json:"actual_return_date,omitempty"`
	TotalCostCents   int64        `json:"total_cost_cents"`
	Status           RentalStatus `json:"status"`
	// Pricing snapshot fields captured at creation time. Recalculation on
	// return uses these, not the live vehicle or user.
	DailyRateCents      int64       `json:"daily_rate_cents"`
	VehicleType         VehicleType `json:"vehicle_type"`
	RenterRole          Role        `json:"renter_role"`
	PlannedCostCents    int64       `json:"planned_cost_cents"`
	DiscountBasisPoints int64       `json:"discount_basis_points"`
	ReturnType          ReturnType  `json:"return_type,omitempty"`
	CreatedOn           time.Time   `json:"created_on"`
	ReturnedOn          *time.Time  `json:"returned_on,omitempty"`
}

func (r *Rental) IsActive() bool {
	return r.Status == RentalStatusActive
}

// OccupiedUntil is the last calendar day the rental holds its vehicle.
func (r *Rental) OccupiedUntil() time.Time {
	if r.Status == RentalStatusReturned && r.ActualReturnDate != nil {
		return *r.ActualReturnDate
	}
	return r.EndDate
}
