package service

import (
	"context"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/store"
	"fleetrent-backend/internal/utils"
)

// Invoice is the billing view of a rental. Return fields are set once the
// vehicle has been returned.
type Invoice struct {
	RentalID            string              `json:"rental_id"`
	Status              domain.RentalStatus `json:"status"`
	RenterID            string              `json:"renter_id"`
	RenterName          string              `json:"renter_name"`
	RenterRole          domain.Role         `json:"renter_role"`
	VehicleID           string              `json:"vehicle_id"`
	VehicleLabel        string              `json:"vehicle_label"`
	VehicleType         domain.VehicleType  `json:"vehicle_type"`
	StartDate           string              `json:"start_date"`
	EndDate             string              `json:"end_date"`
	Days                int                 `json:"days"`
	DailyRateCents      int64               `json:"daily_rate_cents"`
	BaseCostCents       int64               `json:"base_cost_cents"`
	DiscountBasisPoints int64               `json:"discount_basis_points"`
	DiscountCents       int64               `json:"discount_cents"`
	TotalCostCents      int64               `json:"total_cost_cents"`
	IssuedOn            time.Time           `json:"issued_on"`

	ActualReturnDate string            `json:"actual_return_date,omitempty"`
	ActualDays       int               `json:"actual_days,omitempty"`
	ReturnType       domain.ReturnType `json:"return_type,omitempty"`
	PlannedCostCents int64             `json:"planned_cost_cents,omitempty"`
	RefundCents      int64             `json:"refund_cents,omitempty"`
	Message          string            `json:"message,omitempty"`
}

// buildInvoice prices a rental from its own snapshot fields so invoices stay
// correct after the vehicle or renter is deleted.
func buildInvoice(snap *domain.Snapshot, rt *domain.Rental) *Invoice {
	inv := &Invoice{
		RentalID:       rt.ID,
		Status:         rt.Status,
		RenterID:       rt.UserID,
		RenterName:     rt.UserID,
		RenterRole:     rt.RenterRole,
		VehicleID:      rt.VehicleID,
		VehicleLabel:   rt.VehicleID,
		VehicleType:    rt.VehicleType,
		StartDate:      utils.FormatDate(rt.StartDate),
		EndDate:        utils.FormatDate(rt.EndDate),
		DailyRateCents: rt.DailyRateCents,
		TotalCostCents: rt.TotalCostCents,
		IssuedOn:       time.Now().UTC(),
	}
	if u := snap.FindUser(rt.UserID); u != nil {
		inv.RenterName = u.Name
	}
	if v := snap.FindVehicle(rt.VehicleID); v != nil {
		inv.VehicleLabel = v.Label()
	}

	billedEnd := rt.EndDate
	if rt.ReturnType == domain.ReturnTypeEarly && rt.ActualReturnDate != nil {
		billedEnd = *rt.ActualReturnDate
	}
	if cost, err := utils.ComputeCost(rt.DailyRateCents, rt.StartDate, billedEnd, rt.RenterRole); err == nil {
		inv.Days = cost.Days
		inv.BaseCostCents = cost.BaseCostCents
		inv.DiscountBasisPoints = cost.DiscountBasisPoints
		inv.DiscountCents = cost.DiscountCents
	}

	if rt.Status != domain.RentalStatusReturned || rt.ActualReturnDate == nil {
		return inv
	}

	inv.ActualReturnDate = utils.FormatDate(*rt.ActualReturnDate)
	inv.ActualDays, _ = utils.BilledDays(rt.StartDate, *rt.ActualReturnDate)
	inv.ReturnType = rt.ReturnType
	inv.PlannedCostCents = rt.PlannedCostCents

	switch rt.ReturnType {
	case domain.ReturnTypeEarly:
		inv.RefundCents = rt.PlannedCostCents - rt.TotalCostCents
		inv.Message = fmt.Sprintf("Returned %d days early. Refund of %s applied.",
			utils.DaysBetween(*rt.ActualReturnDate, rt.EndDate), utils.FormatCents(inv.RefundCents))
	case domain.ReturnTypeLate:
		inv.Message = fmt.Sprintf("Returned %d days late. The planned cost is billed.",
			utils.DaysBetween(rt.EndDate, *rt.ActualReturnDate))
	default:
		inv.Message = "Returned on time."
	}
	return inv
}

type invoiceService struct {
	store *store.Store
}

func NewInvoiceService(st *store.Store) InvoiceService {
	return &invoiceService{store: st}
}

func (s *invoiceService) GetInvoice(ctx context.Context, rentalID string) (*Invoice, error) {
	var inv *Invoice
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		rt := snap.FindRental(rentalID)
		if rt == nil {
			return fmt.Errorf("%w: rental %s", domain.ErrNotFound, rentalID)
		}
		inv = buildInvoice(snap, rt)
		return nil
	}); err != nil {
		return nil, err
	}
	return inv, nil
}
