package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/store"
	"fleetrent-backend/internal/utils"
)

// DefaultMaxActiveRentals is how many active rentals one user may hold
const DefaultMaxActiveRentals = 5

type rentalService struct {
	store     *store.Store
	emailSvc  EmailService
	maxActive int
	now       func() time.Time
}

func NewRentalService(st *store.Store, emailSvc EmailService, maxActive int) RentalService {
	return NewRentalServiceWithClock(st, emailSvc, maxActive, time.Now)
}

// NewRentalServiceWithClock is NewRentalService with "today" taken from now
func NewRentalServiceWithClock(st *store.Store, emailSvc EmailService, maxActive int, now func() time.Time) RentalService {
	if maxActive <= 0 {
		maxActive = DefaultMaxActiveRentals
	}
	return &rentalService{
		store:     st,
		emailSvc:  emailSvc,
		maxActive: maxActive,
		now:       now,
	}
}

func (s *rentalService) today() time.Time {
	return utils.TruncateToDate(s.now())
}

func (s *rentalService) CreateRental(ctx context.Context, userID, vehicleID string, start, end time.Time) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.CreateRental", "userID", userID, "vehicleID", vehicleID,
		"start", utils.FormatDate(start), "end", utils.FormatDate(end))

	start, end = utils.TruncateToDate(start), utils.TruncateToDate(end)
	if start.After(end) {
		err := fmt.Errorf("%w: start date %s is after end date %s",
			domain.ErrInvalidDateRange, utils.FormatDate(start), utils.FormatDate(end))
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return nil, err
	}
	if start.Before(s.today()) {
		err := fmt.Errorf("%w: start date %s is in the past", domain.ErrInvalidDateRange, utils.FormatDate(start))
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return nil, err
	}

	var (
		created domain.Rental
		inv     *Invoice
		contact string
		name    string
	)
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		user := snap.FindUser(userID)
		if user == nil {
			return fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
		}
		vehicle := snap.FindVehicle(vehicleID)
		if vehicle == nil {
			return fmt.Errorf("%w: vehicle %s", domain.ErrNotFound, vehicleID)
		}
		if n := snap.CountActiveForUser(userID); n >= s.maxActive {
			return fmt.Errorf("%w: user %s already holds %d active rentals", domain.ErrRentalLimitReached, userID, n)
		}
		if !utils.IsAvailable(snap.Rentals, vehicleID, start, end) {
			return fmt.Errorf("%w: vehicle %s from %s to %s", domain.ErrUnavailable,
				vehicleID, utils.FormatDate(start), utils.FormatDate(end))
		}

		cost, err := utils.ComputeCost(vehicle.DailyRateCents, start, end, user.Role)
		if err != nil {
			return err
		}

		created = domain.Rental{
			ID:                  snap.NextRentalID(),
			UserID:              userID,
			VehicleID:           vehicleID,
			StartDate:           start,
			EndDate:             end,
			TotalCostCents:      cost.FinalCostCents,
			Status:              domain.RentalStatusActive,
			DailyRateCents:      vehicle.DailyRateCents,
			VehicleType:         vehicle.Type,
			RenterRole:          user.Role,
			PlannedCostCents:    cost.FinalCostCents,
			DiscountBasisPoints: cost.DiscountBasisPoints,
			CreatedOn:           s.now().UTC(),
		}
		snap.Rentals = append(snap.Rentals, created)

		inv = buildInvoice(snap, &created)
		contact, name = user.ContactInfo, user.Name
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err, "userID", userID, "vehicleID", vehicleID)
		return nil, err
	}

	logger.Info("Rental created", "rentalID", created.ID, "userID", userID, "vehicleID", vehicleID,
		"totalCostCents", created.TotalCostCents)

	if s.emailSvc != nil && domain.IsEmail(contact) {
		if err := s.emailSvc.SendRentalConfirmation(ctx, contact, name, inv); err != nil {
			logger.Warn("Failed to send rental confirmation", "rentalID", created.ID, "error", err)
		}
	}

	logger.ExitMethod("rentalService.CreateRental", "rentalID", created.ID)
	return &created, nil
}

// ReturnVehicle closes an active rental. A zero actualReturn means the
// planned end date, or today if the rental is not yet due. Return dates after
// today are rejected. An early return is re-priced on the actual duration with
// the discount rule applied again; on-time and late returns keep the planned
// cost.
func (s *rentalService) ReturnVehicle(ctx context.Context, rentalID string, actualReturn time.Time) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.ReturnVehicle", "rentalID", rentalID, "actualReturn", utils.FormatDate(actualReturn))
	today := s.today()
	if !actualReturn.IsZero() {
		actualReturn = utils.TruncateToDate(actualReturn)
	}

	var (
		returned domain.Rental
		inv      *Invoice
		contact  string
		name     string
	)
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		rt := snap.FindRental(rentalID)
		if rt == nil {
			return fmt.Errorf("%w: rental %s", domain.ErrNotFound, rentalID)
		}
		if rt.Status == domain.RentalStatusReturned {
			return fmt.Errorf("%w: rental %s", domain.ErrAlreadyReturned, rentalID)
		}
		if actualReturn.IsZero() {
			actualReturn = rt.EndDate
			if actualReturn.After(today) {
				actualReturn = today
			}
		}
		if actualReturn.After(today) {
			return fmt.Errorf("%w: %s is in the future", domain.ErrInvalidReturnDate, utils.FormatDate(actualReturn))
		}
		if actualReturn.Before(rt.StartDate) {
			return fmt.Errorf("%w: %s is before start date %s", domain.ErrInvalidReturnDate,
				utils.FormatDate(actualReturn), utils.FormatDate(rt.StartDate))
		}

		switch {
		case actualReturn.Before(rt.EndDate):
			cost, err := utils.ComputeCost(rt.DailyRateCents, rt.StartDate, actualReturn, rt.RenterRole)
			if err != nil {
				return err
			}
			rt.TotalCostCents = cost.FinalCostCents
			rt.DiscountBasisPoints = cost.DiscountBasisPoints
			rt.ReturnType = domain.ReturnTypeEarly
		case actualReturn.After(rt.EndDate):
			rt.ReturnType = domain.ReturnTypeLate
		default:
			rt.ReturnType = domain.ReturnTypeOnTime
		}

		now := s.now().UTC()
		rt.Status = domain.RentalStatusReturned
		rt.ActualReturnDate = &actualReturn
		rt.ReturnedOn = &now
		returned = rt.Clone()

		inv = buildInvoice(snap, rt)
		if u := snap.FindUser(rt.UserID); u != nil {
			contact, name = u.ContactInfo, u.Name
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.ReturnVehicle", err, "rentalID", rentalID)
		return nil, err
	}

	logger.Info("Vehicle returned", "rentalID", rentalID, "returnType", returned.ReturnType,
		"totalCostCents", returned.TotalCostCents)

	if s.emailSvc != nil && domain.IsEmail(contact) {
		if err := s.emailSvc.SendReturnConfirmation(ctx, contact, name, inv); err != nil {
			logger.Warn("Failed to send return confirmation", "rentalID", rentalID, "error", err)
		}
	}

	logger.ExitMethod("rentalService.ReturnVehicle", "rentalID", rentalID)
	return &returned, nil
}

// QuoteRental prices a prospective rental for userID without reserving it
func (s *rentalService) QuoteRental(ctx context.Context, userID, vehicleID string, start, end time.Time) (*utils.CostBreakdown, error) {
	var (
		rate int64
		role domain.Role
	)
	err := s.store.Read(func(snap *domain.Snapshot) error {
		user := snap.FindUser(userID)
		if user == nil {
			return fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
		}
		vehicle := snap.FindVehicle(vehicleID)
		if vehicle == nil {
			return fmt.Errorf("%w: vehicle %s", domain.ErrNotFound, vehicleID)
		}
		rate, role = vehicle.DailyRateCents, user.Role
		return nil
	})
	if err != nil {
		return nil, err
	}
	cost, err := utils.ComputeCost(rate, start, end, role)
	if err != nil {
		return nil, err
	}
	return &cost, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID string) (*domain.Rental, error) {
	var rental domain.Rental
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		rt := snap.FindRental(rentalID)
		if rt == nil {
			return fmt.Errorf("%w: rental %s", domain.ErrNotFound, rentalID)
		}
		rental = rt.Clone()
		return nil
	}); err != nil {
		return nil, err
	}
	return &rental, nil
}

// ListRentals returns rentals newest first
func (s *rentalService) ListRentals(ctx context.Context, userID string) ([]domain.Rental, error) {
	rentals := []domain.Rental{}
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		for _, r := range snap.Rentals {
			if userID == "" || r.UserID == userID {
				rentals = append(rentals, r.Clone())
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Slice(rentals, func(i, j int) bool { return rentals[i].ID > rentals[j].ID })
	return rentals, nil
}
