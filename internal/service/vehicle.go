package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/store"
	"fleetrent-backend/internal/utils"
)

// Daily price bands accepted by SearchVehicles
const (
	PriceBandBudget  = "0-50"
	PriceBandMid     = "51-100"
	PriceBandPremium = "101+"
)

// VehicleFilter narrows a vehicle search. Zero values match everything.
// When both Start and End are set only vehicles free for the whole range
// are returned.
type VehicleFilter struct {
	Type      domain.VehicleType
	Brand     string
	PriceBand string
	Start     *time.Time
	End       *time.Time
}

type VehicleSummary struct {
	domain.Vehicle
	Status domain.VehicleStatus `json:"status"`
}

type VehicleDetail struct {
	VehicleSummary
	BookedPeriods []utils.Period `json:"booked_periods"`
	RentalCount   int            `json:"rental_count"`
}

type vehicleService struct {
	store *store.Store
}

func NewVehicleService(st *store.Store) VehicleService {
	return &vehicleService{store: st}
}

func (s *vehicleService) AddVehicle(ctx context.Context, v *domain.Vehicle) error {
	logger.EnterMethod("vehicleService.AddVehicle", "vehicleID", v.ID)

	v.ID = strings.TrimSpace(v.ID)
	v.Brand = strings.TrimSpace(v.Brand)
	v.Model = strings.TrimSpace(v.Model)
	v.ImageKey = ""
	if v.CreatedOn.IsZero() {
		v.CreatedOn = time.Now().UTC()
	}
	if err := domain.ValidateVehicle(v); err != nil {
		logger.ExitMethodWithError("vehicleService.AddVehicle", err, "vehicleID", v.ID)
		return err
	}

	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		if snap.FindVehicle(v.ID) != nil {
			return fmt.Errorf("%w: vehicle %s", domain.ErrDuplicateID, v.ID)
		}
		snap.Vehicles = append(snap.Vehicles, v.Clone())
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("vehicleService.AddVehicle", err, "vehicleID", v.ID)
		return err
	}

	logger.Info("Vehicle added", "vehicleID", v.ID, "type", v.Type, "dailyRateCents", v.DailyRateCents)
	logger.ExitMethod("vehicleService.AddVehicle", "vehicleID", v.ID)
	return nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id string) (*VehicleDetail, error) {
	var detail *VehicleDetail
	today := utils.Today()
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		v := snap.FindVehicle(id)
		if v == nil {
			return fmt.Errorf("%w: vehicle %s", domain.ErrNotFound, id)
		}
		periods := utils.BookedPeriods(snap.Rentals, id)
		detail = &VehicleDetail{
			VehicleSummary: VehicleSummary{
				Vehicle: v.Clone(),
				Status:  utils.VehicleStatusOn(snap.Rentals, id, today),
			},
			BookedPeriods: periods,
			RentalCount:   len(periods),
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *vehicleService) SearchVehicles(ctx context.Context, filter VehicleFilter) ([]VehicleSummary, error) {
	inBand, err := priceBandMatcher(filter.PriceBand)
	if err != nil {
		return nil, err
	}
	checkDates := filter.Start != nil && filter.End != nil
	if checkDates && filter.End.Before(*filter.Start) {
		return nil, fmt.Errorf("%w: end date is before start date", domain.ErrInvalidDateRange)
	}
	brand := strings.ToLower(strings.TrimSpace(filter.Brand))
	today := utils.Today()

	results := []VehicleSummary{}
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		for _, v := range snap.Vehicles {
			if filter.Type != "" && v.Type != filter.Type {
				continue
			}
			if brand != "" && !strings.Contains(strings.ToLower(v.Brand), brand) {
				continue
			}
			if !inBand(v.DailyRateCents) {
				continue
			}
			if checkDates && !utils.IsAvailable(snap.Rentals, v.ID, *filter.Start, *filter.End) {
				continue
			}
			results = append(results, VehicleSummary{
				Vehicle: v.Clone(),
				Status:  utils.VehicleStatusOn(snap.Rentals, v.ID, today),
			})
		}
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func priceBandMatcher(band string) (func(int64) bool, error) {
	switch band {
	case "":
		return func(int64) bool { return true }, nil
	case PriceBandBudget:
		return func(c int64) bool { return c <= 5000 }, nil
	case PriceBandMid:
		return func(c int64) bool { return c > 5000 && c <= 10000 }, nil
	case PriceBandPremium:
		return func(c int64) bool { return c > 10000 }, nil
	}
	return nil, fmt.Errorf("%w: unknown price band %q", domain.ErrInvalidEntity, band)
}

// DeleteVehicle removes a vehicle that has no active rentals. Rental history
// referencing it is kept.
func (s *vehicleService) DeleteVehicle(ctx context.Context, id string) error {
	logger.EnterMethod("vehicleService.DeleteVehicle", "vehicleID", id)
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		if snap.FindVehicle(id) == nil {
			return fmt.Errorf("%w: vehicle %s", domain.ErrNotFound, id)
		}
		if n := snap.CountActiveForVehicle(id); n > 0 {
			return fmt.Errorf("%w: vehicle %s has %d active rentals", domain.ErrHasActiveRentals, id, n)
		}
		snap.RemoveVehicle(id)
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("vehicleService.DeleteVehicle", err, "vehicleID", id)
		return err
	}
	logger.Info("Vehicle deleted", "vehicleID", id)
	logger.ExitMethod("vehicleService.DeleteVehicle", "vehicleID", id)
	return nil
}

func (s *vehicleService) CheckAvailability(ctx context.Context, id string, start, end time.Time) (bool, error) {
	if end.Before(start) {
		return false, fmt.Errorf("%w: end date is before start date", domain.ErrInvalidDateRange)
	}
	var available bool
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		if snap.FindVehicle(id) == nil {
			return fmt.Errorf("%w: vehicle %s", domain.ErrNotFound, id)
		}
		available = utils.IsAvailable(snap.Rentals, id, start, end)
		return nil
	}); err != nil {
		return false, err
	}
	return available, nil
}
