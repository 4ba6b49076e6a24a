package service

import (
	"context"
	"sort"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/store"
	"fleetrent-backend/internal/utils"
)

const rankingSize = 5

// VehicleCount is a vehicle's rental count and returned revenue
type VehicleCount struct {
	VehicleID    string `json:"vehicle_id"`
	Rentals      int    `json:"rentals"`
	RevenueCents int64  `json:"revenue_cents"`
}

// Breakdown aggregates rentals for one vehicle type or renter role
type Breakdown struct {
	Rentals      int   `json:"rentals"`
	RevenueCents int64 `json:"revenue_cents"`
}

type Analytics struct {
	TotalRevenueCents   int64                 `json:"total_revenue_cents"`
	MostRented          *VehicleCount         `json:"most_rented,omitempty"`
	LeastRented         *VehicleCount         `json:"least_rented,omitempty"`
	TotalRentals        int                   `json:"total_rentals"`
	ActiveRentals       int                   `json:"active_rentals"`
	ReturnedRentals     int                   `json:"returned_rentals"`
	AverageRevenueCents int64                 `json:"average_revenue_cents"`
	AverageDays         float64               `json:"average_days"`
	TopRented           []VehicleCount        `json:"top_rented"`
	BottomRented        []VehicleCount        `json:"bottom_rented"`
	TopRevenue          []VehicleCount        `json:"top_revenue"`
	ByVehicleType       map[string]*Breakdown `json:"by_vehicle_type"`
	ByRenterRole        map[string]*Breakdown `json:"by_renter_role"`
}

// ComputeAnalytics aggregates a set of rentals. Revenue only counts returned
// rentals; rental counts include every status. Ties in rankings go to the
// lowest vehicle id.
func ComputeAnalytics(rentals []domain.Rental) *Analytics {
	a := &Analytics{
		TopRented:     []VehicleCount{},
		BottomRented:  []VehicleCount{},
		TopRevenue:    []VehicleCount{},
		ByVehicleType: map[string]*Breakdown{},
		ByRenterRole:  map[string]*Breakdown{},
	}

	perVehicle := map[string]*VehicleCount{}
	var totalDays int
	for i := range rentals {
		r := &rentals[i]
		a.TotalRentals++

		vc, ok := perVehicle[r.VehicleID]
		if !ok {
			vc = &VehicleCount{VehicleID: r.VehicleID}
			perVehicle[r.VehicleID] = vc
		}
		vc.Rentals++

		byType := breakdownFor(a.ByVehicleType, string(r.VehicleType))
		byRole := breakdownFor(a.ByRenterRole, string(r.RenterRole))
		byType.Rentals++
		byRole.Rentals++

		if r.Status != domain.RentalStatusReturned {
			a.ActiveRentals++
			continue
		}
		a.ReturnedRentals++
		a.TotalRevenueCents += r.TotalCostCents
		vc.RevenueCents += r.TotalCostCents
		byType.RevenueCents += r.TotalCostCents
		byRole.RevenueCents += r.TotalCostCents
		if days, err := utils.BilledDays(r.StartDate, r.OccupiedUntil()); err == nil {
			totalDays += days
		}
	}

	if a.ReturnedRentals > 0 {
		a.AverageRevenueCents = a.TotalRevenueCents / int64(a.ReturnedRentals)
		a.AverageDays = float64(totalDays) / float64(a.ReturnedRentals)
	}
	if len(perVehicle) == 0 {
		return a
	}

	counts := make([]VehicleCount, 0, len(perVehicle))
	for _, vc := range perVehicle {
		counts = append(counts, *vc)
	}

	// Most rented first, lowest id on ties
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Rentals != counts[j].Rentals {
			return counts[i].Rentals > counts[j].Rentals
		}
		return counts[i].VehicleID < counts[j].VehicleID
	})
	most := counts[0]
	a.MostRented = &most
	a.TopRented = append(a.TopRented, counts[:min(rankingSize, len(counts))]...)

	// Least rented first, lowest id on ties
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Rentals != counts[j].Rentals {
			return counts[i].Rentals < counts[j].Rentals
		}
		return counts[i].VehicleID < counts[j].VehicleID
	})
	least := counts[0]
	a.LeastRented = &least
	a.BottomRented = append(a.BottomRented, counts[:min(rankingSize, len(counts))]...)

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].RevenueCents != counts[j].RevenueCents {
			return counts[i].RevenueCents > counts[j].RevenueCents
		}
		return counts[i].VehicleID < counts[j].VehicleID
	})
	a.TopRevenue = append(a.TopRevenue, counts[:min(rankingSize, len(counts))]...)

	return a
}

func breakdownFor(m map[string]*Breakdown, key string) *Breakdown {
	if key == "" {
		key = "UNKNOWN"
	}
	b, ok := m[key]
	if !ok {
		b = &Breakdown{}
		m[key] = b
	}
	return b
}

type analyticsService struct {
	store *store.Store
}

func NewAnalyticsService(st *store.Store) AnalyticsService {
	return &analyticsService{store: st}
}

func (s *analyticsService) GetAnalytics(ctx context.Context) (*Analytics, error) {
	var a *Analytics
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		a = ComputeAnalytics(snap.Rentals)
		return nil
	}); err != nil {
		return nil, err
	}
	return a, nil
}
