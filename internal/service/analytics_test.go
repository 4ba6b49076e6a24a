package service

import (
	"context"
	"testing"

	"fleetrent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rental(id, vehicleID string, status domain.RentalStatus, costCents int64) domain.Rental {
	r := domain.Rental{
		ID: id, VehicleID: vehicleID, Status: status, TotalCostCents: costCents,
		StartDate: day(2024, 5, 1), EndDate: day(2024, 5, 4),
		VehicleType: domain.VehicleTypeCar, RenterRole: domain.RoleIndividual,
	}
	if status == domain.RentalStatusReturned {
		d := day(2024, 5, 4)
		r.ActualReturnDate = &d
	}
	return r
}

func TestComputeAnalytics(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		a := ComputeAnalytics(nil)
		assert.Equal(t, int64(0), a.TotalRevenueCents)
		assert.Nil(t, a.MostRented)
		assert.Nil(t, a.LeastRented)
		assert.Empty(t, a.TopRented)
	})

	t.Run("Revenue counts returned rentals only", func(t *testing.T) {
		a := ComputeAnalytics([]domain.Rental{
			rental("R00001", "CAR01", domain.RentalStatusReturned, 12000),
			rental("R00002", "CAR02", domain.RentalStatusReturned, 3050),
			rental("R00003", "CAR01", domain.RentalStatusActive, 99999),
		})
		assert.Equal(t, int64(15050), a.TotalRevenueCents)
		assert.Equal(t, 3, a.TotalRentals)
		assert.Equal(t, 2, a.ReturnedRentals)
		assert.Equal(t, 1, a.ActiveRentals)
		assert.Equal(t, int64(7525), a.AverageRevenueCents)
		assert.InDelta(t, 3.0, a.AverageDays, 1e-9)
	})

	t.Run("Most and least rented", func(t *testing.T) {
		a := ComputeAnalytics([]domain.Rental{
			rental("R00001", "TRK01", domain.RentalStatusReturned, 100),
			rental("R00002", "TRK01", domain.RentalStatusActive, 100),
			rental("R00003", "BIKE01", domain.RentalStatusReturned, 100),
			rental("R00004", "CAR01", domain.RentalStatusReturned, 500),
			rental("R00005", "CAR01", domain.RentalStatusReturned, 500),
			rental("R00006", "CAR01", domain.RentalStatusReturned, 500),
		})
		require.NotNil(t, a.MostRented)
		assert.Equal(t, "CAR01", a.MostRented.VehicleID)
		assert.Equal(t, 3, a.MostRented.Rentals)
		assert.Equal(t, "BIKE01", a.LeastRented.VehicleID)
		assert.Equal(t, "CAR01", a.TopRevenue[0].VehicleID)
		assert.Equal(t, int64(1500), a.TopRevenue[0].RevenueCents)
	})

	t.Run("Ties go to the lowest vehicle id", func(t *testing.T) {
		rentals := []domain.Rental{
			rental("R00001", "V2", domain.RentalStatusReturned, 100),
			rental("R00002", "V1", domain.RentalStatusReturned, 100),
			rental("R00003", "V3", domain.RentalStatusActive, 0),
		}
		for i := 0; i < 20; i++ {
			a := ComputeAnalytics(rentals)
			assert.Equal(t, "V1", a.MostRented.VehicleID)
			assert.Equal(t, "V1", a.LeastRented.VehicleID)
		}
	})

	t.Run("Breakdowns", func(t *testing.T) {
		corp := rental("R00002", "TRK01", domain.RentalStatusReturned, 700)
		corp.VehicleType = domain.VehicleTypeTruck
		corp.RenterRole = domain.RoleCorporate

		a := ComputeAnalytics([]domain.Rental{
			rental("R00001", "CAR01", domain.RentalStatusReturned, 300),
			corp,
		})
		assert.Equal(t, int64(300), a.ByVehicleType["CAR"].RevenueCents)
		assert.Equal(t, int64(700), a.ByVehicleType["TRUCK"].RevenueCents)
		assert.Equal(t, 1, a.ByRenterRole["CORPORATE"].Rentals)
	})

	t.Run("Rankings cap at five", func(t *testing.T) {
		var rentals []domain.Rental
		for _, id := range []string{"A", "B", "C", "D", "E", "F", "G"} {
			rentals = append(rentals, rental("R-"+id, id, domain.RentalStatusReturned, 100))
		}
		a := ComputeAnalytics(rentals)
		assert.Len(t, a.TopRented, 5)
		assert.Len(t, a.BottomRented, 5)
		assert.Equal(t, "A", a.TopRented[0].VehicleID)
	})
}

func TestAnalyticsService(t *testing.T) {
	ctx := context.Background()
	snap := fixtureSnapshot(t)
	snap.Rentals = []domain.Rental{rental("R00001", "CAR01", domain.RentalStatusReturned, 4200)}
	st, _ := newTestStore(t, snap)

	a, err := NewAnalyticsService(st).GetAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4200), a.TotalRevenueCents)
}
