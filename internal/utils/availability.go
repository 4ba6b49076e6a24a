package utils

import (
	"sort"
	"time"

	"fleetrent-backend/internal/domain"
)

// Period is an inclusive calendar range a vehicle is held by a rental
type Period struct {
	RentalID string    `json:"rental_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Active   bool      `json:"active"`
}

// Overlaps reports whether two inclusive date ranges share at least one day
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// IsAvailable reports whether no rental of vehicleID occupies any day of
// [start, end]. Active rentals hold their planned range; returned rentals
// hold up to their actual return date.
func IsAvailable(rentals []domain.Rental, vehicleID string, start, end time.Time) bool {
	start, end = TruncateToDate(start), TruncateToDate(end)
	for i := range rentals {
		r := &rentals[i]
		if r.VehicleID != vehicleID {
			continue
		}
		if Overlaps(TruncateToDate(r.StartDate), TruncateToDate(r.OccupiedUntil()), start, end) {
			return false
		}
	}
	return true
}

// BookedPeriods lists the periods vehicleID is held, ordered by start date
func BookedPeriods(rentals []domain.Rental, vehicleID string) []Period {
	var periods []Period
	for i := range rentals {
		r := &rentals[i]
		if r.VehicleID != vehicleID {
			continue
		}
		periods = append(periods, Period{
			RentalID: r.ID,
			Start:    r.StartDate,
			End:      r.OccupiedUntil(),
			Active:   r.IsActive(),
		})
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Start.Before(periods[j].Start)
	})
	return periods
}

// VehicleStatusOn derives the vehicle status for a given day
func VehicleStatusOn(rentals []domain.Rental, vehicleID string, day time.Time) domain.VehicleStatus {
	day = TruncateToDate(day)
	for i := range rentals {
		r := &rentals[i]
		if r.VehicleID == vehicleID && r.IsActive() && Overlaps(r.StartDate, r.EndDate, day, day) {
			return domain.VehicleStatusRented
		}
	}
	return domain.VehicleStatusAvailable
}
