package utils

import (
	"fmt"
	"math"
	"time"

	"fleetrent-backend/internal/domain"
)

// BasisPointsWhole is 100% expressed in basis points.
const BasisPointsWhole = 10000

// MaxBaseCostCents is the largest base cost that can be discounted without
// overflowing int64.
const MaxBaseCostCents = math.MaxInt64 / BasisPointsWhole

// DiscountRule is the discount a role earns on a rental.
type DiscountRule struct {
	BasisPoints int64
	// MinDays is the minimum billed duration before the discount applies.
	MinDays int
}

// DiscountRules is the role-keyed discount table.
var DiscountRules = map[domain.Role]DiscountRule{
	domain.RoleIndividual: {BasisPoints: 1000, MinDays: 7},
	domain.RoleCorporate:  {BasisPoints: 1500, MinDays: 0},
	domain.RoleStaff:      {BasisPoints: 0, MinDays: 0},
}

// CostBreakdown provides detailed cost breakdown
type CostBreakdown struct {
	Days                int   `json:"days"`
	DailyRateCents      int64 `json:"daily_rate_cents"`
	BaseCostCents       int64 `json:"base_cost_cents"`
	DiscountBasisPoints int64 `json:"discount_basis_points"`
	DiscountCents       int64 `json:"discount_cents"`
	FinalCostCents      int64 `json:"final_cost_cents"`
}

// DiscountRate returns the discount as a fraction, e.g. 0.15
func (b CostBreakdown) DiscountRate() float64 {
	return float64(b.DiscountBasisPoints) / BasisPointsWhole
}

// BilledDays returns the number of days charged for a rental from start to
// end. Same-day rentals bill one day.
func BilledDays(start, end time.Time) (int, error) {
	days := DaysBetween(start, end)
	if days < 0 {
		return 0, fmt.Errorf("%w: end date %s is before start date %s",
			domain.ErrInvalidDateRange, FormatDate(end), FormatDate(start))
	}
	if days < 1 {
		days = 1
	}
	return days, nil
}

// DiscountFor looks up the discount in basis points for role over days
func DiscountFor(role domain.Role, days int) int64 {
	rule, ok := DiscountRules[role]
	if !ok || days < rule.MinDays {
		return 0
	}
	return rule.BasisPoints
}

// ComputeCost prices a rental of a vehicle at dailyRateCents from start to
// end for a renter with the given role. The final cost is rounded half-up to
// the cent.
func ComputeCost(dailyRateCents int64, start, end time.Time, role domain.Role) (CostBreakdown, error) {
	if dailyRateCents <= 0 {
		return CostBreakdown{}, fmt.Errorf("%w: daily rate must be positive", domain.ErrInvalidEntity)
	}
	days, err := BilledDays(start, end)
	if err != nil {
		return CostBreakdown{}, err
	}

	if dailyRateCents > MaxBaseCostCents/int64(days) {
		return CostBreakdown{}, fmt.Errorf("%w: %d days at %s per day exceeds the maximum rental cost",
			domain.ErrInvalidEntity, days, FormatCents(dailyRateCents))
	}

	base := int64(days) * dailyRateCents
	bps := DiscountFor(role, days)
	final := (base*(BasisPointsWhole-bps) + BasisPointsWhole/2) / BasisPointsWhole

	return CostBreakdown{
		Days:                days,
		DailyRateCents:      dailyRateCents,
		BaseCostCents:       base,
		DiscountBasisPoints: bps,
		DiscountCents:       base - final,
		FinalCostCents:      final,
	}, nil
}

// FormatCents renders cents as a decimal amount, e.g. 12345 -> "123.45"
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
