// Package points implements the loyalty-point bonus math: elite-status
// tier bonuses, co-branded card earn, and mileage valuation. Everything
// here is a pure function over StayOption values; no I/O, no state.
package points

import (
	"math"

	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
)

// Status tier thresholds. Crossing a threshold with the balance held
// *before* a stay uplifts that stay's base portal points.
const (
	GoldThreshold     = 60000
	PlatinumThreshold = 100000

	GoldBonusPercent     = 0.20
	PlatinumBonusPercent = 0.30
)

// DefaultMilesValueRate is the assumed cash value of one mile, in dollars.
const DefaultMilesValueRate = 0.015

// StatusBonusPercent returns the status bonus rate earned by a stay when
// the member's balance before that stay is balance.
func StatusBonusPercent(balance int) float64 {
	switch {
	case balance >= PlatinumThreshold:
		return PlatinumBonusPercent
	case balance >= GoldThreshold:
		return GoldBonusPercent
	default:
		return 0
	}
}

// Recalculate applies the status bonus a stay earns at the given
// projected balance and re-derives every dependent field. The input is
// never mutated; callers get a fresh copy so the candidate pool keeps
// its pre-bonus values.
//
// The status bonus applies to the portal's base points only — card-spend
// points never compound.
func Recalculate(stay model.StayOption, projectedBalanceBeforeStay int, milesValueRate float64) model.StayOption {
	out := stay

	pct := StatusBonusPercent(projectedBalanceBeforeStay)
	out.StatusBonusPoints = int(math.Round(float64(stay.APIPoints) * pct))

	out.PointsEarned = stay.APIPoints + stay.CardBonusPoints
	out.FinalPoints = out.PointsEarned + out.StatusBonusPoints

	out.MilesEarned = stay.APIPoints + stay.CardSpendMiles + out.StatusBonusPoints
	out.MilesValue = float64(out.MilesEarned) * milesValueRate

	if stay.TotalPrice > 0 {
		out.PointsPerDollar = float64(out.PointsEarned) / stay.TotalPrice
		out.FinalPointsPerDollar = float64(out.FinalPoints) / stay.TotalPrice
	} else {
		out.PointsPerDollar = 0
		out.FinalPointsPerDollar = 0
	}

	return out
}

// CardBonus returns the loyalty points earned from paying with the
// co-branded card: 1 LP per dollar, rounded.
func CardBonus(price float64) int {
	if price <= 0 {
		return 0
	}
	return int(math.Round(price))
}

// CardSpendMiles returns the miles earned from card spend at the given
// per-dollar rate. Valid rates are 1 and 10; the caller validates.
func CardSpendMiles(price float64, rate int) int {
	if price <= 0 {
		return 0
	}
	return int(math.Round(price * float64(rate)))
}
