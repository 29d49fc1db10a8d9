package optimizer

import (
	"log/slog"
	"sort"

	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
	"github.com/bradfox2/aa-hotel-optimizer/internal/points"
)

// fastestStrategy finds the earliest checkout date by which the target
// can be met, allowing up to MaxOverlaps concurrent stays per check-in
// date. Because overlapping stays may be booked in parallel there is no
// well-defined per-stay "balance before", so every candidate is valued
// once against the starting balance.
//
// Feasibility is monotonic in the deadline (a later deadline only adds
// candidates), so scanning deadlines in ascending order and stopping at
// the first feasible one yields the true earliest completion date.
type fastestStrategy struct {
	opts Options
}

func (s *fastestStrategy) Name() Name { return FastestTime }

func (s *fastestStrategy) Select(pool []model.StayOption, target, currentBalance int) (model.Itinerary, float64, int) {
	candidates := earnableCandidates(pool, false)
	if len(candidates) == 0 {
		return model.Itinerary{}, 0, currentBalance
	}

	relativeTarget := target - currentBalance
	if relativeTarget <= 0 {
		return model.Itinerary{}, 0, currentBalance
	}

	// Fixed-balance valuation: all bonuses computed against the
	// starting balance only.
	valued := make([]model.StayOption, 0, len(candidates))
	for _, c := range candidates {
		valued = append(valued, points.Recalculate(c, currentBalance, s.opts.milesRate()))
	}

	// Highest-yield first, cheaper wins ties. This order is reused at
	// every deadline; a deadline only truncates it.
	sort.SliceStable(valued, func(i, j int) bool {
		if valued[i].FinalPoints != valued[j].FinalPoints {
			return valued[i].FinalPoints > valued[j].FinalPoints
		}
		return valued[i].TotalPrice < valued[j].TotalPrice
	})

	deadlines := completionDates(valued)

	for _, deadline := range deadlines {
		itinerary, cost, earned := s.fitBefore(valued, deadline, relativeTarget)
		if earned >= relativeTarget {
			slog.Debug("fastest-time target feasible",
				"completion_date", deadline.String(),
				"stays", len(itinerary),
				"cost", cost)
			itinerary.SortChronological()
			return itinerary, cost, currentBalance + earned
		}
	}

	slog.Warn("no completion date reaches target",
		"target", target,
		"balance", currentBalance,
		"candidates", len(candidates))
	return model.Itinerary{}, 0, currentBalance
}

// fitBefore greedily packs stays checking in strictly before deadline,
// respecting the per-date overlap cap, until relativeTarget is earned.
func (s *fastestStrategy) fitBefore(valued []model.StayOption, deadline model.Date, relativeTarget int) (model.Itinerary, float64, int) {
	var (
		itinerary model.Itinerary
		totalCost float64
		earned    int
		perDate   = make(map[string]int)
	)

	for _, stay := range valued {
		if earned >= relativeTarget {
			break
		}
		if !stay.CheckIn.Before(deadline.Time) {
			continue
		}
		if perDate[stay.DateKey()] >= s.opts.MaxOverlaps {
			continue
		}

		itinerary = append(itinerary, stay)
		earned += stay.FinalPoints
		totalCost += stay.TotalPrice
		perDate[stay.DateKey()]++
	}

	return itinerary, totalCost, earned
}

// completionDates enumerates every distinct candidate checkout date in
// ascending order.
func completionDates(stays []model.StayOption) []model.Date {
	seen := make(map[string]model.Date)
	for _, s := range stays {
		out := s.CheckOut()
		seen[out.String()] = out
	}

	dates := make([]model.Date, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j].Time)
	})
	return dates
}
