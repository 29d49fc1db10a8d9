package optimizer

import (
	"log/slog"
	"sort"

	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
	"github.com/bradfox2/aa-hotel-optimizer/internal/points"
)

// ppdStrategy greedily takes the highest points-per-dollar stays first.
// The sort key uses the pre-status ratio: the status bonus depends on
// the order stays are accepted in, which is not known before the walk,
// so the ranking is a deliberate approximation.
type ppdStrategy struct {
	opts Options
}

func (s *ppdStrategy) Name() Name { return PPD }

func (s *ppdStrategy) Select(pool []model.StayOption, target, currentBalance int) (model.Itinerary, float64, int) {
	candidates := earnableCandidates(pool, false)
	if len(candidates) == 0 {
		return model.Itinerary{}, 0, currentBalance
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].PointsPerDollar != candidates[j].PointsPerDollar {
			return candidates[i].PointsPerDollar > candidates[j].PointsPerDollar
		}
		return candidates[i].TotalPrice < candidates[j].TotalPrice
	})

	itinerary, cost, balance := greedyWalk(candidates, target, currentBalance, s.opts.milesRate())

	slog.Debug("ppd selection complete",
		"stays", len(itinerary),
		"cost", cost,
		"achieved", balance,
		"target", target)

	return itinerary, cost, balance
}

// greedyWalk accepts candidates in the given order, one stay per
// check-in date, recalculating each accepted stay at the running
// balance, until the balance reaches target. Shared by the PPD and
// cheapest strategies, which differ only in sort order.
func greedyWalk(sorted []model.StayOption, target, currentBalance int, milesRate float64) (model.Itinerary, float64, int) {
	var (
		itinerary   model.Itinerary
		totalCost   float64
		balance     = currentBalance
		bookedDates = make(map[string]bool)
	)

	for _, candidate := range sorted {
		if balance >= target {
			break
		}
		if bookedDates[candidate.DateKey()] {
			continue
		}

		accepted := points.Recalculate(candidate, balance, milesRate)
		itinerary = append(itinerary, accepted)
		balance += accepted.FinalPoints
		totalCost += accepted.TotalPrice
		bookedDates[accepted.DateKey()] = true
	}

	itinerary.SortChronological()
	return itinerary, totalCost, balance
}
