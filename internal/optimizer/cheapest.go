package optimizer

import (
	"log/slog"
	"sort"

	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
)

// cheapestStrategy fills the itinerary with the cheapest stays first
// until the target is reached. Only stays with a positive price are
// eligible. Reaching the target is not guaranteed; a shortfall is
// reported via the achieved balance, never as an error.
type cheapestStrategy struct {
	opts Options
}

func (s *cheapestStrategy) Name() Name { return MinCostGreedy }

func (s *cheapestStrategy) Select(pool []model.StayOption, target, currentBalance int) (model.Itinerary, float64, int) {
	candidates := earnableCandidates(pool, true)
	if len(candidates) == 0 {
		return model.Itinerary{}, 0, currentBalance
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].TotalPrice != candidates[j].TotalPrice {
			return candidates[i].TotalPrice < candidates[j].TotalPrice
		}
		if candidates[i].PointsEarned != candidates[j].PointsEarned {
			return candidates[i].PointsEarned > candidates[j].PointsEarned
		}
		return candidates[i].CheckIn.Before(candidates[j].CheckIn.Time)
	})

	itinerary, cost, balance := greedyWalk(candidates, target, currentBalance, s.opts.milesRate())

	if balance < target {
		slog.Warn("cheapest-first selection fell short of target",
			"achieved", balance,
			"target", target,
			"shortfall", target-balance)
	}

	return itinerary, cost, balance
}
