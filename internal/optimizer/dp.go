package optimizer

import (
	"log/slog"
	"math"

	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
	"github.com/bradfox2/aa-hotel-optimizer/internal/points"
)

// dpStrategy finds the minimum-cost stay combination reaching the
// target with a 0/1 knapsack over pre-status point weights. Status
// bonuses are non-linear in selection order, so they are applied as a
// post-processing pass over the optimal index set rather than inside
// the table; the post-hoc total can overshoot the DP sum or, rarely,
// still miss the target, which is reported but never retried.
type dpStrategy struct {
	opts Options
}

func (s *dpStrategy) Name() Name { return MinCostDP }

func (s *dpStrategy) Select(pool []model.StayOption, target, currentBalance int) (model.Itinerary, float64, int) {
	candidates := bestPerDate(earnableCandidates(pool, true))
	if len(candidates) == 0 {
		return model.Itinerary{}, 0, currentBalance
	}

	relativeTarget := target - currentBalance
	if relativeTarget <= 0 {
		return model.Itinerary{}, 0, currentBalance
	}

	// Overshooting the target can be cheaper than landing near it, so
	// the table extends past the target by a buffer sized to the
	// largest single stay.
	maxStayPoints := 0
	for _, c := range candidates {
		if c.PointsEarned > maxStayPoints {
			maxStayPoints = c.PointsEarned
		}
	}
	buffer := maxStayPoints
	if fifth := relativeTarget / 5; fifth > buffer {
		buffer = fifth
	}
	if buffer < 1000 {
		buffer = 1000
	}
	maxRange := relativeTarget + buffer

	costs := make([]float64, maxRange+1)
	picks := make([][]int, maxRange+1)
	for p := 1; p <= maxRange; p++ {
		costs[p] = math.Inf(1)
	}

	for idx, stay := range candidates {
		stayPoints := stay.PointsEarned
		stayCost := stay.TotalPrice
		// Descending index iteration keeps each stay usable at most once.
		for p := maxRange; p >= stayPoints; p-- {
			if math.IsInf(costs[p-stayPoints], 1) {
				continue
			}
			costIfTaken := costs[p-stayPoints] + stayCost
			switch {
			case costIfTaken < costs[p]:
				costs[p] = costIfTaken
				picks[p] = appendPick(picks[p-stayPoints], idx)
			case costIfTaken == costs[p] && len(picks[p-stayPoints])+1 < len(picks[p]):
				picks[p] = appendPick(picks[p-stayPoints], idx)
			}
		}
	}

	// Read-out: cheapest entry at or past the target; cost ties go to
	// the path with more accumulated points.
	bestCost := math.Inf(1)
	var bestPicks []int
	for p := relativeTarget; p <= maxRange; p++ {
		switch {
		case costs[p] < bestCost:
			bestCost = costs[p]
			bestPicks = picks[p]
		case costs[p] == bestCost && pathPoints(candidates, picks[p]) > pathPoints(candidates, bestPicks):
			bestPicks = picks[p]
		}
	}

	if math.IsInf(bestCost, 1) {
		slog.Warn("dp could not reach relative target",
			"relative_target", relativeTarget,
			"candidates", len(candidates))
		return model.Itinerary{}, 0, currentBalance
	}

	selected := make(model.Itinerary, 0, len(bestPicks))
	for _, idx := range bestPicks {
		selected = append(selected, candidates[idx])
	}
	selected.SortChronological()

	// Post-processing: run the chosen stays through the bonus
	// calculator in chronological order with a running balance.
	itinerary := make(model.Itinerary, 0, len(selected))
	balance := currentBalance
	var totalCost float64
	for _, stay := range selected {
		accepted := points.Recalculate(stay, balance, s.opts.milesRate())
		itinerary = append(itinerary, accepted)
		balance += accepted.FinalPoints
		totalCost += accepted.TotalPrice
	}

	if balance < target {
		slog.Warn("dp selection with status bonuses fell short of target",
			"achieved", balance,
			"target", target)
	}

	return itinerary, totalCost, balance
}

// bestPerDate reduces the candidate set to one stay per check-in date:
// at most one stay can occupy a date, so any same-date option with
// fewer points (or the same points at a higher price) is dominated.
func bestPerDate(candidates []model.StayOption) []model.StayOption {
	best := make(map[string]model.StayOption)
	order := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := c.DateKey()
		cur, ok := best[key]
		if !ok {
			best[key] = c
			order = append(order, key)
			continue
		}
		if c.PointsEarned > cur.PointsEarned ||
			(c.PointsEarned == cur.PointsEarned && c.TotalPrice < cur.TotalPrice) {
			best[key] = c
		}
	}

	reduced := make([]model.StayOption, 0, len(order))
	for _, key := range order {
		reduced = append(reduced, best[key])
	}
	return reduced
}

func appendPick(path []int, idx int) []int {
	out := make([]int, len(path), len(path)+1)
	copy(out, path)
	return append(out, idx)
}

func pathPoints(candidates []model.StayOption, path []int) int {
	total := 0
	for _, idx := range path {
		total += candidates[idx].PointsEarned
	}
	return total
}
