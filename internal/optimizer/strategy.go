// Package optimizer implements the stay selection strategies. Each
// strategy consumes a candidate pool, a loyalty-point target and the
// member's starting balance, and produces a chronological itinerary
// with its total cost and the absolute balance it reaches.
package optimizer

import (
	"fmt"

	"github.com/bradfox2/aa-hotel-optimizer/internal/common"
	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
	"github.com/bradfox2/aa-hotel-optimizer/internal/points"
)

// Name identifies a selection strategy.
type Name string

// Available strategies.
const (
	PPD           Name = "ppd"
	MinCostGreedy Name = "min_cost_greedy"
	MinCostDP     Name = "min_cost_dp"
	FastestTime   Name = "fastest_time"
)

// ParseName validates a strategy name from CLI or API input.
func ParseName(s string) (Name, error) {
	switch Name(s) {
	case PPD, MinCostGreedy, MinCostDP, FastestTime:
		return Name(s), nil
	default:
		return "", fmt.Errorf("%w: %q (valid: %s, %s, %s, %s)",
			common.ErrUnknownStrategy, s, PPD, MinCostGreedy, MinCostDP, FastestTime)
	}
}

// Strategy selects stays from a candidate pool. Implementations never
// perform I/O and never fail: an infeasible target yields a partial (or
// empty) itinerary with achievedPoints below target.
//
// achievedPoints is absolute: currentBalance plus the final points of
// every selected stay.
type Strategy interface {
	// Name returns the strategy's wire name.
	Name() Name
	// Select picks an itinerary from pool toward target.
	Select(pool []model.StayOption, target, currentBalance int) (itinerary model.Itinerary, totalCost float64, achievedPoints int)
}

// Options carries the strategy parameters that are configuration rather
// than inputs: the dollar valuation of a mile and, for the fastest-time
// strategy, the per-date overlap cap.
type Options struct {
	MilesValueRate float64
	MaxOverlaps    int
}

func (o Options) milesRate() float64 {
	if o.MilesValueRate > 0 {
		return o.MilesValueRate
	}
	return points.DefaultMilesValueRate
}

// New constructs the named strategy.
func New(name Name, opts Options) (Strategy, error) {
	switch name {
	case PPD:
		return &ppdStrategy{opts: opts}, nil
	case MinCostGreedy:
		return &cheapestStrategy{opts: opts}, nil
	case MinCostDP:
		return &dpStrategy{opts: opts}, nil
	case FastestTime:
		if opts.MaxOverlaps < 1 {
			return nil, common.ErrInvalidMaxOverlaps
		}
		return &fastestStrategy{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownStrategy, name)
	}
}

// earnableCandidates filters the pool down to stays that can contribute
// toward a point target. A stay with no base point yield is useless at
// any price; requirePrice additionally drops free stays for the
// cost-minimizing strategies, which cannot rank them.
func earnableCandidates(pool []model.StayOption, requirePrice bool) []model.StayOption {
	candidates := make([]model.StayOption, 0, len(pool))
	for _, s := range pool {
		if s.APIPoints <= 0 {
			continue
		}
		if requirePrice && s.TotalPrice <= 0 {
			continue
		}
		candidates = append(candidates, s)
	}
	return candidates
}
