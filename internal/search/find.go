package search

import (
	"context"
	"fmt"

	"github.com/bradfox2/aa-hotel-optimizer/internal/aahotels"
	"github.com/bradfox2/aa-hotel-optimizer/internal/common"
	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
	"github.com/bradfox2/aa-hotel-optimizer/internal/optimizer"
	"github.com/bradfox2/aa-hotel-optimizer/internal/service"
)

// Request bundles every parameter of a full search. It is the shape the
// CLI builds from flags and the HTTP API decodes from JSON.
type Request struct {
	Locations        []string          `json:"locations"`
	StartDate        model.Date        `json:"start_date"`
	EndDate          model.Date        `json:"end_date"`
	AuthHeaders      map[string]string `json:"auth_headers,omitempty"`
	TargetPoints     int               `json:"target_points"`
	Strategy         optimizer.Name    `json:"strategy"`
	CardBonusEnabled bool              `json:"card_bonus_enabled"`
	CardMilesRate    int               `json:"card_miles_rate"`
	Iterative        bool              `json:"iterative"`
	MaxSearchDays    int               `json:"max_search_days"`
	CurrentBalance   int               `json:"current_balance"`
	MaxOverlaps      int               `json:"max_overlaps"`
	MilesValueRate   float64           `json:"miles_value_rate"`

	Progress service.ProgressReporter `json:"-"`
}

// Validate checks the request preconditions. These are the only
// failures a search returns; everything past validation degrades.
func (r *Request) Validate() error {
	if len(r.Locations) == 0 {
		return common.ErrNoLocations
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() || r.StartDate.After(r.EndDate.Time) {
		return common.ErrInvalidDateRange
	}
	if r.TargetPoints < 0 {
		return common.ErrNegativeTarget
	}
	if r.CurrentBalance < 0 {
		return common.ErrNegativeBalance
	}
	if _, err := optimizer.ParseName(string(r.Strategy)); err != nil {
		return err
	}
	if r.Strategy == optimizer.FastestTime && r.MaxOverlaps < 1 {
		return common.ErrInvalidMaxOverlaps
	}
	if r.CardBonusEnabled && r.CardMilesRate != 1 && r.CardMilesRate != 10 {
		return common.ErrInvalidMilesRate
	}
	return nil
}

// FindBestDeals is the top-level entry point: validates the request,
// builds the portal client and strategy, and runs the orchestrator.
func FindBestDeals(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid search request: %w", err)
	}

	strategy, err := optimizer.New(req.Strategy, optimizer.Options{
		MilesValueRate: req.MilesValueRate,
		MaxOverlaps:    req.MaxOverlaps,
	})
	if err != nil {
		return Result{}, err
	}

	client := aahotels.NewClient(aahotels.Config{
		Headers:          req.AuthHeaders,
		CardBonusEnabled: req.CardBonusEnabled,
		CardMilesRate:    req.CardMilesRate,
		MilesValueRate:   req.MilesValueRate,
	})

	orch := New(Config{
		Resolver:       client,
		Fetcher:        client,
		Strategy:       strategy,
		TargetPoints:   req.TargetPoints,
		CurrentBalance: req.CurrentBalance,
		Iterative:      req.Iterative,
		MaxSearchDays:  req.MaxSearchDays,
		Progress:       req.Progress,
	})

	return orch.Run(ctx, req.Locations, req.StartDate, req.EndDate)
}
