// Package search drives the iterative hotel search: date-window passes
// over a set of locations, bounded-concurrency per-date fetches, pool
// deduplication, and convergence checks against the selected strategy.
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
	"github.com/bradfox2/aa-hotel-optimizer/internal/optimizer"
	"github.com/bradfox2/aa-hotel-optimizer/internal/service"
)

const (
	// maxPasses caps the iterative loop regardless of progress.
	maxPasses = 12
	// windowAdvanceDays is the width of each follow-up window.
	windowAdvanceDays = 30
	// maxDateWorkers bounds the per-date fetch pool within one
	// (pass, location) pair.
	maxDateWorkers = 10
	// DefaultMaxSearchDays is how far past the start date the
	// iterative search will ever look.
	DefaultMaxSearchDays = 180
)

// Config assembles an Orchestrator. All collaborators are injected;
// there is no package-level state.
type Config struct {
	Resolver       service.PlaceResolver
	Fetcher        service.StayFetcher
	Strategy       optimizer.Strategy
	TargetPoints   int
	CurrentBalance int
	Iterative      bool
	MaxSearchDays  int
	Progress       service.ProgressReporter
	Logger         *slog.Logger
}

// Result is the outcome of a full orchestrated search.
type Result struct {
	AllCandidates  []model.StayOption `json:"all_candidates"`
	Itinerary      model.Itinerary    `json:"itinerary"`
	TotalCost      float64            `json:"total_cost"`
	AchievedPoints int                `json:"achieved_points"`
}

// Orchestrator accumulates a deduplicated candidate pool across search
// passes and re-runs the selection strategy after each pass to decide
// whether to widen the date window.
type Orchestrator struct {
	cfg    Config
	logger *slog.Logger

	pool     []model.StayOption
	poolKeys map[model.StayKey]bool
}

// New constructs an Orchestrator from cfg, applying defaults.
func New(cfg Config) *Orchestrator {
	if cfg.MaxSearchDays <= 0 {
		cfg.MaxSearchDays = DefaultMaxSearchDays
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cfg:      cfg,
		logger:   logger,
		poolKeys: make(map[model.StayKey]bool),
	}
}

// Run executes search passes over the locations until the target is
// met, the window is exhausted, or the pass cap is hit, then runs the
// strategy one final time over the full pool for the authoritative
// result. Per-location and per-date failures degrade to missing data;
// Run itself only fails on context cancellation.
func (o *Orchestrator) Run(ctx context.Context, locations []string, startDate, endDate model.Date) (Result, error) {
	windowStart := startDate
	windowEnd := endDate
	horizon := startDate.AddDays(o.cfg.MaxSearchDays)
	runningAchieved := o.cfg.CurrentBalance

	for pass := 1; ; pass++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if o.cfg.Iterative && pass > maxPasses {
			o.logger.Warn("iterative search reached pass cap", "max_passes", maxPasses)
			break
		}
		if o.cfg.Iterative && windowStart.After(horizon.Time) {
			o.logger.Warn("iterative search reached horizon", "horizon", horizon.String())
			break
		}

		dates := dateRange(windowStart, windowEnd)
		o.logger.Info("starting search pass",
			"pass", pass,
			"window_start", windowStart.String(),
			"window_end", windowEnd.String(),
			"dates", len(dates))

		var passStays []model.StayOption
		for i, query := range locations {
			update := service.ProgressUpdate{
				Pass:                pass,
				WindowEnd:           windowEnd,
				LocationIndex:       i + 1,
				LocationCount:       len(locations),
				LocationName:        query,
				FinalLocationInPass: i+1 == len(locations),
			}

			place, ok := o.resolveLocation(ctx, query)
			if !ok {
				update.Status = "place lookup failed"
				o.report(update)
				continue
			}
			update.LocationName = place.DisplayName

			if len(dates) == 0 {
				update.Status = "no dates in window"
				o.report(update)
				continue
			}

			stays := o.fetchWindow(ctx, place, dates, update)
			passStays = append(passStays, stays...)
		}

		added := o.mergeIntoPool(passStays)
		o.logger.Info("pass complete",
			"pass", pass,
			"new_options", added,
			"pool_size", len(o.pool))

		if len(o.pool) > 0 {
			_, _, runningAchieved = o.cfg.Strategy.Select(o.pool, o.cfg.TargetPoints, o.cfg.CurrentBalance)
			o.logger.Info("interim selection",
				"pass", pass,
				"achieved", runningAchieved,
				"target", o.cfg.TargetPoints)
		}

		if !o.cfg.Iterative {
			break
		}
		if runningAchieved >= o.cfg.TargetPoints {
			o.logger.Info("target met, stopping iterative search",
				"achieved", runningAchieved,
				"target", o.cfg.TargetPoints)
			break
		}

		windowStart = windowEnd.AddDays(1)
		windowEnd = windowStart.AddDays(windowAdvanceDays - 1).Min(horizon)
		if windowStart.After(windowEnd.Time) {
			o.logger.Warn("no future dates left within search limits")
			break
		}
		o.logger.Info("extending search window",
			"achieved", runningAchieved,
			"target", o.cfg.TargetPoints,
			"next_start", windowStart.String(),
			"next_end", windowEnd.String())
	}

	if len(o.pool) == 0 {
		o.logger.Info("no stays found after all passes")
		return Result{
			AllCandidates:  []model.StayOption{},
			Itinerary:      model.Itinerary{},
			AchievedPoints: o.cfg.CurrentBalance,
		}, nil
	}

	o.logger.Info("running final selection", "pool_size", len(o.pool))
	itinerary, totalCost, achieved := o.cfg.Strategy.Select(o.pool, o.cfg.TargetPoints, o.cfg.CurrentBalance)

	return Result{
		AllCandidates:  o.pool,
		Itinerary:      itinerary,
		TotalCost:      totalCost,
		AchievedPoints: achieved,
	}, nil
}

// resolveLocation maps a free-text query to a portal place. City-scoped
// results whose name contains the query win, shortest name first; any
// city result beats area results; a non-city fallback is taken with a
// warning. A failed or empty lookup skips the location.
func (o *Orchestrator) resolveLocation(ctx context.Context, query string) (model.Place, bool) {
	places, err := o.cfg.Resolver.ResolvePlaces(ctx, query)
	if err != nil {
		o.logger.Error("place lookup failed", "query", query, "error", err)
		return model.Place{}, false
	}
	if len(places) == 0 {
		o.logger.Error("no places found", "query", query)
		return model.Place{}, false
	}

	var best model.Place
	haveNameMatch := false
	lowerQuery := strings.ToLower(query)
	for _, p := range places {
		if !isCityScoped(p.ID) {
			continue
		}
		nameMatch := strings.Contains(strings.ToLower(p.DisplayName), lowerQuery)
		switch {
		case nameMatch && (!haveNameMatch || len(p.DisplayName) < len(best.DisplayName)):
			best = p
			haveNameMatch = true
		case !haveNameMatch && best.ID == "":
			best = p
		}
	}

	if best.ID == "" {
		best = places[0]
		o.logger.Warn("no city-scoped place, using first result",
			"query", query,
			"place", best.DisplayName,
			"place_id", best.ID)
	} else {
		o.logger.Info("resolved place",
			"query", query,
			"place", best.DisplayName,
			"place_id", best.ID)
	}
	return best, true
}

// fetchWindow fans the window's dates out over a bounded worker pool.
// Workers only fetch and send; merging and progress reporting happen on
// the orchestrator goroutine, so no shared state needs locking.
func (o *Orchestrator) fetchWindow(ctx context.Context, place model.Place, dates []model.Date, update service.ProgressUpdate) []model.StayOption {
	workers := len(dates)
	if workers > maxDateWorkers {
		workers = maxDateWorkers
	}

	workChan := make(chan model.Date, len(dates))
	for _, d := range dates {
		workChan <- d
	}
	close(workChan)

	resultsChan := make(chan []model.StayOption, len(dates))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for d := range workChan {
				select {
				case <-ctx.Done():
					resultsChan <- nil
					continue
				default:
				}
				stays, err := o.cfg.Fetcher.FetchStays(ctx, d, place.DisplayName, place.ID)
				if err != nil {
					o.logger.Error("fetch failed for date",
						"location", place.DisplayName,
						"date", d.String(),
						"error", err)
					stays = nil
				}
				resultsChan <- stays
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var collected []model.StayOption
	completed := 0
	update.TotalDates = len(dates)
	for stays := range resultsChan {
		collected = append(collected, stays...)
		completed++
		update.CompletedDates = completed
		o.report(update)
	}
	return collected
}

func isCityScoped(placeID string) bool {
	return strings.Contains(strings.ToUpper(placeID), "AGODA_CITY")
}

// mergeIntoPool appends stays not already present under the exact-tuple
// dedup key and returns how many were new. The pool only ever grows.
func (o *Orchestrator) mergeIntoPool(stays []model.StayOption) int {
	added := 0
	for _, s := range stays {
		key := s.Key()
		if o.poolKeys[key] {
			continue
		}
		o.poolKeys[key] = true
		o.pool = append(o.pool, s)
		added++
	}
	return added
}

func (o *Orchestrator) report(update service.ProgressUpdate) {
	if o.cfg.Progress != nil {
		o.cfg.Progress.Report(update)
	}
}

// dateRange lists every date from start to end inclusive.
func dateRange(start, end model.Date) []model.Date {
	var dates []model.Date
	for d := start; !d.After(end.Time); d = d.Next() {
		dates = append(dates, d)
	}
	return dates
}
