// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
)

// PlaceResolver resolves a free-text location query into candidate
// portal places. An empty slice means no match; the caller decides how
// to degrade.
type PlaceResolver interface {
	ResolvePlaces(ctx context.Context, query string) ([]model.Place, error)
}

// StayFetcher retrieves the bookable one-night stays for a single
// check-in date at a resolved place. Implementations return stays with
// ingestion-time earn applied (card bonus, card miles) and a zero
// status bonus.
type StayFetcher interface {
	FetchStays(ctx context.Context, checkIn model.Date, location, placeID string) ([]model.StayOption, error)
}

// ProgressUpdate describes one unit of search progress. CompletedDates
// and TotalDates count per-date fetches within the current location;
// Status carries a human-readable note on degraded paths (place lookup
// failure, empty window).
type ProgressUpdate struct {
	CompletedDates      int
	TotalDates          int
	Pass                int
	WindowEnd           model.Date
	LocationIndex       int
	LocationCount       int
	LocationName        string
	FinalLocationInPass bool
	Status              string
}

// ProgressReporter receives search progress notifications. Report is a
// side-channel: implementations must return quickly and never block the
// search.
type ProgressReporter interface {
	Report(update ProgressUpdate)
}

// ProgressFunc adapts a function to the ProgressReporter interface.
type ProgressFunc func(update ProgressUpdate)

// Report implements ProgressReporter.
func (f ProgressFunc) Report(update ProgressUpdate) {
	if f != nil {
		f(update)
	}
}
