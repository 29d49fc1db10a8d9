package model

import "sort"

// Itinerary is an ordered set of selected stays.
type Itinerary []StayOption

// SortChronological orders the itinerary by check-in date, breaking ties
// by hotel name so output is deterministic.
func (it Itinerary) SortChronological() {
	sort.SliceStable(it, func(i, j int) bool {
		if !it[i].CheckIn.Equal(it[j].CheckIn.Time) {
			return it[i].CheckIn.Before(it[j].CheckIn.Time)
		}
		return it[i].Name < it[j].Name
	})
}

// TotalCost sums the prices of all stays.
func (it Itinerary) TotalCost() float64 {
	var total float64
	for i := range it {
		total += it[i].TotalPrice
	}
	return total
}

// TotalFinalPoints sums the itinerary-final loyalty points of all stays.
func (it Itinerary) TotalFinalPoints() int {
	var total int
	for i := range it {
		total += it[i].FinalPoints
	}
	return total
}

// TotalMilesValue sums the dollar valuation of miles earned across all
// stays.
func (it Itinerary) TotalMilesValue() float64 {
	var total float64
	for i := range it {
		total += it[i].MilesValue
	}
	return total
}

// NetPointsPerDollar is the itinerary-wide LP yield: final points earned
// divided by total cost. Returns 0 for an empty or free itinerary.
func (it Itinerary) NetPointsPerDollar() float64 {
	cost := it.TotalCost()
	if cost <= 0 {
		return 0
	}
	return float64(it.TotalFinalPoints()) / cost
}

// LastCheckOut returns the latest checkout date in the itinerary, the
// date the point target is actually reached. Zero value when empty.
func (it Itinerary) LastCheckOut() Date {
	var last Date
	for i := range it {
		if out := it[i].CheckOut(); last.IsZero() || out.After(last.Time) {
			last = out
		}
	}
	return last
}
