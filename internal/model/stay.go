// Package model defines the core domain types shared across the application.
package model

import "fmt"

// StayOption represents a single bookable one-night hotel stay and the
// loyalty-point economics attached to it. Point fields split into the
// portal's base offer (APIPoints), the co-branded card earn computed once
// at ingestion (CardBonusPoints, CardSpendMiles), and the status bonus
// computed against a projected balance during itinerary selection.
type StayOption struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	CheckIn  Date   `json:"check_in_date"`

	TotalPrice float64 `json:"total_price"`

	APIPoints         int `json:"api_points_earned"`
	CardBonusPoints   int `json:"card_bonus_points"`
	PointsEarned      int `json:"points_earned"`
	StatusBonusPoints int `json:"status_bonus_points"`
	FinalPoints       int `json:"points_earned_final_for_itinerary"`

	PointsPerDollar      float64 `json:"points_per_dollar"`
	FinalPointsPerDollar float64 `json:"final_points_per_dollar"`

	CardSpendMiles int     `json:"card_miles_from_spend"`
	MilesEarned    int     `json:"miles_earned_final"`
	MilesValue     float64 `json:"miles_value_final"`

	Refundability string  `json:"refundability,omitempty"`
	StarRating    float64 `json:"star_rating,omitempty"`
	UserRating    float64 `json:"user_rating,omitempty"`
}

// StayKey identifies a stay for deduplication. Two fetched offers are the
// same stay only when the hotel, the city query, the night and the exact
// price all match; a price change produces a distinct candidate.
type StayKey struct {
	Name     string
	Location string
	Date     string
	Price    float64
}

// Key returns the deduplication key for the stay.
func (s *StayOption) Key() StayKey {
	return StayKey{
		Name:     s.Name,
		Location: s.Location,
		Date:     s.CheckIn.String(),
		Price:    s.TotalPrice,
	}
}

// CheckOut returns the checkout date. Stays are always one night.
func (s *StayOption) CheckOut() Date {
	return s.CheckIn.Next()
}

// DateKey returns the check-in date as a MM/DD/YYYY string, the key used
// for one-stay-per-date bookkeeping.
func (s *StayOption) DateKey() string {
	return s.CheckIn.String()
}

func (s *StayOption) String() string {
	return fmt.Sprintf("%s (%s %s $%.2f, %d LP)",
		s.Name, s.Location, s.CheckIn, s.TotalPrice, s.FinalPoints)
}
