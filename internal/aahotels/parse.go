package aahotels

import (
	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
	"github.com/bradfox2/aa-hotel-optimizer/internal/points"
)

// Wire types for the portal API.

type placeEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type searchInitResponse struct {
	UUID string `json:"uuid"`
}

type resultsResponse struct {
	Results []hotelResult `json:"results"`
}

type hotelResult struct {
	Hotel         hotelDetails `json:"hotel"`
	GrandTotal    amount       `json:"grandTotalPublishedPriceInclusiveWithFees"`
	Rewards       int          `json:"rewards"`
	Refundability string       `json:"refundability"`
}

type hotelDetails struct {
	Name   string  `json:"name"`
	Stars  float64 `json:"stars"`
	Rating float64 `json:"rating"`
}

type amount struct {
	Amount float64 `json:"amount"`
}

// parseResults converts one page of portal results into stay options.
// Card earn is applied here, exactly once per stay; the status bonus
// stays zero until a strategy evaluates the stay against a balance.
func (c *Client) parseResults(resp *resultsResponse, location string, checkIn model.Date) []model.StayOption {
	if resp == nil {
		return nil
	}

	stays := make([]model.StayOption, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.Hotel.Name == "" {
			continue
		}

		price := r.GrandTotal.Amount
		stay := model.StayOption{
			Name:          r.Hotel.Name,
			Location:      location,
			CheckIn:       checkIn,
			TotalPrice:    price,
			APIPoints:     r.Rewards,
			Refundability: r.Refundability,
			StarRating:    r.Hotel.Stars,
			UserRating:    r.Hotel.Rating,
		}

		if c.cardBonusEnabled {
			stay.CardBonusPoints = points.CardBonus(price)
			stay.CardSpendMiles = points.CardSpendMiles(price, c.cardMilesRate)
		}
		stay.PointsEarned = stay.APIPoints + stay.CardBonusPoints
		stay.FinalPoints = stay.PointsEarned
		stay.MilesEarned = stay.APIPoints + stay.CardSpendMiles
		stay.MilesValue = float64(stay.MilesEarned) * c.milesValueRate
		if price > 0 {
			stay.PointsPerDollar = float64(stay.PointsEarned) / price
			stay.FinalPointsPerDollar = stay.PointsPerDollar
		}

		stays = append(stays, stay)
	}
	return stays
}
