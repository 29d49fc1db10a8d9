package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/bradfox2/aa-hotel-optimizer/internal/search"
)

// WriteJSON writes a search result as indented JSON for scripting.
func WriteJSON(w io.Writer, result search.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// WriteCSV writes the selected itinerary as CSV, one row per stay.
func WriteCSV(w io.Writer, result search.Result) error {
	cw := csv.NewWriter(w)

	header := []string{
		"check_in_date", "hotel", "location", "total_price",
		"api_points", "card_bonus_points", "status_bonus_points",
		"final_points", "final_points_per_dollar",
		"miles_earned", "miles_value", "refundability",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, stay := range result.Itinerary {
		row := []string{
			stay.CheckIn.String(),
			stay.Name,
			stay.Location,
			strconv.FormatFloat(stay.TotalPrice, 'f', 2, 64),
			strconv.Itoa(stay.APIPoints),
			strconv.Itoa(stay.CardBonusPoints),
			strconv.Itoa(stay.StatusBonusPoints),
			strconv.Itoa(stay.FinalPoints),
			strconv.FormatFloat(stay.FinalPointsPerDollar, 'f', 2, 64),
			strconv.Itoa(stay.MilesEarned),
			strconv.FormatFloat(stay.MilesValue, 'f', 2, 64),
			stay.Refundability,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
