package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
)

const maxHotelNameWidth = 38

// RenderItineraryTable formats a selected itinerary as a styled table,
// one row per stay in chronological order.
func RenderItineraryTable(itinerary model.Itinerary) string {
	if len(itinerary) == 0 {
		return SubtleStyle.Render("No stays selected.")
	}

	header := []string{"Date", "Hotel", "Location", "Price", "Points", "Bonus", "Final PPD"}
	rows := make([][]string, 0, len(itinerary))
	for _, stay := range itinerary {
		rows = append(rows, []string{
			stay.CheckIn.String(),
			truncate(stay.Name, maxHotelNameWidth),
			stay.Location,
			fmt.Sprintf("$%.2f", stay.TotalPrice),
			fmt.Sprintf("%d", stay.FinalPoints),
			fmt.Sprintf("%d", stay.StatusBonusPoints),
			fmt.Sprintf("%.2f", stay.FinalPointsPerDollar),
		})
	}
	return renderTable(header, rows)
}

// RenderTopValueTable lists the highest points-per-dollar candidates
// across the whole pool, limited to n rows.
func RenderTopValueTable(pool []model.StayOption, n int) string {
	if len(pool) == 0 {
		return SubtleStyle.Render("No candidates collected.")
	}

	sorted := make([]model.StayOption, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PointsPerDollar != sorted[j].PointsPerDollar {
			return sorted[i].PointsPerDollar > sorted[j].PointsPerDollar
		}
		return sorted[i].TotalPrice < sorted[j].TotalPrice
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	header := []string{"Hotel", "Location", "Date", "Price", "Points", "PPD", "Refundable"}
	rows := make([][]string, 0, len(sorted))
	for _, stay := range sorted {
		rows = append(rows, []string{
			truncate(stay.Name, maxHotelNameWidth),
			stay.Location,
			stay.CheckIn.String(),
			fmt.Sprintf("$%.2f", stay.TotalPrice),
			fmt.Sprintf("%d", stay.PointsEarned),
			fmt.Sprintf("%.2f", stay.PointsPerDollar),
			yesNo(stay.Refundability == "REFUNDABLE"),
		})
	}
	return renderTable(header, rows)
}

// RenderSummaryBox builds the post-search summary: target vs achieved,
// cost, net yield, and the completion date when stays were selected.
func RenderSummaryBox(itinerary model.Itinerary, target, balance, achieved int) string {
	netPoints := achieved - balance

	lines := []string{
		fmt.Sprintf("Target points:     %d", target),
		fmt.Sprintf("Starting balance:  %d", balance),
		fmt.Sprintf("Achieved points:   %d", achieved),
		fmt.Sprintf("Net new points:    %d", netPoints),
		fmt.Sprintf("Total cost:        $%.2f", itinerary.TotalCost()),
	}
	if ppd := itinerary.NetPointsPerDollar(); ppd > 0 {
		lines = append(lines, fmt.Sprintf("Points per dollar: %.2f", ppd))
	}
	if mv := itinerary.TotalMilesValue(); mv > 0 {
		lines = append(lines, fmt.Sprintf("Miles value:       $%.2f", mv))
	}
	if last := itinerary.LastCheckOut(); !last.IsZero() {
		lines = append(lines, fmt.Sprintf("Completion date:   %s", last.String()))
	}

	var status string
	if achieved >= target {
		status = FormatSuccess("Target reached")
	} else {
		status = FormatWarning(fmt.Sprintf("Short of target by %d points", target-achieved))
	}
	lines = append(lines, "", status)

	return RenderBox(TrophyIcon+" Itinerary Summary", strings.Join(lines, "\n"))
}

func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range header {
		b.WriteString(TableHeaderStyle.Render(pad(h, widths[i])))
		if i < len(header)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(TableCellStyle.UnsetPaddingRight().Render(pad(cell, widths[i])))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	if diff := width - lipgloss.Width(s); diff > 0 {
		return s + strings.Repeat(" ", diff)
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
