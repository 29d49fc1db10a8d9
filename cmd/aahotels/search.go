package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bradfox2/aa-hotel-optimizer/internal/cli"
	"github.com/bradfox2/aa-hotel-optimizer/internal/common"
	"github.com/bradfox2/aa-hotel-optimizer/internal/config"
	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
	"github.com/bradfox2/aa-hotel-optimizer/internal/optimizer"
	"github.com/bradfox2/aa-hotel-optimizer/internal/places"
	"github.com/bradfox2/aa-hotel-optimizer/internal/points"
	"github.com/bradfox2/aa-hotel-optimizer/internal/search"
	"github.com/bradfox2/aa-hotel-optimizer/internal/service"
	"github.com/bradfox2/aa-hotel-optimizer/internal/session"
	"github.com/bradfox2/aa-hotel-optimizer/internal/tui"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search hotels and build a point-earning itinerary",
		Long: `Search the AAdvantage Hotels portal across one or more cities and a
date range, then select the set of stays that reaches your Loyalty
Point target with the chosen strategy.

Examples:
  aahotels search --city Chicago --start 06/01/2026 --end 06/14/2026 --target 100000
  aahotels search --region major_us_metros --target 75000 --iterative --strategy min_cost_dp
  aahotels search --city Phoenix --target 50000 --output json --out deals.json`,
		RunE: runSearch,
	}

	cmd.Flags().StringSlice("city", nil, "city to search (repeatable)")
	cmd.Flags().String("region", "", "predefined city list (see 'aahotels places')")
	cmd.Flags().String("start", "", "search start date (MM/DD/YYYY)")
	cmd.Flags().String("end", "", "search end date (MM/DD/YYYY)")
	cmd.Flags().Int("target", 0, "Loyalty Point target (absolute balance to reach)")
	cmd.Flags().Int("balance", 0, "current Loyalty Point balance")
	cmd.Flags().String("strategy", string(optimizer.PPD), "selection strategy (ppd, min_cost_greedy, min_cost_dp, fastest_time)")
	cmd.Flags().Bool("card-bonus", false, "include AAdvantage credit card earn on hotel spend")
	cmd.Flags().Int("card-miles-rate", 1, "card miles per dollar (1 or 10)")
	cmd.Flags().Bool("iterative", false, "keep extending the search window until the target is met")
	cmd.Flags().Int("max-search-days", search.DefaultMaxSearchDays, "horizon for iterative search, in days from start")
	cmd.Flags().Int("max-overlaps", 1, "concurrent stays allowed per night (fastest_time only)")
	cmd.Flags().Float64("miles-value", points.DefaultMilesValueRate, "dollar value per mile for net PPD")
	cmd.Flags().String("headers-file", "", "session headers file (default: ~/.config/aahotels/headers.json)")
	cmd.Flags().String("output", "table", "output format (table, json, csv)")
	cmd.Flags().String("out", "", "write output to file instead of stdout")
	cmd.Flags().Int("top", 10, "rows in the top-value table")
	cmd.Flags().Bool("tui", false, "interactive live view")

	_ = viper.BindPFlag("search.strategy", cmd.Flags().Lookup("strategy"))
	_ = viper.BindPFlag("search.balance", cmd.Flags().Lookup("balance"))
	_ = viper.BindPFlag("search.miles_value", cmd.Flags().Lookup("miles-value"))
	_ = viper.BindPFlag("search.headers_file", cmd.Flags().Lookup("headers-file"))

	return cmd
}

func runSearch(cmd *cobra.Command, _ []string) error {
	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	topN, _ := cmd.Flags().GetInt("top")
	useTUI, _ := cmd.Flags().GetBool("tui")
	format, _ := cmd.Flags().GetString("output")
	outPath, _ := cmd.Flags().GetString("out")

	var result search.Result
	if useTUI {
		result, err = tui.Run(cmd.Context(), req, topN)
	} else {
		bar := newSearchBar()
		req.Progress = service.ProgressFunc(bar.report)
		result, err = search.FindBestDeals(cmd.Context(), req)
		bar.finish()
	}
	if err != nil {
		return err
	}

	return writeResult(cmd, result, req, format, outPath, topN, useTUI)
}

func buildRequest(cmd *cobra.Command) (search.Request, error) {
	cities, _ := cmd.Flags().GetStringSlice("city")
	region, _ := cmd.Flags().GetString("region")
	if region != "" {
		regionCities, err := places.Region(region)
		if err != nil {
			return search.Request{}, err
		}
		cities = append(cities, regionCities...)
	}

	startRaw, _ := cmd.Flags().GetString("start")
	endRaw, _ := cmd.Flags().GetString("end")
	start, end, err := parseDateRange(startRaw, endRaw)
	if err != nil {
		return search.Request{}, err
	}

	headers, err := loadSessionHeaders(cmd)
	if err != nil {
		return search.Request{}, err
	}

	target, _ := cmd.Flags().GetInt("target")
	cardBonus, _ := cmd.Flags().GetBool("card-bonus")
	cardRate, _ := cmd.Flags().GetInt("card-miles-rate")
	iterative, _ := cmd.Flags().GetBool("iterative")
	maxDays, _ := cmd.Flags().GetInt("max-search-days")
	maxOverlaps, _ := cmd.Flags().GetInt("max-overlaps")

	req := search.Request{
		Locations:        cities,
		StartDate:        start,
		EndDate:          end,
		AuthHeaders:      headers,
		TargetPoints:     target,
		Strategy:         optimizer.Name(viper.GetString("search.strategy")),
		CardBonusEnabled: cardBonus,
		CardMilesRate:    cardRate,
		Iterative:        iterative,
		MaxSearchDays:    maxDays,
		CurrentBalance:   viper.GetInt("search.balance"),
		MaxOverlaps:      maxOverlaps,
		MilesValueRate:   viper.GetFloat64("search.miles_value"),
	}

	if err := req.Validate(); err != nil {
		return search.Request{}, common.NewUserError("invalid search parameters", err)
	}
	return req, nil
}

// parseDateRange defaults to tomorrow through two weeks out when no
// dates are given.
func parseDateRange(startRaw, endRaw string) (model.Date, model.Date, error) {
	if startRaw == "" && endRaw == "" {
		start := model.Today().AddDays(1)
		return start, start.AddDays(13), nil
	}

	start, err := model.ParseDate(startRaw)
	if err != nil {
		return model.Date{}, model.Date{}, fmt.Errorf("invalid --start date: %w", err)
	}
	end, err := model.ParseDate(endRaw)
	if err != nil {
		return model.Date{}, model.Date{}, fmt.Errorf("invalid --end date: %w", err)
	}
	return start, end, nil
}

func loadSessionHeaders(cmd *cobra.Command) (map[string]string, error) {
	path, _ := cmd.Flags().GetString("headers-file")
	if path == "" {
		path = viper.GetString("search.headers_file")
	}
	path = config.ExpandPath(path)
	if path == "" {
		var err error
		path, err = session.DefaultHeadersPath()
		if err != nil {
			return nil, err
		}
	}

	headers, err := session.LoadHeaders(path)
	if err != nil {
		return nil, common.NewUserError("no session headers; run 'aahotels auth import' first", err)
	}

	if missing := session.Sanity(headers); len(missing) > 0 {
		slog.Warn("Session headers may be incomplete", "missing", strings.Join(missing, ", "))
	}
	return headers, nil
}

// searchBar adapts a schollz progress bar to orchestrator updates.
type searchBar struct {
	bar *progressbar.ProgressBar
}

func newSearchBar() *searchBar {
	return &searchBar{
		bar: progressbar.NewOptions(1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Searching hotels...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		),
	}
}

func (s *searchBar) report(u service.ProgressUpdate) {
	if u.TotalDates > 0 {
		s.bar.ChangeMax(u.TotalDates)
	}
	if u.LocationName != "" {
		s.bar.Describe(fmt.Sprintf("[cyan][bold]Pass %d: %s (%d/%d)[reset]",
			u.Pass, u.LocationName, u.LocationIndex, u.LocationCount))
	}
	if err := s.bar.Set(u.CompletedDates); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

func (s *searchBar) finish() {
	_ = s.bar.Finish()
	fmt.Fprintln(os.Stderr)
}

func writeResult(cmd *cobra.Command, result search.Result, req search.Request, format, outPath string, topN int, usedTUI bool) error {
	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath) //nolint:gosec // user-supplied output path
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				slog.Warn("Failed to close output file", "error", closeErr)
			}
		}()
		out = f
	}

	switch format {
	case "json":
		return cli.WriteJSON(out, result)
	case "csv":
		return cli.WriteCSV(out, result)
	case "table":
		if usedTUI && outPath == "" {
			// The TUI already displayed the tables.
			return nil
		}
		fmt.Fprintln(out, cli.RenderSummaryBox(result.Itinerary, req.TargetPoints, req.CurrentBalance, result.AchievedPoints))
		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.FormatTitle("Itinerary"))
		fmt.Fprintln(out, cli.RenderItineraryTable(result.Itinerary))
		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.FormatTitle("Top Value Stays"))
		fmt.Fprintln(out, cli.RenderTopValueTable(result.AllCandidates, topN))
		return nil
	default:
		return fmt.Errorf("invalid output format: %s", format)
	}
}
