package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bradfox2/aa-hotel-optimizer/internal/aahotels"
	"github.com/bradfox2/aa-hotel-optimizer/internal/cli"
	"github.com/bradfox2/aa-hotel-optimizer/internal/places"
)

func placesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places [region-or-query]",
		Short: "List predefined city lists, or resolve a query against the portal",
		Long: `With no argument, lists the predefined city lists usable with
'search --region'. With an argument naming a list, prints its cities.
Any other argument is resolved against the portal's place lookup,
which requires imported session headers.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPlaces,
	}

	cmd.Flags().String("headers-file", "", "session headers file (default: ~/.config/aahotels/headers.json)")

	return cmd
}

func runPlaces(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintln(out, cli.FormatTitle("Available regions"))
		for _, name := range places.RegionNames() {
			cities, _ := places.Region(name)
			fmt.Fprintf(out, "  %-20s %d cities (%s, ...)\n", name, len(cities), strings.Join(first(cities, 3), ", "))
		}
		return nil
	}

	// A region name wins over a portal lookup.
	if cities, err := places.Region(args[0]); err == nil {
		fmt.Fprintln(out, cli.FormatTitle(args[0]))
		for _, city := range cities {
			fmt.Fprintf(out, "  %s\n", city)
		}
		return nil
	}

	return resolvePortalPlaces(cmd, args[0])
}

func resolvePortalPlaces(cmd *cobra.Command, query string) error {
	out := cmd.OutOrStdout()

	headers, err := loadSessionHeaders(cmd)
	if err != nil {
		return err
	}
	client := aahotels.NewClient(aahotels.Config{Headers: headers})

	found, err := client.ResolvePlaces(cmd.Context(), query)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("No places found for %q", query)))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Places matching %q", query)))
	for _, p := range found {
		fmt.Fprintf(out, "  %-40s %s\n", p.DisplayName, p.ID)
	}
	return nil
}

func first(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}
