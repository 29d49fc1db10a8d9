// Package places holds predefined city lists for broad geographic
// searches.
package places

import (
	"fmt"
	"sort"
	"strings"
)

// MajorUSMetros covers the largest US metropolitan areas.
var MajorUSMetros = []string{
	"New York City",
	"Los Angeles",
	"Chicago",
	"Houston",
	"Phoenix",
	"Philadelphia",
	"San Antonio",
	"San Diego",
	"Dallas",
	"San Jose",
	"Austin",
	"Jacksonville",
	"Fort Worth",
	"Columbus",
	"Charlotte",
	"San Francisco",
	"Indianapolis",
	"Seattle",
	"Denver",
	"Washington D.C.",
	"Boston",
	"Nashville",
	"Las Vegas",
	"Portland",
	"Atlanta",
	"Miami",
}

var predefinedLists = map[string][]string{
	"Major US Metros": MajorUSMetros,
}

// Region returns the city list registered under name. Matching ignores
// case and treats underscores and hyphens as spaces, so shell users can
// write major_us_metros without quoting.
func Region(name string) ([]string, error) {
	for key, cities := range predefinedLists {
		if normalizeRegionName(key) == normalizeRegionName(name) {
			out := make([]string, len(cities))
			copy(out, cities)
			return out, nil
		}
	}
	return nil, fmt.Errorf("unknown region %q (valid: %s)", name, strings.Join(RegionNames(), ", "))
}

func normalizeRegionName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}

// RegionNames lists the available region names, sorted.
func RegionNames() []string {
	names := make([]string, 0, len(predefinedLists))
	for name := range predefinedLists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
