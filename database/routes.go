package database

import (
	"encoding/json"
	"sort"
	"strings"
)

// FilterRoutes re-applies the substring filters case-insensitively in
// process. ILIKE already covers the common case, but collation differences
// between deployments made the DB-side filter alone unreliable.
func FilterRoutes(routes []TransportRoute, source, destination, mode string) []TransportRoute {
	src := strings.ToLower(strings.TrimSpace(source))
	dst := strings.ToLower(strings.TrimSpace(destination))
	m := strings.ToLower(strings.TrimSpace(mode))

	out := routes[:0]
	for _, r := range routes {
		if !r.Available {
			continue
		}
		if src != "" && !strings.Contains(strings.ToLower(r.Source), src) {
			continue
		}
		if dst != "" && !strings.Contains(strings.ToLower(r.Destination), dst) {
			continue
		}
		if m != "" && strings.ToLower(r.Mode) != m {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortRoutes orders ascending by price, then by the stored numeric duration.
func SortRoutes(routes []TransportRoute) {
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Price != routes[j].Price {
			return routes[i].Price < routes[j].Price
		}
		return routes[i].DurationMin < routes[j].DurationMin
	})
}

// DecodeAmenities parses the JSON-encoded amenities column. Corrupt or empty
// values degrade to an empty list; a bad record must never abort a query.
func DecodeAmenities(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	var amenities []string
	if err := json.Unmarshal([]byte(raw), &amenities); err != nil {
		return []string{}
	}
	if amenities == nil {
		return []string{}
	}
	return amenities
}
