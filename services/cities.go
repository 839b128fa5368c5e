package services

import "strings"

// KnownCities is the matching corpus for the curated fallback sources.
// Loaded once, never mutated. Ordering matters: when a fuzzy match is
// ambiguous the first entry in this list wins, so more specific names
// should come before names they contain.
var KnownCities = []string{
	"Kochi",
	"Trivandrum",
	"Kollam",
	"Kozhikode",
	"Thrissur",
	"Alappuzha",
	"Munnar",
	"Goa",
	"Bangalore",
	"Chennai",
	"Mumbai",
	"Delhi",
	"Hyderabad",
	"Kolkata",
	"Pune",
	"Jaipur",
	"Manali",
	"Mysore",
	"Coimbatore",
	"Madurai",
}

// MatchCity resolves free-text input to a known city display name.
// Priority order, first match wins:
//  1. case-insensitive exact equality
//  2. known city whose lowercased form contains the input
//  3. input contains a known city
//
// Returns "" when nothing matches. Intentionally naive — no edit-distance —
// and ambiguity resolves to the first hit in corpus order.
func MatchCity(input string, knownCities []string) string {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return ""
	}

	for _, city := range knownCities {
		if strings.ToLower(city) == in {
			return city
		}
	}
	for _, city := range knownCities {
		if strings.Contains(strings.ToLower(city), in) {
			return city
		}
	}
	for _, city := range knownCities {
		if strings.Contains(in, strings.ToLower(city)) {
			return city
		}
	}
	return ""
}
