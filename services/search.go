package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ─── Types ────────────────────────────────────────────────────────────────────

// Mode is the canonical travel mode. ModeAuto means "any mode, let the
// provider choose" and is the default for absent or unrecognized input.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeBus    Mode = "bus"
	ModeTrain  Mode = "train"
	ModeFlight Mode = "flight"
	ModeWalk   Mode = "walk"
	ModeCar    Mode = "car"
	ModeBike   Mode = "bike"
)

// ParseMode normalizes free-text mode input to a canonical Mode.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeBus:
		return ModeBus
	case ModeTrain:
		return ModeTrain
	case ModeFlight:
		return ModeFlight
	case ModeWalk:
		return ModeWalk
	case ModeCar:
		return ModeCar
	case ModeBike:
		return ModeBike
	default:
		return ModeAuto
	}
}

type RouteQuery struct {
	Origin      string
	Destination string
	Mode        Mode
	Date        string // optional, YYYY-MM-DD
}

// PricePlaceholder is used when a source has no fare data. A missing price is
// always an explicit placeholder, never a silently dropped field.
const PricePlaceholder = "Price varies"

// TransitDetail carries transit-specific fields extracted from a directions leg.
type TransitDetail struct {
	Line          string `json:"line,omitempty"`
	Vehicle       string `json:"vehicle,omitempty"`
	Headsign      string `json:"headsign,omitempty"`
	NumStops      int    `json:"num_stops,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
}

// RouteOffer is the unified shape every source normalizes into.
// Price is either a float64 (curated/persisted data) or a placeholder string
// (live data with no fare). Duration is the display form; DurationMin carries
// the numeric value where known so callers can sort without re-parsing.
type RouteOffer struct {
	Mode          string          `json:"mode"`
	Source        string          `json:"source"`
	Destination   string          `json:"destination"`
	Price         any             `json:"price"`
	Duration      string          `json:"duration"`
	DurationMin   int             `json:"duration_min,omitempty"`
	Distance      string          `json:"distance,omitempty"`
	Amenities     []string        `json:"amenities"`
	Operator      string          `json:"operator,omitempty"`
	DepartureTime string          `json:"departure_time,omitempty"`
	ArrivalTime   string          `json:"arrival_time,omitempty"`
	Frequency     string          `json:"frequency,omitempty"`
	ProviderMode  string          `json:"provider_mode,omitempty"`
	Steps         []string        `json:"steps,omitempty"`
	Transit       []TransitDetail `json:"transit,omitempty"`
}

// ─── Sources ──────────────────────────────────────────────────────────────────

// RouteSource is one route data source. Sources return an empty slice when
// they have nothing for the query; errors mean the source could not be
// consulted at all and the orchestrator moves on to the next one.
type RouteSource interface {
	Name() string
	Search(ctx context.Context, q RouteQuery) ([]RouteOffer, error)
}

// ErrUnknownCity is returned by curated sources when an endpoint cannot be
// matched against the known-city corpus.
var ErrUnknownCity = errors.New("city not in known-city list")

// ─── Orchestrator ─────────────────────────────────────────────────────────────

type SearchResult struct {
	Success bool
	Routes  []RouteOffer
	Message string
}

// Orchestrator tries an ordered list of route sources and returns the first
// non-empty answer. A failing source is logged and skipped, never propagated:
// a provider outage must not surface as an error while a fallback can answer.
type Orchestrator struct {
	sources []RouteSource
	cities  []string
}

var orchestrator *Orchestrator

// InitSearch wires the source chain: live directions first, then the curated
// catalog, then the persisted route store. Call after the provider Init funcs.
func InitSearch() {
	orchestrator = NewOrchestrator(
		NewDirectionsSource(),
		NewCatalogSource(),
		NewStoreSource(),
	)
	log.Printf("✅ Route search ready with %d sources", len(orchestrator.sources))
}

func GetOrchestrator() *Orchestrator {
	return orchestrator
}

func NewOrchestrator(sources ...RouteSource) *Orchestrator {
	return &Orchestrator{
		sources: sources,
		cities:  KnownCities,
	}
}

// SearchRoutes runs the fallback chain for one query. Validation failures
// return immediately without consulting any source.
func (o *Orchestrator) SearchRoutes(ctx context.Context, q RouteQuery) SearchResult {
	q.Origin = strings.TrimSpace(q.Origin)
	q.Destination = strings.TrimSpace(q.Destination)

	if q.Origin == "" || q.Destination == "" {
		return SearchResult{
			Success: false,
			Message: "Both origin and destination are required",
		}
	}
	if q.Mode == "" {
		q.Mode = ModeAuto
	}

	unknownCity := false
	for _, src := range o.sources {
		offers, err := src.Search(ctx, q)
		if err != nil {
			if errors.Is(err, ErrUnknownCity) {
				unknownCity = true
			} else {
				log.Printf("⚠️  Route source %q failed: %v — trying next source", src.Name(), err)
			}
			continue
		}
		if len(offers) > 0 {
			return SearchResult{Success: true, Routes: offers}
		}
	}

	if unknownCity {
		return SearchResult{
			Success: false,
			Message: fmt.Sprintf("No routes found. Try one of the cities we know, e.g. %s",
				strings.Join(cityHint(o.cities, 5), ", ")),
		}
	}
	return SearchResult{
		Success: false,
		Message: fmt.Sprintf("No routes found from %s to %s", q.Origin, q.Destination),
	}
}

func cityHint(cities []string, n int) []string {
	if len(cities) < n {
		n = len(cities)
	}
	return cities[:n]
}
