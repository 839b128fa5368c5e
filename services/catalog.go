package services

import "context"

// ─── Curated catalog ──────────────────────────────────────────────────────────

// CatalogRoute is one hand-authored fallback record. Prices are fixed INR
// estimates; DurationMin mirrors Duration so offers carry both forms.
type CatalogRoute struct {
	Origin      string
	Destination string
	Mode        Mode
	Price       float64
	Duration    string
	DurationMin int
	Operator    string
	Amenities   []string
}

// routeCatalog is the static fallback dataset used when live data is
// unavailable. Loaded at init, immutable.
var routeCatalog = []CatalogRoute{
	{"Kochi", "Trivandrum", ModeBus, 450, "5h 30m", 330, "KSRTC", []string{"AC", "Reclining Seats"}},
	{"Kochi", "Trivandrum", ModeTrain, 280, "4h 15m", 255, "Indian Railways", []string{"Sleeper", "Pantry"}},
	{"Trivandrum", "Kochi", ModeBus, 450, "5h 30m", 330, "KSRTC", []string{"AC", "Reclining Seats"}},
	{"Trivandrum", "Kochi", ModeTrain, 280, "4h 15m", 255, "Indian Railways", []string{"Sleeper", "Pantry"}},
	{"Kochi", "Bangalore", ModeBus, 1100, "10h 30m", 630, "VRL Travels", []string{"AC Sleeper", "Charging Point", "Water Bottle"}},
	{"Kochi", "Bangalore", ModeFlight, 3200, "1h 10m", 70, "IndiGo", []string{"Cabin Baggage 7kg"}},
	{"Bangalore", "Kochi", ModeFlight, 3400, "1h 10m", 70, "IndiGo", []string{"Cabin Baggage 7kg"}},
	{"Kollam", "Goa", ModeBus, 1200, "14h", 840, "Paulo Travels", []string{"AC Sleeper", "Blanket"}},
	{"Kollam", "Trivandrum", ModeBus, 120, "1h 45m", 105, "KSRTC", []string{}},
	{"Kollam", "Trivandrum", ModeTrain, 75, "1h 10m", 70, "Indian Railways", []string{}},
	{"Kochi", "Goa", ModeFlight, 4100, "1h 20m", 80, "Air India Express", []string{"Cabin Baggage 7kg"}},
	{"Kochi", "Goa", ModeBus, 1350, "13h 30m", 810, "Paulo Travels", []string{"AC Sleeper", "Charging Point"}},
	{"Bangalore", "Chennai", ModeTrain, 520, "5h", 300, "Indian Railways", []string{"AC Chair Car", "Pantry"}},
	{"Bangalore", "Chennai", ModeBus, 750, "6h 30m", 390, "KPN Travels", []string{"AC", "WiFi"}},
	{"Chennai", "Bangalore", ModeTrain, 520, "5h", 300, "Indian Railways", []string{"AC Chair Car", "Pantry"}},
	{"Mumbai", "Goa", ModeBus, 950, "11h", 660, "Neeta Travels", []string{"AC Sleeper", "Blanket"}},
	{"Mumbai", "Goa", ModeFlight, 2800, "1h 15m", 75, "IndiGo", []string{"Cabin Baggage 7kg"}},
	{"Mumbai", "Goa", ModeTrain, 640, "8h 30m", 510, "Indian Railways", []string{"Sleeper", "Pantry"}},
	{"Delhi", "Manali", ModeBus, 1450, "12h 30m", 750, "HRTC", []string{"Volvo AC", "Water Bottle"}},
	{"Delhi", "Jaipur", ModeTrain, 480, "4h 30m", 270, "Indian Railways", []string{"AC Chair Car"}},
	{"Delhi", "Jaipur", ModeBus, 550, "5h 30m", 330, "RSRTC", []string{"AC"}},
	{"Hyderabad", "Bangalore", ModeFlight, 2600, "1h 5m", 65, "IndiGo", []string{"Cabin Baggage 7kg"}},
}

// modeLabel converts a canonical mode into the display label carried on offers.
func modeLabel(m Mode) string {
	switch m {
	case ModeBus:
		return "Bus"
	case ModeTrain:
		return "Train"
	case ModeFlight:
		return "Flight"
	case ModeWalk:
		return "Walk"
	case ModeCar:
		return "Car"
	case ModeBike:
		return "Bike"
	default:
		return "Drive"
	}
}

// ─── Catalog source ───────────────────────────────────────────────────────────

// CatalogSource serves the curated dataset. Endpoints are normalized through
// the city matcher; catalog lookup is by exact matched-name equality and the
// result preserves catalog order.
type CatalogSource struct {
	cities []string
	routes []CatalogRoute
}

func NewCatalogSource() *CatalogSource {
	return &CatalogSource{cities: KnownCities, routes: routeCatalog}
}

func (s *CatalogSource) Name() string { return "catalog" }

func (s *CatalogSource) Search(_ context.Context, q RouteQuery) ([]RouteOffer, error) {
	origin := MatchCity(q.Origin, s.cities)
	destination := MatchCity(q.Destination, s.cities)
	if origin == "" || destination == "" {
		return nil, ErrUnknownCity
	}

	offers := []RouteOffer{}
	for _, r := range s.routes {
		if r.Origin != origin || r.Destination != destination {
			continue
		}
		// Mode filter is exact equality on the canonical mode; "auto" means any.
		if q.Mode != ModeAuto && r.Mode != q.Mode {
			continue
		}
		offers = append(offers, RouteOffer{
			Mode:        modeLabel(r.Mode),
			Source:      origin,
			Destination: destination,
			Price:       r.Price,
			Duration:    r.Duration,
			DurationMin: r.DurationMin,
			Amenities:   append([]string{}, r.Amenities...),
			Operator:    r.Operator,
		})
	}
	return offers, nil
}
