package services

import (
	"context"

	"wanderwise/database"
)

// StoreSource serves the persisted route table. Endpoints are normalized
// through the city matcher before the substring query; the database layer
// owns re-filtering and the price/duration sort.
type StoreSource struct {
	cities []string
}

func NewStoreSource() *StoreSource {
	return &StoreSource{cities: KnownCities}
}

func (s *StoreSource) Name() string { return "database" }

func (s *StoreSource) Search(ctx context.Context, q RouteQuery) ([]RouteOffer, error) {
	origin := MatchCity(q.Origin, s.cities)
	destination := MatchCity(q.Destination, s.cities)
	if origin == "" || destination == "" {
		return nil, ErrUnknownCity
	}

	modeFilter := ""
	if q.Mode != ModeAuto {
		modeFilter = string(q.Mode)
	}

	routes, err := database.QueryRoutes(ctx, origin, destination, modeFilter)
	if err != nil {
		return nil, err
	}

	offers := make([]RouteOffer, 0, len(routes))
	for _, r := range routes {
		offers = append(offers, RouteOffer{
			Mode:          modeLabel(ParseMode(r.Mode)),
			Source:        r.Source,
			Destination:   r.Destination,
			Price:         r.Price,
			Duration:      r.Duration,
			DurationMin:   r.DurationMin,
			Distance:      r.Distance,
			Amenities:     database.DecodeAmenities(r.AmenitiesJSON),
			Operator:      r.OperatorName,
			DepartureTime: r.DepartureTime,
			ArrivalTime:   r.ArrivalTime,
			Frequency:     r.Frequency,
		})
	}
	return offers, nil
}
