package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"
)

// ErrCityNotFound means the geocoder returned no hit for a city name.
var ErrCityNotFound = errors.New("city could not be geocoded")

// ─── Types ────────────────────────────────────────────────────────────────────

type GeoPoint struct {
	City  string  `json:"city"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// RoutePlan is the drawn-on-a-map result: both endpoints geocoded plus the
// road geometry between them. Coordinates are [lat, lng] pairs.
type RoutePlan struct {
	From        GeoPoint     `json:"from"`
	To          GeoPoint     `json:"to"`
	DistanceKm  float64      `json:"distance_km"`
	DurationHr  float64      `json:"duration_hr"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// ─── Client ───────────────────────────────────────────────────────────────────

type ORSClient struct {
	apiKey        string
	baseURL       string
	geocodeClient *http.Client
	routeClient   *http.Client
}

var orsClient *ORSClient

func InitORS() {
	orsClient = &ORSClient{
		apiKey:  os.Getenv("ORS_API_KEY"),
		baseURL: "https://api.openrouteservice.org",
		geocodeClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		routeClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}

	if orsClient.apiKey == "" {
		log.Println("⚠️  ORS_API_KEY not set — the route planner will be unavailable")
	} else {
		log.Println("✅ OpenRouteService configured")
	}
}

func GetORSClient() *ORSClient {
	return orsClient
}

// ─── Geocoding ────────────────────────────────────────────────────────────────

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

func (c *ORSClient) Geocode(ctx context.Context, city string) (GeoPoint, error) {
	if c.apiKey == "" {
		return GeoPoint{}, fmt.Errorf("ORS API key not configured")
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("text", city)
	params.Set("size", "1")

	req, err := http.NewRequestWithContext(ctx, "GET",
		c.baseURL+"/geocode/search?"+params.Encode(), nil)
	if err != nil {
		return GeoPoint{}, err
	}

	resp, err := c.geocodeClient.Do(req)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return GeoPoint{}, fmt.Errorf("geocode error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed orsGeocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return GeoPoint{}, fmt.Errorf("failed to parse geocode response: %w", err)
	}
	if len(parsed.Features) == 0 || len(parsed.Features[0].Geometry.Coordinates) < 2 {
		return GeoPoint{}, fmt.Errorf("%w: %s", ErrCityNotFound, city)
	}

	f := parsed.Features[0]
	return GeoPoint{
		City:  city,
		Label: f.Properties.Label,
		Lat:   f.Geometry.Coordinates[1],
		Lng:   f.Geometry.Coordinates[0],
	}, nil
}

// ─── Routing ──────────────────────────────────────────────────────────────────

type orsDirectionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
	} `json:"features"`
}

func orsProfile(m Mode) string {
	switch m {
	case ModeBike:
		return "cycling-regular"
	case ModeWalk:
		return "foot-walking"
	default:
		return "driving-car"
	}
}

// PlanRoute geocodes both endpoints and fetches the road route between them.
// The two geocode calls are independent and run concurrently; the routing
// call waits on both.
func (c *ORSClient) PlanRoute(ctx context.Context, from, to string, mode Mode) (*RoutePlan, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("ORS API key not configured")
	}

	var (
		wg             sync.WaitGroup
		fromPt, toPt   GeoPoint
		fromErr, toErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		fromPt, fromErr = c.Geocode(ctx, from)
	}()
	go func() {
		defer wg.Done()
		toPt, toErr = c.Geocode(ctx, to)
	}()
	wg.Wait()

	if fromErr != nil {
		return nil, fromErr
	}
	if toErr != nil {
		return nil, toErr
	}

	reqBody, err := json.Marshal(map[string]any{
		"coordinates": [][]float64{
			{fromPt.Lng, fromPt.Lat},
			{toPt.Lng, toPt.Lat},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseURL+"/v2/directions/"+orsProfile(mode)+"/geojson",
		bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.routeClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed orsDirectionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse routing response: %w", err)
	}
	if len(parsed.Features) == 0 {
		return nil, fmt.Errorf("routing returned no route")
	}

	f := parsed.Features[0]
	coords := make([][2]float64, 0, len(f.Geometry.Coordinates))
	for _, pt := range f.Geometry.Coordinates {
		if len(pt) < 2 {
			continue
		}
		coords = append(coords, [2]float64{pt[1], pt[0]})
	}

	return &RoutePlan{
		From:        fromPt,
		To:          toPt,
		DistanceKm:  f.Properties.Summary.Distance / 1000,
		DurationHr:  f.Properties.Summary.Duration / 3600,
		Coordinates: coords,
	}, nil
}
