package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// ─── Client ───────────────────────────────────────────────────────────────────

type DirectionsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var directionsClient *DirectionsClient

func InitDirections() {
	directionsClient = &DirectionsClient{
		apiKey:  os.Getenv("GOOGLE_MAPS_API_KEY"),
		baseURL: "https://maps.googleapis.com/maps/api",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	if directionsClient.apiKey == "" {
		log.Println("⚠️  GOOGLE_MAPS_API_KEY not set — route search will rely on fallback sources")
	} else {
		log.Println("✅ Directions API configured")
	}
}

func GetDirectionsClient() *DirectionsClient {
	return directionsClient
}

// ─── Mode translation ─────────────────────────────────────────────────────────

// translateMode maps a canonical mode to the provider's vocabulary.
// Flight has no provider equivalent and degrades to driving; degraded is true
// in that case so callers can tell via the echoed provider mode.
func translateMode(m Mode) (providerMode, transitMode string, degraded bool) {
	switch m {
	case ModeBus:
		return "transit", "bus", false
	case ModeTrain:
		return "transit", "rail", false
	case ModeWalk:
		return "walking", "", false
	case ModeBike:
		return "bicycling", "", false
	case ModeFlight:
		return "driving", "", true
	default: // auto, car
		return "driving", "", false
	}
}

// ─── Provider response ────────────────────────────────────────────────────────

type gmapsTextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"` // meters or seconds
}

type gmapsTransitDetails struct {
	Headsign string `json:"headsign"`
	NumStops int    `json:"num_stops"`
	Line     struct {
		ShortName string `json:"short_name"`
		Name      string `json:"name"`
		Vehicle   struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"vehicle"`
	} `json:"line"`
	DepartureTime struct {
		Text string `json:"text"`
	} `json:"departure_time"`
	ArrivalTime struct {
		Text string `json:"text"`
	} `json:"arrival_time"`
}

type gmapsStep struct {
	HTMLInstructions string               `json:"html_instructions"`
	TravelMode       string               `json:"travel_mode"`
	TransitDetails   *gmapsTransitDetails `json:"transit_details,omitempty"`
}

type gmapsLeg struct {
	Distance gmapsTextValue `json:"distance"`
	Duration gmapsTextValue `json:"duration"`
	Steps    []gmapsStep    `json:"steps"`
}

type gmapsRoute struct {
	Summary string     `json:"summary"`
	Legs    []gmapsLeg `json:"legs"`
}

type gmapsDirectionsResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
	Routes       []gmapsRoute `json:"routes"`
}

// ─── Adapter ──────────────────────────────────────────────────────────────────

// GetDirections fetches driving/transit/walking directions and normalizes them
// into route offers. A non-OK provider status or an empty route list yields an
// empty slice without error so the caller's fallback path activates cleanly.
func (c *DirectionsClient) GetDirections(ctx context.Context, origin, destination string, mode Mode) ([]RouteOffer, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("directions API key not configured")
	}

	providerMode, transitMode, _ := translateMode(mode)

	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	params.Set("mode", providerMode)
	params.Set("alternatives", "true")
	params.Set("key", c.apiKey)
	if transitMode != "" {
		params.Set("transit_mode", transitMode)
	}

	req, err := http.NewRequestWithContext(ctx, "GET",
		c.baseURL+"/directions/json?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed gmapsDirectionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse directions response: %w", err)
	}

	if parsed.Status != "OK" || len(parsed.Routes) == 0 {
		return nil, nil
	}

	return mapDirections(parsed.Routes, origin, destination, mode), nil
}

// mapDirections flattens provider routes into offers, one per alternative.
// Legs are aggregated into total distance/duration; step instructions have
// their markup stripped; transit fields are extracted where present.
func mapDirections(routes []gmapsRoute, origin, destination string, mode Mode) []RouteOffer {
	providerMode, _, _ := translateMode(mode)

	offers := make([]RouteOffer, 0, len(routes))
	for _, r := range routes {
		var distMeters, durSeconds int
		var steps []string
		var transit []TransitDetail

		for _, leg := range r.Legs {
			distMeters += leg.Distance.Value
			durSeconds += leg.Duration.Value
			for _, s := range leg.Steps {
				if text := stripHTML(s.HTMLInstructions); text != "" {
					steps = append(steps, text)
				}
				if s.TransitDetails != nil {
					td := s.TransitDetails
					line := td.Line.ShortName
					if line == "" {
						line = td.Line.Name
					}
					transit = append(transit, TransitDetail{
						Line:          line,
						Vehicle:       td.Line.Vehicle.Name,
						Headsign:      td.Headsign,
						NumStops:      td.NumStops,
						DepartureTime: td.DepartureTime.Text,
						ArrivalTime:   td.ArrivalTime.Text,
					})
				}
			}
		}

		durMin := durSeconds / 60
		offers = append(offers, RouteOffer{
			Mode:         modeLabel(mode),
			Source:       origin,
			Destination:  destination,
			Price:        PricePlaceholder,
			Duration:     formatDurationMin(durMin),
			DurationMin:  durMin,
			Distance:     fmt.Sprintf("%.1f km", float64(distMeters)/1000),
			Amenities:    []string{},
			Operator:     r.Summary,
			ProviderMode: providerMode,
			Steps:        steps,
			Transit:      transit,
		})
	}
	return offers
}

// stripHTML reduces HTML-bearing instruction text to plain text.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	text := b.String()
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}

func formatDurationMin(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

// ─── Source ───────────────────────────────────────────────────────────────────

// DirectionsSource adapts the directions client to the route-source contract.
type DirectionsSource struct {
	client *DirectionsClient
}

func NewDirectionsSource() *DirectionsSource {
	return &DirectionsSource{client: directionsClient}
}

func (s *DirectionsSource) Name() string { return "directions" }

func (s *DirectionsSource) Search(ctx context.Context, q RouteQuery) ([]RouteOffer, error) {
	if s.client == nil {
		return nil, fmt.Errorf("directions client not initialized")
	}
	return s.client.GetDirections(ctx, q.Origin, q.Destination, q.Mode)
}
