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

// ─── Types ────────────────────────────────────────────────────────────────────

type Flight struct {
	Airline       string `json:"airline"`
	AirlineCode   string `json:"airline_code,omitempty"`
	FlightNumber  string `json:"flight_number,omitempty"`
	Departure     string `json:"departure"`
	DepartureIATA string `json:"departure_iata"`
	DepartureTime string `json:"departure_time"`
	Arrival       string `json:"arrival"`
	ArrivalIATA   string `json:"arrival_iata"`
	ArrivalTime   string `json:"arrival_time"`
	Status        string `json:"status,omitempty"`
	FlightDate    string `json:"flight_date,omitempty"`
}

// ─── Client ───────────────────────────────────────────────────────────────────

type FlightsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var flightsClient *FlightsClient

func InitFlights() {
	flightsClient = &FlightsClient{
		apiKey:  os.Getenv("AVIATIONSTACK_API_KEY"),
		baseURL: "http://api.aviationstack.com/v1",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}

	if flightsClient.apiKey == "" {
		log.Println("⚠️  AVIATIONSTACK_API_KEY not set — flight search will be unavailable")
	} else {
		log.Println("✅ AviationStack configured")
	}
}

func GetFlightsClient() *FlightsClient {
	return flightsClient
}

// ─── IATA resolution ──────────────────────────────────────────────────────────

// cityToIATA maps known city names to their primary airport. Inputs that are
// already three-letter codes pass through unchanged.
var cityToIATA = map[string]string{
	"kochi":      "COK",
	"trivandrum": "TRV",
	"kozhikode":  "CCJ",
	"goa":        "GOI",
	"bangalore":  "BLR",
	"chennai":    "MAA",
	"mumbai":     "BOM",
	"delhi":      "DEL",
	"hyderabad":  "HYD",
	"kolkata":    "CCU",
	"pune":       "PNQ",
	"jaipur":     "JAI",
	"coimbatore": "CJB",
	"madurai":    "IXM",
}

// ResolveIATA converts a city name or code to an IATA airport code.
// City names win over the all-caps heuristic: "GOA" is the city, not a code.
// Returns "" for inputs it cannot resolve.
func ResolveIATA(input string) string {
	in := strings.TrimSpace(input)
	if code, ok := cityToIATA[strings.ToLower(in)]; ok {
		return code
	}
	if len(in) == 3 && in == strings.ToUpper(in) {
		return in
	}
	return ""
}

// ─── Search ───────────────────────────────────────────────────────────────────

type aviationstackResponse struct {
	Data []struct {
		FlightDate   string `json:"flight_date"`
		FlightStatus string `json:"flight_status"`
		Departure    struct {
			Airport   string `json:"airport"`
			IATA      string `json:"iata"`
			Scheduled string `json:"scheduled"`
		} `json:"departure"`
		Arrival struct {
			Airport   string `json:"airport"`
			IATA      string `json:"iata"`
			Scheduled string `json:"scheduled"`
		} `json:"arrival"`
		Airline struct {
			Name string `json:"name"`
			IATA string `json:"iata"`
		} `json:"airline"`
		Flight struct {
			Number string `json:"number"`
			IATA   string `json:"iata"`
		} `json:"flight"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SearchFlights returns scheduled flights between two airports.
func (c *FlightsClient) SearchFlights(ctx context.Context, depIATA, arrIATA string) ([]Flight, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("aviationstack not configured")
	}

	params := url.Values{}
	params.Set("access_key", c.apiKey)
	params.Set("dep_iata", depIATA)
	params.Set("arr_iata", arrIATA)
	params.Set("limit", "20")

	req, err := http.NewRequestWithContext(ctx, "GET",
		c.baseURL+"/flights?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aviationstack error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed aviationstackResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse flight response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("aviationstack error: %s (%s)", parsed.Error.Message, parsed.Error.Code)
	}

	flights := make([]Flight, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		flights = append(flights, Flight{
			Airline:       d.Airline.Name,
			AirlineCode:   d.Airline.IATA,
			FlightNumber:  d.Flight.IATA,
			Departure:     d.Departure.Airport,
			DepartureIATA: d.Departure.IATA,
			DepartureTime: d.Departure.Scheduled,
			Arrival:       d.Arrival.Airport,
			ArrivalIATA:   d.Arrival.IATA,
			ArrivalTime:   d.Arrival.Scheduled,
			Status:        d.FlightStatus,
			FlightDate:    d.FlightDate,
		})
	}
	return flights, nil
}
