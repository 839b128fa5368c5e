package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIATA(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"kochi", "COK"},
		{"Kochi", "COK"},
		{"  Mumbai  ", "BOM"},
		{"goa", "GOI"},
		{"Goa", "GOI"},
		{"GOA", "GOI"}, // city lookup wins over the all-caps code heuristic
		{"COK", "COK"},
		{"BLR", "BLR"},
		{"blr", ""}, // lowercase three letters is not a code and not a known city
		{"Atlantis", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveIATA(tt.input))
		})
	}
}

const flightsFixture = `{
	"data": [{
		"flight_date": "2026-09-01",
		"flight_status": "scheduled",
		"departure": {"airport": "Cochin International", "iata": "COK", "scheduled": "2026-09-01T06:15:00+00:00"},
		"arrival": {"airport": "Goa International", "iata": "GOI", "scheduled": "2026-09-01T07:45:00+00:00"},
		"airline": {"name": "IndiGo", "iata": "6E"},
		"flight": {"number": "345", "iata": "6E345"}
	}]
}`

func newTestFlightsClient(srv *httptest.Server) *FlightsClient {
	return &FlightsClient{
		apiKey:     "test-key",
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: 2 * time.Second},
	}
}

func TestSearchFlights(t *testing.T) {
	t.Run("Maps provider data into flights", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
			assert.Equal(t, "COK", r.URL.Query().Get("dep_iata"))
			assert.Equal(t, "GOI", r.URL.Query().Get("arr_iata"))
			w.Write([]byte(flightsFixture))
		}))
		defer srv.Close()

		flights, err := newTestFlightsClient(srv).SearchFlights(context.Background(), "COK", "GOI")
		require.NoError(t, err)
		require.Len(t, flights, 1)

		f := flights[0]
		assert.Equal(t, "IndiGo", f.Airline)
		assert.Equal(t, "6E345", f.FlightNumber)
		assert.Equal(t, "Cochin International", f.Departure)
		assert.Equal(t, "COK", f.DepartureIATA)
		assert.Equal(t, "GOI", f.ArrivalIATA)
		assert.Equal(t, "scheduled", f.Status)
		assert.Equal(t, "2026-09-01", f.FlightDate)
	})

	t.Run("No scheduled flights yields empty slice without error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": []}`))
		}))
		defer srv.Close()

		flights, err := newTestFlightsClient(srv).SearchFlights(context.Background(), "COK", "GOI")
		require.NoError(t, err)
		assert.Empty(t, flights)
	})

	t.Run("Provider error object surfaces as an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": [], "error": {"code": "invalid_access_key", "message": "Invalid API key"}}`))
		}))
		defer srv.Close()

		_, err := newTestFlightsClient(srv).SearchFlights(context.Background(), "COK", "GOI")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid_access_key")
	})

	t.Run("Missing API key fails before any call", func(t *testing.T) {
		c := &FlightsClient{httpClient: http.DefaultClient}
		_, err := c.SearchFlights(context.Background(), "COK", "GOI")
		assert.Error(t, err)
	})
}
