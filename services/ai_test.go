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

func TestParseTripPlan(t *testing.T) {
	t.Run("Strict JSON", func(t *testing.T) {
		plan := ParseTripPlan(`{
			"destination": "Manali",
			"duration": "2 days",
			"itinerary": [
				{"day": 1, "title": "Arrival", "activities": [
					{"time": "10:00", "description": "Check in", "cost": "₹0"}
				]}
			],
			"packingList": ["Warm jacket"]
		}`)
		assert.Equal(t, "Manali", plan.Destination)
		assert.Equal(t, "2 days", plan.Duration)
		require.Len(t, plan.Itinerary, 1)
		assert.Equal(t, "₹0", plan.Itinerary[0].Activities[0].Cost)
		assert.Empty(t, plan.RawText)
	})

	t.Run("JSON embedded in prose", func(t *testing.T) {
		plan := ParseTripPlan("Here is your plan:\n" +
			`{"destination": "Goa", "budget": "₹15,000"}` +
			"\nEnjoy your trip!")
		assert.Equal(t, "Goa", plan.Destination)
		assert.Equal(t, "₹15,000", plan.Budget)
		assert.Empty(t, plan.RawText)
	})

	t.Run("Plain prose falls back to raw text", func(t *testing.T) {
		text := "Day 1: visit the mall road. Day 2: go paragliding in Solang Valley."
		plan := ParseTripPlan(text)
		assert.Equal(t, text, plan.RawText)
		assert.Empty(t, plan.Destination)
		assert.Empty(t, plan.Itinerary)
	})

	t.Run("Unparseable braces fall back to raw text", func(t *testing.T) {
		plan := ParseTripPlan("try {this} plan")
		assert.Equal(t, "try {this} plan", plan.RawText)
	})
}

func TestExtractJSONObject(t *testing.T) {
	t.Run("Balanced nested object", func(t *testing.T) {
		assert.Equal(t, `{"a": {"b": 1}}`, extractJSONObject(`x {"a": {"b": 1}} y`))
	})

	t.Run("Braces inside string values are ignored", func(t *testing.T) {
		assert.Equal(t, `{"tip": "pack {light}"}`, extractJSONObject(`note: {"tip": "pack {light}"}`))
	})

	t.Run("Escaped quotes inside strings", func(t *testing.T) {
		assert.Equal(t, `{"a": "say \"hi\""}`, extractJSONObject(`{"a": "say \"hi\""} trailing`))
	})

	t.Run("No object", func(t *testing.T) {
		assert.Equal(t, "", extractJSONObject("no json here"))
	})

	t.Run("Unbalanced object", func(t *testing.T) {
		assert.Equal(t, "", extractJSONObject(`{"a": 1`))
	})
}

func newTestAIClient(srv *httptest.Server) *AIClient {
	return &AIClient{
		apiKey:     "test-key",
		model:      "test-model",
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: 2 * time.Second},
	}
}

func TestPlanTrip(t *testing.T) {
	t.Run("Structured response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.Write([]byte(`{"choices": [{"message": {"content": "{\"destination\": \"Manali\", \"duration\": \"2 days\"}"}}]}`))
		}))
		defer srv.Close()

		plan, err := newTestAIClient(srv).PlanTrip(context.Background(), "Plan a 2 day trip to Manali")
		require.NoError(t, err)
		assert.Equal(t, "Manali", plan.Destination)
		assert.Empty(t, plan.RawText)
	})

	t.Run("Prose response degrades to raw text, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": [{"message": {"content": "Sure! Start with a stroll on Mall Road."}}]}`))
		}))
		defer srv.Close()

		plan, err := newTestAIClient(srv).PlanTrip(context.Background(), "Plan a 2 day trip to Manali")
		require.NoError(t, err)
		assert.Equal(t, "Sure! Start with a stroll on Mall Road.", plan.RawText)
	})

	t.Run("Rate limit surfaces as ErrAIBusy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": {"message": "rate limit exceeded", "type": "rate_limit_exceeded"}}`))
		}))
		defer srv.Close()

		_, err := newTestAIClient(srv).PlanTrip(context.Background(), "Plan a trip")
		assert.ErrorIs(t, err, ErrAIBusy)
	})

	t.Run("Other upstream failures are generic errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
		}))
		defer srv.Close()

		_, err := newTestAIClient(srv).PlanTrip(context.Background(), "Plan a trip")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrAIBusy)
	})

	t.Run("Missing API key fails before any call", func(t *testing.T) {
		c := &AIClient{httpClient: http.DefaultClient}
		_, err := c.PlanTrip(context.Background(), "Plan a trip")
		assert.Error(t, err)
	})
}
