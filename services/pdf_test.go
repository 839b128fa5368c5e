package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsciiCurrency(t *testing.T) {
	assert.Equal(t, "Rs.12,000", asciiCurrency("₹12,000"))
	assert.Equal(t, "Rs.500 - Rs.800 per day", asciiCurrency("₹500 - ₹800 per day"))
	assert.Equal(t, "Free entry", asciiCurrency("Free entry"))
	assert.Equal(t, "", asciiCurrency(""))
}

func TestGeneratePlanPDF(t *testing.T) {
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("Structured plan with rupee amounts", func(t *testing.T) {
		plan := &TripPlanResult{
			Destination: "Manali",
			From:        "Delhi",
			Duration:    "3 days",
			Budget:      "₹20,000",
			Itinerary: []DayPlan{
				{Day: 1, Title: "Arrival", Activities: []Activity{
					{Time: "10:00", Description: "Check in at hotel", Cost: "₹2,500"},
				}},
			},
			BudgetBreakdown: map[string]string{"Stay": "₹7,500"},
			PackingList:     []string{"Warm jacket"},
		}

		data, err := GeneratePlanPDF(plan, "Plan a 3 day trip to Manali", created)
		require.NoError(t, err)
		require.NotEmpty(t, data)
		assert.Equal(t, "%PDF", string(data[:4]))
	})

	t.Run("Raw text plan still renders a complete document", func(t *testing.T) {
		plan := &TripPlanResult{
			RawText: "Day 1: visit Mall Road, budget around ₹1,000. Day 2: Solang Valley.",
		}

		data, err := GeneratePlanPDF(plan, "Plan a trip to Manali", created)
		require.NoError(t, err)
		require.NotEmpty(t, data)
		assert.Equal(t, "%PDF", string(data[:4]))
	})
}
