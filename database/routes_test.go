package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRoutes(t *testing.T) {
	routes := []TransportRoute{
		{ID: 1, Source: "Kochi", Destination: "Trivandrum", Mode: "bus", Available: true},
		{ID: 2, Source: "Kochi", Destination: "Trivandrum", Mode: "train", Available: true},
		{ID: 3, Source: "Kochi Ernakulam", Destination: "Trivandrum Central", Mode: "bus", Available: true},
		{ID: 4, Source: "Kochi", Destination: "Trivandrum", Mode: "bus", Available: false},
		{ID: 5, Source: "Kollam", Destination: "Goa", Mode: "bus", Available: true},
	}

	t.Run("Case-insensitive substring on both endpoints", func(t *testing.T) {
		got := FilterRoutes(append([]TransportRoute{}, routes...), "KOCHI", "trivandrum", "")
		require.Len(t, got, 3)
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, 2, got[1].ID)
		assert.Equal(t, 3, got[2].ID)
	})

	t.Run("Mode filter is exact equality, not substring", func(t *testing.T) {
		got := FilterRoutes(append([]TransportRoute{}, routes...), "Kochi", "Trivandrum", "Bus")
		require.Len(t, got, 2)
		for _, r := range got {
			assert.Equal(t, "bus", r.Mode)
		}

		got = FilterRoutes(append([]TransportRoute{}, routes...), "Kochi", "Trivandrum", "bu")
		assert.Empty(t, got)
	})

	t.Run("Unavailable routes are dropped", func(t *testing.T) {
		got := FilterRoutes(append([]TransportRoute{}, routes...), "Kochi", "Trivandrum", "")
		for _, r := range got {
			assert.True(t, r.Available)
		}
	})
}

func TestSortRoutes(t *testing.T) {
	routes := []TransportRoute{
		{ID: 1, Price: 620, DurationMin: 300},
		{ID: 2, Price: 450, DurationMin: 330},
		{ID: 3, Price: 450, DurationMin: 255},
		{ID: 4, Price: 280, DurationMin: 255},
	}

	SortRoutes(routes)

	// Ascending by price, ties broken by ascending numeric duration.
	assert.Equal(t, []int{4, 3, 2, 1}, []int{routes[0].ID, routes[1].ID, routes[2].ID, routes[3].ID})
}

func TestDecodeAmenities(t *testing.T) {
	t.Run("Valid JSON array", func(t *testing.T) {
		assert.Equal(t, []string{"AC", "WiFi"}, DecodeAmenities(`["AC","WiFi"]`))
	})

	t.Run("Malformed JSON degrades to empty list", func(t *testing.T) {
		assert.Equal(t, []string{}, DecodeAmenities(`["AC",`))
		assert.Equal(t, []string{}, DecodeAmenities(`not json at all`))
		assert.Equal(t, []string{}, DecodeAmenities(`{"ac": true}`))
	})

	t.Run("Empty and null inputs degrade to empty list", func(t *testing.T) {
		assert.Equal(t, []string{}, DecodeAmenities(""))
		assert.Equal(t, []string{}, DecodeAmenities("   "))
		assert.Equal(t, []string{}, DecodeAmenities("null"))
	})
}
