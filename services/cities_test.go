package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCity(t *testing.T) {
	t.Run("Exact match ignores case and returns catalog casing", func(t *testing.T) {
		assert.Equal(t, "Kochi", MatchCity("kochi", KnownCities))
		assert.Equal(t, "Kochi", MatchCity("KOCHI", KnownCities))
		assert.Equal(t, "Trivandrum", MatchCity("  Trivandrum  ", KnownCities))
	})

	t.Run("Exact match wins over substring match", func(t *testing.T) {
		cities := []string{"Kochi City", "Kochi"}
		assert.Equal(t, "Kochi", MatchCity("kochi", cities))
	})

	t.Run("City containing input", func(t *testing.T) {
		assert.Equal(t, "Trivandrum", MatchCity("trivand", KnownCities))
	})

	t.Run("Priority is exact, then city-contains-input, then input-contains-city", func(t *testing.T) {
		cities := []string{"Bangalore", "West Bengal"}
		// "Bangalore" does not contain "bengal", so tier two resolves to
		// "West Bengal" and tier three is never reached.
		assert.Equal(t, "West Bengal", MatchCity("Bengal", cities))
	})

	t.Run("Input containing city", func(t *testing.T) {
		assert.Equal(t, "Goa", MatchCity("North Goa beaches", KnownCities))
	})

	t.Run("Ambiguity resolves to first corpus entry", func(t *testing.T) {
		cities := []string{"Kollam", "Kolkata"}
		assert.Equal(t, "Kollam", MatchCity("kol", cities))
	})

	t.Run("Empty and whitespace input", func(t *testing.T) {
		assert.Equal(t, "", MatchCity("", KnownCities))
		assert.Equal(t, "", MatchCity("   ", KnownCities))
	})

	t.Run("No match", func(t *testing.T) {
		assert.Equal(t, "", MatchCity("Atlantis", KnownCities))
	})
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeBus, ParseMode("bus"))
	assert.Equal(t, ModeTrain, ParseMode(" Train "))
	assert.Equal(t, ModeFlight, ParseMode("FLIGHT"))
	assert.Equal(t, ModeAuto, ParseMode(""))
	assert.Equal(t, ModeAuto, ParseMode("teleport"))
}
