package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"wanderwise/database"
	"wanderwise/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlanTripRequest struct {
	Prompt string `json:"prompt"`
}

type PlanTripResponse struct {
	Success   bool                     `json:"success"`
	Data      *services.TripPlanResult `json:"data"`
	PlanID    string                   `json:"plan_id,omitempty"`
	Timestamp string                   `json:"timestamp"`
}

// PlanTripHandler asks the AI for a structured itinerary. A provider quota
// error maps to 429 so the client can tell "retry shortly" from a real
// failure; successful plans are persisted and get a download link.
func PlanTripHandler(c *gin.Context) {
	var req PlanTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A non-empty 'prompt' is required"})
		return
	}

	plan, err := services.GetAIClient().PlanTrip(c.Request.Context(), prompt)
	if err != nil {
		if errors.Is(err, services.ErrAIBusy) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": services.ErrAIBusy.Error()})
			return
		}
		log.Printf("❌ Trip planning failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Trip planning is temporarily unavailable"})
		return
	}

	// Persistence is best effort: a storage hiccup must not discard a plan
	// the model already produced.
	planID := uuid.New().String()
	planJSON, _ := json.Marshal(plan)
	if err := database.SaveTripPlan(&database.TripPlan{
		ID:       planID,
		Prompt:   prompt,
		PlanJSON: string(planJSON),
		RawText:  plan.RawText,
	}); err != nil {
		log.Printf("⚠️  Failed to save trip plan: %v", err)
		planID = ""
	}

	c.JSON(http.StatusOK, PlanTripResponse{
		Success:   true,
		Data:      plan,
		PlanID:    planID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// GetPlanHandler returns a previously stored plan.
func GetPlanHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing plan ID"})
		return
	}

	stored, err := database.GetTripPlan(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	var plan services.TripPlanResult
	if err := json.Unmarshal([]byte(stored.PlanJSON), &plan); err != nil {
		// Old or corrupt record: fall back to whatever raw text we kept.
		plan = services.TripPlanResult{RawText: stored.RawText}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       plan,
		"plan_id":    stored.ID,
		"created_at": stored.CreatedAt,
	})
}
