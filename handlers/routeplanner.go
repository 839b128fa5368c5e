package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"wanderwise/services"

	"github.com/gin-gonic/gin"
)

type RoutePlannerRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Mode string `json:"mode"`
}

// RoutePlannerHandler geocodes both endpoints and returns the road route
// between them for map rendering. 404 when a city cannot be geocoded,
// 502 when the routing provider fails after geocoding succeeded.
func RoutePlannerHandler(c *gin.Context) {
	var req RoutePlannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if strings.TrimSpace(req.From) == "" || strings.TrimSpace(req.To) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both 'from' and 'to' are required"})
		return
	}

	plan, err := services.GetORSClient().PlanRoute(
		c.Request.Context(), req.From, req.To, services.ParseMode(req.Mode))
	if err != nil {
		if errors.Is(err, services.ErrCityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("❌ Route planning failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Routing service is unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    plan,
	})
}
