package handlers

import (
	"net/http"
	"strings"

	"wanderwise/services"

	"github.com/gin-gonic/gin"
)

type SearchRoutesRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Mode string `json:"mode"`
	Date string `json:"date"`
}

type SearchRoutesResponse struct {
	Success bool                  `json:"success"`
	Count   int                   `json:"count"`
	Routes  []services.RouteOffer `json:"routes"`
	Message string                `json:"message,omitempty"`
}

// SearchRoutesHandler runs the fallback search chain: live directions first,
// then the curated catalog and the persisted route store.
func SearchRoutesHandler(c *gin.Context) {
	var req SearchRoutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if strings.TrimSpace(req.From) == "" || strings.TrimSpace(req.To) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both 'from' and 'to' are required"})
		return
	}

	result := services.GetOrchestrator().SearchRoutes(c.Request.Context(), services.RouteQuery{
		Origin:      req.From,
		Destination: req.To,
		Mode:        services.ParseMode(req.Mode),
		Date:        req.Date,
	})

	if !result.Success {
		c.JSON(http.StatusNotFound, SearchRoutesResponse{
			Success: false,
			Count:   0,
			Routes:  []services.RouteOffer{},
			Message: result.Message,
		})
		return
	}

	c.JSON(http.StatusOK, SearchRoutesResponse{
		Success: true,
		Count:   len(result.Routes),
		Routes:  result.Routes,
	})
}
