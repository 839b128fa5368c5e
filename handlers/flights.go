package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"wanderwise/services"

	"github.com/gin-gonic/gin"
)

type FlightsRequest struct {
	From string `json:"from" form:"from"`
	To   string `json:"to" form:"to"`
}

type FlightsResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Flights []services.Flight `json:"flights"`
	Message string            `json:"message,omitempty"`
}

// FlightsHandler looks up scheduled flights between two airports. Accepts
// IATA codes or known city names, via query params (GET) or JSON body (POST).
func FlightsHandler(c *gin.Context) {
	var req FlightsRequest
	if c.Request.Method == http.MethodGet {
		req.From = c.Query("from")
		req.To = c.Query("to")
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if strings.TrimSpace(req.From) == "" || strings.TrimSpace(req.To) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both 'from' and 'to' are required"})
		return
	}

	depIATA := services.ResolveIATA(req.From)
	arrIATA := services.ResolveIATA(req.To)
	if depIATA == "" || arrIATA == "" {
		c.JSON(http.StatusNotFound, FlightsResponse{
			Success: false,
			Flights: []services.Flight{},
			Message: "Could not resolve an airport for the given cities. Use IATA codes like COK or BLR.",
		})
		return
	}

	flights, err := services.GetFlightsClient().SearchFlights(c.Request.Context(), depIATA, arrIATA)
	if err != nil {
		log.Printf("❌ Flight search failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Flight data service is unavailable"})
		return
	}

	if len(flights) == 0 {
		c.JSON(http.StatusNotFound, FlightsResponse{
			Success: false,
			Flights: []services.Flight{},
			Message: fmt.Sprintf("No flights found between %s and %s", depIATA, arrIATA),
		})
		return
	}

	c.JSON(http.StatusOK, FlightsResponse{
		Success: true,
		Count:   len(flights),
		Flights: flights,
	})
}
