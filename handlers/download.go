package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"wanderwise/database"
	"wanderwise/services"

	"github.com/gin-gonic/gin"
)

// DownloadPlanHandler serves a stored trip plan as a PDF. The PDF is rendered
// on first download and the bytes kept in Postgres alongside the plan.
func DownloadPlanHandler(c *gin.Context) {
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

	pdfData := stored.PDFData
	if len(pdfData) == 0 {
		var plan services.TripPlanResult
		if err := json.Unmarshal([]byte(stored.PlanJSON), &plan); err != nil {
			plan = services.TripPlanResult{RawText: stored.RawText}
		}

		pdfData, err = services.GeneratePlanPDF(&plan, stored.Prompt, stored.CreatedAt)
		if err != nil {
			log.Printf("❌ PDF generation failed for plan %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
		if err := database.UpdateTripPlanPDF(id, pdfData); err != nil {
			log.Printf("⚠️  Failed to store PDF for plan %s: %v", id, err)
		}
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=wanderwise-trip-plan.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfData)
}
