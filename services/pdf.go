package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// asciiCurrency swaps the rupee sign for an ASCII form the PDF core fonts
// can encode; cp1252 has no ₹ glyph.
func asciiCurrency(s string) string {
	return strings.ReplaceAll(s, "₹", "Rs.")
}

// GeneratePlanPDF renders a stored trip plan as a PDF and returns raw bytes
// (no filesystem involved — the bytes live in Postgres).
func GeneratePlanPDF(plan *TripPlanResult, prompt string, createdAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	txt := func(s string) string { return tr(asciiCurrency(s)) }

	// ── Header bar ───────────────────────────────────────────
	pdf.SetFillColor(16, 42, 67)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Wanderwise", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(240, 177, 90)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "AI-Generated Trip Plan", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(16, 42, 67)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+txt(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, txt(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, txt(value), "", 1, "L", false, 0, "")
	}

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sectionHeader(title)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		for _, item := range items {
			pdf.MultiCell(170, 5, txt("- "+item), "", "L", false)
		}
		pdf.Ln(3)
	}

	// ── Overview ─────────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Request", prompt)
	row("Destination", plan.Destination)
	row("From", plan.From)
	row("Duration", plan.Duration)
	row("Budget", plan.Budget)
	row("Generated", createdAt.Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(3)

	if plan.RawText != "" {
		// The model answered in prose: print it verbatim in one section.
		sectionHeader("Plan")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, txt(plan.RawText), "", "L", false)
	} else {
		// ── Day-by-day itinerary ─────────────────────────────
		for _, day := range plan.Itinerary {
			title := fmt.Sprintf("Day %d", day.Day)
			if day.Title != "" {
				title += ": " + day.Title
			}
			sectionHeader(title)
			for _, a := range day.Activities {
				line := a.Description
				if a.Time != "" {
					line = a.Time + "  " + line
				}
				if a.Cost != "" {
					line += " (" + a.Cost + ")"
				}
				pdf.SetFont("Helvetica", "", 10)
				pdf.SetTextColor(40, 40, 40)
				pdf.MultiCell(170, 5, txt("- "+line), "", "L", false)
			}
			pdf.Ln(3)
		}

		// ── Budget breakdown ─────────────────────────────────
		if len(plan.BudgetBreakdown) > 0 {
			sectionHeader("Budget Breakdown")
			for category, amount := range plan.BudgetBreakdown {
				row(category, amount)
			}
			pdf.Ln(3)
		}

		list("Transportation", plan.Transportation)
		list("Packing List", plan.PackingList)
		list("Local Tips", plan.LocalTips)
		list("Must-Try Foods", plan.MustTryFoods)
		list("Must-Visit Places", plan.MustVisitPlaces)
	}

	// ── Footer ───────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by Wanderwise · AI-generated content, verify details before travelling",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}
