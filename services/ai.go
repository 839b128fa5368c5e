package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrAIBusy means the provider reported a quota or rate limit. Callers should
// tell the user to retry shortly rather than treat it as a generic failure.
var ErrAIBusy = errors.New("AI service is busy, please retry shortly")

// ─── Types ────────────────────────────────────────────────────────────────────

// Activity costs are opaque display strings in a fixed currency (₹), never
// parsed into numbers.
type Activity struct {
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
	Cost        string `json:"cost,omitempty"`
}

type DayPlan struct {
	Day        int        `json:"day,omitempty"`
	Title      string     `json:"title,omitempty"`
	Activities []Activity `json:"activities,omitempty"`
}

// TripPlanResult is the parsed itinerary. When the model does not return
// valid JSON, RawText carries the response verbatim and the other fields
// stay empty.
type TripPlanResult struct {
	Destination     string            `json:"destination,omitempty"`
	From            string            `json:"from,omitempty"`
	Duration        string            `json:"duration,omitempty"`
	Budget          string            `json:"budget,omitempty"`
	Itinerary       []DayPlan         `json:"itinerary,omitempty"`
	Transportation  []string          `json:"transportation,omitempty"`
	BudgetBreakdown map[string]string `json:"budgetBreakdown,omitempty"`
	PackingList     []string          `json:"packingList,omitempty"`
	LocalTips       []string          `json:"localTips,omitempty"`
	MustTryFoods    []string          `json:"mustTryFoods,omitempty"`
	MustVisitPlaces []string          `json:"mustVisitPlaces,omitempty"`
	RawText         string            `json:"rawText,omitempty"`
}

// ─── Client ───────────────────────────────────────────────────────────────────

type AIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

var aiClient *AIClient

func InitAI() {
	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	aiClient = &AIClient{
		apiKey:  os.Getenv("GROQ_API_KEY"),
		model:   model,
		baseURL: "https://api.groq.com/openai/v1",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	if aiClient.apiKey != "" {
		log.Println("✅ AI (Groq) initialized with model:", model)
	} else {
		log.Println("⚠️  GROQ_API_KEY not set — trip planning will be unavailable")
	}
}

func GetAIClient() *AIClient {
	return aiClient
}

// ─── Chat completion ──────────────────────────────────────────────────────────

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

const planSystemPrompt = `You are a travel planning assistant. Respond ONLY with a single JSON object, no prose before or after, using exactly this schema:
{
  "destination": "string",
  "from": "string",
  "duration": "string (e.g. '3 days')",
  "budget": "string (e.g. '₹15,000')",
  "itinerary": [
    {"day": 1, "title": "string", "activities": [
      {"time": "string", "description": "string", "cost": "string (₹, e.g. '₹500')"}
    ]}
  ],
  "transportation": ["string"],
  "budgetBreakdown": {"category": "₹amount"},
  "packingList": ["string"],
  "localTips": ["string"],
  "mustTryFoods": ["string"],
  "mustVisitPlaces": ["string"]
}
All costs are display strings in Indian Rupees with the ₹ symbol.`

// PlanTrip sends the user's free-text request to the model and parses the
// response into a structured plan. The model is contractually asked for JSON
// but not trusted to deliver it — see ParseTripPlan.
func (c *AIClient) PlanTrip(ctx context.Context, prompt string) (*TripPlanResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("groq API key not configured")
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: planSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("AI request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrAIBusy
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI API error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if parsed.Error != nil {
		if strings.Contains(strings.ToLower(parsed.Error.Type), "rate_limit") {
			return nil, ErrAIBusy
		}
		return nil, fmt.Errorf("AI API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty response from AI")
	}

	return ParseTripPlan(parsed.Choices[0].Message.Content), nil
}

// ─── Response parsing ─────────────────────────────────────────────────────────

// ParseTripPlan applies the tolerant parse policy: strict JSON first, then
// the first balanced {...} substring, then raw text passthrough. It never
// fails — prose answers come back under RawText.
func ParseTripPlan(text string) *TripPlanResult {
	text = strings.TrimSpace(text)

	var plan TripPlanResult
	if err := json.Unmarshal([]byte(text), &plan); err == nil {
		return &plan
	}

	if obj := extractJSONObject(text); obj != "" {
		plan = TripPlanResult{}
		if err := json.Unmarshal([]byte(obj), &plan); err == nil {
			return &plan
		}
	}

	return &TripPlanResult{RawText: text}
}

// extractJSONObject returns the first balanced top-level {...} substring,
// tracking string literals so braces inside values don't skew the depth.
func extractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
