package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// PlannerClientInterface is the boundary to the generative planning backend.
// Clients return raw JSON; the services own prompt construction and parsing,
// so swapping providers never touches the document model.
type PlannerClientInterface interface {
	// GeneratePlanJSON produces a full itinerary document. The search mode
	// selects the model tier (quick/normal/deep).
	GeneratePlanJSON(ctx context.Context, prompt string, searchMode string) (string, error)

	// SuggestReplacementJSON produces a focused itinerary edit: a replacement
	// for one (day, activity) coordinate, or activities to add to a day.
	SuggestReplacementJSON(ctx context.Context, prompt string) (string, error)

	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)

	Close() error
}

// NewPlannerClient builds a provider-specific client.
func NewPlannerClient(provider, apiKey, model string) (PlannerClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIPlannerClient(apiKey, model), nil
	case "gemini":
		return NewGeminiPlannerClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported planner provider: %s. Use 'openai' or 'gemini'", provider)
	}
}

// CleanJSONResponse strips markdown fences and prose around a JSON payload.
// Gemini with a JSON MIME type rarely needs this; the OpenAI chat path does.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := findMatching(response, objStart, '{', '}'); end != -1 {
			response = response[objStart : end+1]
		}
	} else if arrStart != -1 {
		if end := findMatching(response, arrStart, '[', ']'); end != -1 {
			response = response[arrStart : end+1]
		}
	}

	return strings.TrimSpace(response)
}

func findMatching(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
