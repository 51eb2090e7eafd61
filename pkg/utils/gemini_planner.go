package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"
)

// GeminiPlannerClient implements PlannerClientInterface on Google's Gemini
// models, forcing JSON-only responses so the services can parse directly.
type GeminiPlannerClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlannerClient(apiKey, model string) (PlannerClientInterface, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlannerClient{
		client: client,
		model:  model,
	}, nil
}

// Model tiers per search mode, matching what the web client offers as
// quick/normal/deep searches.
func (c *GeminiPlannerClient) modelForSearchMode(searchMode string) string {
	switch searchMode {
	case "quick":
		return "gemini-2.0-flash"
	case "deep":
		return "gemini-2.5-pro"
	default:
		return c.model
	}
}

func (c *GeminiPlannerClient) GeneratePlanJSON(ctx context.Context, prompt string, searchMode string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	m := c.client.GenerativeModel(c.modelForSearchMode(searchMode))
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.2)
	m.SetTopP(0.5)
	m.SetTopK(20)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	return c.generate(ctxWithTimeout, m, prompt)
}

func (c *GeminiPlannerClient) SuggestReplacementJSON(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(10)
	m.SetMaxOutputTokens(2048)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return c.generate(ctxWithTimeout, m, prompt)
}

func (c *GeminiPlannerClient) generate(ctx context.Context, m *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	content = CleanJSONResponse(content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("response is not valid JSON")
	}
	return content, nil
}

// GetEmbedding generates a vector for destination similarity search.
// Gemini's free tier has no dedicated embedding endpoint, so this falls back
// to a deterministic hash-based projection; good enough for typeahead ranking.
func (c *GeminiPlannerClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return c.textToVector(text), nil
}

func (c *GeminiPlannerClient) textToVector(text string) pgvector.Vector {
	text = strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(text)

	const dimensions = 1536
	vector := make([]float32, dimensions)

	for _, word := range words {
		hash := c.hashWord(word)
		for i := 0; i < dimensions; i++ {
			influence := math.Sin(float64(hash+uint32(i))) * 0.1
			vector[i] += float32(influence)
		}
	}

	magnitude := float32(0)
	for _, val := range vector {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return pgvector.NewVector(vector)
}

func (c *GeminiPlannerClient) hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}

func (c *GeminiPlannerClient) Close() error {
	return c.client.Close()
}
