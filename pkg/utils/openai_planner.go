package utils

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIPlannerClient is the alternate provider behind the same interface.
type OpenAIPlannerClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIPlannerClient(apiKey, model string) PlannerClientInterface {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIPlannerClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIPlannerClient) GeneratePlanJSON(ctx context.Context, prompt string, searchMode string) (string, error) {
	model := c.model
	if searchMode == "deep" {
		model = openai.GPT4o
	}
	return c.complete(ctx, model, prompt)
}

func (c *OpenAIPlannerClient) SuggestReplacementJSON(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, c.model, prompt)
}

func (c *OpenAIPlannerClient) complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	content := CleanJSONResponse(resp.Choices[0].Message.Content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("response is not valid JSON")
	}
	return content, nil
}

func (c *OpenAIPlannerClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("empty embedding response")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

func (c *OpenAIPlannerClient) Close() error { return nil }
