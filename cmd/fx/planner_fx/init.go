// cmd/fx/planner_fx/module.go
package planner_fx

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"fastplan/pkg/utils"
)

var Module = fx.Provide(
	ProvidePlannerClient)

// PlannerConfig holds configuration for planner clients
type PlannerConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvidePlannerClient creates a planner client based on environment variables
func ProvidePlannerClient(lc fx.Lifecycle) (utils.PlannerClientInterface, error) {
	config := getPlannerConfig()

	log.Printf("Initializing %s planner client with model: %s", config.Provider, config.Model)

	client, err := utils.NewPlannerClient(config.Provider, config.APIKey, config.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create planner client: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

// getPlannerConfig reads configuration from environment variables
func getPlannerConfig() PlannerConfig {
	provider := getEnvWithDefault("PLANNER_PROVIDER", "gemini")

	var apiKey, model string
	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("PLANNER_MODEL", "gpt-4o-mini")
	default:
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("PLANNER_MODEL", "gemini-2.5-flash")
	}

	return PlannerConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

func getEnvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
