package ai_fx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"
	"tourway/internal/services"
	"tourway/pkg/utils"
)

var Module = fx.Provide(
	ProvideContentGenerator,
	ProvideImageSearchService)

// GeneratorConfig holds configuration for the completion client
type GeneratorConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvideContentGenerator creates a completion client based on environment variables
func ProvideContentGenerator() (utils.ContentGeneratorInterface, error) {
	config := getGeneratorConfig()

	log.Printf("Initializing %s content generator with model: %s", config.Provider, config.Model)

	generator, err := utils.NewContentGenerator(config.Provider, config.APIKey, config.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create content generator: %w", err)
	}
	return generator, nil
}

func ProvideImageSearchService() services.ImageSearchServiceInterface {
	return services.NewImageSearchClient()
}

// getGeneratorConfig reads configuration from environment variables
func getGeneratorConfig() GeneratorConfig {
	provider := getEnvWithDefault("AI_PROVIDER", "gemini")

	var apiKey, model string

	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-2.0-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	return GeneratorConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
