package client

import (
	"context"
	"fmt"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/service"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/config"
)

// NewGenerator builds the generator selected by cfg.Provider
func NewGenerator(ctx context.Context, cfg *config.LLMConfig) (service.TextGenerator, error) {
	switch cfg.Provider {
	case "", "gemini":
		return NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "bedrock":
		return NewBedrockGenerator(ctx, cfg.Region, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
