// Package gemini serves both capabilities through Google's Gemini API,
// rotating across API keys when one is rate limited.
package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"google.golang.org/genai"
)

// generator performs one GenerateContent call with a single API key.
type generator interface {
	Generate(ctx context.Context, apiKey, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error)
}

// Client rotates through the configured keys. It is safe for concurrent use.
type Client struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	gen        generator
	logger     logger.Logger
}

// NewClient creates a Client for the configured keys and model.
func NewClient(cfg config.GeminiConfig, log logger.Logger) (*Client, error) {
	return newClient(cfg, apiGenerator{}, log)
}

func newClient(cfg config.GeminiConfig, gen generator, log logger.Logger) (*Client, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("providers.gemini.api_keys is empty")
	}

	return &Client{
		apiKeys: cfg.APIKeys,
		model:   cfg.Model,
		gen:     gen,
		logger:  log,
	}, nil
}

type apiGenerator struct{}

func (apiGenerator) Generate(ctx context.Context, apiKey, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", err
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", nil
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}
