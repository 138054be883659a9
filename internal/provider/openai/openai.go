// Package openai provides OpenAI transcription (Whisper API) and chat
// summarization.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
	openai "github.com/sashabaranov/go-openai"
)

const (
	summaryMaxTokens   = 1000
	summaryTemperature = 0.3
)

// Client talks to the OpenAI API or any compatible base URL.
type Client struct {
	api                *openai.Client
	transcriptionModel string
	model              string
}

// NewClient builds a Client from config. The API key is required.
func NewClient(cfg config.OpenAIConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("providers.openai.api_key is required")
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:                openai.NewClientWithConfig(apiCfg),
		transcriptionModel: cfg.TranscriptionModel,
		model:              cfg.Model,
	}, nil
}

type transcriber struct{ c *Client }

type summarizer struct{ c *Client }

// NewTranscriber adapts c to provider.Transcriber.
func NewTranscriber(c *Client) provider.Transcriber { return &transcriber{c: c} }

// NewSummarizer adapts c to provider.Summarizer.
func NewSummarizer(c *Client) provider.Summarizer { return &summarizer{c: c} }

func (t *transcriber) Transcribe(ctx context.Context, audio provider.Audio) (string, error) {
	resp, err := t.c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.c.transcriptionModel,
		FilePath: audio.Path,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func (s *summarizer) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := s.c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: provider.SystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: provider.SummaryPrompt(text)},
		},
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
