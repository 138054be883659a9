// Package ark summarizes transcripts through Volcengine Ark chat models.
package ark

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"
	"github.com/volcengine/volcengine-go-sdk/volcengine"
)

type implSummarizer struct {
	client *arkruntime.Client
	model  string
}

// New creates an Ark Summarizer. Both api key and model (endpoint id) are required.
func New(cfg config.ArkConfig) (provider.Summarizer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("providers.ark.api_key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("providers.ark.model is required")
	}

	var opts []arkruntime.ConfigOption
	if cfg.BaseURL != "" {
		opts = append(opts, arkruntime.WithBaseUrl(cfg.BaseURL))
	}

	return &implSummarizer{
		client: arkruntime.NewClientWithApiKey(cfg.APIKey, opts...),
		model:  cfg.Model,
	}, nil
}

func (s *implSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	req := model.CreateChatCompletionRequest{
		Model: s.model,
		Messages: []*model.ChatCompletionMessage{
			{
				Role:    model.ChatMessageRoleSystem,
				Content: &model.ChatCompletionMessageContent{StringValue: volcengine.String(provider.SystemPrompt())},
			},
			{
				Role:    model.ChatMessageRoleUser,
				Content: &model.ChatCompletionMessageContent{StringValue: volcengine.String(provider.SummaryPrompt(text))},
			},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("ark chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil || resp.Choices[0].Message.Content.StringValue == nil {
		return "", fmt.Errorf("ark returned no content")
	}

	return strings.TrimSpace(*resp.Choices[0].Message.Content.StringValue), nil
}
