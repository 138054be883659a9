package gemini

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/provider"
	"google.golang.org/genai"
)

type summarizer struct {
	client *Client
}

// NewSummarizer adapts the client to provider.Summarizer.
func NewSummarizer(c *Client) provider.Summarizer {
	return &summarizer{client: c}
}

func (s *summarizer) Summarize(ctx context.Context, text string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(provider.SystemPrompt(), genai.RoleUser),
	}
	return s.client.generate(ctx, genai.Text(provider.SummaryPrompt(text)), cfg)
}
