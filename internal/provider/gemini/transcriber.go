package gemini

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/clipdigest/internal/provider"
	"google.golang.org/genai"
)

const transcribePrompt = "Transcribe the speech in this audio verbatim. Return only the transcript text, without timestamps or commentary."

type transcriber struct {
	client *Client
}

// NewTranscriber adapts the client to provider.Transcriber. Audio is sent
// inline with the request.
func NewTranscriber(c *Client) provider.Transcriber {
	return &transcriber{client: c}
}

func (t *transcriber) Transcribe(ctx context.Context, audio provider.Audio) (string, error) {
	data, err := os.ReadFile(audio.Path)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	mime := audio.MIMEType
	if mime == "" {
		mime = "audio/wav"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(transcribePrompt),
			genai.NewPartFromBytes(data, mime),
		}, genai.RoleUser),
	}
	return t.client.generate(ctx, contents, nil)
}
