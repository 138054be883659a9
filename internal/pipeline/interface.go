package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
)

// Request carries one item and the providers resolved for its task.
type Request struct {
	Item            string
	Transcriber     provider.Transcriber
	TranscriberName string
	Summarizer      provider.Summarizer
	SummarizerName  string
}

// Executor runs a single item through every stage. A failure is always a
// *StageError and stops the remaining stages.
type Executor interface {
	Run(ctx context.Context, req Request) (domain.ItemResult, error)
}
