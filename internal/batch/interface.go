package batch

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
)

// Coordinator drives one task from queued to a terminal status.
type Coordinator interface {
	Run(ctx context.Context, taskID string) (domain.Task, error)
}

// OutcomeFunc observes each item outcome right after it is recorded.
// Exactly one of result and itemErr is non-nil.
type OutcomeFunc func(ctx context.Context, taskID string, result *domain.ItemResult, itemErr *domain.ItemError)
