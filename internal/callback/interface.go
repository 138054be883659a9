package callback

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
)

// Dispatcher notifies callback URLs about task progress. Delivery failures
// are reported to the caller and never touch task state.
type Dispatcher interface {
	// Deliver posts the terminal task snapshot
	Deliver(ctx context.Context, t domain.Task) error
	// DeliverItem posts one item outcome while the task is still running
	DeliverItem(ctx context.Context, taskID, url string, result *domain.ItemResult, itemErr *domain.ItemError) error
}
