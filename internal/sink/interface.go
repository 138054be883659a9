package sink

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
)

// Sink persists a finished item and returns the primary artifact path
type Sink interface {
	Write(ctx context.Context, result domain.ItemResult) (string, error)
}
