package batch

import (
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
	"github.com/nguyentantai21042004/clipdigest/internal/task"
	"github.com/nguyentantai21042004/clipdigest/internal/worker"
)

type implCoordinator struct {
	registry  task.Registry
	providers *provider.Registry
	executor  pipeline.Executor
	pool      worker.Pool
	formats   []string
	logger    logger.Logger
	onOutcome OutcomeFunc
}

// New creates a Coordinator. Items run on pool; formats filter folder
// expansion. onOutcome may be nil.
func New(reg task.Registry, providers *provider.Registry, exec pipeline.Executor, pool worker.Pool, formats []string, log logger.Logger, onOutcome OutcomeFunc) Coordinator {
	return &implCoordinator{
		registry:  reg,
		providers: providers,
		executor:  exec,
		pool:      pool,
		formats:   formats,
		logger:    log,
		onOutcome: onOutcome,
	}
}
