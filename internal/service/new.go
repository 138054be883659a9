package service

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/clipdigest/internal/batch"
	"github.com/nguyentantai21042004/clipdigest/internal/callback"
	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
	"github.com/nguyentantai21042004/clipdigest/internal/task"
	"github.com/nguyentantai21042004/clipdigest/internal/worker"
)

// Deps are the collaborators the service wires together
type Deps struct {
	Registry  task.Registry
	Providers *provider.Registry
	Executor  pipeline.Executor
	Pool      worker.Pool
	Callbacks callback.Dispatcher
	Logger    logger.Logger
}

type implService struct {
	cfg         *config.Config
	registry    task.Registry
	providers   *provider.Registry
	pool        worker.Pool
	callbacks   callback.Dispatcher
	coordinator batch.Coordinator
	logger      logger.Logger

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
}

// New wires the service and starts the worker pool
func New(cfg *config.Config, deps Deps) Service {
	baseCtx, cancel := context.WithCancel(context.Background())

	s := &implService{
		cfg:       cfg,
		registry:  deps.Registry,
		providers: deps.Providers,
		pool:      deps.Pool,
		callbacks: deps.Callbacks,
		logger:    deps.Logger,
		baseCtx:   baseCtx,
		cancel:    cancel,
	}

	var onOutcome batch.OutcomeFunc
	if cfg.Callback.PerItem {
		onOutcome = s.notifyItem
	}
	s.coordinator = batch.New(deps.Registry, deps.Providers, deps.Executor, deps.Pool, cfg.Pipeline.SupportedFormats, deps.Logger, onOutcome)

	s.pool.Start()
	return s
}
