package worker

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
)

type queued struct {
	ctx context.Context
	job Job
}

type implPool struct {
	numWorkers int
	jobs       chan queued
	logger     logger.Logger

	wg      sync.WaitGroup
	mu      sync.RWMutex
	started bool
	closed  bool
}

// New creates a Pool with numWorkers workers and a queue of queueSize jobs
func New(numWorkers, queueSize int, log logger.Logger) Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	return &implPool{
		numWorkers: numWorkers,
		jobs:       make(chan queued, queueSize),
		logger:     log,
	}
}
