package watcher

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
)

type pendingFile struct {
	timer *time.Timer
}

type implWatcher struct {
	inputDir string
	formats  []string
	settle   time.Duration
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*pendingFile
	wg      sync.WaitGroup
}

// New creates a Watcher on cfg.Paths.Input. A file is handed to handler once
// it has seen no writes for cfg.Watch.SettleDelay.
func New(cfg *config.Config, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(cfg.Paths.Input); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	settle := cfg.Watch.SettleDelay
	if settle <= 0 {
		settle = 500 * time.Millisecond
	}

	return &implWatcher{
		inputDir: cfg.Paths.Input,
		formats:  cfg.Pipeline.SupportedFormats,
		settle:   settle,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		pending:  make(map[string]*pendingFile),
	}, nil
}
