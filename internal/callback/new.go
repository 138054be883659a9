package callback

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
)

type implDispatcher struct {
	cfg    config.CallbackConfig
	client *http.Client
	logger logger.Logger
	now    func() time.Time
}

// New creates a Dispatcher. A nil client uses http.DefaultClient; the
// per-attempt timeout comes from cfg.Timeout.
func New(cfg config.CallbackConfig, client *http.Client, log logger.Logger) Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	return &implDispatcher{
		cfg:    cfg,
		client: client,
		logger: log,
		now:    time.Now,
	}
}
