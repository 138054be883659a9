package pipeline

import (
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/internal/sink"
)

type implExecutor struct {
	cfg       config.PipelineConfig
	extractor media.Extractor
	sink      sink.Sink
	logger    logger.Logger
	now       func() time.Time
}

// New creates the item pipeline executor
func New(cfg config.PipelineConfig, ext media.Extractor, s sink.Sink, log logger.Logger) Executor {
	return &implExecutor{
		cfg:       cfg,
		extractor: ext,
		sink:      s,
		logger:    log,
		now:       time.Now,
	}
}
