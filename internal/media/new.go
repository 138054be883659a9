package media

import (
	"os"

	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

type implExtractor struct {
	cfg      config.FFmpegConfig
	tempRoot string
	executor executor.Executor
	logger   logger.Logger
}

// New creates an Extractor that shells out to ffprobe and ffmpeg.
// Temp audio lives under tempRoot.
func New(cfg config.FFmpegConfig, tempRoot string, exec executor.Executor, log logger.Logger) Extractor {
	return &implExtractor{
		cfg:      cfg,
		tempRoot: tempRoot,
		executor: exec,
		logger:   log,
	}
}

// Cleanup removes the extraction's temp directory
func (e *Extraction) Cleanup() error {
	if e == nil || e.dir == "" {
		return nil
	}
	if err := os.RemoveAll(e.dir); err != nil {
		return err
	}
	e.dir = ""
	return nil
}
