package sink

import (
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
)

type implSink struct {
	outputDir string
	docx      bool
	logger    logger.Logger
	now       func() time.Time
}

// New creates a Sink writing into outputDir. With docx set, a Word rendition
// is written next to every text artifact.
func New(outputDir string, docx bool, log logger.Logger) Sink {
	return &implSink{
		outputDir: outputDir,
		docx:      docx,
		logger:    log,
		now:       time.Now,
	}
}
