package media

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
)

// Extractor probes media files and pulls out transcription-ready audio
type Extractor interface {
	Probe(ctx context.Context, path string) (domain.MediaInfo, error)
	ExtractAudio(ctx context.Context, path string) (*Extraction, error)
}

// Extraction is audio written into a private temp directory. Call Cleanup
// once the audio is no longer needed.
type Extraction struct {
	Audio provider.Audio
	dir   string
}
