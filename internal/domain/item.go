package domain

import "time"

// MediaInfo describes the probed input file.
type MediaInfo struct {
	Format          string  `json:"format"`
	DurationSeconds float64 `json:"duration_seconds"`
	SizeMB          float64 `json:"size_mb"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	FPS             float64 `json:"fps"`
	HasAudio        bool    `json:"has_audio"`
}

// ItemResult is the immutable outcome of one successfully processed item.
type ItemResult struct {
	Item                  string    `json:"item"`
	Media                 MediaInfo `json:"media"`
	Transcript            string    `json:"transcript"`
	Summary               string    `json:"summary"`
	TranscriptionProvider string    `json:"transcription_provider"`
	SummarizationProvider string    `json:"summarization_provider"`
	OutputPath            string    `json:"output_path,omitempty"`
	CompletedAt           time.Time `json:"completed_at"`
}

// ItemError records why one item produced no result.
type ItemError struct {
	Item    string    `json:"item"`
	Stage   Stage     `json:"stage"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}
