// Package provider holds the capability contracts for transcription and
// summarization backends and the registry that resolves them by name.
package provider

import "context"

// Capability names what a provider can do.
type Capability string

const (
	CapabilityTranscription Capability = "transcription"
	CapabilitySummarization Capability = "summarization"
)

// Descriptor identifies one registered provider.
type Descriptor struct {
	Capability Capability `json:"capability"`
	Name       string     `json:"name"`
}

// Audio references extracted audio ready for transcription.
type Audio struct {
	Path     string
	MIMEType string
}

// Transcriber converts audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio Audio) (string, error)
}

// Summarizer condenses a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// TranscriberFactory constructs a Transcriber, failing when it cannot be
// initialized (missing credentials, missing model files).
type TranscriberFactory func() (Transcriber, error)

// SummarizerFactory constructs a Summarizer.
type SummarizerFactory func() (Summarizer, error)
