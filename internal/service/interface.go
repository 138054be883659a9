package service

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
)

// Request is one submission. Exactly one of Items and Folder is set.
// Empty provider names fall back to the configured defaults.
type Request struct {
	Items         []string `json:"items,omitempty"`
	Folder        string   `json:"folder,omitempty"`
	CallbackURL   string   `json:"callback_url,omitempty"`
	Transcription string   `json:"transcription_provider,omitempty"`
	Summarization string   `json:"summarization_provider,omitempty"`
}

// Service is the surface exposed to HTTP handlers and the folder watcher
type Service interface {
	// Submit registers the work and returns its id without waiting for it
	Submit(ctx context.Context, req Request) (string, error)
	Status(id string) (domain.Task, error)
	ListTasks() []domain.TaskSummary
	Cancel(id string) error
	Providers() []provider.Descriptor
	Close(ctx context.Context) error
}
