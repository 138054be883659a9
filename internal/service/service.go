package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
	"github.com/nguyentantai21042004/clipdigest/internal/task"
)

// Submit creates the task and hands it to a detached goroutine
func (s *implService) Submit(ctx context.Context, req Request) (string, error) {
	in, err := s.buildInput(req)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", ErrClosed
	}

	t := s.registry.Create(in)
	s.logger.Info(ctx, "Task %s queued: kind=%s items=%d source=%q", t.ID, t.Kind, len(t.Items), t.Source)

	s.wg.Add(1)
	go s.run(logger.WithTask(s.baseCtx, t.ID), t.ID)

	return t.ID, nil
}

func (s *implService) buildInput(req Request) (task.CreateInput, error) {
	folder := strings.TrimSpace(req.Folder)
	items := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	if folder == "" && len(items) == 0 {
		return task.CreateInput{}, fmt.Errorf("%w: items or folder is required", ErrInvalidRequest)
	}
	if folder != "" && len(items) > 0 {
		return task.CreateInput{}, fmt.Errorf("%w: items and folder are mutually exclusive", ErrInvalidRequest)
	}

	kind := domain.TaskKindBatch
	if folder == "" && len(items) == 1 {
		kind = domain.TaskKindSingle
	}

	names := domain.ProviderNames{
		Transcription: strings.TrimSpace(req.Transcription),
		Summarization: strings.TrimSpace(req.Summarization),
	}
	if names.Transcription == "" {
		names.Transcription = s.cfg.Pipeline.Transcription
	}
	if names.Summarization == "" {
		names.Summarization = s.cfg.Pipeline.Summarization
	}

	return task.CreateInput{
		Kind:        kind,
		Items:       items,
		Source:      folder,
		CallbackURL: strings.TrimSpace(req.CallbackURL),
		Providers:   names,
	}, nil
}

// run drives the task to a terminal status and fires the callback once
func (s *implService) run(ctx context.Context, taskID string) {
	defer s.wg.Done()

	final, err := s.coordinator.Run(ctx, taskID)
	if err != nil {
		s.logger.Error(ctx, "Task run failed: %v", err)
		return
	}

	// shutdown cancels ctx; a settled task still gets its callback
	if err := s.callbacks.Deliver(context.WithoutCancel(ctx), final); err != nil {
		s.logger.Warn(ctx, "Callback not delivered, task state unchanged: %v", err)
	}
}

// notifyItem forwards one item outcome to the task's callback URL
func (s *implService) notifyItem(ctx context.Context, taskID string, result *domain.ItemResult, itemErr *domain.ItemError) {
	t, err := s.registry.Get(taskID)
	if err != nil || t.CallbackURL == "" {
		return
	}
	if err := s.callbacks.DeliverItem(ctx, taskID, t.CallbackURL, result, itemErr); err != nil {
		s.logger.Warn(ctx, "Item callback not delivered: %v", err)
	}
}

func (s *implService) Status(id string) (domain.Task, error) {
	return s.registry.Get(id)
}

func (s *implService) ListTasks() []domain.TaskSummary {
	return s.registry.List()
}

// Cancel skips the task's items that have not started yet
func (s *implService) Cancel(id string) error {
	if err := s.registry.RequestCancel(id); err != nil {
		return err
	}
	s.logger.Info(logger.WithTask(context.Background(), id), "Cancellation requested")
	return nil
}

func (s *implService) Providers() []provider.Descriptor {
	return s.providers.Descriptors()
}

// Close stops intake, waits for running tasks, then stops the pool and drops
// all task state. Items that have not started when Close begins are
// cancelled; running items finish.
func (s *implService) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	// intake closes and pending items cancel together
	s.closed = true
	s.cancel()
	s.mu.Unlock()

	s.logger.Info(ctx, "Shutting down, waiting for running tasks")

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		s.pool.Stop()
		close(done)
	}()

	select {
	case <-done:
		s.registry.Clear()
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown: %w", ctx.Err())
	}
}
