package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
)

// setupError fails the whole task before any item runs
type setupError struct {
	kind domain.ErrorKind
	err  error
}

// Run resolves items and providers, fans items out to the pool and settles
// the task. Item failures never fail a batch.
func (c *implCoordinator) Run(ctx context.Context, taskID string) (domain.Task, error) {
	t, err := c.registry.Get(taskID)
	if err != nil {
		return domain.Task{}, err
	}

	if err := c.registry.Transition(taskID, domain.TaskStatusProcessing); err != nil {
		return domain.Task{}, fmt.Errorf("start task: %w", err)
	}

	req, items, se := c.prepare(ctx, t)
	if se != nil {
		c.logger.Error(ctx, "Task setup failed (%s): %v", se.kind, se.err)
		if err := c.registry.Fail(taskID, se.kind, se.err.Error()); err != nil {
			return domain.Task{}, fmt.Errorf("fail task: %w", err)
		}
		return c.registry.Get(taskID)
	}

	c.logger.Info(ctx, "Processing %d item(s) with %s/%s", len(items), req.TranscriberName, req.SummarizerName)
	c.dispatch(ctx, taskID, req, items)

	final, err := c.registry.Get(taskID)
	if err != nil {
		return domain.Task{}, err
	}

	status := domain.TaskStatusCompleted
	if final.Kind == domain.TaskKindSingle && len(final.Results) == 0 {
		status = domain.TaskStatusFailed
	}
	if err := c.registry.Transition(taskID, status); err != nil {
		return domain.Task{}, fmt.Errorf("finish task: %w", err)
	}

	final, err = c.registry.Get(taskID)
	if err != nil {
		return domain.Task{}, err
	}
	c.logger.Info(ctx, "Task %s: %d succeeded, %d failed", final.Status, len(final.Results), len(final.Errors))
	return final, nil
}

// prepare expands the source folder and resolves both providers
func (c *implCoordinator) prepare(ctx context.Context, t domain.Task) (pipeline.Request, []string, *setupError) {
	items := t.Items
	if t.Source != "" {
		expanded, err := ExpandFolder(t.Source, c.formats)
		if err != nil {
			return pipeline.Request{}, nil, &setupError{kind: domain.ErrorKindInvalidInput, err: fmt.Errorf("read folder %s: %w", t.Source, err)}
		}
		if err := c.registry.SetItems(t.ID, expanded); err != nil {
			return pipeline.Request{}, nil, &setupError{kind: domain.ErrorKindInvalidInput, err: err}
		}
		items = expanded
		c.logger.Info(ctx, "Found %d supported file(s) in %s", len(items), t.Source)
	}

	if len(items) == 0 {
		return pipeline.Request{}, nil, &setupError{kind: domain.ErrorKindEmptyBatch, err: errors.New("no items to process")}
	}

	transcriber, err := c.providers.ResolveTranscriber(t.Providers.Transcription)
	if err != nil {
		return pipeline.Request{}, nil, &setupError{kind: providerErrorKind(err), err: err}
	}
	summarizer, err := c.providers.ResolveSummarizer(t.Providers.Summarization)
	if err != nil {
		return pipeline.Request{}, nil, &setupError{kind: providerErrorKind(err), err: err}
	}

	return pipeline.Request{
		Transcriber:     transcriber,
		TranscriberName: t.Providers.Transcription,
		Summarizer:      summarizer,
		SummarizerName:  t.Providers.Summarization,
	}, items, nil
}

// dispatch runs every item on the pool and waits for all outcomes. Once ctx
// is done, items that have not started are cancelled; started ones finish.
func (c *implCoordinator) dispatch(ctx context.Context, taskID string, base pipeline.Request, items []string) {
	itemCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for _, item := range items {
		req := base
		req.Item = item

		wg.Add(1)
		err := c.pool.Submit(ctx, func(context.Context) {
			defer wg.Done()
			if ctx.Err() != nil {
				c.recordError(itemCtx, taskID, cancelledItem(item, "shutting down before item started"))
				return
			}
			c.runItem(itemCtx, taskID, req)
		})
		if err != nil {
			wg.Done()
			c.recordError(itemCtx, taskID, cancelledItem(item, fmt.Sprintf("not scheduled: %v", err)))
		}
	}
	wg.Wait()
}

func (c *implCoordinator) runItem(ctx context.Context, taskID string, req pipeline.Request) {
	if c.cancelRequested(taskID) {
		c.recordError(ctx, taskID, cancelledItem(req.Item, "task cancelled before item started"))
		return
	}

	result, err := c.executor.Run(ctx, req)
	if err != nil {
		c.recordError(ctx, taskID, pipeline.ToItemError(req.Item, err))
		return
	}

	if err := c.registry.AppendResult(taskID, result); err != nil {
		c.logger.Error(ctx, "Failed to record result for %s: %v", req.Item, err)
		return
	}
	if c.onOutcome != nil {
		c.onOutcome(ctx, taskID, &result, nil)
	}
}

func (c *implCoordinator) recordError(ctx context.Context, taskID string, itemErr domain.ItemError) {
	c.logger.Warn(ctx, "Item failed at %s (%s): %s: %s", itemErr.Stage, itemErr.Kind, itemErr.Item, itemErr.Message)

	if err := c.registry.AppendError(taskID, itemErr); err != nil {
		c.logger.Error(ctx, "Failed to record error for %s: %v", itemErr.Item, err)
		return
	}
	if c.onOutcome != nil {
		c.onOutcome(ctx, taskID, nil, &itemErr)
	}
}

func (c *implCoordinator) cancelRequested(taskID string) bool {
	t, err := c.registry.Get(taskID)
	return err == nil && t.CancelRequested
}

func cancelledItem(item, message string) domain.ItemError {
	return domain.ItemError{
		Item:    item,
		Stage:   domain.StageSetup,
		Kind:    domain.ErrorKindCancelled,
		Message: message,
	}
}

func providerErrorKind(err error) domain.ErrorKind {
	if provider.IsInitError(err) {
		return domain.ErrorKindProviderInit
	}
	return domain.ErrorKindUnknownProvider
}
