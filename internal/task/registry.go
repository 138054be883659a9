package task

import (
	"fmt"
	"sort"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
)

// Create allocates a queued task and returns a snapshot of it
func (r *implRegistry) Create(in CreateInput) domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for _, taken := r.tasks[id]; taken; _, taken = r.tasks[id] {
		id = r.newID()
	}

	t := domain.Task{
		ID:          id,
		Kind:        in.Kind,
		Status:      domain.TaskStatusQueued,
		Source:      in.Source,
		Items:       append([]string{}, in.Items...),
		Results:     []domain.ItemResult{},
		Errors:      []domain.ItemError{},
		CallbackURL: in.CallbackURL,
		Providers:   in.Providers,
		CreatedAt:   r.now().UTC(),
	}
	r.tasks[id] = &entry{task: t}
	return t.Clone()
}

// Get returns a consistent snapshot of one task
func (r *implRegistry) Get(id string) (domain.Task, error) {
	e, err := r.lookup(id)
	if err != nil {
		return domain.Task{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.task.Clone(), nil
}

// List returns summaries of every task, newest first
func (r *implRegistry) List() []domain.TaskSummary {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.tasks))
	for _, e := range r.tasks {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]domain.TaskSummary, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.task.Summary())
		e.mu.Unlock()
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Transition moves a task forward along queued -> processing -> terminal
func (r *implRegistry) Transition(id string, status domain.TaskStatus) error {
	return r.mutate(id, func(t *domain.Task) error {
		if !isValidTransition(t.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, status)
		}
		if status == domain.TaskStatusCompleted && len(t.Results)+len(t.Errors) != len(t.Items) {
			return fmt.Errorf("%w: %d of %d", ErrIncomplete, len(t.Results)+len(t.Errors), len(t.Items))
		}

		now := r.now().UTC()
		switch status {
		case domain.TaskStatusProcessing:
			t.StartedAt = &now
		case domain.TaskStatusCompleted, domain.TaskStatusFailed:
			t.CompletedAt = &now
		}
		t.Status = status
		return nil
	})
}

// SetItems replaces the item list while no outcome has been recorded yet
func (r *implRegistry) SetItems(id string, items []string) error {
	return r.mutate(id, func(t *domain.Task) error {
		if t.Status.IsTerminal() {
			return ErrTerminal
		}
		if len(t.Results)+len(t.Errors) > 0 {
			return ErrItemsLocked
		}
		t.Items = append([]string{}, items...)
		return nil
	})
}

// AppendResult records one successful item
func (r *implRegistry) AppendResult(id string, result domain.ItemResult) error {
	return r.mutate(id, func(t *domain.Task) error {
		if err := canRecordOutcome(t); err != nil {
			return err
		}
		t.Results = append(t.Results, result)
		return nil
	})
}

// AppendError records one failed item
func (r *implRegistry) AppendError(id string, itemErr domain.ItemError) error {
	return r.mutate(id, func(t *domain.Task) error {
		if err := canRecordOutcome(t); err != nil {
			return err
		}
		t.Errors = append(t.Errors, itemErr)
		return nil
	})
}

// Fail terminates a processing task with a setup error. Items without an
// outcome receive an error carrying the same kind.
func (r *implRegistry) Fail(id string, kind domain.ErrorKind, message string) error {
	return r.mutate(id, func(t *domain.Task) error {
		if !isValidTransition(t.Status, domain.TaskStatusFailed) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, domain.TaskStatusFailed)
		}

		settled := make(map[string]int, len(t.Results)+len(t.Errors))
		for _, res := range t.Results {
			settled[res.Item]++
		}
		for _, e := range t.Errors {
			settled[e.Item]++
		}
		for _, item := range t.Items {
			if settled[item] > 0 {
				settled[item]--
				continue
			}
			t.Errors = append(t.Errors, domain.ItemError{
				Item:    item,
				Stage:   domain.StageSetup,
				Kind:    kind,
				Message: message,
			})
		}

		now := r.now().UTC()
		t.Failure = &domain.TaskFailure{Kind: kind, Message: message}
		t.Status = domain.TaskStatusFailed
		t.CompletedAt = &now
		return nil
	})
}

// RequestCancel flags the task so items that have not started are skipped
func (r *implRegistry) RequestCancel(id string) error {
	return r.mutate(id, func(t *domain.Task) error {
		if t.Status.IsTerminal() {
			return ErrTerminal
		}
		t.CancelRequested = true
		return nil
	})
}

// Clear drops every task; called when the process stops
func (r *implRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = make(map[string]*entry)
}

func (r *implRegistry) lookup(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

func (r *implRegistry) mutate(id string, fn func(t *domain.Task) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(&e.task)
}

func canRecordOutcome(t *domain.Task) error {
	if t.Status != domain.TaskStatusProcessing {
		if t.Status.IsTerminal() {
			return ErrTerminal
		}
		return fmt.Errorf("%w: outcome recorded while %s", ErrInvalidTransition, t.Status)
	}
	if len(t.Results)+len(t.Errors) >= len(t.Items) {
		return ErrTooManyOutcomes
	}
	return nil
}

// isValidTransition enforces the forward-only task state machine
func isValidTransition(from, to domain.TaskStatus) bool {
	switch from {
	case domain.TaskStatusQueued:
		return to == domain.TaskStatusProcessing
	case domain.TaskStatusProcessing:
		return to == domain.TaskStatusCompleted || to == domain.TaskStatusFailed
	default:
		return false
	}
}
