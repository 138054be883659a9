package callback

import (
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
)

const (
	EventTask = "task"
	EventItem = "item"
)

// Payload is the JSON body posted to a callback URL.
type Payload struct {
	Event       string              `json:"event"`
	TaskID      string              `json:"task_id"`
	Status      domain.TaskStatus   `json:"status,omitempty"`
	Kind        domain.TaskKind     `json:"kind,omitempty"`
	Results     []domain.ItemResult `json:"results,omitempty"`
	Errors      []domain.ItemError  `json:"errors,omitempty"`
	Failure     *domain.TaskFailure `json:"failure,omitempty"`
	Result      *domain.ItemResult  `json:"result,omitempty"`
	Error       *domain.ItemError   `json:"error,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	Timestamp   time.Time           `json:"timestamp"`
}

func taskPayload(t domain.Task, now time.Time) Payload {
	return Payload{
		Event:       EventTask,
		TaskID:      t.ID,
		Status:      t.Status,
		Kind:        t.Kind,
		Results:     t.Results,
		Errors:      t.Errors,
		Failure:     t.Failure,
		CompletedAt: t.CompletedAt,
		Timestamp:   now.UTC(),
	}
}

func itemPayload(taskID string, result *domain.ItemResult, itemErr *domain.ItemError, now time.Time) Payload {
	return Payload{
		Event:     EventItem,
		TaskID:    taskID,
		Result:    result,
		Error:     itemErr,
		Timestamp: now.UTC(),
	}
}
