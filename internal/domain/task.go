package domain

import "time"

// TaskStatus tracks the lifecycle of one submitted task.
type TaskStatus string

const (
	TaskStatusQueued     TaskStatus = "queued"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// IsTerminal reports whether no further transitions can happen.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// TaskKind distinguishes single-file tasks from batches.
type TaskKind string

const (
	TaskKindSingle TaskKind = "single"
	TaskKindBatch  TaskKind = "batch"
)

// ProviderNames selects the backends used for one task.
type ProviderNames struct {
	Transcription string `json:"transcription"`
	Summarization string `json:"summarization"`
}

// TaskFailure records the setup error that failed a whole task.
type TaskFailure struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Task is the full tracked state of one unit of submitted work.
type Task struct {
	ID              string        `json:"id"`
	Kind            TaskKind      `json:"kind"`
	Status          TaskStatus    `json:"status"`
	Source          string        `json:"source,omitempty"`
	Items           []string      `json:"items"`
	Results         []ItemResult  `json:"results"`
	Errors          []ItemError   `json:"errors"`
	Failure         *TaskFailure  `json:"failure,omitempty"`
	CallbackURL     string        `json:"callback_url,omitempty"`
	Providers       ProviderNames `json:"providers"`
	CancelRequested bool          `json:"cancel_requested,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
}

// Clone returns a deep copy safe to hand outside the registry.
func (t Task) Clone() Task {
	out := t
	out.Items = append([]string{}, t.Items...)
	out.Results = append([]ItemResult{}, t.Results...)
	out.Errors = append([]ItemError{}, t.Errors...)
	if t.Failure != nil {
		f := *t.Failure
		out.Failure = &f
	}
	if t.StartedAt != nil {
		ts := *t.StartedAt
		out.StartedAt = &ts
	}
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		out.CompletedAt = &ts
	}
	return out
}

// Summary condenses the task for listings.
func (t Task) Summary() TaskSummary {
	return TaskSummary{
		ID:          t.ID,
		Kind:        t.Kind,
		Status:      t.Status,
		Source:      t.Source,
		Items:       len(t.Items),
		Succeeded:   len(t.Results),
		Failed:      len(t.Errors),
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

// TaskSummary is the listing view of a task.
type TaskSummary struct {
	ID          string     `json:"id"`
	Kind        TaskKind   `json:"kind"`
	Status      TaskStatus `json:"status"`
	Source      string     `json:"source,omitempty"`
	Items       int        `json:"items"`
	Succeeded   int        `json:"succeeded"`
	Failed      int        `json:"failed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
