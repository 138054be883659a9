package task

import "github.com/nguyentantai21042004/clipdigest/internal/domain"

// CreateInput describes a new task at submission time.
type CreateInput struct {
	Kind        domain.TaskKind
	Items       []string
	Source      string
	CallbackURL string
	Providers   domain.ProviderNames
}

// Registry is the process-wide owner of task state. Every method is safe for
// concurrent use; reads return deep copies.
type Registry interface {
	Create(in CreateInput) domain.Task
	Get(id string) (domain.Task, error)
	List() []domain.TaskSummary

	Transition(id string, status domain.TaskStatus) error
	SetItems(id string, items []string) error
	AppendResult(id string, result domain.ItemResult) error
	AppendError(id string, itemErr domain.ItemError) error
	Fail(id string, kind domain.ErrorKind, message string) error
	RequestCancel(id string) error

	Clear()
}
