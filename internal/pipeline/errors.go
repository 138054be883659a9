package pipeline

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
)

// StageError is a stage-aware item failure.
type StageError struct {
	Item    string
	Stage   domain.Stage
	Kind    domain.ErrorKind
	Message string
	Err     error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Stage, e.Item, e.Message)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Stage, e.Item, e.Message, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ItemError converts the failure into the record stored on a task
func (e *StageError) ItemError() domain.ItemError {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return domain.ItemError{Item: e.Item, Stage: e.Stage, Kind: e.Kind, Message: msg}
}

// ToItemError maps any error returned by Run to an ItemError for item
func ToItemError(item string, err error) domain.ItemError {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.ItemError()
	}
	return domain.ItemError{Item: item, Stage: domain.StageValidate, Kind: domain.ErrorKindInvalidInput, Message: err.Error()}
}

func newStageError(item string, stage domain.Stage, kind domain.ErrorKind, msg string, err error) *StageError {
	return &StageError{Item: item, Stage: stage, Kind: kind, Message: msg, Err: err}
}
