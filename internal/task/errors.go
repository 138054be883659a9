package task

import "errors"

var (
	// ErrNotFound is returned for identifiers this process never issued.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidTransition is returned for backward, skipped, or post-terminal moves.
	ErrInvalidTransition = errors.New("invalid task transition")

	// ErrTerminal is returned when mutating a task that already finished.
	ErrTerminal = errors.New("task already terminal")

	// ErrIncomplete is returned when completing a task with unaccounted items.
	ErrIncomplete = errors.New("task has items without an outcome")

	// ErrTooManyOutcomes is returned when outcomes would exceed the item count.
	ErrTooManyOutcomes = errors.New("more outcomes than items")

	// ErrItemsLocked is returned when replacing items after outcomes were recorded.
	ErrItemsLocked = errors.New("task items can no longer change")
)
