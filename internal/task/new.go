package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/clipdigest/internal/domain"
)

type entry struct {
	mu   sync.Mutex
	task domain.Task
}

type implRegistry struct {
	mu    sync.RWMutex
	tasks map[string]*entry
	now   func() time.Time
	newID func() string
}

// New creates an empty in-memory Registry
func New() Registry {
	return newRegistry(time.Now, uuid.NewString)
}

func newRegistry(now func() time.Time, newID func() string) *implRegistry {
	return &implRegistry{
		tasks: make(map[string]*entry),
		now:   now,
		newID: newID,
	}
}
