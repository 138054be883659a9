package worker

import "context"

// Job is one unit of work run by a pool worker.
type Job func(ctx context.Context)

// Pool runs jobs on a fixed number of workers
type Pool interface {
	Start()
	Submit(ctx context.Context, job Job) error
	Stop()
}
