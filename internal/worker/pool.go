package worker

import (
	"context"
)

// Start launches the workers. Calling it twice is a no-op.
func (p *implPool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || p.closed {
		return
	}
	p.started = true

	p.logger.Info(context.Background(), "Starting worker pool with %d workers", p.numWorkers)
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i + 1)
	}
}

// Submit enqueues job, blocking while the queue is full. The job runs with ctx.
func (p *implPool) Submit(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- queued{ctx: ctx, job: job}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop rejects new jobs, lets workers drain the queue and waits for them
func (p *implPool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.logger.Info(context.Background(), "Stopping worker pool")
	p.wg.Wait()
}

func (p *implPool) worker(id int) {
	defer p.wg.Done()
	p.logger.Debug(context.Background(), "Worker %d started", id)

	for q := range p.jobs {
		p.run(id, q)
	}

	p.logger.Debug(context.Background(), "Worker %d stopped", id)
}

// run executes one job, containing panics so the worker survives
func (p *implPool) run(id int, q queued) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(q.ctx, "Worker %d recovered from panic: %v", id, r)
		}
	}()
	q.job(q.ctx)
}
