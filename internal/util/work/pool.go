package work

import (
	"errors"
	"sync"
)

var (
	ErrPoolClosed = errors.New("work pool closed")
	ErrQueueFull  = errors.New("work queue full")
)

// Job is an opaque unit of work.
type Job interface{}

// JobHandler processes a single job.
type JobHandler func(job Job) error

// Pool is a fixed-size worker pool over a buffered queue. Handler errors are
// the handler's own concern; the pool only drives execution.
type Pool struct {
	jobs    chan Job
	handler JobHandler
	wg      sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

// NewWorkPool starts numWorkers goroutines consuming from a queue of
// queueSize entries.
func NewWorkPool(numWorkers, queueSize int, handler JobHandler) *Pool {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = numWorkers
	}

	p := &Pool{
		jobs:    make(chan Job, queueSize),
		handler: handler,
	}

	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.run()
	}

	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		_ = p.handler(job)
	}
}

// Submit enqueues a job without blocking. It fails when the pool is stopped
// or the queue is full.
func (p *Pool) Submit(job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}
