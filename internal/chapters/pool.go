package chapters

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"github.com/easypresenter/easypresenter/internal/log"
)

const (
	// DefaultWorkers is the number of concurrent fetches.
	DefaultWorkers = 4
	// DefaultQueueSize is the number of jobs that may wait for a worker.
	DefaultQueueSize = 64
)

var (
	// ErrQueueFull is returned when the job queue has no free slot.
	ErrQueueFull = errors.New("chapter job queue is full")
	// ErrPoolClosed is returned when submitting to a closed pool.
	ErrPoolClosed = errors.New("chapter pool is closed")
)

// Job is a unit of background work. The context is cancelled when the pool
// closes.
type Job func(ctx context.Context)

// Pool runs jobs on a fixed set of workers fed by a bounded queue.
type Pool struct {
	jobs   chan Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewPool starts workers goroutines sharing a queue of queueSize jobs.
// Non-positive values fall back to the defaults.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:   make(chan Job, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	log.Debug(log.CatLoader, "pool started", "workers", workers, "queue", queueSize)
	return p
}

// TrySubmit queues job without blocking.
func (p *Pool) TrySubmit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Queued returns the number of jobs waiting for a worker.
func (p *Pool) Queued() int {
	return len(p.jobs)
}

// Close stops accepting jobs, cancels the job context and waits for the
// workers to drain the queue. It is safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for job := range p.jobs {
		p.run(id, job)
	}
}

func (p *Pool) run(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatLoader, "job panic recovered",
				"worker", id,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	job(p.ctx)
}
