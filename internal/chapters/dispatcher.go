package chapters

import (
	"context"
	"sync"
)

// Dispatcher runs closures on the owning context. Submit never blocks and
// gives no ordering guarantee across submissions.
type Dispatcher interface {
	Submit(fn func())
}

// LoopDispatcher is a Dispatcher drained by a single goroutine calling Run
// or RunPending. It backs the CLI and tests, where no bubbletea program
// exists.
type LoopDispatcher struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
}

// NewLoopDispatcher returns an empty dispatcher; nothing runs until Run or
// RunPending is called.
func NewLoopDispatcher() *LoopDispatcher {
	return &LoopDispatcher{wake: make(chan struct{}, 1)}
}

// Submit queues fn for the owning loop. It never blocks.
func (d *LoopDispatcher) Submit(fn func()) {
	d.mu.Lock()
	d.pending = append(d.pending, fn)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Run executes submitted closures on the calling goroutine until ctx is done.
func (d *LoopDispatcher) Run(ctx context.Context) error {
	for {
		d.RunPending()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.wake:
		}
	}
}

// RunPending executes everything submitted so far and reports how many
// closures ran.
func (d *LoopDispatcher) RunPending() int {
	d.mu.Lock()
	batch := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
