// Package worker drains leaderboard refresh events from the queue and
// triggers board rebuilds. A rebuild is a total recompute, so it is safe
// for multiple workers to react to the same burst of refresh events.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/debattle/engine/internal/adapters/mq/queue"
	"github.com/debattle/engine/pkg/logger"
	"github.com/debattle/engine/pkg/metrics"
)

// Rebuilder recomputes the derived leaderboard from user documents.
type Rebuilder interface {
	RebuildLeaderboard(ctx context.Context) error
}

// Queue defines how workers receive refresh events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Event
}

// Worker processes refresh events until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker on top of the in-memory queue.
type InMemoryWorker struct {
	queue     Queue
	rebuilder Rebuilder
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, rebuilder Rebuilder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		rebuilder: rebuilder,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-events:
			if !ok {
				// Queue closed and drained.
				return
			}
			if err := w.process(ctx, event); err != nil {
				w.logger.Error(ctx, "refresh failed",
					logger.String("debateID", event.DebateID),
					logger.String("reason", event.Reason),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process handles a single refresh event.
func (w *InMemoryWorker) process(ctx context.Context, event queue.Event) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := w.rebuilder.RebuildLeaderboard(ctx); err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("rebuild after debate %s: %w", event.DebateID, err)
	}
	return nil
}

// Pool manages a fixed set of workers draining the refresh queue.
type Pool struct {
	workers []*InMemoryWorker
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. A non-positive count
// defaults to the number of CPUs.
func NewPool(workerCount int, q Queue, rebuilder Rebuilder) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			q,
			rebuilder,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start launches all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown stops all workers, waiting for in-flight rebuilds.
func (p *Pool) Shutdown(ctx context.Context) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, w := range p.workers {
		wg.Add(1)
		go func(w *InMemoryWorker) {
			defer wg.Done()
			if err := w.Shutdown(ctx); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(w)
	}

	wg.Wait()
	metrics.UpdateWorkerCount(0)
	return firstErr
}
