// Package worker provides a worker pool for replaying move lists in parallel.
package worker

import (
	"sync"
	"sync/atomic"

	"golang.org/x/exp/slices"
)

// WorkItem is one move list to replay.
type WorkItem struct {
	Index int    // Original index for ordering
	Line  int    // Source line number (1-based, 0 if unknown)
	FEN   string // Starting position, empty for the initial position
	Moves []string
}

// ProcessResult is the outcome of replaying one work item.
type ProcessResult struct {
	Index    int
	Line     int
	FinalFEN string
	Plies    int      // Moves applied
	Skipped  []string // Moves skipped when replay continues past failures
	Err      error    // First failure, nil if every move applied
}

// OK returns true if every move of the item was applied.
func (r ProcessResult) OK() bool {
	return r.Err == nil
}

// ReplayFunc is the function signature for replaying a work item.
// It must build its own board; items never share one.
type ReplayFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel replay.
type Pool struct {
	numWorkers int
	bufferSize int
	workChan   chan WorkItem
	resultChan chan ProcessResult
	replay     ReplayFunc
	wg         sync.WaitGroup
	stopFlag   int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a new worker pool with the specified number of workers and buffer size.
func NewPool(numWorkers, bufferSize int, replay ReplayFunc) *Pool {
	return NewPoolWithOptions(replay, WithWorkers(numWorkers), WithBufferSize(bufferSize))
}

// NewPoolWithOptions creates a new worker pool using functional options.
// Default: 1 worker, buffer size of twice the workers.
func NewPoolWithOptions(replay ReplayFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		replay:     replay,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize < 1 {
		p.bufferSize = 2 * p.numWorkers
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker replays items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without replaying
		}
		p.resultChan <- p.replay(item)
	}
}

// Submit submits a work item for replay.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// TrySubmit attempts to submit a work item without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop replaying new items.
// Items already in the channel will be drained but not replayed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading replay results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run starts the pool, replays every item and returns the results
// sorted by Index. The pool cannot be reused afterwards.
func (p *Pool) Run(items []WorkItem) []ProcessResult {
	p.Start()
	go func() {
		for _, item := range items {
			p.Submit(item)
		}
		p.Close()
	}()

	results := make([]ProcessResult, 0, len(items))
	for r := range p.Results() {
		results = append(results, r)
	}
	slices.SortFunc(results, func(a, b ProcessResult) int {
		return a.Index - b.Index
	})
	return results
}
