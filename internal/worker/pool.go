// Package worker runs independent games in parallel. Each game owns its
// board, so workers share nothing but the result channel.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/hostage-chess/internal/game"
)

// WorkItem asks for one game to be played.
type WorkItem struct {
	Index int   // Position in the batch
	Seed  int64 // Seed for the game's chooser
}

// ProcessResult is the outcome of one game.
type ProcessResult struct {
	Game   *game.Game
	Index  int
	Seed   int64
	Status game.Status
	Error  error
}

// ProcessFunc plays the game described by item.
type ProcessFunc func(ctx context.Context, item WorkItem) ProcessResult

// Pool manages the worker goroutines.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
	skipped     atomic.Int64
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

// NewPool creates a pool. Defaults: 1 worker, buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the workers. Once ctx is done or Stop is called, queued items
// are drained without being played.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() || ctx.Err() != nil {
			p.skipped.Add(1)
			continue
		}
		p.resultChan <- p.processFunc(ctx, item)
	}
}

// Submit queues item, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// TrySubmit queues item without blocking. It returns false if the buffer is
// full or the pool is stopped.
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

// Stop makes workers skip every item not yet started.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the work channel, waits for the workers and then closes the
// result channel.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Skipped returns how many items were drained without being played.
func (p *Pool) Skipped() int {
	return int(p.skipped.Load())
}
