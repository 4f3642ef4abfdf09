// Package worker runs page-level work across a bounded pool of goroutines.
// All workers share a single queue, so load balancing falls out of Go
// channel semantics.
package worker

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
)

// PageFunc processes one page. Implementations return the page's output or
// an error; errors are collected, not fatal for the run.
type PageFunc func(ctx context.Context, pageNum int) (any, error)

// PageResult pairs a page number with its outcome.
type PageResult struct {
	PageNum int
	Output  any
	Err     error
}

// Pool executes a PageFunc over a set of pages with bounded concurrency.
type Pool struct {
	name        string
	logger      *slog.Logger
	workerCount int

	inFlight atomic.Int32
}

// Config configures a new pool.
type Config struct {
	Name        string
	Logger      *slog.Logger
	WorkerCount int // Number of worker goroutines (default: runtime.NumCPU())
}

// New creates a new page worker pool.
func New(cfg Config) *Pool {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := cfg.Name
	if name == "" {
		name = "pages"
	}

	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	return &Pool{
		name:        name,
		logger:      logger.With("pool", name, "workers", workerCount),
		workerCount: workerCount,
	}
}

// InFlight returns the number of pages currently being processed.
func (p *Pool) InFlight() int {
	return int(p.inFlight.Load())
}

// Run processes pages firstPage..lastPage (inclusive) and returns results
// ordered by page number. Run blocks until every submitted page finishes
// or the context is cancelled; pages never started are absent from the
// result set.
func (p *Pool) Run(ctx context.Context, firstPage, lastPage int, fn PageFunc) []PageResult {
	if lastPage < firstPage {
		return nil
	}

	queue := make(chan int)
	results := make(chan PageResult, lastPage-firstPage+1)

	var wg sync.WaitGroup
	for i := 0; i < p.workerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.worker(ctx, id, queue, results, fn)
		}(i)
	}

	go func() {
		defer close(queue)
		for page := firstPage; page <= lastPage; page++ {
			select {
			case <-ctx.Done():
				return
			case queue <- page:
			}
		}
	}()

	wg.Wait()
	close(results)

	var out []PageResult
	for r := range results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PageNum < out[j].PageNum })
	return out
}

// worker pulls page numbers from the shared queue until it closes.
func (p *Pool) worker(ctx context.Context, id int, queue <-chan int, results chan<- PageResult, fn PageFunc) {
	for pageNum := range queue {
		p.inFlight.Add(1)
		output, err := fn(ctx, pageNum)
		p.inFlight.Add(-1)

		if err != nil {
			p.logger.Debug("page failed", "worker_id", id, "page", pageNum, "error", err)
		} else {
			p.logger.Debug("page completed", "worker_id", id, "page", pageNum)
		}

		results <- PageResult{PageNum: pageNum, Output: output, Err: err}
	}
}
