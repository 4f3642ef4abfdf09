package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackzampolin/citydir/internal/testutil"
)

func TestPool_Run(t *testing.T) {
	t.Run("processes all pages in order", func(t *testing.T) {
		p := New(Config{WorkerCount: 4, Logger: testutil.Logger(t)})

		results := p.Run(context.Background(), 1, 20, func(ctx context.Context, pageNum int) (any, error) {
			return pageNum * 10, nil
		})

		if len(results) != 20 {
			t.Fatalf("expected 20 results, got %d", len(results))
		}
		for i, r := range results {
			if r.PageNum != i+1 {
				t.Errorf("result %d has page %d, want %d", i, r.PageNum, i+1)
			}
			if r.Output != (i+1)*10 {
				t.Errorf("page %d output = %v", r.PageNum, r.Output)
			}
		}
	})

	t.Run("collects per-page errors", func(t *testing.T) {
		p := New(Config{WorkerCount: 2})

		results := p.Run(context.Background(), 1, 5, func(ctx context.Context, pageNum int) (any, error) {
			if pageNum == 3 {
				return nil, fmt.Errorf("page %d unreadable", pageNum)
			}
			return "ok", nil
		})

		if len(results) != 5 {
			t.Fatalf("expected 5 results, got %d", len(results))
		}
		var failed int
		for _, r := range results {
			if r.Err != nil {
				failed++
				if r.PageNum != 3 {
					t.Errorf("unexpected failure on page %d", r.PageNum)
				}
			}
		}
		if failed != 1 {
			t.Errorf("failed = %d, want 1", failed)
		}
	})

	t.Run("empty range", func(t *testing.T) {
		p := New(Config{WorkerCount: 2})
		results := p.Run(context.Background(), 5, 4, func(ctx context.Context, pageNum int) (any, error) {
			return nil, nil
		})
		if results != nil {
			t.Errorf("expected nil results, got %v", results)
		}
	})

	t.Run("bounded concurrency", func(t *testing.T) {
		p := New(Config{WorkerCount: 3})

		var current, peak atomic.Int32
		p.Run(context.Background(), 1, 30, func(ctx context.Context, pageNum int) (any, error) {
			n := current.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			if got := p.InFlight(); got > 3 {
				t.Errorf("InFlight() = %d during run, want <= 3", got)
			}
			time.Sleep(time.Millisecond)
			current.Add(-1)
			return nil, nil
		})

		if got := peak.Load(); got > 3 {
			t.Errorf("peak concurrency = %d, want <= 3", got)
		}
		if got := p.InFlight(); got != 0 {
			t.Errorf("InFlight() = %d after run, want 0", got)
		}
	})

	t.Run("cancellation stops submission", func(t *testing.T) {
		p := New(Config{WorkerCount: 1})

		ctx, cancel := context.WithCancel(context.Background())
		var processed atomic.Int32

		results := p.Run(ctx, 1, 1000, func(ctx context.Context, pageNum int) (any, error) {
			if processed.Add(1) == 3 {
				cancel()
			}
			return nil, nil
		})

		if len(results) >= 1000 {
			t.Errorf("expected cancellation to stop the run early, got %d results", len(results))
		}
	})
}
