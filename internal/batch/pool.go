package batch

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ssriramteja/tablemeta/internal/resolve"
)

// Pool fans per-table resolutions out over a fixed number of workers and
// enforces a per-table deadline on the collection side. It always yields
// exactly one outcome per unique, non-blank input identifier, in completion
// order.
type Pool struct {
	resolver *resolve.Resolver
	workers  int
	timeout  time.Duration
	log      *zap.Logger
}

func NewPool(resolver *resolve.Resolver, workers int, timeout time.Duration, log *zap.Logger) *Pool {
	if log == nil {
		log = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	return &Pool{resolver: resolver, workers: workers, timeout: timeout, log: log}
}

// Run dispatches one resolution per deduplicated identifier. A table that
// fails or times out contributes a degraded outcome; nothing aborts the
// batch. Worst-case wall clock stays within ceil(N/W) deadlines.
func (p *Pool) Run(ctx context.Context, tables []string) []resolve.Outcome {
	tables = Dedupe(tables)
	if len(tables) == 0 {
		return nil
	}

	workers := p.workers
	if workers > len(tables) {
		workers = len(tables)
	}

	tasks := make(chan string)
	results := make(chan resolve.Outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for table := range tasks {
				results <- p.collectOne(ctx, table)
			}
		}()
	}

	go func() {
		for _, table := range tables {
			tasks <- table
		}
		close(tasks)
		wg.Wait()
		close(results)
	}()

	// The collection lives only on this side of the results channel, so
	// workers never share mutable state.
	out := make([]resolve.Outcome, 0, len(tables))
	for outcome := range results {
		out = append(out, outcome)
	}
	return out
}

// collectOne races the resolver against the deadline. The timeout is
// best-effort: the resolver goroutine may finish later, but its result parks
// in the buffered channel and never reaches the collection once the degraded
// outcome has been recorded.
func (p *Pool) collectOne(ctx context.Context, table string) resolve.Outcome {
	taskCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan resolve.Outcome, 1)
	go func() {
		done <- p.resolver.Resolve(taskCtx, table)
	}()

	select {
	case outcome := <-done:
		return outcome
	case <-taskCtx.Done():
		err := taskCtx.Err()
		p.log.Warn("table resolution abandoned",
			zap.String("table", table),
			zap.Duration("timeout", p.timeout),
			zap.Error(err))
		return resolve.Failure(table, resolve.StatusFor(err), err)
	}
}

// Dedupe drops blank identifiers and collapses exact (case-sensitive)
// duplicates, keeping first-occurrence order. Entries are trimmed of
// surrounding whitespace first.
func Dedupe(tables []string) []string {
	seen := make(map[string]struct{}, len(tables))
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		name := strings.TrimSpace(t)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
