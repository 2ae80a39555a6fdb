package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Warm defaults.
const (
	DefaultWarmConcurrency = 4
	DefaultWarmBatchSize   = 10
	MaxWarmConcurrency     = 16
)

// ErrNoPages is returned by Warm when asked to fetch nothing.
var ErrNoPages = errors.New("no pages to warm")

// WarmProgress is reported after every batch.
type WarmProgress struct {
	Total   int
	Done    int
	Failed  int
	Batch   int
	Batches int
	Elapsed time.Duration
}

// WarmOptions configures Warm.
type WarmOptions struct {
	// Concurrency bounds in-flight fetches within a batch.
	Concurrency int

	// BatchSize is the number of pages per batch.
	BatchSize int

	// OnProgress, if set, is called after each batch from the calling goroutine.
	OnProgress func(WarmProgress)
}

// WarmReport summarizes a Warm run.
type WarmReport struct {
	Requested int
	Fetched   []int
	Failed    map[int]error
	Elapsed   time.Duration
}

// Err joins the per-page failures in page order, or returns nil.
func (r WarmReport) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	pages := make([]int, 0, len(r.Failed))
	for p := range r.Failed {
		pages = append(pages, p)
	}
	slices.Sort(pages)
	errs := make([]error, 0, len(pages))
	for _, p := range pages {
		errs = append(errs, r.Failed[p])
	}
	return errors.Join(errs...)
}

// Warm fetches pages through src in batches. Individual page failures are
// collected in the report; the returned error is only set for empty input or
// cancellation.
func Warm(ctx context.Context, src Source, pages []int, opts WarmOptions) (WarmReport, error) {
	if len(pages) == 0 {
		return WarmReport{}, ErrNoPages
	}
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = DefaultWarmConcurrency
	}
	concurrency = min(concurrency, MaxWarmConcurrency)
	batchSize := opts.BatchSize
	if batchSize < 1 {
		batchSize = DefaultWarmBatchSize
	}

	start := time.Now()
	report := WarmReport{Requested: len(pages), Failed: make(map[int]error)}
	batches := (len(pages) + batchSize - 1) / batchSize

	var mu sync.Mutex
	for b := range batches {
		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(start)
			return report, err
		}

		batch := pages[b*batchSize : min((b+1)*batchSize, len(pages))]
		// Failures are recorded per page, so the group only bounds concurrency.
		var g errgroup.Group
		g.SetLimit(concurrency)
		for _, page := range batch {
			g.Go(func() error {
				_, err := src.FetchPage(ctx, page)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					report.Failed[page] = err
					return nil
				}
				report.Fetched = append(report.Fetched, page)
				return nil
			})
		}
		_ = g.Wait()

		if opts.OnProgress != nil {
			opts.OnProgress(WarmProgress{
				Total:   len(pages),
				Done:    len(report.Fetched) + len(report.Failed),
				Failed:  len(report.Failed),
				Batch:   b + 1,
				Batches: batches,
				Elapsed: time.Since(start),
			})
		}
	}

	slices.Sort(report.Fetched)
	report.Elapsed = time.Since(start)
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("warm cancelled: %w", err)
	}
	return report, nil
}
