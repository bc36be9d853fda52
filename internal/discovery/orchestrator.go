// Package discovery runs the multi-source tender discovery pipeline: fetch
// each configured portal, extract and normalize rows, filter to the deadline
// window, score, deduplicate, and persist the result. The run completes even
// if every source fails; an empty result is a valid outcome handled by the
// facade, not an error.
package discovery

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orchestrarfp/gotender/internal/cachestore"
	"github.com/orchestrarfp/gotender/internal/config"
	"github.com/orchestrarfp/gotender/internal/dates"
	"github.com/orchestrarfp/gotender/internal/domain"
	"github.com/orchestrarfp/gotender/internal/extract"
	"github.com/orchestrarfp/gotender/internal/logger"
	"github.com/orchestrarfp/gotender/internal/score"
)

// defaultWorkers bounds per-source concurrency when not configured.
const defaultWorkers = 4

// Fetcher retrieves a portal page body. A false return means the source is
// unavailable after retries.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, bool)
}

// Options configures the orchestrator.
type Options struct {
	// PerSourceLimit caps accepted rows per source.
	PerSourceLimit int
	// WindowDays is the deadline acceptance window.
	WindowDays int
	// Workers bounds the number of sources processed concurrently.
	Workers int
}

// WithDefaults fills unset options.
func (o Options) WithDefaults() Options {
	if o.PerSourceLimit <= 0 {
		o.PerSourceLimit = config.DefaultPerSourceLimit
	}
	if o.WindowDays <= 0 {
		o.WindowDays = config.DefaultWindowDays
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	return o
}

// Orchestrator coordinates one discovery run across all configured sources.
type Orchestrator struct {
	fetcher   Fetcher
	extractor *extract.Extractor
	scorer    *score.Scorer
	store     cachestore.Store
	log       logger.Interface
	opts      Options
	now       func() time.Time
}

// NewOrchestrator wires the pipeline components together.
func NewOrchestrator(
	fetcher Fetcher,
	extractor *extract.Extractor,
	scorer *score.Scorer,
	store cachestore.Store,
	log logger.Interface,
	opts Options,
) *Orchestrator {
	return &Orchestrator{
		fetcher:   fetcher,
		extractor: extractor,
		scorer:    scorer,
		store:     store,
		log:       log,
		opts:      opts.WithDefaults(),
		now:       time.Now,
	}
}

// WithClock overrides the orchestrator's time source. Intended for tests.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Discover processes every source, joins the per-source results,
// deduplicates, persists the snapshot, and returns it. Sources run on a
// bounded worker pool; a failed or cancelled source is skipped, never fatal.
// Cancelling ctx abandons sources still in flight and proceeds to
// deduplication with whatever was collected.
func (o *Orchestrator) Discover(ctx context.Context, sources []config.Source) []domain.TenderRecord {
	runLog := o.log.With("run_id", uuid.NewString())
	runLog.Info("discovery run starting", "sources", len(sources))

	collected := o.collect(ctx, sources, runLog)

	deduped := domain.Deduplicate(collected)

	// Single writer: the snapshot is replaced only after the join barrier.
	o.store.Save(deduped)

	runLog.Info("discovery run finished",
		"collected", len(collected),
		"kept", len(deduped),
	)

	return deduped
}

// collect fans sources out to the worker pool and joins the results.
func (o *Orchestrator) collect(
	ctx context.Context,
	sources []config.Source,
	runLog logger.Interface,
) []domain.TenderRecord {
	workers := o.opts.Workers
	if workers > len(sources) {
		workers = len(sources)
	}
	if workers < 1 {
		return nil
	}

	jobs := make(chan config.Source)

	var (
		mu        sync.Mutex
		collected []domain.TenderRecord
		wg        sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for src := range jobs {
				records := o.processSource(ctx, src, runLog)
				if len(records) == 0 {
					continue
				}

				mu.Lock()
				collected = append(collected, records...)
				mu.Unlock()
			}
		}()
	}

	for _, src := range sources {
		select {
		case <-ctx.Done():
			runLog.Warn("discovery deadline reached, abandoning remaining sources")
			close(jobs)
			wg.Wait()
			return collected
		case jobs <- src:
		}
	}

	close(jobs)
	wg.Wait()

	return collected
}

// processSource fetches one portal and extracts up to the per-source limit
// of acceptable records from it.
func (o *Orchestrator) processSource(
	ctx context.Context,
	src config.Source,
	runLog logger.Interface,
) []domain.TenderRecord {
	srcLog := runLog.With("source", src.URL)

	body, ok := o.fetcher.Fetch(ctx, src.URL)
	if !ok {
		srcLog.Warn("source unavailable, skipping")
		return nil
	}

	var candidates []domain.TenderRecord

	switch src.Type {
	case config.SourceTypeRSS:
		candidates = feedRecords(body, src.URL, srcLog)
	default:
		candidates = o.htmlRecords(body, src.URL, srcLog)
	}

	return o.filterAndScore(candidates, srcLog)
}

// htmlRecords parses the body for row-like elements and runs each through
// the extractor.
func (o *Orchestrator) htmlRecords(body []byte, portalID string, srcLog logger.Interface) []domain.TenderRecord {
	rows, err := selectRows(body)
	if err != nil {
		srcLog.Warn("parse source body failed", "error", err.Error())
		return nil
	}

	records := make([]domain.TenderRecord, 0, len(rows))
	for _, row := range rows {
		record, ok := o.extractor.Extract(row, portalID)
		if !ok {
			continue
		}
		records = append(records, *record)
	}

	return records
}

// filterAndScore applies the deadline window, scores the survivors, and
// enforces the per-source limit on accepted rows.
func (o *Orchestrator) filterAndScore(candidates []domain.TenderRecord, srcLog logger.Interface) []domain.TenderRecord {
	now := o.now()
	accepted := make([]domain.TenderRecord, 0, o.opts.PerSourceLimit)

	for i := range candidates {
		if len(accepted) >= o.opts.PerSourceLimit {
			break
		}

		record := candidates[i]

		if record.Deadline == "" || !dates.WithinWindow(record.Deadline, now, o.opts.WindowDays) {
			srcLog.Debug("record outside deadline window",
				"title", record.Title,
				"deadline", record.Deadline,
			)
			continue
		}

		record.Score = o.scorer.Score(&record)
		accepted = append(accepted, record)
	}

	srcLog.Info("source processed",
		"candidates", len(candidates),
		"accepted", len(accepted),
	)

	return accepted
}
