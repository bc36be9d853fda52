// Package schedule runs periodic forced discovery refreshes on a cron
// schedule so the cache never goes stale while the server is up.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/orchestrarfp/gotender/internal/domain"
	"github.com/orchestrarfp/gotender/internal/logger"
)

// Refresher runs a forced discovery pass.
type Refresher interface {
	GetTenders(ctx context.Context, forceRefresh bool) []domain.TenderRecord
}

// Scheduler triggers forced refreshes on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	log       logger.Interface
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewScheduler wires the refresher to the given cron expression
// (standard 5-field format, e.g. "0 */6 * * *").
func NewScheduler(spec string, refresher Refresher, log logger.Interface) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
	}

	entryID, err := s.cron.AddFunc(spec, s.run)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to parse refresh schedule %q: %w", spec, err)
	}

	log.Info("Refresh schedule registered", "schedule", spec, "entry_id", entryID)

	return s, nil
}

// Start begins firing scheduled refreshes.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Refresh scheduler started")
}

// Stop halts the schedule and waits for any in-flight refresh to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Refresh scheduler stopped")
}

func (s *Scheduler) run() {
	started := time.Now()
	s.log.Info("Scheduled refresh triggered")

	records := s.refresher.GetTenders(s.ctx, true)

	s.log.Info("Scheduled refresh finished",
		"tenders", len(records),
		"duration", time.Since(started).String())
}
