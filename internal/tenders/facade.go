// Package tenders exposes the discovery facade consumed by the CLI and the
// HTTP API: cache-first retrieval with an optional forced live refresh, and
// score-ordered output.
package tenders

import (
	"context"
	"sort"

	"github.com/orchestrarfp/gotender/internal/cachestore"
	"github.com/orchestrarfp/gotender/internal/config"
	"github.com/orchestrarfp/gotender/internal/domain"
	"github.com/orchestrarfp/gotender/internal/logger"
)

// Discoverer runs a live discovery pass across the configured sources.
type Discoverer interface {
	Discover(ctx context.Context, sources []config.Source) []domain.TenderRecord
}

// Service is the discovery facade.
type Service struct {
	discoverer Discoverer
	store      cachestore.Store
	sources    []config.Source
	log        logger.Interface
}

// NewService creates the facade over the given orchestrator and store.
func NewService(
	discoverer Discoverer,
	store cachestore.Store,
	sources []config.Source,
	log logger.Interface,
) *Service {
	return &Service{
		discoverer: discoverer,
		store:      store,
		sources:    sources,
		log:        log,
	}
}

// GetTenders returns the current tender set, sorted by score descending.
//
// With forceRefresh false the cache snapshot is preferred; discovery runs
// only when the cache is empty, and an empty discovery falls back to one
// more cache read to pick up concurrent priming. With forceRefresh true
// discovery always runs (and replaces the snapshot as a side effect).
func (s *Service) GetTenders(ctx context.Context, forceRefresh bool) []domain.TenderRecord {
	if !forceRefresh {
		if cached := s.store.Load(); len(cached) > 0 {
			s.log.Debug("serving tenders from cache", "count", len(cached))
			return sortByScore(cached)
		}
	}

	discovered := s.discoverer.Discover(ctx, s.sources)
	if len(discovered) == 0 && !forceRefresh {
		// Priming may have filled the store while discovery came up empty.
		discovered = s.store.Load()
	}

	return sortByScore(discovered)
}

// sortByScore orders records by score descending, stably so equal scores
// keep their discovery order.
func sortByScore(records []domain.TenderRecord) []domain.TenderRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
	return records
}
