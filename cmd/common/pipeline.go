package common

import (
	"time"

	"github.com/orchestrarfp/gotender/internal/cachestore"
	"github.com/orchestrarfp/gotender/internal/discovery"
	"github.com/orchestrarfp/gotender/internal/extract"
	"github.com/orchestrarfp/gotender/internal/fetch"
	"github.com/orchestrarfp/gotender/internal/score"
	"github.com/orchestrarfp/gotender/internal/tenders"
)

// Pipeline is the fully wired discovery stack.
type Pipeline struct {
	Service *tenders.Service
	Store   cachestore.Store
}

// NewPipeline wires fetch client, extractor, scorer, cache store,
// orchestrator, and facade from the loaded configuration. An empty cache is
// primed with demo records here, once per startup, so no command ever
// presents a hard-empty state on first run.
func NewPipeline(deps *CommandDeps) *Pipeline {
	cfg := deps.Config
	log := deps.Logger

	client := fetch.NewClient(fetch.Options{
		MaxAttempts: cfg.Fetch.MaxAttempts,
		Backoff:     cfg.Fetch.Backoff,
		Timeout:     cfg.Fetch.Timeout,
		UserAgent:   cfg.Fetch.UserAgent,
	}, log)

	extractor := extract.NewExtractor(log)

	scorer := score.NewScorer(cfg.Discovery.Keywords,
		score.WithWindowDays(cfg.Discovery.WindowDays),
		score.WithBonus(cfg.Discovery.KeywordBonus),
	)

	store := cachestore.NewFileStore(cfg.Cache.Path, log)

	if cachestore.PrimeIfEmpty(store, time.Now()) {
		log.Info("Cache primed with demo tenders", "path", cfg.Cache.Path)
	}

	orchestrator := discovery.NewOrchestrator(client, extractor, scorer, store, log, discovery.Options{
		PerSourceLimit: cfg.Discovery.PerSourceLimit,
		WindowDays:     cfg.Discovery.WindowDays,
		Workers:        cfg.Discovery.Workers,
	})

	service := tenders.NewService(orchestrator, store, cfg.Discovery.Sources, log)

	return &Pipeline{
		Service: service,
		Store:   store,
	}
}
