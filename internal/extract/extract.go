// Package extract turns raw portal markup rows into normalized tender
// records. Portal-specific column layouts are tried first via a strategy
// registry; rows from unknown portals go through a generic free-text
// fallback. A row either yields a record or it does not; nothing a single
// row contains can abort a batch.
package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/orchestrarfp/gotender/internal/domain"
	"github.com/orchestrarfp/gotender/internal/logger"
)

// Strategy extracts a tender record from a row for portals it recognizes.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string
	// Matches reports whether this strategy handles the given portal.
	Matches(portalID string) bool
	// Extract produces a record from the row, or false when the row does
	// not carry one under this strategy's layout.
	Extract(row *goquery.Selection, portalID string) (*domain.TenderRecord, bool)
}

// Extractor dispatches rows to the first matching strategy.
type Extractor struct {
	strategies []Strategy
	log        logger.Interface
}

// NewExtractor creates an extractor with the built-in portal strategies
// registered in dispatch order: specific portals, the e-procurement family,
// then the generic fallback.
func NewExtractor(log logger.Interface) *Extractor {
	e := &Extractor{log: log}

	for _, s := range builtinStrategies() {
		e.Register(s)
	}
	e.Register(&genericStrategy{})

	return e
}

// NewEmptyExtractor creates an extractor with no strategies registered.
// Callers compose their own dispatch order via Register.
func NewEmptyExtractor(log logger.Interface) *Extractor {
	return &Extractor{log: log}
}

// Register appends a strategy to the dispatch order.
func (e *Extractor) Register(s Strategy) {
	e.strategies = append(e.strategies, s)
}

// Extract runs the row through the registry. The first strategy whose
// Matches accepts the portal and whose Extract yields a record wins. Any
// panic inside a strategy is absorbed and counts as "no record" for that
// row.
func (e *Extractor) Extract(row *goquery.Selection, portalID string) (record *domain.TenderRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("row extraction panicked",
				"portal", portalID,
				"panic", r,
			)
			record = nil
			ok = false
		}
	}()

	for _, s := range e.strategies {
		if !s.Matches(portalID) {
			continue
		}

		if rec, extracted := s.Extract(row, portalID); extracted {
			return rec, true
		}

		e.log.Debug("strategy yielded no record",
			"portal", portalID,
			"strategy", s.Name(),
		)
	}

	return nil, false
}
