package cachestore

import (
	"time"

	"github.com/orchestrarfp/gotender/internal/domain"
)

// deadlineLayout is the format demo deadlines are written in. It must be one
// of the layouts the date normalizer understands.
const deadlineLayout = "02-01-2006"

// PrimeIfEmpty seeds the store with the demo snapshot when it holds nothing,
// so the system never presents a hard-empty state on first run. Returns true
// when priming happened.
func PrimeIfEmpty(store Store, now time.Time) bool {
	if len(store.Load()) > 0 {
		return false
	}

	store.Save(DemoSnapshot(now))

	return true
}

// DemoSnapshot returns the synthetic fallback tenders. Deadlines are
// computed relative to now so the demo data always sits inside the 90-day
// window at the moment of priming.
func DemoSnapshot(now time.Time) []domain.TenderRecord {
	deadline := func(days int) string {
		return now.AddDate(0, 0, days).Format(deadlineLayout)
	}

	return []domain.TenderRecord{
		{
			Title:        "Supply of Interior Paints for Bengaluru Plant",
			Number:       "DEMO-2026-001",
			Buyer:        "Asian Paints",
			Deadline:     deadline(21),
			DocumentLink: "https://example.com/rfp1",
			Location:     "Bengaluru",
			Source:       "demo",
			Score:        89,
		},
		{
			Title:        "Order of De-Rusting Primer (Steel Pipes)",
			Number:       "DEMO-2026-002",
			Buyer:        "APSP",
			Deadline:     deadline(60),
			DocumentLink: "https://example.com/rfp2",
			Location:     "Visakhapatnam",
			Source:       "demo",
			Score:        50,
		},
	}
}
