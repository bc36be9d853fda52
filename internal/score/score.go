// Package score computes the urgency/relevance score for normalized tender
// records. Scoring never fails: whatever contribution could be computed is
// returned, and a record that defeats every heuristic scores 0.
package score

import (
	"strings"
	"time"

	"github.com/orchestrarfp/gotender/internal/dates"
	"github.com/orchestrarfp/gotender/internal/domain"
)

// Default scoring parameters.
const (
	DefaultWindowDays   = 90
	DefaultKeywordBonus = 20
)

// Scorer scores tender records against a configured keyword set.
type Scorer struct {
	keywords   []string
	bonus      float64
	windowDays int
	// now is swappable for tests.
	now func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWindowDays overrides the deadline window used for the urgency base.
func WithWindowDays(days int) Option {
	return func(s *Scorer) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// WithBonus overrides the keyword bonus.
func WithBonus(bonus float64) Option {
	return func(s *Scorer) {
		if bonus >= 0 {
			s.bonus = bonus
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewScorer creates a scorer for the given case-insensitive keyword set.
func NewScorer(keywords []string, opts ...Option) *Scorer {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}

	s := &Scorer{
		keywords:   lowered,
		bonus:      DefaultKeywordBonus,
		windowDays: DefaultWindowDays,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Score computes the record's score: urgency from deadline proximity plus a
// fixed bonus when the title matches the keyword set. An unparseable
// deadline simply contributes nothing.
func (s *Scorer) Score(record *domain.TenderRecord) float64 {
	var total float64

	if days, ok := dates.DaysUntil(record.Deadline, s.now()); ok {
		urgency := float64(s.windowDays - days)
		if urgency > 0 {
			total += urgency
		}
	}

	if s.titleMatches(record.Title) {
		total += s.bonus
	}

	return total
}

// titleMatches reports whether the title contains any configured keyword.
func (s *Scorer) titleMatches(title string) bool {
	lowered := strings.ToLower(title)
	for _, kw := range s.keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
