package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orchestrarfp/gotender/internal/pricing"
)

func TestSuggestStrongMatch(t *testing.T) {
	s := pricing.Suggest(82.5, 100000)

	assert.InDelta(t, 82500, s.Price, 0.001)
	assert.InDelta(t, 8.25, s.Score, 0.001)
	assert.True(t, s.Submit)
	assert.Contains(t, s.Advice, "recommended")
}

func TestSuggestWeakMatch(t *testing.T) {
	s := pricing.Suggest(55.9, 100000)

	assert.InDelta(t, 55900, s.Price, 0.001)
	assert.InDelta(t, 5.59, s.Score, 0.001)
	assert.False(t, s.Submit)
	assert.Contains(t, s.Advice, "review")
}

func TestSuggestThresholdIsExclusive(t *testing.T) {
	// A score of exactly 7 is still a review, not a submit.
	s := pricing.Suggest(70, 100000)

	assert.InDelta(t, 7, s.Score, 0.001)
	assert.False(t, s.Submit)
}

func TestSuggestClampsOutOfRangeMatch(t *testing.T) {
	assert.InDelta(t, 0, pricing.Suggest(-20, 100000).Price, 0.001)
	assert.InDelta(t, 100000, pricing.Suggest(140, 100000).Price, 0.001)
}
