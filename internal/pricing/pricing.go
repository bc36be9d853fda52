// Package pricing synthesizes a quoted price and a submit/review
// recommendation from a relevance match percentage.
package pricing

import "math"

// submitThreshold is the 0-10 score above which submitting is recommended.
const submitThreshold = 7

// Recommendation texts surfaced to the user.
const (
	adviceSubmit = "Great match! Submitting this offer is recommended."
	adviceReview = "This offer is not a strong match. Please review with your team before submitting."
)

// Suggestion is the synthesized pricing outcome.
type Suggestion struct {
	// Price is the suggested quote, scaled from the base price by the match.
	Price float64 `json:"price"`
	// Score rates the fit on a 0-10 scale.
	Score float64 `json:"score"`
	// Advice is the qualitative recommendation.
	Advice string `json:"advice"`
	// Submit reports whether the advice is to submit the offer.
	Submit bool `json:"submit"`
}

// Suggest derives a price suggestion from the match percentage (0-100) and
// the base per-item price. Out-of-range percentages are clamped.
func Suggest(matchPercent, basePrice float64) Suggestion {
	factor := clamp(matchPercent, 0, 100) / 100

	score := math.Round(10*factor*100) / 100

	s := Suggestion{
		Price: math.Floor(basePrice * factor),
		Score: score,
	}

	if score > submitThreshold {
		s.Advice = adviceSubmit
		s.Submit = true
	} else {
		s.Advice = adviceReview
	}

	return s
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
