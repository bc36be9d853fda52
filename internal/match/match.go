// Package match scores a free-text query against the product catalog using
// TF-IDF cosine similarity. It is a collaborator of the discovery core: the
// core produces tender text, this package says how well the business's
// products fit it.
package match

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// topMatches is the number of best matches reported alongside the winner.
const topMatches = 3

// Entry pairs a catalog product with its match percentage.
type Entry struct {
	Product string  `json:"product"`
	Percent float64 `json:"percent"`
}

// Result is the outcome of matching a query against the catalog.
type Result struct {
	// Best is the most relevant catalog entry.
	Best string `json:"best"`
	// BestPercent is Best's match percentage (0-100).
	BestPercent float64 `json:"best_percent"`
	// Top holds the best three matches in descending order.
	Top []Entry `json:"top"`
	// All maps every catalog entry to its match percentage.
	All map[string]float64 `json:"all"`
}

// Match compares the query with every catalog entry and returns the
// ranking. An empty query or catalog yields a zeroed result rather than an
// error; relevance simply is not established.
func Match(query string, catalog []string) Result {
	result := Result{All: make(map[string]float64, len(catalog))}
	if len(catalog) == 0 {
		return result
	}

	corpus := make([][]string, 0, len(catalog)+1)
	corpus = append(corpus, tokenize(query))
	for _, product := range catalog {
		corpus = append(corpus, tokenize(product))
	}

	vectors := vectorize(corpus)

	entries := make([]Entry, 0, len(catalog))
	for i, product := range catalog {
		percent := round2(cosine(vectors[0], vectors[i+1]) * 100)
		result.All[product] = percent
		entries = append(entries, Entry{Product: product, Percent: percent})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percent > entries[j].Percent
	})

	result.Best = entries[0].Product
	result.BestPercent = entries[0].Percent

	limit := topMatches
	if len(entries) < limit {
		limit = len(entries)
	}
	result.Top = entries[:limit]

	return result
}

// tokenize lowercases the text and splits it on non-alphanumeric runes.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// vectorize builds L2-normalized TF-IDF vectors for the corpus, with
// smoothed document frequencies so unseen terms never divide by zero.
func vectorize(corpus [][]string) []map[string]float64 {
	docCount := float64(len(corpus))

	df := make(map[string]float64)
	for _, doc := range corpus {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				df[term]++
				seen[term] = true
			}
		}
	}

	idf := make(map[string]float64, len(df))
	for term, freq := range df {
		idf[term] = math.Log((1+docCount)/(1+freq)) + 1
	}

	vectors := make([]map[string]float64, len(corpus))
	for i, doc := range corpus {
		vec := make(map[string]float64)
		for _, term := range doc {
			vec[term] += idf[term]
		}
		normalize(vec)
		vectors[i] = vec
	}

	return vectors
}

// normalize scales the vector to unit length in place.
func normalize(vec map[string]float64) {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	if sum == 0 {
		return
	}

	norm := math.Sqrt(sum)
	for term := range vec {
		vec[term] /= norm
	}
}

// cosine returns the dot product of two unit vectors.
func cosine(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}

	return dot
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
