// Package domain defines the core data types shared across the discovery pipeline.
package domain

import "strings"

// UnknownNumber is the placeholder for tenders whose portal-assigned
// identifier could not be extracted.
const UnknownNumber = "Unknown"

// dedupTitleLen is the number of title characters that participate in the
// deduplication key.
const dedupTitleLen = 80

// TenderRecord is the canonical unit of discovery: one procurement
// opportunity as captured from a portal. Deadline holds the raw text as
// scraped; normalization is re-derived at read time so ambiguous formats are
// never reparsed lossily.
type TenderRecord struct {
	Title        string  `json:"title"`
	Number       string  `json:"number"`
	Buyer        string  `json:"buyer"`
	Deadline     string  `json:"deadline"`
	DocumentLink string  `json:"document_link"`
	Location     string  `json:"location,omitempty"`
	Source       string  `json:"source"`
	Score        float64 `json:"score"`
}

// DedupKey identifies postings that describe the same tender within a
// discovery run. Same-tender postings with differently worded titles across
// portals are a known limitation of this heuristic.
type DedupKey struct {
	Number string
	Title  string
}

// Key returns the deduplication key for the record: the trimmed number plus
// the first 80 characters of the trimmed title.
func (t *TenderRecord) Key() DedupKey {
	title := []rune(t.Title)
	if len(title) > dedupTitleLen {
		title = title[:dedupTitleLen]
	}

	return DedupKey{
		Number: strings.TrimSpace(t.Number),
		Title:  strings.TrimSpace(string(title)),
	}
}

// Deduplicate collapses records that collide on their DedupKey, keeping the
// record with the higher score. Relative order of the survivors follows their
// first appearance.
func Deduplicate(records []TenderRecord) []TenderRecord {
	byKey := make(map[DedupKey]int, len(records))
	result := make([]TenderRecord, 0, len(records))

	for _, record := range records {
		key := record.Key()

		idx, seen := byKey[key]
		if !seen {
			byKey[key] = len(result)
			result = append(result, record)
			continue
		}

		if record.Score > result[idx].Score {
			result[idx] = record
		}
	}

	return result
}
