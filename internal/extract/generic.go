package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/orchestrarfp/gotender/internal/dates"
	"github.com/orchestrarfp/gotender/internal/domain"
)

const (
	// genericTitleMax caps the flattened-text title when no label is found.
	genericTitleMax = 80
	// genericMinText is the minimum flattened length worth treating as a row.
	genericMinText = 10
)

// titleLabelPattern finds a "Title:"-style label followed by 10-200
// characters up to a sentence delimiter.
var titleLabelPattern = regexp.MustCompile(`(?i)title\s*[:\-]\s*([^.;|\n]{10,200})`)

// genericStrategy is the free-text fallback for portals without a known
// layout. It accepts every portal and works off the row's flattened text.
type genericStrategy struct{}

// Name identifies the strategy in logs.
func (g *genericStrategy) Name() string {
	return "generic"
}

// Matches always reports true; the generic strategy is registered last.
func (g *genericStrategy) Matches(string) bool {
	return true
}

// Extract builds a best-effort record from the row's text content: a
// labelled or truncated title, any date-shaped substring as the deadline,
// and the first hyperlink as the document link.
func (g *genericStrategy) Extract(row *goquery.Selection, portalID string) (*domain.TenderRecord, bool) {
	text := cleanText(row.Text())
	if len(text) < genericMinText {
		return nil, false
	}

	record := &domain.TenderRecord{
		Title:  genericTitle(text),
		Number: domain.UnknownNumber,
		Buyer:  portalID,
		Source: portalID,
	}

	if deadline, ok := dates.FindDateLike(text); ok {
		record.Deadline = deadline
	}

	if href, exists := row.Find("a[href]").First().Attr("href"); exists {
		record.DocumentLink = resolveLink(portalID, href)
	}

	return record, true
}

// genericTitle prefers a labelled title; otherwise it truncates the
// flattened text with an ellipsis marker.
func genericTitle(text string) string {
	if m := titleLabelPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	runes := []rune(text)
	if len(runes) <= genericTitleMax {
		return text
	}

	return strings.TrimSpace(string(runes[:genericTitleMax])) + "..."
}
