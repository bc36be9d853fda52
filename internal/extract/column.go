package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/orchestrarfp/gotender/internal/domain"
)

// columnLayout maps fixed cell positions to record fields for one portal or
// portal family. A value of -1 means the field is not present in the layout.
type columnLayout struct {
	name     string
	markers  []string
	minCells int
	title    int
	number   int
	buyer    int
	deadline int
	location int
	// linkCell is the cell searched for the document hyperlink.
	linkCell int
}

// builtinStrategies returns the known portal layouts in dispatch order.
// Specific portals come before the shared e-procurement family layout so a
// portal matching both gets its own column mapping.
func builtinStrategies() []Strategy {
	return []Strategy{
		// etenders.gov.in: serial, published, closing, opening, title/ref,
		// organisation. The title cell carries both the tender title and the
		// bracketed reference number, plus the detail link.
		&columnLayout{
			name:     "etenders",
			markers:  []string{"etenders.gov.in"},
			minCells: 6,
			title:    4,
			number:   4,
			buyer:    5,
			deadline: 2,
			location: -1,
			linkCell: 4,
		},
		// CPPP aggregated listing: published, closing, opening, title/ref,
		// organisation, location.
		&columnLayout{
			name:     "cppp",
			markers:  []string{"eprocure.gov.in/cppp"},
			minCells: 6,
			title:    3,
			number:   3,
			buyer:    4,
			deadline: 1,
			location: 5,
			linkCell: 3,
		},
		// Shared NIC e-procurement family layout used by the state portals.
		&columnLayout{
			name:     "eproc-family",
			markers:  []string{"eprocure", "nicgep", "tender"},
			minCells: 5,
			title:    2,
			number:   2,
			buyer:    3,
			deadline: 1,
			location: -1,
			linkCell: 2,
		},
	}
}

// Name identifies the layout in logs.
func (l *columnLayout) Name() string {
	return l.name
}

// Matches reports whether the portal identifier contains one of the layout's
// marker fragments.
func (l *columnLayout) Matches(portalID string) bool {
	lowered := strings.ToLower(portalID)
	for _, marker := range l.markers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// Extract reads the record out of fixed cell positions. Rows with fewer
// cells than the layout expects (header rows, spacer rows, captions) yield
// no record so dispatch can fall through to the next strategy.
func (l *columnLayout) Extract(row *goquery.Selection, portalID string) (*domain.TenderRecord, bool) {
	cells := row.Find("td")
	if cells.Length() < l.minCells {
		return nil, false
	}

	cellText := func(idx int) string {
		if idx < 0 {
			return ""
		}
		return cleanText(cells.Eq(idx).Text())
	}

	title, number := splitTitleRef(cellText(l.title))
	if title == "" {
		return nil, false
	}

	record := &domain.TenderRecord{
		Title:        title,
		Number:       number,
		Buyer:        cellText(l.buyer),
		Deadline:     cellText(l.deadline),
		Location:     cellText(l.location),
		Source:       portalID,
		DocumentLink: l.documentLink(cells, portalID),
	}

	if record.Number == "" {
		record.Number = domain.UnknownNumber
	}
	if record.Buyer == "" {
		record.Buyer = portalID
	}

	return record, true
}

// documentLink pulls the first hyperlink out of the layout's link cell and
// resolves it against the portal base URL.
func (l *columnLayout) documentLink(cells *goquery.Selection, portalID string) string {
	if l.linkCell < 0 {
		return ""
	}

	href, exists := cells.Eq(l.linkCell).Find("a[href]").First().Attr("href")
	if !exists {
		return ""
	}

	return resolveLink(portalID, href)
}

// splitTitleRef separates "Title [Ref-No]" cells into their parts. Portals
// in the NIC family append the reference number in square brackets.
func splitTitleRef(text string) (title, number string) {
	open := strings.LastIndex(text, "[")
	closing := strings.LastIndex(text, "]")

	if open >= 0 && closing > open {
		title = cleanText(text[:open])
		number = cleanText(text[open+1 : closing])
		return title, number
	}

	return cleanText(text), ""
}

// resolveLink turns a possibly relative href into an absolute URL using the
// portal identifier as the base.
func resolveLink(portalID, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}

	base, err := url.Parse(portalID)
	if err != nil {
		return href
	}

	return base.ResolveReference(ref).String()
}

// cleanText collapses internal whitespace runs and trims the result.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
