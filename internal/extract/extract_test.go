package extract_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestrarfp/gotender/internal/domain"
	"github.com/orchestrarfp/gotender/internal/extract"
	"github.com/orchestrarfp/gotender/internal/logger"
)

const etendersPortal = "https://etenders.gov.in/eprocure/app"

// firstRow parses an HTML fragment and returns its first table row.
func firstRow(t *testing.T, html string) *goquery.Selection {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	row := doc.Find("tr").First()
	require.Positive(t, row.Length())

	return row
}

func etendersRow() string {
	return `<table><tr>
		<td>1.</td>
		<td>01-09-2026</td>
		<td>15-10-2026</td>
		<td>16-10-2026</td>
		<td><a href="/eprocure/tender/4021">Supply of Waterproof Primer for Coastal Depots [2026_PWD_4021_1]</a></td>
		<td>Public Works Department</td>
	</tr></table>`
}

func TestExtractKnownPortalColumns(t *testing.T) {
	e := extract.NewExtractor(logger.NewNoOp())

	record, ok := e.Extract(firstRow(t, etendersRow()), etendersPortal)

	require.True(t, ok)
	assert.Equal(t, "Supply of Waterproof Primer for Coastal Depots", record.Title)
	assert.Equal(t, "2026_PWD_4021_1", record.Number)
	assert.Equal(t, "Public Works Department", record.Buyer)
	assert.Equal(t, "15-10-2026", record.Deadline)
	assert.Equal(t, "https://etenders.gov.in/eprocure/tender/4021", record.DocumentLink)
	assert.Equal(t, etendersPortal, record.Source)
}

func TestExtractShortRowFallsThroughToGeneric(t *testing.T) {
	html := `<table><tr>
		<td>Title: Annual rate contract for electrical cable supply. Closing 20/11/2026</td>
	</tr></table>`

	e := extract.NewExtractor(logger.NewNoOp())

	record, ok := e.Extract(firstRow(t, html), etendersPortal)

	require.True(t, ok)
	assert.Equal(t, "Annual rate contract for electrical cable supply", record.Title)
	assert.Equal(t, domain.UnknownNumber, record.Number)
	assert.Equal(t, "20/11/2026", record.Deadline)
}

func TestGenericFallbackUnknownPortal(t *testing.T) {
	html := `<ul><li>
		Title: Procurement of interior emulsion paint, 20L cans; due 05-12-2026
		<a href="docs/spec.pdf">spec</a>
	</li></ul>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	e := extract.NewExtractor(logger.NewNoOp())

	record, ok := e.Extract(doc.Find("li").First(), "https://city-notices.example.org/tenders/")

	require.True(t, ok)
	assert.Equal(t, "Procurement of interior emulsion paint, 20L cans", record.Title)
	assert.Equal(t, domain.UnknownNumber, record.Number)
	assert.Equal(t, "https://city-notices.example.org/tenders/", record.Buyer)
	assert.Equal(t, "05-12-2026", record.Deadline)
	assert.Equal(t, "https://city-notices.example.org/tenders/docs/spec.pdf", record.DocumentLink)
}

func TestGenericTruncatesUnlabelledTitle(t *testing.T) {
	long := strings.Repeat("supply of assorted hardware items ", 6)
	html := "<table><tr><td>" + long + "</td></tr></table>"

	e := extract.NewExtractor(logger.NewNoOp())

	record, ok := e.Extract(firstRow(t, html), "https://unknown.example.com")

	require.True(t, ok)
	assert.True(t, strings.HasSuffix(record.Title, "..."), "title %q", record.Title)
	assert.LessOrEqual(t, len(record.Title), 83)
	assert.Empty(t, record.Deadline)
}

func TestExtractEmptyRowYieldsNothing(t *testing.T) {
	e := extract.NewExtractor(logger.NewNoOp())

	_, ok := e.Extract(firstRow(t, "<table><tr><td> </td></tr></table>"), "https://unknown.example.com")

	assert.False(t, ok)
}

func TestExtractMalformedKnownPortalRows(t *testing.T) {
	// Structures that break the expected column layout must degrade, never
	// propagate a failure.
	rows := []string{
		`<table><tr></tr></table>`,
		`<table><tr><td></td><td></td><td></td><td></td><td></td><td></td></tr></table>`,
		`<table><tr><th>Published</th><th>Closing</th><th>Opening</th><th>Title</th><th>Org</th><th>Loc</th></tr></table>`,
		`<table><tr><td>1</td><td>x</td><td>y</td><td>z</td><td>[]</td><td></td></tr></table>`,
	}

	e := extract.NewExtractor(logger.NewNoOp())

	for _, html := range rows {
		record, ok := e.Extract(firstRow(t, html), etendersPortal)
		if ok {
			// Generic fallback may still produce a record; it must at least
			// be well-formed.
			assert.NotEmpty(t, record.Title)
		}
	}
}

// panicStrategy always claims the portal and then panics.
type panicStrategy struct{}

func (panicStrategy) Name() string          { return "panic" }
func (panicStrategy) Matches(string) bool   { return true }
func (panicStrategy) Extract(*goquery.Selection, string) (*domain.TenderRecord, bool) {
	panic("boom")
}

func TestExtractAbsorbsStrategyPanic(t *testing.T) {
	e := extract.NewEmptyExtractor(logger.NewNoOp())
	e.Register(panicStrategy{})

	record, ok := e.Extract(firstRow(t, etendersRow()), etendersPortal)

	assert.False(t, ok)
	assert.Nil(t, record)
}
