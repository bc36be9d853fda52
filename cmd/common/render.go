package common

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/orchestrarfp/gotender/internal/domain"
)

// renderTitleLimit keeps long tender titles from wrapping the table.
const renderTitleLimit = 60

// RenderTenderTable writes the records to stdout as a formatted table.
func RenderTenderTable(records []domain.TenderRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Score", "Title", "Number", "Buyer", "Deadline", "Source"})

	for i := range records {
		r := &records[i]
		t.AppendRow(table.Row{
			r.Score,
			truncateTitle(r.Title),
			r.Number,
			r.Buyer,
			r.Deadline,
			r.Source,
		})
	}

	t.Render()
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= renderTitleLimit {
		return title
	}
	return string(runes[:renderTitleLimit]) + "..."
}
