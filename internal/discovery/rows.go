package discovery

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
)

// selectRows finds the row-like structural elements in a portal page.
// Table rows are preferred; list items are the fallback for portals that
// publish their listings as bulleted notices.
func selectRows(body []byte) ([]*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	rows := collect(doc.Find("table tr"))
	if len(rows) > 0 {
		return rows, nil
	}

	return collect(doc.Find("li")), nil
}

// collect materializes a selection into per-element selections.
func collect(sel *goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}
