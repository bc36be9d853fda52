package discovery

import (
	"bytes"

	"github.com/mmcdole/gofeed"

	"github.com/orchestrarfp/gotender/internal/dates"
	"github.com/orchestrarfp/gotender/internal/domain"
	"github.com/orchestrarfp/gotender/internal/logger"
)

// feedRecords maps RSS/Atom feed items to tender records. Portals that
// publish a feed carry the deadline inside the item title or description,
// so both are scanned for a date-shaped substring.
func feedRecords(body []byte, portalID string, srcLog logger.Interface) []domain.TenderRecord {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		srcLog.Warn("parse feed failed", "error", err.Error())
		return nil
	}

	buyer := feed.Title
	if buyer == "" {
		buyer = portalID
	}

	records := make([]domain.TenderRecord, 0, len(feed.Items))

	for _, item := range feed.Items {
		if item == nil || item.Title == "" {
			continue
		}

		record := domain.TenderRecord{
			Title:        item.Title,
			Number:       domain.UnknownNumber,
			Buyer:        buyer,
			DocumentLink: item.Link,
			Source:       portalID,
		}

		if deadline, ok := dates.FindDateLike(item.Title + " " + item.Description); ok {
			record.Deadline = deadline
		}

		records = append(records, record)
	}

	return records
}
