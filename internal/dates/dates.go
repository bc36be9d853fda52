// Package dates normalizes the loosely formatted deadline strings found on
// tender portals. Parsing is best-effort: a string either yields a timestamp
// or it does not, and callers treat "does not" as an ordinary outcome.
package dates

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// layouts is the ordered list of known deadline formats. Portals in scope
// write day-first dates with a handful of separator and month-name variants;
// the formats are mutually exclusive in practice, so order carries no
// priority beyond being exhaustive.
var layouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	"02-Jan-2006",
	"02 Jan 2006",
	"02 January 2006",
	"2 Jan 2006",
	"02-01-06",
	"02/01/06",
}

// fallbackLayouts are retried against a date-shaped substring found by
// datePattern when no full layout matched.
var fallbackLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
}

// datePattern matches a DD[-/.]MM[-/.]YYYY shaped substring anywhere in the
// text, e.g. "Closing on 15/10/2026 at 3 PM".
var datePattern = regexp.MustCompile(`\d{1,2}[-/.]\d{1,2}[-/.]\d{4}`)

// Parse attempts to interpret text as a calendar date. The boolean reports
// whether any known layout (or the substring fallback) matched. Empty or
// whitespace-only input never matches.
func Parse(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, true
		}
	}

	return parseSubstring(text)
}

// parseSubstring is the last-resort pass: pull a date-shaped substring out
// of free text and retry the separator variants against it alone.
func parseSubstring(text string) (time.Time, bool) {
	match := datePattern.FindString(text)
	if match == "" {
		return time.Time{}, false
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, match, time.Local); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// FindDateLike returns the first date-shaped substring in text, if any. The
// generic extraction fallback uses this to pick a deadline out of flattened
// row text.
func FindDateLike(text string) (string, bool) {
	match := datePattern.FindString(text)
	return match, match != ""
}

// WithinWindow reports whether text parses to a date d satisfying
// now <= d <= now+days at day granularity. Unparseable input is outside the
// window by definition.
func WithinWindow(text string, now time.Time, days int) bool {
	parsed, ok := Parse(text)
	if !ok {
		return false
	}

	today := truncateToDay(now)
	deadline := truncateToDay(parsed)
	upper := today.AddDate(0, 0, days)

	return !deadline.Before(today) && !deadline.After(upper)
}

// DaysUntil returns the whole days from now until the date in text, at day
// granularity. The boolean mirrors Parse.
func DaysUntil(text string, now time.Time) (int, bool) {
	parsed, ok := Parse(text)
	if !ok {
		return 0, false
	}

	return daysBetween(now, parsed), true
}

// daysBetween counts whole days between the two instants at day granularity.
// Rounding absorbs the 23- and 25-hour civil days around DST transitions.
func daysBetween(from, to time.Time) int {
	diff := truncateToDay(to).Sub(truncateToDay(from))

	return int(math.Round(diff.Hours() / 24))
}

// truncateToDay drops the time-of-day component in the local zone.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
