package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestrarfp/gotender/internal/dates"
)

func TestParseKnownLayouts(t *testing.T) {
	want := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		text string
	}{
		{"day month year dashes", "15-10-2026"},
		{"day month year slashes", "15/10/2026"},
		{"iso", "2026-10-15"},
		{"month name short", "15-Oct-2026"},
		{"month name spaced", "15 Oct 2026"},
		{"month name full", "15 October 2026"},
		{"surrounding whitespace", "  15-10-2026  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dates.Parse(tt.text)
			require.True(t, ok)
			assert.True(t, want.Equal(got), "got %v", got)
		})
	}
}

func TestParseTwoDigitYear(t *testing.T) {
	got, ok := dates.Parse("15-10-26")
	require.True(t, ok)
	assert.Equal(t, 2026, got.Year())
}

func TestParseSubstringFallback(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"embedded slashes", "Closing on 15/10/2026 at 3 PM sharp"},
		{"embedded dots", "Last date: 15.10.2026."},
		{"embedded dashes", "Submit before 15-10-2026 IST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dates.Parse(tt.text)
			require.True(t, ok)
			assert.Equal(t, 15, got.Day())
			assert.Equal(t, time.October, got.Month())
			assert.Equal(t, 2026, got.Year())
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"prose", "as soon as possible"},
		{"digits only", "20261015999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := dates.Parse(tt.text)
			assert.False(t, ok)
		})
	}
}

func TestWithinWindow(t *testing.T) {
	now := time.Date(2026, time.March, 1, 14, 30, 0, 0, time.Local)
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format("02-01-2006")
	}

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"today is inside", day(0), true},
		{"mid window", day(45), true},
		{"window edge inclusive", day(90), true},
		{"past the window", day(91), false},
		{"far future", day(120), false},
		{"yesterday", day(-1), false},
		{"unparseable", "whenever", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dates.WithinWindow(tt.text, now, 90))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.March, 1, 23, 55, 0, 0, time.Local)

	got, ok := dates.DaysUntil(now.AddDate(0, 0, 45).Format("02-01-2006"), now)
	require.True(t, ok)
	assert.Equal(t, 45, got)

	_, ok = dates.DaysUntil("no date here", now)
	assert.False(t, ok)
}

func TestFindDateLike(t *testing.T) {
	got, ok := dates.FindDateLike("deadline 05/06/2026 noted in row")
	require.True(t, ok)
	assert.Equal(t, "05/06/2026", got)

	_, ok = dates.FindDateLike("no dates at all")
	assert.False(t, ok)
}
