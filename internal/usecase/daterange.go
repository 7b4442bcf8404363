package usecase

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/riskibarqy/football-dashboard/internal/domain/match"
)

// MaxMatchRangeDays is the widest window football-data accepts on /matches.
const MaxMatchRangeDays = 10

const defaultRangeDays = 7

var dateLayouts = []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// ParseDate accepts a calendar date or an RFC 3339 timestamp and returns it in UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// ClampDateRange keeps a match window inside what football-data accepts.
func ClampDateRange(fromRaw, toRaw string, now time.Time) match.DateRange {
	from, fromErr := ParseDate(fromRaw)
	to, toErr := ParseDate(toRaw)
	if fromErr != nil || toErr != nil {
		today := now.UTC()
		return match.DateRange{
			From:         FormatDate(today),
			To:           FormatDate(today.AddDate(0, 0, defaultRangeDays)),
			Adjusted:     true,
			OriginalDays: -1,
			Warning:      "Date validation failed, using default range: Invalid date format provided",
		}
	}

	if from.After(to) {
		return match.DateRange{
			From:         FormatDate(to),
			To:           FormatDate(from),
			Adjusted:     true,
			OriginalDays: 0,
			Warning:      "Date range was reversed (fromDate was after toDate)",
		}
	}

	days := int(math.Ceil(to.Sub(from).Hours() / 24))
	switch {
	case days > MaxMatchRangeDays:
		return match.DateRange{
			From:         FormatDate(from),
			To:           FormatDate(from.AddDate(0, 0, MaxMatchRangeDays)),
			Adjusted:     true,
			OriginalDays: days,
			Warning:      fmt.Sprintf("Date range reduced from %d days to %d days (API limit)", days, MaxMatchRangeDays),
		}
	case days == 0:
		return match.DateRange{
			From:         FormatDate(from),
			To:           FormatDate(from.AddDate(0, 0, 1)),
			Adjusted:     true,
			OriginalDays: 0,
			Warning:      "Extended single day to 1-day range for better results",
		}
	default:
		return match.DateRange{
			From:         FormatDate(from),
			To:           FormatDate(to),
			Adjusted:     false,
			OriginalDays: days,
		}
	}
}
