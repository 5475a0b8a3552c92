package utils

import (
	"time"

	"rentloop-backend/internal/domain"
)

// DateLayout is the calendar date format used everywhere: stored columns,
// API payloads and overlap comparisons. ISO dates compare correctly as
// plain strings, which the SQL cascades rely on.
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a UTC midnight time
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, domain.ErrInvalidRange
	}
	return t.UTC(), nil
}

// DaysInclusive returns the number of calendar days covered by [start, end]
// counting both endpoints, so start == end is one day.
func DaysInclusive(startDate, endDate string) (int, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, err
	}
	if end.Before(start) {
		return 0, domain.ErrInvalidRange
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// ExpandRange produces every calendar date from start to end inclusive, in
// ascending order. end < start is an error; start == end yields one date.
func ExpandRange(startDate, endDate string) ([]string, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// RangesOverlap is the single overlap predicate used by every call site:
// availability pre-checks, the payment-confirmation cascade and the cancel
// reopen cascade all use this exact strict-inequality comparison (the SQL
// cascades mirror it with < and >). Inputs must be yyyy-mm-dd strings.
func RangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// DaysUntil returns the whole days between UTC midnight of now and the given
// start date, floored at 0.
func DaysUntil(startDate string, now time.Time) (int, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, err
	}
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	days := int(start.Sub(today).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, nil
}
