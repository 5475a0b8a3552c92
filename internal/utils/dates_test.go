package utils

import (
	"testing"
	"time"

	"rentloop-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDaysInclusive(t *testing.T) {
	t.Run("SingleDay", func(t *testing.T) {
		days, err := DaysInclusive("2026-03-10", "2026-03-10")
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("Week", func(t *testing.T) {
		days, err := DaysInclusive("2026-03-01", "2026-03-07")
		assert.NoError(t, err)
		assert.Equal(t, 7, days)
	})

	t.Run("AcrossMonthBoundary", func(t *testing.T) {
		days, err := DaysInclusive("2026-02-27", "2026-03-02")
		assert.NoError(t, err)
		assert.Equal(t, 4, days)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		_, err := DaysInclusive("2026-03-10", "2026-03-09")
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := DaysInclusive("10-03-2026", "2026-03-12")
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})
}

func TestExpandRange(t *testing.T) {
	dates, err := ExpandRange("2026-01-30", "2026-02-02")
	assert.NoError(t, err)
	assert.Equal(t, []string{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"}, dates)

	_, err = ExpandRange("2026-02-02", "2026-01-30")
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"Disjoint", "2026-03-01", "2026-03-05", "2026-03-10", "2026-03-12", false},
		{"Nested", "2026-03-01", "2026-03-10", "2026-03-03", "2026-03-05", true},
		{"PartialOverlap", "2026-03-01", "2026-03-05", "2026-03-04", "2026-03-08", true},
		{"SharedBoundary", "2026-03-01", "2026-03-05", "2026-03-05", "2026-03-08", false},
		{"Identical", "2026-03-01", "2026-03-05", "2026-03-01", "2026-03-05", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, RangesOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	t.Run("FutureStart", func(t *testing.T) {
		days, err := DaysUntil("2026-03-17", now)
		assert.NoError(t, err)
		assert.Equal(t, 7, days)
	})

	t.Run("StartToday", func(t *testing.T) {
		days, err := DaysUntil("2026-03-10", now)
		assert.NoError(t, err)
		assert.Equal(t, 0, days)
	})

	t.Run("StartInPastFlooredAtZero", func(t *testing.T) {
		days, err := DaysUntil("2026-03-01", now)
		assert.NoError(t, err)
		assert.Equal(t, 0, days)
	})

	t.Run("TimeOfDayIgnored", func(t *testing.T) {
		// 23:59 is still the same calendar day.
		late := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
		days, err := DaysUntil("2026-03-11", late)
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})
}
