package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equiprent-core/internal/domain"
)

func mustRange(t *testing.T, start, end time.Time) domain.DateRange {
	t.Helper()
	r, err := domain.NewDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewDateRange(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Valid range", func(t *testing.T) {
		r, err := domain.NewDateRange(start, start.AddDate(0, 0, 7))
		require.NoError(t, err)
		assert.Equal(t, start, r.Start())
	})

	t.Run("Start equals end", func(t *testing.T) {
		_, err := domain.NewDateRange(start, start)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	})

	t.Run("Start after end", func(t *testing.T) {
		_, err := domain.NewDateRange(start.AddDate(0, 0, 1), start)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	})
}

func TestDateRangeOverlaps(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r1 := mustRange(t, start, start.AddDate(0, 0, 7))

	t.Run("Range overlaps itself", func(t *testing.T) {
		assert.True(t, r1.Overlaps(r1))
	})

	t.Run("Partial overlap", func(t *testing.T) {
		r2 := mustRange(t, start.AddDate(0, 0, 5), start.AddDate(0, 0, 10))
		assert.True(t, r1.Overlaps(r2))
		assert.True(t, r2.Overlaps(r1))
	})

	t.Run("Adjacent ranges do not overlap", func(t *testing.T) {
		r2 := mustRange(t, start.AddDate(0, 0, 7), start.AddDate(0, 0, 14))
		assert.False(t, r1.Overlaps(r2))
		assert.False(t, r2.Overlaps(r1))
	})

	t.Run("Disjoint ranges do not overlap", func(t *testing.T) {
		r2 := mustRange(t, start.AddDate(0, 0, 10), start.AddDate(0, 0, 12))
		assert.False(t, r1.Overlaps(r2))
	})
}

func TestDateRangeContains(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := mustRange(t, start, start.AddDate(0, 0, 7))

	assert.True(t, r.Contains(start), "start is included")
	assert.True(t, r.Contains(start.AddDate(0, 0, 3)))
	assert.False(t, r.Contains(start.AddDate(0, 0, 7)), "end is excluded")
	assert.False(t, r.Contains(start.Add(-time.Second)))
}

func TestDateRangeDayCount(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Whole days", func(t *testing.T) {
		r := mustRange(t, start, start.AddDate(0, 0, 7))
		assert.Equal(t, 7, r.DayCount())
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		r := mustRange(t, start, start.Add(25*time.Hour))
		assert.Equal(t, 2, r.DayCount())
	})

	t.Run("Less than one day", func(t *testing.T) {
		r := mustRange(t, start, start.Add(time.Hour))
		assert.Equal(t, 1, r.DayCount())
	})
}

func TestDateRangeTemporalQueries(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := mustRange(t, start, start.AddDate(0, 0, 7))

	t.Run("Before start", func(t *testing.T) {
		now := start.Add(-time.Hour)
		assert.False(t, r.HasStarted(now))
		assert.False(t, r.HasEnded(now))
		assert.False(t, r.IsActive(now))
	})

	t.Run("At start", func(t *testing.T) {
		assert.True(t, r.HasStarted(start))
		assert.True(t, r.IsActive(start))
	})

	t.Run("Inside", func(t *testing.T) {
		now := start.AddDate(0, 0, 3)
		assert.True(t, r.IsActive(now))
		assert.False(t, r.HasEnded(now))
	})

	t.Run("At end", func(t *testing.T) {
		end := start.AddDate(0, 0, 7)
		assert.True(t, r.HasEnded(end))
		assert.False(t, r.IsActive(end))
	})
}

func TestDateRangeExtend(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := mustRange(t, start, start.AddDate(0, 0, 7))

	t.Run("Extends the end only", func(t *testing.T) {
		extended, err := r.Extend(5)
		require.NoError(t, err)
		assert.Equal(t, start, extended.Start())
		assert.Equal(t, start.AddDate(0, 0, 12), extended.End())
		// original is untouched
		assert.Equal(t, start.AddDate(0, 0, 7), r.End())
	})

	t.Run("Zero days fails", func(t *testing.T) {
		_, err := r.Extend(0)
		assert.ErrorIs(t, err, domain.ErrNonPositiveDays)
	})

	t.Run("Negative days fails", func(t *testing.T) {
		_, err := r.Extend(-3)
		assert.ErrorIs(t, err, domain.ErrNonPositiveDays)
	})
}

func TestDateRangeEqual(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r1 := mustRange(t, start, start.AddDate(0, 0, 7))
	r2 := mustRange(t, start, start.AddDate(0, 0, 7))
	r3 := mustRange(t, start, start.AddDate(0, 0, 8))

	assert.True(t, r1.Equal(r2))
	assert.False(t, r1.Equal(r3))
}
