package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidPeriod   = errors.New("range start must be before end")
	ErrNonPositiveDays = errors.New("day count must be positive")
)

const day = 24 * time.Hour

// DateRange is an immutable half-open time interval [start, end).
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange creates a DateRange, failing unless start < end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if !start.Before(end) {
		return DateRange{}, ErrInvalidPeriod
	}
	return DateRange{start: start, end: end}, nil
}

func (d DateRange) Start() time.Time {
	return d.start
}

func (d DateRange) End() time.Time {
	return d.end
}

// Overlaps reports whether the two ranges share any instant.
func (d DateRange) Overlaps(other DateRange) bool {
	return d.start.Before(other.end) && d.end.After(other.start)
}

// Contains reports whether t falls inside the half-open interval.
func (d DateRange) Contains(t time.Time) bool {
	return !t.Before(d.start) && t.Before(d.end)
}

// DayCount returns the range duration in days, rounded up.
func (d DateRange) DayCount() int {
	return int(math.Ceil(d.end.Sub(d.start).Hours() / 24))
}

// HasStarted reports whether the range has begun at now (start inclusive).
func (d DateRange) HasStarted(now time.Time) bool {
	return !now.Before(d.start)
}

// HasEnded reports whether the range is over at now (end exclusive).
func (d DateRange) HasEnded(now time.Time) bool {
	return !now.Before(d.end)
}

// IsActive reports whether now falls inside the range.
func (d DateRange) IsActive(now time.Time) bool {
	return d.HasStarted(now) && !d.HasEnded(now)
}

// Extend returns a new range with the same start and the end pushed out by
// the given number of days.
func (d DateRange) Extend(days int) (DateRange, error) {
	if days <= 0 {
		return DateRange{}, ErrNonPositiveDays
	}
	return DateRange{start: d.start, end: d.end.Add(time.Duration(days) * day)}, nil
}

func (d DateRange) Equal(other DateRange) bool {
	return d.start.Equal(other.start) && d.end.Equal(other.end)
}

func (d DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", d.start.Format(time.RFC3339), d.end.Format(time.RFC3339))
}
