package services

import (
	"fmt"
	"strings"
	"time"

	"hotel-booking/apperror"
)

const DateLayout = "2006-01-02"

// DateOnly drops the time of day, keeping t's calendar date as UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from checkIn to checkOut (negative when reversed).
func DaysBetween(checkIn, checkOut time.Time) int {
	return int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
}

// NightsBetween is DaysBetween floored at one night.
func NightsBetween(checkIn, checkOut time.Time) int {
	n := DaysBetween(checkIn, checkOut)
	if n < 1 {
		return 1
	}
	return n
}

// Overlaps reports whether the half-open ranges [a1,a2) and [b1,b2) share a
// night. A check-out on day N and a check-in on day N do not overlap.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return DateOnly(a1).Before(DateOnly(b2)) && DateOnly(b1).Before(DateOnly(a2))
}

// ValidateStay normalizes both dates and requires checkOut after checkIn.
func ValidateStay(checkIn, checkOut time.Time) (time.Time, time.Time, error) {
	ci, co := DateOnly(checkIn), DateOnly(checkOut)
	if !co.After(ci) {
		return ci, co, fmt.Errorf("%w: %s -> %s", apperror.ErrInvalidDateRange, ci.Format(DateLayout), co.Format(DateLayout))
	}
	return ci, co, nil
}

// ParseDate accepts "2006-01-02" or RFC3339.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", apperror.ErrInvalidInput, raw)
	}
	return DateOnly(t), nil
}
