package services

import (
	"testing"
	"time"

	"hotel-booking/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 string
		want           bool
	}{
		{"back to back", "2025-07-01", "2025-07-04", "2025-07-04", "2025-07-06", false},
		{"back to back reversed", "2025-07-04", "2025-07-06", "2025-07-01", "2025-07-04", false},
		{"one shared night", "2025-07-01", "2025-07-04", "2025-07-03", "2025-07-05", true},
		{"contained", "2025-07-01", "2025-07-10", "2025-07-03", "2025-07-05", true},
		{"identical", "2025-07-01", "2025-07-04", "2025-07-01", "2025-07-04", true},
		{"disjoint", "2025-07-01", "2025-07-02", "2025-07-05", "2025-07-06", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(day(tt.a1), day(tt.a2), day(tt.b1), day(tt.b2)))
		})
	}
}

func TestOverlapsIgnoresTimeOfDay(t *testing.T) {
	checkOut := time.Date(2025, 7, 4, 11, 0, 0, 0, time.UTC)
	checkIn := time.Date(2025, 7, 4, 15, 0, 0, 0, time.UTC)
	assert.False(t, Overlaps(day("2025-07-01"), checkOut, checkIn, day("2025-07-06")))
}

func TestValidateStay(t *testing.T) {
	ci, co, err := ValidateStay(time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC), day("2025-07-03"))
	require.NoError(t, err)
	assert.Equal(t, day("2025-07-01"), ci)
	assert.Equal(t, day("2025-07-03"), co)

	_, _, err = ValidateStay(day("2025-07-03"), day("2025-07-03"))
	assert.ErrorIs(t, err, apperror.ErrInvalidDateRange)

	_, _, err = ValidateStay(day("2025-07-03"), day("2025-07-01"))
	assert.ErrorIs(t, err, apperror.ErrInvalidDateRange)
}

func TestNightsBetween(t *testing.T) {
	assert.Equal(t, 3, NightsBetween(day("2025-07-01"), day("2025-07-04")))
	assert.Equal(t, 1, NightsBetween(day("2025-07-01"), day("2025-07-01")))
	assert.Equal(t, -3, DaysBetween(day("2025-07-04"), day("2025-07-01")))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-07-01 ")
	require.NoError(t, err)
	assert.Equal(t, day("2025-07-01"), d)

	d, err = ParseDate("2025-07-01T22:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, day("2025-07-01"), d)

	_, err = ParseDate("01/07/2025")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
