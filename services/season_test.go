package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySeason(t *testing.T) {
	cases := map[string]Season{
		"2025-01-15": SeasonWinter,
		"2025-02-28": SeasonWinter,
		"2025-03-01": SeasonSpring,
		"2025-05-31": SeasonSpring,
		"2025-06-01": SeasonSummer,
		"2025-08-31": SeasonSummer,
		"2025-09-01": SeasonAutumn,
		"2025-11-30": SeasonAutumn,
		"2025-12-01": SeasonWinter,
	}
	for date, want := range cases {
		assert.Equal(t, want, ClassifySeason(day(date)), date)
	}
}

func TestParseSeasonTable(t *testing.T) {
	table, err := ParseSeasonTable(map[string]string{"summer": "0.35", "Spring": "0.05"})
	require.NoError(t, err)
	assert.True(t, table.Markup(SeasonSummer).Equal(decimal.RequireFromString("0.35")))
	assert.True(t, table.Markup(SeasonSpring).Equal(decimal.RequireFromString("0.05")))
	assert.True(t, table.Markup(SeasonWinter).Equal(decimal.RequireFromString("0.10")), "unset seasons keep defaults")

	_, err = ParseSeasonTable(map[string]string{"monsoon": "0.1"})
	assert.Error(t, err)

	_, err = ParseSeasonTable(map[string]string{"winter": "-0.1"})
	assert.Error(t, err)

	_, err = ParseSeasonTable(map[string]string{"winter": "abc"})
	assert.Error(t, err)
}

func TestSeasonTableMissingSeasonHasNoMarkup(t *testing.T) {
	table := SeasonTable{SeasonSummer: decimal.RequireFromString("0.5")}
	assert.True(t, table.Markup(SeasonAutumn).IsZero())
}
