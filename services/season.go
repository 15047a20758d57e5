package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Season string

const (
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
)

var allSeasons = []Season{SeasonSummer, SeasonAutumn, SeasonWinter, SeasonSpring}

// ClassifySeason maps a calendar date to its season by month.
func ClassifySeason(date time.Time) Season {
	switch date.Month() {
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	default:
		return SeasonAutumn
	}
}

// SeasonTable holds the markup fraction per season (0.20 means +20%).
type SeasonTable map[Season]decimal.Decimal

func DefaultSeasonTable() SeasonTable {
	return SeasonTable{
		SeasonSummer: decimal.RequireFromString("0.20"),
		SeasonWinter: decimal.RequireFromString("0.10"),
		SeasonAutumn: decimal.Zero,
		SeasonSpring: decimal.Zero,
	}
}

// Markup returns the markup for season; seasons missing from the table have none.
func (t SeasonTable) Markup(season Season) decimal.Decimal {
	if m, ok := t[season]; ok {
		return m
	}
	return decimal.Zero
}

// ParseSeasonTable builds a table from configuration values such as
// {"summer": "0.20"}. Seasons left out keep their default markup.
func ParseSeasonTable(raw map[string]string) (SeasonTable, error) {
	table := DefaultSeasonTable()
	for key, value := range raw {
		season, ok := parseSeason(key)
		if !ok {
			return nil, fmt.Errorf("unknown season %q", key)
		}
		markup, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid markup for %s: %w", season, err)
		}
		if markup.IsNegative() {
			return nil, fmt.Errorf("markup for %s must not be negative", season)
		}
		table[season] = markup
	}
	return table, nil
}

func parseSeason(s string) (Season, bool) {
	for _, season := range allSeasons {
		if strings.EqualFold(string(season), strings.TrimSpace(s)) {
			return season, true
		}
	}
	return "", false
}
