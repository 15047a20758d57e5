package services

import (
	"fmt"
	"time"

	"hotel-booking/apperror"

	"github.com/shopspring/decimal"
)

// PriceQuote is the breakdown behind a computed stay price.
type PriceQuote struct {
	Season      Season          `json:"season"`
	Markup      decimal.Decimal `json:"markup"`
	Nights      int             `json:"nights"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
	Total       decimal.Decimal `json:"total"`
}

type PricingCalculator struct {
	Seasons SeasonTable
}

func NewPricingCalculator(seasons SeasonTable) *PricingCalculator {
	if seasons == nil {
		seasons = DefaultSeasonTable()
	}
	return &PricingCalculator{Seasons: seasons}
}

// Quote prices the whole stay at the check-in date's season rate.
func (p *PricingCalculator) Quote(basePricePerNight decimal.Decimal, checkIn, checkOut time.Time) (PriceQuote, error) {
	if !basePricePerNight.IsPositive() {
		return PriceQuote{}, fmt.Errorf("%w: base price %s", apperror.ErrInvalidPrice, basePricePerNight.String())
	}
	nights := NightsBetween(checkIn, checkOut)
	if nights < 1 {
		return PriceQuote{}, fmt.Errorf("%w: %d nights", apperror.ErrInvalidPrice, nights)
	}

	season := ClassifySeason(DateOnly(checkIn))
	markup := p.Seasons.Markup(season)
	nightly := basePricePerNight.Mul(decimal.NewFromInt(1).Add(markup))
	total := nightly.Mul(decimal.NewFromInt(int64(nights))).Round(2)

	return PriceQuote{
		Season:      season,
		Markup:      markup,
		Nights:      nights,
		NightlyRate: nightly.Round(2),
		Total:       total,
	}, nil
}

func (p *PricingCalculator) ComputePrice(basePricePerNight decimal.Decimal, checkIn, checkOut time.Time) (decimal.Decimal, error) {
	q, err := p.Quote(basePricePerNight, checkIn, checkOut)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Total, nil
}
