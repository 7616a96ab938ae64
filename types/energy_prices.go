package types

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is the price of energy during one interval, typically one hour.
type PriceQuote struct {
	Start time.Time
	End   time.Time
	Price decimal.Decimal // Price per kWh in the configured currency
}

// NewPriceQuote returns a quote, or an error wrapping ErrMalformedRecord
// when the interval is empty or reversed.
func NewPriceQuote(start, end time.Time, price decimal.Decimal) (PriceQuote, error) {
	q := PriceQuote{Start: start, End: end, Price: price}
	if err := q.Validate(); err != nil {
		return PriceQuote{}, err
	}
	return q, nil
}

func (q PriceQuote) Validate() error {
	if !q.Start.Before(q.End) {
		return fmt.Errorf("%w: interval %s - %s is not increasing",
			ErrMalformedRecord, q.Start.Format(time.RFC3339), q.End.Format(time.RFC3339))
	}
	return nil
}

func (q PriceQuote) Duration() time.Duration {
	return q.End.Sub(q.Start)
}

// EnergyPriceProvider returns the quotes published for the day that date
// falls in, ordered by start time.
type EnergyPriceProvider interface {
	Name() string
	GetEnergyPrices(ctx context.Context, date time.Time) ([]PriceQuote, error)
}
