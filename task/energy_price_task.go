package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/angas/cheapslots-go/hours"
	"github.com/angas/cheapslots-go/slice"
	"github.com/angas/cheapslots-go/types"
)

// OrderProviders returns the primary provider followed by the fallbacks,
// all looked up by name in available.
func OrderProviders(available []types.EnergyPriceProvider, primary string, fallbacks []string) ([]types.EnergyPriceProvider, error) {
	names := append([]string{primary}, fallbacks...)
	ordered := make([]types.EnergyPriceProvider, 0, len(names))
	for _, name := range names {
		provider, ok := slice.Find(available, func(p types.EnergyPriceProvider) bool {
			return p.Name() == name
		})
		if !ok {
			return nil, fmt.Errorf("energy price provider %q is not available", name)
		}
		ordered = append(ordered, provider)
	}
	return ordered, nil
}

// fetchQuotes collects quotes for today and the configured days ahead, in
// date order. If no provider can deliver today's prices the result is empty.
func (p *Pipeline) fetchQuotes(ctx context.Context, now time.Time) ([]types.PriceQuote, error) {
	today := hours.StartOfDay(now, hours.DisplayLocation())

	quotes := make([]types.PriceQuote, 0)
	for day := 0; day <= p.opts.DaysAhead; day++ {
		date := today.AddDate(0, 0, day)
		prices, err := p.fetchDay(ctx, date)
		if errors.Is(err, types.ErrMalformedRecord) {
			return nil, err
		}
		if err != nil {
			if day == 0 {
				p.logger.Error("energy price error, no prices fetched", slog.Any("error", err))
			} else {
				p.logger.Warn("energy price error, skipping remaining days",
					slog.String("date", hours.FormatDate(date)), slog.Any("error", err))
			}
			break
		}
		quotes = append(quotes, prices...)
	}
	return quotes, nil
}

// fetchDay asks each provider in turn and returns the first answer.
func (p *Pipeline) fetchDay(ctx context.Context, date time.Time) ([]types.PriceQuote, error) {
	var errs []error
	for _, provider := range p.providers {
		prices, err := provider.GetEnergyPrices(ctx, date)
		if err == nil {
			p.logger.Debug("energy prices fetched",
				slog.String("provider", provider.Name()),
				slog.String("date", hours.FormatDate(date)),
				slog.Int("noOfQuotes", len(prices)))
			return prices, nil
		}
		if errors.Is(err, types.ErrMalformedRecord) {
			return nil, fmt.Errorf("provider %s: %w", provider.Name(), err)
		}
		p.logger.Warn("energy price provider failed",
			slog.String("provider", provider.Name()), slog.Any("error", err))
		errs = append(errs, fmt.Errorf("provider %s: %w", provider.Name(), err))
	}
	return nil, errors.Join(errs...)
}
