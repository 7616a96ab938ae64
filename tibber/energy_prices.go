package tibber

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/angas/cheapslots-go/convert"
	"github.com/angas/cheapslots-go/hours"
	"github.com/angas/cheapslots-go/types"
)

type priceInfo struct {
	StartsAt string          `json:"startsAt"`
	Total    json.RawMessage `json:"total"`
}

type priceInfoResponse struct {
	CurrentSubscription struct {
		PriceInfo struct {
			Today    []priceInfo `json:"today"`
			Tomorrow []priceInfo `json:"tomorrow"`
		} `json:"priceInfo"`
	} `json:"currentSubscription"`
}

// GetEnergyPrices returns the hourly totals (energy and tax) Tibber has
// published for the day date falls in, in date's location. Tibber only knows
// today and tomorrow, other dates give an empty result.
func (t *Tibber) GetEnergyPrices(ctx context.Context, date time.Time) ([]types.PriceQuote, error) {
	query := `
		currentSubscription {
			priceInfo(resolution: HOURLY) {
				today { startsAt total }
				tomorrow { startsAt total }
			}
		}`

	body, err := doQuery[priceInfoResponse](ctx, t, query)
	if err != nil {
		return nil, err
	}

	todayAndTomorrow := append(
		body.Data.Viewer.Home.CurrentSubscription.PriceInfo.Today,
		body.Data.Viewer.Home.CurrentSubscription.PriceInfo.Tomorrow...)

	prices := make([]types.PriceQuote, 0, len(todayAndTomorrow))
	for i, price := range todayAndTomorrow {
		startsAt, err := hours.ParseQuoteTime(time.RFC3339, price.StartsAt)
		if err != nil {
			return nil, fmt.Errorf("price %d: %w", i, err)
		}
		total, err := convert.ParsePrice(price.Total)
		if err != nil {
			return nil, fmt.Errorf("price %d: total: %w", i, err)
		}
		if !hours.SameDay(startsAt, date, date.Location()) {
			continue
		}
		prices = append(prices, types.PriceQuote{
			Start: startsAt,
			End:   startsAt.Add(time.Hour),
			Price: total,
		})
	}

	return prices, nil
}
