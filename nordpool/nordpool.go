package nordpool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/angas/cheapslots-go/calc"
	"github.com/angas/cheapslots-go/convert"
	"github.com/angas/cheapslots-go/hours"
	"github.com/angas/cheapslots-go/types"
	"github.com/shopspring/decimal"
)

type Nordpool struct {
	area     string
	currency string
	adjuster calc.PriceAdjuster
	baseURL  string
	client   *http.Client
}

func New(area string, currency string, adjuster calc.PriceAdjuster, timeout time.Duration) Nordpool {
	return Nordpool{
		area:     area,
		currency: currency,
		adjuster: adjuster,
		baseURL:  API_URL,
		client:   &http.Client{Timeout: timeout},
	}
}

func (n Nordpool) Name() string {
	return "nordpool"
}

// GetEnergyPrices returns one quote per hour. Since the move to 15 minute
// market time units Nord Pool publishes several entries per hour; those are
// averaged into a single hourly quote.
func (n Nordpool) GetEnergyPrices(ctx context.Context, date time.Time) ([]types.PriceQuote, error) {
	url := fmt.Sprintf("%s/api/DayAheadPrices?date=%s&market=DayAhead&deliveryArea=%s&currency=%s",
		n.baseURL,
		hours.FormatDate(date),
		n.area,
		n.currency)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch prices: %v", types.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	// Nord Pool answers 204 when the day has not been auctioned yet
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return []types.PriceQuote{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", types.ErrSourceUnavailable, resp.StatusCode)
	}

	var data nordpoolData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, types.DecodeError(err)
	}

	return n.hourlyQuotes(data.MultiAreaEntries)
}

func (n Nordpool) hourlyQuotes(entries []multiAreaEntry) ([]types.PriceQuote, error) {
	type bucket struct {
		start time.Time
		sum   decimal.Decimal
		count int64
	}

	var buckets []*bucket
	seen := make(map[int64]bool)
	for i, entry := range entries {
		start, err := hours.ParseQuoteTime(time.RFC3339, entry.DeliveryStart)
		if err != nil {
			return nil, fmt.Errorf("entry %d: deliveryStart: %w", i, err)
		}
		end, err := hours.ParseQuoteTime(time.RFC3339, entry.DeliveryEnd)
		if err != nil {
			return nil, fmt.Errorf("entry %d: deliveryEnd: %w", i, err)
		}
		if !start.Before(end) {
			return nil, fmt.Errorf("entry %d: %w: delivery interval %s - %s is not increasing",
				i, types.ErrMalformedRecord, entry.DeliveryStart, entry.DeliveryEnd)
		}
		if seen[start.Unix()] {
			continue
		}
		seen[start.Unix()] = true

		rawPrice, ok := entry.EntryPerArea[n.area]
		if !ok {
			continue
		}
		price, err := convert.ParsePrice(rawPrice)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %s: %w", i, n.area, err)
		}

		hour := start.Truncate(time.Hour)
		if len(buckets) == 0 || !buckets[len(buckets)-1].start.Equal(hour) {
			buckets = append(buckets, &bucket{start: hour})
		}
		b := buckets[len(buckets)-1]
		b.sum = b.sum.Add(price)
		b.count++
	}

	prices := make([]types.PriceQuote, 0, len(buckets))
	for _, b := range buckets {
		avg := b.sum.Div(decimal.NewFromInt(b.count))
		quote, err := types.NewPriceQuote(b.start, b.start.Add(time.Hour), n.adjuster.Apply(convert.PerMWhToPerKWh(avg)))
		if err != nil {
			return nil, err
		}
		prices = append(prices, quote)
	}

	return prices, nil
}
