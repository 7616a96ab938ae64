// Package repono fetches Danish energy prices from the elpriser.repono.dk API.
package repono

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/angas/cheapslots-go/convert"
	"github.com/angas/cheapslots-go/hours"
	"github.com/angas/cheapslots-go/types"
)

const DefaultEndpoint = "https://elpriser.repono.dk/api/energy-prices"

// Timestamps are RFC 1123 strings and the price may be either a JSON number
// or a numeric string, so both are kept raw until parsed.
type rawPrice struct {
	TimeStart  string          `json:"time_start"`
	TimeEnd    string          `json:"time_end"`
	TotalPrice json.RawMessage `json:"total_price"`
}

type Repono struct {
	endpoint string
	client   *http.Client
}

func New(endpoint string, timeout time.Duration) Repono {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return Repono{endpoint: endpoint, client: &http.Client{Timeout: timeout}}
}

func (r Repono) Name() string {
	return "repono"
}

func (r Repono) GetEnergyPrices(ctx context.Context, date time.Time) ([]types.PriceQuote, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint url %q: %w", r.endpoint, err)
	}
	q := u.Query()
	q.Set("start_date", hours.FormatDate(date))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch prices: %v", types.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []types.PriceQuote{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", types.ErrSourceUnavailable, resp.StatusCode)
	}

	var rawPrices []rawPrice
	if err := json.NewDecoder(resp.Body).Decode(&rawPrices); err != nil {
		return nil, types.DecodeError(err)
	}

	prices := make([]types.PriceQuote, 0, len(rawPrices))
	for i, raw := range rawPrices {
		quote, err := raw.toQuote()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		prices = append(prices, quote)
	}

	return prices, nil
}

func (raw rawPrice) toQuote() (types.PriceQuote, error) {
	start, err := hours.ParseQuoteTime(hours.QuoteLayout, raw.TimeStart)
	if err != nil {
		return types.PriceQuote{}, fmt.Errorf("time_start: %w", err)
	}
	end, err := hours.ParseQuoteTime(hours.QuoteLayout, raw.TimeEnd)
	if err != nil {
		return types.PriceQuote{}, fmt.Errorf("time_end: %w", err)
	}
	price, err := convert.ParsePrice(raw.TotalPrice)
	if err != nil {
		return types.PriceQuote{}, fmt.Errorf("total_price: %w", err)
	}
	return types.NewPriceQuote(start, end, price)
}
