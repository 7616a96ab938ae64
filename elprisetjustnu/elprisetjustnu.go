package elprisetjustnu

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
)

const baseURL = "https://www.elprisetjustnu.se"

// Kept raw so a bad value is reported as a malformed record instead of a
// decode failure.
type rawPrice struct {
	SEKPerKWh json.RawMessage `json:"SEK_per_kWh"`
	EURPerKWh json.RawMessage `json:"EUR_per_kWh"`
	EXR       json.RawMessage `json:"EXR"`
	TimeStart string          `json:"time_start"`
	TimeEnd   string          `json:"time_end"`
}

type ElPrisetJustNu struct {
	area     string
	currency string
	adjuster calc.PriceAdjuster
	baseURL  string
	client   *http.Client
}

// New creates a provider for a Swedish price area ("SE1" - "SE4"). Prices
// are reported in SEK unless currency is "EUR".
func New(area string, currency string, adjuster calc.PriceAdjuster, timeout time.Duration) ElPrisetJustNu {
	return ElPrisetJustNu{
		area:     area,
		currency: currency,
		adjuster: adjuster,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
	}
}

func (e ElPrisetJustNu) Name() string {
	return "elprisetjustnu"
}

func (e ElPrisetJustNu) GetEnergyPrices(ctx context.Context, date time.Time) ([]types.PriceQuote, error) {
	url := fmt.Sprintf("%s/api/v1/prices/%d/%02d-%02d_%s.json",
		e.baseURL, date.Year(), int(date.Month()), date.Day(), e.area)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := e.client.Do(req)
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
		quote, err := e.toQuote(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		prices = append(prices, quote)
	}

	return prices, nil
}

func (e ElPrisetJustNu) toQuote(raw rawPrice) (types.PriceQuote, error) {
	start, err := hours.ParseQuoteTime(time.RFC3339, raw.TimeStart)
	if err != nil {
		return types.PriceQuote{}, fmt.Errorf("time_start: %w", err)
	}
	end, err := hours.ParseQuoteTime(time.RFC3339, raw.TimeEnd)
	if err != nil {
		return types.PriceQuote{}, fmt.Errorf("time_end: %w", err)
	}

	field, rawSpot := "SEK_per_kWh", raw.SEKPerKWh
	if e.currency == "EUR" {
		field, rawSpot = "EUR_per_kWh", raw.EURPerKWh
	}
	spot, err := convert.ParsePrice(rawSpot)
	if err != nil {
		return types.PriceQuote{}, fmt.Errorf("%s: %w", field, err)
	}

	return types.NewPriceQuote(start, end, e.adjuster.Apply(spot))
}
