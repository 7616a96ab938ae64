package slots

import (
	"time"

	"github.com/angas/cheapslots-go/types"
	"github.com/shopspring/decimal"
)

var midnight = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func quote(fromHour, toHour int, price float64) types.PriceQuote {
	return types.PriceQuote{
		Start: midnight.Add(time.Duration(fromHour) * time.Hour),
		End:   midnight.Add(time.Duration(toHour) * time.Hour),
		Price: d(price),
	}
}

// hourly returns one-hour quotes starting at midnight, one per price.
func hourly(prices ...float64) []types.PriceQuote {
	quotes := make([]types.PriceQuote, len(prices))
	for i, p := range prices {
		quotes[i] = quote(i, i+1, p)
	}
	return quotes
}

func at(hour int) time.Time {
	return midnight.Add(time.Duration(hour) * time.Hour)
}

func window(components ...types.PriceQuote) Window {
	w := newWindow(components[0])
	for _, c := range components[1:] {
		w = w.extend(c)
	}
	return w
}
