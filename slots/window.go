package slots

import (
	"time"

	"github.com/angas/cheapslots-go/types"
	"github.com/shopspring/decimal"
)

// Window is a maximal run of time-contiguous quotes that are all below the
// cheapness threshold.
type Window struct {
	Start      time.Time
	End        time.Time
	TotalPrice decimal.Decimal    // Sum of the component prices
	Components []types.PriceQuote // Ordered by start, never empty
}

func newWindow(q types.PriceQuote) Window {
	return Window{
		Start:      q.Start,
		End:        q.End,
		TotalPrice: q.Price,
		Components: []types.PriceQuote{q},
	}
}

// extend appends q to w. Only the open window in Merge is extended, its
// component slice is clipped when the window is closed.
func (w Window) extend(q types.PriceQuote) Window {
	w.End = q.End
	w.TotalPrice = w.TotalPrice.Add(q.Price)
	w.Components = append(w.Components, q)
	return w
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Hours is the number of quotes merged into the window.
func (w Window) Hours() int {
	return len(w.Components)
}

func (w Window) AveragePrice() decimal.Decimal {
	if len(w.Components) == 0 {
		return decimal.Zero
	}
	return w.TotalPrice.Div(decimal.NewFromInt(int64(len(w.Components))))
}
