// Package slots finds cheap periods in a series of hourly price quotes.
package slots

import (
	"fmt"
	"slices"
	"time"

	"github.com/angas/cheapslots-go/types"
	"github.com/angas/cheapslots-go/types/maybe"
	"github.com/shopspring/decimal"
)

// Merge groups time-contiguous quotes priced below threshold into windows.
//
// Quotes are expected in chronological order and are not sorted here. A quote
// that ended at or before now is ignored completely: it neither extends nor
// closes the open window. As a consequence two cheap runs separated only by
// expired quotes are still merged if their timestamps line up exactly.
//
// A quote priced at or above threshold closes the open window, as does a gap
// of any size between the open window's end and the next cheap quote's start.
// The whole batch is rejected if any quote has an empty or reversed interval.
func Merge(quotes []types.PriceQuote, now time.Time, threshold decimal.Decimal) ([]Window, error) {
	for i, q := range quotes {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("quote %d: %w", i, err)
		}
	}

	windows := make([]Window, 0)
	current := maybe.None[Window]()

	closeCurrent := func() {
		if current.IsValid() {
			w := current.Value()
			w.Components = slices.Clip(w.Components)
			windows = append(windows, w)
			current = maybe.None[Window]()
		}
	}

	for _, q := range quotes {
		if !q.End.After(now) {
			continue // Expired
		}

		if q.Price.GreaterThanOrEqual(threshold) {
			closeCurrent()
			continue
		}

		switch {
		case !current.IsValid():
			current = maybe.Some(newWindow(q))
		case q.Start.Equal(current.Value().End):
			current = maybe.Some(current.Value().extend(q))
		default:
			closeCurrent()
			current = maybe.Some(newWindow(q))
		}
	}
	closeCurrent()

	return windows, nil
}
