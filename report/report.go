// Package report renders selected windows into the notification text.
package report

import (
	"fmt"
	"strings"

	"github.com/angas/cheapslots-go/convert"
	"github.com/angas/cheapslots-go/hours"
	"github.com/angas/cheapslots-go/slice"
	"github.com/angas/cheapslots-go/slots"
	"github.com/angas/cheapslots-go/types"
)

const NoWindowsText = "No low-price time slots found."

// Format renders windows as human readable text, one block per window with
// a line for every hour in it. Times use the display timezone.
func Format(windows []slots.Window, currency string) string {
	if len(windows) == 0 {
		return NoWindowsText
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Found %d low-price time slot(s):\n", len(windows)))
	for _, w := range windows {
		b.WriteString(fmt.Sprintf("\nFrom %s to %s:\n", hours.FormatDisplay(w.Start), hours.FormatDisplay(w.End)))
		for _, c := range w.Components {
			b.WriteString(fmt.Sprintf("  %s - %s: %s %s\n",
				hours.FormatDisplay(c.Start),
				hours.FormatDisplay(c.End),
				convert.TwoDecimals(c.Price),
				currency))
		}
	}
	return b.String()
}

func Summaries(windows []slots.Window) []types.WindowSummary {
	return slice.Map(windows, func(w slots.Window) types.WindowSummary {
		return types.WindowSummary{
			Start:      w.Start,
			End:        w.End,
			TotalPrice: w.TotalPrice,
			Hours: slice.Map(w.Components, func(q types.PriceQuote) types.ComponentSummary {
				return types.ComponentSummary{Start: q.Start, End: q.End, Price: q.Price}
			}),
		}
	})
}

// Message bundles the rendered text with its structured form.
func Message(windows []slots.Window, currency string) types.Message {
	return types.Message{
		Text:    Format(windows, currency),
		Windows: Summaries(windows),
	}
}
