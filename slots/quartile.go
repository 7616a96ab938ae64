package slots

import (
	"slices"
)

// LowestQuartile returns the cheapest 25% of the windows by total price,
// rounded down but at least one when there is anything to choose from.
// Windows with equal totals keep their input order. The input is not modified.
func LowestQuartile(windows []Window) []Window {
	if len(windows) == 0 {
		return []Window{}
	}

	sorted := slices.Clone(windows)
	slices.SortStableFunc(sorted, func(a, b Window) int {
		return a.TotalPrice.Cmp(b.TotalPrice)
	})

	count := max(1, len(sorted)/4)
	return sorted[:count]
}
