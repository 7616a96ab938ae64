package slots

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/angas/cheapslots-go/slice"
	"github.com/angas/cheapslots-go/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeExample(t *testing.T) {
	quotes := hourly(0.5, 0.6, 0.4, 3.0, 0.2, 0.3)

	windows, err := Merge(quotes, midnight.Add(-time.Minute), d(2.0))
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.True(t, windows[0].Start.Equal(at(0)))
	assert.True(t, windows[0].End.Equal(at(3)))
	assert.True(t, windows[0].TotalPrice.Equal(d(1.5)), "got %s", windows[0].TotalPrice)
	assert.Equal(t, 3, windows[0].Hours())

	assert.True(t, windows[1].Start.Equal(at(4)))
	assert.True(t, windows[1].End.Equal(at(6)))
	assert.True(t, windows[1].TotalPrice.Equal(d(0.5)), "got %s", windows[1].TotalPrice)
	assert.Equal(t, 2, windows[1].Hours())
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		quotes   []types.PriceQuote
		now      time.Time
		expected []Window
	}{
		{
			name:     "empty input",
			quotes:   nil,
			now:      midnight,
			expected: []Window{},
		},
		{
			name:     "price equal to threshold never joins",
			quotes:   hourly(1.0, 2.0, 1.0),
			now:      midnight,
			expected: []Window{window(quote(0, 1, 1.0)), window(quote(2, 3, 1.0))},
		},
		{
			name:     "all expensive",
			quotes:   hourly(2.5, 3.0, 2.0),
			now:      midnight,
			expected: []Window{},
		},
		{
			name:     "gap splits cheap quotes",
			quotes:   []types.PriceQuote{quote(0, 1, 0.1), quote(2, 3, 0.2)},
			now:      midnight,
			expected: []Window{window(quote(0, 1, 0.1)), window(quote(2, 3, 0.2))},
		},
		{
			name: "one second gap splits cheap quotes",
			quotes: []types.PriceQuote{
				quote(0, 1, 0.1),
				{Start: at(1).Add(time.Second), End: at(2), Price: d(0.2)},
			},
			now: midnight,
			expected: []Window{
				window(quote(0, 1, 0.1)),
				window(types.PriceQuote{Start: at(1).Add(time.Second), End: at(2), Price: d(0.2)}),
			},
		},
		{
			name:     "quote ending exactly now is expired",
			quotes:   hourly(0.1, 0.2, 0.3),
			now:      at(1),
			expected: []Window{window(quote(1, 2, 0.2), quote(2, 3, 0.3))},
		},
		{
			name:     "quote in progress is kept",
			quotes:   hourly(0.1, 0.2),
			now:      at(0).Add(30 * time.Minute),
			expected: []Window{window(quote(0, 1, 0.1), quote(1, 2, 0.2))},
		},
		{
			name:     "everything expired",
			quotes:   hourly(0.1, 0.2),
			now:      at(5),
			expected: []Window{},
		},
		{
			name:     "expired quote does not close the open window",
			quotes:   []types.PriceQuote{quote(2, 3, 0.1), quote(0, 1, 5.0), quote(3, 4, 0.2)},
			now:      at(1),
			expected: []Window{window(quote(2, 3, 0.1), quote(3, 4, 0.2))},
		},
		{
			name:     "negative prices are cheap",
			quotes:   hourly(-0.3, 0.1),
			now:      midnight,
			expected: []Window{window(quote(0, 1, -0.3), quote(1, 2, 0.1))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows, err := Merge(tt.quotes, tt.now, d(2.0))
			require.NoError(t, err)
			require.Len(t, windows, len(tt.expected))
			for i, w := range windows {
				assertSameWindow(t, tt.expected[i], w)
			}
		})
	}
}

func TestMergeContiguityAcrossZones(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	first := quote(0, 1, 0.1)
	second := types.PriceQuote{Start: at(1).In(cet), End: at(2).In(cet), Price: d(0.2)}

	windows, err := Merge([]types.PriceQuote{first, second}, midnight, d(2.0))
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, 2, windows[0].Hours())
}

func TestMergeRejectsMalformedBatch(t *testing.T) {
	quotes := hourly(0.1, 0.2, 0.3)
	quotes[2].End = quotes[2].Start

	windows, err := Merge(quotes, midnight, d(2.0))
	assert.ErrorIs(t, err, types.ErrMalformedRecord)
	assert.Nil(t, windows)
}

func TestMergeDoesNotShareComponents(t *testing.T) {
	windows, err := Merge(hourly(0.1, 0.2, 3.0, 0.4), midnight, d(2.0))
	require.NoError(t, err)
	require.Len(t, windows, 2)

	windows[0].Components[0].Price = d(9.9)
	assert.True(t, windows[1].Components[0].Price.Equal(d(0.4)))
}

func TestMergeClipsClosedWindows(t *testing.T) {
	quotes := hourly(0.1, 0.2, 0.3, 3.0, 0.4, 0.5)
	windows, err := Merge(quotes, midnight, d(2.0))
	require.NoError(t, err)
	require.Len(t, windows, 2)

	for _, w := range windows {
		assert.Equal(t, len(w.Components), cap(w.Components))
	}

	// growing a returned window must not reach into the input or the next window
	grown := append(windows[0].Components, quote(3, 4, 0.0))
	assert.Len(t, grown, 4)
	assert.True(t, quotes[3].Price.Equal(d(3.0)))
	assert.True(t, windows[1].Components[0].Price.Equal(d(0.4)))
}

func TestMergeInvariants(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	threshold := d(2.0)

	for run := 0; run < 200; run++ {
		quotes := randomQuotes(rnd, 1+rnd.IntN(48))
		now := at(rnd.IntN(12))

		windows, err := Merge(quotes, now, threshold)
		require.NoError(t, err)

		seen := 0
		for _, w := range windows {
			require.NotEmpty(t, w.Components)
			assert.True(t, w.Start.Equal(w.Components[0].Start))
			assert.True(t, w.End.Equal(w.Components[len(w.Components)-1].End))

			sum := d(0)
			for i, c := range w.Components {
				sum = sum.Add(c.Price)
				if i > 0 {
					assert.True(t, w.Components[i-1].End.Equal(c.Start), "components not contiguous")
				}
			}
			assert.True(t, sum.Equal(w.TotalPrice), "total %s, sum %s", w.TotalPrice, sum)

			assert.True(t, slice.All(w.Components, func(c types.PriceQuote) bool {
				return c.Price.LessThan(threshold)
			}), "component at or above threshold")
			assert.True(t, slice.All(w.Components, func(c types.PriceQuote) bool {
				return c.End.After(now)
			}), "expired component")

			seen += len(w.Components)
		}

		eligible := 0
		for _, q := range quotes {
			if q.End.After(now) && q.Price.LessThan(threshold) {
				eligible++
			}
		}
		assert.Equal(t, eligible, seen, "every eligible quote belongs to exactly one window")

		again, err := Merge(quotes, now, threshold)
		require.NoError(t, err)
		assert.Equal(t, windows, again)
	}
}

// randomQuotes returns chronological one-hour quotes with an occasional gap.
func randomQuotes(rnd *rand.Rand, n int) []types.PriceQuote {
	quotes := make([]types.PriceQuote, 0, n)
	hour := 0
	for range n {
		if rnd.IntN(6) == 0 {
			hour++
		}
		price := float64(rnd.IntN(400)) / 100
		quotes = append(quotes, quote(hour, hour+1, price))
		hour++
	}
	return quotes
}

func assertSameWindow(t *testing.T, expected, got Window) {
	t.Helper()
	assert.True(t, expected.Start.Equal(got.Start), "start: expected %s, got %s", expected.Start, got.Start)
	assert.True(t, expected.End.Equal(got.End), "end: expected %s, got %s", expected.End, got.End)
	assert.True(t, expected.TotalPrice.Equal(got.TotalPrice), "total: expected %s, got %s", expected.TotalPrice, got.TotalPrice)
	require.Len(t, got.Components, len(expected.Components))
	for i := range expected.Components {
		assert.True(t, expected.Components[i].Start.Equal(got.Components[i].Start))
		assert.True(t, expected.Components[i].Price.Equal(got.Components[i].Price))
	}
}
