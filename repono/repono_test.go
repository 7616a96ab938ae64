package repono

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angas/cheapslots-go/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var date = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func serve(t *testing.T, status int, body string) (Repono, *string) {
	t.Helper()
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/energy-prices", 5*time.Second), &query
}

func TestGetEnergyPrices(t *testing.T) {
	body := `[
		{"time_start": "Mon, 10 Mar 2025 00:00:00 GMT", "time_end": "Mon, 10 Mar 2025 01:00:00 GMT", "total_price": 1.25},
		{"time_start": "Mon, 10 Mar 2025 01:00:00 GMT", "time_end": "Mon, 10 Mar 2025 02:00:00 GMT", "total_price": "0.98"}
	]`
	r, query := serve(t, http.StatusOK, body)

	quotes, err := r.GetEnergyPrices(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, "start_date=2025-03-10", *query)

	require.Len(t, quotes, 2)
	assert.True(t, quotes[0].Start.Equal(date))
	assert.True(t, quotes[0].End.Equal(date.Add(time.Hour)))
	assert.True(t, quotes[0].Price.Equal(decimal.RequireFromString("1.25")))
	assert.True(t, quotes[1].Start.Equal(quotes[0].End), "consecutive quotes must be contiguous")
	assert.True(t, quotes[1].Price.Equal(decimal.RequireFromString("0.98")))
}

func TestGetEnergyPricesNotPublished(t *testing.T) {
	r, _ := serve(t, http.StatusNotFound, "")

	quotes, err := r.GetEnergyPrices(context.Background(), date)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestGetEnergyPricesSourceUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "not json", status: http.StatusOK, body: "<html>maintenance</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := serve(t, tt.status, tt.body)
			_, err := r.GetEnergyPrices(context.Background(), date)
			assert.ErrorIs(t, err, types.ErrSourceUnavailable)
		})
	}
}

func TestGetEnergyPricesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(srv.URL, time.Second).GetEnergyPrices(context.Background(), date)
	assert.ErrorIs(t, err, types.ErrSourceUnavailable)
}

func TestGetEnergyPricesMalformedRecord(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "bad timestamp",
			body: `[{"time_start": "2025-03-10 00:00", "time_end": "Mon, 10 Mar 2025 01:00:00 GMT", "total_price": 1}]`,
		},
		{
			name: "non numeric price",
			body: `[{"time_start": "Mon, 10 Mar 2025 00:00:00 GMT", "time_end": "Mon, 10 Mar 2025 01:00:00 GMT", "total_price": "cheap"}]`,
		},
		{
			name: "missing price",
			body: `[{"time_start": "Mon, 10 Mar 2025 00:00:00 GMT", "time_end": "Mon, 10 Mar 2025 01:00:00 GMT"}]`,
		},
		{
			name: "null price",
			body: `[{"time_start": "Mon, 10 Mar 2025 00:00:00 GMT", "time_end": "Mon, 10 Mar 2025 01:00:00 GMT", "total_price": null}]`,
		},
		{
			name: "timestamp in another zone",
			body: `[{"time_start": "Mon, 10 Mar 2025 13:00:00 CET", "time_end": "Mon, 10 Mar 2025 14:00:00 CET", "total_price": 1}]`,
		},
		{
			name: "numeric timestamp",
			body: `[{"time_start": 1741564800, "time_end": "Mon, 10 Mar 2025 01:00:00 GMT", "total_price": 1}]`,
		},
		{
			name: "reversed interval",
			body: `[{"time_start": "Mon, 10 Mar 2025 01:00:00 GMT", "time_end": "Mon, 10 Mar 2025 00:00:00 GMT", "total_price": 1}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := serve(t, http.StatusOK, tt.body)
			quotes, err := r.GetEnergyPrices(context.Background(), date)
			assert.ErrorIs(t, err, types.ErrMalformedRecord)
			assert.Nil(t, quotes)
		})
	}
}
