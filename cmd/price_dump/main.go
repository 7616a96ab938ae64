// Command price_dump prints the raw quotes one provider returns for a date,
// handy when a provider changes its format.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/angas/cheapslots-go/config"
	"github.com/angas/cheapslots-go/convert"
	"github.com/angas/cheapslots-go/elprisetjustnu"
	"github.com/angas/cheapslots-go/hours"
	"github.com/angas/cheapslots-go/nordpool"
	"github.com/angas/cheapslots-go/repono"
	"github.com/angas/cheapslots-go/tibber"
	"github.com/angas/cheapslots-go/types"
	"github.com/lmittmann/tint"
)

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339Nano,
		}),
	))

	configPath := flag.String("config", "", "path to config file")
	name := flag.String("provider", "", "provider to ask, default: energy_price.provider")
	dateStr := flag.String("date", "", "date as YYYY-MM-DD, default: today")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	if err := cnfg.Validate(); err != nil {
		fail(err)
	}
	if err := hours.SetDisplayTimezone(cnfg.Display.GetTimezone()); err != nil {
		fail(err)
	}

	date := hours.StartOfDay(time.Now(), hours.DisplayLocation())
	if *dateStr != "" {
		if date, err = time.ParseInLocation("2006-01-02", *dateStr, hours.DisplayLocation()); err != nil {
			fail(err)
		}
	}

	if *name == "" {
		*name = cnfg.EnergyPrice.Provider
	}
	provider, err := newProvider(cnfg, *name)
	if err != nil {
		fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cnfg.EnergyPrice.GetTimeout())
	defer cancel()

	quotes, err := provider.GetEnergyPrices(ctx, date)
	if err != nil {
		fail(err)
	}

	slog.Info("quotes fetched", slog.String("provider", provider.Name()), slog.Int("count", len(quotes)))
	for _, q := range quotes {
		fmt.Printf("%s - %s  %s %s\n",
			hours.FormatDisplay(q.Start),
			hours.FormatDisplay(q.End),
			convert.TwoDecimals(q.Price),
			cnfg.EnergyPrice.Currency)
	}
}

func newProvider(cnfg *config.AppConfig, name string) (types.EnergyPriceProvider, error) {
	ep := cnfg.EnergyPrice
	switch name {
	case "repono":
		return repono.New(cnfg.Endpoints().EndpointURL, ep.GetTimeout()), nil
	case "elprisetjustnu":
		return elprisetjustnu.New(ep.Area, ep.Currency, ep.GetAdjuster(), ep.GetTimeout()), nil
	case "nordpool":
		return nordpool.New(ep.Area, ep.Currency, ep.GetAdjuster(), ep.GetTimeout()), nil
	case "tibber":
		return tibber.New(cnfg.Tibber.ApiToken, cnfg.Tibber.HomeId, ep.GetTimeout()), nil
	}
	return nil, fmt.Errorf("unknown provider %q", name)
}

func fail(err error) {
	slog.Error("price_dump failed", slog.Any("error", err))
	os.Exit(1)
}
