// Command cheapslots fetches today's energy prices, finds the cheapest
// time windows and sends them to Slack, MQTT and the console.
//
// Usage:
//
//	cheapslots --config config/config.yaml
//	cheapslots windows --now 2025-03-10T06:00:00Z
//	cheapslots deliveries --limit 20
//	cheapslots log --level WARN
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angas/cheapslots-go/config"
	"github.com/angas/cheapslots-go/console"
	"github.com/angas/cheapslots-go/database"
	"github.com/angas/cheapslots-go/elprisetjustnu"
	"github.com/angas/cheapslots-go/hours"
	"github.com/angas/cheapslots-go/logging"
	"github.com/angas/cheapslots-go/mqttnotify"
	"github.com/angas/cheapslots-go/nordpool"
	"github.com/angas/cheapslots-go/report"
	"github.com/angas/cheapslots-go/repono"
	"github.com/angas/cheapslots-go/slack"
	"github.com/angas/cheapslots-go/task"
	"github.com/angas/cheapslots-go/tibber"
	"github.com/angas/cheapslots-go/types"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var Version = "?.?.?"

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	var configPath string
	root := &cobra.Command{
		Use:           "cheapslots",
		Short:         "Find and announce the cheapest energy price windows",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	root.AddCommand(runCmd(&configPath))
	root.AddCommand(windowsCmd(&configPath))
	root.AddCommand(deliveriesCmd(&configPath))
	root.AddCommand(logCmd(&configPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		exitWithError(slog.Default(), err)
	}
}

func runCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fetch prices, select the cheapest windows and deliver them (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd.Context(), *configPath)
		},
	}
}

func windowsCmd(configPath *string) *cobra.Command {
	var nowStr string
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Print every merged window and the selection without delivering anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if nowStr != "" {
				var err error
				if now, err = time.Parse(time.RFC3339, nowStr); err != nil {
					return fmt.Errorf("invalid --now: %w", err)
				}
			}

			a, err := setup(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.pipeline.Evaluate(cmd.Context(), now)
			if err != nil {
				return err
			}
			printWindows(cmd.OutOrStdout(), a.cnfg.EnergyPrice.Currency, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&nowStr, "now", "", "evaluate as if it was this RFC 3339 time")
	return cmd
}

func deliveriesCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "deliveries",
		Short: "List the latest deliveries recorded in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDb, err := openDatabase(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer closeDb()

			version, err := db.Version(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := db.GetDeliveries(cmd.Context(), limit)
			if err != nil {
				return err
			}
			report.WriteDeliveries(cmd.OutOrStdout(), version, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of deliveries to list")
	return cmd
}

func logCmd(configPath *string) *cobra.Command {
	var level string
	var page, pageSize int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show log entries stored in the database, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDb, err := openDatabase(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer closeDb()

			entries, err := db.GetLogEntries(cmd.Context(), logging.LevelFromString(&level), page, pageSize)
			if err != nil {
				return err
			}
			report.WriteLogEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&level, "level", "INFO", "minimum level: DEBUG, INFO, WARN or ERROR")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "size", 50, "entries per page")
	return cmd
}

func openDatabase(ctx context.Context, configPath string) (*database.Database, func(), error) {
	a, err := setup(ctx, configPath, false)
	if err != nil {
		return nil, nil, err
	}
	if a.db == nil {
		a.Close()
		return nil, nil, fmt.Errorf("no database configured, set database.path")
	}
	return a.db, a.Close, nil
}

func runPipeline(ctx context.Context, configPath string) error {
	a, err := setup(ctx, configPath, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.pipeline.Run(ctx, time.Now()); err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if a.db != nil {
		task.Maintain(ctx, a.logger.With("module", "maintenance"), a.db, a.cnfg.Logging.GetDbMaxEntries())
	}
	return nil
}

func printWindows(w io.Writer, currency string, res task.Result) {
	fmt.Fprintf(w, "%d quotes, %d windows below the threshold\n\n", len(res.Quotes), len(res.Windows))
	fmt.Fprintln(w, report.Format(res.Windows, currency))
	fmt.Fprintln(w, "\nSelected:")
	fmt.Fprintln(w, res.Message.Text)
}

type app struct {
	cnfg     *config.AppConfig
	logger   *slog.Logger
	db       *database.Database
	pipeline *task.Pipeline
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// setup wires config, logging, storage, providers and, when deliver is set,
// the notifiers.
func setup(ctx context.Context, configPath string, deliver bool) (*app, error) {
	cnfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cnfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := hours.SetDisplayTimezone(cnfg.Display.GetTimezone()); err != nil {
		return nil, fmt.Errorf("failed to set display timezone: %w", err)
	}

	consoleHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	logger := slog.New(consoleHandler)
	slog.SetDefault(logger)
	logger.Debug("cheapslots is starting...", slog.String("version", Version))

	a := &app{cnfg: cnfg, logger: logger}

	var ledger task.DeliveryLedger
	if cnfg.Database.Path != "" {
		db, err := database.New(ctx, cnfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		a.closers = append(a.closers, db.Close)
		ledger = db

		a.logger = slog.New(logging.NewMultiHandler(
			consoleHandler,
			logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
		slog.SetDefault(a.logger)

		// Now we can use the logger to log database operations into the database itself
		db.SetLogger(a.logger.With("module", "database"))
	}

	providers, err := task.OrderProviders(
		energyPriceProviders(cnfg),
		cnfg.EnergyPrice.Provider,
		cnfg.EnergyPrice.Fallbacks)
	if err != nil {
		a.Close()
		return nil, err
	}

	var notifiers []types.Notifier
	if deliver {
		notifiers = a.notifiers()
	}

	a.pipeline = task.NewPipeline(
		a.logger.With("module", "pipeline"),
		providers,
		notifiers,
		ledger,
		task.Options{
			Threshold: cnfg.EnergyPrice.GetThreshold(),
			Currency:  cnfg.EnergyPrice.Currency,
			DaysAhead: cnfg.EnergyPrice.DaysAhead,
			Timeout:   cnfg.EnergyPrice.GetTimeout(),
		})
	return a, nil
}

func energyPriceProviders(cnfg *config.AppConfig) []types.EnergyPriceProvider {
	ep := cnfg.EnergyPrice
	endpoints := cnfg.Endpoints()
	providers := []types.EnergyPriceProvider{
		repono.New(endpoints.EndpointURL, ep.GetTimeout()),
		elprisetjustnu.New(ep.Area, ep.Currency, ep.GetAdjuster(), ep.GetTimeout()),
		nordpool.New(ep.Area, ep.Currency, ep.GetAdjuster(), ep.GetTimeout()),
	}
	if cnfg.Tibber.ApiToken != "" {
		providers = append(providers, tibber.New(cnfg.Tibber.ApiToken, cnfg.Tibber.HomeId, ep.GetTimeout()))
	}
	return providers
}

func (a *app) notifiers() []types.Notifier {
	var notifiers []types.Notifier
	if a.cnfg.Display.GetConsole() {
		notifiers = append(notifiers, console.New(os.Stdout))
	}

	if url := a.cnfg.Endpoints().WebhookURL; url != "" {
		notifiers = append(notifiers, slack.New(url, a.cnfg.EnergyPrice.GetTimeout()))
	} else {
		a.logger.Warn("no slack webhook url configured, skipping slack")
	}

	if m := a.cnfg.Mqtt; m.Broker != "" {
		p := mqttnotify.New(mqttnotify.Options{
			Broker:   m.Broker,
			Port:     m.Port,
			Username: m.Username,
			Password: m.Password,
			ClientID: m.ClientID,
			Topic:    m.Topic,
			Qos:      m.Qos,
			Retain:   m.Retain,
		})
		notifiers = append(notifiers, p)
		a.closers = append(a.closers, p.Close)
	}
	return notifiers
}

func exitWithError(logger *slog.Logger, err error) {
	logger.Error("cheapslots failed", slog.Any("error", err))
	os.Exit(1)
}
