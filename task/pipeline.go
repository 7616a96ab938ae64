// Package task runs the price pipeline: fetch quotes, merge them into cheap
// windows, keep the cheapest quarter and hand the result to every notifier.
package task

//go:generate mockgen -package=task_test -destination=mock_types_test.go github.com/angas/cheapslots-go/types EnergyPriceProvider,Notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/angas/cheapslots-go/database"
	"github.com/angas/cheapslots-go/report"
	"github.com/angas/cheapslots-go/slots"
	"github.com/angas/cheapslots-go/types"
	"github.com/angas/cheapslots-go/types/maybe"
	"github.com/shopspring/decimal"
)

// DeliveryLedger records the outcome of each delivery. *database.Database
// implements it.
type DeliveryLedger interface {
	SaveDelivery(ctx context.Context, r database.DeliveryRow) error
}

type Options struct {
	Threshold decimal.Decimal
	Currency  string
	DaysAhead int
	Timeout   time.Duration
}

type Result struct {
	Quotes   []types.PriceQuote
	Windows  []slots.Window
	Selected []slots.Window
	Message  types.Message
	// Joined notifier errors, the run itself still succeeded
	DeliveryErr error
}

type Pipeline struct {
	logger    *slog.Logger
	providers []types.EnergyPriceProvider
	notifiers []types.Notifier
	ledger    DeliveryLedger
	opts      Options
}

// NewPipeline creates a pipeline that tries providers in the given order.
// ledger may be nil.
func NewPipeline(
	logger *slog.Logger,
	providers []types.EnergyPriceProvider,
	notifiers []types.Notifier,
	ledger DeliveryLedger,
	opts Options) *Pipeline {

	if len(providers) == 0 {
		panic("no energy price providers")
	}
	return &Pipeline{
		logger:    logger,
		providers: providers,
		notifiers: notifiers,
		ledger:    ledger,
		opts:      opts,
	}
}

// Evaluate fetches and selects windows relative to now without delivering
// anything.
func (p *Pipeline) Evaluate(ctx context.Context, now time.Time) (Result, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.evaluate(ctx, now)
}

// Run evaluates and delivers the message to all notifiers. Only malformed
// price data fails the run, delivery errors end up in Result.DeliveryErr.
func (p *Pipeline) Run(ctx context.Context, now time.Time) (Result, error) {
	p.logger.Debug("running pipeline...", slog.Time("now", now))

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	res, err := p.evaluate(ctx, now)
	if err != nil {
		return res, err
	}

	res.DeliveryErr = p.deliver(ctx, now, res.Message, len(res.Selected))
	if res.DeliveryErr != nil {
		p.logger.Error("pipeline delivery error", slog.Any("error", res.DeliveryErr))
	}

	p.logger.Info("pipeline done",
		slog.Int("quotes", len(res.Quotes)),
		slog.Int("windows", len(res.Windows)),
		slog.Int("selected", len(res.Selected)))
	return res, nil
}

func (p *Pipeline) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.opts.Timeout)
}

func (p *Pipeline) evaluate(ctx context.Context, now time.Time) (Result, error) {
	quotes, err := p.fetchQuotes(ctx, now)
	if err != nil {
		return Result{}, err
	}

	windows, err := slots.Merge(quotes, now, p.opts.Threshold)
	if err != nil {
		return Result{Quotes: quotes}, err
	}
	selected := slots.LowestQuartile(windows)

	return Result{
		Quotes:   quotes,
		Windows:  windows,
		Selected: selected,
		Message:  report.Message(selected, p.opts.Currency),
	}, nil
}

func (p *Pipeline) deliver(ctx context.Context, now time.Time, msg types.Message, noOfWindows int) error {
	var errs []error
	for _, n := range p.notifiers {
		row := database.DeliveryRow{
			Timestamp: now,
			Notifier:  n.Name(),
			Windows:   noOfWindows,
			Status:    database.DeliveryStatusDelivered,
			Error:     maybe.None[string](),
		}

		if err := n.Notify(ctx, msg); err != nil {
			err = fmt.Errorf("notifier %s: %w", n.Name(), err)
			errs = append(errs, err)
			row.Status = database.DeliveryStatusFailed
			row.Error = maybe.Some(err.Error())
		} else {
			p.logger.Debug("message delivered", slog.String("notifier", n.Name()))
		}

		if p.ledger != nil {
			if err := p.ledger.SaveDelivery(ctx, row); err != nil {
				p.logger.Error("failed to save delivery", slog.String("notifier", n.Name()), slog.Any("error", err))
			}
		}
	}
	return errors.Join(errs...)
}
