package task

import (
	"context"
	"log/slog"
)

type LogPurger interface {
	PurgeLog(ctx context.Context, maxLogEntries int) (int64, error)
}

// Maintain trims the log table down to maxLogEntries rows.
func Maintain(ctx context.Context, logger *slog.Logger, db LogPurger, maxLogEntries int) {
	logger.Debug("running maintenance...")

	n, err := db.PurgeLog(ctx, maxLogEntries)
	if err != nil {
		logger.Error("log maintenance error", slog.Any("error", err))
		return
	}

	logger.Debug("maintenance done", slog.Int64("noOfLogEntriesPurged", n))
}
