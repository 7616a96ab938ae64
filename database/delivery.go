package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/angas/cheapslots-go/types/maybe"
)

const (
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// DeliveryRow records the outcome of handing a message to one notifier.
// Only outcome metadata is kept, not the prices that were sent.
type DeliveryRow struct {
	Timestamp time.Time
	Notifier  string
	Windows   int
	Status    string
	Error     maybe.Maybe[string]
}

func (d *Database) SaveDelivery(ctx context.Context, r DeliveryRow) error {
	var errStr sql.NullString
	if r.Error.IsValid() {
		errStr = sql.NullString{String: r.Error.Value(), Valid: true}
	}

	_, err := d.write.ExecContext(ctx, `
		INSERT INTO delivery (timestamp, notifier, windows, status, error)
		VALUES (?, ?, ?, ?, ?)`,
		r.Timestamp.UTC().Format(time.RFC3339),
		r.Notifier,
		r.Windows,
		r.Status,
		errStr)
	if err != nil {
		return fmt.Errorf("saving delivery: %w", err)
	}
	return nil
}

// GetDeliveries returns the latest deliveries, newest first.
func (d *Database) GetDeliveries(ctx context.Context, limit int) ([]DeliveryRow, error) {
	if limit < 1 {
		limit = 10
	}

	rows, err := d.read.QueryContext(ctx, `
		SELECT timestamp, notifier, windows, status, error
		FROM delivery
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []DeliveryRow
	for rows.Next() {
		var r DeliveryRow
		var ts string
		var errStr sql.NullString
		if err := rows.Scan(&ts, &r.Notifier, &r.Windows, &r.Status, &errStr); err != nil {
			return nil, fmt.Errorf("scanning delivery row: %w", err)
		}
		r.Timestamp, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		r.Error = maybe.SqlNull(errStr.String, errStr.Valid)
		deliveries = append(deliveries, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading delivery rows: %w", err)
	}

	return deliveries, nil
}
