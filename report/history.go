package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/angas/cheapslots-go/database"
	"github.com/angas/cheapslots-go/hours"
)

// WriteDeliveries prints one line per delivery, newest first as given.
func WriteDeliveries(w io.Writer, schemaVersion int, rows []database.DeliveryRow) {
	fmt.Fprintf(w, "Deliveries (schema version %d):\n", schemaVersion)
	if len(rows) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s  %-8s %-9s %d window(s)", hours.FormatDisplay(r.Timestamp), r.Notifier, r.Status, r.Windows)
		if r.Error.IsValid() {
			fmt.Fprintf(w, "  %s", r.Error.Value())
		}
		fmt.Fprintln(w)
	}
}

func WriteLogEntries(w io.Writer, entries []database.LogEntryRow) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s %-5s %s", hours.FormatDisplay(e.Timestamp), slog.Level(e.Level), e.Message)
		if e.Attrs != "" {
			fmt.Fprintf(w, " %s", e.Attrs)
		}
		fmt.Fprintln(w)
	}
}
