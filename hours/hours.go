package hours

import (
	"fmt"
	"strings"
	"time"

	"github.com/angas/cheapslots-go/types"
)

const (
	dateLayout    = "2006-01-02"
	displayLayout = "2006-01-02 15:04"

	// QuoteLayout is the fixed textual timestamp format of the repono API,
	// e.g. "Mon, 10 Mar 2025 13:00:00 GMT".
	QuoteLayout = time.RFC1123
)

var displayLocation *time.Location = time.UTC

func SetDisplayTimezone(timezone string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %s: %v", timezone, err)
	}
	displayLocation = loc
	return nil
}

func DisplayLocation() *time.Location {
	return displayLocation
}

// ParseQuoteTime parses a timestamp from a price source using layout and
// returns it in UTC. A value that does not match the layout is reported as
// a malformed record, never replaced by a default.
func ParseQuoteTime(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", types.ErrMalformedRecord, value, err)
	}
	// time.Parse gives unknown zone abbreviations a zero offset
	if strings.Contains(layout, "MST") {
		if zone, _ := t.Zone(); zone != "GMT" && zone != "UTC" {
			return time.Time{}, fmt.Errorf("%w: timestamp %q: unsupported zone %q", types.ErrMalformedRecord, value, zone)
		}
	}
	return t.UTC(), nil
}

// FormatDisplay formats t as "YYYY-MM-DD HH:MM" in the display timezone.
func FormatDisplay(t time.Time) string {
	return t.In(displayLocation).Format(displayLayout)
}

// FormatDate formats t as "YYYY-MM-DD" in the location t already carries.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// StartOfDay returns midnight of the day t falls in, in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}
