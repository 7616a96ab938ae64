package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// The price source could not be reached or answered with a non-success status.
	ErrSourceUnavailable = errors.New("price source unavailable")
	// A quote could not be parsed or has an invalid interval.
	ErrMalformedRecord = errors.New("malformed price record")
	// A notifier failed to deliver a message.
	ErrDeliveryFailure = errors.New("delivery failure")
)

// DecodeError classifies a failure to decode a source's response. A value of
// the wrong JSON type is a malformed record, anything else (truncated or
// non-JSON body) means the source is not usable right now.
func DecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return fmt.Errorf("%w: failed to decode response: %v", ErrSourceUnavailable, err)
}
