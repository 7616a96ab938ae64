package nordpool

import (
	"encoding/json"
)

const API_URL = "https://dataportal-api.nordpoolgroup.com"

type nordpoolData struct {
	DeliveryDateCET  string           `json:"deliveryDateCET"`
	Version          int              `json:"version"`
	UpdatedAt        string           `json:"updatedAt"`
	DeliveryAreas    []string         `json:"deliveryAreas"`
	Market           string           `json:"market"`
	MultiAreaEntries []multiAreaEntry `json:"multiAreaEntries"`
	Currency         string           `json:"currency"`
	ExchangeRate     json.RawMessage  `json:"exchangeRate"`
}

// Times and prices stay raw until parsed, a bad value is a malformed entry.
type multiAreaEntry struct {
	DeliveryStart string                     `json:"deliveryStart"`
	DeliveryEnd   string                     `json:"deliveryEnd"`
	EntryPerArea  map[string]json.RawMessage `json:"entryPerArea"`
}
