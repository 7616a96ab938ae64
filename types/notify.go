package types

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ComponentSummary struct {
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Price decimal.Decimal `json:"price"`
}

type WindowSummary struct {
	Start      time.Time          `json:"start"`
	End        time.Time          `json:"end"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Hours      []ComponentSummary `json:"hours"`
}

// Message is what gets handed to every notifier: the rendered text and
// the structured windows it was rendered from.
type Message struct {
	Text    string          `json:"text"`
	Windows []WindowSummary `json:"windows"`
}

type Notifier interface {
	Name() string
	Notify(ctx context.Context, msg Message) error
}
