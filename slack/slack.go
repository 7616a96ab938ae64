// Package slack delivers messages through a Slack incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/angas/cheapslots-go/types"
)

type Webhook struct {
	url    string
	client *http.Client
}

func New(webhookURL string, timeout time.Duration) *Webhook {
	return &Webhook{url: webhookURL, client: &http.Client{Timeout: timeout}}
}

func (w *Webhook) Name() string {
	return "slack"
}

// Notify posts the message text. Slack answers 200 with body "ok" on success,
// anything else is reported together with the response body.
func (w *Webhook) Notify(ctx context.Context, msg types.Message) error {
	body, err := json.Marshal(map[string]string{"text": msg.Text})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", types.ErrDeliveryFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send message: %v", types.ErrDeliveryFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: slack webhook status %d, body: %s", types.ErrDeliveryFailure, resp.StatusCode, string(respBody))
	}
	return nil
}
