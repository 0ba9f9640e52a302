package payment

import (
	"encoding/json"
	"errors"
	"strings"
)

// WebhookEvent is the envelope Paystack posts to the webhook endpoint.
type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string   `json:"reference"`
		Status    string   `json:"status"`
		Amount    int64    `json:"amount"`
		Currency  string   `json:"currency"`
		Metadata  Metadata `json:"metadata"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// ParsePaystackWebhookEvent decodes a webhook delivery.
func ParsePaystackWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ev.Event) == "" {
		return nil, errors.New("webhook payload missing event type")
	}
	return &ev, nil
}

// IsChargeSuccessEvent reports whether the event should trigger receipts.
func IsChargeSuccessEvent(eventType string) bool {
	return strings.EqualFold(strings.TrimSpace(eventType), "charge.success")
}
