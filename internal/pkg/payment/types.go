package payment

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	Reference       string
	PayloadJSON     string
	SignatureValid  bool
}
