package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/socialsociety/SocialSociety/internal/pkg/env"
)

const ProviderPaystack = "paystack"

// ErrNotConfigured is returned when a provider is used without its secret
// credential; callers must fail fast and never proceed to a redirect.
var ErrNotConfigured = errors.New("payment provider secret key is not configured")

// Provider is the payment capability the checkout flow is written against:
// initialize a hosted checkout and verify its outcome by reference. One
// implementation per provider, selected at configuration time.
type Provider interface {
	Name() string
	Initialize(ctx context.Context, in InitializeInput) (*Authorization, error)
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}

// InitializeInput carries everything one checkout initialization needs.
// Amount is in minor currency units (kobo).
type InitializeInput struct {
	Email       string
	Amount      int64
	Metadata    Metadata
	CallbackURL string
}

// Authorization is the provider's answer to a successful initialization.
type Authorization struct {
	URL       string
	Reference string
}

// VerifyResult is the provider's view of one transaction. A declined payment
// is a valid result, not an error; errors are reserved for transport and
// parse failures.
type VerifyResult struct {
	Reference       string
	Status          string
	GatewayResponse string
	Amount          int64
	Currency        string
	CustomerEmail   string
	Metadata        Metadata
}

// Succeeded reports whether the transaction completed on the provider side.
func (r *VerifyResult) Succeeded() bool {
	return strings.EqualFold(strings.TrimSpace(r.Status), "success")
}

// FailureMessage picks the most descriptive text for a non-success outcome:
// the gateway response when present, else the raw status, else a generic
// message.
func (r *VerifyResult) FailureMessage() string {
	if msg := strings.TrimSpace(r.GatewayResponse); msg != "" {
		return msg
	}
	if status := strings.TrimSpace(r.Status); status != "" {
		return status
	}
	return "Payment not successful"
}

// NewProviderFromEnv selects the configured payment provider. Unknown values
// are a configuration error, not a silent default to a provider that would
// charge the wrong account.
func NewProviderFromEnv() (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(env.GetEnv("PAYMENT_PROVIDER", ProviderPaystack)))
	switch name {
	case ProviderPaystack:
		return NewPaystackClientFromEnv(), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", name)
	}
}
