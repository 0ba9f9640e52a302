package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/socialsociety/SocialSociety/internal/pkg/env"
)

const defaultPaystackAPIBaseURL = "https://api.paystack.co"

// PaystackClient talks to the Paystack transaction API with an injected
// secret credential. The secret never leaves the server side.
type PaystackClient struct {
	SecretKey  string
	APIBaseURL string

	HTTPClient *http.Client
}

func NewPaystackClientFromEnv() *PaystackClient {
	return &PaystackClient{
		SecretKey:  strings.TrimSpace(env.GetEnv("PAYSTACK_SECRET_KEY", "")),
		APIBaseURL: strings.TrimSpace(env.GetEnv("PAYSTACK_API_BASE_URL", defaultPaystackAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *PaystackClient) Name() string {
	return ProviderPaystack
}

// Initialize creates a provider-side transaction and returns the hosted
// checkout URL. Each call creates a fresh transaction; no local record is
// kept beyond the reference the provider appends to the return URL.
func (c *PaystackClient) Initialize(ctx context.Context, in InitializeInput) (*Authorization, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(in.Email) == "" || in.Amount <= 0 {
		return nil, errors.New("email and amount are required")
	}

	payload := struct {
		Email       string   `json:"email"`
		Amount      int64    `json:"amount"`
		Metadata    Metadata `json:"metadata"`
		CallbackURL string   `json:"callback_url,omitempty"`
	}{
		Email:       strings.TrimSpace(in.Email),
		Amount:      in.Amount,
		Metadata:    in.Metadata,
		CallbackURL: in.CallbackURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var out struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AuthorizationURL string `json:"authorization_url"`
			AccessCode       string `json:"access_code"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("paystack initialize returned unreadable body: status=%d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !out.Status {
		msg := strings.TrimSpace(out.Message)
		if msg == "" {
			msg = fmt.Sprintf("status=%d", resp.StatusCode)
		}
		return nil, fmt.Errorf("paystack initialize failed: %s", msg)
	}
	if strings.TrimSpace(out.Data.AuthorizationURL) == "" {
		return nil, errors.New("paystack initialize returned no authorization_url")
	}

	return &Authorization{
		URL:       out.Data.AuthorizationURL,
		Reference: out.Data.Reference,
	}, nil
}

// Verify reads the transaction state for a reference. The call is idempotent
// on the provider side: re-verifying an already-successful transaction never
// charges again.
func (c *PaystackClient) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, ErrNotConfigured
	}
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return nil, errors.New("transaction reference is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBaseURL+"/transaction/verify/"+ref, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paystack verify failed: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var out struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Status          string   `json:"status"`
			GatewayResponse string   `json:"gateway_response"`
			Amount          int64    `json:"amount"`
			Currency        string   `json:"currency"`
			Reference       string   `json:"reference"`
			Metadata        Metadata `json:"metadata"`
			Customer        struct {
				Email string `json:"email"`
			} `json:"customer"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("paystack verify returned unreadable body: %w", err)
	}
	if !out.Status {
		return nil, fmt.Errorf("paystack verify rejected: %s", strings.TrimSpace(out.Message))
	}

	return &VerifyResult{
		Reference:       out.Data.Reference,
		Status:          out.Data.Status,
		GatewayResponse: out.Data.GatewayResponse,
		Amount:          out.Data.Amount,
		Currency:        out.Data.Currency,
		CustomerEmail:   out.Data.Customer.Email,
		Metadata:        out.Data.Metadata,
	}, nil
}
