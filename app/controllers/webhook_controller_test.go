package controllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/socialsociety/SocialSociety/app/models"
	"github.com/socialsociety/SocialSociety/internal/pkg/payment"
)

type stubRecorder struct {
	events    map[string]*models.PaymentWebhookEvent
	processed map[uint]string
	nextID    uint
	failWith  error
}

func newStubRecorder() *stubRecorder {
	return &stubRecorder{
		events:    map[string]*models.PaymentWebhookEvent{},
		processed: map[uint]string{},
	}
}

func (r *stubRecorder) RecordWebhookEvent(ctx context.Context, in payment.WebhookEventInput) (bool, *models.PaymentWebhookEvent, error) {
	if r.failWith != nil {
		return false, nil, r.failWith
	}
	key := in.PayloadJSON
	if stored, ok := r.events[key]; ok {
		return false, stored, nil
	}
	r.nextID++
	stored := &models.PaymentWebhookEvent{
		ID:             r.nextID,
		Provider:       in.Provider,
		EventType:      in.EventType,
		Reference:      in.Reference,
		PayloadJSON:    in.PayloadJSON,
		SignatureValid: in.SignatureValid,
	}
	r.events[key] = stored
	return true, stored, nil
}

func (r *stubRecorder) MarkWebhookProcessed(ctx context.Context, id uint, processingErr error) error {
	msg := ""
	if processingErr != nil {
		msg = processingErr.Error()
	}
	r.processed[id] = msg
	return nil
}

func signWebhook(body, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookApp(recorder WebhookRecorder, provider payment.Provider, mailer Mailer) *fiber.App {
	InitializeWebhookController(recorder, provider, mailer)
	app := fiber.New()
	app.Post("/webhooks/paystack", HandlePaystackWebhook)
	return app
}

const chargeSuccessBody = `{
	"event": "charge.success",
	"data": {
		"reference": "ref_hook",
		"status": "success",
		"amount": 8000000,
		"currency": "NGN",
		"customer": {"email": "ada@example.com"}
	}
}`

func TestPaystackWebhook_InvalidSignature(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_secret")

	recorder := newStubRecorder()
	mailer := &stubMailer{}
	app := newWebhookApp(recorder, &stubProvider{}, mailer)

	status, body := doJSON(t, app, "POST", "/webhooks/paystack", chargeSuccessBody,
		map[string]string{"x-paystack-signature": "deadbeef"})

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "invalid_signature")
	assert.Empty(t, mailer.sent)

	// Delivery is still recorded, with the rejection reason.
	assert.Len(t, recorder.events, 1)
	assert.Equal(t, "invalid webhook signature", recorder.processed[1])
}

func TestPaystackWebhook_DuplicateAcknowledgedWithoutReprocessing(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_secret")
	t.Setenv("ADMIN_EMAIL", "admin@socialsociety.example")

	recorder := newStubRecorder()
	mailer := &stubMailer{}
	app := newWebhookApp(recorder, &stubProvider{}, mailer)

	headers := map[string]string{"x-paystack-signature": signWebhook(chargeSuccessBody, "sk_test_secret")}

	status, _ := doJSON(t, app, "POST", "/webhooks/paystack", chargeSuccessBody, headers)
	assert.Equal(t, fiber.StatusOK, status)
	firstSent := len(mailer.sent)

	status, body := doJSON(t, app, "POST", "/webhooks/paystack", chargeSuccessBody, headers)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `"duplicate":true`)
	assert.Len(t, mailer.sent, firstSent, "replay must not resend receipts")
}

func TestPaystackWebhook_ChargeSuccessSendsReceipts(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_secret")
	t.Setenv("ADMIN_EMAIL", "admin@socialsociety.example")

	provider := &stubProvider{verifyFn: func(ctx context.Context, reference string) (*payment.VerifyResult, error) {
		return &payment.VerifyResult{
			Reference:     reference,
			Status:        "success",
			Amount:        8_000_000,
			Currency:      "NGN",
			CustomerEmail: "ada@example.com",
			Metadata: payment.Metadata{CustomFields: []payment.CustomField{
				{VariableName: "full_name", Value: "Ada Obi"},
				{VariableName: "platforms", Value: "instagram"},
			}},
		}, nil
	}}
	recorder := newStubRecorder()
	mailer := &stubMailer{}
	app := newWebhookApp(recorder, provider, mailer)

	status, body := doJSON(t, app, "POST", "/webhooks/paystack", chargeSuccessBody,
		map[string]string{"x-paystack-signature": signWebhook(chargeSuccessBody, "sk_test_secret")})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "received")

	if assert.Len(t, mailer.sent, 2) {
		assert.Equal(t, "ada@example.com", mailer.sent[0].To)
		assert.Contains(t, mailer.sent[0].Subject, "Receipt")
		assert.Contains(t, mailer.sent[0].Body, "Ada Obi")
		assert.Equal(t, "admin@socialsociety.example", mailer.sent[1].To)
		assert.Contains(t, mailer.sent[1].Subject, "New Social Media Management Subscription")
	}
	assert.Equal(t, "", recorder.processed[1], "processed without error")
}

func TestPaystackWebhook_IgnoredEventType(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_secret")

	body := `{"event":"transfer.success","data":{"reference":"ref_x"}}`
	recorder := newStubRecorder()
	mailer := &stubMailer{}
	app := newWebhookApp(recorder, &stubProvider{}, mailer)

	status, respBody := doJSON(t, app, "POST", "/webhooks/paystack", body,
		map[string]string{"x-paystack-signature": signWebhook(body, "sk_test_secret")})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, respBody, `"ignored":true`)
	assert.Empty(t, mailer.sent)
}

func TestPaystackWebhook_PersistFailureIs500(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_secret")

	recorder := newStubRecorder()
	recorder.failWith = assert.AnError
	app := newWebhookApp(recorder, &stubProvider{}, &stubMailer{})

	status, body := doJSON(t, app, "POST", "/webhooks/paystack", chargeSuccessBody,
		map[string]string{"x-paystack-signature": signWebhook(chargeSuccessBody, "sk_test_secret")})

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, body, "webhook_persist_failed")
}
