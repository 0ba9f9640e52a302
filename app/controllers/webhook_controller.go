package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/socialsociety/SocialSociety/app/models"
	"github.com/socialsociety/SocialSociety/internal/pkg/env"
	"github.com/socialsociety/SocialSociety/internal/pkg/mail"
	"github.com/socialsociety/SocialSociety/internal/pkg/payment"
)

// WebhookRecorder persists webhook deliveries idempotently. The payment
// service implements it; tests substitute an in-memory recorder.
type WebhookRecorder interface {
	RecordWebhookEvent(ctx context.Context, in payment.WebhookEventInput) (bool, *models.PaymentWebhookEvent, error)
	MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error
}

var (
	webhookRecorder WebhookRecorder
	webhookProvider payment.Provider
	webhookMailer   Mailer
)

// InitializeWebhookController wires the persistence, provider and mailer used
// by the webhook handler.
func InitializeWebhookController(recorder WebhookRecorder, provider payment.Provider, mailer Mailer) {
	webhookRecorder = recorder
	webhookProvider = provider
	webhookMailer = mailer
}

// HandlePaystackWebhook records every delivery, acknowledges replays without
// reprocessing, and on a signed charge.success re-verifies the transaction
// with the provider before sending the customer and admin receipts.
func HandlePaystackWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get("x-paystack-signature")
	secret := env.GetEnv("PAYSTACK_SECRET_KEY", "")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	signatureValid := payment.VerifyPaystackWebhookSignature(rawBody, signature, secret)

	var eventType, reference string
	ev, parseErr := payment.ParsePaystackWebhookEvent(rawBody)
	if parseErr == nil {
		eventType = ev.Event
		reference = ev.Data.Reference
	}

	created, stored, err := webhookRecorder.RecordWebhookEvent(ctx, payment.WebhookEventInput{
		Provider:       payment.ProviderPaystack,
		EventType:      eventType,
		Reference:      reference,
		PayloadJSON:    string(rawBody),
		SignatureValid: signatureValid,
	})
	if err != nil {
		log.Printf("paystack webhook persist failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
	}
	if !signatureValid {
		_ = webhookRecorder.MarkWebhookProcessed(ctx, stored.ID, errors.New("invalid webhook signature"))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}
	if parseErr != nil {
		_ = webhookRecorder.MarkWebhookProcessed(ctx, stored.ID, parseErr)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}
	if !payment.IsChargeSuccessEvent(ev.Event) {
		_ = webhookRecorder.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}

	err = sendChargeSuccessReceipts(ctx, ev)
	_ = webhookRecorder.MarkWebhookProcessed(ctx, stored.ID, err)
	if err != nil {
		log.Printf("paystack webhook processing error for %s: %v", ev.Data.Reference, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
}

// sendChargeSuccessReceipts re-verifies the charge against the provider, then
// mails the customer receipt and the admin notification. The webhook payload
// alone is never trusted for money amounts.
func sendChargeSuccessReceipts(ctx context.Context, ev *payment.WebhookEvent) error {
	res, err := webhookProvider.Verify(ctx, ev.Data.Reference)
	if err != nil {
		return err
	}
	if !res.Succeeded() {
		return errors.New("charge.success delivery did not verify as success: " + res.FailureMessage())
	}

	receipt := mail.Receipt{
		Selection: payment.DecodeSelection(res.Metadata),
		AmountNGN: res.Amount,
		Currency:  res.Currency,
	}

	customerEmail := res.CustomerEmail
	if customerEmail == "" {
		customerEmail = ev.Data.Customer.Email
	}
	if customerEmail != "" {
		if err := webhookMailer.Send(customerEmail,
			"Your Social Media Management Subscription Receipt",
			mail.GenerateReceiptHTML(receipt, mail.ReceiptCustomer), true); err != nil {
			return err
		}
	}

	if adminEmail := env.GetEnv("ADMIN_EMAIL", ""); adminEmail != "" {
		if err := webhookMailer.Send(adminEmail,
			"New Social Media Management Subscription",
			mail.GenerateReceiptHTML(receipt, mail.ReceiptAdmin), true); err != nil {
			return err
		}
	}
	return nil
}
