package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/socialsociety/SocialSociety/app/models"
	"github.com/socialsociety/SocialSociety/internal/pkg/cache"
	"github.com/socialsociety/SocialSociety/internal/pkg/env"
	"github.com/socialsociety/SocialSociety/internal/pkg/mail"
	"github.com/socialsociety/SocialSociety/internal/pkg/payment"
)

// Mailer is the delivery capability the controllers need; the SMTP mailer
// satisfies it, tests stub it.
type Mailer interface {
	Send(to, subject, body string, html bool) error
}

var (
	checkoutProvider payment.Provider
	checkoutMailer   Mailer
)

// InitializeCheckoutController wires the payment provider and mailer used by
// the checkout, verify and notify handlers.
func InitializeCheckoutController(provider payment.Provider, mailer Mailer) {
	checkoutProvider = provider
	checkoutMailer = mailer
}

type checkoutInitializeRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Amount int64  `json:"amount" validate:"required,gt=0"`
	// Only email and amount gate the initialization; the selection may be
	// partial and is validated downstream by the wizard guards.
	Selection models.Selection `json:"metadata" validate:"-"`
}

func (r *checkoutInitializeRequest) Validate() error {
	return validator.New().Struct(r)
}

// HandleCheckoutInitialize starts a hosted checkout for the submitted
// selection and returns the provider's authorization URL. The amount arrives
// in minor currency units.
func HandleCheckoutInitialize(c *fiber.Ctx) error {
	var req checkoutInitializeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: email or amount"})
	}

	callbackURL := strings.TrimSpace(c.Get(fiber.HeaderOrigin))
	if callbackURL == "" {
		callbackURL = env.GetEnv("PUBLIC_SITE_URL", "")
	}
	if callbackURL != "" {
		callbackURL = strings.TrimRight(callbackURL, "/") + "/payment-success"
	}

	ctx, cancel := context.WithTimeout(c.Context(), 20*time.Second)
	defer cancel()

	auth, err := checkoutProvider.Initialize(ctx, payment.InitializeInput{
		Email:       req.Email,
		Amount:      req.Amount,
		Metadata:    payment.EncodeSelection(req.Selection),
		CallbackURL: callbackURL,
	})
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			log.Printf("checkout initialize refused: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment provider is not configured"})
		}
		log.Printf("checkout initialize error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": auth.URL, "reference": auth.Reference})
}

type paymentVerifyRequest struct {
	Reference string `json:"reference"`
}

// HandlePaymentVerify confirms a transaction with the provider after the
// customer returns from checkout. A declined payment is a 400 with the
// gateway's message; only transport and parse failures are 500s. On success
// the business inbox gets a plain-text order summary; email failures never
// fail the verification.
func HandlePaymentVerify(c *fiber.Ctx) error {
	var req paymentVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}
	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Missing transaction reference"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 20*time.Second)
	defer cancel()

	res, err := checkoutProvider.Verify(ctx, reference)
	if err != nil {
		log.Printf("payment verify error for %s: %v", reference, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if !res.Succeeded() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": res.FailureMessage(),
		})
	}

	sel := payment.DecodeSelection(res.Metadata)
	summary := mail.BuildOrderSummary(sel, res.Amount, res.Currency)

	if businessEmail := env.GetEnv("BUSINESS_EMAIL", ""); businessEmail != "" && checkoutMailer != nil {
		body := fmt.Sprintf("New Order!\n\n%s\nEmail: %s\nPhone: %s", summary, orDash(res.CustomerEmail), orDash(sel.CountryCode+sel.Phone))
		if err := checkoutMailer.Send(businessEmail, "New Order Received", body, false); err != nil {
			log.Printf("order summary email failed for %s: %v", reference, err)
		}
	}

	// Annotate replayed verifications; the marker is best-effort and the
	// response stays successful either way.
	response := fiber.Map{
		"success": true,
		"data": fiber.Map{
			"reference": res.Reference,
			"status":    res.Status,
			"amount":    res.Amount,
			"currency":  res.Currency,
		},
	}
	markerKey := "payment:verified:" + reference
	if cache.Exists(markerKey) {
		response["duplicate"] = true
	} else if err := cache.Set(markerKey, "1", 24*time.Hour); err != nil {
		log.Printf("verified marker not stored for %s: %v", reference, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

type notifyOrderSummaryRequest struct {
	OrderSummary  string `json:"orderSummary"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
}

// HandleNotifyOrderSummary forwards an order summary to the business inbox.
func HandleNotifyOrderSummary(c *fiber.Ctx) error {
	var req notifyOrderSummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.OrderSummary) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing order summary"})
	}

	businessEmail := env.GetEnv("BUSINESS_EMAIL", "")
	if businessEmail == "" || checkoutMailer == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Business email is not configured"})
	}

	body := fmt.Sprintf("<p>Order Details: %s</p><p>Customer Email: %s</p><p>Customer Phone: %s</p>",
		req.OrderSummary, orDash(req.CustomerEmail), orDash(req.CustomerPhone))
	if err := checkoutMailer.Send(businessEmail, "New Order Summary", body, true); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "messageId": uuid.NewString()})
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
