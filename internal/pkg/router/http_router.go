package router

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/socialsociety/SocialSociety/app/controllers"
	"github.com/socialsociety/SocialSociety/internal/pkg/database"
	"github.com/socialsociety/SocialSociety/internal/pkg/mail"
	"github.com/socialsociety/SocialSociety/internal/pkg/payment"
	"github.com/socialsociety/SocialSociety/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	provider, err := payment.NewProviderFromEnv()
	if err != nil {
		log.Fatalf("payment provider setup failed: %v", err)
	}
	mailer := mail.NewMailerFromEnv()

	// Initialize checkout controller with provider and mailer
	controllers.InitializeCheckoutController(provider, mailer)

	// Initialize webhook controller with webhook persistence
	controllers.InitializeWebhookController(payment.NewServiceFromDB(database.GetDB()), provider, mailer)

	h.registerPublicRoutes(app)
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Post("/checkout/initialize", controllers.HandleCheckoutInitialize)
	app.Post("/payment/verify", controllers.HandlePaymentVerify)
	app.Post("/notify/order-summary", controllers.HandleNotifyOrderSummary)
	app.Post("/webhooks/paystack", controllers.HandlePaystackWebhook)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
