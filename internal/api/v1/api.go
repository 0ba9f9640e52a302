package apiv1

import (
	"github.com/gofiber/fiber/v2"
)

// Pong is the response to the ping endpoint.
type Pong struct {
	Ping string `json:"ping"`
}

// ServerInterface is the contract the v1 API server implements. It mirrors
// the operations documented in public/docs/v1/openapi.yml.
type ServerInterface interface {
	GetPing(c *fiber.Ctx) error

	PostWizard(c *fiber.Ctx) error
	GetWizard(c *fiber.Ctx) error
	PatchWizard(c *fiber.Ctx) error
	DeleteWizard(c *fiber.Ctx) error
	PostWizardNext(c *fiber.Ctx) error
	PostWizardBack(c *fiber.Ctx) error

	PostQuote(c *fiber.Ctx) error
}

// RegisterHandlers attaches all v1 operations to the given router group.
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	router.Get("/ping", si.GetPing)

	router.Post("/wizard", si.PostWizard)
	router.Get("/wizard", si.GetWizard)
	router.Patch("/wizard", si.PatchWizard)
	router.Delete("/wizard", si.DeleteWizard)
	router.Post("/wizard/next", si.PostWizardNext)
	router.Post("/wizard/back", si.PostWizardBack)

	router.Post("/quote", si.PostQuote)
}
