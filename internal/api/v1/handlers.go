package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/socialsociety/SocialSociety/app/controllers"
)

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// PostWizard starts a fresh onboarding wizard in the caller's session.
func (s *APIServer) PostWizard(c *fiber.Ctx) error {
	return controllers.HandleWizardCreate(c)
}

// GetWizard returns the session's wizard state.
func (s *APIServer) GetWizard(c *fiber.Ctx) error {
	return controllers.HandleWizardGet(c)
}

// PatchWizard applies a partial update to the wizard's selection.
func (s *APIServer) PatchWizard(c *fiber.Ctx) error {
	return controllers.HandleWizardUpdate(c)
}

// DeleteWizard abandons the session's wizard.
func (s *APIServer) DeleteWizard(c *fiber.Ctx) error {
	return controllers.HandleWizardDelete(c)
}

// PostWizardNext advances the wizard one step, enforcing the step guards.
func (s *APIServer) PostWizardNext(c *fiber.Ctx) error {
	return controllers.HandleWizardNext(c)
}

// PostWizardBack moves the wizard one step towards the start.
func (s *APIServer) PostWizardBack(c *fiber.Ctx) error {
	return controllers.HandleWizardBack(c)
}

// PostQuote prices a selection without touching session state.
func (s *APIServer) PostQuote(c *fiber.Ctx) error {
	return controllers.HandleQuote(c)
}
