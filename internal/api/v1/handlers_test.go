package apiv1

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	v1 := app.Group("/api/v1")
	RegisterHandlers(v1, NewAPIServer())
	return app
}

func request(t *testing.T, app *fiber.App, method, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

// Without a session store the wizard endpoints answer 404 instead of
// panicking; the session store is wired by the HTTP router at startup.
func TestWizardEndpointsWithoutSession(t *testing.T) {
	app := newTestApp()

	status, body := request(t, app, "GET", "/api/v1/wizard")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, body, "no_active_wizard")

	status, _ = request(t, app, "POST", "/api/v1/wizard/next")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = request(t, app, "POST", "/api/v1/wizard/back")
	assert.Equal(t, fiber.StatusNotFound, status)
}
