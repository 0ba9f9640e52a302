package controllers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/socialsociety/SocialSociety/app/models"
	"github.com/socialsociety/SocialSociety/internal/pkg/pricing"
	"github.com/socialsociety/SocialSociety/internal/pkg/session"
	"github.com/socialsociety/SocialSociety/internal/pkg/wizard"
)

const wizardSessionKey = "wizard_state"

func loadWizard(c *fiber.Ctx) (*wizard.Wizard, error) {
	raw := session.GetSessionValue(c, wizardSessionKey)
	if raw == "" {
		return nil, errors.New("no active wizard in session")
	}
	var w wizard.Wizard
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func saveWizard(c *fiber.Ctx, w *wizard.Wizard) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return session.SetSessionValue(c, wizardSessionKey, string(raw))
}

// HandleWizardCreate starts a fresh onboarding wizard in the session,
// replacing any previous one.
func HandleWizardCreate(c *fiber.Ctx) error {
	w := wizard.New(uuid.NewString())
	if err := saveWizard(c, w); err != nil {
		log.Printf("wizard save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session_unavailable"})
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

// HandleWizardGet returns the session's wizard state.
func HandleWizardGet(c *fiber.Ctx) error {
	w, err := loadWizard(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no_active_wizard"})
	}
	return c.Status(fiber.StatusOK).JSON(w)
}

// HandleWizardDelete abandons the session's wizard.
func HandleWizardDelete(c *fiber.Ctx) error {
	if err := session.DeleteSessionValue(c, wizardSessionKey); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session_unavailable"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// wizardUpdateRequest carries a partial update; absent fields stay untouched.
type wizardUpdateRequest struct {
	FullName         *string `json:"fullName"`
	Email            *string `json:"email"`
	CountryCode      *string `json:"countryCode"`
	Phone            *string `json:"phone"`
	BusinessType     *string `json:"businessType"`
	TogglePlatform   *string `json:"togglePlatform"`
	PostFrequency    *int    `json:"postFrequency"`
	VideoEditing     *bool   `json:"videoEditing"`
	PaymentFrequency *string `json:"paymentFrequency"`
	DiscountCode     *string `json:"discountCode"`
}

// HandleWizardUpdate applies a partial update to the wizard's selection and
// returns the refreshed state, quote included.
func HandleWizardUpdate(c *fiber.Ctx) error {
	w, err := loadWizard(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no_active_wizard"})
	}

	var req wizardUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.FullName != nil || req.Email != nil || req.CountryCode != nil || req.Phone != nil {
		sel := w.Selection
		fullName, email, countryCode, phone := sel.FullName, sel.Email, sel.CountryCode, sel.Phone
		if req.FullName != nil {
			fullName = *req.FullName
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.CountryCode != nil {
			countryCode = *req.CountryCode
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		w.SetContact(fullName, email, countryCode, phone)
	}
	if req.BusinessType != nil {
		w.SetBusinessType(models.NormalizeBusinessType(*req.BusinessType))
	}
	if req.TogglePlatform != nil {
		p, ok := models.ParsePlatform(*req.TogglePlatform)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown platform: " + *req.TogglePlatform})
		}
		w.TogglePlatform(p)
	}
	if req.PostFrequency != nil {
		if !models.ValidPostFrequency(*req.PostFrequency) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "post frequency out of range"})
		}
		w.SetPostFrequency(*req.PostFrequency)
	}
	if req.VideoEditing != nil {
		w.SetVideoEditing(*req.VideoEditing)
	}
	if req.PaymentFrequency != nil {
		w.SetPaymentFrequency(models.NormalizePaymentFrequency(*req.PaymentFrequency))
	}
	if req.DiscountCode != nil {
		w.SetDiscountCode(*req.DiscountCode)
	}

	if err := saveWizard(c, w); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session_unavailable"})
	}
	return c.Status(fiber.StatusOK).JSON(w)
}

// HandleWizardNext advances the wizard one step. A failed guard returns 422
// with the state so clients can render the inline errors.
func HandleWizardNext(c *fiber.Ctx) error {
	w, err := loadWizard(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no_active_wizard"})
	}

	stepErr := w.Next()
	if saveErr := saveWizard(c, w); saveErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session_unavailable"})
	}
	if stepErr != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": stepErr.Error(),
			"state": w,
		})
	}
	return c.Status(fiber.StatusOK).JSON(w)
}

// HandleWizardBack moves the wizard one step towards the start.
func HandleWizardBack(c *fiber.Ctx) error {
	w, err := loadWizard(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no_active_wizard"})
	}

	w.Back()
	if err := saveWizard(c, w); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session_unavailable"})
	}
	return c.Status(fiber.StatusOK).JSON(w)
}

// HandleQuote prices a selection without touching session state.
func HandleQuote(c *fiber.Ctx) error {
	var sel models.Selection
	if err := c.BodyParser(&sel); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	return c.Status(fiber.StatusOK).JSON(pricing.CalculateQuote(sel))
}
