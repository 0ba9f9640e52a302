// Package wizard implements the six-step onboarding flow: contact details,
// business classification, platform selection, posting frequency, video
// editing, and payment. The state machine is linear; guards on steps one and
// three are the only conditional transitions.
package wizard

import (
	"errors"
	"regexp"

	"github.com/socialsociety/SocialSociety/app/models"
	"github.com/socialsociety/SocialSociety/internal/pkg/pricing"
)

// Step identifies a wizard screen.
type Step int

const (
	StepContact Step = iota + 1
	StepBusinessType
	StepPlatforms
	StepPostFrequency
	StepVideoEditing
	StepPayment

	firstStep = StepContact
	lastStep  = StepPayment
)

// The contact guard accepts anything shaped like local@domain.tld.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ErrPlatformsRequired blocks the platforms step until at least one platform
// is picked.
var ErrPlatformsRequired = errors.New("select at least one platform")

// ErrContactIncomplete signals that one or more contact fields failed the
// step-one guard; the per-field flags carry the detail.
var ErrContactIncomplete = errors.New("contact details are incomplete")

// FieldErrors flags the step-one fields that failed validation.
type FieldErrors struct {
	FullName bool `json:"fullName"`
	Email    bool `json:"email"`
	Phone    bool `json:"phone"`
}

func (e FieldErrors) Any() bool {
	return e.FullName || e.Email || e.Phone
}

// Wizard is one session's onboarding state: the current step, the collected
// selection, the guard errors of the last failed transition, and the quote
// derived from the selection. It is plain data so it serializes into the
// session store as JSON.
type Wizard struct {
	ID        string           `json:"id"`
	Step      Step             `json:"step"`
	Selection models.Selection `json:"selection"`
	Errors    FieldErrors      `json:"errors"`
	Quote     models.Quote     `json:"quote"`
}

// New starts a wizard at the contact step with the default selection.
func New(id string) *Wizard {
	w := &Wizard{
		ID:        id,
		Step:      firstStep,
		Selection: models.NewSelection(),
	}
	w.recompute()
	return w
}

// Next advances one step if the current step's guard passes. Failing a guard
// leaves the step unchanged and records the reason.
func (w *Wizard) Next() error {
	switch w.Step {
	case StepContact:
		if !w.validateContact() {
			return ErrContactIncomplete
		}
	case StepPlatforms:
		if len(w.Selection.Platforms) == 0 {
			return ErrPlatformsRequired
		}
	case lastStep:
		// Payment is terminal; checkout takes over from here.
		return nil
	}
	w.Step++
	return nil
}

// Back moves one step towards the start. Leaving the payment step resets the
// payment frequency to monthly.
func (w *Wizard) Back() {
	if w.Step <= firstStep {
		return
	}
	if w.Step == StepPayment {
		w.Selection.PaymentFrequency = models.PaymentFrequencyMonthly
		w.recompute()
	}
	w.Step--
}

func (w *Wizard) validateContact() bool {
	sel := w.Selection
	w.Errors = FieldErrors{
		FullName: sel.FullName == "",
		Email:    sel.Email == "" || !emailPattern.MatchString(sel.Email),
		Phone:    sel.Phone == "",
	}
	return !w.Errors.Any()
}

// SetContact updates the contact fields and clears their error flags, the
// same way typing into a flagged input clears its inline error.
func (w *Wizard) SetContact(fullName, email, countryCode, phone string) {
	w.Selection.FullName = fullName
	w.Selection.Email = email
	if countryCode != "" {
		w.Selection.CountryCode = countryCode
	}
	w.Selection.Phone = phone
	w.Errors = FieldErrors{}
}

// SetBusinessType selects exactly one business classification.
func (w *Wizard) SetBusinessType(bt models.BusinessType) {
	w.Selection.BusinessType = bt
	w.recompute()
}

// TogglePlatform adds or removes a platform from the selection.
func (w *Wizard) TogglePlatform(p models.Platform) {
	w.Selection.TogglePlatform(p)
	w.recompute()
}

// SetPostFrequency picks a weekly posting cadence; out-of-range values are
// ignored.
func (w *Wizard) SetPostFrequency(n int) {
	if !models.ValidPostFrequency(n) {
		return
	}
	w.Selection.PostFrequency = n
	w.recompute()
}

// SetVideoEditing toggles the video add-on. Enabling it requires at least one
// selected platform, matching the disabled control on the video step.
func (w *Wizard) SetVideoEditing(enabled bool) {
	if enabled && len(w.Selection.Platforms) == 0 {
		return
	}
	w.Selection.VideoEditing = enabled
	w.recompute()
}

// SetPaymentFrequency picks the billing cadence on the payment step.
func (w *Wizard) SetPaymentFrequency(pf models.PaymentFrequency) {
	w.Selection.PaymentFrequency = pf
	w.recompute()
}

// SetDiscountCode stores the code without affecting the quote.
func (w *Wizard) SetDiscountCode(code string) {
	w.Selection.DiscountCode = code
}

func (w *Wizard) recompute() {
	w.Quote = pricing.CalculateQuote(w.Selection)
}
