package models

import "strings"

// BusinessType keys the pricing multiplier/discount pair.
type BusinessType string

const (
	BusinessTypeEnterprise BusinessType = "enterprise"
	BusinessTypeSmall      BusinessType = "small"
	BusinessTypeNonprofit  BusinessType = "nonprofit"
)

// Platform is a managed social-media platform.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// PaymentFrequency is the billing cadence chosen on the payment step.
type PaymentFrequency string

const (
	PaymentFrequencyMonthly PaymentFrequency = "monthly"
	PaymentFrequencyAnnual  PaymentFrequency = "annual"
)

// Selection holds everything the onboarding wizard collects. It lives only in
// the active session; nothing here is persisted.
type Selection struct {
	FullName         string           `json:"fullName" validate:"required"`
	Email            string           `json:"email" validate:"required,email"`
	CountryCode      string           `json:"countryCode"`
	Phone            string           `json:"phone" validate:"required"`
	BusinessType     BusinessType     `json:"businessType"`
	Platforms        []Platform       `json:"platforms"`
	VideoEditing     bool             `json:"videoEditing"`
	PostFrequency    int              `json:"postFrequency"`
	PaymentFrequency PaymentFrequency `json:"paymentFrequency"`
	// Collected in the UI but never applied to the computed price.
	DiscountCode string `json:"discountCode"`
}

// NewSelection returns a Selection with the wizard defaults.
func NewSelection() Selection {
	return Selection{
		CountryCode:      "+44",
		BusinessType:     BusinessTypeEnterprise,
		PostFrequency:    2,
		PaymentFrequency: PaymentFrequencyMonthly,
	}
}

// ParsePlatform maps free-form input to a known platform.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformInstagram:
		return PlatformInstagram, true
	case PlatformFacebook:
		return PlatformFacebook, true
	case PlatformTwitter:
		return PlatformTwitter, true
	case PlatformTikTok:
		return PlatformTikTok, true
	case PlatformYouTube:
		return PlatformYouTube, true
	default:
		return "", false
	}
}

// IsPremium reports whether the platform carries the premium video rate.
func (p Platform) IsPremium() bool {
	return p == PlatformYouTube || p == PlatformTikTok
}

// HasPlatform reports whether the platform is part of the selection.
func (s *Selection) HasPlatform(p Platform) bool {
	for _, have := range s.Platforms {
		if have == p {
			return true
		}
	}
	return false
}

// TogglePlatform adds or removes a platform, keeping the set deduplicated.
func (s *Selection) TogglePlatform(p Platform) {
	for i, have := range s.Platforms {
		if have == p {
			s.Platforms = append(s.Platforms[:i], s.Platforms[i+1:]...)
			return
		}
	}
	s.Platforms = append(s.Platforms, p)
}

// HasPremiumPlatform reports whether any selected platform is premium.
func (s *Selection) HasPremiumPlatform() bool {
	for _, p := range s.Platforms {
		if p.IsPremium() {
			return true
		}
	}
	return false
}

// PlatformNames returns the selection as plain strings, wire-friendly.
func (s *Selection) PlatformNames() []string {
	out := make([]string, 0, len(s.Platforms))
	for _, p := range s.Platforms {
		out = append(out, string(p))
	}
	return out
}

// NormalizeBusinessType maps free-form input to a known business type,
// falling back to the enterprise default.
func NormalizeBusinessType(s string) BusinessType {
	switch BusinessType(strings.ToLower(strings.TrimSpace(s))) {
	case BusinessTypeSmall:
		return BusinessTypeSmall
	case BusinessTypeNonprofit:
		return BusinessTypeNonprofit
	default:
		return BusinessTypeEnterprise
	}
}

// NormalizePaymentFrequency maps free-form input to a known cadence,
// falling back to monthly.
func NormalizePaymentFrequency(s string) PaymentFrequency {
	if PaymentFrequency(strings.ToLower(strings.TrimSpace(s))) == PaymentFrequencyAnnual {
		return PaymentFrequencyAnnual
	}
	return PaymentFrequencyMonthly
}

// ValidPostFrequency reports whether n is an offered posting cadence.
func ValidPostFrequency(n int) bool {
	return n >= 2 && n <= 6
}
