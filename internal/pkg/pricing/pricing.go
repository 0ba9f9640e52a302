package pricing

import (
	"math"

	"github.com/socialsociety/SocialSociety/app/models"
)

// Pricing table in NGN. The 2-posts-per-week package is the base unit;
// additional posting days are prorated from it.
const (
	standardPlatformNGN = 50_000
	premiumPlatformNGN  = 100_000

	videoStandardNGN = 50_000
	videoPremiumNGN  = 100_000

	basePostFrequency = 2
	annualMonths      = 12

	// ExchangeRateToGBP converts whole Naira into pounds.
	ExchangeRateToGBP = 0.00065
)

var platformBaseNGN = map[models.Platform]int64{
	models.PlatformInstagram: standardPlatformNGN,
	models.PlatformFacebook:  standardPlatformNGN,
	models.PlatformTwitter:   standardPlatformNGN,
	models.PlatformYouTube:   premiumPlatformNGN,
	models.PlatformTikTok:    premiumPlatformNGN,
}

type businessModifier struct {
	multiplier float64
	discount   float64
}

var businessModifiers = map[models.BusinessType]businessModifier{
	models.BusinessTypeEnterprise: {multiplier: 3, discount: 0.30},
	models.BusinessTypeSmall:      {multiplier: 2, discount: 0.20},
	models.BusinessTypeNonprofit:  {multiplier: 2, discount: 0.20},
}

// CalculateQuote derives the price pair for a selection. Pure and total: an
// empty platform set yields a zero quote, unknown enum values fall back to
// the enterprise defaults. The discount code is intentionally ignored.
func CalculateQuote(sel models.Selection) models.Quote {
	var baseCost int64
	for _, p := range dedupe(sel.Platforms) {
		baseCost += platformBaseNGN[p]
	}

	// One flat video add-on regardless of platform count; the premium rate
	// wins as soon as any premium platform is selected.
	var videoCost int64
	if sel.VideoEditing && baseCost > 0 {
		videoCost = videoStandardNGN
		if sel.HasPremiumPlatform() {
			videoCost = videoPremiumNGN
		}
	}

	weeklyBase := float64(baseCost + videoCost)

	prorated := weeklyBase
	if sel.PostFrequency != basePostFrequency && models.ValidPostFrequency(sel.PostFrequency) {
		prorated = weeklyBase / basePostFrequency * float64(sel.PostFrequency)
	}

	mod, ok := businessModifiers[sel.BusinessType]
	if !ok {
		mod = businessModifiers[models.BusinessTypeEnterprise]
	}
	total := prorated * mod.multiplier * (1 - mod.discount)

	if sel.PaymentFrequency == models.PaymentFrequencyAnnual {
		total *= annualMonths
	}

	priceNGN := int64(math.Round(total))
	return models.Quote{
		PriceNGN: priceNGN,
		PriceGBP: roundTo2(float64(priceNGN) * ExchangeRateToGBP),
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

func dedupe(platforms []models.Platform) []models.Platform {
	seen := make(map[models.Platform]struct{}, len(platforms))
	out := platforms[:0:0]
	for _, p := range platforms {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
