package payment

import (
	"testing"

	"github.com/socialsociety/SocialSociety/app/models"
)

func TestEncodeDecodeSelection_RoundTrip(t *testing.T) {
	sel := models.NewSelection()
	sel.FullName = "Ada Obi"
	sel.Email = "ada@example.com"
	sel.CountryCode = "+234"
	sel.Phone = "8012345678"
	sel.BusinessType = models.BusinessTypeSmall
	sel.Platforms = []models.Platform{models.PlatformInstagram, models.PlatformTikTok}
	sel.VideoEditing = true
	sel.PostFrequency = 4
	sel.PaymentFrequency = models.PaymentFrequencyAnnual
	sel.DiscountCode = "LAUNCH50"

	got := DecodeSelection(EncodeSelection(sel))

	if got.FullName != sel.FullName {
		t.Fatalf("FullName = %q", got.FullName)
	}
	if got.Phone != "+2348012345678" {
		t.Fatalf("Phone = %q, want country code + number", got.Phone)
	}
	if got.BusinessType != models.BusinessTypeSmall {
		t.Fatalf("BusinessType = %q", got.BusinessType)
	}
	if len(got.Platforms) != 2 || got.Platforms[0] != models.PlatformInstagram || got.Platforms[1] != models.PlatformTikTok {
		t.Fatalf("Platforms = %v", got.Platforms)
	}
	if !got.VideoEditing || got.PostFrequency != 4 {
		t.Fatalf("services = video:%v freq:%d", got.VideoEditing, got.PostFrequency)
	}
	if got.PaymentFrequency != models.PaymentFrequencyAnnual {
		t.Fatalf("PaymentFrequency = %q", got.PaymentFrequency)
	}
	if got.DiscountCode != "LAUNCH50" {
		t.Fatalf("DiscountCode = %q", got.DiscountCode)
	}
}

func TestDecodeSelection_TolerantOfGarbage(t *testing.T) {
	md := Metadata{CustomFields: []CustomField{
		{VariableName: "platforms", Value: "instagram,,myspace,INSTAGRAM"},
		{VariableName: "post_frequency", Value: "lots"},
		{VariableName: "video_editing", Value: "TRUE"},
		{VariableName: "payment_frequency", Value: "weekly"},
	}}

	sel := DecodeSelection(md)
	if len(sel.Platforms) != 1 || sel.Platforms[0] != models.PlatformInstagram {
		t.Fatalf("Platforms = %v, want deduplicated known platforms only", sel.Platforms)
	}
	if sel.PostFrequency != 0 {
		t.Fatalf("PostFrequency = %d, want zero for unparseable input", sel.PostFrequency)
	}
	if !sel.VideoEditing {
		t.Fatal("VideoEditing should parse case-insensitively")
	}
	if sel.PaymentFrequency != models.PaymentFrequencyMonthly {
		t.Fatalf("PaymentFrequency = %q, want monthly fallback", sel.PaymentFrequency)
	}
}

func TestEncodeSelection_OmitsEmptyDiscountCode(t *testing.T) {
	md := EncodeSelection(models.NewSelection())
	if _, ok := md.Lookup("discount_code"); ok {
		t.Fatal("empty discount code should not be encoded")
	}
}
