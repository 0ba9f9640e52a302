package mail

import (
	"strings"
	"testing"

	"github.com/socialsociety/SocialSociety/app/models"
)

func sampleSelection() models.Selection {
	sel := models.NewSelection()
	sel.FullName = "Ada Obi"
	sel.Email = "ada@example.com"
	sel.CountryCode = "+234"
	sel.Phone = "8012345678"
	sel.BusinessType = models.BusinessTypeSmall
	sel.Platforms = []models.Platform{models.PlatformInstagram, models.PlatformYouTube}
	sel.VideoEditing = true
	sel.PostFrequency = 3
	return sel
}

func TestBuildOrderSummary(t *testing.T) {
	got := BuildOrderSummary(sampleSelection(), 8_000_000, "NGN")

	want := "Order Summary:\n" +
		"Platforms: instagram, youtube\n" +
		"Post Frequency: 3 times/week\n" +
		"Video Editing: Yes\n" +
		"Payment Frequency: monthly\n" +
		"Total: ₦80000 NGN (NGN)"
	if got != want {
		t.Fatalf("order summary mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestBuildOrderSummary_EmptySelectionUsesDashes(t *testing.T) {
	var sel models.Selection
	got := BuildOrderSummary(sel, 0, "NGN")

	if !strings.Contains(got, "Platforms: -") {
		t.Fatalf("missing platforms dash: %q", got)
	}
	if !strings.Contains(got, "Post Frequency: - times/week") {
		t.Fatalf("missing frequency dash: %q", got)
	}
	if !strings.Contains(got, "Payment Frequency: -") {
		t.Fatalf("missing payment frequency dash: %q", got)
	}
}

func TestGenerateReceiptHTML_CustomerVsAdmin(t *testing.T) {
	r := Receipt{Selection: sampleSelection(), AmountNGN: 8_000_000, Currency: "NGN"}

	customer := GenerateReceiptHTML(r, ReceiptCustomer)
	if !strings.Contains(customer, "Your Subscription Receipt") {
		t.Fatal("customer receipt missing title")
	}
	if !strings.Contains(customer, "Ada Obi") || !strings.Contains(customer, "+2348012345678") {
		t.Fatal("customer receipt missing contact details")
	}
	if !strings.Contains(customer, "Business Type:</strong> Small") {
		t.Fatal("customer receipt should title-case the business type")
	}
	if !strings.Contains(customer, "Thank you for choosing") {
		t.Fatal("customer receipt missing footer")
	}

	admin := GenerateReceiptHTML(r, ReceiptAdmin)
	if !strings.Contains(admin, "New Subscription Notification") {
		t.Fatal("admin receipt missing title")
	}
	if strings.Contains(admin, "Customer Details") {
		t.Fatal("admin receipt must not include the customer details block")
	}
	if !strings.Contains(admin, "instagram, youtube") {
		t.Fatal("admin receipt missing services")
	}
	if !strings.Contains(admin, "₦80000") {
		t.Fatal("admin receipt missing price")
	}
}
