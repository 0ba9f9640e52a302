package mail

import (
	"fmt"
	"strings"

	"github.com/socialsociety/SocialSociety/app/models"
)

// ReceiptKind selects which variant of the receipt email to render.
type ReceiptKind string

const (
	ReceiptCustomer ReceiptKind = "customer"
	ReceiptAdmin    ReceiptKind = "admin"
)

// Receipt holds everything the receipt templates render.
type Receipt struct {
	Selection models.Selection
	AmountNGN int64 // subunits (kobo)
	Currency  string
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// BuildOrderSummary renders the plain-text order summary used in
// business notification emails.
func BuildOrderSummary(sel models.Selection, amountSubunits int64, currency string) string {
	platforms := strings.Join(sel.PlatformNames(), ", ")
	freq := "-"
	if sel.PostFrequency > 0 {
		freq = fmt.Sprintf("%d", sel.PostFrequency)
	}
	return fmt.Sprintf(
		"Order Summary:\nPlatforms: %s\nPost Frequency: %s times/week\nVideo Editing: %s\nPayment Frequency: %s\nTotal: ₦%d NGN (%s)",
		orDash(platforms),
		freq,
		yesNo(sel.VideoEditing),
		orDash(string(sel.PaymentFrequency)),
		amountSubunits/100,
		currency,
	)
}

// GenerateReceiptHTML renders the HTML receipt. The customer variant
// includes contact details and a thank-you footer; the admin variant
// only carries the order contents.
func GenerateReceiptHTML(r Receipt, kind ReceiptKind) string {
	isCustomer := kind == ReceiptCustomer
	title := "New Subscription Notification"
	if isCustomer {
		title = "Your Subscription Receipt"
	}

	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">`)
	fmt.Fprintf(&b, `<h1 style="color: #1A73E9; text-align: center;">%s</h1>`, title)

	if isCustomer {
		b.WriteString(`<div style="background: #f8f9fa; padding: 20px; margin: 20px 0; border-radius: 8px;">`)
		b.WriteString(`<h2 style="color: #1A73E9;">Customer Details</h2>`)
		fmt.Fprintf(&b, `<p><strong>Name:</strong> %s</p>`, r.Selection.FullName)
		fmt.Fprintf(&b, `<p><strong>Email:</strong> %s</p>`, r.Selection.Email)
		fmt.Fprintf(&b, `<p><strong>Phone:</strong> %s%s</p>`, r.Selection.CountryCode, r.Selection.Phone)
		fmt.Fprintf(&b, `<p><strong>Business Type:</strong> %s</p>`, titleCase(string(r.Selection.BusinessType)))
		b.WriteString(`</div>`)
	}

	b.WriteString(`<div style="background: #f8f9fa; padding: 20px; margin: 20px 0; border-radius: 8px;">`)
	b.WriteString(`<h2 style="color: #1A73E9;">Services Selected</h2>`)
	b.WriteString(`<ul style="list-style: none; padding: 0;">`)
	fmt.Fprintf(&b, `<li><strong>Platforms:</strong> %s</li>`, strings.Join(r.Selection.PlatformNames(), ", "))
	fmt.Fprintf(&b, `<li><strong>Post Frequency:</strong> %d times/week</li>`, r.Selection.PostFrequency)
	fmt.Fprintf(&b, `<li><strong>Video Editing:</strong> %s</li>`, yesNo(r.Selection.VideoEditing))
	fmt.Fprintf(&b, `<li><strong>Payment Frequency:</strong> %s</li>`, r.Selection.PaymentFrequency)
	b.WriteString(`</ul></div>`)

	b.WriteString(`<div style="background: #f8f9fa; padding: 20px; margin: 20px 0; border-radius: 8px;">`)
	b.WriteString(`<h2 style="color: #1A73E9;">Pricing Details</h2>`)
	fmt.Fprintf(&b, `<p><strong>Total Price:</strong> ₦%d</p>`, r.AmountNGN/100)
	fmt.Fprintf(&b, `<p><strong>Currency:</strong> %s</p>`, r.Currency)
	b.WriteString(`</div>`)

	if isCustomer {
		b.WriteString(`<p style="text-align: center; margin-top: 20px;">Thank you for choosing our social media management services! We'll be in touch soon to get started.</p>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
