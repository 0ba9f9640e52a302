package payment

import (
	"strconv"
	"strings"

	"github.com/socialsociety/SocialSociety/app/models"
)

// The provider only supports flat metadata, so the structured selection is
// flattened into display/variable/value triples. Encode and decode form an
// explicit pair: the variable names written here are exactly the names read
// back after the checkout round trip.
const (
	fieldFullName         = "full_name"
	fieldPhoneNumber      = "phone_number"
	fieldCountryCode      = "country_code"
	fieldBusinessType     = "business_type"
	fieldPlatforms        = "platforms"
	fieldVideoEditing     = "video_editing"
	fieldPostFrequency    = "post_frequency"
	fieldPaymentFrequency = "payment_frequency"
	fieldDiscountCode     = "discount_code"
)

// CustomField is one flat metadata entry as the provider displays it.
type CustomField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

// Metadata is the flat metadata object attached to a provider transaction.
type Metadata struct {
	CustomFields []CustomField `json:"custom_fields"`
}

// Lookup returns the value of a variable name, if present.
func (m Metadata) Lookup(variableName string) (string, bool) {
	for _, f := range m.CustomFields {
		if f.VariableName == variableName {
			return f.Value, true
		}
	}
	return "", false
}

// EncodeSelection flattens a selection into provider metadata.
func EncodeSelection(sel models.Selection) Metadata {
	fields := []CustomField{
		{DisplayName: "Full Name", VariableName: fieldFullName, Value: sel.FullName},
		{DisplayName: "Phone Number", VariableName: fieldPhoneNumber, Value: sel.CountryCode + sel.Phone},
		{DisplayName: "Country Code", VariableName: fieldCountryCode, Value: sel.CountryCode},
		{DisplayName: "Business Type", VariableName: fieldBusinessType, Value: string(sel.BusinessType)},
		{DisplayName: "Platforms", VariableName: fieldPlatforms, Value: strings.Join(sel.PlatformNames(), ",")},
		{DisplayName: "Video Editing", VariableName: fieldVideoEditing, Value: strconv.FormatBool(sel.VideoEditing)},
		{DisplayName: "Post Frequency", VariableName: fieldPostFrequency, Value: strconv.Itoa(sel.PostFrequency)},
		{DisplayName: "Payment Frequency", VariableName: fieldPaymentFrequency, Value: string(sel.PaymentFrequency)},
	}
	if sel.DiscountCode != "" {
		fields = append(fields, CustomField{
			DisplayName: "Discount Code", VariableName: fieldDiscountCode, Value: sel.DiscountCode,
		})
	}
	return Metadata{CustomFields: fields}
}

// DecodeSelection rebuilds the selection the provider echoed back. Missing or
// malformed fields decode to their zero values; verification never fails on
// metadata alone.
func DecodeSelection(md Metadata) models.Selection {
	var sel models.Selection

	sel.FullName, _ = md.Lookup(fieldFullName)
	sel.DiscountCode, _ = md.Lookup(fieldDiscountCode)

	// The encoded phone number already carries the country code, so the
	// decoded selection keeps CountryCode empty to avoid doubling the prefix.
	sel.Phone, _ = md.Lookup(fieldPhoneNumber)

	if v, ok := md.Lookup(fieldBusinessType); ok {
		sel.BusinessType = models.NormalizeBusinessType(v)
	}
	if v, ok := md.Lookup(fieldPaymentFrequency); ok {
		sel.PaymentFrequency = models.NormalizePaymentFrequency(v)
	}
	if v, ok := md.Lookup(fieldVideoEditing); ok {
		sel.VideoEditing = strings.EqualFold(strings.TrimSpace(v), "true")
	}
	if v, ok := md.Lookup(fieldPostFrequency); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && models.ValidPostFrequency(n) {
			sel.PostFrequency = n
		}
	}
	if v, ok := md.Lookup(fieldPlatforms); ok {
		for _, raw := range strings.Split(v, ",") {
			if p, ok := models.ParsePlatform(raw); ok && !sel.HasPlatform(p) {
				sel.Platforms = append(sel.Platforms, p)
			}
		}
	}
	return sel
}
