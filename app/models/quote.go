package models

// Quote is the derived price pair for a Selection. It is recomputed, never
// mutated independently.
type Quote struct {
	// PriceNGN is the total in whole Naira.
	PriceNGN int64 `json:"priceNGN"`
	// PriceGBP is the Naira total converted at the fixed exchange rate,
	// rounded to two decimal places.
	PriceGBP float64 `json:"price"`
}
