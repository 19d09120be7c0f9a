package service

// Pricing computes checkout totals from a cart subtotal.
type Pricing struct {
	FreeShippingThreshold float64
	ShippingFee           float64
	TaxRate               float64
}

// DefaultPricing mirrors the storefront defaults: free shipping from $100,
// flat $10 fee below it, 8% tax.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: 100,
		ShippingFee:           10,
		TaxRate:               0.08,
	}
}

// Quote is the checkout cost breakdown. Arithmetic keeps full float
// precision; two-decimal rounding is a display concern.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// QuoteFor computes the quote for a subtotal. Shipping is free once the
// subtotal reaches the threshold.
func (p Pricing) QuoteFor(subtotal float64) Quote {
	shipping := p.ShippingFee
	if subtotal >= p.FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * p.TaxRate

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
