package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteFreeShippingAtThreshold(t *testing.T) {
	q := DefaultPricing().QuoteFor(100)

	assert.Equal(t, 0.0, q.Shipping)
	assert.InDelta(t, 8.0, q.Tax, 1e-9)
	assert.InDelta(t, 108.0, q.Total, 1e-9)
}

func TestQuoteBelowThreshold(t *testing.T) {
	q := DefaultPricing().QuoteFor(99)

	assert.Equal(t, 10.0, q.Shipping)
	assert.InDelta(t, 7.92, q.Tax, 1e-9)
	assert.InDelta(t, 116.92, q.Total, 1e-9)
}

func TestQuoteEmptyCart(t *testing.T) {
	q := DefaultPricing().QuoteFor(0)

	assert.Equal(t, 10.0, q.Shipping)
	assert.Equal(t, 0.0, q.Tax)
	assert.InDelta(t, 10.0, q.Total, 1e-9)
}
