package service

import (
	"context"
	"testing"

	"shophub/internal/cart"
	"shophub/internal/models"

	"github.com/stretchr/testify/assert"
)

// Validation runs before the store or the broker are touched, so a service
// with nil collaborators is enough to exercise the rejection paths.
func validationOnlyService(carts *cart.Manager) *OrderService {
	return NewOrderService(nil, carts, nil, DefaultPricing())
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	carts := cart.NewManager()
	s := validationOnlyService(carts)

	_, err := s.Checkout(context.Background(), &CheckoutRequest{
		SessionID:       "s1",
		UserID:          "user-1",
		ShippingAddress: "1 Main St",
	})

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutRejectsBlankShippingAddress(t *testing.T) {
	carts := cart.NewManager()
	carts.Cart("s1").Add(models.Product{ID: 1, Price: 20})
	s := validationOnlyService(carts)

	for _, address := range []string{"", "   ", "\t"} {
		_, err := s.Checkout(context.Background(), &CheckoutRequest{
			SessionID:       "s1",
			UserID:          "user-1",
			ShippingAddress: address,
		})

		assert.ErrorIs(t, err, ErrMissingAddress)
	}

	// The cart is untouched by a rejected checkout.
	assert.Equal(t, 1, carts.Cart("s1").ItemCount())
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	carts := cart.NewManager()
	carts.Cart("s1").Add(models.Product{ID: 1, Price: 20})
	s := validationOnlyService(carts)

	_, err := s.Checkout(context.Background(), &CheckoutRequest{
		SessionID:       "s1",
		UserID:          "user-1",
		ShippingAddress: "1 Main St",
		PaymentMethod:   "barter",
	})

	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestSampleCatalogShape(t *testing.T) {
	products := sampleProducts()

	assert.Len(t, products, 60)

	perCategory := map[string]int{}
	names := map[string]bool{}
	for _, p := range products {
		perCategory[p.Category]++
		assert.Greater(t, p.Price, 0.0)
		assert.GreaterOrEqual(t, p.StockQuantity, 0)
		assert.NotEmpty(t, p.Description)
		assert.NotEmpty(t, p.ImageURL)
		assert.False(t, names[p.Name], "duplicate product name %q", p.Name)
		names[p.Name] = true
	}

	assert.Equal(t, 20, perCategory[models.CategoryElectronics])
	assert.Equal(t, 20, perCategory[models.CategoryClothing])
	assert.Equal(t, 20, perCategory[models.CategoryHome])
}
