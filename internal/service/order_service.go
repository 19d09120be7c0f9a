package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shophub/internal/broker"
	"shophub/internal/cart"
	"shophub/internal/models"
	"shophub/internal/store"
	"shophub/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Validation failures block checkout locally, before anything touches the
// store.
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingAddress       = errors.New("shipping address is required")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
)

// OrderService handles checkout and order history
type OrderService struct {
	store     *store.Store
	carts     *cart.Manager
	publisher *broker.EventPublisher
	pricing   Pricing
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	st *store.Store,
	carts *cart.Manager,
	publisher *broker.EventPublisher,
	pricing Pricing,
) *OrderService {
	return &OrderService{
		store:     st,
		carts:     carts,
		publisher: publisher,
		pricing:   pricing,
		logger:    util.GetLogger(),
	}
}

// CheckoutRequest represents a checkout attempt for a session's cart
type CheckoutRequest struct {
	SessionID       string
	UserID          string
	ShippingAddress string
	PaymentMethod   string
}

// Checkout converts the session's cart into a persisted order. On success
// the cart is cleared and an OrderPlaced event is published.
func (s *OrderService) Checkout(ctx context.Context, req *CheckoutRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Checkout")
	defer span.End()

	start := time.Now()
	defer func() {
		util.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	c := s.carts.Cart(req.SessionID)
	lines := c.Lines()

	if len(lines) == 0 {
		util.CheckoutRejectedTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(req.ShippingAddress) == "" {
		util.CheckoutRejectedTotal.WithLabelValues("missing_address").Inc()
		return nil, ErrMissingAddress
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentMethodCOD
	}
	if method != models.PaymentMethodCOD && method != models.PaymentMethodPrepaid {
		util.CheckoutRejectedTotal.WithLabelValues("invalid_payment_method").Inc()
		return nil, ErrInvalidPaymentMethod
	}

	quote := s.pricing.QuoteFor(c.Subtotal())

	order := &models.Order{
		UserID:          req.UserID,
		Subtotal:        quote.Subtotal,
		ShippingCost:    quote.Shipping,
		Tax:             quote.Tax,
		TotalAmount:     quote.Total,
		Status:          models.OrderStatusPending,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		PaymentMethod:   method,
	}

	items := make([]models.OrderItem, 0, len(lines))
	eventItems := make([]models.OrderItemData, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
		})
		eventItems = append(eventItems, models.OrderItemData{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
		})
	}

	if err := s.store.CreateOrder(ctx, order, items); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Float64("total", order.TotalAmount))

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		Items:         eventItems,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}

	c.Clear()
	s.carts.Drop(req.SessionID)

	return order, nil
}

// GetOrder retrieves an order and its items
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, []models.OrderItem, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.store.GetOrderItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	return order, items, nil
}

// ListUserOrders retrieves a user's orders, newest first
func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.store.GetOrdersByUserID(ctx, userID)
}
