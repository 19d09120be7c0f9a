package models

import "time"

// Product represents a catalog product
type Product struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description"`
	Category      string    `db:"category" json:"category"`
	Price         float64   `db:"price" json:"price"`
	ImageURL      string    `db:"image_url" json:"image_url"`
	StockQuantity int       `db:"stock_quantity" json:"stock_quantity"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Order represents a placed customer order
type Order struct {
	ID              int64     `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	Subtotal        float64   `db:"subtotal" json:"subtotal"`
	ShippingCost    float64   `db:"shipping_cost" json:"shipping_cost"`
	Tax             float64   `db:"tax" json:"tax"`
	TotalAmount     float64   `db:"total_amount" json:"total_amount"`
	Status          string    `db:"status" json:"status"`
	ShippingAddress string    `db:"shipping_address" json:"shipping_address"`
	PaymentMethod   string    `db:"payment_method" json:"payment_method"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// OrderItem represents one product line of an order
type OrderItem struct {
	ID        int64   `db:"id" json:"id"`
	OrderID   int64   `db:"order_id" json:"order_id"`
	ProductID int64   `db:"product_id" json:"product_id"`
	Name      string  `db:"name" json:"name"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
}

// ChatMessage is one entry of a chat transcript
type ChatMessage struct {
	Text    string    `json:"text"`
	FromBot bool      `json:"from_bot"`
	SentAt  time.Time `json:"sent_at"`
}

// Order statuses
const (
	OrderStatusPending   = "PENDING"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
)

// Payment method labels; payment itself is never processed
const (
	PaymentMethodCOD     = "cod"
	PaymentMethodPrepaid = "prepaid"
)

// Categories shipped with the sample catalog
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryHome        = "Home"
)

// ProcessedEvent for idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
