package models

import "time"

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Address is the shipping/billing snapshot captured at checkout time.
type Address struct {
	Name       string `json:"name" validate:"required"`
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
}

// Order is a customer order. Reference is the unique user-facing
// identifier; line items snapshot the name and price at order time.
type Order struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	Reference     string      `json:"reference" gorm:"uniqueIndex;type:varchar(36)"`
	UserID        uint        `json:"user_id" gorm:"index"`
	Status        string      `json:"status" gorm:"type:varchar(20)"`
	PaymentStatus string      `json:"payment_status" gorm:"type:varchar(20)"`
	Total         float64     `json:"total"`
	Shipping      Address     `json:"shipping" gorm:"embedded;embeddedPrefix:shipping_"`
	Billing       Address     `json:"billing" gorm:"embedded;embeddedPrefix:billing_"`
	Items         []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"index"`
	SneakerID uint    `json:"sneaker_id"`
	VariantID uint    `json:"variant_id"`
	Name      string  `json:"name" gorm:"type:varchar(100)"`
	Color     string  `json:"color" gorm:"type:varchar(50)"`
	Size      string  `json:"size" gorm:"type:varchar(10)"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
