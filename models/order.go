package models

import "time"

type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusConcluded  OrderStatus = "CONCLUDED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// LegalTransition reports whether an order may move from its current status
// to next. CONCLUDED and CANCELLED are terminal.
func (s OrderStatus) LegalTransition(next OrderStatus) bool {
	if s == next {
		return true
	}
	if s != OrderStatusInProgress {
		return false
	}
	return next == OrderStatusConcluded || next == OrderStatusCancelled
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusRejected  PaymentStatus = "REJECTED"
)

type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	ShopperID uint        `gorm:"index" json:"shopper_id"`
	Status    OrderStatus `gorm:"type:varchar(16);default:'IN_PROGRESS'" json:"status"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	// Payment info
	PaymentMethod string        `json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);default:'PENDING'" json:"payment_status"`

	// Shipping info
	DeliveryLocation  Location   `gorm:"type:jsonb" json:"delivery_location"`
	ShippingMethod    string     `json:"shipping_method"`
	TrackingNumber    string     `json:"tracking_number"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`

	// Discounts and promotions
	DiscountCode   *string `json:"discount_code"`
	DiscountAmount float64 `json:"discount_amount"`

	// Tax and totals
	Subtotal     float64 `json:"subtotal"`
	TaxAmount    float64 `json:"tax_amount"`
	ShippingCost float64 `json:"shipping_cost"`
	TotalValue   float64 `json:"total_value"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
}

// OrderItem links an order to a product. UnitPrice is the product price at
// the moment the order was placed and never changes afterwards.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"index" json:"order_id"`
	ProductID  uint    `json:"product_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}
