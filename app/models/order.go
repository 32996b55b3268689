package models

import (
	"time"

	"gorm.io/gorm"
)

// Order lifecycle states. Pending is the only non-terminal state; paid and
// payment_failed come from the payment capture callback, cancelled from an
// explicit customer/merchant action while still pending.
const (
	OrderStatusPending       = "pending"
	OrderStatusPaid          = "paid"
	OrderStatusPaymentFailed = "payment_failed"
	OrderStatusCancelled     = "cancelled"
)

// Order belongs to exactly one Store and one Customer.
//
// TotalAmount (cents) and every item's price/subtotal are snapshots taken at
// creation time and never recomputed from live products. The address block
// is likewise copied from the checkout request, independent of later edits
// to the Customer record.
type Order struct {
	gorm.Model
	StoreID     uint   `gorm:"not null;index" json:"store_id"`
	CustomerID  uint   `gorm:"not null;index" json:"customer_id"`
	OrderNumber string `gorm:"size:32;not null;index" json:"order_number"`
	TotalAmount int64  `gorm:"not null" json:"total_amount"` // cents
	Status      string `gorm:"size:32;not null;default:pending;index" json:"status"`
	Notes       string `gorm:"type:text" json:"notes"`

	BillingAddress  string `gorm:"size:255;not null" json:"billing_address"`
	BillingCity     string `gorm:"size:100;not null" json:"billing_city"`
	BillingState    string `gorm:"size:100;not null" json:"billing_state"`
	BillingZipCode  string `gorm:"size:20;not null" json:"billing_zip_code"`
	BillingCountry  string `gorm:"size:100;not null" json:"billing_country"`
	ShippingAddress string `gorm:"size:255;not null" json:"shipping_address"`
	ShippingCity    string `gorm:"size:100;not null" json:"shipping_city"`
	ShippingState   string `gorm:"size:100;not null" json:"shipping_state"`
	ShippingZipCode string `gorm:"size:20;not null" json:"shipping_zip_code"`
	ShippingCountry string `gorm:"size:100;not null" json:"shipping_country"`

	PaymentProvider    string     `gorm:"size:50" json:"payment_provider"`
	PaymentID          string     `gorm:"size:128;index" json:"payment_id"` // provider transaction id
	PaymentStatus      string     `gorm:"size:50" json:"payment_status"`
	PaymentCompletedAt *time.Time `json:"payment_completed_at"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem belongs to exactly one Order. Price and Subtotal (cents) are
// captured at order-creation time.
type OrderItem struct {
	gorm.Model
	OrderID   uint  `gorm:"not null;index" json:"order_id"`
	ProductID uint  `gorm:"not null;index" json:"product_id"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	Price     int64 `gorm:"not null" json:"price"`    // unit price snapshot, cents
	Subtotal  int64 `gorm:"not null" json:"subtotal"` // Price * Quantity, cents

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
