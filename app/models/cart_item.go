package models

import "gorm.io/gorm"

// CartItem is one (customer, product, quantity) line. One row exists per
// customer/product pair; adding an already-carted product increments the
// quantity instead of duplicating the row.
//
// Carts are physically keyed by customer but logically per-store: reads and
// deletes always filter through the product's store id.
type CartItem struct {
	gorm.Model
	CustomerID uint `gorm:"not null;uniqueIndex:idx_cart_customer_product" json:"customer_id"`
	ProductID  uint `gorm:"not null;uniqueIndex:idx_cart_customer_product" json:"product_id"`
	Quantity   int  `gorm:"not null;default:1" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
}
