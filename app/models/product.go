package models

import "gorm.io/gorm"

// Product belongs to exactly one Store.
//
// Price is a fixed-point amount in minor currency units (cents), so order
// totals never accumulate float error. Stock must never go negative; the
// checkout path enforces that with a guarded decrement.
type Product struct {
	gorm.Model
	StoreID     uint   `gorm:"not null;index" json:"store_id"`
	Name        string `gorm:"size:255;not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int64  `gorm:"not null;default:0" json:"price"` // cents
	Stock       int    `gorm:"not null;default:0" json:"stock"`
	SKU         string `gorm:"size:100;index" json:"sku"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}
