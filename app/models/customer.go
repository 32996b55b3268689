package models

import "gorm.io/gorm"

// Customer belongs to exactly one Store. The same email may register in two
// different stores, but only once per store; uniqueness is (store, email).
//
// The address fields hold the customer's last-used shipping details; checkout
// writes them back on every placed order as a convenience for the next one.
type Customer struct {
	gorm.Model
	StoreID  uint   `gorm:"not null;uniqueIndex:idx_customers_store_email" json:"store_id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255;not null;uniqueIndex:idx_customers_store_email" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Phone    string `gorm:"size:50" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	City     string `gorm:"size:100" json:"city"`
	State    string `gorm:"size:100" json:"state"`
	ZipCode  string `gorm:"size:20" json:"zip_code"`
	Country  string `gorm:"size:100" json:"country"`
}
