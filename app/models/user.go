package models

import "gorm.io/gorm"

// User is a platform merchant account. Merchants own stores and manage
// products, orders, and payment integrations through the dashboard API.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
}
