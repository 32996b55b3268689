package models

import "gorm.io/gorm"

// Store is the tenant boundary. Every other storefront entity is scoped by
// store id, and cross-store access is always a hard authorization failure.
type Store struct {
	gorm.Model
	UserID   uint   `gorm:"not null;index" json:"user_id"` // owning merchant
	Name     string `gorm:"size:255;not null" json:"name"`
	Slug     string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}
