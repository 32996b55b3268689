package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/pkg/auth"
)

func init() {
	Register("demo", SeedDemo)
}

// SeedDemo creates one merchant with a store, a few products, and one
// customer. Safe to re-run: it skips seeding when the store slug exists.
func SeedDemo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Store{}).Where("slug = ?", "demo-store").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	merchantHash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}
	merchant := models.User{
		Name:     "Demo Merchant",
		Email:    "merchant@example.com",
		Password: merchantHash,
	}
	if err := db.Create(&merchant).Error; err != nil {
		return err
	}

	store := models.Store{
		UserID:   merchant.ID,
		Name:     "Demo Store",
		Slug:     "demo-store",
		IsActive: true,
	}
	if err := db.Create(&store).Error; err != nil {
		return err
	}

	products := []models.Product{
		{StoreID: store.ID, Name: "Ceramic Mug", Description: "350ml stoneware mug", Price: 1499, Stock: 40, SKU: "MUG-001", IsActive: true},
		{StoreID: store.ID, Name: "Canvas Tote", Description: "Organic cotton tote bag", Price: 2250, Stock: 25, SKU: "TOTE-001", IsActive: true},
		{StoreID: store.ID, Name: "Notebook", Description: "A5 dotted notebook", Price: 899, Stock: 100, SKU: "NB-001", IsActive: true},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	customerHash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}
	customer := models.Customer{
		StoreID:  store.ID,
		Name:     "Demo Customer",
		Email:    "customer@example.com",
		Password: customerHash,
	}
	return db.Create(&customer).Error
}
