package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/pkg/database"
	"github.com/shashiranjanraj/vendika/pkg/testkit"
)

func setup(t *testing.T) {
	t.Helper()
	testkit.SetupDB(t,
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.Customer{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentIntegration{},
	)
}

func makeStore(t *testing.T, slug string) models.Store {
	t.Helper()
	store := models.Store{UserID: 1, Name: slug, Slug: slug, IsActive: true}
	require.NoError(t, database.DB.Create(&store).Error)
	return store
}

func makeProduct(t *testing.T, storeID uint, name string, price int64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		StoreID:  storeID,
		Name:     name,
		Price:    price,
		Stock:    stock,
		SKU:      name,
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(&product).Error)
	return product
}

func makeCustomer(t *testing.T, storeID uint, email string) models.Customer {
	t.Helper()
	customer := models.Customer{
		StoreID:  storeID,
		Name:     "Test Customer",
		Email:    email,
		Password: "x",
	}
	require.NoError(t, database.DB.Create(&customer).Error)
	return customer
}

func addCartLine(t *testing.T, customerID, productID uint, qty int) models.CartItem {
	t.Helper()
	line := models.CartItem{CustomerID: customerID, ProductID: productID, Quantity: qty}
	require.NoError(t, database.DB.Create(&line).Error)
	return line
}

func validCheckout() services.CheckoutRequest {
	return services.CheckoutRequest{
		PaymentMethod:   models.ProviderPayPal,
		BillingAddress:  "1 Main St",
		BillingCity:     "Pune",
		BillingState:    "MH",
		BillingZipCode:  "411001",
		BillingCountry:  "IN",
		ShippingAddress: "1 Main St",
		ShippingCity:    "Pune",
		ShippingState:   "MH",
		ShippingZipCode: "411001",
		ShippingCountry: "IN",
		Phone:           "9999999999",
	}
}

func productStock(t *testing.T, id uint) int {
	t.Helper()
	var product models.Product
	require.NoError(t, database.DB.First(&product, id).Error)
	return product.Stock
}

func cartCount(t *testing.T, customerID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.DB.Model(&models.CartItem{}).Where("customer_id = ?", customerID).Count(&n).Error)
	return n
}
