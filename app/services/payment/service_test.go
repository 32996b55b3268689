package payment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/app/services/payment"
	"github.com/shashiranjanraj/vendika/app/services/paypal"
	"github.com/shashiranjanraj/vendika/pkg/database"
	"github.com/shashiranjanraj/vendika/pkg/http"
	"github.com/shashiranjanraj/vendika/pkg/testkit"
)

const paypalBase = "https://api-m.sandbox.paypal.com"

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

func makeRegistry() *payment.Registry {
	registry := payment.NewRegistry()
	client := paypal.NewClientWith(paypalBase, "client-id", "client-secret", "")
	registry.Register(payment.NewPayPalGateway(client))
	registry.Register(payment.NewStripeGateway())
	return registry
}

// placeOrder seeds a store, customer and cart line and runs checkout.
func placeOrder(t *testing.T, qty int) (models.Store, models.Customer, models.Product, models.Order) {
	t.Helper()

	store := models.Store{UserID: 1, Name: "Shop", Slug: "shop", IsActive: true}
	require.NoError(t, database.DB.Create(&store).Error)

	product := models.Product{StoreID: store.ID, Name: "mug", Price: 1000, Stock: 5, SKU: "MUG", IsActive: true}
	require.NoError(t, database.DB.Create(&product).Error)

	customer := models.Customer{StoreID: store.ID, Name: "C", Email: "c@example.com", Password: "x"}
	require.NoError(t, database.DB.Create(&customer).Error)

	line := models.CartItem{CustomerID: customer.ID, ProductID: product.ID, Quantity: qty}
	require.NoError(t, database.DB.Create(&line).Error)

	order, err := services.NewCheckoutService().PlaceOrder(customer.ID, store.ID, services.CheckoutRequest{
		PaymentMethod:   models.ProviderPayPal,
		BillingAddress:  "1 Main St", BillingCity: "Pune", BillingState: "MH",
		BillingZipCode:  "411001", BillingCountry: "IN",
		ShippingAddress: "1 Main St", ShippingCity: "Pune", ShippingState: "MH",
		ShippingZipCode: "411001", ShippingCountry: "IN",
	})
	require.NoError(t, err)
	return store, customer, product, order
}

func enableIntegration(t *testing.T, storeID uint) {
	t.Helper()
	integration := models.PaymentIntegration{
		StoreID:      storeID,
		Provider:     models.ProviderPayPal,
		ProviderID:   "MERCHANT123",
		Status:       "active",
		IsConfigured: true,
		IsEnabled:    true,
	}
	require.NoError(t, database.DB.Create(&integration).Error)
}

func TestStartRequiresEnabledIntegration(t *testing.T) {
	setup(t)
	store, _, _, order := placeOrder(t, 1)
	svc := payment.NewService(makeRegistry())
	urls := payment.ReturnURLs{Return: "https://x/r", Cancel: "https://x/c"}

	// No integration row at all.
	_, err := svc.Start(context.Background(), &order, urls)
	assert.ErrorIs(t, err, errs.ErrIntegrationUnavailable)

	// Present but disabled.
	integration := models.PaymentIntegration{
		StoreID: store.ID, Provider: models.ProviderPayPal,
		ProviderID: "M", IsConfigured: true, IsEnabled: false,
	}
	require.NoError(t, database.DB.Create(&integration).Error)

	_, err = svc.Start(context.Background(), &order, urls)
	assert.ErrorIs(t, err, errs.ErrIntegrationUnavailable)
}

func TestStartCreatesRemoteOrder(t *testing.T) {
	setup(t)
	store, _, _, order := placeOrder(t, 2)
	enableIntegration(t, store.ID)

	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"tok","expires_in":3600}`).
		Stub("POST", "/confirm-payment-source", 200, `{}`).
		Stub("POST", "/v2/checkout/orders", 201, `{
			"id": "REMOTE1",
			"status": "CREATED",
			"links": [
				{"href": "https://paypal.test/approve/REMOTE1", "rel": "approve", "method": "GET"}
			]
		}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	svc := payment.NewService(makeRegistry())
	result, err := svc.Start(context.Background(), &order, payment.ReturnURLs{
		Return: "https://x/r", Cancel: "https://x/c",
	})
	require.NoError(t, err)

	assert.Equal(t, "REMOTE1", result.RemoteID)
	assert.Equal(t, "https://paypal.test/approve/REMOTE1", result.ApprovalURL)

	// The remote id and status were persisted on the order.
	var fresh models.Order
	require.NoError(t, database.DB.First(&fresh, order.ID).Error)
	assert.Equal(t, "REMOTE1", fresh.PaymentID)
	assert.Equal(t, "CREATED", fresh.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, fresh.Status)
}

func TestStartRemoteFailureLeavesOrderRetryable(t *testing.T) {
	setup(t)
	store, _, _, order := placeOrder(t, 1)
	enableIntegration(t, store.ID)

	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"tok","expires_in":3600}`).
		Stub("POST", "/v2/checkout/orders", 422, `{"name":"UNPROCESSABLE_ENTITY","message":"amount mismatch"}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	svc := payment.NewService(makeRegistry())
	_, err := svc.Start(context.Background(), &order, payment.ReturnURLs{Return: "https://x/r", Cancel: "https://x/c"})
	require.Error(t, err)
	assert.True(t, errs.IsProviderError(err))
	assert.Contains(t, err.Error(), "amount mismatch")

	var fresh models.Order
	require.NoError(t, database.DB.First(&fresh, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, fresh.Status)
	assert.Empty(t, fresh.PaymentID)
}

func TestCaptureIsIdempotent(t *testing.T) {
	setup(t)
	store, customer, product, order := placeOrder(t, 2)
	enableIntegration(t, store.ID)

	// Attach the remote id as Start would have.
	order.PaymentID = "REMOTE1"
	order.PaymentStatus = "APPROVED"
	require.NoError(t, database.DB.Save(&order).Error)

	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"tok","expires_in":3600}`).
		Stub("GET", "/v2/checkout/orders/REMOTE1", 200, `{"id":"REMOTE1","status":"APPROVED"}`).
		Stub("POST", "/v2/checkout/orders/REMOTE1/capture", 201, `{"id":"REMOTE1","status":"COMPLETED"}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	svc := payment.NewService(makeRegistry())
	captured, err := svc.Capture(context.Background(), models.ProviderPayPal, "REMOTE1", order.OrderNumber, customer.ID, store.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, captured.Status)
	require.NotNil(t, captured.PaymentCompletedAt)

	// Cart cleared exactly once, stock unchanged by capture.
	var cartLines int64
	require.NoError(t, database.DB.Model(&models.CartItem{}).Where("customer_id = ?", customer.ID).Count(&cartLines).Error)
	assert.Equal(t, int64(0), cartLines)

	var fresh models.Product
	require.NoError(t, database.DB.First(&fresh, product.ID).Error)
	assert.Equal(t, 3, fresh.Stock)

	// A replayed callback is a no-op returning the same terminal status.
	captureCalls := mt.Calls("POST", "/v2/checkout/orders/REMOTE1/capture")
	replayed, err := svc.Capture(context.Background(), models.ProviderPayPal, "REMOTE1", order.OrderNumber, customer.ID, store.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, replayed.Status)
	assert.Equal(t, captureCalls, mt.Calls("POST", "/v2/checkout/orders/REMOTE1/capture"))
}

func TestCaptureDeclineMarksPaymentFailed(t *testing.T) {
	setup(t)
	store, customer, _, order := placeOrder(t, 1)
	enableIntegration(t, store.ID)

	order.PaymentID = "REMOTE2"
	require.NoError(t, database.DB.Save(&order).Error)

	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"tok","expires_in":3600}`).
		Stub("GET", "/v2/checkout/orders/REMOTE2", 200, `{"id":"REMOTE2","status":"APPROVED"}`).
		Stub("POST", "/v2/checkout/orders/REMOTE2/capture", 422, `{"name":"UNPROCESSABLE_ENTITY","details":[{"issue":"INSTRUMENT_DECLINED","description":"instrument declined"}]}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	svc := payment.NewService(makeRegistry())
	failed, err := svc.Capture(context.Background(), models.ProviderPayPal, "REMOTE2", order.OrderNumber, customer.ID, store.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaymentFailed, failed.Status)

	// The provider's decline reason is recorded, not discarded.
	assert.Equal(t, "instrument declined", failed.PaymentStatus)
	var persisted models.Order
	require.NoError(t, database.DB.First(&persisted, order.ID).Error)
	assert.Equal(t, "instrument declined", persisted.PaymentStatus)

	// The cart survives a failed payment for retry.
	var cartLines int64
	require.NoError(t, database.DB.Model(&models.CartItem{}).Where("customer_id = ?", customer.ID).Count(&cartLines).Error)
	assert.Equal(t, int64(1), cartLines)
}

func TestCaptureCrossStoreTokenRejected(t *testing.T) {
	setup(t)
	store, customer, _, order := placeOrder(t, 1)
	enableIntegration(t, store.ID)

	order.PaymentID = "REMOTE3"
	require.NoError(t, database.DB.Save(&order).Error)

	otherStore := models.Store{UserID: 1, Name: "Other", Slug: "other", IsActive: true}
	require.NoError(t, database.DB.Create(&otherStore).Error)

	svc := payment.NewService(makeRegistry())
	_, err := svc.Capture(context.Background(), models.ProviderPayPal, "REMOTE3", order.OrderNumber, customer.ID, otherStore.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUnknownProviderRejected(t *testing.T) {
	setup(t)
	_, customer, _, order := placeOrder(t, 1)

	svc := payment.NewService(makeRegistry())
	_, err := svc.Capture(context.Background(), "square", "", order.OrderNumber, customer.ID, order.StoreID)
	assert.ErrorIs(t, err, errs.ErrIntegrationUnavailable)
}
