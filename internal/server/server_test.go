package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/internal/server"
	"github.com/shashiranjanraj/vendika/pkg/database"
	"github.com/shashiranjanraj/vendika/pkg/http"
	"github.com/shashiranjanraj/vendika/pkg/testkit"
)

// The full storefront flow over HTTP: register, fill the cart, check out,
// approve at the provider (mocked), capture, and inspect the final state.
func TestStorefrontCheckoutFlow(t *testing.T) {
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

	store := models.Store{UserID: 1, Name: "Demo", Slug: "demo", IsActive: true}
	require.NoError(t, database.DB.Create(&store).Error)
	product := models.Product{StoreID: store.ID, Name: "mug", Price: 1000, Stock: 5, SKU: "MUG", IsActive: true}
	require.NoError(t, database.DB.Create(&product).Error)
	integration := models.PaymentIntegration{
		StoreID: store.ID, Provider: models.ProviderPayPal,
		ProviderID: "MERCHANT1", Status: "active",
		IsConfigured: true, IsEnabled: true,
	}
	require.NoError(t, database.DB.Create(&integration).Error)

	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"tok","expires_in":3600}`).
		Stub("POST", "/confirm-payment-source", 200, `{}`).
		Stub("POST", "/capture", 201, `{"id":"REMOTE1","status":"COMPLETED"}`).
		Stub("GET", "/v2/checkout/orders/REMOTE1", 200, `{"id":"REMOTE1","status":"APPROVED"}`).
		Stub("POST", "/v2/checkout/orders", 201, `{
			"id": "REMOTE1",
			"status": "CREATED",
			"links": [{"href": "https://paypal.test/approve", "rel": "approve", "method": "GET"}]
		}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	handler := server.Routes().Handler()

	do := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	decode := func(rec *httptest.ResponseRecorder) map[string]interface{} {
		t.Helper()
		var envelope struct {
			Data map[string]interface{} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		return envelope.Data
	}

	// Register a customer in the store.
	rec := do("POST", "/store/demo/register", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": "supersecret",
	})
	require.Equal(t, 201, rec.Code, rec.Body.String())
	token, _ := decode(rec)["token"].(string)
	require.NotEmpty(t, token)

	// Cart requires authentication.
	rec = do("GET", "/store/demo/cart", "", nil)
	require.Equal(t, 401, rec.Code)

	// Add two mugs.
	rec = do("POST", "/store/demo/cart", token, map[string]interface{}{
		"product_id": product.ID, "quantity": 2,
	})
	require.Equal(t, 201, rec.Code, rec.Body.String())

	// Check out.
	rec = do("POST", "/store/demo/checkout", token, map[string]string{
		"payment_method":   "paypal",
		"billing_address":  "1 Main St", "billing_city": "Pune", "billing_state": "MH",
		"billing_zip_code": "411001", "billing_country": "IN",
		"shipping_address": "1 Main St", "shipping_city": "Pune", "shipping_state": "MH",
		"shipping_zip_code": "411001", "shipping_country": "IN",
	})
	require.Equal(t, 201, rec.Code, rec.Body.String())
	data := decode(rec)

	orderData, ok := data["order"].(map[string]interface{})
	require.True(t, ok, rec.Body.String())
	assert.Equal(t, "pending", orderData["status"])
	assert.EqualValues(t, 2000, orderData["total_amount"])
	orderNumber, _ := orderData["order_number"].(string)

	paymentData, ok := data["payment"].(map[string]interface{})
	require.True(t, ok, rec.Body.String())
	assert.Equal(t, "https://paypal.test/approve", paymentData["approval_url"])

	// Stock committed, cart intact.
	var freshProduct models.Product
	require.NoError(t, database.DB.First(&freshProduct, product.ID).Error)
	assert.Equal(t, 3, freshProduct.Stock)
	var cartLines int64
	require.NoError(t, database.DB.Model(&models.CartItem{}).Count(&cartLines).Error)
	assert.Equal(t, int64(1), cartLines)

	// Provider redirects back; capture settles the order.
	captureURL := fmt.Sprintf("/store/demo/payments/paypal/capture?token=REMOTE1&order=%s", orderNumber)
	rec = do("GET", captureURL, token, nil)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	assert.Equal(t, "paid", decode(rec)["status"])

	// Cart cleared, stock unchanged by capture.
	require.NoError(t, database.DB.Model(&models.CartItem{}).Count(&cartLines).Error)
	assert.Equal(t, int64(0), cartLines)
	require.NoError(t, database.DB.First(&freshProduct, product.ID).Error)
	assert.Equal(t, 3, freshProduct.Stock)

	// Replaying the redirect is a no-op that reports the same state.
	rec = do("GET", captureURL, token, nil)
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "paid", decode(rec)["status"])
}

func TestCrossStoreTokenRejected(t *testing.T) {
	testkit.SetupDB(t,
		&models.Store{},
		&models.Product{},
		&models.Customer{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentIntegration{},
	)

	storeA := models.Store{UserID: 1, Name: "A", Slug: "store-a", IsActive: true}
	storeB := models.Store{UserID: 1, Name: "B", Slug: "store-b", IsActive: true}
	require.NoError(t, database.DB.Create(&storeA).Error)
	require.NoError(t, database.DB.Create(&storeB).Error)

	handler := server.Routes().Handler()

	// Register against store A, then try to use the token on store B.
	body := bytes.NewBufferString(`{"name":"Jane","email":"jane@example.com","password":"supersecret"}`)
	req := httptest.NewRequest("POST", "/store/store-a/register", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, 201, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	req = httptest.NewRequest("GET", "/store/store-b/cart", nil)
	req.Header.Set("Authorization", "Bearer "+envelope.Data.Token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, nethttp.StatusForbidden, rec.Code)
}
