package paypal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vendika/pkg/http"
	"github.com/shashiranjanraj/vendika/pkg/testkit"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "20.00", formatAmount(2000))
	assert.Equal(t, "0.99", formatAmount(99))
	assert.Equal(t, "0.05", formatAmount(5))
	assert.Equal(t, "1234.56", formatAmount(123456))
	assert.Equal(t, "-3.50", formatAmount(-350))
}

func TestTokenCachedUntilExpiry(t *testing.T) {
	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"tok1","expires_in":3600}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	ts := NewTokenSource("https://api.test", "id", "secret")

	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok1", tok)

	tok, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok1", tok)
	assert.Equal(t, 1, mt.Calls("POST", "/v1/oauth2/token"))
}

func TestTokenRefreshedAfterExpiry(t *testing.T) {
	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"tok","expires_in":3600}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	now := time.Now()
	ts := NewTokenSource("https://api.test", "id", "secret")
	ts.now = func() time.Time { return now }

	_, err := ts.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, mt.Calls("POST", "/v1/oauth2/token"))

	// Just inside the safety margin: the cached token would expire within 60
	// seconds of real lifetime, so it must be refreshed.
	now = now.Add(3600*time.Second - expirySafetyMargin + time.Second)
	_, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, mt.Calls("POST", "/v1/oauth2/token"))
}

func TestTokenConcurrentRefreshSingleFlight(t *testing.T) {
	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"tok","expires_in":3600}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	ts := NewTokenSource("https://api.test", "id", "secret")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := ts.Token(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "tok", tok)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, mt.Calls("POST", "/v1/oauth2/token"))
}

func TestTokenProviderErrorSurfaces(t *testing.T) {
	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 401, `{"error":"invalid_client","error_description":"Client Authentication failed"}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	ts := NewTokenSource("https://api.test", "bad", "creds")
	_, err := ts.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Client Authentication failed")
}

func TestCreateOrderSendsIdempotencyKey(t *testing.T) {
	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"tok","expires_in":3600}`).
		Stub("POST", "/confirm-payment-source", 200, `{}`).
		Stub("POST", "/v2/checkout/orders", 201, `{
			"id": "PP1",
			"status": "CREATED",
			"links": [{"href": "https://paypal.test/approve/PP1", "rel": "approve", "method": "GET"}]
		}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	client := NewClientWith("https://api.test", "id", "secret", "")
	_, err := client.CreateOrder(context.Background(), CreateOrderParams{
		AmountCents: 2000,
		Currency:    "USD",
		ReferenceID: "ORD-100",
		ReturnURL:   "https://x/return",
		CancelURL:   "https://x/cancel",
	})
	require.NoError(t, err)

	// The local order number keys the create, so a retry on the same order
	// dedupes on the provider side instead of raising a second intent.
	created := mt.LastHeader("POST", "/v2/checkout/orders")
	require.NotNil(t, created)
	assert.Equal(t, "ORD-100", created.Get("PayPal-Request-Id"))

	confirmed := mt.LastHeader("POST", "/confirm-payment-source")
	require.NotNil(t, confirmed)
	assert.Equal(t, "PP1-confirm", confirmed.Get("PayPal-Request-Id"))
}

func TestCaptureOrderSendsIdempotencyKey(t *testing.T) {
	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"tok","expires_in":3600}`).
		Stub("GET", "/v2/checkout/orders/PP1", 200, `{"id": "PP1", "status": "APPROVED"}`).
		Stub("POST", "/capture", 201, `{"id": "PP1", "status": "COMPLETED"}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	client := NewClientWith("https://api.test", "id", "secret", "")
	res, err := client.CaptureOrder(context.Background(), "PP1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)

	captured := mt.LastHeader("POST", "/capture")
	require.NotNil(t, captured)
	assert.Equal(t, "PP1-capture", captured.Get("PayPal-Request-Id"))
}

func TestCreatePartnerReferralExtractsActionURL(t *testing.T) {
	mt := testkit.NewMockTransport().
		Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"tok","expires_in":3600}`).
		Stub("POST", "/v2/customer/partner-referrals", 201, `{
			"links": [
				{"href": "https://paypal.test/self", "rel": "self", "method": "GET"},
				{"href": "https://paypal.test/onboard/XYZ", "rel": "action_url", "method": "GET"}
			]
		}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	client := NewClientWith("https://api.test", "id", "secret", "BNCODE")
	url, err := client.CreatePartnerReferral(context.Background(), ReferralParams{
		Email:      "merchant@example.com",
		TrackingID: "42",
		ReturnURL:  "https://x/return",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://paypal.test/onboard/XYZ", url)
}
