package paypal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/config"
	"github.com/shashiranjanraj/vendika/pkg/http"
	"github.com/shashiranjanraj/vendika/pkg/logger"
)

const requestTimeout = 20 * time.Second

// Client talks to the PayPal checkout and partner APIs using a shared
// platform credential. Per-store routing happens through the payee merchant
// id on each order, not through per-store credentials.
type Client struct {
	baseURL string
	bnCode  string
	tokens  *TokenSource
}

func NewClient() *Client {
	base := config.PayPalBaseURL()
	return &Client{
		baseURL: base,
		bnCode:  config.PayPalBNCode(),
		tokens:  NewTokenSource(base, config.PayPalClientID(), config.PayPalClientSecret()),
	}
}

// NewClientWith builds a client against an explicit endpoint and credential
// pair. Useful when the defaults from the environment do not apply.
func NewClientWith(baseURL, clientID, clientSecret, bnCode string) *Client {
	return &Client{
		baseURL: baseURL,
		bnCode:  bnCode,
		tokens:  NewTokenSource(baseURL, clientID, clientSecret),
	}
}

// CreateOrderParams describes one remote payment intent.
type CreateOrderParams struct {
	AmountCents int64
	Currency    string
	MerchantID  string // payee, from the store's integration record
	ReferenceID string // local order number
	BrandName   string
	ReturnURL   string
	CancelURL   string
}

// OrderResult is the slice of the remote order we act on.
type OrderResult struct {
	ID         string
	Status     string
	ApproveURL string
}

// CreateOrder creates a remote order with CAPTURE intent and returns its id
// and the approval link the customer's browser is sent to.
func (c *Client) CreateOrder(ctx context.Context, p CreateOrderParams) (OrderResult, error) {
	body := createOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			ReferenceID: p.ReferenceID,
			Amount: amount{
				CurrencyCode: p.Currency,
				Value:        formatAmount(p.AmountCents),
			},
		}},
		ApplicationContext: applicationContext{
			BrandName:          p.BrandName,
			ReturnURL:          p.ReturnURL,
			CancelURL:          p.CancelURL,
			UserAction:         "PAY_NOW",
			ShippingPreference: "NO_SHIPPING",
		},
	}
	if p.MerchantID != "" {
		body.PurchaseUnits[0].Payee = &payee{MerchantID: p.MerchantID}
	}

	// The reference id keys the request on PayPal's side, so a retried
	// create for the same local order dedupes instead of double-charging.
	var remote orderResponse
	if err := c.post(ctx, "/v2/checkout/orders", p.ReferenceID, body, &remote); err != nil {
		return OrderResult{}, err
	}

	// PayPal treats confirmation as an optimization for the redirect flow;
	// its failure is logged and ignored.
	confirm := map[string]interface{}{
		"payment_source": map[string]interface{}{
			"paypal": map[string]interface{}{},
		},
	}
	if err := c.post(ctx, "/v2/checkout/orders/"+remote.ID+"/confirm-payment-source", remote.ID+"-confirm", confirm, nil); err != nil {
		logger.Warn("paypal confirm-payment-source failed", "order_id", remote.ID, "error", err)
	}

	return OrderResult{
		ID:         remote.ID,
		Status:     remote.Status,
		ApproveURL: remote.linkByRel("approve"),
	}, nil
}

// GetOrder fetches the current remote status.
func (c *Client) GetOrder(ctx context.Context, remoteID string) (OrderResult, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return OrderResult{}, err
	}

	resp, err := http.Get(c.baseURL + "/v2/checkout/orders/" + remoteID).
		Bearer(token).
		Timeout(requestTimeout).
		WithContext(ctx).
		Send()
	if err != nil {
		return OrderResult{}, &errs.ProviderError{Provider: "paypal", Message: "order lookup failed", Err: err}
	}
	if !resp.OK() {
		var pe errorResponse
		_ = resp.JSON(&pe)
		return OrderResult{}, &errs.ProviderError{Provider: "paypal", Message: pe.text()}
	}

	var remote orderResponse
	if err := resp.JSON(&remote); err != nil {
		return OrderResult{}, &errs.ProviderError{Provider: "paypal", Message: "malformed order response", Err: err}
	}
	return OrderResult{ID: remote.ID, Status: remote.Status}, nil
}

// CaptureOrder moves an approved remote order to capture, unless the remote
// order is already COMPLETED, in which case the current state is returned
// without re-invoking capture.
func (c *Client) CaptureOrder(ctx context.Context, remoteID string) (OrderResult, error) {
	current, err := c.GetOrder(ctx, remoteID)
	if err != nil {
		return OrderResult{}, err
	}
	if current.Status == StatusCompleted {
		return current, nil
	}

	var remote orderResponse
	if err := c.post(ctx, "/v2/checkout/orders/"+remoteID+"/capture", remoteID+"-capture", struct{}{}, &remote); err != nil {
		return OrderResult{}, err
	}
	return OrderResult{ID: remote.ID, Status: remote.Status}, nil
}

// ReferralParams describes one merchant onboarding referral.
type ReferralParams struct {
	Email      string
	TrackingID string // local store identifier round-tripped through onboarding
	ReturnURL  string
}

// CreatePartnerReferral starts sub-merchant onboarding and returns the
// action URL the merchant completes signup at.
func (c *Client) CreatePartnerReferral(ctx context.Context, p ReferralParams) (string, error) {
	body := partnerReferralRequest{
		Email:      p.Email,
		TrackingID: p.TrackingID,
		Operations: []operation{{
			Operation: "API_INTEGRATION",
			APIIntegrationPreference: &apiIntegrationPreference{
				RestAPIIntegration: restAPIIntegration{
					IntegrationMethod: "PAYPAL",
					IntegrationType:   "THIRD_PARTY",
					ThirdPartyDetails: &thirdPartyDetails{
						Features: []string{"PAYMENT", "REFUND"},
					},
				},
			},
		}},
		Products: []string{"EXPRESS_CHECKOUT"},
		LegalConsents: []legalConsent{{
			Type:    "SHARE_DATA_CONSENT",
			Granted: true,
		}},
		PartnerConfigOverride: &partnerConfig{ReturnURL: p.ReturnURL},
	}

	var remote partnerReferralResponse
	if err := c.post(ctx, "/v2/customer/partner-referrals", uuid.NewString(), body, &remote); err != nil {
		return "", err
	}

	for _, l := range remote.Links {
		if l.Rel == "action_url" {
			return l.Href, nil
		}
	}
	return "", &errs.ProviderError{Provider: "paypal", Message: "referral response missing action_url"}
}

// post issues an authenticated JSON POST and decodes the response into dest
// when dest is non-nil. requestID is sent as PayPal-Request-Id so the
// provider treats retries of the same logical operation as one request.
func (c *Client) post(ctx context.Context, path, requestID string, body, dest interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req := http.Post(c.baseURL + path).
		Bearer(token).
		Header("Content-Type", "application/json").
		Body(body).
		Timeout(requestTimeout).
		WithContext(ctx)
	if requestID != "" {
		req = req.Header("PayPal-Request-Id", requestID)
	}
	if c.bnCode != "" {
		req = req.Header("PayPal-Partner-Attribution-Id", c.bnCode)
	}

	resp, err := req.Send()
	if err != nil {
		return &errs.ProviderError{Provider: "paypal", Message: fmt.Sprintf("request to %s failed", path), Err: err}
	}
	if !resp.OK() {
		var pe errorResponse
		_ = resp.JSON(&pe)
		return &errs.ProviderError{Provider: "paypal", Message: pe.text()}
	}
	if dest != nil {
		if err := resp.JSON(dest); err != nil {
			return &errs.ProviderError{Provider: "paypal", Message: "malformed response", Err: err}
		}
	}
	return nil
}
