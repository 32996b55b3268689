// Package paypal is the REST client for PayPal's v1/v2 checkout APIs. It
// knows wire formats and authentication only; order persistence and
// lifecycle live in the payment gateway that wraps it.
package paypal

import "fmt"

// Remote order statuses we branch on. PayPal reports others (CREATED,
// SAVED, APPROVED); anything not COMPLETED after a capture attempt is a
// failure from our side.
const (
	StatusCompleted = "COMPLETED"
)

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// formatAmount renders cents as the two-decimal string PayPal expects.
func formatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

type payee struct {
	MerchantID string `json:"merchant_id,omitempty"`
}

type purchaseUnit struct {
	ReferenceID string `json:"reference_id,omitempty"`
	Amount      amount `json:"amount"`
	Payee       *payee `json:"payee,omitempty"`
}

type applicationContext struct {
	BrandName          string `json:"brand_name,omitempty"`
	ReturnURL          string `json:"return_url"`
	CancelURL          string `json:"cancel_url"`
	UserAction         string `json:"user_action,omitempty"`
	ShippingPreference string `json:"shipping_preference,omitempty"`
}

type createOrderRequest struct {
	Intent             string             `json:"intent"`
	PurchaseUnits      []purchaseUnit     `json:"purchase_units"`
	ApplicationContext applicationContext `json:"application_context"`
}

type link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []link `json:"links"`
}

func (o orderResponse) linkByRel(rel string) string {
	for _, l := range o.Links {
		if l.Rel == rel {
			return l.Href
		}
	}
	return ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Desc    string `json:"error_description"`
	Details []struct {
		Issue       string `json:"issue"`
		Description string `json:"description"`
	} `json:"details"`
}

func (e errorResponse) text() string {
	switch {
	case len(e.Details) > 0 && e.Details[0].Description != "":
		return e.Details[0].Description
	case e.Message != "":
		return e.Message
	case e.Desc != "":
		return e.Desc
	case e.Name != "":
		return e.Name
	case e.Error != "":
		return e.Error
	}
	return "unknown provider error"
}

// Partner referral (merchant onboarding) request/response.

type partnerReferralRequest struct {
	Email                 string         `json:"email,omitempty"`
	TrackingID            string         `json:"tracking_id"`
	Operations            []operation    `json:"operations"`
	Products              []string       `json:"products"`
	LegalConsents         []legalConsent `json:"legal_consents"`
	PartnerConfigOverride *partnerConfig `json:"partner_config_override,omitempty"`
}

type operation struct {
	Operation                string                    `json:"operation"`
	APIIntegrationPreference *apiIntegrationPreference `json:"api_integration_preference,omitempty"`
}

type apiIntegrationPreference struct {
	RestAPIIntegration restAPIIntegration `json:"rest_api_integration"`
}

type restAPIIntegration struct {
	IntegrationMethod string         `json:"integration_method"`
	IntegrationType   string         `json:"integration_type"`
	ThirdPartyDetails *thirdPartyDetails `json:"third_party_details,omitempty"`
}

type thirdPartyDetails struct {
	Features []string `json:"features"`
}

type legalConsent struct {
	Type    string `json:"type"`
	Granted bool   `json:"granted"`
}

type partnerConfig struct {
	ReturnURL string `json:"return_url"`
}

type partnerReferralResponse struct {
	Links []link `json:"links"`
}
