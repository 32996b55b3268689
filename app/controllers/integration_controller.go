package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/app/services/payment"
	"github.com/shashiranjanraj/vendika/config"
	"github.com/shashiranjanraj/vendika/pkg/bind"
	"github.com/shashiranjanraj/vendika/pkg/response"
	"github.com/shashiranjanraj/vendika/pkg/router"
)

// IntegrationController manages a store's payment integrations: listing,
// enable/disable, and the provider onboarding round-trip.
type IntegrationController struct {
	service  *services.IntegrationService
	payments *payment.Service
	routes   *router.Router
}

func NewIntegrationController(payments *payment.Service, routes *router.Router) *IntegrationController {
	return &IntegrationController{
		service:  services.NewIntegrationService(),
		payments: payments,
		routes:   routes,
	}
}

func (c *IntegrationController) Index(w http.ResponseWriter, r *http.Request) {
	store, err := ownedStore(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	integrations, err := c.service.List(store.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, integrations)
}

// Toggle flips enablement for a configured integration.
func (c *IntegrationController) Toggle(w http.ResponseWriter, r *http.Request) {
	store, err := ownedStore(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	integration, err := c.service.Toggle(store.ID, chi.URLParam(r, "provider"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, integration)
}

type onboardRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Onboard starts PayPal sub-merchant signup and returns the provider's
// action URL for the merchant's browser.
func (c *IntegrationController) Onboard(w http.ResponseWriter, r *http.Request) {
	store, err := ownedStore(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	var body onboardRequest
	if verrs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	returnPath, err := c.routes.URL("integrations.paypal.return", map[string]string{
		"storeID": chi.URLParam(r, "storeID"),
	})
	if err != nil {
		fail(w, r, err)
		return
	}

	result, err := c.payments.StartOnboarding(r.Context(), &store, models.ProviderPayPal, body.Email, config.AppURL()+returnPath)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, result)
}

// OnboardingReturn is PayPal's browser redirect after the merchant finishes
// signup. The query carries the new merchant id and status flags; we record
// them and mark the integration configured and enabled. Replays overwrite
// the same (store, provider) row.
func (c *IntegrationController) OnboardingReturn(w http.ResponseWriter, r *http.Request) {
	storeID, err := uintParam(r, "storeID")
	if err != nil {
		fail(w, r, err)
		return
	}

	q := r.URL.Query()
	merchantID := q.Get("merchantIdInPayPal")
	if merchantID == "" {
		response.Error(w, http.StatusBadRequest, "missing merchantIdInPayPal")
		return
	}

	metadata := map[string]interface{}{
		"permissions_granted": q.Get("permissionsGranted"),
		"consent_status":      q.Get("consentStatus"),
		"is_email_confirmed":  q.Get("isEmailConfirmed"),
		"account_status":      q.Get("accountStatus"),
	}

	integration, err := c.service.CompleteOnboarding(storeID, models.ProviderPayPal, merchantID, metadata)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, integration)
}
