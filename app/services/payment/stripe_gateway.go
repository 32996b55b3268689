package payment

import (
	"context"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
)

// StripeGateway reserves the provider slot; no Stripe API client is wired
// yet, so every operation reports the integration as unavailable.
type StripeGateway struct{}

func NewStripeGateway() *StripeGateway { return &StripeGateway{} }

func (g *StripeGateway) Provider() string { return models.ProviderStripe }

func (g *StripeGateway) CreateRemoteOrder(ctx context.Context, order *models.Order, integration *models.PaymentIntegration, urls ReturnURLs) (CreateResult, error) {
	return CreateResult{}, errs.ErrIntegrationUnavailable
}

func (g *StripeGateway) CaptureRemoteOrder(ctx context.Context, order *models.Order) error {
	return errs.ErrIntegrationUnavailable
}

func (g *StripeGateway) CreatePartnerReferral(ctx context.Context, store *models.Store, email, returnURL string) (OnboardingResult, error) {
	return OnboardingResult{}, errs.ErrIntegrationUnavailable
}
