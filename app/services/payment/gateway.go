// Package payment is the provider-agnostic boundary between orders and
// remote payment providers. One Gateway implementation exists per provider;
// selection happens through the store's integration record, never by string
// switching in controllers.
package payment

import (
	"context"

	"github.com/shashiranjanraj/vendika/app/models"
)

// ReturnURLs are the store-scoped browser redirect targets a provider sends
// the customer back to.
type ReturnURLs struct {
	Return string
	Cancel string
}

// CreateResult is what checkout needs after a remote intent exists: where to
// send the customer, and the remote identifiers already persisted on the
// order.
type CreateResult struct {
	RemoteID    string `json:"remote_id"`
	Status      string `json:"status"`
	ApprovalURL string `json:"approval_url"`
}

// OnboardingResult carries the provider's merchant signup URL.
type OnboardingResult struct {
	ActionURL string `json:"action_url"`
}

// Gateway is one provider's implementation of the payment boundary.
//
// CreateRemoteOrder persists the remote transaction id and status onto the
// order before returning. CaptureRemoteOrder reconciles the remote outcome
// into the order lifecycle, clearing the cart inside the same transaction as
// the paid transition; calling it again on a settled order is a no-op that
// returns the order unchanged.
type Gateway interface {
	Provider() string
	CreateRemoteOrder(ctx context.Context, order *models.Order, integration *models.PaymentIntegration, urls ReturnURLs) (CreateResult, error)
	CaptureRemoteOrder(ctx context.Context, order *models.Order) error
	CreatePartnerReferral(ctx context.Context, store *models.Store, email, returnURL string) (OnboardingResult, error)
}
