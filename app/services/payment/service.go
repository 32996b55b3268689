package payment

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/repositories"
)

// Service fronts the gateways: it enforces the integration gate, picks the
// provider implementation, and resolves which local order a capture callback
// belongs to.
type Service struct {
	registry     *Registry
	integrations *repositories.IntegrationRepository
	orders       *repositories.OrderRepository
}

func NewService(registry *Registry) *Service {
	return &Service{
		registry:     registry,
		integrations: repositories.NewIntegrationRepository(),
		orders:       repositories.NewOrderRepository(),
	}
}

// gate loads the (store, provider) integration and rejects unless it is both
// configured and enabled.
func (s *Service) gate(storeID uint, provider string) (models.PaymentIntegration, error) {
	integration, err := s.integrations.FindByStoreProvider(storeID, provider)
	if errors.Is(err, errs.ErrNotFound) {
		return integration, errs.ErrIntegrationUnavailable
	}
	if err != nil {
		return integration, err
	}
	if !integration.IsConfigured || !integration.IsEnabled {
		return integration, errs.ErrIntegrationUnavailable
	}
	return integration, nil
}

// Start creates the remote payment intent for a pending order and returns
// the approval redirect.
func (s *Service) Start(ctx context.Context, order *models.Order, urls ReturnURLs) (CreateResult, error) {
	if order.Status != models.OrderStatusPending {
		return CreateResult{}, errs.ErrInvalidTransition
	}

	integration, err := s.gate(order.StoreID, order.PaymentProvider)
	if err != nil {
		return CreateResult{}, err
	}

	gateway, err := s.registry.Gateway(order.PaymentProvider)
	if err != nil {
		return CreateResult{}, err
	}
	return gateway.CreateRemoteOrder(ctx, order, &integration, urls)
}

// Capture resolves the callback to a local order and reconciles the remote
// outcome into it. The provider token is the primary correlation key; the
// order number we threaded through the return URL is the backstop, so no
// heuristic lookup is ever needed.
func (s *Service) Capture(ctx context.Context, provider, token, orderNumber string, customerID, storeID uint) (models.Order, error) {
	order, err := s.resolve(token, orderNumber, customerID, storeID)
	if err != nil {
		return models.Order{}, err
	}

	gateway, err := s.registry.Gateway(provider)
	if err != nil {
		return models.Order{}, err
	}
	if err := gateway.CaptureRemoteOrder(ctx, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *Service) resolve(token, orderNumber string, customerID, storeID uint) (models.Order, error) {
	if token != "" {
		order, err := s.orders.FindByPaymentID(token, customerID)
		if err == nil {
			if order.StoreID != storeID {
				return models.Order{}, errs.ErrNotFound
			}
			return order, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return models.Order{}, err
		}
	}
	if orderNumber != "" {
		return s.orders.FindByOrderNumber(orderNumber, customerID, storeID)
	}
	return models.Order{}, errs.ErrNotFound
}

// StartOnboarding begins the provider's sub-merchant signup for a store.
// Onboarding has no configured-integration precondition; it is how the
// integration becomes configured in the first place.
func (s *Service) StartOnboarding(ctx context.Context, store *models.Store, provider, email, returnURL string) (OnboardingResult, error) {
	gateway, err := s.registry.Gateway(provider)
	if err != nil {
		return OnboardingResult{}, err
	}
	return gateway.CreatePartnerReferral(ctx, store, email, returnURL)
}
