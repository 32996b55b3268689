package services

import (
	"errors"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/repositories"
	"github.com/shashiranjanraj/vendika/pkg/logger"
)

// IntegrationService manages the per-store payment integration records that
// gate the gateways.
type IntegrationService struct {
	integrations *repositories.IntegrationRepository
}

func NewIntegrationService() *IntegrationService {
	return &IntegrationService{integrations: repositories.NewIntegrationRepository()}
}

func (s *IntegrationService) List(storeID uint) ([]models.PaymentIntegration, error) {
	return s.integrations.ListForStore(storeID)
}

// Toggle flips enablement. An unconfigured integration cannot be enabled;
// toggling it fails with ErrNotConfigured and leaves it disabled.
func (s *IntegrationService) Toggle(storeID uint, provider string) (models.PaymentIntegration, error) {
	integration, err := s.integrations.FindByStoreProvider(storeID, provider)
	if err != nil {
		return models.PaymentIntegration{}, err
	}
	if !integration.IsConfigured {
		return models.PaymentIntegration{}, errs.ErrNotConfigured
	}

	integration.IsEnabled = !integration.IsEnabled
	if integration.IsEnabled {
		integration.Status = "active"
	} else {
		integration.Status = "inactive"
	}
	if err := s.integrations.Save(&integration); err != nil {
		return models.PaymentIntegration{}, err
	}
	return integration, nil
}

// CompleteOnboarding records the provider's merchant account id after a
// successful onboarding return and marks the integration configured and
// enabled. Keyed by the unique (store, provider) pair, so a replayed return
// overwrites instead of duplicating.
func (s *IntegrationService) CompleteOnboarding(storeID uint, provider, merchantID string, metadata map[string]interface{}) (models.PaymentIntegration, error) {
	integration, err := s.integrations.FindByStoreProvider(storeID, provider)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return models.PaymentIntegration{}, err
	}

	integration.StoreID = storeID
	integration.Provider = provider
	integration.ProviderID = merchantID
	integration.IsConfigured = true
	integration.IsEnabled = true
	integration.Status = "active"
	if metadata != nil {
		if err := integration.SetMetadata(metadata); err != nil {
			return models.PaymentIntegration{}, err
		}
	}

	if err := s.integrations.Upsert(&integration); err != nil {
		return models.PaymentIntegration{}, err
	}

	logger.Info("payment integration onboarded",
		"store_id", storeID,
		"provider", provider,
		"merchant_id", merchantID,
	)
	return integration, nil
}

// SaveCredentials stores a provider credential bundle on the integration,
// encrypted at rest, and marks it configured.
func (s *IntegrationService) SaveCredentials(storeID uint, provider string, creds map[string]string) (models.PaymentIntegration, error) {
	integration, err := s.integrations.FindByStoreProvider(storeID, provider)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return models.PaymentIntegration{}, err
	}

	integration.StoreID = storeID
	integration.Provider = provider
	if err := integration.SetCredentials(creds); err != nil {
		return models.PaymentIntegration{}, err
	}
	integration.IsConfigured = true

	if err := s.integrations.Upsert(&integration); err != nil {
		return models.PaymentIntegration{}, err
	}
	return integration, nil
}
