package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/pkg/orm"
)

const integrationCacheTTL = time.Minute

func integrationKey(storeID uint, provider string) string {
	return fmt.Sprintf("integration:%d:%s", storeID, provider)
}

type IntegrationRepository struct{}

func NewIntegrationRepository() *IntegrationRepository {
	return &IntegrationRepository{}
}

// FindByStoreProvider loads the (store, provider) integration record. The
// payment gate reads this on every checkout and capture, so hits are served
// from the cache; Save and Upsert invalidate the key.
func (r *IntegrationRepository) FindByStoreProvider(storeID uint, provider string) (models.PaymentIntegration, error) {
	var integration models.PaymentIntegration
	err := orm.DB().Model(&models.PaymentIntegration{}).
		Where("store_id = ? AND provider = ?", storeID, provider).
		FirstCached(integrationKey(storeID, provider), integrationCacheTTL, &integration)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return integration, errs.ErrNotFound
	}
	return integration, err
}

func (r *IntegrationRepository) ListForStore(storeID uint) ([]models.PaymentIntegration, error) {
	var integrations []models.PaymentIntegration
	err := orm.DB().Model(&models.PaymentIntegration{}).
		Where("store_id = ?", storeID).
		Order("provider asc").
		Get(&integrations)
	return integrations, err
}

func (r *IntegrationRepository) Save(integration *models.PaymentIntegration) error {
	if err := orm.DB().Save(integration); err != nil {
		return err
	}
	orm.ForgetCache(integrationKey(integration.StoreID, integration.Provider))
	return nil
}

// Upsert writes the (store, provider) row, creating it on first onboarding
// and updating it on repeats. The unique index makes retries idempotent.
func (r *IntegrationRepository) Upsert(integration *models.PaymentIntegration) error {
	existing, err := r.FindByStoreProvider(integration.StoreID, integration.Provider)
	if errors.Is(err, errs.ErrNotFound) {
		if err := orm.DB().Create(integration); err != nil {
			return err
		}
		orm.ForgetCache(integrationKey(integration.StoreID, integration.Provider))
		return nil
	}
	if err != nil {
		return err
	}

	integration.ID = existing.ID
	integration.CreatedAt = existing.CreatedAt
	return r.Save(integration)
}
