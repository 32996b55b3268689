package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/pkg/database"
)

func TestToggleRejectsUnconfigured(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	integration := models.PaymentIntegration{
		StoreID:  store.ID,
		Provider: models.ProviderPayPal,
	}
	require.NoError(t, database.DB.Create(&integration).Error)

	svc := services.NewIntegrationService()
	_, err := svc.Toggle(store.ID, models.ProviderPayPal)
	assert.ErrorIs(t, err, errs.ErrNotConfigured)

	var fresh models.PaymentIntegration
	require.NoError(t, database.DB.First(&fresh, integration.ID).Error)
	assert.False(t, fresh.IsEnabled)
}

func TestToggleFlipsConfiguredIntegration(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	integration := models.PaymentIntegration{
		StoreID:      store.ID,
		Provider:     models.ProviderPayPal,
		ProviderID:   "M1",
		IsConfigured: true,
	}
	require.NoError(t, database.DB.Create(&integration).Error)

	svc := services.NewIntegrationService()
	toggled, err := svc.Toggle(store.ID, models.ProviderPayPal)
	require.NoError(t, err)
	assert.True(t, toggled.IsEnabled)
	assert.Equal(t, "active", toggled.Status)

	toggled, err = svc.Toggle(store.ID, models.ProviderPayPal)
	require.NoError(t, err)
	assert.False(t, toggled.IsEnabled)
	assert.Equal(t, "inactive", toggled.Status)
}

func TestCompleteOnboardingUpsertIsIdempotent(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")

	svc := services.NewIntegrationService()
	meta := map[string]interface{}{"consent_status": "true"}

	first, err := svc.CompleteOnboarding(store.ID, models.ProviderPayPal, "MERCHANT-A", meta)
	require.NoError(t, err)
	assert.True(t, first.IsConfigured)
	assert.True(t, first.IsEnabled)
	assert.Equal(t, "MERCHANT-A", first.ProviderID)

	// A replayed onboarding return overwrites the same row.
	second, err := svc.CompleteOnboarding(store.ID, models.ProviderPayPal, "MERCHANT-B", meta)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "MERCHANT-B", second.ProviderID)

	var count int64
	require.NoError(t, database.DB.Model(&models.PaymentIntegration{}).
		Where("store_id = ? AND provider = ?", store.ID, models.ProviderPayPal).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCredentialsEncryptedAtRest(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")

	svc := services.NewIntegrationService()
	saved, err := svc.SaveCredentials(store.ID, models.ProviderPayPal, map[string]string{
		"client_id":     "abc",
		"client_secret": "s3cret",
	})
	require.NoError(t, err)
	assert.True(t, saved.IsConfigured)

	var fresh models.PaymentIntegration
	require.NoError(t, database.DB.First(&fresh, saved.ID).Error)
	assert.NotContains(t, fresh.Credentials, "s3cret")

	creds, err := fresh.GetCredentials()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", creds["client_secret"])
}
