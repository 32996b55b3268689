package models

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/pkg/crypt"
)

// Payment providers known to the platform.
const (
	ProviderPayPal = "paypal"
	ProviderStripe = "stripe"
)

// PaymentIntegration is the per-store, per-provider enablement record that
// gates whether a payment gateway may be invoked. (StoreID, Provider) is
// unique; onboarding upserts against that key.
//
// Credentials holds a provider-specific bundle, AES-GCM encrypted at rest
// via SetCredentials/GetCredentials. Metadata is free-form JSON.
type PaymentIntegration struct {
	gorm.Model
	StoreID      uint   `gorm:"not null;uniqueIndex:idx_integrations_store_provider" json:"store_id"`
	Provider     string `gorm:"size:50;not null;uniqueIndex:idx_integrations_store_provider" json:"provider"`
	ProviderID   string `gorm:"size:255" json:"provider_id"` // remote merchant/account id
	Status       string `gorm:"size:50;not null;default:inactive" json:"status"`
	Metadata     string `gorm:"type:text" json:"-"`
	Credentials  string `gorm:"type:text" json:"-"` // encrypted, never serialised
	IsConfigured bool   `gorm:"not null;default:false" json:"is_configured"`
	IsEnabled    bool   `gorm:"not null;default:false" json:"is_enabled"`
}

// SetCredentials encrypts and stores the credential bundle.
func (p *PaymentIntegration) SetCredentials(creds map[string]string) error {
	enc, err := crypt.EncryptJSON(creds)
	if err != nil {
		return err
	}
	p.Credentials = enc
	return nil
}

// GetCredentials decrypts the stored credential bundle. An empty column
// yields an empty map.
func (p *PaymentIntegration) GetCredentials() (map[string]string, error) {
	if p.Credentials == "" {
		return map[string]string{}, nil
	}
	var creds map[string]string
	if err := crypt.DecryptJSON(p.Credentials, &creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// SetMetadata JSON-encodes the metadata map into the text column.
func (p *PaymentIntegration) SetMetadata(meta map[string]interface{}) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	p.Metadata = string(raw)
	return nil
}

// GetMetadata decodes the metadata column. An empty column yields an empty map.
func (p *PaymentIntegration) GetMetadata() (map[string]interface{}, error) {
	if p.Metadata == "" {
		return map[string]interface{}{}, nil
	}
	var meta map[string]interface{}
	if err := json.Unmarshal([]byte(p.Metadata), &meta); err != nil {
		return nil, err
	}
	return meta, nil
}
