package models

import (
	"github.com/zencrm/backend/internal/domain/publishing"
)

// PlatformCredentialModel is the persistence model for the PlatformCredential domain entity.
type PlatformCredentialModel struct {
	AggregateModel
	Code    publishing.PlatformCode `gorm:"type:varchar(30);not null;uniqueIndex"`
	BaseURL string                  `gorm:"type:varchar(500)"`
	APIKey  string                  `gorm:"type:varchar(500)"`
	Enabled bool                    `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PlatformCredentialModel) TableName() string {
	return "platform_credentials"
}

// ToDomain converts the persistence model to a domain PlatformCredential entity.
func (m *PlatformCredentialModel) ToDomain() *publishing.PlatformCredential {
	return &publishing.PlatformCredential{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		BaseURL:           m.BaseURL,
		APIKey:            m.APIKey,
		Enabled:           m.Enabled,
	}
}

// FromDomain populates the persistence model from a domain PlatformCredential entity.
func (m *PlatformCredentialModel) FromDomain(c *publishing.PlatformCredential) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.BaseURL = c.BaseURL
	m.APIKey = c.APIKey
	m.Enabled = c.Enabled
}

// PlatformCredentialModelFromDomain creates a new persistence model from a domain PlatformCredential entity.
func PlatformCredentialModelFromDomain(c *publishing.PlatformCredential) *PlatformCredentialModel {
	m := &PlatformCredentialModel{}
	m.FromDomain(c)
	return m
}
