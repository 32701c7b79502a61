package publishing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zencrm/backend/internal/domain/shared"
)

// PlatformCredential holds the server-side secret for one portal. The API
// key never leaves the backend; clients only ever see the derived
// configured/enabled flags through the Platform view.
type PlatformCredential struct {
	shared.BaseAggregateRoot
	Code    PlatformCode `gorm:"type:varchar(30);not null;uniqueIndex"`
	BaseURL string       `gorm:"type:varchar(500)"`
	APIKey  string       `gorm:"type:varchar(500)"`
	Enabled bool         `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PlatformCredential) TableName() string {
	return "platform_credentials"
}

// NewPlatformCredential creates a credential record for a portal
func NewPlatformCredential(code PlatformCode, baseURL, apiKey string) (*PlatformCredential, error) {
	if !code.IsValid() {
		return nil, ErrPlatformUnknown
	}
	return &PlatformCredential{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		BaseURL:           strings.TrimRight(baseURL, "/"),
		APIKey:            apiKey,
	}, nil
}

// IsConfigured reports whether the portal can actually be called
func (c *PlatformCredential) IsConfigured() bool {
	return strings.TrimSpace(c.BaseURL) != "" && strings.TrimSpace(c.APIKey) != ""
}

// UpdateSecret replaces the stored endpoint and key. Clearing the key
// also forces the portal off.
func (c *PlatformCredential) UpdateSecret(baseURL, apiKey string) {
	c.BaseURL = strings.TrimRight(baseURL, "/")
	c.APIKey = apiKey
	if !c.IsConfigured() {
		c.Enabled = false
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetEnabled switches publication to the portal on or off. The stored
// state is clamped so an unconfigured portal stays off.
func (c *PlatformCredential) SetEnabled(desired bool) {
	c.Enabled = desired && c.IsConfigured()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// View projects the credential into its client-safe platform state
func (c *PlatformCredential) View() Platform {
	return NewPlatform(c.Code, c.IsConfigured(), c.Enabled)
}

// CredentialRepository defines the interface for platform credential persistence
type CredentialRepository interface {
	// FindByID finds a credential by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PlatformCredential, error)

	// FindByCode finds the credential for a portal
	FindByCode(ctx context.Context, code PlatformCode) (*PlatformCredential, error)

	// FindAll returns all stored credentials
	FindAll(ctx context.Context) ([]PlatformCredential, error)

	// Save creates or updates a credential
	Save(ctx context.Context, credential *PlatformCredential) error

	// Delete deletes a credential
	Delete(ctx context.Context, id uuid.UUID) error
}
