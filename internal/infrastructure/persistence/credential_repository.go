package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zencrm/backend/internal/domain/publishing"
	"github.com/zencrm/backend/internal/domain/shared"
	"github.com/zencrm/backend/internal/infrastructure/persistence/models"
)

// GormCredentialRepository implements CredentialRepository using GORM
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GormCredentialRepository
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// FindByID finds a credential by its ID
func (r *GormCredentialRepository) FindByID(ctx context.Context, id uuid.UUID) (*publishing.PlatformCredential, error) {
	var model models.PlatformCredentialModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds the credential for a portal
func (r *GormCredentialRepository) FindByCode(ctx context.Context, code publishing.PlatformCode) (*publishing.PlatformCredential, error) {
	var model models.PlatformCredentialModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all stored credentials
func (r *GormCredentialRepository) FindAll(ctx context.Context) ([]publishing.PlatformCredential, error) {
	var credentialModels []models.PlatformCredentialModel
	if err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&credentialModels).Error; err != nil {
		return nil, err
	}

	credentials := make([]publishing.PlatformCredential, len(credentialModels))
	for i, model := range credentialModels {
		credentials[i] = *model.ToDomain()
	}
	return credentials, nil
}

// Save creates or updates a credential
func (r *GormCredentialRepository) Save(ctx context.Context, credential *publishing.PlatformCredential) error {
	model := models.PlatformCredentialModelFromDomain(credential)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a credential
func (r *GormCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PlatformCredentialModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCredentialRepository implements CredentialRepository
var _ publishing.CredentialRepository = (*GormCredentialRepository)(nil)
