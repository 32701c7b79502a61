package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zencrm/backend/internal/domain/property"
	"github.com/zencrm/backend/internal/domain/shared"
	"github.com/zencrm/backend/internal/infrastructure/persistence/models"
)

// GormListingRepository implements ListingRepository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// FindByID finds a listing by its ID
func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Listing, error) {
	var model models.ListingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalID finds an imported listing by its upstream feed identifier
func (r *GormListingRepository) FindByExternalID(ctx context.Context, externalID string) (*property.Listing, error) {
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External ID cannot be empty")
	}
	var model models.ListingModel
	if err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all listings matching the filter
func (r *GormListingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Listing, error) {
	var listingModels []models.ListingModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ListingModel{}), filter)

	if err := query.Find(&listingModels).Error; err != nil {
		return nil, err
	}

	return toDomainListings(listingModels), nil
}

// FindByStatus finds listings by availability status
func (r *GormListingRepository) FindByStatus(ctx context.Context, status property.ListingStatus, filter shared.Filter) ([]property.Listing, error) {
	var listingModels []models.ListingModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ListingModel{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&listingModels).Error; err != nil {
		return nil, err
	}

	return toDomainListings(listingModels), nil
}

// FindBySource finds listings by record origin
func (r *GormListingRepository) FindBySource(ctx context.Context, source property.ListingSource, filter shared.Filter) ([]property.Listing, error) {
	var listingModels []models.ListingModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ListingModel{}).
			Where("source = ?", source),
		filter,
	)

	if err := query.Find(&listingModels).Error; err != nil {
		return nil, err
	}

	return toDomainListings(listingModels), nil
}

// FindByCreator finds listings created by a given user
func (r *GormListingRepository) FindByCreator(ctx context.Context, createdBy uuid.UUID, filter shared.Filter) ([]property.Listing, error) {
	var listingModels []models.ListingModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ListingModel{}).
			Where("created_by = ?", createdBy),
		filter,
	)

	if err := query.Find(&listingModels).Error; err != nil {
		return nil, err
	}

	return toDomainListings(listingModels), nil
}

// Save creates or updates a listing
func (r *GormListingRepository) Save(ctx context.Context, listing *property.Listing) error {
	model := models.ListingModelFromDomain(listing)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a listing with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormListingRepository) SaveWithLock(ctx context.Context, listing *property.Listing) error {
	model := models.ListingModelFromDomain(listing)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", listing.ID, listing.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The listing has been modified by another transaction")
	}
	return nil
}

// Delete deletes a listing
func (r *GormListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ListingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts listings matching the filter
func (r *GormListingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ListingModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByExternalID checks if an imported listing with the given feed identifier exists
func (r *GormListingRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	if externalID == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ListingModel{}).
		Where("external_id = ?", externalID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormListingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ListingSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormListingRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("title ILIKE ? OR location ILIKE ? OR description ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "created_by":
			query = query.Where("created_by = ?", value)
		case "min_bedrooms":
			query = query.Where("bedrooms >= ?", value)
		}
	}

	return query
}

func toDomainListings(listingModels []models.ListingModel) []property.Listing {
	listings := make([]property.Listing, len(listingModels))
	for i, model := range listingModels {
		listings[i] = *model.ToDomain()
	}
	return listings
}

// Ensure GormListingRepository implements ListingRepository
var _ property.ListingRepository = (*GormListingRepository)(nil)
