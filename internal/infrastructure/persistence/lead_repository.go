package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zencrm/backend/internal/domain/lead"
	"github.com/zencrm/backend/internal/domain/shared"
	"github.com/zencrm/backend/internal/infrastructure/persistence/models"
)

// GormLeadRepository implements LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByID finds a lead by its ID
func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all leads matching the filter
func (r *GormLeadRepository) FindAll(ctx context.Context, filter shared.Filter) ([]lead.Lead, error) {
	var leadModels []models.LeadModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LeadModel{}), filter)

	if err := query.Find(&leadModels).Error; err != nil {
		return nil, err
	}

	return toDomainLeads(leadModels), nil
}

// FindByStatus finds leads in a pipeline stage
func (r *GormLeadRepository) FindByStatus(ctx context.Context, status lead.LeadStatus, filter shared.Filter) ([]lead.Lead, error) {
	var leadModels []models.LeadModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LeadModel{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&leadModels).Error; err != nil {
		return nil, err
	}

	return toDomainLeads(leadModels), nil
}

// FindByCreator finds leads created by a given user
func (r *GormLeadRepository) FindByCreator(ctx context.Context, createdBy uuid.UUID, filter shared.Filter) ([]lead.Lead, error) {
	var leadModels []models.LeadModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LeadModel{}).
			Where("created_by = ?", createdBy),
		filter,
	)

	if err := query.Find(&leadModels).Error; err != nil {
		return nil, err
	}

	return toDomainLeads(leadModels), nil
}

// Save creates or updates a lead
func (r *GormLeadRepository) Save(ctx context.Context, l *lead.Lead) error {
	model := models.LeadModelFromDomain(l)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a lead
func (r *GormLeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LeadModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts leads matching the filter
func (r *GormLeadRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.LeadModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormLeadRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LeadSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLeadRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "property_type":
			query = query.Where("property_type = ?", value)
		case "created_by":
			query = query.Where("created_by = ?", value)
		}
	}

	return query
}

func toDomainLeads(leadModels []models.LeadModel) []lead.Lead {
	leads := make([]lead.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return leads
}

// Ensure GormLeadRepository implements LeadRepository
var _ lead.LeadRepository = (*GormLeadRepository)(nil)
