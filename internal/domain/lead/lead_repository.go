package lead

import (
	"context"

	"github.com/google/uuid"
	"github.com/zencrm/backend/internal/domain/shared"
)

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	// FindByID finds a lead by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lead, error)

	// FindAll finds all leads matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Lead, error)

	// FindByStatus finds leads in a pipeline stage
	FindByStatus(ctx context.Context, status LeadStatus, filter shared.Filter) ([]Lead, error)

	// FindByCreator finds leads created by a given user
	FindByCreator(ctx context.Context, createdBy uuid.UUID, filter shared.Filter) ([]Lead, error)

	// Save creates or updates a lead
	Save(ctx context.Context, lead *Lead) error

	// Delete deletes a lead
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts leads matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
