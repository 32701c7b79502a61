package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/zencrm/backend/internal/domain/shared"
)

// ListingRepository defines the interface for listing persistence
type ListingRepository interface {
	// FindByID finds a listing by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)

	// FindByExternalID finds an imported listing by its upstream feed identifier
	FindByExternalID(ctx context.Context, externalID string) (*Listing, error)

	// FindAll finds all listings matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Listing, error)

	// FindByStatus finds listings by availability status
	FindByStatus(ctx context.Context, status ListingStatus, filter shared.Filter) ([]Listing, error)

	// FindBySource finds listings by record origin
	FindBySource(ctx context.Context, source ListingSource, filter shared.Filter) ([]Listing, error)

	// FindByCreator finds listings created by a given user
	FindByCreator(ctx context.Context, createdBy uuid.UUID, filter shared.Filter) ([]Listing, error)

	// Save creates or updates a listing
	Save(ctx context.Context, listing *Listing) error

	// SaveWithLock saves a listing with optimistic locking (version check)
	SaveWithLock(ctx context.Context, listing *Listing) error

	// Delete deletes a listing
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts listings matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByExternalID checks if an imported listing with the given feed identifier exists
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
}
