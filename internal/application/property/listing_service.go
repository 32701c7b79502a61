package property

import (
	"context"

	"github.com/google/uuid"

	"github.com/zencrm/backend/internal/domain/identity"
	"github.com/zencrm/backend/internal/domain/property"
	"github.com/zencrm/backend/internal/domain/shared"
)

// ListingService handles listing-related business operations
type ListingService struct {
	listingRepo property.ListingRepository
}

// NewListingService creates a new ListingService
func NewListingService(listingRepo property.ListingRepository) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
	}
}

// Create creates a new listing owned by the acting user
func (s *ListingService) Create(ctx context.Context, req CreateListingRequest) (*ListingResponse, error) {
	listing, err := property.NewListing(req.CreatedBy, req.Title, req.Location, property.ListingType(req.Type))
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Price != "" {
		if err := listing.Update(req.Title, req.Description, req.Location, req.Price); err != nil {
			return nil, err
		}
	}

	if req.Area != 0 || req.Bedrooms != 0 || req.Bathrooms != 0 {
		if err := listing.SetDetails(req.Area, req.Bedrooms, req.Bathrooms); err != nil {
			return nil, err
		}
	}

	if len(req.PublishPlatforms) > 0 {
		listing.SetPublishPlatforms(req.PublishPlatforms)
	}

	if req.Notes != "" {
		listing.SetNotes(req.Notes)
	}

	if err := s.listingRepo.Save(ctx, listing); err != nil {
		return nil, err
	}

	response := ToListingResponse(listing)
	return &response, nil
}

// GetByID retrieves a listing by ID
func (s *ListingService) GetByID(ctx context.Context, listingID uuid.UUID) (*ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	response := ToListingResponse(listing)
	return &response, nil
}

// List retrieves a list of listings with filtering and pagination
func (s *ListingService) List(ctx context.Context, filter ListingListFilter) ([]ListingListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Source != "" {
		domainFilter.Filters["source"] = filter.Source
	}
	if filter.MinBedrooms > 0 {
		domainFilter.Filters["min_bedrooms"] = filter.MinBedrooms
	}

	listings, err := s.listingRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.listingRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToListingListResponses(listings), total, nil
}

// Update updates a listing. The actor must hold edit rights over it.
func (s *ListingService) Update(ctx context.Context, actor identity.Actor, listingID uuid.UUID, req UpdateListingRequest) (*ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if !actor.CanEdit(listing.CreatedBy) {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot modify this listing")
	}

	if req.Title != nil || req.Description != nil || req.Location != nil || req.Price != nil {
		title := listing.Title
		description := listing.Description
		location := listing.Location
		price := listing.Price

		if req.Title != nil {
			title = *req.Title
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.Location != nil {
			location = *req.Location
		}
		if req.Price != nil {
			price = *req.Price
		}

		if err := listing.Update(title, description, location, price); err != nil {
			return nil, err
		}
	}

	if req.Area != nil || req.Bedrooms != nil || req.Bathrooms != nil {
		area := listing.Area
		bedrooms := listing.Bedrooms
		bathrooms := listing.Bathrooms

		if req.Area != nil {
			area = *req.Area
		}
		if req.Bedrooms != nil {
			bedrooms = *req.Bedrooms
		}
		if req.Bathrooms != nil {
			bathrooms = *req.Bathrooms
		}

		if err := listing.SetDetails(area, bedrooms, bathrooms); err != nil {
			return nil, err
		}
	}

	if req.Type != nil {
		if err := listing.SetType(property.ListingType(*req.Type)); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := listing.SetStatus(property.ListingStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if req.PublishPlatforms != nil {
		listing.SetPublishPlatforms(req.PublishPlatforms)
	}

	if req.Notes != nil {
		listing.SetNotes(*req.Notes)
	}

	if err := s.listingRepo.SaveWithLock(ctx, listing); err != nil {
		return nil, err
	}

	response := ToListingResponse(listing)
	return &response, nil
}

// Delete deletes a listing. The actor must hold delete rights over it.
func (s *ListingService) Delete(ctx context.Context, actor identity.Actor, listingID uuid.UUID) error {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return err
	}

	if !actor.CanDelete(listing.CreatedBy) {
		return shared.NewDomainError("FORBIDDEN", "You cannot delete this listing")
	}

	return s.listingRepo.Delete(ctx, listingID)
}
