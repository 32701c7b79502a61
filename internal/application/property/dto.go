package property

import (
	"time"

	"github.com/google/uuid"

	"github.com/zencrm/backend/internal/domain/property"
)

// =============================================================================
// Listing DTOs
// =============================================================================

// CreateListingRequest represents a request to create a new listing
type CreateListingRequest struct {
	Title            string   `json:"title" binding:"required,min=1,max=200"`
	Description      string   `json:"description"`
	Location         string   `json:"location" binding:"required,min=1,max=200"`
	Price            string   `json:"price" binding:"max=50"`
	Type             string   `json:"type" binding:"required,oneof=apartment house land commercial"`
	Area             float64  `json:"area" binding:"min=0"`
	Bedrooms         int      `json:"bedrooms" binding:"min=0"`
	Bathrooms        int      `json:"bathrooms" binding:"min=0"`
	PublishPlatforms []string `json:"publish_platforms"`
	Notes            string   `json:"notes"`
	CreatedBy        uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// UpdateListingRequest represents a request to update a listing
type UpdateListingRequest struct {
	Title            *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description      *string  `json:"description"`
	Location         *string  `json:"location" binding:"omitempty,min=1,max=200"`
	Price            *string  `json:"price" binding:"omitempty,max=50"`
	Type             *string  `json:"type" binding:"omitempty,oneof=apartment house land commercial"`
	Status           *string  `json:"status" binding:"omitempty,oneof=available reserved sold rented"`
	Area             *float64 `json:"area" binding:"omitempty,min=0"`
	Bedrooms         *int     `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms        *int     `json:"bathrooms" binding:"omitempty,min=0"`
	PublishPlatforms []string `json:"publish_platforms"`
	Notes            *string  `json:"notes"`
}

// ListingResponse represents a listing in API responses
type ListingResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Location         string     `json:"location"`
	Price            string     `json:"price"`
	Type             string     `json:"type"`
	Status           string     `json:"status"`
	Area             float64    `json:"area"`
	Bedrooms         int        `json:"bedrooms"`
	Bathrooms        int        `json:"bathrooms"`
	Images           []string   `json:"images"`
	PublishPlatforms []string   `json:"publish_platforms"`
	Source           string     `json:"source"`
	ExternalID       string     `json:"external_id,omitempty"`
	Notes            string     `json:"notes"`
	CreatedBy        *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Version          int        `json:"version"`
}

// ListingListResponse represents a list item for listings
type ListingListResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Price     string    `json:"price"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Area      float64   `json:"area"`
	Bedrooms  int       `json:"bedrooms"`
	Bathrooms int       `json:"bathrooms"`
	Source    string    `json:"source"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"created_at"`
}

// ListingListFilter represents filter options for listing list
type ListingListFilter struct {
	Search      string `form:"search"`
	Status      string `form:"status" binding:"omitempty,oneof=available reserved sold rented"`
	Type        string `form:"type" binding:"omitempty,oneof=apartment house land commercial"`
	Source      string `form:"source" binding:"omitempty,oneof=manual import_external"`
	MinBedrooms int    `form:"min_bedrooms" binding:"omitempty,min=0"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// InitiateImageUploadRequest asks for a presigned upload slot for one image
type InitiateImageUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// InitiateImageUploadResponse carries the presigned upload URL
type InitiateImageUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ListingImageResponse describes one stored image with a presigned view URL
type ListingImageResponse struct {
	StorageKey  string    `json:"storage_key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// =============================================================================
// Mapping functions
// =============================================================================

// ToListingResponse maps a listing to its API representation
func ToListingResponse(l *property.Listing) ListingResponse {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	platforms := l.PublishPlatforms
	if platforms == nil {
		platforms = []string{}
	}
	return ListingResponse{
		ID:               l.ID,
		Title:            l.Title,
		Description:      l.Description,
		Location:         l.Location,
		Price:            l.Price,
		Type:             string(l.Type),
		Status:           string(l.Status),
		Area:             l.Area,
		Bedrooms:         l.Bedrooms,
		Bathrooms:        l.Bathrooms,
		Images:           images,
		PublishPlatforms: platforms,
		Source:           string(l.Source),
		ExternalID:       l.ExternalID,
		Notes:            l.Notes,
		CreatedBy:        l.CreatedBy,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
		Version:          l.Version,
	}
}

// ToListingListResponse maps a listing to its list representation
func ToListingListResponse(l *property.Listing) ListingListResponse {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return ListingListResponse{
		ID:        l.ID,
		Title:     l.Title,
		Location:  l.Location,
		Price:     l.Price,
		Type:      string(l.Type),
		Status:    string(l.Status),
		Area:      l.Area,
		Bedrooms:  l.Bedrooms,
		Bathrooms: l.Bathrooms,
		Source:    string(l.Source),
		Images:    images,
		CreatedAt: l.CreatedAt,
	}
}

// ToListingListResponses maps a slice of listings to list representations
func ToListingListResponses(listings []property.Listing) []ListingListResponse {
	responses := make([]ListingListResponse, len(listings))
	for i := range listings {
		responses[i] = ToListingListResponse(&listings[i])
	}
	return responses
}
