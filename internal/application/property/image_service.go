package property

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zencrm/backend/internal/domain/identity"
	"github.com/zencrm/backend/internal/domain/property"
	"github.com/zencrm/backend/internal/domain/shared"
)

// ImageServiceConfig holds expiry settings for presigned image URLs
type ImageServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultImageServiceConfig returns the default configuration
func DefaultImageServiceConfig() ImageServiceConfig {
	return ImageServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// ImageService handles listing image uploads through presigned URLs.
// Images live in object storage; the listing stores only storage keys.
type ImageService struct {
	listingRepo property.ListingRepository
	storage     ObjectStorageService
	config      ImageServiceConfig
}

// NewImageService creates a new ImageService
func NewImageService(listingRepo property.ListingRepository, storage ObjectStorageService) *ImageService {
	return &ImageService{
		listingRepo: listingRepo,
		storage:     storage,
		config:      DefaultImageServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *ImageService) SetConfig(config ImageServiceConfig) {
	s.config = config
}

// InitiateUpload issues a presigned PUT URL for one listing image.
// The client uploads directly to storage and then confirms with AttachImage.
func (s *ImageService) InitiateUpload(ctx context.Context, actor identity.Actor, listingID uuid.UUID, req InitiateImageUploadRequest) (*InitiateImageUploadResponse, error) {
	if !AllowedImageContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type is not allowed for listing images")
	}

	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanEdit(listing.CreatedBy) {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot modify this listing")
	}
	if len(listing.Images) >= property.MaxListingImages {
		return nil, shared.NewDomainError("IMAGE_LIMIT_REACHED", "A listing can hold at most 5 images")
	}

	storageKey := buildImageKey(listingID, req.FileName)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to issue upload URL: %w", err)
	}

	return &InitiateImageUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// AttachImage confirms a completed upload and attaches the key to the listing
func (s *ImageService) AttachImage(ctx context.Context, actor identity.Actor, listingID uuid.UUID, storageKey string) (*ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanEdit(listing.CreatedBy) {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot modify this listing")
	}

	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to verify uploaded object: %w", err)
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "Uploaded image was not found in storage")
	}

	if err := listing.AddImage(storageKey); err != nil {
		return nil, err
	}

	if err := s.listingRepo.SaveWithLock(ctx, listing); err != nil {
		return nil, err
	}

	response := ToListingResponse(listing)
	return &response, nil
}

// RemoveImage detaches an image key from the listing and deletes the object
func (s *ImageService) RemoveImage(ctx context.Context, actor identity.Actor, listingID uuid.UUID, storageKey string) (*ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanEdit(listing.CreatedBy) {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot modify this listing")
	}

	if err := listing.RemoveImage(storageKey); err != nil {
		return nil, err
	}

	if err := s.listingRepo.SaveWithLock(ctx, listing); err != nil {
		return nil, err
	}

	// The record no longer references the object; a failed storage delete
	// leaves an orphan, not a broken listing
	if err := s.storage.DeleteObject(ctx, storageKey); err != nil {
		return nil, fmt.Errorf("image detached but storage delete failed: %w", err)
	}

	response := ToListingResponse(listing)
	return &response, nil
}

// ListImages returns presigned download URLs for every image on the listing
func (s *ImageService) ListImages(ctx context.Context, listingID uuid.UUID) ([]ListingImageResponse, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	images := make([]ListingImageResponse, 0, len(listing.Images))
	for _, key := range listing.Images {
		downloadURL, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.config.DownloadURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to issue download URL: %w", err)
		}
		images = append(images, ListingImageResponse{
			StorageKey:  key,
			DownloadURL: downloadURL,
			ExpiresAt:   expiresAt,
		})
	}

	return images, nil
}

// buildImageKey derives a collision-free storage key, keeping the original
// extension so content negotiation keeps working downstream
func buildImageKey(listingID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("listings/%s/%s%s", listingID, uuid.New(), ext)
}
