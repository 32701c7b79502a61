package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	propertyapp "github.com/zencrm/backend/internal/application/property"
	publishingapp "github.com/zencrm/backend/internal/application/publishing"
)

// ListingHandler handles property listing endpoints
type ListingHandler struct {
	BaseHandler
	listingService *propertyapp.ListingService
	imageService   *propertyapp.ImageService
	publishService *publishingapp.PublishService
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(
	listingService *propertyapp.ListingService,
	imageService *propertyapp.ImageService,
	publishService *publishingapp.PublishService,
) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		imageService:   imageService,
		publishService: publishService,
	}
}

// Create creates a new listing owned by the acting user
func (h *ListingHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req propertyapp.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.CreatedBy = actor.UserID

	listing, err := h.listingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, listing)
}

// Get retrieves a listing by ID
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	listing, err := h.listingService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, listing)
}

// List retrieves listings with filtering and pagination
func (h *ListingHandler) List(c *gin.Context) {
	var filter propertyapp.ListingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	listings, total, err := h.listingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	h.SuccessWithMeta(c, listings, total, page, pageSize)
}

// Update updates a listing, subject to ownership rules
func (h *ListingHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	var req propertyapp.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	listing, err := h.listingService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, listing)
}

// Delete deletes a listing, subject to ownership rules
func (h *ListingHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	if err := h.listingService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Publish pushes a listing to every platform selected on it. Partial
// failures are reported per platform, never collapsed into one error.
func (h *ListingHandler) Publish(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	result, err := h.publishService.PublishListing(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// InitiateImageUpload issues a presigned upload URL for a new listing image
func (h *ListingHandler) InitiateImageUpload(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	var req propertyapp.InitiateImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	upload, err := h.imageService.InitiateUpload(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, upload)
}

// AttachImageRequest confirms a completed upload by its storage key
type AttachImageRequest struct {
	StorageKey string `json:"storage_key" binding:"required,max=500"`
}

// AttachImage attaches an uploaded image to the listing
func (h *ListingHandler) AttachImage(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	var req AttachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	listing, err := h.imageService.AttachImage(c.Request.Context(), actor, id, req.StorageKey)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, listing)
}

// ListImages returns presigned download URLs for the listing's images
func (h *ListingHandler) ListImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	images, err := h.imageService.ListImages(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, images)
}

// RemoveImage detaches an image from the listing and deletes the object
func (h *ListingHandler) RemoveImage(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	storageKey := c.Query("storage_key")
	if storageKey == "" {
		h.BadRequest(c, "storage_key query parameter is required")
		return
	}

	listing, err := h.imageService.RemoveImage(c.Request.Context(), actor, id, storageKey)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, listing)
}
