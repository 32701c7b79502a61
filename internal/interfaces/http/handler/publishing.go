package handler

import (
	"github.com/gin-gonic/gin"

	publishingapp "github.com/zencrm/backend/internal/application/publishing"
	"github.com/zencrm/backend/internal/domain/publishing"
)

// PublishingHandler handles platform registry and publish relay endpoints
type PublishingHandler struct {
	BaseHandler
	platformService *publishingapp.PlatformService
	publishService  *publishingapp.PublishService
}

// NewPublishingHandler creates a new PublishingHandler
func NewPublishingHandler(
	platformService *publishingapp.PlatformService,
	publishService *publishingapp.PublishService,
) *PublishingHandler {
	return &PublishingHandler{
		platformService: platformService,
		publishService:  publishService,
	}
}

// ListPlatforms returns the full platform catalog with configured and
// enabled flags. Credentials never appear in the response.
func (h *PublishingHandler) ListPlatforms(c *gin.Context) {
	platforms, err := h.platformService.ListPlatforms(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, platforms)
}

// GetPlatform returns one platform's state
func (h *PublishingHandler) GetPlatform(c *gin.Context) {
	code := publishing.PlatformCode(c.Param("code"))

	platform, err := h.platformService.GetPlatform(c.Request.Context(), code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, platform)
}

// Toggle switches a platform on or off. Enabling an unconfigured
// platform clamps back to disabled.
func (h *PublishingHandler) Toggle(c *gin.Context) {
	code := publishing.PlatformCode(c.Param("code"))

	var req publishingapp.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	platform, err := h.platformService.Toggle(c.Request.Context(), code, req.Enabled)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, platform)
}

// UpsertCredential stores or rotates a platform credential
func (h *PublishingHandler) UpsertCredential(c *gin.Context) {
	code := publishing.PlatformCode(c.Param("code"))

	var req publishingapp.UpsertCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	platform, err := h.platformService.UpsertCredential(c.Request.Context(), code, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, platform)
}

// DeleteCredential removes a platform credential
func (h *PublishingHandler) DeleteCredential(c *gin.Context) {
	code := publishing.PlatformCode(c.Param("code"))

	if err := h.platformService.DeleteCredential(c.Request.Context(), code); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Relay forwards one offer operation to an external portal. The upstream
// verdict comes back in the body; only transport-level failures are
// errors here.
func (h *PublishingHandler) Relay(c *gin.Context) {
	var req publishingapp.RelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.publishService.Relay(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
