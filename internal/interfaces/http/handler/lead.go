package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	leadapp "github.com/zencrm/backend/internal/application/lead"
)

// LeadHandler handles sales lead endpoints
type LeadHandler struct {
	BaseHandler
	leadService *leadapp.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *leadapp.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// Create creates a new lead owned by the acting user
func (h *LeadHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req leadapp.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.CreatedBy = actor.UserID

	lead, err := h.leadService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, lead)
}

// Get retrieves a lead by ID
func (h *LeadHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lead)
}

// List retrieves leads with filtering and pagination
func (h *LeadHandler) List(c *gin.Context) {
	var filter leadapp.LeadListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	leads, total, err := h.leadService.List(c.Request.Context(), filter)
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

	h.SuccessWithMeta(c, leads, total, page, pageSize)
}

// Update updates a lead, subject to ownership rules
func (h *LeadHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	var req leadapp.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	lead, err := h.leadService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lead)
}

// Delete deletes a lead, subject to ownership rules
func (h *LeadHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	if err := h.leadService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
