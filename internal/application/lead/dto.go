package lead

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zencrm/backend/internal/domain/lead"
)

// CreateLeadRequest represents a request to create a new lead
type CreateLeadRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Email        string           `json:"email" binding:"omitempty,email,max=200"`
	Phone        string           `json:"phone" binding:"max=50"`
	PropertyType string           `json:"property_type" binding:"max=50"`
	Budget       *decimal.Decimal `json:"budget"`
	Message      string           `json:"message"`
	Notes        string           `json:"notes"`
	CreatedBy    uuid.UUID        `json:"-"` // Set from JWT context, not from request body
}

// UpdateLeadRequest represents a request to update a lead
type UpdateLeadRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email        *string          `json:"email" binding:"omitempty,email,max=200"`
	Phone        *string          `json:"phone" binding:"omitempty,max=50"`
	PropertyType *string          `json:"property_type" binding:"omitempty,max=50"`
	Budget       *decimal.Decimal `json:"budget"`
	Message      *string          `json:"message"`
	Status       *string          `json:"status" binding:"omitempty,oneof=new contacted qualified converted lost"`
	Notes        *string          `json:"notes"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	PropertyType string          `json:"property_type"`
	Budget       decimal.Decimal `json:"budget"`
	Message      string          `json:"message"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes"`
	CreatedBy    *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// LeadListResponse represents a list item for leads
type LeadListResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	PropertyType string          `json:"property_type"`
	Budget       decimal.Decimal `json:"budget"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// LeadListFilter represents filter options for lead list
type LeadListFilter struct {
	Search       string `form:"search"`
	Status       string `form:"status" binding:"omitempty,oneof=new contacted qualified converted lost"`
	PropertyType string `form:"property_type"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToLeadResponse maps a lead to its API representation
func ToLeadResponse(l *lead.Lead) LeadResponse {
	return LeadResponse{
		ID:           l.ID,
		Name:         l.Name,
		Email:        l.Email,
		Phone:        l.Phone,
		PropertyType: l.PropertyType,
		Budget:       l.Budget,
		Message:      l.Message,
		Status:       string(l.Status),
		Notes:        l.Notes,
		CreatedBy:    l.CreatedBy,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
		Version:      l.Version,
	}
}

// ToLeadListResponse maps a lead to its list representation
func ToLeadListResponse(l *lead.Lead) LeadListResponse {
	return LeadListResponse{
		ID:           l.ID,
		Name:         l.Name,
		Email:        l.Email,
		Phone:        l.Phone,
		PropertyType: l.PropertyType,
		Budget:       l.Budget,
		Status:       string(l.Status),
		CreatedAt:    l.CreatedAt,
	}
}

// ToLeadListResponses maps a slice of leads to list representations
func ToLeadListResponses(leads []lead.Lead) []LeadListResponse {
	responses := make([]LeadListResponse, len(leads))
	for i := range leads {
		responses[i] = ToLeadListResponse(&leads[i])
	}
	return responses
}
