package lead

import (
	"context"

	"github.com/google/uuid"

	"github.com/zencrm/backend/internal/domain/identity"
	"github.com/zencrm/backend/internal/domain/lead"
	"github.com/zencrm/backend/internal/domain/shared"
)

// LeadService handles lead-related business operations
type LeadService struct {
	leadRepo lead.LeadRepository
}

// NewLeadService creates a new LeadService
func NewLeadService(leadRepo lead.LeadRepository) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
	}
}

// Create creates a new lead owned by the acting user
func (s *LeadService) Create(ctx context.Context, req CreateLeadRequest) (*LeadResponse, error) {
	newLead, err := lead.NewLead(req.CreatedBy, req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	if req.PropertyType != "" || req.Budget != nil || req.Message != "" {
		budget := newLead.Budget
		if req.Budget != nil {
			budget = *req.Budget
		}
		if err := newLead.SetInterest(req.PropertyType, budget, req.Message); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		newLead.SetNotes(req.Notes)
	}

	if err := s.leadRepo.Save(ctx, newLead); err != nil {
		return nil, err
	}

	response := ToLeadResponse(newLead)
	return &response, nil
}

// GetByID retrieves a lead by ID
func (s *LeadService) GetByID(ctx context.Context, leadID uuid.UUID) (*LeadResponse, error) {
	found, err := s.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	response := ToLeadResponse(found)
	return &response, nil
}

// List retrieves a list of leads with filtering and pagination
func (s *LeadService) List(ctx context.Context, filter LeadListFilter) ([]LeadListResponse, int64, error) {
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
	if filter.PropertyType != "" {
		domainFilter.Filters["property_type"] = filter.PropertyType
	}

	leads, err := s.leadRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.leadRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToLeadListResponses(leads), total, nil
}

// Update updates a lead. The actor must hold edit rights over it.
func (s *LeadService) Update(ctx context.Context, actor identity.Actor, leadID uuid.UUID, req UpdateLeadRequest) (*LeadResponse, error) {
	found, err := s.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if !actor.CanEdit(found.CreatedBy) {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot modify this lead")
	}

	if req.Name != nil || req.Email != nil || req.Phone != nil {
		name := found.Name
		email := found.Email
		phone := found.Phone

		if req.Name != nil {
			name = *req.Name
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}

		if err := found.Update(name, email, phone); err != nil {
			return nil, err
		}
	}

	if req.PropertyType != nil || req.Budget != nil || req.Message != nil {
		propertyType := found.PropertyType
		budget := found.Budget
		message := found.Message

		if req.PropertyType != nil {
			propertyType = *req.PropertyType
		}
		if req.Budget != nil {
			budget = *req.Budget
		}
		if req.Message != nil {
			message = *req.Message
		}

		if err := found.SetInterest(propertyType, budget, message); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := found.SetStatus(lead.LeadStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		found.SetNotes(*req.Notes)
	}

	if err := s.leadRepo.Save(ctx, found); err != nil {
		return nil, err
	}

	response := ToLeadResponse(found)
	return &response, nil
}

// Delete deletes a lead. The actor must hold delete rights over it.
func (s *LeadService) Delete(ctx context.Context, actor identity.Actor, leadID uuid.UUID) error {
	found, err := s.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		return err
	}

	if !actor.CanDelete(found.CreatedBy) {
		return shared.NewDomainError("FORBIDDEN", "You cannot delete this lead")
	}

	return s.leadRepo.Delete(ctx, leadID)
}
