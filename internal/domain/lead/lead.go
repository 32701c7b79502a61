package lead

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zencrm/backend/internal/domain/shared"
)

// LeadStatus represents the pipeline stage of a lead
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

// Lead represents a prospective buyer or renter captured from the
// website contact flow or entered by an agent.
type Lead struct {
	shared.OwnedAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null"`
	Email        string          `gorm:"type:varchar(200);index"`
	Phone        string          `gorm:"type:varchar(50);index"`
	PropertyType string          `gorm:"type:varchar(50)"`
	Budget       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Message      string          `gorm:"type:text"`
	Status       LeadStatus      `gorm:"type:varchar(20);not null;default:'new'"`
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Lead) TableName() string {
	return "leads"
}

// NewLead creates a new lead in the new stage
func NewLead(createdBy uuid.UUID, name, email, phone string) (*Lead, error) {
	if err := validateLeadName(name); err != nil {
		return nil, err
	}
	if email == "" && phone == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Lead needs an email or a phone number")
	}
	if email != "" {
		if err := validateLeadEmail(email); err != nil {
			return nil, err
		}
	}
	if phone != "" {
		if err := validateLeadPhone(phone); err != nil {
			return nil, err
		}
	}

	return &Lead{
		OwnedAggregateRoot: shared.NewOwnedAggregateRootWithCreator(createdBy),
		Name:               name,
		Email:              email,
		Phone:              phone,
		Status:             LeadStatusNew,
		Budget:             decimal.Zero,
	}, nil
}

// Update updates the lead's contact details
func (l *Lead) Update(name, email, phone string) error {
	if err := validateLeadName(name); err != nil {
		return err
	}
	if email == "" && phone == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Lead needs an email or a phone number")
	}
	if email != "" {
		if err := validateLeadEmail(email); err != nil {
			return err
		}
	}
	if phone != "" {
		if err := validateLeadPhone(phone); err != nil {
			return err
		}
	}

	l.Name = name
	l.Email = email
	l.Phone = phone
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetInterest records what the lead is looking for
func (l *Lead) SetInterest(propertyType string, budget decimal.Decimal, message string) error {
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}
	if len(propertyType) > 50 {
		return shared.NewDomainError("INVALID_PROPERTY_TYPE", "Property type cannot exceed 50 characters")
	}

	l.PropertyType = propertyType
	l.Budget = budget
	l.Message = message
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetStatus moves the lead to another pipeline stage
func (l *Lead) SetStatus(status LeadStatus) error {
	switch status {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid lead status")
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// SetNotes sets internal notes on the lead
func (l *Lead) SetNotes(notes string) {
	l.Notes = notes
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// IsOpen returns true while the lead is still being worked
func (l *Lead) IsOpen() bool {
	return l.Status != LeadStatusConverted && l.Status != LeadStatusLost
}

// Validation functions

func validateLeadName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Lead name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Lead name cannot exceed 200 characters")
	}
	return nil
}

func validateLeadEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateLeadPhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}
