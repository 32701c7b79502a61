package models

import (
	"github.com/shopspring/decimal"

	"github.com/zencrm/backend/internal/domain/lead"
)

// LeadModel is the persistence model for the Lead domain entity.
type LeadModel struct {
	OwnedAggregateModel
	Name         string          `gorm:"type:varchar(200);not null"`
	Email        string          `gorm:"type:varchar(200);index"`
	Phone        string          `gorm:"type:varchar(50);index"`
	PropertyType string          `gorm:"type:varchar(50)"`
	Budget       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Message      string          `gorm:"type:text"`
	Status       lead.LeadStatus `gorm:"type:varchar(20);not null;default:'new'"`
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead entity.
func (m *LeadModel) ToDomain() *lead.Lead {
	return &lead.Lead{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Name:               m.Name,
		Email:              m.Email,
		Phone:              m.Phone,
		PropertyType:       m.PropertyType,
		Budget:             m.Budget,
		Message:            m.Message,
		Status:             m.Status,
		Notes:              m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Lead entity.
func (m *LeadModel) FromDomain(l *lead.Lead) {
	m.FromDomainOwnedAggregateRoot(l.OwnedAggregateRoot)
	m.Name = l.Name
	m.Email = l.Email
	m.Phone = l.Phone
	m.PropertyType = l.PropertyType
	m.Budget = l.Budget
	m.Message = l.Message
	m.Status = l.Status
	m.Notes = l.Notes
}

// LeadModelFromDomain creates a new persistence model from a domain Lead entity.
func LeadModelFromDomain(l *lead.Lead) *LeadModel {
	m := &LeadModel{}
	m.FromDomain(l)
	return m
}
