package models

import (
	"github.com/zencrm/backend/internal/domain/property"
)

// ListingModel is the persistence model for the Listing domain entity.
type ListingModel struct {
	OwnedAggregateModel
	Title            string                 `gorm:"type:varchar(200);not null"`
	Description      string                 `gorm:"type:text"`
	Location         string                 `gorm:"type:varchar(200);not null"`
	Price            string                 `gorm:"type:varchar(50)"`
	Type             property.ListingType   `gorm:"type:varchar(20);not null;default:'apartment'"`
	Status           property.ListingStatus `gorm:"type:varchar(20);not null;default:'available'"`
	Area             float64                `gorm:"not null;default:0"`
	Bedrooms         int                    `gorm:"not null;default:0"`
	Bathrooms        int                    `gorm:"not null;default:0"`
	Images           []string               `gorm:"serializer:json;type:jsonb"`
	PublishPlatforms []string               `gorm:"serializer:json;type:jsonb"`
	Source           property.ListingSource `gorm:"type:varchar(30);not null;default:'manual'"`
	ExternalID       string                 `gorm:"type:varchar(100);index"`
	Notes            string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ListingModel) TableName() string {
	return "listings"
}

// ToDomain converts the persistence model to a domain Listing entity.
func (m *ListingModel) ToDomain() *property.Listing {
	return &property.Listing{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Title:              m.Title,
		Description:        m.Description,
		Location:           m.Location,
		Price:              m.Price,
		Type:               m.Type,
		Status:             m.Status,
		Area:               m.Area,
		Bedrooms:           m.Bedrooms,
		Bathrooms:          m.Bathrooms,
		Images:             m.Images,
		PublishPlatforms:   m.PublishPlatforms,
		Source:             m.Source,
		ExternalID:         m.ExternalID,
		Notes:              m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Listing entity.
func (m *ListingModel) FromDomain(l *property.Listing) {
	m.FromDomainOwnedAggregateRoot(l.OwnedAggregateRoot)
	m.Title = l.Title
	m.Description = l.Description
	m.Location = l.Location
	m.Price = l.Price
	m.Type = l.Type
	m.Status = l.Status
	m.Area = l.Area
	m.Bedrooms = l.Bedrooms
	m.Bathrooms = l.Bathrooms
	m.Images = l.Images
	m.PublishPlatforms = l.PublishPlatforms
	m.Source = l.Source
	m.ExternalID = l.ExternalID
	m.Notes = l.Notes
}

// ListingModelFromDomain creates a new persistence model from a domain Listing entity.
func ListingModelFromDomain(l *property.Listing) *ListingModel {
	m := &ListingModel{}
	m.FromDomain(l)
	return m
}
