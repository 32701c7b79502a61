package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zencrm/backend/internal/domain/shared"
)

// ListingStatus represents the availability status of a listing
type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusReserved  ListingStatus = "reserved"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusRented    ListingStatus = "rented"
)

// ListingType represents the kind of property
type ListingType string

const (
	ListingTypeApartment  ListingType = "apartment"
	ListingTypeHouse      ListingType = "house"
	ListingTypeLand       ListingType = "land"
	ListingTypeCommercial ListingType = "commercial"
)

// ListingSource identifies where a listing record originated
type ListingSource string

const (
	ListingSourceManual   ListingSource = "manual"
	ListingSourceExternal ListingSource = "import_external"
)

// MaxListingImages limits the number of stored image references per listing
const MaxListingImages = 5

// Listing represents a property offered by the agency.
// It is the aggregate root for the property context.
type Listing struct {
	shared.OwnedAggregateRoot
	Title            string        `gorm:"type:varchar(200);not null"`
	Description      string        `gorm:"type:text"`
	Location         string        `gorm:"type:varchar(200);not null"`
	Price            string        `gorm:"type:varchar(50)"` // free-form, may carry currency symbols
	Type             ListingType   `gorm:"type:varchar(20);not null;default:'apartment'"`
	Status           ListingStatus `gorm:"type:varchar(20);not null;default:'available'"`
	Area             float64       `gorm:"not null;default:0"` // square meters
	Bedrooms         int           `gorm:"not null;default:0"`
	Bathrooms        int           `gorm:"not null;default:0"`
	Images           []string      `gorm:"serializer:json"`
	PublishPlatforms []string      `gorm:"serializer:json"` // platform codes selected for publication
	Source           ListingSource `gorm:"type:varchar(30);not null;default:'manual'"`
	ExternalID       string        `gorm:"type:varchar(100);index"` // identifier in the upstream feed
	Notes            string        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Listing) TableName() string {
	return "listings"
}

// NewListing creates a manually entered listing with required fields
func NewListing(createdBy uuid.UUID, title, location string, listingType ListingType) (*Listing, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateLocation(location); err != nil {
		return nil, err
	}
	if err := validateListingType(listingType); err != nil {
		return nil, err
	}

	return &Listing{
		OwnedAggregateRoot: shared.NewOwnedAggregateRootWithCreator(createdBy),
		Title:              title,
		Location:           location,
		Type:               listingType,
		Status:             ListingStatusAvailable,
		Source:             ListingSourceManual,
		Images:             []string{},
		PublishPlatforms:   []string{},
	}, nil
}

// NewImportedListing creates a listing from an external feed item.
// Missing fields degrade to defaults so a sparse feed never aborts an import.
func NewImportedListing(externalID, title, location string) *Listing {
	if strings.TrimSpace(title) == "" {
		title = "Proprietate importată"
	}
	if strings.TrimSpace(location) == "" {
		location = "Necunoscut"
	}
	return &Listing{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(),
		Title:              title,
		Location:           location,
		Type:               ListingTypeApartment,
		Status:             ListingStatusAvailable,
		Source:             ListingSourceExternal,
		ExternalID:         externalID,
		Bedrooms:           1,
		Bathrooms:          1,
		Images:             []string{},
		PublishPlatforms:   []string{},
	}
}

// Update updates the listing's descriptive fields
func (l *Listing) Update(title, description, location, price string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateLocation(location); err != nil {
		return err
	}
	if len(price) > 50 {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot exceed 50 characters")
	}

	l.Title = title
	l.Description = description
	l.Location = location
	l.Price = price
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetDetails updates the physical attributes of the property
func (l *Listing) SetDetails(area float64, bedrooms, bathrooms int) error {
	if area < 0 {
		return shared.NewDomainError("INVALID_AREA", "Area cannot be negative")
	}
	if bedrooms < 0 || bathrooms < 0 {
		return shared.NewDomainError("INVALID_ROOMS", "Room counts cannot be negative")
	}

	l.Area = area
	l.Bedrooms = bedrooms
	l.Bathrooms = bathrooms
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetType changes the property type
func (l *Listing) SetType(listingType ListingType) error {
	if err := validateListingType(listingType); err != nil {
		return err
	}
	l.Type = listingType
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// SetStatus changes the availability status
func (l *Listing) SetStatus(status ListingStatus) error {
	switch status {
	case ListingStatusAvailable, ListingStatusReserved, ListingStatusSold, ListingStatusRented:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid listing status")
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// AddImage appends a stored image key to the listing
func (l *Listing) AddImage(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Image key cannot be empty")
	}
	if len(l.Images) >= MaxListingImages {
		return shared.NewDomainError("IMAGE_LIMIT_REACHED", "A listing can hold at most 5 images")
	}
	for _, existing := range l.Images {
		if existing == key {
			return shared.NewDomainError("DUPLICATE_IMAGE", "Image already attached to this listing")
		}
	}
	l.Images = append(l.Images, key)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// RemoveImage removes a stored image key from the listing
func (l *Listing) RemoveImage(key string) error {
	for i, existing := range l.Images {
		if existing == key {
			l.Images = append(l.Images[:i], l.Images[i+1:]...)
			l.UpdatedAt = time.Now()
			l.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("IMAGE_NOT_FOUND", "Image is not attached to this listing")
}

// SetPublishPlatforms replaces the set of platform codes selected for publication
func (l *Listing) SetPublishPlatforms(codes []string) {
	if codes == nil {
		codes = []string{}
	}
	l.PublishPlatforms = codes
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// SetNotes sets internal notes on the listing
func (l *Listing) SetNotes(notes string) {
	l.Notes = notes
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// IsImported returns true if the listing came from an external feed
func (l *Listing) IsImported() bool {
	return l.Source == ListingSourceExternal
}

// IsAvailable returns true if the listing is available
func (l *Listing) IsAvailable() bool {
	return l.Status == ListingStatusAvailable
}

// Validation functions

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Listing title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Listing title cannot exceed 200 characters")
	}
	return nil
}

func validateLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return shared.NewDomainError("INVALID_LOCATION", "Listing location cannot be empty")
	}
	if len(location) > 200 {
		return shared.NewDomainError("INVALID_LOCATION", "Listing location cannot exceed 200 characters")
	}
	return nil
}

func validateListingType(t ListingType) error {
	switch t {
	case ListingTypeApartment, ListingTypeHouse, ListingTypeLand, ListingTypeCommercial:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid listing type")
	}
}
