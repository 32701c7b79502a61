package property

import (
	"strconv"
	"strings"

	"github.com/zencrm/backend/internal/domain/shared"
)

// Offer is the wire projection of a Listing accepted by external publishing portals.
// It is derived on demand and never stored.
type Offer struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	PriceMin    int64  `json:"price_min"`
	Rooms       int    `json:"rooms"`
}

// MapListingToOffer projects a listing into an Offer. The mapping is total:
// unparseable numeric fields degrade to zero instead of failing, so callers
// can build an offer from any listing and rely on Validate for gating.
func MapListingToOffer(l *Listing) Offer {
	rooms := l.Bedrooms
	if rooms < 0 {
		rooms = 0
	}
	return Offer{
		Title:       l.Title,
		Description: l.Description,
		Location:    l.Location,
		PriceMin:    CoercePrice(l.Price),
		Rooms:       rooms,
	}
}

// CoercePrice extracts a non-negative integer from a possibly
// currency-formatted string ("€120,000" yields 120000). Strings without
// any digits coerce to 0.
func CoercePrice(raw string) int64 {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// CoerceCount extracts a non-negative int from a free-form count string,
// defaulting to 0 when no digits are present
func CoerceCount(raw string) int {
	return int(CoercePrice(raw))
}

// Validate checks the offer against portal submission requirements
func (o Offer) Validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return shared.NewDomainError("INVALID_OFFER", "Offer title is required")
	}
	if strings.TrimSpace(o.Description) == "" {
		return shared.NewDomainError("INVALID_OFFER", "Offer description is required")
	}
	if strings.TrimSpace(o.Location) == "" {
		return shared.NewDomainError("INVALID_OFFER", "Offer location is required")
	}
	if o.PriceMin < 0 {
		return shared.NewDomainError("INVALID_OFFER", "Offer price cannot be negative")
	}
	if o.Rooms < 0 {
		return shared.NewDomainError("INVALID_OFFER", "Offer room count cannot be negative")
	}
	return nil
}
