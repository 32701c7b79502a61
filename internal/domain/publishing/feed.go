package publishing

import (
	"context"
	"encoding/json"
	"errors"
)

// Feed errors
var (
	ErrFeedNotConfigured = errors.New("publishing: listings feed not configured")
	ErrFeedAuthFailed    = errors.New("publishing: listings feed rejected credentials")
	ErrFeedUnavailable   = errors.New("publishing: listings feed temporarily unavailable")
	ErrFeedInvalidBody   = errors.New("publishing: listings feed returned an unreadable body")
)

// FeedItem is one property record as delivered by the external listings feed.
// Every field may be absent upstream; import mapping supplies defaults.
type FeedItem struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	Location           string      `json:"location"`
	PriceMin           json.Number `json:"price_min"`
	ProjectName        string      `json:"project_name"`
	AvailabilityStatus string      `json:"availability_status"`
	SurfaceMin         float64     `json:"surface_min"`
	Rooms              int         `json:"rooms"`
	Images             []string    `json:"images"`
}

// FeedProbe is the outcome of a connectivity test against the feed
type FeedProbe struct {
	// Status is the upstream HTTP status
	Status int
	// OK reports whether the feed answered with a 2xx
	OK bool
	// AuthRejected reports a 401 or 403 answer, meaning the stored
	// credential is wrong rather than the feed being down
	AuthRejected bool
}

// ListingFeed is the port for the external listings feed the import
// relay reads from. The adapter holds the feed credential server-side.
type ListingFeed interface {
	// FetchItems retrieves the full current feed
	FetchItems(ctx context.Context) ([]FeedItem, error)

	// Probe checks connectivity and credential validity without importing
	Probe(ctx context.Context) (*FeedProbe, error)
}
