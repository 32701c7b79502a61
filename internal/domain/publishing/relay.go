package publishing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/zencrm/backend/internal/domain/property"
)

// ---------------------------------------------------------------------------
// PublishAction
// ---------------------------------------------------------------------------

// PublishAction is the operation requested against a portal
type PublishAction string

const (
	PublishActionCreate PublishAction = "create"
	PublishActionUpdate PublishAction = "update"
	PublishActionDelete PublishAction = "delete"
)

// IsValid returns true if the action is valid
func (a PublishAction) IsValid() bool {
	switch a {
	case PublishActionCreate, PublishActionUpdate, PublishActionDelete:
		return true
	default:
		return false
	}
}

// String returns the string representation of PublishAction
func (a PublishAction) String() string {
	return string(a)
}

// ---------------------------------------------------------------------------
// PublishRequest
// ---------------------------------------------------------------------------

// PublishRequest is one relay operation against a portal. ID identifies the
// remote offer for update and delete; Offer carries the payload for create
// and update.
type PublishRequest struct {
	Action  PublishAction   `json:"action"`
	OfferID string          `json:"id,omitempty"`
	Offer   *property.Offer `json:"offer,omitempty"`
}

// Validate applies the pre-network validation ladder. A request that fails
// here must never reach the portal.
func (r *PublishRequest) Validate() error {
	if !r.Action.IsValid() {
		return ErrRelayInvalidAction
	}

	switch r.Action {
	case PublishActionCreate:
		if r.Offer == nil {
			return ErrRelayMissingOffer
		}
		if err := r.Offer.Validate(); err != nil {
			return err
		}
	case PublishActionUpdate:
		if strings.TrimSpace(r.OfferID) == "" {
			return ErrRelayMissingOfferID
		}
		if r.Offer == nil {
			return ErrRelayMissingOffer
		}
		if err := r.Offer.Validate(); err != nil {
			return err
		}
	case PublishActionDelete:
		if strings.TrimSpace(r.OfferID) == "" {
			return ErrRelayMissingOfferID
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// RelayResult
// ---------------------------------------------------------------------------

// RelayResult carries the portal's verdict back to the caller with the
// upstream status preserved. Data is the parsed upstream body, or a
// fallback {"ok": <flag>} object when the body is not parseable.
type RelayResult struct {
	OK     bool            `json:"ok"`
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// NewRelayResult builds a result from an upstream status and raw body.
// Unparseable bodies degrade to the {"ok": <flag>} fallback so the caller
// always receives a JSON object.
func NewRelayResult(status int, body []byte) *RelayResult {
	ok := status >= 200 && status < 300
	data := body
	if !json.Valid(body) || len(strings.TrimSpace(string(body))) == 0 {
		if ok {
			data = []byte(`{"ok":true}`)
		} else {
			data = []byte(`{"ok":false}`)
		}
	}
	return &RelayResult{
		OK:     ok,
		Status: status,
		Data:   data,
	}
}

// ---------------------------------------------------------------------------
// ListingPortal Port Interface
// ---------------------------------------------------------------------------

// ListingPortal is the port for one external listing-publication service.
// Concrete adapters live in the infrastructure layer and hold the server-side
// credential; nothing above them ever sees it.
type ListingPortal interface {
	// Code returns the platform code this adapter handles
	Code() PlatformCode

	// CreateOffer publishes a new offer and returns the portal's verdict
	CreateOffer(ctx context.Context, offer property.Offer) (*RelayResult, error)

	// UpdateOffer replaces a previously published offer
	UpdateOffer(ctx context.Context, offerID string, offer property.Offer) (*RelayResult, error)

	// DeleteOffer removes a previously published offer
	DeleteOffer(ctx context.Context, offerID string) (*RelayResult, error)

	// Ping verifies connectivity and credential validity without side effects
	Ping(ctx context.Context) (*RelayResult, error)
}

// PortalRegistry provides access to configured portal adapters by code
type PortalRegistry interface {
	// GetPortal returns the portal adapter for the specified code.
	// It fails with ErrPortalNotConfigured or ErrPortalNotEnabled when the
	// portal cannot accept relay traffic.
	GetPortal(ctx context.Context, code PlatformCode) (ListingPortal, error)

	// ListPortals returns adapters for every portal currently able to
	// accept relay traffic
	ListPortals(ctx context.Context) ([]ListingPortal, error)
}
