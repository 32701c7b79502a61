package publishing

import (
	"encoding/json"

	"github.com/zencrm/backend/internal/domain/property"
	"github.com/zencrm/backend/internal/domain/publishing"
)

// RelayRequest is the wire form of one publish relay operation. Platform
// defaults to the MVA portal, the only one with a live adapter today.
type RelayRequest struct {
	Action   string          `json:"action" binding:"required"`
	OfferID  string          `json:"id"`
	Offer    *property.Offer `json:"offer"`
	Platform string          `json:"platform"`
}

// ToDomain converts the wire request into the domain relay request
func (r RelayRequest) ToDomain() publishing.PublishRequest {
	return publishing.PublishRequest{
		Action:  publishing.PublishAction(r.Action),
		OfferID: r.OfferID,
		Offer:   r.Offer,
	}
}

// PlatformCode resolves the target portal, defaulting to MVA
func (r RelayRequest) PlatformCode() publishing.PlatformCode {
	if r.Platform == "" {
		return publishing.PlatformCodeMVA
	}
	return publishing.PlatformCode(r.Platform)
}

// RelayResponse carries the portal verdict back to the client
type RelayResponse struct {
	OK     bool            `json:"ok"`
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// ToRelayResponse maps a relay result to its wire form
func ToRelayResponse(result *publishing.RelayResult) RelayResponse {
	return RelayResponse{
		OK:     result.OK,
		Status: result.Status,
		Data:   result.Data,
	}
}

// PlatformPublishResult is the per-portal outcome of publishing one listing
type PlatformPublishResult struct {
	Platform string          `json:"platform"`
	OK       bool            `json:"ok"`
	Status   int             `json:"status,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// PublishListingResponse reports publication of a listing across portals.
// Partial success is surfaced per platform, never collapsed.
type PublishListingResponse struct {
	ListingID string                  `json:"listing_id"`
	Results   []PlatformPublishResult `json:"results"`
}

// ToggleRequest switches publication to a portal on or off
type ToggleRequest struct {
	Enabled bool `json:"enabled"`
}

// UpsertCredentialRequest stores portal credentials server-side. The key is
// written, never read back.
type UpsertCredentialRequest struct {
	BaseURL string `json:"base_url" binding:"required,url,max=500"`
	APIKey  string `json:"api_key" binding:"required,min=1,max=500"`
}
