package publishing

import (
	"errors"
)

// ---------------------------------------------------------------------------
// Publishing Errors
// ---------------------------------------------------------------------------

var (
	// Portal errors
	ErrPortalNotConfigured   = errors.New("publishing: portal not configured")
	ErrPortalNotEnabled      = errors.New("publishing: portal not enabled")
	ErrPortalUnavailable     = errors.New("publishing: portal temporarily unavailable")
	ErrPortalRequestFailed   = errors.New("publishing: portal request failed")
	ErrPortalInvalidResponse = errors.New("publishing: invalid portal response")
	ErrPortalAuthFailed      = errors.New("publishing: portal authentication failed")

	// Relay errors
	ErrRelayInvalidAction  = errors.New("publishing: invalid relay action")
	ErrRelayMissingOffer   = errors.New("publishing: offer is required for this action")
	ErrRelayMissingOfferID = errors.New("publishing: offer id is required for this action")
	ErrRelayInvalidOffer   = errors.New("publishing: offer failed validation")

	// Registry errors
	ErrPlatformUnknown = errors.New("publishing: unknown platform code")
)

// ---------------------------------------------------------------------------
// PlatformCode represents a real-estate listing portal
// ---------------------------------------------------------------------------

// PlatformCode identifies an externally-owned listing portal
type PlatformCode string

const (
	// PlatformCodeStoria represents the Storia portal
	PlatformCodeStoria PlatformCode = "storia"
	// PlatformCodeImobiliare represents the Imobiliare.ro portal
	PlatformCodeImobiliare PlatformCode = "imobiliare"
	// PlatformCodeMVA represents the MVA Imobiliare portal
	PlatformCodeMVA PlatformCode = "mva-imobiliare"
	// PlatformCodePubli24 represents the Publi24 portal
	PlatformCodePubli24 PlatformCode = "publi24"
	// PlatformCodeHomezz represents the Homezz portal
	PlatformCodeHomezz PlatformCode = "homezz"
)

// AllPlatformCodes lists every supported portal in display order
func AllPlatformCodes() []PlatformCode {
	return []PlatformCode{
		PlatformCodeStoria,
		PlatformCodeImobiliare,
		PlatformCodeMVA,
		PlatformCodePubli24,
		PlatformCodeHomezz,
	}
}

// IsValid returns true if the platform code is valid
func (c PlatformCode) IsValid() bool {
	switch c {
	case PlatformCodeStoria, PlatformCodeImobiliare, PlatformCodeMVA,
		PlatformCodePubli24, PlatformCodeHomezz:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformCode
func (c PlatformCode) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the portal
func (c PlatformCode) DisplayName() string {
	switch c {
	case PlatformCodeStoria:
		return "Storia"
	case PlatformCodeImobiliare:
		return "Imobiliare.ro"
	case PlatformCodeMVA:
		return "MVA Imobiliare"
	case PlatformCodePubli24:
		return "Publi24"
	case PlatformCodeHomezz:
		return "Homezz"
	default:
		return string(c)
	}
}

// ---------------------------------------------------------------------------
// Platform state
// ---------------------------------------------------------------------------

// Platform is the client-facing view of one portal: whether server-side
// credentials exist for it and whether publication to it is switched on.
// Credential material itself never appears here.
type Platform struct {
	Code       PlatformCode `json:"code"`
	Name       string       `json:"name"`
	Configured bool         `json:"configured"`
	Enabled    bool         `json:"enabled"`
}

// NewPlatform builds the view state for a portal. Enabled is clamped so an
// unconfigured portal can never be switched on.
func NewPlatform(code PlatformCode, configured, enabled bool) Platform {
	return Platform{
		Code:       code,
		Name:       code.DisplayName(),
		Configured: configured,
		Enabled:    enabled && configured,
	}
}

// Toggle computes the stored enabled state for a desired switch position.
// The result is always clamped by the configured flag.
func (p Platform) Toggle(desired bool) Platform {
	p.Enabled = desired && p.Configured
	return p
}
