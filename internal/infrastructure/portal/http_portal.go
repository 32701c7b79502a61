package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zencrm/backend/internal/domain/property"
	"github.com/zencrm/backend/internal/domain/publishing"
)

// Constants for portal HTTP handling
const (
	// maxPortalResponseSize limits the response body size to prevent memory exhaustion
	maxPortalResponseSize = 10 * 1024 * 1024 // 10MB max response
	// defaultPortalTimeout bounds a single relay round trip
	defaultPortalTimeout = 30 * time.Second
)

// HTTPListingPortal implements ListingPortal against a REST offer endpoint.
// The relay protocol is shared by every supported portal: POST to the base
// URL creates an offer, PUT and DELETE address it by ID, and the API key
// travels in the x-api-key header.
type HTTPListingPortal struct {
	code       publishing.PlatformCode
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// HTTPListingPortalOption is a functional option for configuring the portal
type HTTPListingPortalOption func(*HTTPListingPortal)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) HTTPListingPortalOption {
	return func(p *HTTPListingPortal) {
		p.httpClient = client
	}
}

// WithTimeout sets the request timeout on the portal's own HTTP client
func WithTimeout(timeout time.Duration) HTTPListingPortalOption {
	return func(p *HTTPListingPortal) {
		if timeout > 0 {
			p.httpClient.Timeout = timeout
		}
	}
}

// NewHTTPListingPortal creates a portal adapter for the given code and credential
func NewHTTPListingPortal(code publishing.PlatformCode, baseURL, apiKey string, opts ...HTTPListingPortalOption) (*HTTPListingPortal, error) {
	if !code.IsValid() {
		return nil, publishing.ErrPlatformUnknown
	}
	if strings.TrimSpace(baseURL) == "" || strings.TrimSpace(apiKey) == "" {
		return nil, publishing.ErrPortalNotConfigured
	}

	p := &HTTPListingPortal{
		code:       code,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultPortalTimeout},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Code returns the platform code this adapter handles
func (p *HTTPListingPortal) Code() publishing.PlatformCode {
	return p.code
}

// CreateOffer publishes a new offer and returns the portal's verdict
func (p *HTTPListingPortal) CreateOffer(ctx context.Context, offer property.Offer) (*publishing.RelayResult, error) {
	return p.doRequest(ctx, http.MethodPost, p.baseURL, &offer)
}

// UpdateOffer replaces a previously published offer
func (p *HTTPListingPortal) UpdateOffer(ctx context.Context, offerID string, offer property.Offer) (*publishing.RelayResult, error) {
	return p.doRequest(ctx, http.MethodPut, p.offerURL(offerID), &offer)
}

// DeleteOffer removes a previously published offer
func (p *HTTPListingPortal) DeleteOffer(ctx context.Context, offerID string) (*publishing.RelayResult, error) {
	return p.doRequest(ctx, http.MethodDelete, p.offerURL(offerID), nil)
}

// Ping verifies connectivity and credential validity without side effects
func (p *HTTPListingPortal) Ping(ctx context.Context) (*publishing.RelayResult, error) {
	return p.doRequest(ctx, http.MethodGet, p.baseURL, nil)
}

// offerURL addresses a single remote offer. The ID is path-escaped so
// portal-assigned identifiers cannot break out of the path segment.
func (p *HTTPListingPortal) offerURL(offerID string) string {
	return fmt.Sprintf("%s/%s", p.baseURL, url.PathEscape(offerID))
}

// doRequest performs one relay round trip and preserves the upstream verdict.
// Only transport failures surface as errors; any HTTP status the portal
// answers with is carried back inside the RelayResult.
func (p *HTTPListingPortal) doRequest(ctx context.Context, method, requestURL string, payload *property.Offer) (*publishing.RelayResult, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("portal %s: failed to marshal offer: %w", p.code, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("portal %s: failed to create request: %w", p.code, err)
	}

	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", publishing.ErrPortalUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxPortalResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", publishing.ErrPortalInvalidResponse, err)
	}

	return publishing.NewRelayResult(resp.StatusCode, respBody), nil
}

// Ensure HTTPListingPortal implements ListingPortal
var _ publishing.ListingPortal = (*HTTPListingPortal)(nil)
