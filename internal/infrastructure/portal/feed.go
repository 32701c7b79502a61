package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/zencrm/backend/internal/domain/publishing"
	"github.com/zencrm/backend/internal/infrastructure/config"
)

// HTTPListingFeed implements ListingFeed against the external listings feed.
// A GET on the base URL with the x-api-key header returns the full feed.
type HTTPListingFeed struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// HTTPListingFeedOption is a functional option for configuring the feed
type HTTPListingFeedOption func(*HTTPListingFeed)

// WithFeedHTTPClient sets a custom HTTP client
func WithFeedHTTPClient(client *http.Client) HTTPListingFeedOption {
	return func(f *HTTPListingFeed) {
		f.httpClient = client
	}
}

// WithFeedLogger sets the logger for the feed
func WithFeedLogger(logger *zap.Logger) HTTPListingFeedOption {
	return func(f *HTTPListingFeed) {
		f.logger = logger
	}
}

// NewHTTPListingFeed creates a feed adapter from the server configuration
func NewHTTPListingFeed(cfg config.FeedConfig, opts ...HTTPListingFeedOption) (*HTTPListingFeed, error) {
	if !cfg.IsConfigured() {
		return nil, publishing.ErrFeedNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPortalTimeout
	}

	f := &HTTPListingFeed{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// FetchItems retrieves the full current feed
func (f *HTTPListingFeed) FetchItems(ctx context.Context) ([]publishing.FeedItem, error) {
	status, body, err := f.doRequest(ctx)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return nil, publishing.ErrFeedAuthFailed
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d", publishing.ErrFeedUnavailable, status)
	}

	items, err := parseFeedBody(body)
	if err != nil {
		f.logger.Warn("listings feed returned an unreadable body",
			zap.Int("status", status),
			zap.Int("bytes", len(body)))
		return nil, err
	}

	f.logger.Debug("fetched listings feed", zap.Int("items", len(items)))
	return items, nil
}

// Probe checks connectivity and credential validity without importing
func (f *HTTPListingFeed) Probe(ctx context.Context) (*publishing.FeedProbe, error) {
	status, _, err := f.doRequest(ctx)
	if err != nil {
		return nil, err
	}

	return &publishing.FeedProbe{
		Status:       status,
		OK:           status >= 200 && status < 300,
		AuthRejected: status == http.StatusUnauthorized || status == http.StatusForbidden,
	}, nil
}

// doRequest performs one GET against the feed. Transport failures surface
// as ErrFeedUnavailable; HTTP statuses are returned for the caller to judge.
func (f *HTTPListingFeed) doRequest(ctx context.Context) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("feed: failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", f.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", publishing.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPortalResponseSize))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", publishing.ErrFeedInvalidBody, err)
	}

	return resp.StatusCode, body, nil
}

// parseFeedBody tolerates the shapes the feed has been seen to deliver:
// a bare JSON array, an object wrapping the array under "items" or "data",
// or a single bare record. Everything normalizes to an array.
func parseFeedBody(body []byte) ([]publishing.FeedItem, error) {
	var items []publishing.FeedItem
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Items []publishing.FeedItem `json:"items"`
		Data  []publishing.FeedItem `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", publishing.ErrFeedInvalidBody, err)
	}

	if wrapped.Items != nil {
		return wrapped.Items, nil
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}

	var single publishing.FeedItem
	if err := json.Unmarshal(body, &single); err == nil && single.ID != "" {
		return []publishing.FeedItem{single}, nil
	}
	return []publishing.FeedItem{}, nil
}

// Ensure HTTPListingFeed implements ListingFeed
var _ publishing.ListingFeed = (*HTTPListingFeed)(nil)

// UnconfiguredFeed stands in when no feed credentials are present. Every
// call reports the feed as not configured so relay requests fail closed.
type UnconfiguredFeed struct{}

// FetchItems always reports the feed as not configured
func (UnconfiguredFeed) FetchItems(ctx context.Context) ([]publishing.FeedItem, error) {
	return nil, publishing.ErrFeedNotConfigured
}

// Probe always reports the feed as not configured
func (UnconfiguredFeed) Probe(ctx context.Context) (*publishing.FeedProbe, error) {
	return nil, publishing.ErrFeedNotConfigured
}

var _ publishing.ListingFeed = UnconfiguredFeed{}
