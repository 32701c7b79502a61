package portal

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/zencrm/backend/internal/domain/publishing"
	"github.com/zencrm/backend/internal/domain/shared"
	"github.com/zencrm/backend/internal/infrastructure/config"
)

// Registry builds portal adapters from stored credentials. The MVA portal
// additionally falls back to the server configuration so the relay works
// before any credential row exists.
type Registry struct {
	credentials publishing.CredentialRepository
	fallback    config.PortalConfig
	httpClient  *http.Client
	logger      *zap.Logger
}

// RegistryOption is a functional option for configuring the registry
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger for the registry
func WithRegistryLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithRegistryHTTPClient sets a shared HTTP client for all built portals
func WithRegistryHTTPClient(client *http.Client) RegistryOption {
	return func(r *Registry) {
		r.httpClient = client
	}
}

// NewRegistry creates a portal registry backed by the credential store
func NewRegistry(credentials publishing.CredentialRepository, fallback config.PortalConfig, opts ...RegistryOption) *Registry {
	timeout := fallback.Timeout
	if timeout <= 0 {
		timeout = defaultPortalTimeout
	}

	r := &Registry{
		credentials: credentials,
		fallback:    fallback,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// GetPortal returns the portal adapter for the specified code
func (r *Registry) GetPortal(ctx context.Context, code publishing.PlatformCode) (publishing.ListingPortal, error) {
	if !code.IsValid() {
		return nil, publishing.ErrPlatformUnknown
	}

	credential, err := r.credentials.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return r.fallbackPortal(code)
		}
		return nil, err
	}

	if !credential.IsConfigured() {
		// A row with blanks counts the same as no row at all
		if portal, ferr := r.fallbackPortal(code); ferr == nil {
			return portal, nil
		}
		return nil, publishing.ErrPortalNotConfigured
	}
	if !credential.Enabled {
		return nil, publishing.ErrPortalNotEnabled
	}

	return NewHTTPListingPortal(code, credential.BaseURL, credential.APIKey,
		WithHTTPClient(r.httpClient))
}

// fallbackPortal builds the MVA portal from server configuration.
// Other portals have no configuration fallback.
func (r *Registry) fallbackPortal(code publishing.PlatformCode) (publishing.ListingPortal, error) {
	if code != publishing.PlatformCodeMVA || !r.fallback.IsConfigured() {
		return nil, publishing.ErrPortalNotConfigured
	}

	r.logger.Debug("using configured fallback credential for portal",
		zap.String("platform", code.String()))

	return NewHTTPListingPortal(code, r.fallback.BaseURL, r.fallback.APIKey,
		WithHTTPClient(r.httpClient))
}

// ListPortals returns adapters for every portal currently able to accept relay traffic
func (r *Registry) ListPortals(ctx context.Context) ([]publishing.ListingPortal, error) {
	portals := make([]publishing.ListingPortal, 0, len(publishing.AllPlatformCodes()))
	for _, code := range publishing.AllPlatformCodes() {
		portal, err := r.GetPortal(ctx, code)
		if err != nil {
			if errors.Is(err, publishing.ErrPortalNotConfigured) || errors.Is(err, publishing.ErrPortalNotEnabled) {
				continue
			}
			return nil, err
		}
		portals = append(portals, portal)
	}
	return portals, nil
}

// Ensure Registry implements PortalRegistry
var _ publishing.PortalRegistry = (*Registry)(nil)
