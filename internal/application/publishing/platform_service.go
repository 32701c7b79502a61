package publishing

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/zencrm/backend/internal/domain/publishing"
	"github.com/zencrm/backend/internal/domain/shared"
	"github.com/zencrm/backend/internal/infrastructure/config"
)

// PlatformService manages portal credentials and the client-facing platform
// catalog. Credential material stays server-side: every response built here
// carries only the derived configured/enabled flags.
type PlatformService struct {
	credentialRepo publishing.CredentialRepository
	stateCache     publishing.PlatformStateCache
	portalFallback config.PortalConfig
	logger         *zap.Logger
}

// PlatformServiceOption is a functional option for configuring PlatformService
type PlatformServiceOption func(*PlatformService)

// WithPlatformLogger sets a custom logger
func WithPlatformLogger(logger *zap.Logger) PlatformServiceOption {
	return func(s *PlatformService) {
		s.logger = logger
	}
}

// NewPlatformService creates a new PlatformService
func NewPlatformService(
	credentialRepo publishing.CredentialRepository,
	stateCache publishing.PlatformStateCache,
	portalFallback config.PortalConfig,
	opts ...PlatformServiceOption,
) *PlatformService {
	s := &PlatformService{
		credentialRepo: credentialRepo,
		stateCache:     stateCache,
		portalFallback: portalFallback,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPlatforms returns the full portal catalog with live configured and
// enabled flags. Results are served from the platform state cache when warm.
func (s *PlatformService) ListPlatforms(ctx context.Context) ([]publishing.Platform, error) {
	if cached, err := s.stateCache.Get(ctx); err != nil {
		s.logger.Warn("Platform state cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	platforms, err := s.buildPlatformStates(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.stateCache.Set(ctx, platforms, 0); err != nil {
		s.logger.Warn("Platform state cache write failed", zap.Error(err))
	}

	return platforms, nil
}

// GetPlatform returns the client-facing state for one portal
func (s *PlatformService) GetPlatform(ctx context.Context, code publishing.PlatformCode) (*publishing.Platform, error) {
	if !code.IsValid() {
		return nil, publishing.ErrPlatformUnknown
	}

	credential, err := s.credentialRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			platform := s.effectiveView(code, nil)
			return &platform, nil
		}
		return nil, err
	}

	platform := s.effectiveView(code, credential)
	return &platform, nil
}

// Toggle switches publication to a portal on or off. The stored state is
// clamped so an unconfigured portal can never end up enabled.
func (s *PlatformService) Toggle(ctx context.Context, code publishing.PlatformCode, desired bool) (*publishing.Platform, error) {
	if !code.IsValid() {
		return nil, publishing.ErrPlatformUnknown
	}

	credential, err := s.credentialRepo.FindByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		// Enablement persists on the credential row; create it lazily
		credential, err = publishing.NewPlatformCredential(code, "", "")
		if err != nil {
			return nil, err
		}
	}

	credential.SetEnabled(desired && s.isEffectivelyConfigured(code, credential))
	// SetEnabled clamps by the row's own secret; re-apply the fallback so
	// the MVA portal can be toggled while running on server config
	if desired && s.isEffectivelyConfigured(code, credential) {
		credential.Enabled = true
	}

	if err := s.credentialRepo.Save(ctx, credential); err != nil {
		return nil, err
	}
	s.invalidateState(ctx)

	platform := s.effectiveView(code, credential)
	return &platform, nil
}

// UpsertCredential stores a portal endpoint and API key server-side
func (s *PlatformService) UpsertCredential(ctx context.Context, code publishing.PlatformCode, req UpsertCredentialRequest) (*publishing.Platform, error) {
	if !code.IsValid() {
		return nil, publishing.ErrPlatformUnknown
	}

	credential, err := s.credentialRepo.FindByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		credential, err = publishing.NewPlatformCredential(code, req.BaseURL, req.APIKey)
		if err != nil {
			return nil, err
		}
	} else {
		credential.UpdateSecret(req.BaseURL, req.APIKey)
	}

	if err := s.credentialRepo.Save(ctx, credential); err != nil {
		return nil, err
	}
	s.invalidateState(ctx)

	s.logger.Info("Portal credential stored", zap.String("platform", code.String()))

	platform := s.effectiveView(code, credential)
	return &platform, nil
}

// DeleteCredential removes a portal's stored credential, forcing it off
func (s *PlatformService) DeleteCredential(ctx context.Context, code publishing.PlatformCode) error {
	if !code.IsValid() {
		return publishing.ErrPlatformUnknown
	}

	credential, err := s.credentialRepo.FindByCode(ctx, code)
	if err != nil {
		return err
	}

	if err := s.credentialRepo.Delete(ctx, credential.ID); err != nil {
		return err
	}
	s.invalidateState(ctx)

	s.logger.Info("Portal credential removed", zap.String("platform", code.String()))
	return nil
}

// buildPlatformStates assembles the catalog from stored credentials
func (s *PlatformService) buildPlatformStates(ctx context.Context) ([]publishing.Platform, error) {
	credentials, err := s.credentialRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byCode := make(map[publishing.PlatformCode]*publishing.PlatformCredential, len(credentials))
	for i := range credentials {
		byCode[credentials[i].Code] = &credentials[i]
	}

	codes := publishing.AllPlatformCodes()
	platforms := make([]publishing.Platform, 0, len(codes))
	for _, code := range codes {
		platforms = append(platforms, s.effectiveView(code, byCode[code]))
	}
	return platforms, nil
}

// effectiveView derives the client-facing state for one portal, folding in
// the server-config fallback that keeps the MVA portal usable before any
// credential row exists
func (s *PlatformService) effectiveView(code publishing.PlatformCode, credential *publishing.PlatformCredential) publishing.Platform {
	configured := s.isEffectivelyConfigured(code, credential)
	enabled := credential != nil && credential.Enabled
	return publishing.NewPlatform(code, configured, enabled)
}

func (s *PlatformService) isEffectivelyConfigured(code publishing.PlatformCode, credential *publishing.PlatformCredential) bool {
	if credential != nil && credential.IsConfigured() {
		return true
	}
	return code == publishing.PlatformCodeMVA && s.portalFallback.IsConfigured()
}

func (s *PlatformService) invalidateState(ctx context.Context) {
	if err := s.stateCache.Invalidate(ctx); err != nil {
		s.logger.Warn("Platform state cache invalidation failed", zap.Error(err))
	}
}
