package publishing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zencrm/backend/internal/domain/property"
	"github.com/zencrm/backend/internal/domain/publishing"
)

// PublishService relays offer operations to external portals. Relays are
// single-shot and stateless: no retries, no idempotency keys, no persistence
// of outcomes.
type PublishService struct {
	registry    publishing.PortalRegistry
	listingRepo property.ListingRepository
	logger      *zap.Logger
}

// PublishServiceOption is a functional option for configuring PublishService
type PublishServiceOption func(*PublishService)

// WithPublishLogger sets a custom logger
func WithPublishLogger(logger *zap.Logger) PublishServiceOption {
	return func(s *PublishService) {
		s.logger = logger
	}
}

// NewPublishService creates a new PublishService
func NewPublishService(
	registry publishing.PortalRegistry,
	listingRepo property.ListingRepository,
	opts ...PublishServiceOption,
) *PublishService {
	s := &PublishService{
		registry:    registry,
		listingRepo: listingRepo,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Relay validates and forwards one publish operation to a portal. The
// validation ladder runs entirely before any network I/O; the portal's
// verdict comes back with its upstream status preserved.
func (s *PublishService) Relay(ctx context.Context, req RelayRequest) (*RelayResponse, error) {
	domainReq := req.ToDomain()
	if err := domainReq.Validate(); err != nil {
		return nil, err
	}

	portal, err := s.registry.GetPortal(ctx, req.PlatformCode())
	if err != nil {
		return nil, err
	}

	result, err := s.forward(ctx, portal, domainReq)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Relay forwarded",
		zap.String("platform", portal.Code().String()),
		zap.String("action", domainReq.Action.String()),
		zap.Int("upstream_status", result.Status),
	)

	response := ToRelayResponse(result)
	return &response, nil
}

// PublishListing maps a stored listing to its offer form and relays a create
// to every portal the listing has selected. Per-portal outcomes are reported
// individually so partial success stays visible.
func (s *PublishService) PublishListing(ctx context.Context, listingID uuid.UUID) (*PublishListingResponse, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	offer := property.MapListingToOffer(listing)
	if err := offer.Validate(); err != nil {
		return nil, err
	}

	results := make([]PlatformPublishResult, 0, len(listing.PublishPlatforms))
	for _, raw := range listing.PublishPlatforms {
		code := publishing.PlatformCode(raw)
		results = append(results, s.publishToPortal(ctx, code, offer))
	}

	return &PublishListingResponse{
		ListingID: listingID.String(),
		Results:   results,
	}, nil
}

// publishToPortal relays one offer to one portal; failures become a
// per-platform result instead of aborting the batch
func (s *PublishService) publishToPortal(ctx context.Context, code publishing.PlatformCode, offer property.Offer) PlatformPublishResult {
	portal, err := s.registry.GetPortal(ctx, code)
	if err != nil {
		s.logger.Warn("Portal unavailable for publish",
			zap.String("platform", code.String()),
			zap.Error(err),
		)
		return PlatformPublishResult{
			Platform: code.String(),
			OK:       false,
			Error:    err.Error(),
		}
	}

	result, err := portal.CreateOffer(ctx, offer)
	if err != nil {
		s.logger.Warn("Publish to portal failed",
			zap.String("platform", code.String()),
			zap.Error(err),
		)
		return PlatformPublishResult{
			Platform: code.String(),
			OK:       false,
			Error:    err.Error(),
		}
	}

	return PlatformPublishResult{
		Platform: code.String(),
		OK:       result.OK,
		Status:   result.Status,
		Data:     result.Data,
	}
}

func (s *PublishService) forward(ctx context.Context, portal publishing.ListingPortal, req publishing.PublishRequest) (*publishing.RelayResult, error) {
	switch req.Action {
	case publishing.PublishActionCreate:
		return portal.CreateOffer(ctx, *req.Offer)
	case publishing.PublishActionUpdate:
		return portal.UpdateOffer(ctx, req.OfferID, *req.Offer)
	case publishing.PublishActionDelete:
		return portal.DeleteOffer(ctx, req.OfferID)
	default:
		return nil, publishing.ErrRelayInvalidAction
	}
}
