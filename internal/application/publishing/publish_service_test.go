package publishing

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zencrm/backend/internal/domain/property"
	"github.com/zencrm/backend/internal/domain/publishing"
	"github.com/zencrm/backend/internal/domain/shared"
)

// =============================================================================
// Mocks
// =============================================================================

// MockPortal is a mock implementation of ListingPortal
type MockPortal struct {
	mock.Mock
	code publishing.PlatformCode
}

func (m *MockPortal) Code() publishing.PlatformCode {
	return m.code
}

func (m *MockPortal) CreateOffer(ctx context.Context, offer property.Offer) (*publishing.RelayResult, error) {
	args := m.Called(ctx, offer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*publishing.RelayResult), args.Error(1)
}

func (m *MockPortal) UpdateOffer(ctx context.Context, offerID string, offer property.Offer) (*publishing.RelayResult, error) {
	args := m.Called(ctx, offerID, offer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*publishing.RelayResult), args.Error(1)
}

func (m *MockPortal) DeleteOffer(ctx context.Context, offerID string) (*publishing.RelayResult, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*publishing.RelayResult), args.Error(1)
}

func (m *MockPortal) Ping(ctx context.Context) (*publishing.RelayResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*publishing.RelayResult), args.Error(1)
}

// MockRegistry is a mock implementation of PortalRegistry
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) GetPortal(ctx context.Context, code publishing.PlatformCode) (publishing.ListingPortal, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(publishing.ListingPortal), args.Error(1)
}

func (m *MockRegistry) ListPortals(ctx context.Context) ([]publishing.ListingPortal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]publishing.ListingPortal), args.Error(1)
}

// MockListingRepository covers the subset the publish service touches
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByExternalID(ctx context.Context, externalID string) (*property.Listing, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Listing), args.Error(1)
}

func (m *MockListingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Listing, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]property.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByStatus(ctx context.Context, status property.ListingStatus, filter shared.Filter) ([]property.Listing, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]property.Listing), args.Error(1)
}

func (m *MockListingRepository) FindBySource(ctx context.Context, source property.ListingSource, filter shared.Filter) ([]property.Listing, error) {
	args := m.Called(ctx, source, filter)
	return args.Get(0).([]property.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByCreator(ctx context.Context, createdBy uuid.UUID, filter shared.Filter) ([]property.Listing, error) {
	args := m.Called(ctx, createdBy, filter)
	return args.Get(0).([]property.Listing), args.Error(1)
}

func (m *MockListingRepository) Save(ctx context.Context, listing *property.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) SaveWithLock(ctx context.Context, listing *property.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	args := m.Called(ctx, externalID)
	return args.Bool(0), args.Error(1)
}

// =============================================================================
// Helpers
// =============================================================================

func validOffer() property.Offer {
	return property.Offer{
		Title:       "Apartament 3 camere",
		Description: "Renovat recent",
		Location:    "Cluj-Napoca",
		PriceMin:    120000,
		Rooms:       3,
	}
}

// =============================================================================
// Relay
// =============================================================================

func TestPublishService_Relay(t *testing.T) {
	ctx := context.Background()

	t.Run("create forwards the offer and passes the verdict through", func(t *testing.T) {
		registry := new(MockRegistry)
		portal := &MockPortal{code: publishing.PlatformCodeMVA}
		service := NewPublishService(registry, new(MockListingRepository))

		offer := validOffer()
		registry.On("GetPortal", ctx, publishing.PlatformCodeMVA).Return(portal, nil)
		portal.On("CreateOffer", ctx, offer).
			Return(publishing.NewRelayResult(http.StatusCreated, []byte(`{"id":"r-77"}`)), nil)

		resp, err := service.Relay(ctx, RelayRequest{Action: "create", Offer: &offer})

		require.NoError(t, err)
		assert.True(t, resp.OK)
		assert.Equal(t, http.StatusCreated, resp.Status)
		assert.JSONEq(t, `{"id":"r-77"}`, string(resp.Data))
	})

	t.Run("upstream rejection is a verdict, not an error", func(t *testing.T) {
		registry := new(MockRegistry)
		portal := &MockPortal{code: publishing.PlatformCodeMVA}
		service := NewPublishService(registry, new(MockListingRepository))

		offer := validOffer()
		registry.On("GetPortal", ctx, publishing.PlatformCodeMVA).Return(portal, nil)
		portal.On("CreateOffer", ctx, offer).
			Return(publishing.NewRelayResult(http.StatusUnprocessableEntity, []byte(`{"error":"duplicate"}`)), nil)

		resp, err := service.Relay(ctx, RelayRequest{Action: "create", Offer: &offer})

		require.NoError(t, err)
		assert.False(t, resp.OK)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	})

	t.Run("update requires an id before any network call", func(t *testing.T) {
		registry := new(MockRegistry)
		service := NewPublishService(registry, new(MockListingRepository))

		offer := validOffer()
		_, err := service.Relay(ctx, RelayRequest{Action: "update", Offer: &offer})

		assert.ErrorIs(t, err, publishing.ErrRelayMissingOfferID)
		registry.AssertNotCalled(t, "GetPortal")
	})

	t.Run("create requires a valid offer before any network call", func(t *testing.T) {
		registry := new(MockRegistry)
		service := NewPublishService(registry, new(MockListingRepository))

		offer := validOffer()
		offer.Title = ""
		_, err := service.Relay(ctx, RelayRequest{Action: "create", Offer: &offer})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_OFFER", domainErr.Code)
		registry.AssertNotCalled(t, "GetPortal")
	})

	t.Run("delete needs only the id", func(t *testing.T) {
		registry := new(MockRegistry)
		portal := &MockPortal{code: publishing.PlatformCodeMVA}
		service := NewPublishService(registry, new(MockListingRepository))

		registry.On("GetPortal", ctx, publishing.PlatformCodeMVA).Return(portal, nil)
		portal.On("DeleteOffer", ctx, "remote-4").
			Return(publishing.NewRelayResult(http.StatusNoContent, nil), nil)

		resp, err := service.Relay(ctx, RelayRequest{Action: "delete", OfferID: "remote-4"})

		require.NoError(t, err)
		assert.True(t, resp.OK)
		assert.JSONEq(t, `{"ok":true}`, string(resp.Data))
	})

	t.Run("unknown action is rejected locally", func(t *testing.T) {
		registry := new(MockRegistry)
		service := NewPublishService(registry, new(MockListingRepository))

		_, err := service.Relay(ctx, RelayRequest{Action: "archive"})

		assert.ErrorIs(t, err, publishing.ErrRelayInvalidAction)
		registry.AssertNotCalled(t, "GetPortal")
	})

	t.Run("missing credential surfaces as configuration error", func(t *testing.T) {
		registry := new(MockRegistry)
		service := NewPublishService(registry, new(MockListingRepository))

		offer := validOffer()
		registry.On("GetPortal", ctx, publishing.PlatformCodeMVA).
			Return(nil, publishing.ErrPortalNotConfigured)

		_, err := service.Relay(ctx, RelayRequest{Action: "create", Offer: &offer})

		assert.ErrorIs(t, err, publishing.ErrPortalNotConfigured)
	})
}

// =============================================================================
// PublishListing
// =============================================================================

func TestPublishService_PublishListing(t *testing.T) {
	ctx := context.Background()

	newPublishableListing := func(t *testing.T, platforms []string) *property.Listing {
		t.Helper()
		listing, err := property.NewListing(uuid.New(), "Casa cu gradina", "Brașov", property.ListingTypeHouse)
		require.NoError(t, err)
		require.NoError(t, listing.Update(listing.Title, "Curte generoasă", listing.Location, "€230,000"))
		listing.SetPublishPlatforms(platforms)
		return listing
	}

	t.Run("partial success is reported per platform", func(t *testing.T) {
		registry := new(MockRegistry)
		repo := new(MockListingRepository)
		service := NewPublishService(registry, repo)

		listing := newPublishableListing(t, []string{"mva-imobiliare", "storia"})
		repo.On("FindByID", ctx, listing.ID).Return(listing, nil)

		mva := &MockPortal{code: publishing.PlatformCodeMVA}
		registry.On("GetPortal", ctx, publishing.PlatformCodeMVA).Return(mva, nil)
		mva.On("CreateOffer", ctx, mock.AnythingOfType("property.Offer")).
			Return(publishing.NewRelayResult(http.StatusCreated, []byte(`{"id":"m-1"}`)), nil)

		registry.On("GetPortal", ctx, publishing.PlatformCodeStoria).
			Return(nil, publishing.ErrPortalNotConfigured)

		resp, err := service.PublishListing(ctx, listing.ID)

		require.NoError(t, err)
		require.Len(t, resp.Results, 2)

		assert.Equal(t, "mva-imobiliare", resp.Results[0].Platform)
		assert.True(t, resp.Results[0].OK)
		assert.Equal(t, http.StatusCreated, resp.Results[0].Status)

		assert.Equal(t, "storia", resp.Results[1].Platform)
		assert.False(t, resp.Results[1].OK)
		assert.Contains(t, resp.Results[1].Error, "not configured")
	})

	t.Run("listing failing offer validation never reaches a portal", func(t *testing.T) {
		registry := new(MockRegistry)
		repo := new(MockListingRepository)
		service := NewPublishService(registry, repo)

		// no description, so the offer projection fails validation
		listing, err := property.NewListing(uuid.New(), "Teren intravilan", "Sibiu", property.ListingTypeLand)
		require.NoError(t, err)
		listing.SetPublishPlatforms([]string{"mva-imobiliare"})
		repo.On("FindByID", ctx, listing.ID).Return(listing, nil)

		_, err = service.PublishListing(ctx, listing.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_OFFER", domainErr.Code)
		registry.AssertNotCalled(t, "GetPortal")
	})
}

func TestRelayRequest_PlatformCode(t *testing.T) {
	t.Run("defaults to the MVA portal", func(t *testing.T) {
		assert.Equal(t, publishing.PlatformCodeMVA, RelayRequest{}.PlatformCode())
	})

	t.Run("explicit platform wins", func(t *testing.T) {
		assert.Equal(t, publishing.PlatformCodeStoria, RelayRequest{Platform: "storia"}.PlatformCode())
	})
}

func TestToRelayResponse(t *testing.T) {
	result := publishing.NewRelayResult(http.StatusBadGateway, []byte("upstream exploded"))
	resp := ToRelayResponse(result)

	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusBadGateway, resp.Status)

	var fallback map[string]bool
	require.NoError(t, json.Unmarshal(resp.Data, &fallback))
	assert.False(t, fallback["ok"])
}
