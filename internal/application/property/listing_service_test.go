package property

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zencrm/backend/internal/domain/identity"
	"github.com/zencrm/backend/internal/domain/property"
	"github.com/zencrm/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockListingRepository is a mock implementation of ListingRepository
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

func newTestListing(t *testing.T, createdBy uuid.UUID) *property.Listing {
	t.Helper()
	listing, err := property.NewListing(createdBy, "Apartament 3 camere", "Cluj-Napoca", property.ListingTypeApartment)
	require.NoError(t, err)
	return listing
}

func adminActor() identity.Actor {
	return identity.NewActor(uuid.New(), identity.RoleAdmin)
}

func agentActor(userID uuid.UUID) identity.Actor {
	return identity.NewActor(userID, identity.RoleAgent)
}

// =============================================================================
// Tests
// =============================================================================

func TestListingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates listing with full details", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*property.Listing")).Return(nil)

		creator := uuid.New()
		resp, err := service.Create(ctx, CreateListingRequest{
			Title:     "Garsonieră ultracentral",
			Location:  "București",
			Type:      "apartment",
			Price:     "€55,000",
			Area:      32,
			Bedrooms:  1,
			Bathrooms: 1,
			CreatedBy: creator,
		})

		require.NoError(t, err)
		assert.Equal(t, "Garsonieră ultracentral", resp.Title)
		assert.Equal(t, "available", resp.Status)
		assert.Equal(t, "manual", resp.Source)
		assert.Equal(t, creator, *resp.CreatedBy)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty title before touching the repository", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		_, err := service.Create(ctx, CreateListingRequest{
			Title:    "   ",
			Location: "București",
			Type:     "apartment",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TITLE", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestListingService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("owner agent can update own listing", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		owner := uuid.New()
		listing := newTestListing(t, owner)
		repo.On("FindByID", ctx, listing.ID).Return(listing, nil)
		repo.On("SaveWithLock", ctx, listing).Return(nil)

		newPrice := "€120,000"
		resp, err := service.Update(ctx, agentActor(owner), listing.ID, UpdateListingRequest{
			Price: &newPrice,
		})

		require.NoError(t, err)
		assert.Equal(t, "€120,000", resp.Price)
		repo.AssertExpectations(t)
	})

	t.Run("agent cannot update another agent's listing", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		listing := newTestListing(t, uuid.New())
		repo.On("FindByID", ctx, listing.ID).Return(listing, nil)

		newPrice := "€120,000"
		_, err := service.Update(ctx, agentActor(uuid.New()), listing.ID, UpdateListingRequest{
			Price: &newPrice,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		repo.AssertNotCalled(t, "SaveWithLock")
	})

	t.Run("admin can update any listing", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		listing := newTestListing(t, uuid.New())
		repo.On("FindByID", ctx, listing.ID).Return(listing, nil)
		repo.On("SaveWithLock", ctx, listing).Return(nil)

		newStatus := "reserved"
		resp, err := service.Update(ctx, adminActor(), listing.ID, UpdateListingRequest{
			Status: &newStatus,
		})

		require.NoError(t, err)
		assert.Equal(t, "reserved", resp.Status)
	})

	t.Run("invalid status transition is rejected", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		listing := newTestListing(t, uuid.New())
		repo.On("FindByID", ctx, listing.ID).Return(listing, nil)

		badStatus := "archived"
		_, err := service.Update(ctx, adminActor(), listing.ID, UpdateListingRequest{
			Status: &badStatus,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})

	t.Run("not found propagates", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, adminActor(), id, UpdateListingRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestListingService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner agent can delete own listing", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		owner := uuid.New()
		listing := newTestListing(t, owner)
		repo.On("FindByID", ctx, listing.ID).Return(listing, nil)
		repo.On("Delete", ctx, listing.ID).Return(nil)

		err := service.Delete(ctx, agentActor(owner), listing.ID)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("plain user cannot delete anything", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		owner := uuid.New()
		listing := newTestListing(t, owner)
		repo.On("FindByID", ctx, listing.ID).Return(listing, nil)

		err := service.Delete(ctx, identity.NewActor(owner, identity.RoleUser), listing.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		repo.AssertNotCalled(t, "Delete")
	})
}

func TestListingService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults and filters", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		listing := newTestListing(t, uuid.New())
		expectedFilter := shared.Filter{
			Page:     1,
			PageSize: 20,
			Filters:  map[string]interface{}{"status": "available"},
		}
		repo.On("FindAll", ctx, expectedFilter).Return([]property.Listing{*listing}, nil)
		repo.On("Count", ctx, expectedFilter).Return(int64(1), nil)

		items, total, err := service.List(ctx, ListingListFilter{Status: "available"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, listing.Title, items[0].Title)
	})
}
