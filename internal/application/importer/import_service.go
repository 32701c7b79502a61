package importer

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	propertyapp "github.com/zencrm/backend/internal/application/property"
	"github.com/zencrm/backend/internal/domain/property"
	"github.com/zencrm/backend/internal/domain/publishing"
	"github.com/zencrm/backend/internal/domain/shared"
)

// ImportService pulls property records from the external listings feed and
// stores them as imported listings. Imports run sequentially and item
// failures are logged and counted, never fatal to the batch.
type ImportService struct {
	feed        publishing.ListingFeed
	listingRepo property.ListingRepository
	logger      *zap.Logger
}

// ImportServiceOption is a functional option for configuring ImportService
type ImportServiceOption func(*ImportService)

// WithImportLogger sets a custom logger
func WithImportLogger(logger *zap.Logger) ImportServiceOption {
	return func(s *ImportService) {
		s.logger = logger
	}
}

// NewImportService creates a new ImportService
func NewImportService(
	feed publishing.ListingFeed,
	listingRepo property.ListingRepository,
	opts ...ImportServiceOption,
) *ImportService {
	s := &ImportService{
		feed:        feed,
		listingRepo: listingRepo,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Test probes the feed without importing anything. A 401 or 403 upstream is
// reported as a credential problem rather than an outage.
func (s *ImportService) Test(ctx context.Context) (*TestResponse, error) {
	probe, err := s.feed.Probe(ctx)
	if err != nil {
		return nil, err
	}

	message := "Feed reachable"
	if probe.AuthRejected {
		message = "Feed rejected the stored credentials"
	} else if !probe.OK {
		message = "Feed answered with an error"
	}

	return &TestResponse{
		OK:            true,
		Status:        http.StatusOK,
		ForwardStatus: probe.Status,
		ForwardOK:     probe.OK,
		Message:       message,
	}, nil
}

// Import fetches the full feed and stores each item as an imported listing.
// Items already imported (same external id) are skipped; storage failures
// are logged and collected in FailedIDs while the run continues.
func (s *ImportService) Import(ctx context.Context) (*ImportResponse, error) {
	items, err := s.feed.FetchItems(ctx)
	if err != nil {
		return nil, err
	}

	response := &ImportResponse{
		OK:           true,
		TotalFetched: len(items),
		FailedIDs:    []string{},
		Properties:   []propertyapp.ListingResponse{},
	}

	for _, item := range items {
		if item.ID == "" {
			s.logger.Warn("Feed item without id skipped")
			response.SkippedCount++
			continue
		}

		exists, err := s.listingRepo.ExistsByExternalID(ctx, item.ID)
		if err != nil {
			s.logger.Warn("Import dedupe check failed",
				zap.String("external_id", item.ID),
				zap.Error(err),
			)
			response.FailedIDs = append(response.FailedIDs, item.ID)
			continue
		}
		if exists {
			response.SkippedCount++
			continue
		}

		listing := mapFeedItem(item)
		if err := s.listingRepo.Save(ctx, listing); err != nil {
			s.logger.Warn("Imported listing could not be stored",
				zap.String("external_id", item.ID),
				zap.Error(err),
			)
			response.FailedIDs = append(response.FailedIDs, item.ID)
			continue
		}

		response.ImportedCount++
		response.Properties = append(response.Properties, propertyapp.ToListingResponse(listing))
	}

	s.logger.Info("Import run finished",
		zap.Int("total_fetched", response.TotalFetched),
		zap.Int("imported", response.ImportedCount),
		zap.Int("skipped", response.SkippedCount),
		zap.Int("failed", len(response.FailedIDs)),
	)

	return response, nil
}

// mapFeedItem converts one feed record into an imported listing. Sparse
// items degrade to defaults so a ragged feed never aborts the run.
func mapFeedItem(item publishing.FeedItem) *property.Listing {
	listing := property.NewImportedListing(item.ID, item.Title, item.Location)

	price := item.PriceMin.String()
	if price == "" || price == "0" {
		price = ""
	}
	// Defaults from NewImportedListing survive the update because the
	// mutators re-receive the already-defaulted values
	_ = listing.Update(listing.Title, item.Description, listing.Location, price)

	rooms := item.Rooms
	if rooms <= 0 {
		rooms = 1
	}
	_ = listing.SetDetails(item.SurfaceMin, rooms, 1)

	if t := listingTypeFromProject(item.ProjectName); t != "" {
		_ = listing.SetType(t)
	} else if item.ProjectName != "" {
		// Unrecognized project names keep the default type but stay
		// visible for manual reclassification
		listing.SetNotes("Proiect: " + item.ProjectName)
	}
	if status := listingStatusFromAvailability(item.AvailabilityStatus); status != "" {
		_ = listing.SetStatus(status)
	}

	for _, image := range item.Images {
		if len(listing.Images) >= property.MaxListingImages {
			break
		}
		_ = listing.AddImage(image)
	}

	return listing
}

// listingTypeFromProject guesses a listing type from the feed's free-form
// project name; empty means keep the default
func listingTypeFromProject(projectName string) property.ListingType {
	switch projectName {
	case "house", "casa", "Casa":
		return property.ListingTypeHouse
	case "land", "teren", "Teren":
		return property.ListingTypeLand
	case "commercial", "Comercial", "spatiu comercial":
		return property.ListingTypeCommercial
	default:
		return ""
	}
}

// listingStatusFromAvailability maps the feed's availability wording onto a
// listing status; empty means keep the default
func listingStatusFromAvailability(availability string) property.ListingStatus {
	switch availability {
	case "reserved", "Rezervat":
		return property.ListingStatusReserved
	case "sold", "Vândut", "Vandut":
		return property.ListingStatusSold
	case "rented", "Închiriat", "Inchiriat":
		return property.ListingStatusRented
	default:
		return ""
	}
}

// Relay dispatches one import relay request by action
func (s *ImportService) Relay(ctx context.Context, req RelayRequest) (interface{}, error) {
	switch req.Action {
	case ActionTest:
		return s.Test(ctx)
	case ActionImport:
		return s.Import(ctx)
	default:
		return nil, shared.NewDomainError("INVALID_ACTION", "Action must be test or import")
	}
}
