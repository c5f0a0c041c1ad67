package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tokomonggo/server/internal/common"
	"github.com/tokomonggo/server/internal/server/models"
	"github.com/tokomonggo/server/internal/server/repositories/listings"
	"github.com/tokomonggo/server/internal/server/repositories/repomanager"
	"github.com/tokomonggo/server/internal/server/taxonomy"
)

const unknownSeller = "Unknown Seller"

// maxListingImages caps how many images a single listing may carry.
const maxListingImages = 5

// ListingService implements search, publication and detail retrieval for
// classified listings.
type ListingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewListingService(db *sql.DB, m repomanager.RepositoryManager) *ListingService {
	return &ListingService{db: db, repomanager: m}
}

// Search returns listings matching all provided criteria, newest first.
func (s *ListingService) Search(ctx context.Context, criteria listings.SearchCriteria) ([]*models.Listing, error) {
	result, err := s.repomanager.Listings(s.db).Search(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("error searching listings: %w", err)
	}
	return result, nil
}

// Create validates and stores a new listing owned by ownerID.
func (s *ListingService) Create(ctx context.Context, ownerID string, listing *models.Listing) (*models.Listing, error) {
	if ownerID == "" {
		return nil, common.ErrorUnauthorized
	}
	if err := validateListing(listing); err != nil {
		return nil, err
	}

	listing.UserID = ownerID
	created, err := s.repomanager.Listings(s.db).Create(ctx, listing)
	if err != nil {
		return nil, fmt.Errorf("error creating listing: %w", err)
	}
	return created, nil
}

// GetDetail fetches a listing together with its seller's display name. A
// missing seller profile does not fail the request; the name falls back to
// a placeholder.
func (s *ListingService) GetDetail(ctx context.Context, id string) (*models.ListingDetail, error) {
	listing, err := s.repomanager.Listings(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading listing: %w", err)
	}

	sellerName, err := s.repomanager.Profiles(s.db).DisplayName(ctx, listing.UserID)
	if err != nil || strings.TrimSpace(sellerName) == "" {
		sellerName = unknownSeller
	}

	return &models.ListingDetail{Listing: *listing, SellerName: sellerName}, nil
}

func validateListing(l *models.Listing) error {
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if strings.TrimSpace(l.Description) == "" {
		return fmt.Errorf("%w: description is required", common.ErrorValidation)
	}
	if l.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", common.ErrorValidation)
	}
	if !taxonomy.ValidCondition(l.Condition) {
		return fmt.Errorf("%w: unknown condition %q", common.ErrorValidation, l.Condition)
	}
	if !taxonomy.ValidCategory(l.Category) {
		return fmt.Errorf("%w: unknown category %q", common.ErrorValidation, l.Category)
	}
	if l.Subcategory != "" && !taxonomy.ValidSubcategory(l.Category, l.Subcategory) {
		return fmt.Errorf("%w: unknown subcategory %q", common.ErrorValidation, l.Subcategory)
	}
	if !taxonomy.ValidProvince(l.LocationProvince) {
		return fmt.Errorf("%w: unknown province %q", common.ErrorValidation, l.LocationProvince)
	}
	if l.LocationRegency != "" && !taxonomy.ValidRegency(l.LocationProvince, l.LocationRegency) {
		return fmt.Errorf("%w: unknown regency %q", common.ErrorValidation, l.LocationRegency)
	}
	if len(l.Images) == 0 {
		return fmt.Errorf("%w: at least one image is required", common.ErrorValidation)
	}
	if len(l.Images) > maxListingImages {
		return fmt.Errorf("%w: at most %d images are allowed", common.ErrorValidation, maxListingImages)
	}
	if (l.Latitude == nil) != (l.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", common.ErrorValidation)
	}
	return nil
}
