package services

import (
	"context"
	"strings"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/core/domain"
)

// SearchLimit caps each result group
const SearchLimit = 20

// SearchService runs the cross-entity lookup behind the global search box
type SearchService struct {
	assetRepo    *repositories.AssetRepository
	userRepo     repositories.UserRepository
	locationRepo *repositories.LocationRepository
}

// NewSearchService creates a new search service
func NewSearchService(
	assetRepo *repositories.AssetRepository,
	userRepo repositories.UserRepository,
	locationRepo *repositories.LocationRepository,
) *SearchService {
	return &SearchService{
		assetRepo:    assetRepo,
		userRepo:     userRepo,
		locationRepo: locationRepo,
	}
}

// SearchResults groups matches by entity
type SearchResults struct {
	Assets    []*models.AssetResponse `json:"assets"`
	Users     []*models.UserResponse  `json:"users"`
	Locations []*models.Location      `json:"locations"`
}

// Search matches the query against assets, users and locations. Matching
// is a case-insensitive substring test on each entity's key text fields.
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}

	assets, err := s.assetRepo.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, err
	}

	locations, err := s.locationRepo.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, err
	}

	results := &SearchResults{
		Assets:    make([]*models.AssetResponse, len(assets)),
		Users:     make([]*models.UserResponse, len(users)),
		Locations: locations,
	}
	for i, asset := range assets {
		results.Assets[i] = asset.ToResponse()
	}
	for i, user := range users {
		results.Users[i] = user.ToResponse()
	}
	return results, nil
}
