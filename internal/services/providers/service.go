package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jodylarsen/CareConnect/internal/cache"
	"github.com/jodylarsen/CareConnect/internal/config"
	"github.com/jodylarsen/CareConnect/internal/geo"
	"github.com/jodylarsen/CareConnect/internal/repo"
)

const (
	maxRadiusMeters = 50000
	metersPerMile   = 1609.344
)

var ErrInvalidLocation = errors.New("location coordinates are out of range")

// Service finds healthcare providers near a point.
type Service struct {
	repo  repo.Repository
	cache *cache.RedisCache
	cfg   config.SearchConfig
}

// NewService creates the search service. cache may be nil.
func NewService(repo repo.Repository, cache *cache.RedisCache, cfg config.SearchConfig) *Service {
	if cfg.DefaultRadius <= 0 {
		cfg.DefaultRadius = 5000
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 25
	}
	return &Service{repo: repo, cache: cache, cfg: cfg}
}

// Search returns providers matching the filters, nearest first.
func (s *Service) Search(ctx context.Context, loc geo.Location, f Filters) (*SearchResponse, error) {
	if !loc.Valid() {
		return nil, ErrInvalidLocation
	}
	f = s.normalize(f)

	var (
		results []Provider
		err     error
	)
	if s.cache != nil {
		results, err = s.cachedSearch(ctx, loc, f)
	} else {
		results, err = s.search(ctx, loc, f)
	}
	if err != nil {
		return nil, err
	}

	return &SearchResponse{Providers: results, Total: len(results), Filters: f}, nil
}

func (s *Service) normalize(f Filters) Filters {
	if f.RadiusMeters <= 0 {
		f.RadiusMeters = s.cfg.DefaultRadius
	}
	if f.RadiusMeters > maxRadiusMeters {
		f.RadiusMeters = maxRadiusMeters
	}
	if f.Limit <= 0 || f.Limit > s.cfg.MaxResults {
		f.Limit = s.cfg.MaxResults
	}
	if f.Type == "" {
		f.Type = "all"
	}
	f.Keyword = strings.TrimSpace(f.Keyword)
	return f
}

func (s *Service) cachedSearch(ctx context.Context, loc geo.Location, f Filters) ([]Provider, error) {
	key := cache.NearbyKey(loc.Lat, loc.Lng, f.RadiusMeters, f.Limit, f.cacheTag())
	data, err := s.cache.GetOrSet(ctx, key, cache.GetTTL(key), func() (interface{}, error) {
		return s.search(ctx, loc, f)
	})
	if err != nil {
		log.Warn().Err(err).Msg("Provider cache unavailable, querying repository directly")
		return s.search(ctx, loc, f)
	}

	var results []Provider
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to decode cached providers: %w", err)
	}
	return results, nil
}

func (s *Service) search(ctx context.Context, loc geo.Location, f Filters) ([]Provider, error) {
	params := repo.NearbyParams{
		Lat:          loc.Lat,
		Lng:          loc.Lng,
		RadiusMeters: f.RadiusMeters,
		Type:         f.Type,
		MinRating:    f.MinRating,
		Limit:        f.Limit,
	}
	// post-filters need the whole candidate set
	if f.IsOpen != nil || f.Keyword != "" {
		params.Limit = 0
	}

	hits, err := s.repo.GetNearbyProviders(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search providers: %w", err)
	}

	keyword := strings.ToLower(f.Keyword)
	results := make([]Provider, 0, len(hits))
	for _, hit := range hits {
		if f.IsOpen != nil && (hit.IsOpen == nil || *hit.IsOpen != *f.IsOpen) {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(hit.Name), keyword) &&
			!strings.Contains(strings.ToLower(hit.Category), keyword) {
			continue
		}
		results = append(results, toDTO(hit))
		if len(results) >= f.Limit {
			break
		}
	}
	return results, nil
}

func (f Filters) cacheTag() string {
	open := "any"
	if f.IsOpen != nil {
		open = fmt.Sprintf("%t", *f.IsOpen)
	}
	return fmt.Sprintf("type=%s|min=%.2f|open=%s|kw=%s", f.Type, f.MinRating, open, strings.ToLower(f.Keyword))
}

func toDTO(hit repo.NearbyProvider) Provider {
	return Provider{
		ID:             hit.ID,
		PlaceID:        hit.ID,
		Name:           hit.Name,
		Address:        hit.Address,
		Location:       geo.Location{Lat: hit.Lat, Lng: hit.Lng},
		Type:           TypeForCategory(hit.Category),
		Category:       hit.Category,
		Phone:          hit.Phone,
		Website:        hit.Website,
		Rating:         hit.Rating,
		IsOpen:         hit.IsOpen,
		Distance:       hit.DistanceMeters / metersPerMile,
		DistanceMeters: hit.DistanceMeters,
		BusinessStatus: hit.BusinessStatus,
	}
}
