package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jodylarsen/CareConnect/internal/cache"
)

// redisRepository keeps provider records as JSON strings and their
// coordinates in a single GEO set.
type redisRepository struct {
	cache *cache.RedisCache
}

func newRedisRepository(c *cache.RedisCache) *redisRepository {
	return &redisRepository{cache: c}
}

func (r *redisRepository) Backend() string { return "redis" }

func (r *redisRepository) UpsertProvider(ctx context.Context, p Provider) (Provider, error) {
	if err := validate(p); err != nil {
		return Provider{}, err
	}
	p = normalize(p)

	if err := r.cache.Set(ctx, cache.ProviderKey(p.ID), p, 0); err != nil {
		return Provider{}, fmt.Errorf("failed to store provider %s: %w", p.ID, err)
	}
	if err := r.cache.GeoAdd(ctx, cache.ProvidersGeoKey, p.Lng, p.Lat, p.ID); err != nil {
		return Provider{}, fmt.Errorf("failed to index provider %s: %w", p.ID, err)
	}
	return p, nil
}

func (r *redisRepository) GetProviderByID(ctx context.Context, id string) (Provider, error) {
	data, err := r.cache.Get(ctx, cache.ProviderKey(id))
	if errors.Is(err, cache.ErrKeyNotFound) {
		return Provider{}, ErrNotFound
	}
	if err != nil {
		return Provider{}, err
	}

	var p Provider
	if err := json.Unmarshal(data, &p); err != nil {
		return Provider{}, fmt.Errorf("failed to decode provider %s: %w", id, err)
	}
	return p, nil
}

func (r *redisRepository) GetNearbyProviders(ctx context.Context, arg NearbyParams) ([]NearbyProvider, error) {
	locations, err := r.cache.GeoRadius(ctx, cache.ProvidersGeoKey, arg.Lng, arg.Lat, arg.RadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to query provider index: %w", err)
	}

	results := []NearbyProvider{}
	for _, loc := range locations {
		p, err := r.GetProviderByID(ctx, loc.Name)
		if err != nil {
			continue
		}
		if !arg.matches(p) {
			continue
		}
		results = append(results, NearbyProvider{Provider: p, DistanceMeters: loc.Dist})
		if arg.Limit > 0 && len(results) >= arg.Limit {
			break
		}
	}
	return sortAndLimit(results, arg.Limit), nil
}
