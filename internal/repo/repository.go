package repo

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/jodylarsen/CareConnect/internal/cache"
	"github.com/jodylarsen/CareConnect/internal/geo"
)

// Repository interface for provider storage
type Repository interface {
	UpsertProvider(ctx context.Context, p Provider) (Provider, error)
	GetProviderByID(ctx context.Context, id string) (Provider, error)
	GetNearbyProviders(ctx context.Context, arg NearbyParams) ([]NearbyProvider, error)
	Backend() string
}

// NewRepository picks the strongest available backend: Postgres, then the
// Redis GEO index, then process memory.
func NewRepository(db *DB, redisCache *cache.RedisCache) Repository {
	switch {
	case db.Enabled():
		log.Info().Msg("Provider repository using Postgres")
		return newPostgresRepository(db)
	case redisCache != nil:
		log.Info().Msg("Provider repository using Redis")
		return newRedisRepository(redisCache)
	default:
		log.Warn().Msg("Provider repository using in-memory storage")
		return NewMemoryRepository()
	}
}

// Durable reports whether providers stored in r outlive the process.
func Durable(r Repository) bool {
	return r.Backend() != "memory"
}

func validate(p Provider) error {
	if p.ID == "" {
		return fmt.Errorf("provider id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("provider %s: name is required", p.ID)
	}
	if !(geo.Location{Lat: p.Lat, Lng: p.Lng}).Valid() {
		return fmt.Errorf("provider %s: coordinates out of range", p.ID)
	}
	return nil
}

func normalize(p Provider) Provider {
	if p.BusinessStatus == "" {
		p.BusinessStatus = "OPERATIONAL"
	}
	return p
}

// sortAndLimit orders hits nearest first, breaking ties by ID.
func sortAndLimit(results []NearbyProvider, limit int) []NearbyProvider {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].DistanceMeters != results[j].DistanceMeters {
			return results[i].DistanceMeters < results[j].DistanceMeters
		}
		return results[i].ID < results[j].ID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
