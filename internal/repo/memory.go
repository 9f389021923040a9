package repo

import (
	"context"
	"sync"

	"github.com/jodylarsen/CareConnect/internal/geo"
)

type memoryRepository struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewMemoryRepository returns a process-local repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{providers: make(map[string]Provider)}
}

func (r *memoryRepository) Backend() string { return "memory" }

func (r *memoryRepository) UpsertProvider(_ context.Context, p Provider) (Provider, error) {
	if err := validate(p); err != nil {
		return Provider{}, err
	}
	p = normalize(p)

	r.mu.Lock()
	r.providers[p.ID] = p
	r.mu.Unlock()
	return p, nil
}

func (r *memoryRepository) GetProviderByID(_ context.Context, id string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[id]
	if !ok {
		return Provider{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) GetNearbyProviders(_ context.Context, arg NearbyParams) ([]NearbyProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	radiusKm := arg.RadiusMeters / 1000
	results := []NearbyProvider{}
	for _, p := range r.providers {
		if !arg.matches(p) {
			continue
		}
		distance := geo.DistanceKm(arg.Lat, arg.Lng, p.Lat, p.Lng)
		if distance > radiusKm {
			continue
		}
		results = append(results, NearbyProvider{Provider: p, DistanceMeters: distance * 1000})
	}
	return sortAndLimit(results, arg.Limit), nil
}
