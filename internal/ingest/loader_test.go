package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jodylarsen/CareConnect/internal/config"
	"github.com/jodylarsen/CareConnect/internal/repo"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hospitals.json", `[
  {"id": "sf-general", "name": "SF General", "category": "Hospital", "lat": 37.7557, "lng": -122.4048, "rating": 4.1},
  {"name": "Mission Pharmacy", "category": "Pharmacy", "lat": 37.76, "lng": -122.42}
]`)
	writeFile(t, dir, "clinics.yaml", `
- id: noe-clinic
  name: Noe Valley Clinic
  category: Medical clinic
  lat: 37.751
  lng: -122.433
  isOpen: true
- name: Broken Record
  category: Clinic
  lat: 120
  lng: 0
`)
	writeFile(t, dir, "README.md", "not a seed file")

	store := repo.NewMemoryRepository()
	n, err := NewLoader(store).LoadFromDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	p, err := store.GetProviderByID(context.Background(), "noe-clinic")
	require.NoError(t, err)
	require.NotNil(t, p.IsOpen)
	assert.True(t, *p.IsOpen)
	assert.Equal(t, "OPERATIONAL", p.BusinessStatus)

	hits, err := store.GetNearbyProviders(context.Background(), repo.NearbyParams{
		Lat: 37.76, Lng: -122.42, RadiusMeters: 5000,
	})
	require.NoError(t, err)
	assert.Len(t, hits, 3)
	for _, h := range hits {
		assert.NotEmpty(t, h.ID)
	}
}

func TestLoadFromFile_BadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", `{"not": "a list"`)

	_, err := NewLoader(repo.NewMemoryRepository()).LoadFromFile(context.Background(), filepath.Join(dir, "broken.json"))
	assert.Error(t, err)
}

func TestLoadFromDirectory_Missing(t *testing.T) {
	_, err := NewLoader(repo.NewMemoryRepository()).LoadFromDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestGenerateSampleData(t *testing.T) {
	store := repo.NewMemoryRepository()
	loader := NewLoader(store)
	ctx := context.Background()

	first, err := loader.GenerateSampleData(ctx, 40.7128, -74.0060)
	require.NoError(t, err)
	require.Len(t, first, 5)

	second, err := loader.GenerateSampleData(ctx, 40.7128, -74.0060)
	require.NoError(t, err)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}

	hits, err := store.GetNearbyProviders(ctx, repo.NearbyParams{Lat: 40.7128, Lng: -74.0060, RadiusMeters: 5000})
	require.NoError(t, err)
	assert.Len(t, hits, 5)
	assert.Equal(t, "QuickCare Urgent Care", hits[0].Name)
}

func TestSeed_DirectoryAndSample(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "er.json", `[{"id": "bellevue", "name": "Bellevue Hospital", "category": "Hospital", "lat": 40.7392, "lng": -73.9754}]`)

	store := repo.NewMemoryRepository()
	n, err := NewLoader(store).Seed(context.Background(), config.SeedConfig{Dir: dir, Sample: "40.7128,-74.0060"})
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = store.GetProviderByID(context.Background(), "bellevue")
	assert.NoError(t, err)
}

func TestSeed_Empty(t *testing.T) {
	n, err := NewLoader(repo.NewMemoryRepository()).Seed(context.Background(), config.SeedConfig{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeed_BadSamplePoint(t *testing.T) {
	_, err := NewLoader(repo.NewMemoryRepository()).Seed(context.Background(), config.SeedConfig{Sample: "downtown"})
	assert.Error(t, err)
}
