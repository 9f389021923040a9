package careplan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jodylarsen/CareConnect/internal/geo"
	"github.com/jodylarsen/CareConnect/internal/services/providers"
	"github.com/jodylarsen/CareConnect/internal/services/symptoms"
)

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, loc geo.Location, f providers.Filters) (*providers.SearchResponse, error) {
	args := m.Called(ctx, loc, f)
	resp, _ := args.Get(0).(*providers.SearchResponse)
	return resp, args.Error(1)
}

func TestPlan_SearchesRecommendedType(t *testing.T) {
	loc := geo.Location{Lat: 40.71, Lng: -74.0}
	searcher := new(mockSearcher)
	searcher.On("Search", mock.Anything, loc, providers.Filters{Type: "hospital", RadiusMeters: 8000}).
		Return(&providers.SearchResponse{
			Providers: []providers.Provider{{ID: "h1", Type: "hospital"}},
			Total:     1,
			Filters:   providers.Filters{Type: "hospital", RadiusMeters: 8000, Limit: 25},
		}, nil).Once()

	// no inference client: the rule-based path decides
	svc := NewService(symptoms.NewService(nil, 1000, 0.3), searcher)
	plan := svc.Plan(context.Background(), Request{
		SymptomRequest: symptoms.SymptomRequest{
			Symptoms: []string{"chest pain"},
			Severity: symptoms.SeverityModerate,
			Duration: "1 hour",
			Location: loc,
		},
		RadiusMeters: 8000,
	})

	assert.Equal(t, symptoms.CareEmergency, plan.Recommendation.RecommendedCareType)
	require.Len(t, plan.Providers, 1)
	assert.Equal(t, "h1", plan.Providers[0].ID)
	assert.Equal(t, 25, plan.Filter.Limit)
	assert.Empty(t, plan.ProviderError)
	searcher.AssertExpectations(t)
}

func TestPlan_SearchFailureKeepsRecommendation(t *testing.T) {
	searcher := new(mockSearcher)
	searcher.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("redis down")).Once()

	svc := NewService(symptoms.NewService(nil, 1000, 0.3), searcher)
	plan := svc.Plan(context.Background(), Request{SymptomRequest: symptoms.SymptomRequest{
		Symptoms: []string{"sore throat"},
		Severity: symptoms.SeverityMild,
		Duration: "2 days",
	}})

	assert.Equal(t, symptoms.CareTelehealth, plan.Recommendation.RecommendedCareType)
	assert.Equal(t, "clinic", plan.Filter.Type)
	assert.Empty(t, plan.Providers)
	assert.Equal(t, "redis down", plan.ProviderError)
}
