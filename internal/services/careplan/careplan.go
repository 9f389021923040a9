package careplan

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jodylarsen/CareConnect/internal/geo"
	"github.com/jodylarsen/CareConnect/internal/services/providers"
	"github.com/jodylarsen/CareConnect/internal/services/symptoms"
)

// Analyzer produces a recommendation; *symptoms.Service satisfies it.
type Analyzer interface {
	AnalyzeSymptoms(ctx context.Context, req symptoms.SymptomRequest) *symptoms.HealthcareRecommendation
}

// Searcher finds providers; *providers.Service satisfies it.
type Searcher interface {
	Search(ctx context.Context, loc geo.Location, f providers.Filters) (*providers.SearchResponse, error)
}

type Request struct {
	symptoms.SymptomRequest
	RadiusMeters float64 `json:"radius,omitempty"`
}

// Plan pairs a recommendation with nearby providers of the matching type.
// ProviderError is set when the search failed; the recommendation is
// returned regardless.
type Plan struct {
	Recommendation *symptoms.HealthcareRecommendation `json:"recommendation"`
	Providers      []providers.Provider               `json:"providers"`
	Filter         providers.Filters                  `json:"filter"`
	ProviderError  string                             `json:"providerError,omitempty"`
}

type Service struct {
	analyzer Analyzer
	searcher Searcher
}

func NewService(analyzer Analyzer, searcher Searcher) *Service {
	return &Service{analyzer: analyzer, searcher: searcher}
}

func (s *Service) Plan(ctx context.Context, req Request) *Plan {
	rec := s.analyzer.AnalyzeSymptoms(ctx, req.SymptomRequest)

	filter := providers.Filters{
		Type:         providers.FilterTypeFor(rec.RecommendedCareType),
		RadiusMeters: req.RadiusMeters,
	}
	plan := &Plan{
		Recommendation: rec,
		Providers:      []providers.Provider{},
		Filter:         filter,
	}

	// telehealth and home care still get nearby clinics
	resp, err := s.searcher.Search(ctx, req.Location, filter)
	if err != nil {
		log.Warn().Err(err).Str("type", filter.Type).Msg("Care plan provider search failed")
		plan.ProviderError = err.Error()
		return plan
	}
	plan.Providers = resp.Providers
	plan.Filter = resp.Filters
	return plan
}
