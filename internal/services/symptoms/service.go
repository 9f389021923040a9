package symptoms

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jodylarsen/CareConnect/internal/services/llm"
)

// Service turns symptom reports into care recommendations.
type Service struct {
	client      llm.InferenceClient
	maxTokens   int
	temperature float64
}

// NewService creates the recommendation service. A nil client runs the
// service in rule-based mode only.
func NewService(client llm.InferenceClient, maxTokens int, temperature float64) *Service {
	return &Service{
		client:      client,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// AnalyzeSymptoms asks the model for a recommendation and falls back to the
// rule-based classifier on any failure. It always returns a complete value.
func (s *Service) AnalyzeSymptoms(ctx context.Context, req SymptomRequest) *HealthcareRecommendation {
	rec, err := s.analyzeWithModel(ctx, req)
	if err == nil {
		return rec
	}

	event := log.Warn()
	if errors.Is(err, llm.ErrNotConfigured) {
		event = log.Debug()
	}
	event.Err(err).
		Str("kind", llm.ErrorKind(err)).
		Int("symptoms", len(req.Symptoms)).
		Str("severity", string(req.Severity)).
		Msg("Symptom analysis falling back to rule-based classifier")

	return Classify(req.Symptoms, req.Severity, req.Duration)
}

func (s *Service) analyzeWithModel(ctx context.Context, req SymptomRequest) (rec *HealthcareRecommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, err = nil, fmt.Errorf("symptom analysis panicked: %v", r)
		}
	}()

	prompt := BuildPrompt(req)
	content, err := llm.Ask(ctx, s.client, llm.NewChatRequest(SystemInstruction, prompt, s.maxTokens, s.temperature))
	if err != nil {
		return nil, err
	}
	return ParseRecommendation(content)
}
