package symptoms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jodylarsen/CareConnect/internal/services/llm"
)

func TestParseRecommendation_FullObject(t *testing.T) {
	content := `Here is my assessment:
{
  "recommendedCareType": "urgent_care",
  "urgency": "urgent",
  "confidence": 0.88,
  "reasoning": "High fever with dehydration risk",
  "recommendations": ["Visit urgent care today"],
  "symptoms_analysis": {
    "primary_symptoms": ["fever"],
    "severity_assessment": "Significant",
    "potential_conditions": ["Influenza"],
    "red_flags": []
  },
  "next_steps": ["Drink fluids"],
  "when_to_seek_emergency_care": ["Trouble breathing"],
  "estimated_wait_time": "15-30 minutes",
  "cost_considerations": "Urgent care copay"
}
Stay safe.`

	rec, err := ParseRecommendation(content)
	require.NoError(t, err)

	assert.Equal(t, CareUrgentCare, rec.RecommendedCareType)
	assert.Equal(t, UrgencyUrgent, rec.Urgency)
	assert.InDelta(t, 0.88, rec.Confidence, 1e-9)
	assert.Equal(t, "High fever with dehydration risk", rec.Reasoning)
	assert.Equal(t, []string{"Visit urgent care today"}, rec.Recommendations)
	assert.Equal(t, []string{"Influenza"}, rec.SymptomsAnalysis.PotentialConditions)
	assert.Equal(t, "Significant", rec.SymptomsAnalysis.SeverityAssessment)
	assert.Equal(t, "15-30 minutes", rec.EstimatedWaitTime)
}

func TestParseRecommendation_PartialObjectGetsDefaults(t *testing.T) {
	rec, err := ParseRecommendation(`Result: {"urgency": "routine", "reasoning": "   "}`)
	require.NoError(t, err)

	assert.Equal(t, CareClinic, rec.RecommendedCareType)
	assert.Equal(t, UrgencyRoutine, rec.Urgency)
	assert.InDelta(t, 0.7, rec.Confidence, 1e-9)
	assert.Equal(t, "Analysis completed", rec.Reasoning)
	assert.Equal(t, []string{"Consult with a healthcare provider"}, rec.Recommendations)
	assert.Equal(t, []string{"Schedule an appointment"}, rec.NextSteps)
	assert.Equal(t, []string{"Severe symptoms develop"}, rec.WhenToSeekEmergencyCare)
	assert.Equal(t, "Requires evaluation", rec.SymptomsAnalysis.SeverityAssessment)
	assert.NotNil(t, rec.SymptomsAnalysis.PrimarySymptoms)
	assert.NotNil(t, rec.SymptomsAnalysis.RedFlags)
	assert.Empty(t, rec.EstimatedWaitTime)
}

func TestParseRecommendation_Normalization(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		assert func(t *testing.T, rec *HealthcareRecommendation)
	}{
		{
			name:  "unknown enums fall back",
			input: `{"recommendedCareType": "spa", "urgency": "whenever"}`,
			assert: func(t *testing.T, rec *HealthcareRecommendation) {
				assert.Equal(t, CareClinic, rec.RecommendedCareType)
				assert.Equal(t, UrgencyModerate, rec.Urgency)
			},
		},
		{
			name:  "capitalized enums",
			input: `{"recommendedCareType": "Emergency", "urgency": "Emergency", "confidence": 0.95}`,
			assert: func(t *testing.T, rec *HealthcareRecommendation) {
				assert.Equal(t, CareEmergency, rec.RecommendedCareType)
				assert.Equal(t, UrgencyEmergency, rec.Urgency)
				assert.InDelta(t, 0.95, rec.Confidence, 1e-9)
			},
		},
		{
			name:  "spaced and upper-case enums",
			input: `{"recommendedCareType": " urgent care ", "urgency": "URGENT"}`,
			assert: func(t *testing.T, rec *HealthcareRecommendation) {
				assert.Equal(t, CareUrgentCare, rec.RecommendedCareType)
				assert.Equal(t, UrgencyUrgent, rec.Urgency)
			},
		},
		{
			name:  "hyphenated enum",
			input: `{"recommendedCareType": "Home-Care"}`,
			assert: func(t *testing.T, rec *HealthcareRecommendation) {
				assert.Equal(t, CareHomeCare, rec.RecommendedCareType)
			},
		},
		{
			name:  "slightly overshot confidence clamps to one",
			input: `{"confidence": 1.2}`,
			assert: func(t *testing.T, rec *HealthcareRecommendation) {
				assert.InDelta(t, 1.0, rec.Confidence, 1e-9)
			},
		},
		{
			name:  "percentage confidence",
			input: `{"confidence": 85}`,
			assert: func(t *testing.T, rec *HealthcareRecommendation) {
				assert.InDelta(t, 0.85, rec.Confidence, 1e-9)
			},
		},
		{
			name:  "string confidence",
			input: `{"confidence": "0.6"}`,
			assert: func(t *testing.T, rec *HealthcareRecommendation) {
				assert.InDelta(t, 0.6, rec.Confidence, 1e-9)
			},
		},
		{
			name:  "out of range confidence",
			input: `{"confidence": -2}`,
			assert: func(t *testing.T, rec *HealthcareRecommendation) {
				assert.InDelta(t, 0.7, rec.Confidence, 1e-9)
			},
		},
		{
			name:  "single string list",
			input: `{"recommendations": "Rest", "next_steps": ["", "  ", "Hydrate"]}`,
			assert: func(t *testing.T, rec *HealthcareRecommendation) {
				assert.Equal(t, []string{"Rest"}, rec.Recommendations)
				assert.Equal(t, []string{"Hydrate"}, rec.NextSteps)
			},
		},
		{
			name:  "empty list uses default",
			input: `{"recommendations": []}`,
			assert: func(t *testing.T, rec *HealthcareRecommendation) {
				assert.Equal(t, []string{"Consult with a healthcare provider"}, rec.Recommendations)
			},
		},
		{
			name:  "non-object analysis",
			input: `{"symptoms_analysis": "looks fine"}`,
			assert: func(t *testing.T, rec *HealthcareRecommendation) {
				assert.Equal(t, "Requires evaluation", rec.SymptomsAnalysis.SeverityAssessment)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRecommendation(tt.input)
			require.NoError(t, err)
			tt.assert(t, rec)
		})
	}
}

func TestParseRecommendation_Errors(t *testing.T) {
	_, err := ParseRecommendation("I cannot provide medical advice.")
	assert.True(t, errors.Is(err, llm.ErrNoJSONFound))

	_, err = ParseRecommendation(`{"urgency": routine}`)
	var jsonErr *llm.InvalidJSONError
	assert.True(t, errors.As(err, &jsonErr))
}
