package symptoms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_DecisionTable(t *testing.T) {
	tests := []struct {
		name       string
		symptoms   []string
		severity   Severity
		careType   CareType
		urgency    Urgency
		confidence float64
	}{
		{"keyword overrides mild severity", []string{"severe chest pain"}, SeverityMild, CareEmergency, UrgencyEmergency, 0.9},
		{"emergency severity", []string{"rash"}, SeverityEmergency, CareEmergency, UrgencyEmergency, 0.9},
		{"keyword is case insensitive", []string{"Sudden CONFUSION"}, SeverityModerate, CareEmergency, UrgencyEmergency, 0.9},
		{"urgent keyword", []string{"high fever since last night"}, SeverityMild, CareUrgentCare, UrgencyUrgent, 0.85},
		{"severe severity", []string{"back ache"}, SeveritySevere, CareUrgentCare, UrgencyUrgent, 0.85},
		{"moderate severity only", []string{"tiredness"}, SeverityModerate, CareClinic, UrgencyModerate, 0.75},
		{"mild severity only", []string{"runny nose"}, SeverityMild, CareTelehealth, UrgencyRoutine, 0.7},
		{"empty symptoms degrade to least urgent", nil, SeverityMild, CareTelehealth, UrgencyRoutine, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Classify(tt.symptoms, tt.severity, "2 days")
			assert.Equal(t, tt.careType, rec.RecommendedCareType)
			assert.Equal(t, tt.urgency, rec.Urgency)
			assert.InDelta(t, tt.confidence, rec.Confidence, 1e-9)
		})
	}
}

func TestClassify_Templates(t *testing.T) {
	rec := Classify([]string{"chest pain", "nausea"}, SeverityModerate, "3 hours")

	assert.Equal(t,
		"Based on reported symptoms: chest pain, nausea. Severity level: moderate. Duration: 3 hours. "+
			"Recommendation generated using rule-based fallback due to AI service limitations.",
		rec.Reasoning)
	assert.Equal(t, []string{
		"Seek emergency for your symptoms",
		"Monitor symptoms closely",
		"Keep a record of any changes in symptoms",
	}, rec.Recommendations)
	assert.Equal(t, []string{"Emergency symptoms detected"}, rec.SymptomsAnalysis.RedFlags)
	assert.Equal(t, []string{"chest pain", "nausea"}, rec.SymptomsAnalysis.PrimarySymptoms)
	assert.Equal(t, "moderate severity reported by patient", rec.SymptomsAnalysis.SeverityAssessment)
	assert.Equal(t, []string{"Go to emergency room immediately"}, rec.NextSteps)
	assert.Len(t, rec.WhenToSeekEmergencyCare, 4)
	assert.Equal(t, "Immediate", rec.EstimatedWaitTime)
	assert.NotEmpty(t, rec.CostConsiderations)
}

func TestClassify_UrgentCareLabel(t *testing.T) {
	rec := Classify([]string{"persistent vomiting"}, SeverityMild, "1 day")

	assert.Equal(t, "Seek urgent care for your symptoms", rec.Recommendations[0])
	assert.Equal(t, []string{"Contact urgent care or call doctor within 24 hours"}, rec.NextSteps)
	assert.Equal(t, "30-60 minutes", rec.EstimatedWaitTime)
	assert.Empty(t, rec.SymptomsAnalysis.RedFlags)
}

func TestClassify_Deterministic(t *testing.T) {
	symptoms := []string{"headache", "shortness of breath"}
	first := Classify(symptoms, SeverityModerate, "1 week")
	second := Classify(symptoms, SeverityModerate, "1 week")
	assert.Equal(t, first, second)

	// the result must not alias the caller's slice
	symptoms[0] = "changed"
	assert.Equal(t, "headache", first.SymptomsAnalysis.PrimarySymptoms[0])
}
