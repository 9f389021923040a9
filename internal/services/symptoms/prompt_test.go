package symptoms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jodylarsen/CareConnect/internal/geo"
)

func TestBuildPrompt_FullContext(t *testing.T) {
	age := 42
	prompt := BuildPrompt(SymptomRequest{
		Symptoms:    []string{"cough", "fever"},
		Severity:    SeverityModerate,
		Duration:    "3 days",
		Description: "worse at night",
		Location:    geo.Location{Lat: 37.77, Lng: -122.42, City: "San Francisco", State: "CA"},
		UserProfile: &UserProfile{
			Age:               &age,
			Gender:            "female",
			MedicalHistory:    []string{"asthma"},
			Allergies:         []string{"penicillin", "latex"},
			Medications:       []string{"albuterol"},
			ChronicConditions: []string{"hypertension"},
		},
	})

	assert.Contains(t, prompt, "SYMPTOMS: cough, fever\n")
	assert.Contains(t, prompt, "SEVERITY: moderate\n")
	assert.Contains(t, prompt, "DURATION: 3 days\n")
	assert.Contains(t, prompt, "DESCRIPTION: worse at night\n")
	assert.Contains(t, prompt, "- Location: San Francisco, CA\n")
	assert.Contains(t, prompt, "- Age: 42\n")
	assert.Contains(t, prompt, "- Gender: female\n")
	assert.Contains(t, prompt, "- Allergies: penicillin, latex\n")
	assert.Contains(t, prompt, "- Current Medications: albuterol\n")
	assert.Contains(t, prompt, `"recommendedCareType": "emergency|hospital|urgent_care|clinic|pharmacy|telehealth|home_care"`)
	assert.Contains(t, prompt, "IMPORTANT: Always err on the side of caution.")
}

func TestBuildPrompt_MissingContext(t *testing.T) {
	prompt := BuildPrompt(SymptomRequest{
		Symptoms: []string{"headache"},
		Severity: SeverityMild,
		Duration: "1 day",
	})

	assert.Contains(t, prompt, "- Location: Unknown, Unknown\n")
	assert.Contains(t, prompt, "- Age: Not specified\n")
	assert.Contains(t, prompt, "- Gender: Not specified\n")
	assert.Contains(t, prompt, "- Medical History: None provided\n")
	assert.Contains(t, prompt, "- Chronic Conditions: None provided\n")
	assert.Contains(t, prompt, "- Allergies: None provided\n")
}

func TestBuildPrompt_ZeroAgeIsUnspecified(t *testing.T) {
	age := 0
	prompt := BuildPrompt(SymptomRequest{UserProfile: &UserProfile{Age: &age}})
	assert.Contains(t, prompt, "- Age: Not specified\n")
}
