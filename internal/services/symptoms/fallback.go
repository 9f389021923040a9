package symptoms

import (
	"fmt"
	"strings"
)

var (
	emergencyIndicators = []string{"chest pain", "difficulty breathing", "severe headache", "confusion", "loss of consciousness"}
	urgentIndicators    = []string{"high fever", "persistent vomiting", "severe pain", "shortness of breath"}

	emergencyWarningSigns = []string{
		"If symptoms suddenly worsen",
		"If you experience severe chest pain or difficulty breathing",
		"If you become confused or lose consciousness",
		"If you have severe allergic reactions",
	}
)

const (
	fallbackDisclaimer = "Recommendation generated using rule-based fallback due to AI service limitations."
	fallbackCondition  = "Multiple conditions possible - professional evaluation needed"
	costOrdering       = "Emergency care is most expensive, urgent care moderate cost, clinics typically least expensive"
)

// Classify is the deterministic recommendation used whenever the model path
// fails. Output depends only on its arguments.
func Classify(symptoms []string, severity Severity, duration string) *HealthcareRecommendation {
	hasEmergency := containsAny(symptoms, emergencyIndicators)
	hasUrgent := containsAny(symptoms, urgentIndicators)

	var (
		careType   CareType
		urgency    Urgency
		confidence float64
	)
	switch {
	case hasEmergency || severity == SeverityEmergency:
		careType, urgency, confidence = CareEmergency, UrgencyEmergency, 0.9
	case hasUrgent || severity == SeveritySevere:
		careType, urgency, confidence = CareUrgentCare, UrgencyUrgent, 0.85
	case severity == SeverityModerate:
		careType, urgency, confidence = CareClinic, UrgencyModerate, 0.75
	default:
		careType, urgency, confidence = CareTelehealth, UrgencyRoutine, 0.7
	}

	redFlags := []string{}
	if hasEmergency {
		redFlags = []string{"Emergency symptoms detected"}
	}

	reasoning := strings.Join([]string{
		"Based on reported symptoms: " + strings.Join(symptoms, ", "),
		fmt.Sprintf("Severity level: %s", severity),
		"Duration: " + duration,
		fallbackDisclaimer,
	}, ". ")

	return &HealthcareRecommendation{
		RecommendedCareType: careType,
		Urgency:             urgency,
		Confidence:          confidence,
		Reasoning:           reasoning,
		Recommendations: []string{
			fmt.Sprintf("Seek %s for your symptoms", careLabel(careType)),
			"Monitor symptoms closely",
			"Keep a record of any changes in symptoms",
		},
		SymptomsAnalysis: SymptomsAnalysis{
			PrimarySymptoms:     append([]string{}, symptoms...),
			SeverityAssessment:  fmt.Sprintf("%s severity reported by patient", severity),
			PotentialConditions: []string{fallbackCondition},
			RedFlags:            redFlags,
		},
		NextSteps:               []string{nextStepFor(urgency)},
		WhenToSeekEmergencyCare: append([]string{}, emergencyWarningSigns...),
		EstimatedWaitTime:       waitTimeFor(urgency),
		CostConsiderations:      costOrdering,
	}
}

func containsAny(symptoms, indicators []string) bool {
	for _, s := range symptoms {
		lower := strings.ToLower(s)
		for _, indicator := range indicators {
			if strings.Contains(lower, indicator) {
				return true
			}
		}
	}
	return false
}

func careLabel(c CareType) string {
	return strings.Replace(string(c), "_", " ", 1)
}

func nextStepFor(u Urgency) string {
	switch u {
	case UrgencyEmergency:
		return "Go to emergency room immediately"
	case UrgencyUrgent:
		return "Contact urgent care or call doctor within 24 hours"
	default:
		return "Schedule appointment with healthcare provider"
	}
}

func waitTimeFor(u Urgency) string {
	switch u {
	case UrgencyEmergency:
		return "Immediate"
	case UrgencyUrgent:
		return "30-60 minutes"
	default:
		return "1-2 hours"
	}
}
