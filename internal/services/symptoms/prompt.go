package symptoms

import (
	"strconv"
	"strings"
)

// SystemInstruction frames every symptom-analysis call.
const SystemInstruction = "You are a healthcare AI assistant that analyzes symptoms and provides healthcare recommendations. " +
	"Always prioritize patient safety and recommend seeking emergency care when appropriate. Provide structured JSON responses."

const responseSchemaExample = `{
  "recommendedCareType": "emergency|hospital|urgent_care|clinic|pharmacy|telehealth|home_care",
  "urgency": "emergency|urgent|moderate|routine",
  "confidence": 0.85,
  "reasoning": "Detailed explanation of the recommendation",
  "recommendations": ["Specific action items for the patient"],
  "symptoms_analysis": {
    "primary_symptoms": ["key symptoms"],
    "severity_assessment": "assessment details",
    "potential_conditions": ["possible conditions"],
    "red_flags": ["warning signs if any"]
  },
  "next_steps": ["immediate actions to take"],
  "when_to_seek_emergency_care": ["specific emergency warning signs"],
  "estimated_wait_time": "15-30 minutes",
  "cost_considerations": "Information about expected costs"
}`

const (
	notSpecified = "Not specified"
	noneProvided = "None provided"
	unknown      = "Unknown"
)

// BuildPrompt renders the user prompt for a symptom analysis.
func BuildPrompt(req SymptomRequest) string {
	profile := req.UserProfile
	if profile == nil {
		profile = &UserProfile{}
	}

	age := notSpecified
	if profile.Age != nil && *profile.Age != 0 {
		age = strconv.Itoa(*profile.Age)
	}

	var b strings.Builder
	b.WriteString("\nAnalyze these symptoms and provide healthcare recommendations:\n\n")
	b.WriteString("SYMPTOMS: " + strings.Join(req.Symptoms, ", ") + "\n")
	b.WriteString("SEVERITY: " + string(req.Severity) + "\n")
	b.WriteString("DURATION: " + req.Duration + "\n")
	b.WriteString("DESCRIPTION: " + req.Description + "\n\n")

	b.WriteString("PATIENT CONTEXT:\n")
	b.WriteString("- Location: " + orDefault(req.Location.City, unknown) + ", " + orDefault(req.Location.State, unknown) + "\n")
	b.WriteString("- Age: " + age + "\n")
	b.WriteString("- Gender: " + orDefault(profile.Gender, notSpecified) + "\n")
	b.WriteString("- Medical History: " + joinOrDefault(profile.MedicalHistory) + "\n")
	b.WriteString("- Chronic Conditions: " + joinOrDefault(profile.ChronicConditions) + "\n")
	b.WriteString("- Current Medications: " + joinOrDefault(profile.Medications) + "\n")
	b.WriteString("- Allergies: " + joinOrDefault(profile.Allergies) + "\n\n")

	b.WriteString("Please provide a detailed analysis in the following JSON format:\n")
	b.WriteString(responseSchemaExample + "\n\n")
	b.WriteString("IMPORTANT: Always err on the side of caution. If there are any concerning symptoms, recommend higher-level care.\n")

	return b.String()
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func joinOrDefault(items []string) string {
	joined := strings.Join(items, ", ")
	if joined == "" {
		return noneProvided
	}
	return joined
}
