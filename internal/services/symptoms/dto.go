package symptoms

import "github.com/jodylarsen/CareConnect/internal/geo"

// Severity is the patient-reported severity.
type Severity string

const (
	SeverityMild      Severity = "mild"
	SeverityModerate  Severity = "moderate"
	SeveritySevere    Severity = "severe"
	SeverityEmergency Severity = "emergency"
)

// CareType is the kind of venue a patient is pointed to.
type CareType string

const (
	CareEmergency  CareType = "emergency"
	CareHospital   CareType = "hospital"
	CareUrgentCare CareType = "urgent_care"
	CareClinic     CareType = "clinic"
	CarePharmacy   CareType = "pharmacy"
	CareTelehealth CareType = "telehealth"
	CareHomeCare   CareType = "home_care"
)

// Urgency is how quickly care should be sought.
type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyModerate  Urgency = "moderate"
	UrgencyRoutine   Urgency = "routine"
)

var (
	careTypes = map[CareType]bool{
		CareEmergency: true, CareHospital: true, CareUrgentCare: true, CareClinic: true,
		CarePharmacy: true, CareTelehealth: true, CareHomeCare: true,
	}
	urgencies = map[Urgency]bool{
		UrgencyEmergency: true, UrgencyUrgent: true, UrgencyModerate: true, UrgencyRoutine: true,
	}
)

func (c CareType) Valid() bool { return careTypes[c] }
func (u Urgency) Valid() bool  { return urgencies[u] }

func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere, SeverityEmergency:
		return true
	}
	return false
}

// UserProfile is the optional demographic context of an authenticated user.
type UserProfile struct {
	Age               *int     `json:"age,omitempty"`
	Gender            string   `json:"gender,omitempty"`
	MedicalHistory    []string `json:"medicalHistory,omitempty"`
	Allergies         []string `json:"allergies,omitempty"`
	Medications       []string `json:"medications,omitempty"`
	ChronicConditions []string `json:"chronicConditions,omitempty"`
}

// SymptomRequest is the input to the recommendation pipeline.
type SymptomRequest struct {
	Symptoms    []string     `json:"symptoms"`
	Severity    Severity     `json:"severity"`
	Duration    string       `json:"duration"`
	Description string       `json:"description"`
	Location    geo.Location `json:"location"`
	UserProfile *UserProfile `json:"userProfile,omitempty"`
}

// SymptomsAnalysis is the structured breakdown inside a recommendation.
type SymptomsAnalysis struct {
	PrimarySymptoms     []string `json:"primary_symptoms"`
	SeverityAssessment  string   `json:"severity_assessment"`
	PotentialConditions []string `json:"potential_conditions"`
	RedFlags            []string `json:"red_flags"`
}

// HealthcareRecommendation is always fully populated when handed to callers.
type HealthcareRecommendation struct {
	RecommendedCareType     CareType         `json:"recommendedCareType"`
	Urgency                 Urgency          `json:"urgency"`
	Confidence              float64          `json:"confidence"`
	Reasoning               string           `json:"reasoning"`
	Recommendations         []string         `json:"recommendations"`
	SymptomsAnalysis        SymptomsAnalysis `json:"symptoms_analysis"`
	NextSteps               []string         `json:"next_steps"`
	WhenToSeekEmergencyCare []string         `json:"when_to_seek_emergency_care"`
	EstimatedWaitTime       string           `json:"estimated_wait_time,omitempty"`
	CostConsiderations      string           `json:"cost_considerations,omitempty"`
}
