package symptoms

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jodylarsen/CareConnect/internal/services/llm"
)

// Defaults substituted for fields the model left out or got wrong.
const (
	DefaultCareType           = CareClinic
	DefaultUrgency            = UrgencyModerate
	DefaultConfidence         = 0.7
	DefaultReasoning          = "Analysis completed"
	DefaultSeverityAssessment = "Requires evaluation"

	maxOvershoot = 1.5
)

var (
	defaultRecommendations = []string{"Consult with a healthcare provider"}
	defaultNextSteps       = []string{"Schedule an appointment"}
	defaultEmergencySigns  = []string{"Severe symptoms develop"}
)

type rawRecommendation map[string]json.RawMessage

// ParseRecommendation pulls the first JSON object out of a model reply and
// fills every required field, from the reply when usable and from defaults
// otherwise. It fails only when no object is present or the object does not parse.
func ParseRecommendation(content string) (*HealthcareRecommendation, error) {
	obj, err := llm.ExtractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var raw rawRecommendation
	if err := json.Unmarshal(obj, &raw); err != nil {
		return nil, &llm.InvalidJSONError{Err: err}
	}

	rec := &HealthcareRecommendation{
		RecommendedCareType:     CareType(raw.enum("recommendedCareType")),
		Urgency:                 Urgency(raw.enum("urgency")),
		Confidence:              raw.confidence("confidence"),
		Reasoning:               raw.strOr("reasoning", DefaultReasoning),
		Recommendations:         raw.listOr("recommendations", defaultRecommendations),
		SymptomsAnalysis:        raw.analysis("symptoms_analysis"),
		NextSteps:               raw.listOr("next_steps", defaultNextSteps),
		WhenToSeekEmergencyCare: raw.listOr("when_to_seek_emergency_care", defaultEmergencySigns),
		EstimatedWaitTime:       raw.str("estimated_wait_time"),
		CostConsiderations:      raw.str("cost_considerations"),
	}
	if !rec.RecommendedCareType.Valid() {
		rec.RecommendedCareType = DefaultCareType
	}
	if !rec.Urgency.Valid() {
		rec.Urgency = DefaultUrgency
	}
	return rec, nil
}

func (r rawRecommendation) str(key string) string {
	field, ok := r[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(field, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// enum reads a string and folds it to the snake_case enum spelling, so
// "Urgent Care" and "urgent-care" both read as "urgent_care".
func (r rawRecommendation) enum(key string) string {
	return enumReplacer.Replace(strings.ToLower(r.str(key)))
}

var enumReplacer = strings.NewReplacer(" ", "_", "-", "_")

func (r rawRecommendation) strOr(key, fallback string) string {
	if s := r.str(key); s != "" {
		return s
	}
	return fallback
}

// confidence accepts a fraction, a percentage or a numeric string. Values just
// above 1 are read as a slightly overshot fraction, not a percentage.
func (r rawRecommendation) confidence(key string) float64 {
	field, ok := r[key]
	if !ok {
		return DefaultConfidence
	}
	var v float64
	if err := json.Unmarshal(field, &v); err != nil {
		var s string
		if json.Unmarshal(field, &s) != nil {
			return DefaultConfidence
		}
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
		if err != nil {
			return DefaultConfidence
		}
		v = parsed
	}
	switch {
	case v <= 0 || v > 100:
		return DefaultConfidence
	case v > maxOvershoot:
		return v / 100
	case v > 1:
		return 1
	default:
		return v
	}
}

// list reads a string array; a bare string counts as a one-element list.
func (r rawRecommendation) list(key string) []string {
	field, ok := r[key]
	if !ok {
		return nil
	}
	var items []interface{}
	if err := json.Unmarshal(field, &items); err != nil {
		var s string
		if json.Unmarshal(field, &s) != nil {
			return nil
		}
		items = []interface{}{s}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r rawRecommendation) listOr(key string, fallback []string) []string {
	if items := r.list(key); len(items) > 0 {
		return items
	}
	return append([]string(nil), fallback...)
}

func (r rawRecommendation) analysis(key string) SymptomsAnalysis {
	out := SymptomsAnalysis{
		PrimarySymptoms:     []string{},
		SeverityAssessment:  DefaultSeverityAssessment,
		PotentialConditions: []string{},
		RedFlags:            []string{},
	}
	field, ok := r[key]
	if !ok {
		return out
	}
	var nested rawRecommendation
	if err := json.Unmarshal(field, &nested); err != nil || nested == nil {
		return out
	}
	if items := nested.list("primary_symptoms"); items != nil {
		out.PrimarySymptoms = items
	}
	out.SeverityAssessment = nested.strOr("severity_assessment", DefaultSeverityAssessment)
	if items := nested.list("potential_conditions"); items != nil {
		out.PotentialConditions = items
	}
	if items := nested.list("red_flags"); items != nil {
		out.RedFlags = items
	}
	return out
}
