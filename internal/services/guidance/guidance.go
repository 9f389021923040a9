package guidance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jodylarsen/CareConnect/internal/geo"
	"github.com/jodylarsen/CareConnect/internal/services/llm"
)

const (
	navigatorInstruction = "You are a healthcare navigation AI that helps patients find appropriate care providers based on their condition and location."
	travelInstruction    = "You are a travel medicine specialist AI providing health advice for international travelers."

	providerMaxTokens   = 500
	providerTemperature = 0.2
	travelMaxTokens     = 800
	travelTemperature   = 0.3
)

const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// ProviderAdviceRequest asks which kinds of provider suit a condition.
type ProviderAdviceRequest struct {
	Condition string       `json:"condition"`
	Location  geo.Location `json:"location"`
	Urgency   string       `json:"urgency"`
}

type ProviderAdvice struct {
	RecommendedTypes []string `json:"recommended_types"`
	SearchKeywords   []string `json:"search_keywords"`
	UrgencyLevel     string   `json:"urgency_level"`
	AdditionalInfo   string   `json:"additional_info"`
	Source           string   `json:"source"`
}

// TravelAdviceRequest asks for health preparation before a trip.
type TravelAdviceRequest struct {
	Destination      string   `json:"destination"`
	HealthConditions []string `json:"healthConditions"`
	TravelDuration   string   `json:"travelDuration"`
}

type TravelAdvice struct {
	Vaccinations         []string `json:"vaccinations"`
	Medications          []string `json:"medications"`
	HealthcareFacilities []string `json:"healthcare_facilities"`
	TravelTips           []string `json:"travel_tips"`
	EmergencyContacts    []string `json:"emergency_contacts"`
	Source               string   `json:"source"`
}

// Service answers navigation questions outside the symptom pipeline. Like
// symptom analysis it always answers, falling back to fixed advice.
type Service struct {
	client llm.InferenceClient
}

func NewService(client llm.InferenceClient) *Service {
	return &Service{client: client}
}

func (s *Service) ProviderAdvice(ctx context.Context, req ProviderAdviceRequest) *ProviderAdvice {
	if req.Urgency == "" {
		req.Urgency = "routine"
	}
	fallback := fallbackProviderAdvice(req.Urgency)

	var parsed ProviderAdvice
	if err := s.ask(ctx, llm.NewChatRequest(navigatorInstruction, providerPrompt(req), providerMaxTokens, providerTemperature), &parsed); err != nil {
		logFallback("provider_advice", err)
		return fallback
	}

	parsed.RecommendedTypes = orList(cleanList(parsed.RecommendedTypes), fallback.RecommendedTypes)
	parsed.SearchKeywords = orList(cleanList(parsed.SearchKeywords), fallback.SearchKeywords)
	if strings.TrimSpace(parsed.UrgencyLevel) == "" {
		parsed.UrgencyLevel = fallback.UrgencyLevel
	}
	if strings.TrimSpace(parsed.AdditionalInfo) == "" {
		parsed.AdditionalInfo = fallback.AdditionalInfo
	}
	parsed.Source = SourceModel
	return &parsed
}

func (s *Service) TravelAdvice(ctx context.Context, req TravelAdviceRequest) *TravelAdvice {
	fallback := fallbackTravelAdvice()

	var parsed TravelAdvice
	if err := s.ask(ctx, llm.NewChatRequest(travelInstruction, travelPrompt(req), travelMaxTokens, travelTemperature), &parsed); err != nil {
		logFallback("travel_advice", err)
		return fallback
	}

	parsed.Vaccinations = cleanList(parsed.Vaccinations)
	parsed.Medications = cleanList(parsed.Medications)
	parsed.HealthcareFacilities = cleanList(parsed.HealthcareFacilities)
	parsed.TravelTips = orList(cleanList(parsed.TravelTips), fallback.TravelTips)
	parsed.EmergencyContacts = cleanList(parsed.EmergencyContacts)
	parsed.Source = SourceModel
	return &parsed
}

func (s *Service) ask(ctx context.Context, req llm.ChatRequest, out interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("guidance request panicked: %v", r)
		}
	}()

	content, err := llm.Ask(ctx, s.client, req)
	if err != nil {
		return err
	}
	obj, err := llm.ExtractJSONObject(content)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(obj, out); err != nil {
		return &llm.InvalidJSONError{Err: err}
	}
	return nil
}

func logFallback(operation string, err error) {
	log.Warn().Err(err).
		Str("operation", operation).
		Str("kind", llm.ErrorKind(err)).
		Msg("Guidance falling back to fixed advice")
}

func providerPrompt(req ProviderAdviceRequest) string {
	return fmt.Sprintf(`
Based on the medical condition "%s" and urgency level "%s", recommend:
1. Most appropriate healthcare provider types
2. Search keywords for finding providers
3. Any specific considerations

Location: %s, %s

Respond in JSON format:
{
  "recommended_types": ["hospital", "urgent_care", "clinic", "specialist"],
  "search_keywords": ["cardiology", "emergency", "urgent care"],
  "urgency_level": "urgent",
  "additional_info": "Patient should seek immediate care..."
}
`, req.Condition, req.Urgency, req.Location.City, req.Location.State)
}

func travelPrompt(req TravelAdviceRequest) string {
	return fmt.Sprintf(`
Provide travel health advice for:
- Destination: %s
- Health conditions: %s
- Travel duration: %s

Include vaccinations, medications, healthcare facilities to research, and travel tips.

Respond in JSON format with arrays for each category.
`, req.Destination, strings.Join(req.HealthConditions, ", "), req.TravelDuration)
}

func fallbackProviderAdvice(urgency string) *ProviderAdvice {
	advice := &ProviderAdvice{
		RecommendedTypes: []string{"clinic"},
		SearchKeywords:   []string{"healthcare"},
		UrgencyLevel:     urgency,
		AdditionalInfo:   "Consult with a healthcare provider",
		Source:           SourceFallback,
	}
	switch urgency {
	case "emergency":
		advice.RecommendedTypes = []string{"hospital"}
		advice.SearchKeywords = []string{"emergency room", "hospital"}
		advice.AdditionalInfo = "Seek emergency care immediately or call emergency services"
	case "urgent":
		advice.RecommendedTypes = []string{"urgent_care", "clinic"}
		advice.SearchKeywords = []string{"urgent care", "walk-in clinic"}
		advice.AdditionalInfo = "Visit urgent care or contact your doctor within 24 hours"
	}
	return advice
}

func fallbackTravelAdvice() *TravelAdvice {
	return &TravelAdvice{
		Vaccinations:         []string{},
		Medications:          []string{},
		HealthcareFacilities: []string{},
		TravelTips:           []string{"Consult with a travel medicine specialist"},
		EmergencyContacts:    []string{},
		Source:               SourceFallback,
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func orList(items, fallback []string) []string {
	if len(items) == 0 {
		return append([]string(nil), fallback...)
	}
	return items
}
