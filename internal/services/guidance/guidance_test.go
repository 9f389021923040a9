package guidance

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jodylarsen/CareConnect/internal/geo"
	"github.com/jodylarsen/CareConnect/internal/services/llm"
)

type stubClient struct {
	content string
	err     error
	last    llm.ChatRequest
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Invoke(_ context.Context, req llm.ChatRequest) (llm.RawResponse, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{{"message": map[string]string{"content": s.content}}},
	})
	return llm.RawResponse(body), nil
}

func TestProviderAdvice_FromModel(t *testing.T) {
	client := &stubClient{content: `Sure! {"recommended_types":["urgent_care"," "],"search_keywords":["sprain","orthopedic"],"urgency_level":"urgent"}`}
	advice := NewService(client).ProviderAdvice(context.Background(), ProviderAdviceRequest{
		Condition: "ankle sprain",
		Location:  geo.Location{City: "Denver", State: "CO"},
		Urgency:   "urgent",
	})

	assert.Equal(t, SourceModel, advice.Source)
	assert.Equal(t, []string{"urgent_care"}, advice.RecommendedTypes)
	assert.Equal(t, []string{"sprain", "orthopedic"}, advice.SearchKeywords)
	assert.Equal(t, "Visit urgent care or contact your doctor within 24 hours", advice.AdditionalInfo)

	require.Len(t, client.last.Messages, 2)
	assert.Contains(t, client.last.Messages[1].Content, `"ankle sprain"`)
	assert.Contains(t, client.last.Messages[1].Content, "Location: Denver, CO")
	assert.Equal(t, 500, client.last.MaxTokens)
}

func TestProviderAdvice_Fallback(t *testing.T) {
	advice := NewService(nil).ProviderAdvice(context.Background(), ProviderAdviceRequest{Condition: "rash"})

	assert.Equal(t, SourceFallback, advice.Source)
	assert.Equal(t, []string{"clinic"}, advice.RecommendedTypes)
	assert.Equal(t, []string{"healthcare"}, advice.SearchKeywords)
	assert.Equal(t, "routine", advice.UrgencyLevel)

	client := &stubClient{content: "I recommend the emergency room."}
	advice = NewService(client).ProviderAdvice(context.Background(), ProviderAdviceRequest{Condition: "stroke", Urgency: "emergency"})
	assert.Equal(t, SourceFallback, advice.Source)
	assert.Equal(t, []string{"hospital"}, advice.RecommendedTypes)
}

func TestTravelAdvice(t *testing.T) {
	client := &stubClient{content: `{"vaccinations":["Yellow fever"],"medications":["Antimalarials"],"travel_tips":[]}`}
	advice := NewService(client).TravelAdvice(context.Background(), TravelAdviceRequest{
		Destination:      "Kenya",
		HealthConditions: []string{"asthma", "diabetes"},
		TravelDuration:   "2 weeks",
	})

	assert.Equal(t, SourceModel, advice.Source)
	assert.Equal(t, []string{"Yellow fever"}, advice.Vaccinations)
	assert.Equal(t, []string{"Consult with a travel medicine specialist"}, advice.TravelTips)
	assert.NotNil(t, advice.EmergencyContacts)
	assert.Contains(t, client.last.Messages[1].Content, "- Health conditions: asthma, diabetes")
	assert.Equal(t, 800, client.last.MaxTokens)

	client = &stubClient{err: &llm.UpstreamHTTPError{Status: 500, Body: "boom"}}
	advice = NewService(client).TravelAdvice(context.Background(), TravelAdviceRequest{Destination: "Peru"})
	assert.Equal(t, SourceFallback, advice.Source)
	assert.Empty(t, advice.Vaccinations)
}
