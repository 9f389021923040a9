package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/jodylarsen/CareConnect/internal/config"
	"google.golang.org/api/option"
)

// GeminiClient calls Gemini through the generative-ai SDK. The reply text is
// wrapped as a flat {"response": "..."} body.
type GeminiClient struct {
	apiKey string
	model  string
}

func NewGeminiClient(cfg config.GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiClient{apiKey: cfg.APIKey, model: model}, nil
}

func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) Invoke(ctx context.Context, req ChatRequest) (RawResponse, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.model)
	if req.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.Temperature != nil {
		m.SetTemperature(float32(*req.Temperature))
	}

	var parts []genai.Part
	var system []genai.Part
	for _, msg := range req.Messages {
		if msg.Role == RoleSystem {
			system = append(system, genai.Text(msg.Content))
			continue
		}
		parts = append(parts, genai.Text(msg.Content))
	}
	if len(system) > 0 {
		m.SystemInstruction = &genai.Content{Parts: system}
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		if apiErr, ok := apierror.FromError(err); ok {
			status := apiErr.HTTPCode()
			if status <= 0 {
				status = http.StatusBadGateway
			}
			return nil, &UpstreamHTTPError{Status: status, Body: apiErr.Error()}
		}
		return nil, &TransportError{Err: err}
	}

	return wrapFlatResponse(firstText(resp))
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}
	return ""
}

func wrapFlatResponse(text string) (RawResponse, error) {
	body, err := json.Marshal(map[string]string{"response": text})
	if err != nil {
		return nil, fmt.Errorf("failed to wrap gemini reply: %w", err)
	}
	return RawResponse(body), nil
}
