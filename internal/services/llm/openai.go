package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/jodylarsen/CareConnect/internal/config"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAIClient sends chat completions through the OpenAI SDK. Its replies
// use the "choices" layout.
type OpenAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(cfg config.OpenAIConfig, extra ...option.RequestOption) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (c *OpenAIClient) Name() string { return "openai" }

func (c *OpenAIClient) Invoke(ctx context.Context, req ChatRequest) (RawResponse, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, &UpstreamHTTPError{Status: apiErr.StatusCode, Body: apiErr.RawJSON()}
		}
		return nil, &TransportError{Err: err}
	}

	return RawResponse(completion.RawJSON()), nil
}
