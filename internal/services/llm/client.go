package llm

import (
	"context"
	"encoding/json"
)

// Message is one turn of a chat-style request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatRequest is the body sent to an inference endpoint.
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// NewChatRequest builds the standard system + user request.
func NewChatRequest(system, prompt string, maxTokens int, temperature float64) ChatRequest {
	return ChatRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}
}

// RawResponse is the upstream JSON body exactly as received.
type RawResponse json.RawMessage

// InferenceClient sends a single chat request to a model backend.
// Implementations make exactly one attempt per call and never retry.
type InferenceClient interface {
	// Name identifies the backend in logs and status output
	Name() string

	// Invoke sends the request and returns the raw JSON body, or one of the
	// typed errors in errors.go
	Invoke(ctx context.Context, req ChatRequest) (RawResponse, error)
}

// Ask invokes the client and normalizes the reply down to its content string.
func Ask(ctx context.Context, client InferenceClient, req ChatRequest) (string, error) {
	if client == nil {
		return "", ErrNotConfigured
	}
	raw, err := client.Invoke(ctx, req)
	if err != nil {
		return "", err
	}
	return ExtractContent(raw)
}
