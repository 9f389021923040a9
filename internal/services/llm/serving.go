package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jodylarsen/CareConnect/internal/config"
	"github.com/rs/zerolog/log"
)

// maxResponseBytes caps how much of an upstream reply is read.
const maxResponseBytes = 4 << 20

// ServingClient calls a model-serving endpoint with bearer-token auth.
type ServingClient struct {
	url         string
	token       string
	toolMarkers []string
	httpClient  *http.Client
}

// NewServingClient creates a client for the configured serving endpoint. A
// zero Timeout leaves the request bounded only by the caller's context.
func NewServingClient(cfg config.InferenceConfig) *ServingClient {
	return NewServingClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewServingClientWithHTTP allows overriding the HTTP client (used for tests).
func NewServingClientWithHTTP(cfg config.InferenceConfig, httpClient *http.Client) *ServingClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ServingClient{
		url:         cfg.URL(),
		token:       cfg.Token,
		toolMarkers: cfg.ToolErrorMarkers,
		httpClient:  httpClient,
	}
}

func (c *ServingClient) Name() string { return "serving" }

// Invoke sends one POST and returns the raw body.
func (c *ServingClient) Invoke(ctx context.Context, req ChatRequest) (RawResponse, error) {
	if c.url == "" || c.token == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inference request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if len(payload) > maxResponseBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedResponse, maxResponseBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.classifyFailure(resp.StatusCode, payload)
	}

	if !json.Valid(payload) {
		return nil, fmt.Errorf("%w: body is not JSON", ErrMalformedResponse)
	}

	log.Debug().
		Str("backend", c.Name()).
		Int("status", resp.StatusCode).
		Int("bytes", len(payload)).
		Str("shape", ContentShape(RawResponse(payload))).
		Msg("Inference call succeeded")

	return RawResponse(payload), nil
}

// classifyFailure turns a non-2xx body into UpstreamToolError when the
// error message names a known broken agent function, else UpstreamHTTPError.
func (c *ServingClient) classifyFailure(status int, payload []byte) error {
	text := string(payload)

	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &errBody); err == nil && errBody.Message != "" {
		for _, marker := range c.toolMarkers {
			if marker != "" && strings.Contains(errBody.Message, marker) {
				return &UpstreamToolError{Status: status, Marker: marker, Message: errBody.Message}
			}
		}
	}

	return &UpstreamHTTPError{Status: status, Body: text}
}
