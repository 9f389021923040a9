package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jodylarsen/CareConnect/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_ReturnsChoicesShape(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"urgency\":\"routine\"}"}}]
		}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	raw, err := client.Invoke(context.Background(), NewChatRequest("sys", "prompt", 500, 0.2))
	require.NoError(t, err)

	assert.Equal(t, "choices", ContentShape(raw))
	content, err := ExtractContent(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"urgency":"routine"}`, content)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	messages, ok := body["messages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestOpenAIClient_UpstreamError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(config.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = client.Invoke(context.Background(), NewChatRequest("sys", "prompt", 10, 0))

	var httpErr *UpstreamHTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, 1, calls, "client must not retry")
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(config.OpenAIConfig{})
	assert.Error(t, err)
}

func TestWrapFlatResponse(t *testing.T) {
	raw, err := wrapFlatResponse("gemini says {\"urgency\":\"urgent\"}")
	require.NoError(t, err)

	assert.Equal(t, "response", ContentShape(raw))
	content, err := ExtractContent(raw)
	require.NoError(t, err)
	assert.Equal(t, "gemini says {\"urgency\":\"urgent\"}", content)
}
