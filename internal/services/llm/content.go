package llm

import (
	"encoding/json"
	"fmt"
)

// contentShape pulls the reply text out of one known response layout.
// ok is false when the layout does not apply to the body.
type contentShape struct {
	name    string
	extract func(body map[string]json.RawMessage) (string, bool)
}

// contentShapes are tried in order; the first match wins. The serving
// endpoint's native "messages" layout comes first, then the chat-completion
// "choices" layout, then a flat "response" field.
var contentShapes = []contentShape{
	{name: "messages", extract: messagesContent},
	{name: "choices", extract: choicesContent},
	{name: "response", extract: flatContent},
}

// ExtractContent returns the single content string carried by raw.
func ExtractContent(raw RawResponse) (string, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for _, shape := range contentShapes {
		if content, ok := shape.extract(body); ok {
			return content, nil
		}
	}
	return "", ErrMalformedResponse
}

// ContentShape reports which layout ExtractContent would use, or "" if none.
func ContentShape(raw RawResponse) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, shape := range contentShapes {
		if _, ok := shape.extract(body); ok {
			return shape.name
		}
	}
	return ""
}

func messagesContent(body map[string]json.RawMessage) (string, bool) {
	var messages []struct {
		Content json.RawMessage `json:"content"`
	}
	if !decodeField(body, "messages", &messages) || len(messages) == 0 {
		return "", false
	}
	return nonEmptyString(messages[0].Content)
}

func choicesContent(body map[string]json.RawMessage) (string, bool) {
	var choices []struct {
		Message *struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	}
	if !decodeField(body, "choices", &choices) || len(choices) == 0 || choices[0].Message == nil {
		return "", false
	}
	return nonEmptyString(choices[0].Message.Content)
}

func flatContent(body map[string]json.RawMessage) (string, bool) {
	return nonEmptyString(body["response"])
}

func decodeField(body map[string]json.RawMessage, key string, out interface{}) bool {
	field, ok := body[key]
	if !ok {
		return false
	}
	return json.Unmarshal(field, out) == nil
}

func nonEmptyString(field json.RawMessage) (string, bool) {
	if len(field) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(field, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}
