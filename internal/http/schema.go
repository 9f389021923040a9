package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const maxBodyBytes = 1 << 20

const locationSchema = `{
  "type": "object",
  "required": ["lat", "lng"],
  "properties": {
    "lat": {"type": "number", "minimum": -90, "maximum": 90},
    "lng": {"type": "number", "minimum": -180, "maximum": 180},
    "city": {"type": "string"},
    "state": {"type": "string"}
  }
}`

const symptomProperties = `
    "symptoms": {"type": "array", "minItems": 1, "items": {"type": "string"}},
    "severity": {"enum": ["mild", "moderate", "severe", "emergency"]},
    "duration": {"type": "string"},
    "description": {"type": "string"},
    "location": ` + locationSchema + `,
    "userProfile": {"type": ["object", "null"]}`

var (
	symptomRequestSchema = jsonschema.MustCompileString("symptom_request.json", `{
  "type": "object",
  "required": ["symptoms", "severity"],
  "properties": {`+symptomProperties+`
  }
}`)

	carePlanSchema = jsonschema.MustCompileString("care_plan.json", `{
  "type": "object",
  "required": ["symptoms", "severity", "location"],
  "properties": {`+symptomProperties+`,
    "radius": {"type": "number", "exclusiveMinimum": 0, "maximum": 50000}
  }
}`)

	providerSearchSchema = jsonschema.MustCompileString("provider_search.json", `{
  "type": "object",
  "required": ["location"],
  "properties": {
    "location": `+locationSchema+`,
    "filters": {
      "type": "object",
      "properties": {
        "type": {"type": "string"},
        "radius": {"type": "number", "minimum": 0, "maximum": 50000},
        "minRating": {"type": "number", "minimum": 0, "maximum": 5},
        "isOpen": {"type": "boolean"},
        "keyword": {"type": "string", "maxLength": 200},
        "limit": {"type": "integer", "minimum": 0, "maximum": 100}
      }
    }
  }
}`)

	providerAdviceSchema = jsonschema.MustCompileString("provider_advice.json", `{
  "type": "object",
  "required": ["condition"],
  "properties": {
    "condition": {"type": "string", "minLength": 1, "maxLength": 500},
    "urgency": {"enum": ["emergency", "urgent", "routine", ""]},
    "location": {"type": "object"}
  }
}`)

	travelAdviceSchema = jsonschema.MustCompileString("travel_advice.json", `{
  "type": "object",
  "required": ["destination"],
  "properties": {
    "destination": {"type": "string", "minLength": 1, "maxLength": 200},
    "healthConditions": {"type": "array", "items": {"type": "string"}},
    "travelDuration": {"type": "string"}
  }
}`)

	toolCheckSchema = jsonschema.MustCompileString("tool_check.json", `{
  "type": "object",
  "properties": {
    "city": {"type": "string", "maxLength": 100}
  }
}`)
)

// errMalformedBody is returned when the body is not JSON at all.
var errMalformedBody = errors.New("request body must be valid JSON")

// validationError carries a schema violation.
type validationError struct {
	err error
}

func (e *validationError) Error() string { return e.err.Error() }

// decodeBody validates the JSON body against schema before decoding it into
// out. An empty body is treated as an empty object.
func decodeBody(r *http.Request, schema *jsonschema.Schema, out interface{}) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(data) == 0 {
		data = []byte("{}")
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return errMalformedBody
	}
	if err := schema.Validate(doc); err != nil {
		return &validationError{err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &validationError{err: err}
	}
	return nil
}
