package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when the backend is missing credentials or an endpoint
	ErrNotConfigured = errors.New("inference endpoint is not configured")

	// ErrMalformedResponse is returned when the body matches none of the known content shapes
	ErrMalformedResponse = errors.New("unexpected response format from inference endpoint")

	// ErrNoJSONFound is returned when the content has no brace-delimited object
	ErrNoJSONFound = errors.New("no JSON object found in model reply")
)

// TransportError means the request never reached the upstream or no response came back.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach inference endpoint: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamHTTPError means the upstream answered with a non-2xx status.
type UpstreamHTTPError struct {
	Status int
	Body   string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("inference endpoint error (%d): %s", e.Status, e.Body)
}

// UpstreamToolError means the upstream agent failed inside one of its own
// function calls. Detected by a marker in the error message.
type UpstreamToolError struct {
	Status  int
	Marker  string
	Message string
}

func (e *UpstreamToolError) Error() string {
	return fmt.Sprintf("inference agent function error (%s): %s", e.Marker, e.Message)
}

// InvalidJSONError means a brace-delimited region was found but did not parse.
type InvalidJSONError struct {
	Err error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("invalid JSON in model reply: %v", e.Err)
}

func (e *InvalidJSONError) Unwrap() error { return e.Err }

// ErrorKind returns a short, stable label for logging.
func ErrorKind(err error) string {
	var (
		transportErr *TransportError
		httpErr      *UpstreamHTTPError
		toolErr      *UpstreamToolError
		jsonErr      *InvalidJSONError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.As(err, &toolErr):
		return "upstream_tool"
	case errors.As(err, &httpErr):
		return "upstream_http"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrNoJSONFound):
		return "no_json"
	case errors.As(err, &jsonErr):
		return "invalid_json"
	default:
		return "unknown"
	}
}
