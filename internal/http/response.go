package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeRateLimit  = "RATE_LIMIT"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeUpstream   = "UPSTREAM_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorInfo{Code: code, Message: message}})
}

// writeDecodeError maps decodeBody failures onto the error envelope.
func writeDecodeError(w http.ResponseWriter, err error) {
	var vErr *validationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, ErrCodeValidation, vErr.Error())
	case errors.Is(err, errMalformedBody):
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
	}
}
