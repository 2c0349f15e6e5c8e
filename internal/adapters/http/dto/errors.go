// Package dto holds the JSON shapes of the atelier API and the helpers
// that bind requests and write error envelopes.
package dto

import (
	"net/http"

	"github.com/atelier-studio/atelier-service/internal/domain"
)

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail is the machine-readable code, a message for people, and for
// validation failures the offending fields.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes.
const (
	ErrorCodeNotFound     = "NOT_FOUND"
	ErrorCodeConflict     = "CONFLICT"
	ErrorCodeValidation   = "VALIDATION_ERROR"
	ErrorCodeForbidden    = "FORBIDDEN"
	ErrorCodeUnauthorized = "UNAUTHORIZED"
	ErrorCodeUnavailable  = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal     = "INTERNAL_ERROR"
	ErrorCodeTimeout      = "TIMEOUT"
	ErrorCodeBadRequest   = "BAD_REQUEST"
	ErrorCodeRateLimited  = "RATE_LIMITED"
)

var statusByCode = map[string]int{
	ErrorCodeNotFound:     http.StatusNotFound,
	ErrorCodeConflict:     http.StatusConflict,
	ErrorCodeValidation:   http.StatusBadRequest,
	ErrorCodeBadRequest:   http.StatusBadRequest,
	ErrorCodeForbidden:    http.StatusForbidden,
	ErrorCodeUnauthorized: http.StatusUnauthorized,
	ErrorCodeUnavailable:  http.StatusServiceUnavailable,
	ErrorCodeTimeout:      http.StatusGatewayTimeout,
	ErrorCodeRateLimited:  http.StatusTooManyRequests,
}

// domainCodes classifies domain errors, first match wins.
var domainCodes = []struct {
	is   func(error) bool
	code string
}{
	{domain.IsNotFound, ErrorCodeNotFound},
	{domain.IsConflict, ErrorCodeConflict},
	{domain.IsValidation, ErrorCodeValidation},
	{domain.IsRateLimited, ErrorCodeRateLimited},
	{domain.IsUnauthorized, ErrorCodeUnauthorized},
	{domain.IsForbidden, ErrorCodeForbidden},
	{domain.IsUnavailable, ErrorCodeUnavailable},
}

// CodeFor returns the error code of a domain error, ErrorCodeInternal for
// anything else.
func CodeFor(err error) string {
	for _, c := range domainCodes {
		if c.is(err) {
			return c.code
		}
	}

	return ErrorCodeInternal
}

// NewErrorResponse creates an envelope without details.
func NewErrorResponse(code, message string) *ErrorResponse {
	return NewErrorResponseWithDetails(code, message, nil)
}

// NewErrorResponseWithDetails creates an envelope with field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}

// WithTraceID sets the trace id and returns e.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps an error code to its status; unknown codes are 500.
func HTTPStatusFromCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}
