package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/atelier-studio/atelier-service/internal/adapters/clients"
	"github.com/atelier-studio/atelier-service/internal/domain"
)

// ErrorResponse is the error body returned by Baserow:
//
//	{"error": "ERROR_REQUEST_BODY_VALIDATION", "detail": {...}}
//
// Detail is either a string or a map of field name to a list of problems.
type ErrorResponse struct {
	Code   string          `json:"error"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

// Baserow error codes that map to specific domain errors.
const (
	CodeTableDoesNotExist = "ERROR_TABLE_DOES_NOT_EXIST"
	CodeRowDoesNotExist   = "ERROR_ROW_DOES_NOT_EXIST"
	CodeBodyValidation    = "ERROR_REQUEST_BODY_VALIDATION"
	CodeNoPermission      = "ERROR_NO_PERMISSION_TO_TABLE"
	CodeInvalidToken      = "ERROR_TOKEN_DOES_NOT_EXIST"
)

type fieldProblem struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Message returns a readable summary of Detail.
func (e *ErrorResponse) Message() string {
	if len(e.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(e.Detail, &text); err == nil {
		return text
	}

	return ""
}

// FieldError returns the first field-level problem, ordered by field name.
func (e *ErrorResponse) FieldError() (field, message string, ok bool) {
	if len(e.Detail) == 0 {
		return "", "", false
	}

	var fields map[string][]fieldProblem
	if err := json.Unmarshal(e.Detail, &fields); err != nil || len(fields) == 0 {
		return "", "", false
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		for _, p := range fields[name] {
			if p.Error != "" {
				return name, p.Error, true
			}
		}
	}

	return "", "", false
}

// ParseErrorResponse reads an error body. Returns nil when the body is empty
// or not a Baserow error.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.Code == "" && len(errResp.Detail) == 0 {
		return nil
	}

	return &errResp
}

// MapHTTPError maps a failed call to a domain error. resp is nil when the
// client itself failed; clientErr is nil when a response was received.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var errResp *ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	return mapStatusCode(resp.StatusCode, errResp, serviceName, operation, entityID)
}

func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("max retries exceeded during %s", operation))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation, entityID string) error {
	message := defaultMessageForStatus(status, operation)
	if errResp != nil {
		if m := errResp.Message(); m != "" {
			message = m
		}
	}

	switch status {
	case http.StatusNotFound:
		if errResp != nil && errResp.Code == CodeRowDoesNotExist {
			return domain.NewNotFoundError("row", entityID)
		}

		return domain.NewNotFoundError("table", entityID)

	case http.StatusConflict:
		return domain.NewConflictError(serviceName, message)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if errResp != nil {
			if field, msg, ok := errResp.FieldError(); ok {
				return domain.NewValidationError(field, msg)
			}
		}

		return domain.NewValidationError("", message)

	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewForbiddenError(operation, message)

	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")

	default:
		if status >= http.StatusInternalServerError {
			return domain.NewUnavailableError(serviceName, message)
		}

		return domain.NewValidationError("", message)
	}
}

func defaultMessageForStatus(status int, operation string) string {
	switch status {
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusConflict:
		return "resource conflict"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusForbidden:
		return "access denied"
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	default:
		return fmt.Sprintf("%s failed with status %d", operation, status)
	}
}
