package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/platform/logging"
	"github.com/atelier-studio/atelier-service/internal/platform/telemetry"
)

// ContextKeyTraceID is the gin key consulted when no span is active.
const ContextKeyTraceID = "trace_id"

// MapDomainError returns the status and envelope for err. Errors outside
// the domain taxonomy get a generic message so internals never leak.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	code := CodeFor(err)
	if code == ErrorCodeInternal {
		return http.StatusInternalServerError, NewErrorResponse(code, "an internal error occurred")
	}

	resp := NewErrorResponse(code, err.Error())

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && validationErr.Field != "" {
		resp.Error.Details = map[string]string{validationErr.Field: validationErr.Message}
	}

	return HTTPStatusFromCode(code), resp
}

// GetTraceID returns the id a client should quote when reporting a failure:
// the active span's trace id, then a "trace_id" gin key, then X-Request-ID.
func GetTraceID(c *gin.Context) string {
	if c.Request != nil {
		if id := telemetry.TraceID(c.Request.Context()); id != "" {
			return id
		}
	}

	if v, ok := c.Get(ContextKeyTraceID); ok {
		if id, ok := v.(string); ok {
			return id
		}

		return ""
	}

	if c.Request != nil {
		return c.Request.Header.Get("X-Request-ID")
	}

	return ""
}

// HandleError writes the envelope for err. Internal errors are logged with
// their cause; the client only sees the generic message.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}

// RespondWithErrorCode writes an error response with a specific error code.
// Use this for adapter-level errors that don't originate from domain errors.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	c.JSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// RespondWithValidationErrors writes a 400 response with field-level validation errors.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	errResp := NewErrorResponseWithDetails(
		ErrorCodeValidation,
		"request validation failed",
		fieldErrors,
	).WithTraceID(GetTraceID(c))

	c.JSON(http.StatusBadRequest, errResp)
}

// RespondWithBindError reports a BindAndValidate failure: field problems as
// VALIDATION_ERROR, anything unparsable as BAD_REQUEST.
func RespondWithBindError(c *gin.Context, err error) {
	if IsValidationError(err) {
		RespondWithValidationErrors(c, ValidationErrors(err))
		return
	}

	RespondWithErrorCode(c, ErrorCodeBadRequest, "request body is malformed")
}

// AbortWithErrorCode aborts the request chain with a specific error code.
// When a handler already wrote a response only the abort happens.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	if c.Writer.Written() {
		c.Abort()
		return
	}

	c.AbortWithStatusJSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// AbortWithError aborts the request chain with the envelope for err.
func AbortWithError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	c.AbortWithStatusJSON(status, errResp.WithTraceID(GetTraceID(c)))
}
