package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/atelier-studio/atelier-service/internal/platform/logging"
)

const (
	// HeaderCorrelationID carries the ID of a whole business transaction
	// across services. Unlike the request ID it is propagated from upstream.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the gin context key of the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware handling the X-Correlation-ID header the
// same way RequestID handles X-Request-ID.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		contextKey: ContextKeyCorrelationID,
		contextEnricher: func(ctx context.Context, id string) context.Context {
			return logging.WithCorrelationID(ContextWithCorrelationID(ctx, id), id)
		},
	})
}

// GetCorrelationID returns the correlation ID from the gin context, or "".
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}
