package ports

import (
	"context"
	"time"

	"github.com/atelier-studio/atelier-service/internal/domain"
)

// Cache is a byte-oriented key/value cache.
type Cache interface {
	// Get returns domain.ErrNotFound on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// SessionStore keeps login sessions keyed by opaque token.
type SessionStore interface {
	// Save stores the session until its ExpiresAt.
	Save(ctx context.Context, session *domain.Session) error

	// Get returns domain.ErrNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)

	// Delete removes a session. Unknown tokens are not an error.
	Delete(ctx context.Context, token string) error
}
