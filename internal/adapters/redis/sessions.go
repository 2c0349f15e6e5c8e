package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

const sessionKeyPrefix = "session:"

// SessionStore implements ports.SessionStore. Sessions expire in Redis at
// their ExpiresAt.
type SessionStore struct {
	client goredis.UniversalClient
	now    func() time.Time
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a session store.
func NewSessionStore(client goredis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

type storedSession struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// sessionTTL returns how long a session has left, or zero when it has
// already expired.
func sessionTTL(expiresAt, now time.Time) time.Duration {
	return max(expiresAt.Sub(now), 0)
}

// Save implements ports.SessionStore.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	ttl := sessionTTL(session.ExpiresAt, s.now())
	if ttl == 0 {
		return domain.NewValidationError("expiresAt", "session already expired")
	}

	payload, err := json.Marshal(storedSession{
		UserID:    session.UserID,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	return nil
}

// Get implements ports.SessionStore.
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.NewNotFoundError("session", "")
	}

	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	return decodeSession(token, payload, s.now())
}

func decodeSession(token string, payload []byte, now time.Time) (*domain.Session, error) {
	var stored storedSession
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	if !stored.ExpiresAt.After(now) {
		return nil, domain.NewNotFoundError("session", "")
	}

	return &domain.Session{
		Token:     token,
		UserID:    stored.UserID,
		Email:     stored.Email,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// Delete implements ports.SessionStore.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}
