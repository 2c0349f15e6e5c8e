//go:build integration

package integration

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/atelier-service/internal/adapters/redis"
	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/platform/config"
)

// connectRedis connects to REDIS_ADDR.
func connectRedis(t *testing.T) *goredis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client, err := redis.Connect(t.Context(), config.RedisConfig{
		Addr:         addr,
		DashboardTTL: time.Minute,
	}, 10*time.Second, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestRedis_Sessions(t *testing.T) {
	store := redis.NewSessionStore(connectRedis(t))
	token := uuid.NewString()

	session := &domain.Session{
		Token:     token,
		UserID:    uuid.NewString(),
		Email:     "ana@atelier.test",
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	require.NoError(t, store.Save(t.Context(), session))

	got, err := store.Get(t.Context(), token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.Email, got.Email)
	assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(t.Context(), token))

	_, err = store.Get(t.Context(), token)
	assert.True(t, domain.IsNotFound(err))
}

func TestRedis_SessionExpires(t *testing.T) {
	store := redis.NewSessionStore(connectRedis(t))
	token := uuid.NewString()

	require.NoError(t, store.Save(t.Context(), &domain.Session{
		Token:     token,
		UserID:    uuid.NewString(),
		ExpiresAt: time.Now().Add(1100 * time.Millisecond),
	}))

	assert.Eventually(t, func() bool {
		_, err := store.Get(t.Context(), token)
		return domain.IsNotFound(err)
	}, 3*time.Second, 100*time.Millisecond)
}

func TestRedis_Cache(t *testing.T) {
	client := connectRedis(t)
	prefix := "it:" + uuid.NewString() + ":"
	cache := redis.NewCache(client, prefix)

	_, err := cache.Get(t.Context(), "home")
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, cache.Set(t.Context(), "home", []byte(`{"orders":[]}`), time.Minute))
	require.NoError(t, cache.Set(t.Context(), "summary", []byte(`{}`), time.Minute))

	got, err := cache.Get(t.Context(), "home")
	require.NoError(t, err)
	assert.JSONEq(t, `{"orders":[]}`, string(got))

	ttl, err := client.TTL(t.Context(), prefix+"home").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, cache.Delete(t.Context(), "home", "summary"))

	_, err = cache.Get(t.Context(), "summary")
	assert.True(t, domain.IsNotFound(err))
}

func TestRedis_HealthCheck(t *testing.T) {
	check := redis.NewHealthCheck(connectRedis(t))

	assert.Equal(t, "redis", check.Name())
	assert.NoError(t, check.Check(t.Context()))
}
