package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// maxTrackedLimiters bounds the per-email limiter table.
const maxTrackedLimiters = 10_000

// validate checks email syntax in the app layer. The HTTP adapter's
// validator carries request-only tags and cannot be imported from here.
var validate = validator.New(validator.WithRequiredStructEnabled())

// AuthService registers accounts and manages login sessions.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	sessionTTL time.Duration
	limiter    *keyedLimiter
	verify     func(password, hash, salt string) bool
	now        func() time.Time
	logger     *slog.Logger
}

// AuthServiceConfig holds the auth service dependencies.
type AuthServiceConfig struct {
	Users      ports.UserRepository
	Sessions   ports.SessionStore
	SessionTTL time.Duration

	// AttemptsPerMinute and Burst throttle sign-in and sign-up per email.
	// Zero AttemptsPerMinute disables throttling.
	AttemptsPerMinute int
	Burst             int

	Now    func() time.Time
	Logger *slog.Logger
}

// NewAuthService creates an auth service. It panics without a user
// repository or session store.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	if cfg.Users == nil || cfg.Sessions == nil {
		panic("app: auth service requires users and sessions")
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	var limiter *keyedLimiter
	if cfg.AttemptsPerMinute > 0 {
		limiter = newKeyedLimiter(rate.Every(time.Minute/time.Duration(cfg.AttemptsPerMinute)), max(cfg.Burst, 1))
	}

	return &AuthService{
		users:      cfg.Users,
		sessions:   cfg.Sessions,
		sessionTTL: cfg.SessionTTL,
		limiter:    limiter,
		verify:     verifyPassword,
		now:        cfg.Now,
		logger:     cfg.Logger.With(slog.String("component", "app.AuthService")),
	}
}

// SignUp registers a new account.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)

	if err := validate.Var(email, "required,email"); err != nil {
		return nil, domain.NewValidationErrorWithValue("email", "must be a valid email address", email)
	}

	if len(password) < MinPasswordLength {
		return nil, domain.NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}

	if err := s.allow(email); err != nil {
		return nil, err
	}

	hash, salt, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))

	return user, nil
}

// SignIn checks credentials and opens a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)

	if err := s.allow(email); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			// Unknown emails pay for a hash too, so timing does not tell them apart.
			s.verify(password, decoyHash, decoySalt)

			return nil, domain.NewUnauthorizedError("invalid credentials")
		}

		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !s.verify(password, user.PasswordHash, user.PasswordSalt) {
		s.logger.WarnContext(ctx, "sign in rejected", slog.String("user_id", user.ID))

		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: s.now().Add(s.sessionTTL).UTC(),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	return session, nil
}

// SignOut ends a session. Unknown tokens are ignored.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}

// Authenticate resolves a token to its live session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.NewUnauthorizedError("missing session")
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewUnauthorizedError("session expired")
		}

		return nil, fmt.Errorf("loading session: %w", err)
	}

	if !s.now().Before(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)

		return nil, domain.NewUnauthorizedError("session expired")
	}

	return session, nil
}

// Me returns the account behind a session.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return user, nil
}

func (s *AuthService) allow(email string) error {
	if s.limiter == nil || s.limiter.allow(email) {
		return nil
	}

	return fmt.Errorf("too many attempts: %w", domain.ErrRateLimited)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// keyedLimiter holds one token bucket per key.
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

func newKeyedLimiter(every rate.Limit, burst int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    every,
		burst:    burst,
	}
}

func (k *keyedLimiter) allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, ok := k.limiters[key]
	if !ok {
		if len(k.limiters) >= maxTrackedLimiters {
			clear(k.limiters)
		}

		l = rate.NewLimiter(k.every, k.burst)
		k.limiters[key] = l
	}

	return l.Allow()
}
