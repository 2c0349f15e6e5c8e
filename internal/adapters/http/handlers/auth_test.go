package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/dto"
	"github.com/atelier-studio/atelier-service/internal/app"
	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/mocks"
)

type authFixture struct {
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionStore
	engine   http.Handler
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:    mocks.NewMockUserRepository(t),
		sessions: mocks.NewMockSessionStore(t),
	}

	svc := app.NewAuthService(app.AuthServiceConfig{
		Users:      f.users,
		Sessions:   f.sessions,
		SessionTTL: time.Hour,
	})
	h := NewAuthHandler(svc, SessionCookie{Name: "atelier_session"})

	engine, protected := newAPI(testUserID)
	h.RegisterAuthRoutes(engine.Group("/api/v1"), protected)
	f.engine = engine

	return f
}

// registeredUser signs up through the handler and returns the stored user.
func (f *authFixture) registeredUser(t *testing.T, email, password string) *domain.User {
	t.Helper()

	var stored *domain.User

	f.users.On("CreateUser", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.User) }).
		Return(nil).Once()

	w := serve(t, f.engine, http.MethodPost, "/api/v1/auth/signup",
		`{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return stored
}

func TestAuthHandler_SignUp(t *testing.T) {
	f := newAuthFixture(t)

	user := f.registeredUser(t, "Ana@Example.com", "agulha-e-linha")

	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestAuthHandler_SignUp_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*authFixture)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed body",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeBadRequest,
		},
		{
			name:       "short password",
			body:       `{"email":"ana@example.com","password":"123"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidation,
		},
		{
			name: "email taken",
			body: `{"email":"ana@example.com","password":"agulha-e-linha"}`,
			setup: func(f *authFixture) {
				f.users.On("CreateUser", mock.Anything, mock.Anything).
					Return(domain.NewConflictError("user", "already exists"))
			},
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrorCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			w := serve(t, f.engine, http.MethodPost, "/api/v1/auth/signup", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestAuthHandler_SignIn(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registeredUser(t, "ana@example.com", "agulha-e-linha")

	f.users.On("GetUserByEmail", mock.Anything, "ana@example.com").Return(user, nil)
	f.sessions.On("Save", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)

	t.Run("right password", func(t *testing.T) {
		w := serve(t, f.engine, http.MethodPost, "/api/v1/auth/signin",
			`{"email":"ana@example.com","password":"agulha-e-linha"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[dto.SessionResponse](t, w)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, user.ID, resp.User.ID)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "atelier_session", cookies[0].Name)
		assert.Equal(t, resp.Token, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Positive(t, cookies[0].MaxAge)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := serve(t, f.engine, http.MethodPost, "/api/v1/auth/signin",
			`{"email":"ana@example.com","password":"tesoura-cega"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, w))
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestAuthHandler_SignOut(t *testing.T) {
	f := newAuthFixture(t)
	f.sessions.On("Delete", mock.Anything, "tok-1").Return(nil).Once()

	req := httptestRequest(http.MethodPost, "/api/v1/auth/signout")
	req.Header.Set("Authorization", "Bearer tok-1")

	w := record(f.engine, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuthHandler_SignOut_NoSession(t *testing.T) {
	f := newAuthFixture(t)

	w := serve(t, f.engine, http.MethodPost, "/api/v1/auth/signout", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetUserByID", mock.Anything, testUserID).Return(&domain.User{
		ID:           testUserID,
		Email:        "ana@example.com",
		PasswordHash: "secret-hash",
	}, nil)

	w := serve(t, f.engine, http.MethodGet, "/api/v1/auth/me", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana@example.com", decode[dto.UserResponse](t, w).Email)
	assert.NotContains(t, w.Body.String(), "secret-hash")
}
