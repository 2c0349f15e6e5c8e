package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/dto"
	"github.com/atelier-studio/atelier-service/internal/adapters/http/middleware"
	"github.com/atelier-studio/atelier-service/internal/app"
)

// SessionCookie describes the cookie carrying the session token.
type SessionCookie struct {
	Name   string
	Secure bool
	Path   string
}

// AuthHandler handles account and session endpoints.
type AuthHandler struct {
	service *app.AuthService
	cookie  SessionCookie
	now     func() time.Time
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service *app.AuthService, cookie SessionCookie) *AuthHandler {
	if cookie.Path == "" {
		cookie.Path = "/"
	}

	return &AuthHandler{
		service: service,
		cookie:  cookie,
		now:     time.Now,
	}
}

// SignUp handles POST /api/v1/auth/signup
//
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.CredentialsRequest true "Credentials"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	user, err := h.service.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// SignIn handles POST /api/v1/auth/signin
// The token is returned in the body and as an HttpOnly cookie.
//
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.CredentialsRequest true "Credentials"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/v1/auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	session, err := h.service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	maxAge := int(session.ExpiresAt.Sub(h.now()).Seconds())
	h.setCookie(c, session.Token, max(maxAge, 1))

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// SignOut handles POST /api/v1/auth/signout
// Signing out without a session succeeds.
//
// @Summary Sign out
// @Tags auth
// @Success 204
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context(), middleware.SessionToken(c, h.cookie.Name)); err != nil {
		dto.HandleError(c, err)
		return
	}

	h.setCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me
//
// @Summary Current account
// @Tags auth
// @Produce json
// @Security SessionToken
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, h.cookie.Path, "", h.cookie.Secure, true)
}

// RegisterAuthRoutes registers the auth routes. Only /me needs a session.
func (h *AuthHandler) RegisterAuthRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	auth.POST("/signup", h.SignUp)
	auth.POST("/signin", h.SignIn)
	auth.POST("/signout", h.SignOut)

	protected.GET("/auth/me", h.Me)
}
