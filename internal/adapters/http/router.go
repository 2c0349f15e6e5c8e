package http

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/handlers"
	"github.com/atelier-studio/atelier-service/internal/adapters/http/middleware"
	"github.com/atelier-studio/atelier-service/internal/platform/telemetry"
)

// Router defaults.
const (
	DefaultRequestTimeout = 30 * time.Second
)

// RouterConfig contains configuration for setting up the router.
// Nil handlers are skipped.
type RouterConfig struct {
	// ServiceName names the server spans.
	ServiceName string

	// Timeout bounds every /api/v1 request. Zero disables it.
	Timeout time.Duration

	// MaxBodySize limits /api/v1 request bodies in bytes. Zero disables it.
	MaxBodySize int64

	// Sessions authenticates the protected routes and CookieName names
	// the cookie that may carry the token.
	Sessions   middleware.SessionAuthenticator
	CookieName string

	// Swagger serves the API docs under /swagger/.
	Swagger bool

	HealthHandler    *handlers.HealthHandler
	AuthHandler      *handlers.AuthHandler
	CatalogHandler   *handlers.CatalogHandler
	QuoteHandler     *handlers.QuoteHandler
	DraftHandler     *handlers.DraftHandler
	DashboardHandler *handlers.DashboardHandler
	TableHandler     *handlers.TableHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - server span, then metrics
//  5. Logging - request logging (skips health endpoints)
//  6. Timeout and body limit - /api/v1 only
//  7. Session - protected /api/v1 routes only
//
// Route groups:
//   - /-/ (internal): health, build info and metrics
//   - /api/v1/ (public): catalog, sign up, sign in, sign out
//   - /api/v1/ (session): everything else
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.MaxBodySize > 0 {
		apiV1.Use(middleware.MaxBodySize(cfg.MaxBodySize))
	}

	setupAPIRoutes(apiV1, cfg)
}

func setupAPIRoutes(public *gin.RouterGroup, cfg RouterConfig) {
	if cfg.CatalogHandler != nil {
		cfg.CatalogHandler.RegisterCatalogRoutes(public)
	}

	if cfg.Sessions == nil {
		return
	}

	protected := public.Group("")
	protected.Use(middleware.RequireSession(cfg.Sessions, cfg.CookieName))

	if cfg.AuthHandler != nil {
		cfg.AuthHandler.RegisterAuthRoutes(public, protected)
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(protected)
	}

	if cfg.DraftHandler != nil {
		cfg.DraftHandler.RegisterDraftRoutes(protected)
	}

	if cfg.DashboardHandler != nil {
		cfg.DashboardHandler.RegisterDashboardRoutes(protected)
	}

	if cfg.TableHandler != nil {
		cfg.TableHandler.RegisterTableRoutes(protected)
	}
}

// SetupMinimalRouter sets up a router with just the health endpoints.
func SetupMinimalRouter(engine *gin.Engine, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}
