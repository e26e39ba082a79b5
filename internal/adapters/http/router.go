package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gzmilgar/JumboOCR/internal/adapters/http/handlers"
	"github.com/gzmilgar/JumboOCR/internal/adapters/http/middleware"
	"github.com/gzmilgar/JumboOCR/internal/platform/config"
	"github.com/gzmilgar/JumboOCR/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests. The
// extraction create path waits on the ERP, which itself is given up to
// a minute, so the inbound deadline sits above that.
const DefaultRequestTimeout = 90 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// OrderHandler handles sales order and purchase order endpoints.
	OrderHandler *handlers.OrderHandler

	// ProductHandler handles product lookup endpoints.
	ProductHandler *handlers.ProductHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. Timeout - request deadline (applied per-route or globally)
//
// Route groups:
//   - /-/ (internal): Health endpoints, no auth required
//   - /api/v1/ (public API): Business endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
	)

	// Health endpoints skip the timeout so probes stay cheap
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	if cfg.OrderHandler != nil {
		cfg.OrderHandler.RegisterOrderRoutes(apiV1)
	}

	if cfg.ProductHandler != nil {
		cfg.ProductHandler.RegisterProductRoutes(apiV1)
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}
