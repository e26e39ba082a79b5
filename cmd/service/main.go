// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gzmilgar/JumboOCR/internal/adapters/clients"
	"github.com/gzmilgar/JumboOCR/internal/adapters/clients/s4"
	adapterhttp "github.com/gzmilgar/JumboOCR/internal/adapters/http"
	"github.com/gzmilgar/JumboOCR/internal/adapters/http/handlers"
	"github.com/gzmilgar/JumboOCR/internal/adapters/repo"
	"github.com/gzmilgar/JumboOCR/internal/app"
	"github.com/gzmilgar/JumboOCR/internal/erp"
	"github.com/gzmilgar/JumboOCR/internal/platform/config"
	"github.com/gzmilgar/JumboOCR/internal/platform/logging"
	"github.com/gzmilgar/JumboOCR/internal/platform/telemetry"
	"github.com/gzmilgar/JumboOCR/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load .env for local development; missing file is fine
	_ = godotenv.Load()

	// 2. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 3. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 4. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("erp_destination", cfg.S4HANA.Destination.Name),
	)

	// 5. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 6. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 7. Create the HTTP client bound to the ERP destination
	erpClient, err := clients.New(&clients.Config{
		BaseURL:             cfg.S4HANA.Destination.BaseURL,
		ServiceName:         cfg.S4HANA.Destination.Name,
		Timeout:             cfg.Client.Timeout,
		AuthFunc:            destinationAuth(&cfg.S4HANA.Destination),
		Logger:              logger,
		MaxIdleConns:        cfg.Client.Transport.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Client.Transport.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Client.Transport.IdleConnTimeout,
	})
	if err != nil {
		return fmt.Errorf("creating ERP client: %w", err)
	}

	// 8. Create the sales order gateway
	gateway := s4.NewGateway(s4.GatewayConfig{
		Client: erpClient,
		Logger: logger,
	})

	if err := healthRegistry.Register(gateway); err != nil {
		return fmt.Errorf("registering gateway health check: %w", err)
	}

	// 9. Open the purchase order store when configured
	var orders ports.PurchaseOrderRepository

	if cfg.Database.Enabled {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		if err := repo.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}

		store := repo.NewPurchaseOrders(db)
		orders = store

		if err := healthRegistry.Register(store); err != nil {
			return fmt.Errorf("registering database health check: %w", err)
		}

		logger.Info("purchase order persistence enabled")
	} else {
		logger.Info("purchase order persistence disabled")
	}

	// 10. Create the payload builder with deployment defaults and maps
	builder := erp.NewBuilder(erp.BuilderConfig{
		Defaults: erp.SalesDefaults{
			OrderType:    cfg.S4HANA.Defaults.OrderType,
			SalesOrg:     cfg.S4HANA.Defaults.SalesOrg,
			DistChannel:  cfg.S4HANA.Defaults.DistChannel,
			Division:     cfg.S4HANA.Defaults.Division,
			PaymentTerms: cfg.S4HANA.Defaults.PaymentTerms,
			Plant:        cfg.S4HANA.Defaults.Plant,
			Currency:     cfg.S4HANA.Defaults.Currency,
		},
		Customers: erp.NewTableMapper(cfg.S4HANA.CustomerMap),
		Materials: erp.NewTableMapper(cfg.S4HANA.MaterialMap),
		Logger:    logger,
	})

	// 11. Create the order service (application layer)
	orderService := app.NewOrderService(app.OrderServiceConfig{
		Gateway: gateway,
		Orders:  orders,
		Builder: builder,
		Logger:  logger,
	})

	// 12. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	orderHandler := handlers.NewOrderHandler(orderService)
	productHandler := handlers.NewProductHandler(orderService)

	// 13. Create HTTP server
	server := adapterhttp.New(&cfg.Server, logger)

	// 14. Setup router with all middleware and routes
	routerCfg := adapterhttp.RouterConfig{
		Logger:         logger,
		AppConfig:      &cfg.App,
		HealthHandler:  healthHandler,
		OrderHandler:   orderHandler,
		ProductHandler: productHandler,
		Timeout:        adapterhttp.DefaultRequestTimeout,
	}
	adapterhttp.SetupRouter(server.Engine(), routerCfg)

	// 15. Start server (non-blocking)
	serverErr := server.Start()

	// 16. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// destinationAuth returns a basic auth injector for the ERP
// destination, or nil when no credentials are configured.
func destinationAuth(dest *config.DestinationConfig) func(*http.Request) {
	if dest.Username == "" {
		return nil
	}

	username, password := dest.Username, dest.Password

	return func(req *http.Request) {
		req.SetBasicAuth(username, password)
	}
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *adapterhttp.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Graceful shutdown sequence
	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
