package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	adminserver "github.com/laundromart/admin-api/go"

	"github.com/laundromart/admin-api/internal/auth"
	activitypostgres "github.com/laundromart/admin-api/internal/domains/activity/adapters/persistence/postgres"
	activityapp "github.com/laundromart/admin-api/internal/domains/activity/application"
	analyticsobs "github.com/laundromart/admin-api/internal/domains/analytics/adapters/observability"
	analyticspostgres "github.com/laundromart/admin-api/internal/domains/analytics/adapters/persistence/postgres"
	analyticsapp "github.com/laundromart/admin-api/internal/domains/analytics/application"
	identitypostgres "github.com/laundromart/admin-api/internal/domains/identity/adapters/persistence/postgres"
	identityapp "github.com/laundromart/admin-api/internal/domains/identity/application"
	laundriespostgres "github.com/laundromart/admin-api/internal/domains/laundries/adapters/persistence/postgres"
	laundriesapp "github.com/laundromart/admin-api/internal/domains/laundries/application"
	orderspostgres "github.com/laundromart/admin-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/laundromart/admin-api/internal/domains/orders/application"
	"github.com/laundromart/admin-api/internal/platform/migrations"
	platformobservability "github.com/laundromart/admin-api/internal/platform/observability"
	platformpostgres "github.com/laundromart/admin-api/internal/platform/postgres"
)

// Run boots the admin HTTP API with observability, repositories, and
// services wired.
func Run(ctx context.Context) error {
	const serviceName = "laundromart-admin-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB, err := platformpostgres.MustConnect(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return err
	}
	defer cleanupDB()
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	userRepo := identitypostgres.NewRepository(db)
	laundryRepo := laundriespostgres.NewRepository(db)
	orderRepo := orderspostgres.NewRepository(db)
	activityRepo := activitypostgres.NewRepository(db)
	metricsReader := analyticspostgres.NewMetricsReader(db)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authMiddleware := auth.NewMiddleware(issuer)

	identityService := identityapp.NewService(userRepo, issuer, activityRepo, logger)
	activityService := activityapp.NewService(activityRepo)
	laundryService := laundriesapp.NewService(
		laundryRepo,
		orderRepo,
		metricsReader,
		activityRepo,
		laundriesapp.WithLogger(logger),
	)
	orderService := ordersapp.NewService(
		orderRepo,
		laundryRepo,
		activityRepo,
		ordersapp.WithLogger(logger),
	)
	analyticsService := analyticsobs.New(
		analyticsapp.NewService(metricsReader, laundryRepo, analyticsapp.WithLogger(logger)),
		analyticsobs.WithLogger(logger),
		analyticsobs.WithTracer(instruments.Tracer("internal.analytics.application")),
		analyticsobs.WithMeter(instruments.Meter("internal.analytics.application")),
	)

	handlers := adminserver.ApiHandleFunctions{
		AuthAPI:      adminserver.NewAuthAPI(identityService),
		DashboardAPI: adminserver.NewDashboardAPI(analyticsService),
		LaundryAPI:   adminserver.NewLaundryAPI(laundryService, analyticsService, orderService, activityService),
		OrderAPI:     adminserver.NewOrderAPI(orderService),
	}

	// Middleware must be installed before the routes are registered; gin
	// snapshots each route's handler chain at registration time.
	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName))
	router := adminserver.NewRouterWithGinEngine(engine, handlers, authMiddleware)
	addr := ":" + cfg.Port
	logger.Info("admin API listening", slog.String("addr", addr), slog.String("environment", cfg.Environment))
	if err := router.Run(addr); err != nil {
		logger.Error("admin API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}
