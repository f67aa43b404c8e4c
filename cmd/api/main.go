package main

import (
	"context"
	"time"

	"github.com/Behyna/storefront-payments/internal/api"
	v1 "github.com/Behyna/storefront-payments/internal/api/v1"
	"github.com/Behyna/storefront-payments/internal/api/v1/middleware"
	"github.com/Behyna/storefront-payments/internal/api/validator"
	"github.com/Behyna/storefront-payments/internal/cache"
	"github.com/Behyna/storefront-payments/internal/config"
	"github.com/Behyna/storefront-payments/internal/database"
	apperrors "github.com/Behyna/storefront-payments/internal/errors"
	"github.com/Behyna/storefront-payments/internal/metrics"
	"github.com/Behyna/storefront-payments/internal/repository"
	"github.com/Behyna/storefront-payments/internal/service"
	"github.com/Behyna/storefront-payments/pkg/httpclient"
	"github.com/Behyna/storefront-payments/pkg/paymentgateway"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const metricsCollectInterval = 15 * time.Second

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			NewConnectionDB,
			NewMetricsRegistry,
			NewMetrics,
			NewCollector,
			NewTransactionCache,
			NewPaymentGateway,
			NewXValidator,
			NewFiberApp,

			repository.NewTransactionManager,
			repository.NewPaymentTransactionRepository,
			repository.NewProfileRepository,
			repository.NewBalanceTransactionRepository,

			NewIdentifierGenerator,
			NewPaymentOptions,
			NewNotificationOptions,
			NewQueryOptions,

			service.NewLedgerService,
			service.NewPaymentService,
			service.NewNotificationService,
			service.NewQueryService,

			NewHealthHandler,
			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *api.Handler, v1Handler *v1.Handler, collector *metrics.Collector,
	registry *prometheus.Registry, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	auth := middleware.AuthConfig{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.Issuer}
	api.SetupRoutes(app, handler, v1Handler, auth, registry, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(metricsCollectInterval)

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			logger.Info("Payments API started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewFiberApp(m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.TrackID())
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))

	return app
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return database.NewConnection(cfg.Database, logger)
}

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func NewMetrics(registry *prometheus.Registry) *metrics.Metrics {
	return metrics.NewMetrics(registry)
}

func NewCollector(m *metrics.Metrics, logger *zap.Logger, db *gorm.DB) *metrics.Collector {
	return metrics.NewCollector(m, logger, db)
}

// NewTransactionCache falls back to a no-op cache when Redis is unreachable;
// reads then go straight to the database.
func NewTransactionCache(cfg *config.Config, logger *zap.Logger) cache.TransactionCache {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis not configured, transaction cache disabled")
		return cache.NewNoopTransactionCache()
	}

	client, err := cache.NewRedisClient(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Transaction cache disabled", zap.Error(err))
		return cache.NewNoopTransactionCache()
	}

	return cache.NewTransactionCache(client, cfg.Redis)
}

func NewPaymentGateway(cfg *config.Config) paymentgateway.PaymentGateway {
	client := httpclient.NewHTTPClient(cfg.PaymentGateway.Timeout)
	return paymentgateway.NewPaymentGateway(cfg.PaymentGateway, client)
}

func NewXValidator(m *metrics.Metrics) (validator.IXValidator, error) {
	return validator.NewXValidator(playground.New(), m)
}

func NewIdentifierGenerator(cfg *config.Config) service.IdentifierGenerator {
	return service.NewIdentifierGenerator(cfg.Payment.IdentifierPrefix)
}

func NewPaymentOptions(cfg *config.Config) service.PaymentOptions {
	return service.PaymentOptions{
		Currency:      cfg.Payment.Currency,
		Description:   cfg.Payment.Description,
		SiteName:      cfg.Payment.SiteName,
		SiteLogo:      cfg.Payment.SiteLogo,
		CheckoutTheme: cfg.Payment.CheckoutTheme,
		DefaultMobile: cfg.Payment.DefaultMobile,
		PublicURL:     cfg.API.PublicURL,
	}
}

func NewNotificationOptions(cfg *config.Config) service.NotificationOptions {
	return service.NotificationOptions{StrictParsing: cfg.Payment.StrictIPNParsing}
}

func NewQueryOptions(cfg *config.Config) service.QueryOptions {
	return service.QueryOptions{MaxHistoryPerPage: cfg.Payment.MaxHistoryPerPage}
}

func NewHealthHandler(logger *zap.Logger, collector *metrics.Collector) *api.Handler {
	return api.NewHandler(logger, collector)
}
