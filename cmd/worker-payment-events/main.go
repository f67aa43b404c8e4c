package main

import (
	"context"
	"time"

	"github.com/Behyna/storefront-payments/internal/config"
	"github.com/Behyna/storefront-payments/internal/database"
	"github.com/Behyna/storefront-payments/internal/metrics"
	"github.com/Behyna/storefront-payments/internal/publishers"
	"github.com/Behyna/storefront-payments/internal/repository"
	"github.com/Behyna/storefront-payments/internal/service"
	"github.com/Behyna/storefront-payments/pkg/mq"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			NewConnectionDB,
			NewMQConnection,
			NewMQPublisher,
			NewMetrics,

			repository.NewPaymentTransactionRepository,

			service.NewPaymentEventService,

			NewPublisherOptions,
			publishers.NewPaymentEventPublisher,
		),
		fx.Invoke(runPaymentEventPublisher),
	).Run()
}

func runPaymentEventPublisher(cfg *config.Config, publisher publishers.PaymentEventPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	queue := cfg.Publisher.Queue

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareQueues(queue); err != nil {
				logger.Error("declare queue failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", queue))

			go func() {
				ticker := time.NewTicker(cfg.Publisher.Interval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish payment events", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("payment event publisher started", zap.Duration("interval", cfg.Publisher.Interval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping payment event publisher")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return database.NewConnection(cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewPublisherOptions(cfg *config.Config) publishers.PaymentEventOptions {
	return publishers.PaymentEventOptions{
		Queue:     cfg.Publisher.Queue,
		BatchSize: cfg.Publisher.BatchSize,
	}
}
