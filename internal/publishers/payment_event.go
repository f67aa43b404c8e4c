package publishers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/storefront-payments/internal/metrics"
	"github.com/Behyna/storefront-payments/internal/service"
	"github.com/Behyna/storefront-payments/pkg/mq"
	"go.uber.org/zap"
)

const eventTypePrefix = "payment."

type PaymentEventPublisher interface {
	Publish(ctx context.Context) error
}

type PaymentEventOptions struct {
	Queue     string
	BatchSize int
}

type paymentEventPublisher struct {
	options   PaymentEventOptions
	service   service.PaymentEventService
	publisher mq.Publisher
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewPaymentEventPublisher(options PaymentEventOptions, service service.PaymentEventService, publisher mq.Publisher,
	logger *zap.Logger, metrics *metrics.Metrics) PaymentEventPublisher {
	return &paymentEventPublisher{
		options:   options,
		service:   service,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Publish drains one batch of terminal transactions to the queue. A row is
// marked published only after the broker accepted it, so delivery is
// at-least-once.
func (p *paymentEventPublisher) Publish(ctx context.Context) error {
	events, err := p.service.FindEventsToPublish(ctx, p.options.BatchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	p.logger.Info("Publishing payment events", zap.Int("count", len(events)))

	successCount := 0
	for _, event := range events {
		body, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("Failed to encode payment event",
				zap.Error(err),
				zap.String("identifier", event.Identifier))
			p.metrics.RecordEventPublished("encode_error")
			continue
		}

		msg := mq.Message{ID: event.Identifier, Type: eventTypePrefix + event.Status, Body: body}
		if err := p.publisher.Publish(ctx, p.options.Queue, msg); err != nil {
			p.logger.Error("Failed to publish payment event",
				zap.Error(err),
				zap.String("identifier", event.Identifier))
			p.metrics.RecordEventPublished("publish_error")
			continue
		}

		if err := p.service.MarkEventPublished(ctx, event.Identifier); err != nil {
			p.metrics.RecordEventPublished("mark_error")
			continue
		}

		p.metrics.RecordEventPublished("success")
		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published payment events",
			zap.Int("published", successCount),
			zap.Int("total", len(events)))
	}

	return nil
}
