package service

import (
	"context"
	"time"

	"github.com/Behyna/storefront-payments/internal/repository"
	"go.uber.org/zap"
)

// PaymentEventService feeds the outbox publisher with terminal transactions.
type PaymentEventService interface {
	FindEventsToPublish(ctx context.Context, limit int) ([]PaymentEvent, error)
	MarkEventPublished(ctx context.Context, identifier string) error
}

type paymentEventService struct {
	paymentRepo repository.PaymentTransactionRepository
	logger      *zap.Logger
}

func NewPaymentEventService(paymentRepo repository.PaymentTransactionRepository, logger *zap.Logger) PaymentEventService {
	return &paymentEventService{paymentRepo: paymentRepo, logger: logger}
}

func (s *paymentEventService) FindEventsToPublish(ctx context.Context, limit int) ([]PaymentEvent, error) {
	s.logger.Debug("Finding payment events to publish", zap.Int("batchSize", limit))

	txs, err := s.paymentRepo.FindUnpublishedTerminal(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to find unpublished transactions", zap.Error(err))
		return nil, err
	}

	if len(txs) == 0 {
		return nil, nil
	}

	events := make([]PaymentEvent, 0, len(txs))
	for _, tx := range txs {
		event := PaymentEvent{
			Identifier:  tx.Identifier,
			UserID:      tx.UserID,
			Status:      string(tx.Status),
			Amount:      tx.Amount,
			Credits:     tx.Credits,
			Currency:    tx.Currency,
			CompletedAt: tx.CompletedAt,
		}
		if tx.Gateway != nil {
			event.Gateway = *tx.Gateway
		}
		if tx.GatewayTransactionID != nil {
			event.GatewayTransactionID = *tx.GatewayTransactionID
		}

		events = append(events, event)
	}

	return events, nil
}

func (s *paymentEventService) MarkEventPublished(ctx context.Context, identifier string) error {
	if err := s.paymentRepo.MarkPublished(ctx, identifier, time.Now().UTC()); err != nil {
		s.logger.Error("Failed to mark transaction as published",
			zap.String("identifier", identifier),
			zap.Error(err))
		return err
	}

	s.logger.Debug("Marked transaction as published", zap.String("identifier", identifier))
	return nil
}
