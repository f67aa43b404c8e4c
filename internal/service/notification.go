package service

import (
	"context"
	"errors"

	"github.com/Behyna/storefront-payments/internal/constants"
	"github.com/Behyna/storefront-payments/internal/metrics"
	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/Behyna/storefront-payments/internal/repository"
	"go.uber.org/zap"
)

type NotificationOptions struct {
	StrictParsing bool
}

// NotificationService handles asynchronous gateway callbacks (IPN).
type NotificationService interface {
	Handle(ctx context.Context, cmd HandleNotificationCommand) (NotificationResult, error)
}

type notificationService struct {
	options     NotificationOptions
	paymentRepo repository.PaymentTransactionRepository
	ledger      LedgerService
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func NewNotificationService(options NotificationOptions, paymentRepo repository.PaymentTransactionRepository,
	ledger LedgerService, logger *zap.Logger, metrics *metrics.Metrics) NotificationService {
	return &notificationService{
		options:     options,
		paymentRepo: paymentRepo,
		ledger:      ledger,
		logger:      logger,
		metrics:     metrics,
	}
}

func (s *notificationService) Handle(ctx context.Context, cmd HandleNotificationCommand) (NotificationResult, error) {
	notification, err := ParseNotification(cmd.Body, cmd.ContentType, s.options.StrictParsing)
	if err != nil {
		s.logger.Warn("Unparseable notification",
			zap.String("contentType", cmd.ContentType),
			zap.Int("size", len(cmd.Body)),
			zap.Error(err))
		s.metrics.RecordNotification("unknown", constants.ErrCodeInvalidPayload)
		return NotificationResult{}, NewServiceError(constants.ErrCodeInvalidPayload, err)
	}

	if notification.Identifier == "" {
		s.metrics.RecordNotification("unknown", constants.ErrCodeMissingIdentifier)
		return NotificationResult{}, NewServiceError(constants.ErrCodeMissingIdentifier, ErrMissingIdentifier)
	}

	bucket, target := notification.Bucket()
	result := NotificationResult{Identifier: notification.Identifier, Bucket: bucket}

	tx, err := s.paymentRepo.GetByIdentifier(ctx, notification.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentTransactionNotFound) {
			s.logger.Warn("Notification for unknown transaction", zap.String("identifier", notification.Identifier))
			s.metrics.RecordNotification(string(bucket), constants.ErrCodeTransactionNotFound)
			return NotificationResult{}, NewServiceError(constants.ErrCodeTransactionNotFound, err)
		}

		s.metrics.RecordNotification(string(bucket), constants.ErrCodeInternalError)
		return NotificationResult{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	s.logger.Info("Notification received",
		zap.String("identifier", notification.Identifier),
		zap.String("reportedStatus", notification.Status),
		zap.String("bucket", string(bucket)),
		zap.String("currentStatus", string(tx.Status)))

	switch bucket {
	case BucketSuccess:
		transition, err := s.ledger.Complete(ctx, CompletePaymentCommand{
			Identifier:           notification.Identifier,
			Gateway:              notification.Gateway,
			GatewayTransactionID: notification.TransactionID,
			RawResponse:          notification.Raw(),
		})
		if err != nil {
			s.metrics.RecordNotification(string(bucket), constants.ErrCodeInternalError)
			return NotificationResult{}, err
		}

		result.Performed = transition.Performed
		result.Message = constants.MsgNotificationCompleted

	case BucketFailure:
		transition, err := s.ledger.Fail(ctx, FailPaymentCommand{
			Identifier:  notification.Identifier,
			Cancelled:   target == model.PaymentStatusCancelled,
			Gateway:     notification.Gateway,
			RawResponse: notification.Raw(),
		})
		if err != nil {
			s.metrics.RecordNotification(string(bucket), constants.ErrCodeInternalError)
			return NotificationResult{}, err
		}

		result.Performed = transition.Performed
		result.Message = constants.MsgNotificationFailed

	default:
		saved, err := s.paymentRepo.SaveRawResponse(ctx, notification.Identifier, notification.Raw())
		if err != nil {
			s.logger.Error("Failed to store notification payload",
				zap.String("identifier", notification.Identifier),
				zap.Error(err))
			s.metrics.RecordNotification(string(bucket), constants.ErrCodeInternalError)
			return NotificationResult{}, NewServiceError(constants.ErrCodeInternalError, err)
		}

		result.Performed = saved
		result.Message = constants.MsgNotificationRecorded
	}

	if !result.Performed {
		result.Message = constants.MsgNotificationProcessed
		s.metrics.RecordNotification(string(bucket), "noop")
		return result, nil
	}

	s.metrics.RecordNotification(string(bucket), "applied")
	return result, nil
}
